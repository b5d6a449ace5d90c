// Package httpapi exposes the portfolio actor operations as a JSON HTTP API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mswiatek/scholarfolio/internal/logging"
	sc "github.com/mswiatek/scholarfolio/internal/server/config"
	"github.com/mswiatek/scholarfolio/internal/server/services"
)

// UploadPresigner issues presigned upload URLs for new attachments.
type UploadPresigner interface {
	PresignPut(ctx context.Context) (key string, url string, err error)
}

type Server struct {
	echo      *echo.Echo
	config    *sc.Config
	logger    logging.Logger
	users     *services.UserService
	portfolio *services.PortfolioService
	blobs     UploadPresigner
}

func NewServer(config *sc.Config, logger logging.Logger, users *services.UserService, portfolio *services.PortfolioService, blobs UploadPresigner) *Server {
	s := &Server{
		echo:      echo.New(),
		config:    config,
		logger:    logger,
		users:     users,
		portfolio: portfolio,
		blobs:     blobs,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.HideBanner = true
	s.echo.Use(middleware.Recover())

	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	api := s.echo.Group("/api")

	// Public routes: anonymous visitors read portfolio content.
	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)
	api.POST("/auth/refresh", s.handleRefresh)

	api.GET("/profile", s.handleGetProfile)
	api.GET("/contact", s.handleGetContactInfo)
	api.GET("/interests", s.handleListInterests)
	api.GET("/publications", s.handleListPublications)
	api.GET("/publications/:id", s.handleGetPublication)

	// Authenticated routes.
	authed := api.Group("", s.jwtMiddleware())

	authed.GET("/me/profile", s.handleGetCallerProfile)
	authed.PUT("/me/profile", s.handleSaveCallerProfile)
	authed.GET("/me/owner", s.handleIsOwner)
	authed.GET("/me/admin", s.handleIsAdmin)
	authed.GET("/me/role", s.handleCallerRole)
	authed.GET("/users/:id/profile", s.handleGetUserProfile)

	// Owner-only portfolio mutations.
	authed.PUT("/profile", s.handleSetProfile, s.requireOwner)
	authed.PUT("/contact", s.handleSetContactInfo, s.requireOwner)
	authed.POST("/interests", s.handleAddInterest, s.requireOwner)
	authed.DELETE("/interests/:id", s.handleDeleteInterest, s.requireOwner)
	authed.POST("/publications", s.handleAddPublication, s.requireOwner)
	authed.PUT("/publications/:id", s.handleUpdatePublication, s.requireOwner)
	authed.DELETE("/publications/:id", s.handleDeletePublication, s.requireOwner)
	authed.POST("/blobs/upload-url", s.handleUploadURL, s.requireOwner)

	// Administrative routes.
	authed.PUT("/users/:id/role", s.handleAssignRole, s.requireAdmin)
	authed.POST("/admin/clear", s.handleClearData, s.requireAdmin)
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- s.echo.Start(s.config.EndpointAddr)
	}()

	s.logger.Info(ctx, "http api listening", "addr", s.config.EndpointAddr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}
