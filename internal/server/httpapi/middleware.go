package httpapi

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/mswiatek/scholarfolio/internal/server/auth"
)

// jwtMiddleware validates bearer tokens and stores typed claims under the
// "user" context key.
func (s *Server) jwtMiddleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(s.config.SecretKey),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	})
}

// callerClaims extracts the authenticated caller's claims set by the JWT
// middleware. Routes behind jwtMiddleware can rely on it being present.
func callerClaims(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

// requireOwner guards portfolio mutations: only the configured owner account
// may pass.
func (s *Server) requireOwner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := callerClaims(c)
		if err != nil {
			return err
		}

		isOwner, err := s.users.IsOwner(c.Request().Context(), claims.UserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unknown caller")
		}
		if !isOwner {
			return echo.NewHTTPError(http.StatusForbidden, "owner only")
		}
		return next(c)
	}
}

// requireAdmin guards administrative routes.
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := callerClaims(c)
		if err != nil {
			return err
		}

		isAdmin, err := s.users.IsAdmin(c.Request().Context(), claims.UserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unknown caller")
		}
		if !isAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin only")
		}
		return next(c)
	}
}
