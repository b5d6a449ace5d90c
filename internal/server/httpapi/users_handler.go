package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleGetCallerProfile(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	p, err := s.users.GetUserProfile(c.Request().Context(), claims.UserID)
	if err != nil {
		return httpError(err)
	}
	if p == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, userProfileResponse{Name: p.Name})
}

func (s *Server) handleSaveCallerProfile(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	var req userProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := s.users.SaveUserProfile(c.Request().Context(), claims.UserID, req.Name); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleGetUserProfile(c echo.Context) error {
	p, err := s.users.GetUserProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if p == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, userProfileResponse{Name: p.Name})
}

func (s *Server) handleIsOwner(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	isOwner, err := s.users.IsOwner(c.Request().Context(), claims.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, ownerResponse{IsOwner: isOwner})
}

func (s *Server) handleIsAdmin(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	isAdmin, err := s.users.IsAdmin(c.Request().Context(), claims.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, adminResponse{IsAdmin: isAdmin})
}

func (s *Server) handleCallerRole(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	role, err := s.users.Role(c.Request().Context(), claims.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, roleResponse{Role: role})
}

func (s *Server) handleAssignRole(c echo.Context) error {
	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := s.users.AssignRole(c.Request().Context(), c.Param("id"), req.Role); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleClearData(c echo.Context) error {
	if err := s.portfolio.Clear(c.Request().Context()); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleUploadURL(c echo.Context) error {
	key, url, err := s.blobs.PresignPut(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, uploadURLResponse{Key: key, URL: url})
}
