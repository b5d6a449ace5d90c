package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Singleton reads return a JSON null body when nothing has been authored
// yet; absence is a renderable state, not an error.

func (s *Server) handleGetProfile(c echo.Context) error {
	p, err := s.portfolio.GetProfile(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	if p == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, profileResponse{Name: p.Name, Biography: p.Biography, PhotoURL: p.PhotoURL})
}

func (s *Server) handleSetProfile(c echo.Context) error {
	var req setProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !req.Photo.valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid photo patch")
	}

	if err := s.portfolio.SetProfile(c.Request().Context(), req.Name, req.Biography, req.Photo.toService()); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleGetContactInfo(c echo.Context) error {
	ci, err := s.portfolio.GetContactInfo(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	if ci == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, contactInfoResponse{Email: ci.Email, Affiliation: ci.Affiliation})
}

func (s *Server) handleSetContactInfo(c echo.Context) error {
	var req contactInfoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := s.portfolio.SetContactInfo(c.Request().Context(), req.Email, req.Affiliation); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleListInterests(c echo.Context) error {
	interests, err := s.portfolio.ListInterests(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	resp := make([]interestResponse, 0, len(interests))
	for _, i := range interests {
		resp = append(resp, interestResponse{ID: i.ID, Name: i.Name})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleAddInterest(c echo.Context) error {
	var req addInterestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := s.portfolio.AddInterest(c.Request().Context(), req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, idResponse{ID: id})
}

func (s *Server) handleDeleteInterest(c echo.Context) error {
	if err := s.portfolio.DeleteInterest(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleListPublications(c echo.Context) error {
	pubs, err := s.portfolio.ListPublications(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	resp := make([]publicationResponse, 0, len(pubs))
	for _, p := range pubs {
		resp = append(resp, publicationResponse{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Link:        p.Link,
			PDFURL:      p.PDFURL,
			Timestamp:   p.Timestamp,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetPublication(c echo.Context) error {
	p, err := s.portfolio.GetPublication(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, publicationResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Link:        p.Link,
		PDFURL:      p.PDFURL,
		Timestamp:   p.Timestamp,
	})
}

func (s *Server) handleAddPublication(c echo.Context) error {
	var req publicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !req.PDF.valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pdf patch")
	}

	id, err := s.portfolio.AddPublication(c.Request().Context(), req.Title, req.Description, req.Link, req.PDF.toService())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, idResponse{ID: id})
}

func (s *Server) handleUpdatePublication(c echo.Context) error {
	var req publicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !req.PDF.valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pdf patch")
	}

	err := s.portfolio.UpdatePublication(c.Request().Context(), c.Param("id"), req.Title, req.Description, req.Link, req.PDF.toService())
	if err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeletePublication(c echo.Context) error {
	if err := s.portfolio.DeletePublication(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
