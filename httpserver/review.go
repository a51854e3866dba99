package httpserver

import (
	"net/http"

	"watchtrack/errs"
	"watchtrack/session"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterReviewRoutes(g *echo.Group) {
	g.POST("/reviews", s.handleReviewMovie)
}

// handleReviewMovie godoc
// @Summary Review Movie
// @Description Create or replace the active user's review of a movie
// @Tags reviews
// @Accept json
// @Produce json
// @Param payload body ReviewMovieRequest true "Review payload"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/reviews [post]
func (s *Server) handleReviewMovie(c echo.Context) error {
	var req ReviewMovieRequest

	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	username := session.Username(c.Request().Context())
	if username == "" {
		return errs.Errorf(errs.EUNAUTHORIZED, "no active session")
	}

	result, err := s.ReviewService.Review(c.Request().Context(), username, req.MovieID, req.Rating, req.Comment)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, result)
}
