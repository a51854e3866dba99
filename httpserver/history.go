package httpserver

import (
	"net/http"

	"watchtrack/errs"
	"watchtrack/session"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterHistoryRoutes(g *echo.Group) {
	g.POST("/history", s.handleRecordWatch)
	g.PATCH("/history/:movieID", s.handleEditWatchedMovie)
	g.DELETE("/history/:movieID", s.handleDeleteWatchedMovie)
}

// handleRecordWatch godoc
// @Summary Record Watched Movie
// @Description Record that the active user watched a movie
// @Tags history
// @Accept json
// @Produce json
// @Param payload body RecordWatchRequest true "Movie and optional watch time"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/history [post]
func (s *Server) handleRecordWatch(c echo.Context) error {
	var req RecordWatchRequest

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

	result, err := s.HistoryService.Record(c.Request().Context(), username, req.MovieID, req.WatchedAt)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, result)
}

// handleEditWatchedMovie godoc
// @Summary Edit Watched Movie
// @Description Overwrite fields of a watch history entry
// @Tags history
// @Accept json
// @Produce json
// @Param movieID path string true "Movie ID"
// @Param payload body EditWatchedMovieRequest true "Fields to overwrite"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/history/{movieID} [patch]
func (s *Server) handleEditWatchedMovie(c echo.Context) error {
	var req EditWatchedMovieRequest

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

	result, err := s.HistoryService.Edit(c.Request().Context(), username, c.Param("movieID"), req.ToEditInput())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, result)
}

// handleDeleteWatchedMovie godoc
// @Summary Delete Watched Movie
// @Description Remove an entry from the active user's watch history
// @Tags history
// @Produce json
// @Param movieID path string true "Movie ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/history/{movieID} [delete]
func (s *Server) handleDeleteWatchedMovie(c echo.Context) error {
	username := session.Username(c.Request().Context())
	if username == "" {
		return errs.Errorf(errs.EUNAUTHORIZED, "no active session")
	}

	result, err := s.HistoryService.Delete(c.Request().Context(), username, c.Param("movieID"))
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, result)
}
