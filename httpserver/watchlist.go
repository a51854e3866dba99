package httpserver

import (
	"net/http"

	"watchtrack/errs"
	"watchtrack/session"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterWatchListRoutes(g *echo.Group) {
	g.POST("/watchlists/movies", s.handleAddToWatchList)
	g.GET("/watchlists/compare", s.handleCompareWatchLists)
}

// handleAddToWatchList godoc
// @Summary Add Movie To WatchList
// @Description Add a catalog movie to one of the active user's watchlists
// @Tags watchlists
// @Accept json
// @Produce json
// @Param payload body AddToWatchListRequest true "Movie and target list"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/watchlists/movies [post]
func (s *Server) handleAddToWatchList(c echo.Context) error {
	var req AddToWatchListRequest

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

	result, err := s.WatchListService.Add(c.Request().Context(), username, req.ToListRef(), req.MovieID)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, result)
}

// handleCompareWatchLists godoc
// @Summary Compare WatchLists
// @Description Partition two users' watchlist movies into common and exclusive sets
// @Tags watchlists
// @Produce json
// @Param target query string true "Username to compare against"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/watchlists/compare [get]
func (s *Server) handleCompareWatchLists(c echo.Context) error {
	target := c.QueryParam("target")
	if target == "" {
		return errs.Errorf(errs.EINVALID, "target username is required")
	}

	username := session.Username(c.Request().Context())
	if username == "" {
		return errs.Errorf(errs.EUNAUTHORIZED, "no active session")
	}

	result, err := s.WatchListService.Compare(c.Request().Context(), username, target)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, result)
}
