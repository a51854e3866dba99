package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"watchtrack/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterPublicMovieRoutes(g *echo.Group) {
	g.GET("/movies/search", s.handleSearchMovies)
}

// handleSearchMovies godoc
// @Summary Search Movies
// @Description Search the catalog by title, optionally filtered by genre name
// @Tags movies
// @Produce json
// @Param q query string true "Search query"
// @Param page query int false "Result page, default 1"
// @Param genre query string false "Genre name filter, 'all' disables filtering"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 502 {object} APIResponse
// @Router /api/movies/search [get]
func (s *Server) handleSearchMovies(c echo.Context) error {
	query := c.QueryParam("q")

	page := 1
	if raw := strings.TrimSpace(c.QueryParam("page")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return errs.Errorf(errs.EINVALID, "page must be a number")
		}
		page = parsed
	}

	result, err := s.MovieService.Search(c.Request().Context(), query, page)
	if err != nil {
		return err
	}

	if genre := strings.TrimSpace(c.QueryParam("genre")); genre != "" {
		result.Movies = s.MovieService.Filter(result.Movies, genre)
	}

	return writeSuccess(c, http.StatusOK, result)
}
