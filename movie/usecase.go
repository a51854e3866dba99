package movie

import (
	"context"
	"strconv"
	"strings"
)

// GenreAll is the sentinel filter value that matches every movie.
const GenreAll = "all"

type Service interface {
	Search(ctx context.Context, query string, page int) (PagedResult, error)
	Filter(movies []Movie, genre string) []Movie
}

// Catalog is the outbound port to the remote movie catalog.
type Catalog interface {
	SearchByTitle(ctx context.Context, query string, page int) (PagedResult, error)
	FindByID(ctx context.Context, id string) (Movie, error)
	FilterByGenres(ctx context.Context, genreIDs []int) ([]Movie, error)
}

type Usecase struct {
	catalog Catalog
}

func NewUsecase(catalog Catalog) *Usecase {
	return &Usecase{catalog: catalog}
}

// Search returns one page of catalog results for the query. Catalog failures
// are returned to the caller unchanged, message included.
func (uc *Usecase) Search(ctx context.Context, query string, page int) (PagedResult, error) {
	if strings.TrimSpace(query) == "" {
		return PagedResult{}, ErrInvalidQuery
	}
	if page < 1 {
		page = 1
	}
	return uc.catalog.SearchByTitle(ctx, query, page)
}

// Filter narrows an already-fetched movie list to a single genre, given as
// an id or a display name. The sentinel "all" and unresolvable genres return
// the input unchanged.
func (uc *Usecase) Filter(movies []Movie, genre string) []Movie {
	if strings.EqualFold(genre, GenreAll) {
		return movies
	}
	id, err := strconv.Atoi(strings.TrimSpace(genre))
	if err != nil {
		resolved, ok := genreID(genre)
		if !ok {
			return movies
		}
		id = resolved
	}

	filtered := make([]Movie, 0, len(movies))
	for _, m := range movies {
		for _, gid := range m.GenreIDs {
			if gid == id {
				filtered = append(filtered, m)
				break
			}
		}
	}
	return filtered
}
