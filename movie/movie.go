package movie

import "watchtrack/errs"

var (
	ErrInvalidQuery  = errs.Errorf(errs.EINVALID, "search query must not be empty")
	ErrMovieNotFound = errs.Errorf(errs.ENOTFOUND, "movie not found")
)

// Movie is an immutable catalog value. Identity is the opaque ID; the other
// fields may drift between catalog fetches.
type Movie struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	GenreIDs    []int   `json:"genre_ids"`
	ReleaseDate string  `json:"release_date"`
	Rating      float64 `json:"rating"`
	Popularity  float64 `json:"popularity"`
	PosterURL   string  `json:"poster_url,omitempty"`
}

// Equal reports whether two movies refer to the same catalog entry.
// Only the ID participates in equality.
func (m Movie) Equal(other Movie) bool {
	return m.ID == other.ID
}

// GenreNames resolves the movie's genre ids through the static vocabulary.
func (m Movie) GenreNames() []string {
	names := make([]string, len(m.GenreIDs))
	for i, id := range m.GenreIDs {
		names[i] = GenreName(id)
	}
	return names
}

// PagedResult is one page of catalog search results. It is never persisted.
type PagedResult struct {
	Movies     []Movie `json:"movies"`
	Page       int     `json:"page"`
	TotalPages int     `json:"total_pages"`
}
