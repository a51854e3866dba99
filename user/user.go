package user

import (
	"time"

	"github.com/google/uuid"

	"watchtrack/errs"
	"watchtrack/movie"
)

var (
	ErrInvalidUsername = errs.Errorf(errs.EINVALID, "user: invalid username")
	ErrInvalidPassword = errs.Errorf(errs.EINVALID, "user: invalid password")
	ErrUserNotFound    = errs.Errorf(errs.ENOTFOUND, "user not found")
	ErrUsernameTaken   = errs.Errorf(errs.ECONFLICT, "username already taken")
)

// DefaultWatchListName is the name of the list every user starts with.
const DefaultWatchListName = "Watch Later"

// User is the aggregate root. It owns the user's watchlists, the optional
// watch history and the reviews map. Interactors load a User through a
// repository, mutate their copy and hand the whole aggregate back to Save.
type User struct {
	// Username is unique and immutable once created.
	Username string

	// Password is an opaque credential, compared verbatim on login.
	Password string

	// WatchLists keeps creation order. The factory attaches exactly one
	// default list.
	WatchLists []WatchList

	// History is nil until the first watch is recorded.
	History *WatchHistory

	// Reviews holds at most one review per movie id. A later review for the
	// same movie replaces the earlier one; see UpsertReview.
	Reviews map[string]Review
}

// New creates a User with the default watchlist attached.
func New(username, password string) (User, error) {
	u := User{Username: username, Password: password}
	if err := u.Validate(); err != nil {
		return User{}, err
	}
	u.WatchLists = []WatchList{NewWatchList(DefaultWatchListName)}
	return u, nil
}

func (u User) Validate() error {
	if u.Username == "" {
		return ErrInvalidUsername
	}
	if u.Password == "" {
		return ErrInvalidPassword
	}
	return nil
}

// WatchListByID returns a pointer into the user's lists, or nil.
func (u *User) WatchListByID(id string) *WatchList {
	for i := range u.WatchLists {
		if u.WatchLists[i].ID == id {
			return &u.WatchLists[i]
		}
	}
	return nil
}

// WatchListByName returns the first list with the given name, or nil.
func (u *User) WatchListByName(name string) *WatchList {
	for i := range u.WatchLists {
		if u.WatchLists[i].Name == name {
			return &u.WatchLists[i]
		}
	}
	return nil
}

// AllWatchListMovies flattens the user's watchlists into one sequence in list
// order. Movies present in more than one list appear once per list.
func (u *User) AllWatchListMovies() []movie.Movie {
	var all []movie.Movie
	for _, wl := range u.WatchLists {
		all = append(all, wl.Movies...)
	}
	return all
}

// EnsureHistory returns the user's watch history, creating it on first use.
func (u *User) EnsureHistory() *WatchHistory {
	if u.History == nil {
		u.History = &WatchHistory{}
	}
	return u.History
}

// UpsertReview stores r under its movie id, replacing any prior review for
// that movie. The replacement is the contract, not an accident of map
// semantics.
func (u *User) UpsertReview(r Review) {
	if u.Reviews == nil {
		u.Reviews = make(map[string]Review)
	}
	u.Reviews[r.MovieID] = r
}

// WatchList is a named, ordered collection of movies owned by one user.
type WatchList struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Movies    []movie.Movie
}

// NewWatchList creates a list with a generated globally-unique id.
func NewWatchList(name string) WatchList {
	return WatchList{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// Contains reports whether a movie with the given id is already in the list.
func (wl *WatchList) Contains(movieID string) bool {
	for _, m := range wl.Movies {
		if m.ID == movieID {
			return true
		}
	}
	return false
}

// Add appends a movie. Duplicate prevention is the caller's responsibility.
func (wl *WatchList) Add(m movie.Movie) {
	wl.Movies = append(wl.Movies, m)
}

// WatchedMovie is a movie plus the user-specific viewing state.
type WatchedMovie struct {
	Movie     movie.Movie
	WatchedAt time.Time

	// Rating is the user's 1-5 rating, nil when not rated.
	Rating *int

	// Review is optional free text attached to this viewing.
	Review string
}

// WatchHistory holds an ordered, id-deduplicated sequence of watched movies.
// At most one entry exists per movie id.
type WatchHistory struct {
	Watched []WatchedMovie
}

// Find returns a pointer to the entry for the movie id, or nil.
func (h *WatchHistory) Find(movieID string) *WatchedMovie {
	for i := range h.Watched {
		if h.Watched[i].Movie.ID == movieID {
			return &h.Watched[i]
		}
	}
	return nil
}

// Record upserts a watch of m at the given time. A duplicate movie id
// overwrites the existing entry's timestamp instead of inserting a second
// entry.
func (h *WatchHistory) Record(m movie.Movie, at time.Time) {
	if existing := h.Find(m.ID); existing != nil {
		existing.WatchedAt = at
		return
	}
	h.Watched = append(h.Watched, WatchedMovie{Movie: m, WatchedAt: at})
}

// Remove deletes the entry for the movie id, reporting whether it existed.
func (h *WatchHistory) Remove(movieID string) bool {
	for i := range h.Watched {
		if h.Watched[i].Movie.ID == movieID {
			h.Watched = append(h.Watched[:i], h.Watched[i+1:]...)
			return true
		}
	}
	return false
}

// Review is a user's catalog-wide opinion of a movie, one per (user, movie)
// pair. Distinct from the free-text review on a WatchedMovie.
type Review struct {
	ID        string
	Username  string
	MovieID   string
	Rating    int
	Comment   string
	CreatedAt time.Time
}
