package history

import (
	"context"
	"time"

	"watchtrack/errs"
	"watchtrack/movie"
	"watchtrack/user"
)

var (
	ErrHistoryNotFound = errs.Errorf(errs.ENOTFOUND, "watch history not found")
	ErrEntryNotFound   = errs.Errorf(errs.ENOTFOUND, "watch history entry not found")
	ErrInvalidRating   = errs.Errorf(errs.EINVALID, "rating must be between 1 and 5")
)

type Service interface {
	Record(ctx context.Context, username, movieID string, watchedAt *time.Time) (RecordResult, error)
	Edit(ctx context.Context, username, movieID string, input EditInput) (EditResult, error)
	Delete(ctx context.Context, username, movieID string) (DeleteResult, error)
}

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
	Save(ctx context.Context, u user.User) error
}

type Catalog interface {
	FindByID(ctx context.Context, id string) (movie.Movie, error)
}

// EditInput carries the fields to overwrite. Nil fields leave the entry's
// corresponding field unchanged.
type EditInput struct {
	WatchedAt *time.Time
	Rating    *int
	Review    *string
}

type RecordResult struct {
	Title     string    `json:"title"`
	MovieID   string    `json:"movie_id"`
	WatchedAt time.Time `json:"watched_at"`
}

type EditResult struct {
	Title string `json:"title"`
}

type DeleteResult struct {
	Title   string `json:"title"`
	MovieID string `json:"movie_id"`
}

type Usecase struct {
	users   UserRepository
	catalog Catalog
	now     func() time.Time
}

func NewUsecase(users UserRepository, catalog Catalog) *Usecase {
	return &Usecase{
		users:   users,
		catalog: catalog,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Record marks the movie as watched. The history aggregate is created on
// first use; a repeat watch of the same movie overwrites the stored
// timestamp instead of inserting a duplicate entry.
func (uc *Usecase) Record(ctx context.Context, username, movieID string, watchedAt *time.Time) (RecordResult, error) {
	u, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return RecordResult{}, err
	}

	m, err := uc.catalog.FindByID(ctx, movieID)
	if err != nil {
		return RecordResult{}, err
	}

	at := uc.now()
	if watchedAt != nil {
		at = *watchedAt
	}

	u.EnsureHistory().Record(m, at)
	if err := uc.users.Save(ctx, u); err != nil {
		return RecordResult{}, err
	}

	return RecordResult{Title: m.Title, MovieID: m.ID, WatchedAt: at}, nil
}

// Edit overwrites only the supplied fields of an existing history entry.
func (uc *Usecase) Edit(ctx context.Context, username, movieID string, input EditInput) (EditResult, error) {
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return EditResult{}, ErrInvalidRating
	}

	u, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return EditResult{}, err
	}
	if u.History == nil {
		return EditResult{}, ErrHistoryNotFound
	}

	entry := u.History.Find(movieID)
	if entry == nil {
		return EditResult{}, ErrEntryNotFound
	}

	if input.WatchedAt != nil {
		entry.WatchedAt = *input.WatchedAt
	}
	if input.Rating != nil {
		entry.Rating = input.Rating
	}
	if input.Review != nil {
		entry.Review = *input.Review
	}

	if err := uc.users.Save(ctx, u); err != nil {
		return EditResult{}, err
	}

	return EditResult{Title: entry.Movie.Title}, nil
}

// Delete removes a history entry, reporting the removed movie's title.
func (uc *Usecase) Delete(ctx context.Context, username, movieID string) (DeleteResult, error) {
	u, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return DeleteResult{}, err
	}
	if u.History == nil {
		return DeleteResult{}, ErrHistoryNotFound
	}

	// capture the title before removal, it feeds the response
	entry := u.History.Find(movieID)
	if entry == nil {
		return DeleteResult{}, ErrEntryNotFound
	}
	title := entry.Movie.Title

	u.History.Remove(movieID)
	if err := uc.users.Save(ctx, u); err != nil {
		return DeleteResult{}, err
	}

	return DeleteResult{Title: title, MovieID: movieID}, nil
}
