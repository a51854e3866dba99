package review

import (
	"context"
	"time"

	"github.com/google/uuid"

	"watchtrack/errs"
	"watchtrack/movie"
	"watchtrack/user"
)

var ErrRatingOutOfRange = errs.Errorf(errs.EINVALID, "Rating must be between 1 and 5.")

type Service interface {
	Review(ctx context.Context, username, movieID string, rating int, comment string) (Result, error)
}

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
	Save(ctx context.Context, u user.User) error
}

type Catalog interface {
	FindByID(ctx context.Context, id string) (movie.Movie, error)
}

type Result struct {
	ReviewID string `json:"review_id"`
	Username string `json:"username"`
	MovieID  string `json:"movie_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

type Usecase struct {
	users   UserRepository
	catalog Catalog
	now     func() time.Time
	newID   func() string
}

func NewUsecase(users UserRepository, catalog Catalog) *Usecase {
	return &Usecase{
		users:   users,
		catalog: catalog,
		now: func() time.Time {
			return time.Now().UTC()
		},
		newID: uuid.NewString,
	}
}

// Review stores a rated, commented opinion of a movie under the user,
// replacing any earlier review of the same movie. The rating bound check
// runs before any lookup.
func (uc *Usecase) Review(ctx context.Context, username, movieID string, rating int, comment string) (Result, error) {
	if rating < 1 || rating > 5 {
		return Result{}, ErrRatingOutOfRange
	}

	u, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return Result{}, err
	}

	m, err := uc.catalog.FindByID(ctx, movieID)
	if err != nil {
		return Result{}, err
	}

	r := user.Review{
		ID:        uc.newID(),
		Username:  u.Username,
		MovieID:   m.ID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: uc.now(),
	}
	u.UpsertReview(r)

	if err := uc.users.Save(ctx, u); err != nil {
		return Result{}, err
	}

	return Result{
		ReviewID: r.ID,
		Username: r.Username,
		MovieID:  r.MovieID,
		Rating:   r.Rating,
		Comment:  r.Comment,
	}, nil
}
