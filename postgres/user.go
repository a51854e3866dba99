package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"watchtrack/movie"
	"watchtrack/user"
)

// UserModel represents the database model for users
type UserModel struct {
	Username  string    `gorm:"primaryKey"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "users"
}

// WatchListModel represents one of a user's named lists.
type WatchListModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"not null;index"`
	Name      string    `gorm:"not null"`
	Position  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (WatchListModel) TableName() string {
	return "watch_lists"
}

// WatchListMovieModel is a movie snapshot inside a watchlist.
type WatchListMovieModel struct {
	ID          uint          `gorm:"primaryKey"`
	WatchListID string        `gorm:"type:uuid;not null;index"`
	Position    int           `gorm:"not null"`
	MovieID     string        `gorm:"not null"`
	Title       string        `gorm:"not null"`
	Overview    string        `gorm:"not null;default:''"`
	GenreIDs    pq.Int64Array `gorm:"type:integer[]"`
	ReleaseDate string        `gorm:"not null;default:''"`
	Rating      float64       `gorm:"not null;default:0"`
	Popularity  float64       `gorm:"not null;default:0"`
	PosterURL   string        `gorm:"not null;default:''"`
}

func (WatchListMovieModel) TableName() string {
	return "watch_list_movies"
}

// WatchedMovieModel is one watch history entry.
type WatchedMovieModel struct {
	ID          uint          `gorm:"primaryKey"`
	Username    string        `gorm:"not null;index"`
	Position    int           `gorm:"not null"`
	MovieID     string        `gorm:"not null"`
	Title       string        `gorm:"not null"`
	Overview    string        `gorm:"not null;default:''"`
	GenreIDs    pq.Int64Array `gorm:"type:integer[]"`
	ReleaseDate string        `gorm:"not null;default:''"`
	MovieRating float64       `gorm:"not null;default:0"`
	Popularity  float64       `gorm:"not null;default:0"`
	PosterURL   string        `gorm:"not null;default:''"`
	WatchedAt   time.Time     `gorm:"not null"`
	UserRating  *int
	UserReview  string `gorm:"not null;default:''"`
}

func (WatchedMovieModel) TableName() string {
	return "watched_movies"
}

// ReviewModel is a user's catalog-wide review of one movie.
type ReviewModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"not null;index"`
	MovieID   string    `gorm:"not null"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"not null;default:''"`
	CreatedAt time.Time `gorm:"not null"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}

// UserRepository persists the User aggregate. Save performs a whole-aggregate
// overwrite inside one transaction, which is the single serialization point
// for concurrent callers.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByUsername loads the full aggregate: watchlists with their movies,
// watch history and reviews.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	u := user.User{
		Username: model.Username,
		Password: model.Password,
	}

	var lists []WatchListModel
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("position").
		Find(&lists).Error; err != nil {
		return user.User{}, err
	}

	u.WatchLists = make([]user.WatchList, len(lists))
	for i, list := range lists {
		var entries []WatchListMovieModel
		if err := r.db.WithContext(ctx).
			Where("watch_list_id = ?", list.ID).
			Order("position").
			Find(&entries).Error; err != nil {
			return user.User{}, err
		}

		wl := user.WatchList{
			ID:        list.ID,
			Name:      list.Name,
			CreatedAt: list.CreatedAt,
			Movies:    make([]movie.Movie, len(entries)),
		}
		for j, entry := range entries {
			wl.Movies[j] = movie.Movie{
				ID:          entry.MovieID,
				Title:       entry.Title,
				Overview:    entry.Overview,
				GenreIDs:    toIntSlice(entry.GenreIDs),
				ReleaseDate: entry.ReleaseDate,
				Rating:      entry.Rating,
				Popularity:  entry.Popularity,
				PosterURL:   entry.PosterURL,
			}
		}
		u.WatchLists[i] = wl
	}

	var watched []WatchedMovieModel
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("position").
		Find(&watched).Error; err != nil {
		return user.User{}, err
	}
	if len(watched) > 0 {
		h := &user.WatchHistory{Watched: make([]user.WatchedMovie, len(watched))}
		for i, w := range watched {
			h.Watched[i] = user.WatchedMovie{
				Movie: movie.Movie{
					ID:          w.MovieID,
					Title:       w.Title,
					Overview:    w.Overview,
					GenreIDs:    toIntSlice(w.GenreIDs),
					ReleaseDate: w.ReleaseDate,
					Rating:      w.MovieRating,
					Popularity:  w.Popularity,
					PosterURL:   w.PosterURL,
				},
				WatchedAt: w.WatchedAt,
				Rating:    w.UserRating,
				Review:    w.UserReview,
			}
		}
		u.History = h
	}

	var reviews []ReviewModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).Find(&reviews).Error; err != nil {
		return user.User{}, err
	}
	if len(reviews) > 0 {
		u.Reviews = make(map[string]user.Review, len(reviews))
		for _, rv := range reviews {
			u.Reviews[rv.MovieID] = user.Review{
				ID:        rv.ID,
				Username:  rv.Username,
				MovieID:   rv.MovieID,
				Rating:    rv.Rating,
				Comment:   rv.Comment,
				CreatedAt: rv.CreatedAt,
			}
		}
	}

	return u, nil
}

// Save overwrites the stored aggregate with u. Children are deleted and
// reinserted in one transaction so a failed save leaves the old state intact.
func (r *UserRepository) Save(ctx context.Context, u user.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := UserModel{Username: u.Username, Password: u.Password}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"password", "updated_at"}),
		}).Create(&model).Error; err != nil {
			return err
		}

		listIDs := tx.Model(&WatchListModel{}).Select("id").Where("username = ?", u.Username)
		if err := tx.Where("watch_list_id IN (?)", listIDs).Delete(&WatchListMovieModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("username = ?", u.Username).Delete(&WatchListModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("username = ?", u.Username).Delete(&WatchedMovieModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("username = ?", u.Username).Delete(&ReviewModel{}).Error; err != nil {
			return err
		}

		for i, wl := range u.WatchLists {
			listModel := WatchListModel{
				ID:        wl.ID,
				Username:  u.Username,
				Name:      wl.Name,
				Position:  i,
				CreatedAt: wl.CreatedAt,
			}
			if err := tx.Create(&listModel).Error; err != nil {
				return err
			}
			for j, m := range wl.Movies {
				entry := WatchListMovieModel{
					WatchListID: wl.ID,
					Position:    j,
					MovieID:     m.ID,
					Title:       m.Title,
					Overview:    m.Overview,
					GenreIDs:    toInt64Array(m.GenreIDs),
					ReleaseDate: m.ReleaseDate,
					Rating:      m.Rating,
					Popularity:  m.Popularity,
					PosterURL:   m.PosterURL,
				}
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
			}
		}

		if u.History != nil {
			for i, w := range u.History.Watched {
				entry := WatchedMovieModel{
					Username:    u.Username,
					Position:    i,
					MovieID:     w.Movie.ID,
					Title:       w.Movie.Title,
					Overview:    w.Movie.Overview,
					GenreIDs:    toInt64Array(w.Movie.GenreIDs),
					ReleaseDate: w.Movie.ReleaseDate,
					MovieRating: w.Movie.Rating,
					Popularity:  w.Movie.Popularity,
					PosterURL:   w.Movie.PosterURL,
					WatchedAt:   w.WatchedAt,
					UserRating:  w.Rating,
					UserReview:  w.Review,
				}
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
			}
		}

		for _, rv := range u.Reviews {
			reviewModel := ReviewModel{
				ID:        rv.ID,
				Username:  rv.Username,
				MovieID:   rv.MovieID,
				Rating:    rv.Rating,
				Comment:   rv.Comment,
				CreatedAt: rv.CreatedAt,
			}
			if err := tx.Create(&reviewModel).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Create inserts a brand-new aggregate, failing on a username conflict.
func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	model := UserModel{Username: u.Username, Password: u.Password}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isDuplicateUsernameError(err) {
			return user.ErrUsernameTaken
		}
		return err
	}
	return r.Save(ctx, u)
}

// ExistsByUsername reports whether a user row exists.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func toIntSlice(a pq.Int64Array) []int {
	if len(a) == 0 {
		return nil
	}
	out := make([]int, len(a))
	for i, v := range a {
		out[i] = int(v)
	}
	return out
}

func toInt64Array(ids []int) pq.Int64Array {
	if len(ids) == 0 {
		return nil
	}
	out := make(pq.Int64Array, len(ids))
	for i, v := range ids {
		out[i] = int64(v)
	}
	return out
}

func isDuplicateUsernameError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && strings.Contains(strings.ToLower(pqErr.Constraint), "users")
	}
	return false
}
