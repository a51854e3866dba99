package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"watchtrack/movie"
	"watchtrack/user"
)

// UserRepository stores each User aggregate as a single item keyed by
// username. PutItem replaces the whole item, which matches the aggregate's
// whole-record-overwrite save contract for free.
type UserRepository struct {
	client *dynamodb.Client
	table  string
}

func NewUserRepository(client *dynamodb.Client, table string) *UserRepository {
	return &UserRepository{
		client: client,
		table:  table,
	}
}

type movieRecord struct {
	ID          string  `dynamodbav:"id"`
	Title       string  `dynamodbav:"title"`
	Overview    string  `dynamodbav:"overview,omitempty"`
	GenreIDs    []int   `dynamodbav:"genre_ids,omitempty"`
	ReleaseDate string  `dynamodbav:"release_date,omitempty"`
	Rating      float64 `dynamodbav:"rating,omitempty"`
	Popularity  float64 `dynamodbav:"popularity,omitempty"`
	PosterURL   string  `dynamodbav:"poster_url,omitempty"`
}

type watchListRecord struct {
	ID        string        `dynamodbav:"id"`
	Name      string        `dynamodbav:"name"`
	CreatedAt time.Time     `dynamodbav:"created_at"`
	Movies    []movieRecord `dynamodbav:"movies,omitempty"`
}

type watchedMovieRecord struct {
	Movie     movieRecord `dynamodbav:"movie"`
	WatchedAt time.Time   `dynamodbav:"watched_at"`
	Rating    *int        `dynamodbav:"rating,omitempty"`
	Review    string      `dynamodbav:"review,omitempty"`
}

type reviewRecord struct {
	ID        string    `dynamodbav:"id"`
	Username  string    `dynamodbav:"username"`
	MovieID   string    `dynamodbav:"movie_id"`
	Rating    int       `dynamodbav:"rating"`
	Comment   string    `dynamodbav:"comment,omitempty"`
	CreatedAt time.Time `dynamodbav:"created_at"`
}

type userItem struct {
	Username   string                  `dynamodbav:"username"`
	Password   string                  `dynamodbav:"password"`
	WatchLists []watchListRecord       `dynamodbav:"watch_lists,omitempty"`
	Watched    []watchedMovieRecord    `dynamodbav:"watched,omitempty"`
	Reviews    map[string]reviewRecord `dynamodbav:"reviews,omitempty"`
}

// GetByUsername loads the aggregate item.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	if err := validateTable(r.table); err != nil {
		return user.User{}, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.table,
		Key: map[string]types.AttributeValue{
			"username": &types.AttributeValueMemberS{Value: username},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return user.User{}, fmt.Errorf("dynamodb: get user: %w", err)
	}
	if len(out.Item) == 0 {
		return user.User{}, user.ErrUserNotFound
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return user.User{}, fmt.Errorf("dynamodb: unmarshal user: %w", err)
	}

	return toDomainUser(item), nil
}

// Save replaces the stored item with u.
func (r *UserRepository) Save(ctx context.Context, u user.User) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	item, err := attributevalue.MarshalMap(toUserItem(u))
	if err != nil {
		return fmt.Errorf("dynamodb: marshal user: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      item,
	}); err != nil {
		return fmt.Errorf("dynamodb: put user: %w", err)
	}
	return nil
}

// ExistsByUsername reports whether an item exists for the username.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if err := validateTable(r.table); err != nil {
		return false, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.table,
		Key: map[string]types.AttributeValue{
			"username": &types.AttributeValueMemberS{Value: username},
		},
		ProjectionExpression: aws.String("username"),
	})
	if err != nil {
		return false, fmt.Errorf("dynamodb: check user exists: %w", err)
	}
	return len(out.Item) > 0, nil
}

func toUserItem(u user.User) userItem {
	item := userItem{
		Username: u.Username,
		Password: u.Password,
	}

	item.WatchLists = make([]watchListRecord, len(u.WatchLists))
	for i, wl := range u.WatchLists {
		rec := watchListRecord{
			ID:        wl.ID,
			Name:      wl.Name,
			CreatedAt: wl.CreatedAt.UTC(),
		}
		for _, m := range wl.Movies {
			rec.Movies = append(rec.Movies, toMovieRecord(m))
		}
		item.WatchLists[i] = rec
	}

	if u.History != nil {
		for _, w := range u.History.Watched {
			item.Watched = append(item.Watched, watchedMovieRecord{
				Movie:     toMovieRecord(w.Movie),
				WatchedAt: w.WatchedAt.UTC(),
				Rating:    w.Rating,
				Review:    w.Review,
			})
		}
	}

	if len(u.Reviews) > 0 {
		item.Reviews = make(map[string]reviewRecord, len(u.Reviews))
		for movieID, rv := range u.Reviews {
			item.Reviews[movieID] = reviewRecord{
				ID:        rv.ID,
				Username:  rv.Username,
				MovieID:   rv.MovieID,
				Rating:    rv.Rating,
				Comment:   rv.Comment,
				CreatedAt: rv.CreatedAt.UTC(),
			}
		}
	}

	return item
}

func toDomainUser(item userItem) user.User {
	u := user.User{
		Username: item.Username,
		Password: item.Password,
	}

	u.WatchLists = make([]user.WatchList, len(item.WatchLists))
	for i, rec := range item.WatchLists {
		wl := user.WatchList{
			ID:        rec.ID,
			Name:      rec.Name,
			CreatedAt: rec.CreatedAt,
		}
		for _, m := range rec.Movies {
			wl.Movies = append(wl.Movies, toDomainMovie(m))
		}
		u.WatchLists[i] = wl
	}

	if len(item.Watched) > 0 {
		h := &user.WatchHistory{}
		for _, w := range item.Watched {
			h.Watched = append(h.Watched, user.WatchedMovie{
				Movie:     toDomainMovie(w.Movie),
				WatchedAt: w.WatchedAt,
				Rating:    w.Rating,
				Review:    w.Review,
			})
		}
		u.History = h
	}

	if len(item.Reviews) > 0 {
		u.Reviews = make(map[string]user.Review, len(item.Reviews))
		for movieID, rv := range item.Reviews {
			u.Reviews[movieID] = user.Review{
				ID:        rv.ID,
				Username:  rv.Username,
				MovieID:   rv.MovieID,
				Rating:    rv.Rating,
				Comment:   rv.Comment,
				CreatedAt: rv.CreatedAt,
			}
		}
	}

	return u
}

func toMovieRecord(m movie.Movie) movieRecord {
	return movieRecord{
		ID:          m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		GenreIDs:    m.GenreIDs,
		ReleaseDate: m.ReleaseDate,
		Rating:      m.Rating,
		Popularity:  m.Popularity,
		PosterURL:   m.PosterURL,
	}
}

func toDomainMovie(rec movieRecord) movie.Movie {
	return movie.Movie{
		ID:          rec.ID,
		Title:       rec.Title,
		Overview:    rec.Overview,
		GenreIDs:    rec.GenreIDs,
		ReleaseDate: rec.ReleaseDate,
		Rating:      rec.Rating,
		Popularity:  rec.Popularity,
		PosterURL:   rec.PosterURL,
	}
}
