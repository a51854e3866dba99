package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"watchtrack/auth"
	"watchtrack/dynamodb"
	"watchtrack/history"
	"watchtrack/httpserver"
	"watchtrack/movie"
	"watchtrack/pkg/config"
	"watchtrack/pkg/sentry"
	"watchtrack/postgres"
	"watchtrack/review"
	"watchtrack/tmdb"
	"watchtrack/user"
	"watchtrack/watchlist"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
)

// UserStore is the aggregate port every usecase shares.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
	Save(ctx context.Context, u user.User) error
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	store, err := newUserStore(cfg)
	if err != nil {
		slog.Error("Cannot open user store", "error", err)
		os.Exit(1)
	}

	catalog := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL)

	server := httpserver.Default(cfg)
	server.Addr = fmt.Sprintf(":%d", cfg.Port)
	server.AuthService = auth.NewUsecase(store)
	server.MovieService = movie.NewUsecase(catalog)
	server.WatchListService = watchlist.NewUsecase(store, catalog)
	server.HistoryService = history.NewUsecase(store, catalog)
	server.ReviewService = review.NewUsecase(store, catalog)

	slog.Info("server started!", "store", cfg.Store)
	if err := server.Start(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func newUserStore(cfg *config.Config) (UserStore, error) {
	switch cfg.Store {
	case "dynamodb":
		client, err := dynamodb.NewClient(context.Background(), dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
		})
		if err != nil {
			return nil, err
		}
		return dynamodb.NewUserRepository(client, cfg.DynamoDB.UsersTable), nil
	case "", "postgres":
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     fmt.Sprintf("%d", cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			return nil, err
		}
		return postgres.NewUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
