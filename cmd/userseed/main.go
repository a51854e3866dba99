// Command userseed loads demo accounts into the user store from a CSV of
// username,password rows. Existing usernames are skipped.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"watchtrack/pkg/config"
	"watchtrack/postgres"
	"watchtrack/user"

	_ "github.com/lib/pq"
)

func main() {
	var csvPath string

	flag.StringVar(&csvPath, "csv", "", "Path to users.csv (username,password per row)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if csvPath == "" {
		slog.Error("missing -csv flag")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	count, skipped, err := importUsers(context.Background(), postgres.NewUserRepository(db), csvPath)
	if err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}

	slog.Info("import completed", "created", count, "skipped", skipped)
}

func importUsers(ctx context.Context, repo *postgres.UserRepository, csvPath string) (int, int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	count, skipped := 0, 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, skipped, err
		}

		username, password, ok := parseUserRecord(record)
		if !ok {
			skipped++
			continue
		}

		exists, err := repo.ExistsByUsername(ctx, username)
		if err != nil {
			return count, skipped, err
		}
		if exists {
			skipped++
			continue
		}

		u, err := user.New(username, password)
		if err != nil {
			slog.Warn("skipping invalid row", "username", username, "error", err)
			skipped++
			continue
		}

		if err := repo.Create(ctx, u); err != nil {
			return count, skipped, err
		}
		count++
	}

	return count, skipped, nil
}

func parseUserRecord(record []string) (string, string, bool) {
	if len(record) < 2 {
		return "", "", false
	}
	username := strings.TrimSpace(record[0])
	password := strings.TrimSpace(record[1])
	if username == "" || username == "username" || password == "" {
		return "", "", false
	}
	return username, password, true
}
