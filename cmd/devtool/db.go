package main

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/WeddingBot_Go/internal/database"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// dbURL builds the connection string from DB_URL or the DB_* variables
func dbURL() string {
	if u := os.Getenv("DB_URL"); u != "" {
		return u
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", appName),
	)
}

// redactPassword hides the password in a connection string for logging
func redactPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return connStr
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}

func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	connStr := dbURL()
	PrintInfo("Connecting to database: %s", redactPassword(connStr))

	cfg := database.DefaultPoolConfig()
	cfg.MaxConns = 2
	cfg.MinConns = 0
	cfg.ApplicationName = appName + "-devtool"
	return database.NewPool(ctx, connStr, cfg)
}
