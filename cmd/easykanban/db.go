package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/easykanban/easykanban/internal/config"
	"github.com/easykanban/easykanban/internal/dal"
)

// loadConfig reads the config file and installs the JSON logger at the
// configured level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(logger)
	return cfg, nil
}

// dbOptions maps the database section onto dal.Options. The URL is passed
// through as written so pgx applies its own sslmode default.
func dbOptions(cfg *config.Config) dal.Options {
	return dal.Options{
		Dialect:      cfg.Database.Driver,
		DSN:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	}
}

func openDB(ctx context.Context, cfg *config.Config) (*dal.DB, error) {
	db, err := dal.Open(ctx, dbOptions(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("connected to database", "driver", db.Dialect())
	return db, nil
}
