// Package app assembles the storage backend shared by the server and seed commands.
package app

import (
	"context"
	"fmt"
	"time"

	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/repository/mongo"
	"alcyxob/workout-tracker/internal/repository/relational"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Backend is an open store with its repositories.
type Backend struct {
	Repos repository.Repositories
	Ping  func(ctx context.Context) error // backs /healthz
	Close func() error
}

// OpenBackend connects to the store selected by cfg.Driver and prepares its schema:
// indexes for mongo, migrations for the relational drivers.
func OpenBackend(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		return openMongo(ctx, cfg, log)
	case config.DriverPostgres, config.DriverSQLite:
		return openRelational(cfg, log)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func openMongo(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*Backend, error) {
	client, err := mongo.ConnectDB(cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	db := client.Database(cfg.Name)
	log.Info("Database connection established", "driver", cfg.Driver, "database", cfg.Name)

	indexCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if err := mongo.EnsureIndexes(indexCtx, db); err != nil {
		// The server still works without them, only slower.
		log.Error("Failed to ensure indexes", "error", err)
	}

	return &Backend{
		Repos: mongo.NewRepositories(db),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		Close: func() error {
			log.Info("Disconnecting MongoDB")
			return mongo.DisconnectDB(client)
		},
	}, nil
}

func openRelational(cfg config.DatabaseConfig, log *logger.Logger) (*Backend, error) {
	db, err := relational.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == config.DriverSQLite {
		// SQLite allows one writer at a time.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := relational.AutoMigrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate %s schema: %w", cfg.Driver, err)
	}
	log.Info("Database connection established", "driver", cfg.Driver)

	return &Backend{
		Repos: relational.NewRepositories(db),
		Ping:  sqlDB.PingContext,
		Close: sqlDB.Close,
	}, nil
}
