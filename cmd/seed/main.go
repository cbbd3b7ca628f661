// Command seed imports the exercise catalog from a JSON document, either a local
// file or an object in the configured S3 bucket. Running it twice is harmless.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"alcyxob/workout-tracker/internal/app"
	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/service"
	"alcyxob/workout-tracker/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	file := flag.String("file", "exercises.json", "path of the catalog document on disk")
	s3Key := flag.String("s3-key", "", "read the catalog from this key of the configured S3 bucket instead of -file")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall time limit")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	appLog, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("FATAL: Could not build logger: %v", err)
	}
	defer appLog.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var (
		store storage.ObjectStore = storage.LocalStore{}
		key                       = *file
	)
	if *s3Key != "" {
		if store, err = storage.NewS3Store(ctx, cfg.S3, appLog); err != nil {
			appLog.Fatal("Could not initialize S3 storage", "error", err)
		}
		key = *s3Key
	}

	body, err := store.OpenObject(ctx, key)
	if err != nil {
		appLog.Fatal("Could not open catalog", "key", key, "error", err)
	}
	catalog, err := service.ParseCatalog(body)
	_ = body.Close()
	if err != nil {
		appLog.Fatal("Could not parse catalog", "key", key, "error", err)
	}

	backend, err := app.OpenBackend(ctx, cfg.Database, appLog)
	if err != nil {
		appLog.Fatal("Could not open database", "error", err)
	}
	defer backend.Close()

	catalogService := service.NewExerciseCatalogService(backend.Repos.ExerciseCategories, backend.Repos.Exercises)
	result, err := catalogService.ImportCatalog(ctx, catalog)
	if err != nil {
		appLog.Fatal("Catalog import failed", "error", err, "categories_added", result.CategoriesAdded)
	}
	appLog.Info("Catalog imported",
		"source", key,
		"categories_in_document", len(catalog.Categories),
		"categories_added", result.CategoriesAdded,
		"exercises_added", result.ExercisesAdded,
	)
}
