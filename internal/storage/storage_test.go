package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/logger"
)

func TestLocalStoreOpenObject(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "seed"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "seed", "catalog.json"), []byte(`{"exercise_categories":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	store := LocalStore{Root: dir}

	rc, err := store.OpenObject(context.Background(), "seed/catalog.json")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != `{"exercise_categories":[]}` {
		t.Fatalf("body = %q", body)
	}

	if _, err := store.OpenObject(context.Background(), "seed/missing.json"); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("missing object: %v", err)
	}
}

func TestNewS3StoreRequiresBucket(t *testing.T) {
	if _, err := NewS3Store(context.Background(), config.S3Config{Region: "us-east-1"}, logger.Nop()); err == nil {
		t.Fatal("expected an error without a bucket")
	}
}
