package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"alcyxob/workout-tracker/internal/repository"
)

const seedCatalog = `{
  "exercise_categories": [
    {"name": "Cardio", "exercises": [
      {"name": "Running", "description": "Outdoor or treadmill"},
      {"name": "Cycling"},
      {"name": "Running"}
    ]},
    {"name": "Strength", "exercises": [{"name": "Squat"}]},
    {"name": "Cardio", "exercises": [{"name": "Rowing"}]},
    {"name": "", "exercises": [{"name": "Orphan"}]}
  ]
}`

func TestParseCatalog(t *testing.T) {
	c, err := ParseCatalog(strings.NewReader(seedCatalog))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(c.Categories) != 4 || c.Categories[0].Exercises[0].Description != "Outdoor or treadmill" {
		t.Fatalf("catalog = %+v", c)
	}
	if _, err := ParseCatalog(strings.NewReader("{")); err == nil {
		t.Fatal("truncated document parsed")
	}
}

func TestImportCatalogIsIdempotent(t *testing.T) {
	env := newTestEnv(testNow)
	ctx := context.Background()
	c, err := ParseCatalog(strings.NewReader(seedCatalog))
	if err != nil {
		t.Fatal(err)
	}

	result, err := env.catalog.ImportCatalog(ctx, c)
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	// Cardio appears twice in the document; both blocks feed the same category.
	if result != (ImportResult{CategoriesAdded: 2, ExercisesAdded: 4}) {
		t.Fatalf("first import = %+v", result)
	}

	result, err = env.catalog.ImportCatalog(ctx, c)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if result != (ImportResult{}) {
		t.Fatalf("second import = %+v", result)
	}

	categories, count, err := env.catalog.ListCategories(ctx, repository.Page{Limit: 20})
	if err != nil || count != 2 {
		t.Fatalf("categories = %v, %d, %v", categories, count, err)
	}
	if categories[0].Name != "Cardio" || categories[1].Name != "Strength" {
		t.Fatalf("categories out of order: %v", categories)
	}
	exercises, count, err := env.catalog.ListExercises(ctx, categories[0].ID, repository.Page{})
	if err != nil || count != 3 {
		t.Fatalf("cardio exercises = %v, %d, %v", exercises, count, err)
	}
	got, err := env.catalog.GetExerciseByID(ctx, exercises[0].ID)
	if err != nil || got.Name != "Cycling" {
		t.Fatalf("get exercise = %+v, %v", got, err)
	}
}

func TestCatalogNotFound(t *testing.T) {
	env := newTestEnv(testNow)
	ctx := context.Background()
	if _, _, err := env.catalog.ListExercises(ctx, "missing", repository.Page{}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("list exercises: %v", err)
	}
	if _, err := env.catalog.GetExerciseByID(ctx, "missing"); !errors.Is(err, ErrExerciseNotFound) {
		t.Fatalf("get exercise: %v", err)
	}
}
