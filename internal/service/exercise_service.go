package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// Catalog is the seed document: {"exercise_categories":[{"name":..,"exercises":[..]}]}.
type Catalog struct {
	Categories []CatalogCategory `json:"exercise_categories"`
}

type CatalogCategory struct {
	Name      string            `json:"name"`
	Exercises []CatalogExercise `json:"exercises"`
}

type CatalogExercise struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ImportResult counts what ImportCatalog inserted.
type ImportResult struct {
	CategoriesAdded int
	ExercisesAdded  int
}

// ParseCatalog decodes a seed document.
func ParseCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode exercise catalog: %w", err)
	}
	return &c, nil
}

// --- Service Interface ---
type ExerciseCatalogService interface {
	ListCategories(ctx context.Context, page repository.Page) ([]domain.ExerciseCategory, int64, error)
	ListExercises(ctx context.Context, categoryID string, page repository.Page) ([]domain.Exercise, int64, error)
	GetExerciseByID(ctx context.Context, exerciseID string) (*domain.Exercise, error)
	// ImportCatalog inserts the categories and exercises of c that are not stored yet.
	// Running it twice with the same catalog adds nothing the second time.
	ImportCatalog(ctx context.Context, c *Catalog) (ImportResult, error)
}

// --- Service Implementation ---

// exerciseCatalogService implements the ExerciseCatalogService interface.
type exerciseCatalogService struct {
	categoryRepo repository.ExerciseCategoryRepository
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseCatalogService creates a new instance of exerciseCatalogService.
func NewExerciseCatalogService(categoryRepo repository.ExerciseCategoryRepository, exerciseRepo repository.ExerciseRepository) ExerciseCatalogService {
	return &exerciseCatalogService{
		categoryRepo: categoryRepo,
		exerciseRepo: exerciseRepo,
	}
}

func (s *exerciseCatalogService) ListCategories(ctx context.Context, page repository.Page) ([]domain.ExerciseCategory, int64, error) {
	return s.categoryRepo.List(ctx, page)
}

func (s *exerciseCatalogService) ListExercises(ctx context.Context, categoryID string, page repository.Page) ([]domain.Exercise, int64, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, ErrCategoryNotFound
		}
		return nil, 0, err
	}
	return s.exerciseRepo.ListByCategory(ctx, categoryID, page)
}

// GetExerciseByID retrieves a single catalog exercise.
func (s *exerciseCatalogService) GetExerciseByID(ctx context.Context, exerciseID string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseCatalogService) ImportCatalog(ctx context.Context, c *Catalog) (ImportResult, error) {
	var result ImportResult
	categories := uniqueCategories(c.Categories)

	names := make([]string, 0, len(categories))
	for _, cat := range categories {
		names = append(names, cat.Name)
	}
	existing, err := s.categoryRepo.FindByNames(ctx, names)
	if err != nil {
		return result, err
	}
	stored := make(map[string]string, len(existing)) // name -> id
	for _, cat := range existing {
		stored[cat.Name] = cat.ID
	}

	var newCategories []domain.ExerciseCategory
	for _, cat := range categories {
		if _, ok := stored[cat.Name]; !ok {
			newCategories = append(newCategories, domain.ExerciseCategory{Name: cat.Name})
		}
	}
	if result.CategoriesAdded, err = s.categoryRepo.CreateMany(ctx, newCategories); err != nil {
		return result, fmt.Errorf("insert categories: %w", err)
	}
	for _, cat := range newCategories {
		stored[cat.Name] = cat.ID
	}

	var newExercises []domain.Exercise
	for _, cat := range c.Categories {
		categoryID, ok := stored[cat.Name]
		if !ok {
			continue
		}
		known, err := s.exerciseNames(ctx, categoryID)
		if err != nil {
			return result, err
		}
		for _, ex := range cat.Exercises {
			if ex.Name == "" || utf8.RuneCountInString(ex.Name) > maxExerciseNameLen || known[ex.Name] {
				continue
			}
			newExercises = append(newExercises, domain.Exercise{Name: ex.Name, Description: ex.Description, CategoryID: categoryID})
		}
	}
	newExercises = uniqueExercises(newExercises)
	if result.ExercisesAdded, err = s.exerciseRepo.CreateMany(ctx, newExercises); err != nil {
		return result, fmt.Errorf("insert exercises: %w", err)
	}
	return result, nil
}

func (s *exerciseCatalogService) exerciseNames(ctx context.Context, categoryID string) (map[string]bool, error) {
	exercises, _, err := s.exerciseRepo.ListByCategory(ctx, categoryID, repository.Page{})
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(exercises))
	for _, ex := range exercises {
		names[ex.Name] = true
	}
	return names, nil
}

const (
	maxCategoryNameLen = 100
	maxExerciseNameLen = 150
)

// uniqueCategories keeps the first category of each name and drops unnamed or overlong ones.
func uniqueCategories(in []CatalogCategory) []CatalogCategory {
	seen := make(map[string]bool, len(in))
	out := make([]CatalogCategory, 0, len(in))
	for _, c := range in {
		if c.Name == "" || utf8.RuneCountInString(c.Name) > maxCategoryNameLen || seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		out = append(out, c)
	}
	return out
}

// uniqueExercises keeps the first exercise of each (name, category) pair.
func uniqueExercises(in []domain.Exercise) []domain.Exercise {
	type key struct{ name, category string }
	seen := make(map[key]bool, len(in))
	out := make([]domain.Exercise, 0, len(in))
	for _, e := range in {
		k := key{e.Name, e.CategoryID}
		if e.Name == "" || e.CategoryID == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out
}
