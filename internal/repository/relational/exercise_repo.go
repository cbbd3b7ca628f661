package relational

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r exerciseCategoryRow) toDomain() domain.ExerciseCategory {
	return domain.ExerciseCategory{ID: r.ID, Name: r.Name}
}

func (r exerciseRow) toDomain() domain.Exercise {
	return domain.Exercise{ID: r.ID, Name: r.Name, Description: r.Description, CategoryID: r.CategoryID}
}

type exerciseCategoryRepository struct {
	db *gorm.DB
}

func NewExerciseCategoryRepository(db *gorm.DB) repository.ExerciseCategoryRepository {
	return &exerciseCategoryRepository{db: db}
}

func (r *exerciseCategoryRepository) CreateMany(ctx context.Context, categories []domain.ExerciseCategory) (int, error) {
	if len(categories) == 0 {
		return 0, nil
	}
	rows := make([]exerciseCategoryRow, len(categories))
	for i := range categories {
		categories[i].ID = uuid.NewString()
		rows[i] = exerciseCategoryRow{ID: categories[i].ID, Name: categories[i].Name}
	}
	res := r.db.WithContext(ctx).Create(&rows)
	return int(res.RowsAffected), res.Error
}

func (r *exerciseCategoryRepository) GetByID(ctx context.Context, id string) (*domain.ExerciseCategory, error) {
	var row exerciseCategoryRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	c := row.toDomain()
	return &c, nil
}

func (r *exerciseCategoryRepository) FindByNames(ctx context.Context, names []string) ([]domain.ExerciseCategory, error) {
	if len(names) == 0 {
		return []domain.ExerciseCategory{}, nil
	}
	var rows []exerciseCategoryRow
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice[exerciseCategoryRow, domain.ExerciseCategory](rows), nil
}

func (r *exerciseCategoryRepository) List(ctx context.Context, page repository.Page) ([]domain.ExerciseCategory, int64, error) {
	var rows []exerciseCategoryRow
	q := r.db.WithContext(ctx).Model(&exerciseCategoryRow{})
	total, err := paginate(q, page, "lower(name) ASC", &rows)
	if err != nil {
		return nil, 0, err
	}
	return toDomainSlice[exerciseCategoryRow, domain.ExerciseCategory](rows), total, nil
}

type exerciseRepository struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) repository.ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) CreateMany(ctx context.Context, exercises []domain.Exercise) (int, error) {
	if len(exercises) == 0 {
		return 0, nil
	}
	rows := make([]exerciseRow, len(exercises))
	for i := range exercises {
		exercises[i].ID = uuid.NewString()
		e := exercises[i]
		rows[i] = exerciseRow{ID: e.ID, Name: e.Name, Description: e.Description, CategoryID: e.CategoryID}
	}
	res := r.db.WithContext(ctx).Create(&rows)
	return int(res.RowsAffected), res.Error
}

func (r *exerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	var row exerciseRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	e := row.toDomain()
	return &e, nil
}

func (r *exerciseRepository) ListByCategory(ctx context.Context, categoryID string, page repository.Page) ([]domain.Exercise, int64, error) {
	var rows []exerciseRow
	q := r.db.WithContext(ctx).Model(&exerciseRow{}).Where("category_id = ?", categoryID)
	total, err := paginate(q, page, "lower(name) ASC", &rows)
	if err != nil {
		return nil, 0, err
	}
	return toDomainSlice[exerciseRow, domain.Exercise](rows), total, nil
}
