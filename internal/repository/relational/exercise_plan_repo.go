package relational

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type exercisePlanRepository struct {
	db *gorm.DB
}

func NewExercisePlanRepository(db *gorm.DB) repository.ExercisePlanRepository {
	return &exercisePlanRepository{db: db}
}

func (r *exercisePlanRepository) Create(ctx context.Context, plan *domain.ExercisePlan) (string, error) {
	if plan.WorkoutID == "" || plan.ExerciseID == "" || plan.Name == "" {
		return "", errors.New("exercise plan requires workoutId, exerciseId and name")
	}
	plan.ID = uuid.NewString()
	ts := now()
	plan.CreatedAt = ts
	plan.UpdatedAt = ts

	row := exercisePlanToRow(plan)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	return plan.ID, nil
}

func (r *exercisePlanRepository) GetByID(ctx context.Context, id, workoutID string) (*domain.ExercisePlan, error) {
	var row exercisePlanRow
	if err := r.db.WithContext(ctx).Where("id = ? AND workout_id = ?", id, workoutID).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	p := row.toDomain()
	return &p, nil
}

func (r *exercisePlanRepository) ListByWorkout(ctx context.Context, workoutID string, page repository.Page) ([]domain.ExercisePlan, int64, error) {
	var rows []exercisePlanRow
	q := r.db.WithContext(ctx).Model(&exercisePlanRow{}).Where("workout_id = ?", workoutID)
	total, err := paginate(q, page, "lower(name) ASC, created_at DESC", &rows)
	if err != nil {
		return nil, 0, err
	}
	return toDomainSlice[exercisePlanRow, domain.ExercisePlan](rows), total, nil
}

func (r *exercisePlanRepository) Update(ctx context.Context, plan *domain.ExercisePlan) error {
	if plan.ID == "" {
		return errors.New("exercise plan ID is required for update")
	}
	plan.UpdatedAt = now()
	res := r.db.WithContext(ctx).Model(&exercisePlanRow{}).
		Where("id = ? AND workout_id = ?", plan.ID, plan.WorkoutID).
		Updates(map[string]interface{}{
			"exercise_id":         plan.ExerciseID,
			"name":                plan.Name,
			"description":         plan.Description,
			"sets":                plan.Sets,
			"reps":                plan.Reps,
			"weight":              plan.Weight,
			"weight_measure_unit": plan.WeightMeasureUnit,
			"updated_at":          plan.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *exercisePlanRepository) Delete(ctx context.Context, id, workoutID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND workout_id = ?", id, workoutID).Delete(&exercisePlanRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
