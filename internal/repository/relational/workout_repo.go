package relational

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type workoutRepository struct {
	db *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) repository.WorkoutRepository {
	return &workoutRepository{db: db}
}

func (r *workoutRepository) Create(ctx context.Context, workout *domain.Workout) (string, error) {
	if workout.OwnerID == "" || workout.Name == "" {
		return "", errors.New("workout requires ownerId and name")
	}
	workout.ID = uuid.NewString()
	ts := now()
	workout.CreatedAt = ts
	workout.UpdatedAt = ts

	row := workoutToRow(workout)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	return workout.ID, nil
}

func (r *workoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	var row workoutRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	w := row.toDomain()
	return &w, nil
}

func (r *workoutRepository) GetByIDForOwner(ctx context.Context, id, ownerID string) (*domain.Workout, error) {
	var row workoutRow
	if err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	w := row.toDomain()
	return &w, nil
}

func (r *workoutRepository) ListByOwner(ctx context.Context, ownerID string, page repository.Page) ([]domain.Workout, int64, error) {
	var rows []workoutRow
	q := r.db.WithContext(ctx).Model(&workoutRow{}).Where("owner_id = ?", ownerID)
	total, err := paginate(q, page, "created_at DESC, id ASC", &rows)
	if err != nil {
		return nil, 0, err
	}
	return toDomainSlice[workoutRow, domain.Workout](rows), total, nil
}

func (r *workoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	if workout.ID == "" {
		return errors.New("workout ID is required for update")
	}
	workout.UpdatedAt = now()
	res := r.db.WithContext(ctx).Model(&workoutRow{}).Where("id = ?", workout.ID).Updates(map[string]interface{}{
		"name":        workout.Name,
		"description": workout.Description,
		"updated_at":  workout.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SwitchType sets the type and purges the opposite children in one transaction.
func (r *workoutRepository) SwitchType(ctx context.Context, id string, workoutType domain.WorkoutType) error {
	if !workoutType.Valid() {
		return fmt.Errorf("unknown workout type %q", workoutType)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&workoutRow{}).Where("id = ?", id).Updates(map[string]interface{}{
			"type":       string(workoutType),
			"updated_at": now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		if workoutType != domain.WorkoutTypeScheduled {
			if err := tx.Where("workout_id = ?", id).Delete(&scheduledDateRow{}).Error; err != nil {
				return fmt.Errorf("purge scheduled dates: %w", err)
			}
		}
		if workoutType != domain.WorkoutTypeRecurrent {
			if err := tx.Where("workout_id = ?", id).Delete(&recurringAlertRow{}).Error; err != nil {
				return fmt.Errorf("purge recurring alerts: %w", err)
			}
		}
		return nil
	})
}

func (r *workoutRepository) Delete(ctx context.Context, id, ownerID string) error {
	if id == "" || ownerID == "" {
		return errors.New("workout ID and owner ID are required for deletion")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&workoutRow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		for _, child := range []interface{}{&scheduledDateRow{}, &recurringAlertRow{}, &exercisePlanRow{}, &commentRow{}} {
			if err := tx.Where("workout_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
