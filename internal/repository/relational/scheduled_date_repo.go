package relational

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type scheduledDateRepository struct {
	db *gorm.DB
}

func NewScheduledDateRepository(db *gorm.DB) repository.ScheduledDateRepository {
	return &scheduledDateRepository{db: db}
}

func (r *scheduledDateRepository) Create(ctx context.Context, date *domain.ScheduledWorkoutDate) (string, error) {
	if date.WorkoutID == "" {
		return "", errors.New("scheduled date requires workoutId")
	}
	date.ID = uuid.NewString()
	date.ScheduledAt = domain.NormalizeInstant(date.ScheduledAt)
	ts := now()
	date.CreatedAt = ts
	date.UpdatedAt = ts

	row := scheduledDateToRow(date)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	return date.ID, nil
}

func (r *scheduledDateRepository) GetByID(ctx context.Context, id, workoutID string) (*domain.ScheduledWorkoutDate, error) {
	return r.get(r.db.WithContext(ctx), id, workoutID)
}

func (r *scheduledDateRepository) get(tx *gorm.DB, id, workoutID string) (*domain.ScheduledWorkoutDate, error) {
	var row scheduledDateRow
	if err := tx.Where("id = ? AND workout_id = ?", id, workoutID).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	d := row.toDomain()
	return &d, nil
}

func (r *scheduledDateRepository) ListByWorkout(ctx context.Context, workoutID string, page repository.Page) ([]domain.ScheduledWorkoutDate, int64, error) {
	var rows []scheduledDateRow
	q := r.db.WithContext(ctx).Model(&scheduledDateRow{}).Where("workout_id = ?", workoutID)
	total, err := paginate(q, page, "scheduled_at ASC, id ASC", &rows)
	if err != nil {
		return nil, 0, err
	}
	return toDomainSlice[scheduledDateRow, domain.ScheduledWorkoutDate](rows), total, nil
}

func (r *scheduledDateRepository) HasAfter(ctx context.Context, workoutID string, t time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&scheduledDateRow{}).
		Where("workout_id = ? AND scheduled_at > ?", workoutID, t.UTC()).
		Limit(1).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Update runs read, mutate and write in one transaction, locking the row on Postgres.
func (r *scheduledDateRepository) Update(ctx context.Context, id, workoutID string, mutate func(*domain.ScheduledWorkoutDate) error) (*domain.ScheduledWorkoutDate, error) {
	var updated *domain.ScheduledWorkoutDate
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := r.get(lockForUpdate(tx), id, workoutID)
		if err != nil {
			return err
		}
		if err := mutate(current); err != nil {
			return err
		}
		current.ScheduledAt = domain.NormalizeInstant(current.ScheduledAt)
		current.UpdatedAt = now()

		res := tx.Model(&scheduledDateRow{}).Where("id = ? AND workout_id = ?", id, workoutID).Updates(map[string]interface{}{
			"scheduled_at": current.ScheduledAt,
			"activated":    current.Activated,
			"updated_at":   current.UpdatedAt,
		})
		if res.Error != nil {
			return res.Error
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *scheduledDateRepository) Delete(ctx context.Context, id, workoutID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND workout_id = ?", id, workoutID).Delete(&scheduledDateRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *scheduledDateRepository) FindInWindow(ctx context.Context, from, to time.Time) ([]domain.ScheduledWorkoutDate, error) {
	var rows []scheduledDateRow
	err := r.db.WithContext(ctx).
		Where("scheduled_at >= ? AND scheduled_at < ?", from.UTC(), to.UTC()).
		Order("scheduled_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice[scheduledDateRow, domain.ScheduledWorkoutDate](rows), nil
}
