package relational

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type recurringAlertRepository struct {
	db *gorm.DB
}

func NewRecurringAlertRepository(db *gorm.DB) repository.RecurringAlertRepository {
	return &recurringAlertRepository{db: db}
}

const byTimeOfDay = "hour ASC, minute ASC, second ASC, id ASC"

func (r *recurringAlertRepository) Create(ctx context.Context, alert *domain.RecurringWorkoutAlert) (string, error) {
	if alert.WorkoutID == "" {
		return "", errors.New("recurring alert requires workoutId")
	}
	alert.ID = uuid.NewString()
	ts := now()
	alert.CreatedAt = ts
	alert.UpdatedAt = ts

	row := recurringAlertToRow(alert)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	alert.WeekDays = weekDaysFromMask(row.WeekDayMask)
	return alert.ID, nil
}

func (r *recurringAlertRepository) GetByID(ctx context.Context, id, workoutID string) (*domain.RecurringWorkoutAlert, error) {
	return r.get(r.db.WithContext(ctx), id, workoutID)
}

func (r *recurringAlertRepository) get(tx *gorm.DB, id, workoutID string) (*domain.RecurringWorkoutAlert, error) {
	var row recurringAlertRow
	if err := tx.Where("id = ? AND workout_id = ?", id, workoutID).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	a := row.toDomain()
	return &a, nil
}

func (r *recurringAlertRepository) ListByWorkout(ctx context.Context, workoutID string, page repository.Page) ([]domain.RecurringWorkoutAlert, int64, error) {
	var rows []recurringAlertRow
	q := r.db.WithContext(ctx).Model(&recurringAlertRow{}).Where("workout_id = ?", workoutID)
	total, err := paginate(q, page, byTimeOfDay, &rows)
	if err != nil {
		return nil, 0, err
	}
	return toDomainSlice[recurringAlertRow, domain.RecurringWorkoutAlert](rows), total, nil
}

func (r *recurringAlertRepository) Update(ctx context.Context, id, workoutID string, mutate func(*domain.RecurringWorkoutAlert) error) (*domain.RecurringWorkoutAlert, error) {
	var updated *domain.RecurringWorkoutAlert
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := r.get(lockForUpdate(tx), id, workoutID)
		if err != nil {
			return err
		}
		if err := mutate(current); err != nil {
			return err
		}
		current.UpdatedAt = now()

		row := recurringAlertToRow(current)
		res := tx.Model(&recurringAlertRow{}).Where("id = ? AND workout_id = ?", id, workoutID).Updates(map[string]interface{}{
			"hour":          row.Hour,
			"minute":        row.Minute,
			"second":        row.Second,
			"week_day_mask": row.WeekDayMask,
			"activated":     row.Activated,
			"updated_at":    row.UpdatedAt,
		})
		if res.Error != nil {
			return res.Error
		}
		current.WeekDays = weekDaysFromMask(row.WeekDayMask)
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *recurringAlertRepository) Delete(ctx context.Context, id, workoutID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND workout_id = ?", id, workoutID).Delete(&recurringAlertRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *recurringAlertRepository) FindDueAt(ctx context.Context, day domain.Weekday, hour, minute int) ([]domain.RecurringWorkoutAlert, error) {
	var rows []recurringAlertRow
	err := r.db.WithContext(ctx).
		Where("hour = ? AND minute = ? AND (week_day_mask & ?) <> 0", hour, minute, 1<<int(day)).
		Order(byTimeOfDay).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice[recurringAlertRow, domain.RecurringWorkoutAlert](rows), nil
}
