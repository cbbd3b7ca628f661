package repository

import (
	"alcyxob/workout-tracker/internal/domain"
	"context"
	"time"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
	ErrConflict     = RepositoryError("concurrent modification")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Page selects a slice of an ordered list. A zero Limit means "no limit".
type Page struct {
	Limit  int
	Offset int
}

// WorkoutRepository stores workouts and owns the cascades that span their children.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Workout, error)
	// GetByIDForOwner returns ErrNotFound when the workout exists but belongs to someone else.
	GetByIDForOwner(ctx context.Context, id, ownerID string) (*domain.Workout, error)
	ListByOwner(ctx context.Context, ownerID string, page Page) ([]domain.Workout, int64, error) // newest first
	Update(ctx context.Context, workout *domain.Workout) error
	// SwitchType stores the new type and then deletes every child of the opposite schedule
	// kind: scheduled dates when switching to recurrent, recurring alerts when switching
	// to scheduled. Switching to unset purges both.
	SwitchType(ctx context.Context, id string, workoutType domain.WorkoutType) error
	// Delete removes the workout together with its dates, alerts, exercise plans and comments.
	Delete(ctx context.Context, id, ownerID string) error
}

// ScheduledDateRepository stores ScheduledWorkoutDates.
type ScheduledDateRepository interface {
	Create(ctx context.Context, date *domain.ScheduledWorkoutDate) (string, error)
	GetByID(ctx context.Context, id, workoutID string) (*domain.ScheduledWorkoutDate, error)
	ListByWorkout(ctx context.Context, workoutID string, page Page) ([]domain.ScheduledWorkoutDate, int64, error) // by datetime
	// HasAfter reports whether the workout has a scheduled date strictly after t.
	HasAfter(ctx context.Context, workoutID string, t time.Time) (bool, error)
	// Update loads the row, hands it to mutate and persists the result as one unit,
	// so mutate sees the previously stored values.
	Update(ctx context.Context, id, workoutID string, mutate func(*domain.ScheduledWorkoutDate) error) (*domain.ScheduledWorkoutDate, error)
	Delete(ctx context.Context, id, workoutID string) error
	// FindInWindow returns every date with from <= datetime < to, across all workouts.
	FindInWindow(ctx context.Context, from, to time.Time) ([]domain.ScheduledWorkoutDate, error)
}

// RecurringAlertRepository stores RecurringWorkoutAlerts.
type RecurringAlertRepository interface {
	Create(ctx context.Context, alert *domain.RecurringWorkoutAlert) (string, error)
	GetByID(ctx context.Context, id, workoutID string) (*domain.RecurringWorkoutAlert, error)
	ListByWorkout(ctx context.Context, workoutID string, page Page) ([]domain.RecurringWorkoutAlert, int64, error) // by time of day
	Update(ctx context.Context, id, workoutID string, mutate func(*domain.RecurringWorkoutAlert) error) (*domain.RecurringWorkoutAlert, error)
	Delete(ctx context.Context, id, workoutID string) error
	// FindDueAt returns alerts whose time is hour:minute (any second) and whose week days contain day.
	FindDueAt(ctx context.Context, day domain.Weekday, hour, minute int) ([]domain.RecurringWorkoutAlert, error)
}

// ExercisePlanRepository stores the exercise plans of a workout.
type ExercisePlanRepository interface {
	Create(ctx context.Context, plan *domain.ExercisePlan) (string, error)
	GetByID(ctx context.Context, id, workoutID string) (*domain.ExercisePlan, error)
	ListByWorkout(ctx context.Context, workoutID string, page Page) ([]domain.ExercisePlan, int64, error) // lower(name), newest first
	Update(ctx context.Context, plan *domain.ExercisePlan) error
	Delete(ctx context.Context, id, workoutID string) error
}

// CommentRepository stores the comments of a workout.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.WorkoutComment) (string, error)
	GetByID(ctx context.Context, id, workoutID string) (*domain.WorkoutComment, error)
	ListByWorkout(ctx context.Context, workoutID string, page Page) ([]domain.WorkoutComment, int64, error) // newest first
	Update(ctx context.Context, comment *domain.WorkoutComment) error
	Delete(ctx context.Context, id, workoutID string) error
}

// ExerciseCategoryRepository stores the exercise catalog categories.
type ExerciseCategoryRepository interface {
	CreateMany(ctx context.Context, categories []domain.ExerciseCategory) (int, error)
	GetByID(ctx context.Context, id string) (*domain.ExerciseCategory, error)
	FindByNames(ctx context.Context, names []string) ([]domain.ExerciseCategory, error)
	List(ctx context.Context, page Page) ([]domain.ExerciseCategory, int64, error) // lower(name)
}

// ExerciseRepository stores the exercise catalog.
type ExerciseRepository interface {
	CreateMany(ctx context.Context, exercises []domain.Exercise) (int, error)
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	ListByCategory(ctx context.Context, categoryID string, page Page) ([]domain.Exercise, int64, error) // lower(name)
}

// Repositories bundles one implementation of every contract so the server can
// swap storage backends in a single place.
type Repositories struct {
	Workouts           WorkoutRepository
	ScheduledDates     ScheduledDateRepository
	RecurringAlerts    RecurringAlertRepository
	ExercisePlans      ExercisePlanRepository
	Comments           CommentRepository
	ExerciseCategories ExerciseCategoryRepository
	Exercises          ExerciseRepository
}
