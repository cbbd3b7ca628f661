package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"time"
)

const fieldDatetime = "datetime"

type ScheduledDateService interface {
	// CreateScheduledDate switches the workout to scheduled mode (purging its recurring
	// alerts) and adds a not yet activated date. at must not be in the past.
	CreateScheduledDate(ctx context.Context, ownerID, workoutID string, at time.Time) (*domain.ScheduledWorkoutDate, error)
	GetScheduledDate(ctx context.Context, ownerID, workoutID, dateID string) (*domain.ScheduledWorkoutDate, error)
	ListScheduledDates(ctx context.Context, ownerID, workoutID string, page repository.Page) ([]domain.ScheduledWorkoutDate, int64, error)
	// UpdateScheduledDate applies patch. Moving the date to another instant resets activated.
	UpdateScheduledDate(ctx context.Context, ownerID, workoutID, dateID string, patch domain.ScheduledDatePatch) (*domain.ScheduledWorkoutDate, error)
	ActivateScheduledDate(ctx context.Context, ownerID, workoutID, dateID string) (*domain.ScheduledWorkoutDate, error)
	DeleteScheduledDate(ctx context.Context, ownerID, workoutID, dateID string) error
}

type scheduledDateService struct {
	workoutRepo repository.WorkoutRepository
	dateRepo    repository.ScheduledDateRepository
	workouts    WorkoutService
	clock       Clock
}

func NewScheduledDateService(workoutRepo repository.WorkoutRepository, dateRepo repository.ScheduledDateRepository, workouts WorkoutService, clock Clock) ScheduledDateService {
	return &scheduledDateService{
		workoutRepo: workoutRepo,
		dateRepo:    dateRepo,
		workouts:    workouts,
		clock:       clock,
	}
}

func (s *scheduledDateService) CreateScheduledDate(ctx context.Context, ownerID, workoutID string, at time.Time) (*domain.ScheduledWorkoutDate, error) {
	workout, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID)
	if err != nil {
		return nil, err
	}
	if at.IsZero() {
		return nil, invalid(fieldDatetime, msgRequired)
	}
	if at.Before(s.clock.now()) {
		return nil, invalid(fieldDatetime, msgInPast)
	}

	if err := s.workouts.EnsureMode(ctx, workout, domain.WorkoutTypeScheduled); err != nil {
		return nil, err
	}

	date := &domain.ScheduledWorkoutDate{
		WorkoutID:   workout.ID,
		ScheduledAt: at,
	}
	if _, err := s.dateRepo.Create(ctx, date); err != nil {
		return nil, err
	}
	return date, nil
}

func (s *scheduledDateService) GetScheduledDate(ctx context.Context, ownerID, workoutID, dateID string) (*domain.ScheduledWorkoutDate, error) {
	if _, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID); err != nil {
		return nil, err
	}
	date, err := s.dateRepo.GetByID(ctx, dateID, workoutID)
	if err != nil {
		return nil, mapDateErr(err)
	}
	return date, nil
}

func (s *scheduledDateService) ListScheduledDates(ctx context.Context, ownerID, workoutID string, page repository.Page) ([]domain.ScheduledWorkoutDate, int64, error) {
	workout, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID)
	if err != nil {
		return nil, 0, err
	}
	if !workout.IsScheduled() {
		return nil, 0, ErrWorkoutNotScheduled
	}
	return s.dateRepo.ListByWorkout(ctx, workoutID, page)
}

func (s *scheduledDateService) UpdateScheduledDate(ctx context.Context, ownerID, workoutID, dateID string, patch domain.ScheduledDatePatch) (*domain.ScheduledWorkoutDate, error) {
	if _, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID); err != nil {
		return nil, err
	}
	if patch.ScheduledAt != nil && patch.ScheduledAt.IsZero() {
		return nil, invalid(fieldDatetime, msgRequired)
	}

	now := s.clock.now()
	date, err := s.dateRepo.Update(ctx, dateID, workoutID, func(current *domain.ScheduledWorkoutDate) error {
		// Only a move to another instant is checked, so an already passed date
		// can still be (de)activated.
		if patch.ScheduledAt != nil {
			at := domain.NormalizeInstant(*patch.ScheduledAt)
			if !at.Equal(current.ScheduledAt) && at.Before(now) {
				return invalid(fieldDatetime, msgInPast)
			}
		}
		current.Apply(patch)
		return nil
	})
	if err != nil {
		return nil, mapDateErr(err)
	}
	return date, nil
}

func (s *scheduledDateService) ActivateScheduledDate(ctx context.Context, ownerID, workoutID, dateID string) (*domain.ScheduledWorkoutDate, error) {
	if _, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID); err != nil {
		return nil, err
	}
	date, err := s.dateRepo.Update(ctx, dateID, workoutID, func(current *domain.ScheduledWorkoutDate) error {
		current.Activate()
		return nil
	})
	if err != nil {
		return nil, mapDateErr(err)
	}
	return date, nil
}

func (s *scheduledDateService) DeleteScheduledDate(ctx context.Context, ownerID, workoutID, dateID string) error {
	if _, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID); err != nil {
		return err
	}
	return mapDateErr(s.dateRepo.Delete(ctx, dateID, workoutID))
}

func mapDateErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrScheduledDateNotFound
	}
	return err
}
