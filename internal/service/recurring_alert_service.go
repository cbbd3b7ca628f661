package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
)

const (
	fieldTime     = "time"
	fieldWeekDays = "weekDays"
)

// RecurringAlertInput carries a create or partial update. On create both fields are required.
type RecurringAlertInput struct {
	Time     *domain.TimeOfDay
	WeekDays *[]int
}

type RecurringAlertService interface {
	// CreateRecurringAlert switches the workout to recurrent mode (purging its scheduled
	// dates) and adds a not yet activated alert.
	CreateRecurringAlert(ctx context.Context, ownerID, workoutID string, input RecurringAlertInput) (*domain.RecurringWorkoutAlert, error)
	GetRecurringAlert(ctx context.Context, ownerID, workoutID, alertID string) (*domain.RecurringWorkoutAlert, error)
	ListRecurringAlerts(ctx context.Context, ownerID, workoutID string, page repository.Page) ([]domain.RecurringWorkoutAlert, int64, error)
	// UpdateRecurringAlert never changes activated on its own.
	UpdateRecurringAlert(ctx context.Context, ownerID, workoutID, alertID string, patch domain.RecurringAlertPatch) (*domain.RecurringWorkoutAlert, error)
	ActivateRecurringAlert(ctx context.Context, ownerID, workoutID, alertID string) (*domain.RecurringWorkoutAlert, error)
	DeleteRecurringAlert(ctx context.Context, ownerID, workoutID, alertID string) error
}

type recurringAlertService struct {
	workoutRepo repository.WorkoutRepository
	alertRepo   repository.RecurringAlertRepository
	workouts    WorkoutService
}

func NewRecurringAlertService(workoutRepo repository.WorkoutRepository, alertRepo repository.RecurringAlertRepository, workouts WorkoutService) RecurringAlertService {
	return &recurringAlertService{
		workoutRepo: workoutRepo,
		alertRepo:   alertRepo,
		workouts:    workouts,
	}
}

func (s *recurringAlertService) CreateRecurringAlert(ctx context.Context, ownerID, workoutID string, input RecurringAlertInput) (*domain.RecurringWorkoutAlert, error) {
	workout, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID)
	if err != nil {
		return nil, err
	}
	if input.Time == nil {
		return nil, invalid(fieldTime, msgRequired)
	}
	if input.WeekDays == nil {
		return nil, invalid(fieldWeekDays, msgRequired)
	}
	if err := validateAlertFields(input.Time, input.WeekDays); err != nil {
		return nil, err
	}

	if err := s.workouts.EnsureMode(ctx, workout, domain.WorkoutTypeRecurrent); err != nil {
		return nil, err
	}

	alert := &domain.RecurringWorkoutAlert{
		WorkoutID: workout.ID,
		Time:      *input.Time,
		WeekDays:  append([]int{}, (*input.WeekDays)...),
	}
	if _, err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (s *recurringAlertService) GetRecurringAlert(ctx context.Context, ownerID, workoutID, alertID string) (*domain.RecurringWorkoutAlert, error) {
	if _, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID); err != nil {
		return nil, err
	}
	alert, err := s.alertRepo.GetByID(ctx, alertID, workoutID)
	if err != nil {
		return nil, mapAlertErr(err)
	}
	return alert, nil
}

func (s *recurringAlertService) ListRecurringAlerts(ctx context.Context, ownerID, workoutID string, page repository.Page) ([]domain.RecurringWorkoutAlert, int64, error) {
	workout, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID)
	if err != nil {
		return nil, 0, err
	}
	if !workout.IsRecurrent() {
		return nil, 0, ErrWorkoutNotRecurrent
	}
	return s.alertRepo.ListByWorkout(ctx, workoutID, page)
}

func (s *recurringAlertService) UpdateRecurringAlert(ctx context.Context, ownerID, workoutID, alertID string, patch domain.RecurringAlertPatch) (*domain.RecurringWorkoutAlert, error) {
	if _, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID); err != nil {
		return nil, err
	}
	if err := validateAlertFields(patch.Time, patch.WeekDays); err != nil {
		return nil, err
	}
	alert, err := s.alertRepo.Update(ctx, alertID, workoutID, func(current *domain.RecurringWorkoutAlert) error {
		current.Apply(patch)
		return nil
	})
	if err != nil {
		return nil, mapAlertErr(err)
	}
	return alert, nil
}

func (s *recurringAlertService) ActivateRecurringAlert(ctx context.Context, ownerID, workoutID, alertID string) (*domain.RecurringWorkoutAlert, error) {
	if _, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID); err != nil {
		return nil, err
	}
	alert, err := s.alertRepo.Update(ctx, alertID, workoutID, func(current *domain.RecurringWorkoutAlert) error {
		current.Activate()
		return nil
	})
	if err != nil {
		return nil, mapAlertErr(err)
	}
	return alert, nil
}

func (s *recurringAlertService) DeleteRecurringAlert(ctx context.Context, ownerID, workoutID, alertID string) error {
	if _, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID); err != nil {
		return err
	}
	return mapAlertErr(s.alertRepo.Delete(ctx, alertID, workoutID))
}

// validateAlertFields checks the fields that are present.
func validateAlertFields(t *domain.TimeOfDay, days *[]int) error {
	if t != nil && !t.Valid() {
		return invalid(fieldTime, domain.ErrInvalidTimeOfDay.Error())
	}
	if days != nil {
		if err := domain.ValidateWeekDays(*days); err != nil {
			return invalid(fieldWeekDays, err.Error())
		}
	}
	return nil
}

func mapAlertErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRecurringAlertNotFound
	}
	return err
}
