package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
)

// WorkoutInput is the payload of a workout creation.
type WorkoutInput struct {
	Name        string `json:"name" validate:"required,max=150"`
	Description string `json:"description"`
}

// --- Service Interface ---
type WorkoutService interface {
	CreateWorkout(ctx context.Context, ownerID string, input WorkoutInput) (*domain.Workout, error)
	GetWorkout(ctx context.Context, ownerID, workoutID string) (*domain.Workout, error)
	ListWorkouts(ctx context.Context, ownerID string, page repository.Page) ([]domain.Workout, int64, error)
	UpdateWorkout(ctx context.Context, ownerID, workoutID string, patch domain.WorkoutPatch) (*domain.Workout, error)
	DeleteWorkout(ctx context.Context, ownerID, workoutID string) error
	// Status computes Pending / Active / Completed for w at the current time.
	Status(ctx context.Context, w *domain.Workout) (domain.WorkoutStatus, error)

	// SwitchToRecurrent marks w recurrent and deletes all of its scheduled dates.
	// It always purges, even when w already is recurrent.
	SwitchToRecurrent(ctx context.Context, w *domain.Workout) error
	// SwitchToScheduled marks w scheduled and deletes all of its recurring alerts.
	SwitchToScheduled(ctx context.Context, w *domain.Workout) error
	// EnsureMode switches w to target only when its type differs. Schedule creation
	// calls it before inserting a child.
	EnsureMode(ctx context.Context, w *domain.Workout, target domain.WorkoutType) error
}

// --- Service Implementation ---

type workoutService struct {
	workoutRepo repository.WorkoutRepository
	dateRepo    repository.ScheduledDateRepository
	sanitizer   *bluemonday.Policy
	clock       Clock
}

// NewWorkoutService creates a new instance of workoutService. A nil clock uses time.Now.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, dateRepo repository.ScheduledDateRepository, clock Clock) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
		dateRepo:    dateRepo,
		sanitizer:   bluemonday.StrictPolicy(),
		clock:       clock,
	}
}

func (s *workoutService) CreateWorkout(ctx context.Context, ownerID string, input WorkoutInput) (*domain.Workout, error) {
	if ownerID == "" {
		return nil, errors.New("owner ID is required to create a workout")
	}
	input.Description = s.sanitizer.Sanitize(input.Description)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	workout := &domain.Workout{
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		Type:        domain.WorkoutTypeUnset,
	}
	if _, err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) GetWorkout(ctx context.Context, ownerID, workoutID string) (*domain.Workout, error) {
	return ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID)
}

func (s *workoutService) ListWorkouts(ctx context.Context, ownerID string, page repository.Page) ([]domain.Workout, int64, error) {
	return s.workoutRepo.ListByOwner(ctx, ownerID, page)
}

func (s *workoutService) UpdateWorkout(ctx context.Context, ownerID, workoutID string, patch domain.WorkoutPatch) (*domain.Workout, error) {
	workout, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID)
	if err != nil {
		return nil, err
	}
	if patch.Description != nil {
		desc := s.sanitizer.Sanitize(*patch.Description)
		patch.Description = &desc
	}
	workout.Apply(patch)
	if err := validateStruct(WorkoutInput{Name: workout.Name, Description: workout.Description}); err != nil {
		return nil, err
	}

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// DeleteWorkout removes the workout and everything attached to it.
func (s *workoutService) DeleteWorkout(ctx context.Context, ownerID, workoutID string) error {
	err := s.workoutRepo.Delete(ctx, workoutID, ownerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWorkoutNotFound
	}
	return err
}

func (s *workoutService) Status(ctx context.Context, w *domain.Workout) (domain.WorkoutStatus, error) {
	if !w.IsScheduled() {
		return w.Status(false), nil
	}
	upcoming, err := s.dateRepo.HasAfter(ctx, w.ID, s.clock.now())
	if err != nil {
		return "", fmt.Errorf("check upcoming dates of workout %s: %w", w.ID, err)
	}
	return w.Status(upcoming), nil
}

func (s *workoutService) SwitchToRecurrent(ctx context.Context, w *domain.Workout) error {
	return s.switchType(ctx, w, domain.WorkoutTypeRecurrent)
}

func (s *workoutService) SwitchToScheduled(ctx context.Context, w *domain.Workout) error {
	return s.switchType(ctx, w, domain.WorkoutTypeScheduled)
}

func (s *workoutService) EnsureMode(ctx context.Context, w *domain.Workout, target domain.WorkoutType) error {
	if w.Type == target {
		return nil
	}
	switch target {
	case domain.WorkoutTypeScheduled:
		return s.SwitchToScheduled(ctx, w)
	case domain.WorkoutTypeRecurrent:
		return s.SwitchToRecurrent(ctx, w)
	default:
		return fmt.Errorf("cannot ensure workout mode %q", target)
	}
}

func (s *workoutService) switchType(ctx context.Context, w *domain.Workout, target domain.WorkoutType) error {
	if err := s.workoutRepo.SwitchType(ctx, w.ID, target); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	w.Type = target
	return nil
}

// ownedWorkout loads a workout the caller owns. Foreign workouts look missing.
func ownedWorkout(ctx context.Context, repo repository.WorkoutRepository, ownerID, workoutID string) (*domain.Workout, error) {
	workout, err := repo.GetByIDForOwner(ctx, workoutID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}
