package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"

	"github.com/microcosm-cc/bluemonday"
)

// ExercisePlanInput is the payload of an exercise plan creation.
type ExercisePlanInput struct {
	ExerciseID        string `json:"exerciseId" validate:"required"`
	Name              string `json:"name" validate:"required,max=150"`
	Description       string `json:"description"`
	Sets              *int   `json:"sets" validate:"omitempty,min=0"`
	Reps              *int   `json:"reps" validate:"omitempty,min=0"`
	Weight            *int   `json:"weight" validate:"omitempty,min=0"`
	WeightMeasureUnit string `json:"weightMeasureUnit" validate:"max=50"`
}

type ExercisePlanService interface {
	CreateExercisePlan(ctx context.Context, ownerID, workoutID string, input ExercisePlanInput) (*domain.ExercisePlan, error)
	GetExercisePlan(ctx context.Context, ownerID, workoutID, planID string) (*domain.ExercisePlan, error)
	ListExercisePlans(ctx context.Context, ownerID, workoutID string, page repository.Page) ([]domain.ExercisePlan, int64, error)
	UpdateExercisePlan(ctx context.Context, ownerID, workoutID, planID string, patch domain.ExercisePlanPatch) (*domain.ExercisePlan, error)
	DeleteExercisePlan(ctx context.Context, ownerID, workoutID, planID string) error
}

type exercisePlanService struct {
	workoutRepo  repository.WorkoutRepository
	planRepo     repository.ExercisePlanRepository
	exerciseRepo repository.ExerciseRepository
	sanitizer    *bluemonday.Policy
}

func NewExercisePlanService(workoutRepo repository.WorkoutRepository, planRepo repository.ExercisePlanRepository, exerciseRepo repository.ExerciseRepository) ExercisePlanService {
	return &exercisePlanService{
		workoutRepo:  workoutRepo,
		planRepo:     planRepo,
		exerciseRepo: exerciseRepo,
		sanitizer:    bluemonday.StrictPolicy(),
	}
}

func (s *exercisePlanService) CreateExercisePlan(ctx context.Context, ownerID, workoutID string, input ExercisePlanInput) (*domain.ExercisePlan, error) {
	workout, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID)
	if err != nil {
		return nil, err
	}
	input.Description = s.sanitizer.Sanitize(input.Description)
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if err := s.checkExercise(ctx, input.ExerciseID); err != nil {
		return nil, err
	}

	plan := &domain.ExercisePlan{
		WorkoutID:         workout.ID,
		ExerciseID:        input.ExerciseID,
		Name:              input.Name,
		Description:       input.Description,
		Sets:              input.Sets,
		Reps:              input.Reps,
		Weight:            input.Weight,
		WeightMeasureUnit: input.WeightMeasureUnit,
	}
	if _, err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *exercisePlanService) GetExercisePlan(ctx context.Context, ownerID, workoutID, planID string) (*domain.ExercisePlan, error) {
	if _, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID); err != nil {
		return nil, err
	}
	plan, err := s.planRepo.GetByID(ctx, planID, workoutID)
	if err != nil {
		return nil, mapPlanErr(err)
	}
	return plan, nil
}

func (s *exercisePlanService) ListExercisePlans(ctx context.Context, ownerID, workoutID string, page repository.Page) ([]domain.ExercisePlan, int64, error) {
	if _, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID); err != nil {
		return nil, 0, err
	}
	return s.planRepo.ListByWorkout(ctx, workoutID, page)
}

func (s *exercisePlanService) UpdateExercisePlan(ctx context.Context, ownerID, workoutID, planID string, patch domain.ExercisePlanPatch) (*domain.ExercisePlan, error) {
	plan, err := s.GetExercisePlan(ctx, ownerID, workoutID, planID)
	if err != nil {
		return nil, err
	}
	if patch.Description != nil {
		desc := s.sanitizer.Sanitize(*patch.Description)
		patch.Description = &desc
	}
	if patch.ExerciseID != nil && *patch.ExerciseID != plan.ExerciseID {
		if err := s.checkExercise(ctx, *patch.ExerciseID); err != nil {
			return nil, err
		}
	}
	plan.Apply(patch)
	if err := validateStruct(ExercisePlanInput{
		ExerciseID:        plan.ExerciseID,
		Name:              plan.Name,
		Description:       plan.Description,
		Sets:              plan.Sets,
		Reps:              plan.Reps,
		Weight:            plan.Weight,
		WeightMeasureUnit: plan.WeightMeasureUnit,
	}); err != nil {
		return nil, err
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, mapPlanErr(err)
	}
	return plan, nil
}

func (s *exercisePlanService) DeleteExercisePlan(ctx context.Context, ownerID, workoutID, planID string) error {
	if _, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID); err != nil {
		return err
	}
	return mapPlanErr(s.planRepo.Delete(ctx, planID, workoutID))
}

// checkExercise rejects plans pointing at an exercise missing from the catalog.
func (s *exercisePlanService) checkExercise(ctx context.Context, exerciseID string) error {
	if _, err := s.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalid("exerciseId", ErrExerciseNotFound.Error())
		}
		return err
	}
	return nil
}

func mapPlanErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrExercisePlanNotFound
	}
	return err
}
