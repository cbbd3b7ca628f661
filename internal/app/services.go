package app

import (
	"alcyxob/workout-tracker/internal/api"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/service"
)

// NewServices builds every service on top of repos. A nil clock uses time.Now.
func NewServices(repos repository.Repositories, clock service.Clock) api.Services {
	workouts := service.NewWorkoutService(repos.Workouts, repos.ScheduledDates, clock)
	return api.Services{
		Workouts:        workouts,
		ScheduledDates:  service.NewScheduledDateService(repos.Workouts, repos.ScheduledDates, workouts, clock),
		RecurringAlerts: service.NewRecurringAlertService(repos.Workouts, repos.RecurringAlerts, workouts),
		ExercisePlans:   service.NewExercisePlanService(repos.Workouts, repos.ExercisePlans, repos.Exercises),
		Comments:        service.NewCommentService(repos.Workouts, repos.Comments),
		Catalog:         service.NewExerciseCatalogService(repos.ExerciseCategories, repos.Exercises),
	}
}
