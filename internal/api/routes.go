package api

import (
	"context"
	"net/http"
	"time"

	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// Services bundles what the handlers call.
type Services struct {
	Workouts        service.WorkoutService
	ScheduledDates  service.ScheduledDateService
	RecurringAlerts service.RecurringAlertService
	ExercisePlans   service.ExercisePlanService
	Comments        service.CommentService
	Catalog         service.ExerciseCatalogService
}

// HealthCheck reports whether the backing store is reachable. nil skips the check.
type HealthCheck func(ctx context.Context) error

func SetupRoutes(router *gin.Engine, jwtSecret string, services Services, health HealthCheck, log *logger.Logger) {
	workoutHandler := NewWorkoutHandler(services.Workouts, log)
	dateHandler := NewScheduledDateHandler(services.ScheduledDates, log)
	alertHandler := NewRecurringAlertHandler(services.RecurringAlerts, log)
	planHandler := NewExercisePlanHandler(services.ExercisePlans, log)
	commentHandler := NewCommentHandler(services.Comments, log)
	exerciseHandler := NewExerciseHandler(services.Catalog, log)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/healthz", func(c *gin.Context) {
		if health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := health(ctx); err != nil {
				log.Warn("Health check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := router.Group("/api/v1")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, ok := requireUserID(c)
			if !ok {
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID})
		})

		workouts := protected.Group("/workouts")
		{
			workouts.GET("", workoutHandler.ListWorkouts)
			workouts.POST("", workoutHandler.CreateWorkout)
			workouts.GET("/:workoutId", workoutHandler.GetWorkout)
			workouts.PATCH("/:workoutId", workoutHandler.UpdateWorkout)
			workouts.DELETE("/:workoutId", workoutHandler.DeleteWorkout)

			dates := workouts.Group("/:workoutId/scheduled-dates")
			dates.GET("", dateHandler.ListScheduledDates)
			dates.POST("", dateHandler.CreateScheduledDate)
			dates.GET("/:dateId", dateHandler.GetScheduledDate)
			dates.PATCH("/:dateId", dateHandler.UpdateScheduledDate)
			dates.DELETE("/:dateId", dateHandler.DeleteScheduledDate)
			dates.POST("/:dateId/activate", dateHandler.ActivateScheduledDate)

			alerts := workouts.Group("/:workoutId/recurring-alerts")
			alerts.GET("", alertHandler.ListRecurringAlerts)
			alerts.POST("", alertHandler.CreateRecurringAlert)
			alerts.GET("/:alertId", alertHandler.GetRecurringAlert)
			alerts.PATCH("/:alertId", alertHandler.UpdateRecurringAlert)
			alerts.DELETE("/:alertId", alertHandler.DeleteRecurringAlert)
			alerts.POST("/:alertId/activate", alertHandler.ActivateRecurringAlert)

			plans := workouts.Group("/:workoutId/exercise-plans")
			plans.GET("", planHandler.ListExercisePlans)
			plans.POST("", planHandler.CreateExercisePlan)
			plans.GET("/:planId", planHandler.GetExercisePlan)
			plans.PATCH("/:planId", planHandler.UpdateExercisePlan)
			plans.DELETE("/:planId", planHandler.DeleteExercisePlan)

			comments := workouts.Group("/:workoutId/comments")
			comments.GET("", commentHandler.ListComments)
			comments.POST("", commentHandler.CreateComment)
			comments.GET("/:commentId", commentHandler.GetComment)
			comments.PATCH("/:commentId", commentHandler.UpdateComment)
			comments.DELETE("/:commentId", commentHandler.DeleteComment)
		}

		// --- Exercise catalog (read-only) ---
		protected.GET("/exercise-categories", exerciseHandler.ListCategories)
		protected.GET("/exercise-categories/:categoryId/exercises", exerciseHandler.ListExercises)
		protected.GET("/exercises/:exerciseId", exerciseHandler.GetExercise)
	}
}
