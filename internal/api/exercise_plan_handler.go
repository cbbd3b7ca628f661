package api

import (
	"net/http"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ExercisePlanHandler serves /workouts/:workoutId/exercise-plans.
type ExercisePlanHandler struct {
	planService service.ExercisePlanService
	log         *logger.Logger
}

func NewExercisePlanHandler(planService service.ExercisePlanService, log *logger.Logger) *ExercisePlanHandler {
	return &ExercisePlanHandler{planService: planService, log: log}
}

type CreateExercisePlanRequest struct {
	ExerciseID        string `json:"exerciseId"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	Sets              *int   `json:"sets"`
	Reps              *int   `json:"reps"`
	Weight            *int   `json:"weight"`
	WeightMeasureUnit string `json:"weightMeasureUnit"`
}

type UpdateExercisePlanRequest struct {
	ExerciseID        *string `json:"exerciseId"`
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	Sets              *int    `json:"sets"`
	Reps              *int    `json:"reps"`
	Weight            *int    `json:"weight"`
	WeightMeasureUnit *string `json:"weightMeasureUnit"`
}

type ExercisePlanResponse struct {
	ID                string    `json:"id"`
	WorkoutID         string    `json:"workoutId"`
	ExerciseID        string    `json:"exerciseId"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Sets              *int      `json:"sets,omitempty"`
	Reps              *int      `json:"reps,omitempty"`
	Weight            *int      `json:"weight,omitempty"`
	WeightMeasureUnit string    `json:"weightMeasureUnit,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func MapExercisePlanToResponse(p *domain.ExercisePlan) ExercisePlanResponse {
	return ExercisePlanResponse{
		ID:                p.ID,
		WorkoutID:         p.WorkoutID,
		ExerciseID:        p.ExerciseID,
		Name:              p.Name,
		Description:       p.Description,
		Sets:              p.Sets,
		Reps:              p.Reps,
		Weight:            p.Weight,
		WeightMeasureUnit: p.WeightMeasureUnit,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// CreateExercisePlan godoc
// @Summary Add a exercise plan to a workout
// @Tags Exercise Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param request body CreateExercisePlanRequest true "Exercise plan details"
// @Success 201 {object} ExercisePlanResponse "Exercise plan created"
// @Failure 400 {object} gin.H "Invalid input (error and field)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/exercise-plans [post]
func (h *ExercisePlanHandler) CreateExercisePlan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req CreateExercisePlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.planService.CreateExercisePlan(c.Request.Context(), userID, c.Param("workoutId"), service.ExercisePlanInput{
		ExerciseID:        req.ExerciseID,
		Name:              req.Name,
		Description:       req.Description,
		Sets:              req.Sets,
		Reps:              req.Reps,
		Weight:            req.Weight,
		WeightMeasureUnit: req.WeightMeasureUnit,
	})
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, MapExercisePlanToResponse(plan))
}

// ListExercisePlans godoc
// @Summary List the exercise plans of a workout
// @Description Ordered by position.
// @Tags Exercise Plans
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Number of rows to skip"
// @Success 200 {object} ListResponse[ExercisePlanResponse] "Page of exercise plans"
// @Failure 400 {object} gin.H "Invalid input (error and field)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/exercise-plans [get]
func (h *ExercisePlanHandler) ListExercisePlans(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}
	plans, count, err := h.planService.ListExercisePlans(c.Request.Context(), userID, c.Param("workoutId"), page)
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newListResponse(count, mapAll(plans, MapExercisePlanToResponse)))
}

// GetExercisePlan godoc
// @Summary Get a exercise plan
// @Tags Exercise Plans
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param planId path string true "Exercise plan ID"
// @Success 200 {object} ExercisePlanResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout or exercise plan not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/exercise-plans/{planId} [get]
func (h *ExercisePlanHandler) GetExercisePlan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	plan, err := h.planService.GetExercisePlan(c.Request.Context(), userID, c.Param("workoutId"), c.Param("planId"))
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapExercisePlanToResponse(plan))
}

// UpdateExercisePlan godoc
// @Summary Partially update a exercise plan
// @Tags Exercise Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param planId path string true "Exercise plan ID"
// @Param request body UpdateExercisePlanRequest true "Fields to change"
// @Success 200 {object} ExercisePlanResponse
// @Failure 400 {object} gin.H "Invalid input (error and field)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout or exercise plan not found"
// @Failure 409 {object} gin.H "Concurrent update, retry"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/exercise-plans/{planId} [patch]
func (h *ExercisePlanHandler) UpdateExercisePlan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req UpdateExercisePlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.planService.UpdateExercisePlan(c.Request.Context(), userID, c.Param("workoutId"), c.Param("planId"), domain.ExercisePlanPatch{
		ExerciseID:        req.ExerciseID,
		Name:              req.Name,
		Description:       req.Description,
		Sets:              req.Sets,
		Reps:              req.Reps,
		Weight:            req.Weight,
		WeightMeasureUnit: req.WeightMeasureUnit,
	})
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapExercisePlanToResponse(plan))
}

// DeleteExercisePlan godoc
// @Summary Delete a exercise plan
// @Tags Exercise Plans
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param planId path string true "Exercise plan ID"
// @Success 204 "Exercise plan deleted"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout or exercise plan not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/exercise-plans/{planId} [delete]
func (h *ExercisePlanHandler) DeleteExercisePlan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.planService.DeleteExercisePlan(c.Request.Context(), userID, c.Param("workoutId"), c.Param("planId")); err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
