package api

import (
	"net/http"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves /workouts.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	log            *logger.Logger
}

func NewWorkoutHandler(workoutService service.WorkoutService, log *logger.Logger) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, log: log}
}

// --- DTOs ---

type CreateWorkoutRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateWorkoutRequest is a partial update; absent fields are left alone.
type UpdateWorkoutRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type WorkoutResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Type        domain.WorkoutType   `json:"type"`
	Status      domain.WorkoutStatus `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

func (h *WorkoutHandler) toResponse(c *gin.Context, w *domain.Workout) (WorkoutResponse, error) {
	status, err := h.workoutService.Status(c.Request.Context(), w)
	if err != nil {
		return WorkoutResponse{}, err
	}
	return WorkoutResponse{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Type:        w.Type,
		Status:      status,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}, nil
}

// --- Handler Methods ---

// CreateWorkout godoc
// @Summary Create a workout
// @Description The workout starts without a schedule type.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateWorkoutRequest true "Workout details"
// @Success 201 {object} WorkoutResponse "Workout created"
// @Failure 400 {object} gin.H "Invalid input (error and field)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req CreateWorkoutRequest
	if !bindJSON(c, &req) {
		return
	}

	workout, err := h.workoutService.CreateWorkout(c.Request.Context(), userID, service.WorkoutInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	h.respond(c, http.StatusCreated, workout)
}

// ListWorkouts godoc
// @Summary List the caller's workouts
// @Description Newest first.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Number of rows to skip"
// @Success 200 {object} ListResponse[WorkoutResponse] "Page of workouts"
// @Failure 400 {object} gin.H "Invalid input (error and field)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}

	workouts, count, err := h.workoutService.ListWorkouts(c.Request.Context(), userID, page)
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	results := make([]WorkoutResponse, 0, len(workouts))
	for i := range workouts {
		resp, err := h.toResponse(c, &workouts[i])
		if err != nil {
			respondWithError(c, h.log, err)
			return
		}
		results = append(results, resp)
	}
	c.JSON(http.StatusOK, newListResponse(count, results))
}

// GetWorkout godoc
// @Summary Get a workout
// @Description Includes the computed status.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Success 200 {object} WorkoutResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	workout, err := h.workoutService.GetWorkout(c.Request.Context(), userID, c.Param("workoutId"))
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	h.respond(c, http.StatusOK, workout)
}

// UpdateWorkout godoc
// @Summary Partially update a workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param request body UpdateWorkoutRequest true "Fields to change"
// @Success 200 {object} WorkoutResponse
// @Failure 400 {object} gin.H "Invalid input (error and field)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId} [patch]
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req UpdateWorkoutRequest
	if !bindJSON(c, &req) {
		return
	}

	workout, err := h.workoutService.UpdateWorkout(c.Request.Context(), userID, c.Param("workoutId"), domain.WorkoutPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	h.respond(c, http.StatusOK, workout)
}

// DeleteWorkout godoc
// @Summary Delete a workout
// @Description Also deletes its schedules, exercise plans and comments.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Success 204 "Workout deleted"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId} [delete]
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.workoutService.DeleteWorkout(c.Request.Context(), userID, c.Param("workoutId")); err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkoutHandler) respond(c *gin.Context, code int, w *domain.Workout) {
	resp, err := h.toResponse(c, w)
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(code, resp)
}
