package api

import (
	"net/http"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ScheduledDateHandler serves /workouts/:workoutId/scheduled-dates.
type ScheduledDateHandler struct {
	dateService service.ScheduledDateService
	log         *logger.Logger
}

func NewScheduledDateHandler(dateService service.ScheduledDateService, log *logger.Logger) *ScheduledDateHandler {
	return &ScheduledDateHandler{dateService: dateService, log: log}
}

// CreateScheduledDateRequest expects an RFC 3339 instant, e.g. "2026-10-20T18:30:00Z".
type CreateScheduledDateRequest struct {
	Datetime time.Time `json:"datetime"`
}

type UpdateScheduledDateRequest struct {
	Datetime  *time.Time `json:"datetime"`
	Activated *bool      `json:"activated"`
}

type ScheduledDateResponse struct {
	ID        string    `json:"id"`
	WorkoutID string    `json:"workoutId"`
	Datetime  time.Time `json:"datetime"`
	Activated bool      `json:"activated"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func MapScheduledDateToResponse(d *domain.ScheduledWorkoutDate) ScheduledDateResponse {
	return ScheduledDateResponse{
		ID:        d.ID,
		WorkoutID: d.WorkoutID,
		Datetime:  d.ScheduledAt,
		Activated: d.Activated,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// CreateScheduledDate godoc
// @Summary Add a scheduled date to a workout
// @Description Switches the workout to scheduled mode first, which deletes its recurring alerts. The date must not be in the past.
// @Tags Scheduled Dates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param request body CreateScheduledDateRequest true "Scheduled date details"
// @Success 201 {object} ScheduledDateResponse "Scheduled date created"
// @Failure 400 {object} gin.H "Invalid input (error and field)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/scheduled-dates [post]
func (h *ScheduledDateHandler) CreateScheduledDate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req CreateScheduledDateRequest
	if !bindJSON(c, &req) {
		return
	}
	date, err := h.dateService.CreateScheduledDate(c.Request.Context(), userID, c.Param("workoutId"), req.Datetime)
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, MapScheduledDateToResponse(date))
}

// ListScheduledDates godoc
// @Summary List the scheduled dates of a workout
// @Description Only available while the workout is in scheduled mode.
// @Tags Scheduled Dates
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Number of rows to skip"
// @Success 200 {object} ListResponse[ScheduledDateResponse] "Page of scheduled dates"
// @Failure 400 {object} gin.H "Invalid input (error and field)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 412 {object} gin.H "Workout is not scheduled"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/scheduled-dates [get]
func (h *ScheduledDateHandler) ListScheduledDates(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}
	dates, count, err := h.dateService.ListScheduledDates(c.Request.Context(), userID, c.Param("workoutId"), page)
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newListResponse(count, mapAll(dates, MapScheduledDateToResponse)))
}

// GetScheduledDate godoc
// @Summary Get a scheduled date
// @Tags Scheduled Dates
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param dateId path string true "Scheduled date ID"
// @Success 200 {object} ScheduledDateResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout or scheduled date not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/scheduled-dates/{dateId} [get]
func (h *ScheduledDateHandler) GetScheduledDate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	date, err := h.dateService.GetScheduledDate(c.Request.Context(), userID, c.Param("workoutId"), c.Param("dateId"))
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapScheduledDateToResponse(date))
}

// UpdateScheduledDate godoc
// @Summary Partially update a scheduled date
// @Description Moving the date to another instant deactivates it.
// @Tags Scheduled Dates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param dateId path string true "Scheduled date ID"
// @Param request body UpdateScheduledDateRequest true "Fields to change"
// @Success 200 {object} ScheduledDateResponse
// @Failure 400 {object} gin.H "Invalid input (error and field)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout or scheduled date not found"
// @Failure 409 {object} gin.H "Concurrent update, retry"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/scheduled-dates/{dateId} [patch]
func (h *ScheduledDateHandler) UpdateScheduledDate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req UpdateScheduledDateRequest
	if !bindJSON(c, &req) {
		return
	}
	date, err := h.dateService.UpdateScheduledDate(c.Request.Context(), userID, c.Param("workoutId"), c.Param("dateId"), domain.ScheduledDatePatch{
		ScheduledAt: req.Datetime,
		Activated:   req.Activated,
	})
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapScheduledDateToResponse(date))
}

// ActivateScheduledDate godoc
// @Summary Activate a scheduled date
// @Tags Scheduled Dates
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param dateId path string true "Scheduled date ID"
// @Success 200 {object} ScheduledDateResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout or scheduled date not found"
// @Failure 409 {object} gin.H "Concurrent update, retry"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/scheduled-dates/{dateId}/activate [post]
func (h *ScheduledDateHandler) ActivateScheduledDate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	date, err := h.dateService.ActivateScheduledDate(c.Request.Context(), userID, c.Param("workoutId"), c.Param("dateId"))
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapScheduledDateToResponse(date))
}

// DeleteScheduledDate godoc
// @Summary Delete a scheduled date
// @Tags Scheduled Dates
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param dateId path string true "Scheduled date ID"
// @Success 204 "Scheduled date deleted"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout or scheduled date not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/scheduled-dates/{dateId} [delete]
func (h *ScheduledDateHandler) DeleteScheduledDate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.dateService.DeleteScheduledDate(c.Request.Context(), userID, c.Param("workoutId"), c.Param("dateId")); err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
