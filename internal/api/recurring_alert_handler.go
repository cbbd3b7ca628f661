package api

import (
	"net/http"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// RecurringAlertHandler serves /workouts/:workoutId/recurring-alerts.
type RecurringAlertHandler struct {
	alertService service.RecurringAlertService
	log          *logger.Logger
}

func NewRecurringAlertHandler(alertService service.RecurringAlertService, log *logger.Logger) *RecurringAlertHandler {
	return &RecurringAlertHandler{alertService: alertService, log: log}
}

// RecurringAlertRequest is used for create and partial update. time is "HH:MM[:SS]",
// weekDays numbers Monday as 0.
type RecurringAlertRequest struct {
	Time      *domain.TimeOfDay `json:"time"`
	WeekDays  *[]int            `json:"weekDays"`
	Activated *bool             `json:"activated"`
}

type RecurringAlertResponse struct {
	ID              string           `json:"id"`
	WorkoutID       string           `json:"workoutId"`
	Time            domain.TimeOfDay `json:"time"`
	WeekDays        []int            `json:"weekDays"`
	WeekDaysDisplay string           `json:"weekDaysDisplay"`
	Activated       bool             `json:"activated"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

func MapRecurringAlertToResponse(a *domain.RecurringWorkoutAlert) RecurringAlertResponse {
	days := a.WeekDays
	if days == nil {
		days = []int{}
	}
	return RecurringAlertResponse{
		ID:              a.ID,
		WorkoutID:       a.WorkoutID,
		Time:            a.Time,
		WeekDays:        days,
		WeekDaysDisplay: a.WeekDaysDisplay(),
		Activated:       a.Activated,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// CreateRecurringAlert godoc
// @Summary Add a recurring alert to a workout
// @Description Switches the workout to recurrent mode first, which deletes its scheduled dates. weekDays numbers Monday as 0.
// @Tags Recurring Alerts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param request body RecurringAlertRequest true "Recurring alert details"
// @Success 201 {object} RecurringAlertResponse "Recurring alert created"
// @Failure 400 {object} gin.H "Invalid input (error and field)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/recurring-alerts [post]
func (h *RecurringAlertHandler) CreateRecurringAlert(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req RecurringAlertRequest
	if !bindJSON(c, &req) {
		return
	}
	alert, err := h.alertService.CreateRecurringAlert(c.Request.Context(), userID, c.Param("workoutId"), service.RecurringAlertInput{
		Time:     req.Time,
		WeekDays: req.WeekDays,
	})
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, MapRecurringAlertToResponse(alert))
}

// ListRecurringAlerts godoc
// @Summary List the recurring alerts of a workout
// @Description Only available while the workout is in recurrent mode.
// @Tags Recurring Alerts
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Number of rows to skip"
// @Success 200 {object} ListResponse[RecurringAlertResponse] "Page of recurring alerts"
// @Failure 400 {object} gin.H "Invalid input (error and field)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 412 {object} gin.H "Workout is not recurrent"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/recurring-alerts [get]
func (h *RecurringAlertHandler) ListRecurringAlerts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}
	alerts, count, err := h.alertService.ListRecurringAlerts(c.Request.Context(), userID, c.Param("workoutId"), page)
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newListResponse(count, mapAll(alerts, MapRecurringAlertToResponse)))
}

// GetRecurringAlert godoc
// @Summary Get a recurring alert
// @Tags Recurring Alerts
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param alertId path string true "Recurring alert ID"
// @Success 200 {object} RecurringAlertResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout or recurring alert not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/recurring-alerts/{alertId} [get]
func (h *RecurringAlertHandler) GetRecurringAlert(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	alert, err := h.alertService.GetRecurringAlert(c.Request.Context(), userID, c.Param("workoutId"), c.Param("alertId"))
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapRecurringAlertToResponse(alert))
}

// UpdateRecurringAlert godoc
// @Summary Partially update a recurring alert
// @Description Activation is left unchanged.
// @Tags Recurring Alerts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param alertId path string true "Recurring alert ID"
// @Param request body RecurringAlertRequest true "Fields to change"
// @Success 200 {object} RecurringAlertResponse
// @Failure 400 {object} gin.H "Invalid input (error and field)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout or recurring alert not found"
// @Failure 409 {object} gin.H "Concurrent update, retry"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/recurring-alerts/{alertId} [patch]
func (h *RecurringAlertHandler) UpdateRecurringAlert(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req RecurringAlertRequest
	if !bindJSON(c, &req) {
		return
	}
	alert, err := h.alertService.UpdateRecurringAlert(c.Request.Context(), userID, c.Param("workoutId"), c.Param("alertId"), domain.RecurringAlertPatch{
		Time:      req.Time,
		WeekDays:  req.WeekDays,
		Activated: req.Activated,
	})
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapRecurringAlertToResponse(alert))
}

// ActivateRecurringAlert godoc
// @Summary Activate a recurring alert
// @Tags Recurring Alerts
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param alertId path string true "Recurring alert ID"
// @Success 200 {object} RecurringAlertResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout or recurring alert not found"
// @Failure 409 {object} gin.H "Concurrent update, retry"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/recurring-alerts/{alertId}/activate [post]
func (h *RecurringAlertHandler) ActivateRecurringAlert(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	alert, err := h.alertService.ActivateRecurringAlert(c.Request.Context(), userID, c.Param("workoutId"), c.Param("alertId"))
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapRecurringAlertToResponse(alert))
}

// DeleteRecurringAlert godoc
// @Summary Delete a recurring alert
// @Tags Recurring Alerts
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param alertId path string true "Recurring alert ID"
// @Success 204 "Recurring alert deleted"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout or recurring alert not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/recurring-alerts/{alertId} [delete]
func (h *RecurringAlertHandler) DeleteRecurringAlert(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.alertService.DeleteRecurringAlert(c.Request.Context(), userID, c.Param("workoutId"), c.Param("alertId")); err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
