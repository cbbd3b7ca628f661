package api

import (
	"errors"
	"net/http"
	"strconv"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListResponse wraps one page of a collection.
type ListResponse[T any] struct {
	Count   int64 `json:"count"`
	Results []T   `json:"results"`
}

func newListResponse[T any](count int64, results []T) ListResponse[T] {
	if results == nil {
		results = []T{}
	}
	return ListResponse[T]{Count: count, Results: results}
}

func mapAll[S, T any](in []S, fn func(*S) T) []T {
	out := make([]T, len(in))
	for i := range in {
		out[i] = fn(&in[i])
	}
	return out
}

func abortWithFieldError(c *gin.Context, field, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message, "field": field})
}

// parsePage reads limit and offset. A limit above maxPageLimit is clamped.
func parsePage(c *gin.Context) (repository.Page, bool) {
	page := repository.Page{Limit: defaultPageLimit}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			abortWithFieldError(c, "limit", "A positive integer is required.")
			return page, false
		}
		page.Limit = min(limit, maxPageLimit)
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			abortWithFieldError(c, "offset", "A non-negative integer is required.")
			return page, false
		}
		page.Offset = offset
	}
	return page, true
}

// bindJSON decodes the body into req or aborts with 400.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, domain.ErrInvalidTimeOfDay) {
			abortWithFieldError(c, "time", err.Error())
			return false
		}
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return false
	}
	return true
}

var notFoundErrors = []error{
	service.ErrWorkoutNotFound,
	service.ErrScheduledDateNotFound,
	service.ErrRecurringAlertNotFound,
	service.ErrExercisePlanNotFound,
	service.ErrCommentNotFound,
	service.ErrExerciseNotFound,
	service.ErrCategoryNotFound,
}

// respondWithError maps a service error onto its HTTP status. Unknown errors are
// logged and reported as 500 without details.
func respondWithError(c *gin.Context, log *logger.Logger, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		abortWithFieldError(c, verr.Field, verr.Message)
		return
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			abortWithError(c, http.StatusNotFound, target.Error())
			return
		}
	}
	switch {
	case errors.Is(err, service.ErrWorkoutNotScheduled), errors.Is(err, service.ErrWorkoutNotRecurrent):
		abortWithError(c, http.StatusPreconditionFailed, err.Error())
	case errors.Is(err, repository.ErrConflict):
		abortWithError(c, http.StatusConflict, "The resource was modified concurrently. Retry the request.")
	default:
		log.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		abortWithError(c, http.StatusInternalServerError, "Internal server error.")
	}
}
