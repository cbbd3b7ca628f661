package api

import (
	"net/http"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler exposes the read-only exercise catalog.
type ExerciseHandler struct {
	catalogService service.ExerciseCatalogService
	log            *logger.Logger
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(catalogService service.ExerciseCatalogService, log *logger.Logger) *ExerciseHandler {
	return &ExerciseHandler{catalogService: catalogService, log: log}
}

// --- DTOs for API (Data Transfer Objects) ---

type ExerciseCategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ExerciseResponse struct {
	ID          string `json:"id"`
	CategoryID  string `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func MapCategoryToResponse(cat *domain.ExerciseCategory) ExerciseCategoryResponse {
	return ExerciseCategoryResponse{ID: cat.ID, Name: cat.Name}
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:          ex.ID,
		CategoryID:  ex.CategoryID,
		Name:        ex.Name,
		Description: ex.Description,
	}
}

// --- Handler Methods ---

// ListCategories godoc
// @Summary List exercise categories
// @Description Ordered by name.
// @Tags Exercise Catalog
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Number of rows to skip"
// @Success 200 {object} ListResponse[ExerciseCategoryResponse] "Page of categories"
// @Failure 400 {object} gin.H "Invalid input (error and field)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercise-categories [get]
func (h *ExerciseHandler) ListCategories(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	categories, count, err := h.catalogService.ListCategories(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newListResponse(count, mapAll(categories, MapCategoryToResponse)))
}

// ListExercises godoc
// @Summary List the exercises of a category
// @Tags Exercise Catalog
// @Produce json
// @Security BearerAuth
// @Param categoryId path string true "Category ID"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Number of rows to skip"
// @Success 200 {object} ListResponse[ExerciseResponse] "Page of exercises"
// @Failure 400 {object} gin.H "Invalid input (error and field)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Category not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercise-categories/{categoryId}/exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	exercises, count, err := h.catalogService.ListExercises(c.Request.Context(), c.Param("categoryId"), page)
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newListResponse(count, mapAll(exercises, MapExerciseToResponse)))
}

// GetExercise godoc
// @Summary Get an exercise
// @Tags Exercise Catalog
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ID"
// @Success 200 {object} ExerciseResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Exercise not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises/{exerciseId} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exercise, err := h.catalogService.GetExerciseByID(c.Request.Context(), c.Param("exerciseId"))
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}
