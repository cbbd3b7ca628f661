package api

import (
	"net/http"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// CommentHandler serves /workouts/:workoutId/comments.
type CommentHandler struct {
	commentService service.CommentService
	log            *logger.Logger
}

func NewCommentHandler(commentService service.CommentService, log *logger.Logger) *CommentHandler {
	return &CommentHandler{commentService: commentService, log: log}
}

type CommentRequest struct {
	Comment string `json:"comment"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	WorkoutID string    `json:"workoutId"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func MapCommentToResponse(cm *domain.WorkoutComment) CommentResponse {
	return CommentResponse{
		ID:        cm.ID,
		WorkoutID: cm.WorkoutID,
		Comment:   cm.Comment,
		CreatedAt: cm.CreatedAt,
		UpdatedAt: cm.UpdatedAt,
	}
}

// CreateComment godoc
// @Summary Add a comment to a workout
// @Description Markup is stripped from the text.
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param request body CommentRequest true "Comment details"
// @Success 201 {object} CommentResponse "Comment created"
// @Failure 400 {object} gin.H "Invalid input (error and field)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.commentService.CreateComment(c.Request.Context(), userID, c.Param("workoutId"), req.Comment)
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, MapCommentToResponse(comment))
}

// ListComments godoc
// @Summary List the comments of a workout
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Number of rows to skip"
// @Success 200 {object} ListResponse[CommentResponse] "Page of comments"
// @Failure 400 {object} gin.H "Invalid input (error and field)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}
	comments, count, err := h.commentService.ListComments(c.Request.Context(), userID, c.Param("workoutId"), page)
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newListResponse(count, mapAll(comments, MapCommentToResponse)))
}

// GetComment godoc
// @Summary Get a comment
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} CommentResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout or comment not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/comments/{commentId} [get]
func (h *CommentHandler) GetComment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	comment, err := h.commentService.GetComment(c.Request.Context(), userID, c.Param("workoutId"), c.Param("commentId"))
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapCommentToResponse(comment))
}

// UpdateComment godoc
// @Summary Partially update a comment
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param commentId path string true "Comment ID"
// @Param request body CommentRequest true "Fields to change"
// @Success 200 {object} CommentResponse
// @Failure 400 {object} gin.H "Invalid input (error and field)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout or comment not found"
// @Failure 409 {object} gin.H "Concurrent update, retry"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/comments/{commentId} [patch]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.commentService.UpdateComment(c.Request.Context(), userID, c.Param("workoutId"), c.Param("commentId"), req.Comment)
	if err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapCommentToResponse(comment))
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param commentId path string true "Comment ID"
// @Success 204 "Comment deleted"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout or comment not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/comments/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.commentService.DeleteComment(c.Request.Context(), userID, c.Param("workoutId"), c.Param("commentId")); err != nil {
		respondWithError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
