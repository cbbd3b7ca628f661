package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

type CommentService interface {
	CreateComment(ctx context.Context, ownerID, workoutID, text string) (*domain.WorkoutComment, error)
	GetComment(ctx context.Context, ownerID, workoutID, commentID string) (*domain.WorkoutComment, error)
	ListComments(ctx context.Context, ownerID, workoutID string, page repository.Page) ([]domain.WorkoutComment, int64, error)
	UpdateComment(ctx context.Context, ownerID, workoutID, commentID, text string) (*domain.WorkoutComment, error)
	DeleteComment(ctx context.Context, ownerID, workoutID, commentID string) error
}

type commentService struct {
	workoutRepo repository.WorkoutRepository
	commentRepo repository.CommentRepository
	sanitizer   *bluemonday.Policy
}

func NewCommentService(workoutRepo repository.WorkoutRepository, commentRepo repository.CommentRepository) CommentService {
	return &commentService{
		workoutRepo: workoutRepo,
		commentRepo: commentRepo,
		sanitizer:   bluemonday.StrictPolicy(),
	}
}

// clean strips markup; a comment that is only markup or whitespace is rejected.
func (s *commentService) clean(text string) (string, error) {
	text = strings.TrimSpace(s.sanitizer.Sanitize(text))
	if text == "" {
		return "", invalid("comment", msgRequired)
	}
	return text, nil
}

func (s *commentService) CreateComment(ctx context.Context, ownerID, workoutID, text string) (*domain.WorkoutComment, error) {
	workout, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID)
	if err != nil {
		return nil, err
	}
	text, err = s.clean(text)
	if err != nil {
		return nil, err
	}
	comment := &domain.WorkoutComment{WorkoutID: workout.ID, Comment: text}
	if _, err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) GetComment(ctx context.Context, ownerID, workoutID, commentID string) (*domain.WorkoutComment, error) {
	if _, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(ctx, commentID, workoutID)
	if err != nil {
		return nil, mapCommentErr(err)
	}
	return comment, nil
}

func (s *commentService) ListComments(ctx context.Context, ownerID, workoutID string, page repository.Page) ([]domain.WorkoutComment, int64, error) {
	if _, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByWorkout(ctx, workoutID, page)
}

func (s *commentService) UpdateComment(ctx context.Context, ownerID, workoutID, commentID, text string) (*domain.WorkoutComment, error) {
	comment, err := s.GetComment(ctx, ownerID, workoutID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.Comment, err = s.clean(text); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, mapCommentErr(err)
	}
	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, ownerID, workoutID, commentID string) error {
	if _, err := ownedWorkout(ctx, s.workoutRepo, ownerID, workoutID); err != nil {
		return err
	}
	return mapCommentErr(s.commentRepo.Delete(ctx, commentID, workoutID))
}

func mapCommentErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCommentNotFound
	}
	return err
}
