package relational

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.WorkoutComment) (string, error) {
	if comment.WorkoutID == "" || comment.Comment == "" {
		return "", errors.New("comment requires workoutId and text")
	}
	comment.ID = uuid.NewString()
	ts := now()
	comment.CreatedAt = ts
	comment.UpdatedAt = ts

	row := commentRow{
		ID:        comment.ID,
		WorkoutID: comment.WorkoutID,
		Comment:   comment.Comment,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	return comment.ID, nil
}

func (r *commentRepository) GetByID(ctx context.Context, id, workoutID string) (*domain.WorkoutComment, error) {
	var row commentRow
	if err := r.db.WithContext(ctx).Where("id = ? AND workout_id = ?", id, workoutID).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	c := row.toDomain()
	return &c, nil
}

func (r *commentRepository) ListByWorkout(ctx context.Context, workoutID string, page repository.Page) ([]domain.WorkoutComment, int64, error) {
	var rows []commentRow
	q := r.db.WithContext(ctx).Model(&commentRow{}).Where("workout_id = ?", workoutID)
	total, err := paginate(q, page, "created_at DESC, id ASC", &rows)
	if err != nil {
		return nil, 0, err
	}
	return toDomainSlice[commentRow, domain.WorkoutComment](rows), total, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.WorkoutComment) error {
	if comment.ID == "" {
		return errors.New("comment ID is required for update")
	}
	comment.UpdatedAt = now()
	res := r.db.WithContext(ctx).Model(&commentRow{}).
		Where("id = ? AND workout_id = ?", comment.ID, comment.WorkoutID).
		Updates(map[string]interface{}{"comment": comment.Comment, "updated_at": comment.UpdatedAt})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id, workoutID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND workout_id = ?", id, workoutID).Delete(&commentRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
