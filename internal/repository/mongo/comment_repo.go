package mongo

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCommentRepository struct {
	collection *mongo.Collection
}

func NewMongoCommentRepository(db *mongo.Database) repository.CommentRepository {
	return &mongoCommentRepository{
		collection: db.Collection(commentCollectionName),
	}
}

func (r *mongoCommentRepository) Create(ctx context.Context, comment *domain.WorkoutComment) (string, error) {
	if comment.WorkoutID == "" || comment.Comment == "" {
		return "", errors.New("comment requires workoutId and text")
	}
	comment.ID = uuid.NewString()
	ts := now()
	comment.CreatedAt = ts
	comment.UpdatedAt = ts

	if _, err := r.collection.InsertOne(ctx, comment); err != nil {
		return "", err
	}
	return comment.ID, nil
}

func (r *mongoCommentRepository) GetByID(ctx context.Context, id, workoutID string) (*domain.WorkoutComment, error) {
	return findOne[domain.WorkoutComment](ctx, r.collection, bson.M{"_id": id, "workoutId": workoutID})
}

func (r *mongoCommentRepository) ListByWorkout(ctx context.Context, workoutID string, page repository.Page) ([]domain.WorkoutComment, int64, error) {
	opts := pageOptions(page, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	return findPage[domain.WorkoutComment](ctx, r.collection, bson.M{"workoutId": workoutID}, opts)
}

func (r *mongoCommentRepository) Update(ctx context.Context, comment *domain.WorkoutComment) error {
	if comment.ID == "" {
		return errors.New("comment ID is required for update")
	}
	comment.UpdatedAt = now()

	update := bson.M{"$set": bson.M{"comment": comment.Comment, "updatedAt": comment.UpdatedAt}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": comment.ID, "workoutId": comment.WorkoutID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoCommentRepository) Delete(ctx context.Context, id, workoutID string) error {
	return deleteOne(ctx, r.collection, bson.M{"_id": id, "workoutId": workoutID})
}

// EnsureCommentIndexes creates necessary indexes. Call during startup.
func EnsureCommentIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workoutId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
