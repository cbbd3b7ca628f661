package mongo

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoScheduledDateRepository struct {
	collection *mongo.Collection
}

func NewMongoScheduledDateRepository(db *mongo.Database) repository.ScheduledDateRepository {
	return &mongoScheduledDateRepository{
		collection: db.Collection(scheduledDateCollectionName),
	}
}

func (r *mongoScheduledDateRepository) Create(ctx context.Context, date *domain.ScheduledWorkoutDate) (string, error) {
	if date.WorkoutID == "" {
		return "", errors.New("scheduled date requires workoutId")
	}
	date.ID = uuid.NewString()
	date.ScheduledAt = domain.NormalizeInstant(date.ScheduledAt)
	ts := now()
	date.CreatedAt = ts
	date.UpdatedAt = ts

	if _, err := r.collection.InsertOne(ctx, date); err != nil {
		return "", err
	}
	return date.ID, nil
}

func (r *mongoScheduledDateRepository) GetByID(ctx context.Context, id, workoutID string) (*domain.ScheduledWorkoutDate, error) {
	return findOne[domain.ScheduledWorkoutDate](ctx, r.collection, bson.M{"_id": id, "workoutId": workoutID})
}

func (r *mongoScheduledDateRepository) ListByWorkout(ctx context.Context, workoutID string, page repository.Page) ([]domain.ScheduledWorkoutDate, int64, error) {
	opts := pageOptions(page, bson.D{{Key: "scheduledAt", Value: 1}, {Key: "_id", Value: 1}})
	return findPage[domain.ScheduledWorkoutDate](ctx, r.collection, bson.M{"workoutId": workoutID}, opts)
}

func (r *mongoScheduledDateRepository) HasAfter(ctx context.Context, workoutID string, t time.Time) (bool, error) {
	filter := bson.M{"workoutId": workoutID, "scheduledAt": bson.M{"$gt": t.UTC()}}
	n, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Update replaces the document only if scheduledAt and updatedAt still hold the values
// mutate was shown. A concurrent writer in between yields repository.ErrConflict.
func (r *mongoScheduledDateRepository) Update(ctx context.Context, id, workoutID string, mutate func(*domain.ScheduledWorkoutDate) error) (*domain.ScheduledWorkoutDate, error) {
	current, err := r.GetByID(ctx, id, workoutID)
	if err != nil {
		return nil, err
	}
	prevAt, prevUpdated := current.ScheduledAt, current.UpdatedAt

	if err := mutate(current); err != nil {
		return nil, err
	}
	current.ID, current.WorkoutID = id, workoutID
	current.ScheduledAt = domain.NormalizeInstant(current.ScheduledAt)
	current.UpdatedAt = now()

	filter := bson.M{"_id": id, "workoutId": workoutID, "scheduledAt": prevAt, "updatedAt": prevUpdated}
	result, err := r.collection.ReplaceOne(ctx, filter, current)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, repository.ErrConflict
	}
	return current, nil
}

func (r *mongoScheduledDateRepository) Delete(ctx context.Context, id, workoutID string) error {
	return deleteOne(ctx, r.collection, bson.M{"_id": id, "workoutId": workoutID})
}

func (r *mongoScheduledDateRepository) FindInWindow(ctx context.Context, from, to time.Time) ([]domain.ScheduledWorkoutDate, error) {
	filter := bson.M{"scheduledAt": bson.M{"$gte": from.UTC(), "$lt": to.UTC()}}
	opts := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: 1}})
	return findAll[domain.ScheduledWorkoutDate](ctx, r.collection, filter, opts)
}

// EnsureScheduledDateIndexes creates necessary indexes. Call during startup.
func EnsureScheduledDateIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Per-workout listing and HasAfter
			Keys:    bson.D{{Key: "workoutId", Value: 1}, {Key: "scheduledAt", Value: 1}},
			Options: options.Index(),
		},
		{
			// Minute window scan across all workouts
			Keys:    bson.D{{Key: "scheduledAt", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
