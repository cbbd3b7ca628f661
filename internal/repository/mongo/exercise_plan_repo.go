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

// mongoExercisePlanRepository implements repository.ExercisePlanRepository
type mongoExercisePlanRepository struct {
	collection *mongo.Collection
}

func NewMongoExercisePlanRepository(db *mongo.Database) repository.ExercisePlanRepository {
	return &mongoExercisePlanRepository{
		collection: db.Collection(exercisePlanCollectionName),
	}
}

func (r *mongoExercisePlanRepository) Create(ctx context.Context, plan *domain.ExercisePlan) (string, error) {
	if plan.WorkoutID == "" || plan.ExerciseID == "" || plan.Name == "" {
		return "", errors.New("exercise plan requires workoutId, exerciseId and name")
	}
	plan.ID = uuid.NewString()
	ts := now()
	plan.CreatedAt = ts
	plan.UpdatedAt = ts

	if _, err := r.collection.InsertOne(ctx, plan); err != nil {
		return "", err
	}
	return plan.ID, nil
}

func (r *mongoExercisePlanRepository) GetByID(ctx context.Context, id, workoutID string) (*domain.ExercisePlan, error) {
	return findOne[domain.ExercisePlan](ctx, r.collection, bson.M{"_id": id, "workoutId": workoutID})
}

// ListByWorkout orders by name ignoring case, then newest first.
func (r *mongoExercisePlanRepository) ListByWorkout(ctx context.Context, workoutID string, page repository.Page) ([]domain.ExercisePlan, int64, error) {
	opts := pageOptions(page, bson.D{{Key: "name", Value: 1}, {Key: "createdAt", Value: -1}}).SetCollation(caseInsensitive)
	return findPage[domain.ExercisePlan](ctx, r.collection, bson.M{"workoutId": workoutID}, opts)
}

func (r *mongoExercisePlanRepository) Update(ctx context.Context, plan *domain.ExercisePlan) error {
	if plan.ID == "" {
		return errors.New("exercise plan ID is required for update")
	}
	plan.UpdatedAt = now()

	// workoutId is not part of the $set: a plan never moves between workouts.
	update := bson.M{
		"$set": bson.M{
			"exerciseId":        plan.ExerciseID,
			"name":              plan.Name,
			"description":       plan.Description,
			"sets":              plan.Sets,
			"reps":              plan.Reps,
			"weight":            plan.Weight,
			"weightMeasureUnit": plan.WeightMeasureUnit,
			"updatedAt":         plan.UpdatedAt,
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": plan.ID, "workoutId": plan.WorkoutID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoExercisePlanRepository) Delete(ctx context.Context, id, workoutID string) error {
	return deleteOne(ctx, r.collection, bson.M{"_id": id, "workoutId": workoutID})
}

// EnsureExercisePlanIndexes creates necessary indexes. Call during startup.
func EnsureExercisePlanIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workoutId", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetCollation(caseInsensitive),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
