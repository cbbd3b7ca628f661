// internal/repository/mongo/workout_repo.go
package mongo

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection      *mongo.Collection
	scheduledDates  *mongo.Collection
	recurringAlerts *mongo.Collection
	exercisePlans   *mongo.Collection
	comments        *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
// It keeps handles on the child collections because SwitchType and Delete cascade into them.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection:      db.Collection(workoutCollectionName),
		scheduledDates:  db.Collection(scheduledDateCollectionName),
		recurringAlerts: db.Collection(recurringAlertCollectionName),
		exercisePlans:   db.Collection(exercisePlanCollectionName),
		comments:        db.Collection(commentCollectionName),
	}
}

// Create inserts a new workout.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (string, error) {
	if workout.OwnerID == "" || workout.Name == "" {
		return "", errors.New("workout requires ownerId and name")
	}
	workout.ID = uuid.NewString()
	ts := now()
	workout.CreatedAt = ts
	workout.UpdatedAt = ts

	if _, err := r.collection.InsertOne(ctx, workout); err != nil {
		return "", err
	}
	return workout.ID, nil
}

// GetByID retrieves a single workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	return findOne[domain.Workout](ctx, r.collection, bson.M{"_id": id})
}

func (r *mongoWorkoutRepository) GetByIDForOwner(ctx context.Context, id, ownerID string) (*domain.Workout, error) {
	return findOne[domain.Workout](ctx, r.collection, bson.M{"_id": id, "ownerId": ownerID})
}

// ListByOwner returns the owner's workouts, newest first.
func (r *mongoWorkoutRepository) ListByOwner(ctx context.Context, ownerID string, page repository.Page) ([]domain.Workout, int64, error) {
	opts := pageOptions(page, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	return findPage[domain.Workout](ctx, r.collection, bson.M{"ownerId": ownerID}, opts)
}

// Update writes the user-editable fields. Type changes go through SwitchType.
func (r *mongoWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	if workout.ID == "" {
		return errors.New("workout ID is required for update")
	}
	workout.UpdatedAt = now()

	filter := bson.M{"_id": workout.ID}
	update := bson.M{
		"$set": bson.M{
			"name":        workout.Name,
			"description": workout.Description,
			"updatedAt":   workout.UpdatedAt,
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SwitchType writes the type first and purges afterwards. Without a replica set there
// is no multi-document transaction, so a crash in between leaves stale children of the
// opposite kind; the next switch or create removes them.
func (r *mongoWorkoutRepository) SwitchType(ctx context.Context, id string, workoutType domain.WorkoutType) error {
	if !workoutType.Valid() {
		return fmt.Errorf("unknown workout type %q", workoutType)
	}
	update := bson.M{"$set": bson.M{"type": workoutType, "updatedAt": now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}

	children := bson.M{"workoutId": id}
	if workoutType != domain.WorkoutTypeScheduled {
		if _, err := r.scheduledDates.DeleteMany(ctx, children); err != nil {
			return fmt.Errorf("purge scheduled dates: %w", err)
		}
	}
	if workoutType != domain.WorkoutTypeRecurrent {
		if _, err := r.recurringAlerts.DeleteMany(ctx, children); err != nil {
			return fmt.Errorf("purge recurring alerts: %w", err)
		}
	}
	return nil
}

// Delete removes the workout when it belongs to ownerID, then its children.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, id, ownerID string) error {
	if id == "" || ownerID == "" {
		return errors.New("workout ID and owner ID are required for deletion")
	}
	if err := deleteOne(ctx, r.collection, bson.M{"_id": id, "ownerId": ownerID}); err != nil {
		return err
	}

	children := bson.M{"workoutId": id}
	for _, coll := range []*mongo.Collection{r.scheduledDates, r.recurringAlerts, r.exercisePlans, r.comments} {
		if _, err := coll.DeleteMany(ctx, children); err != nil {
			return fmt.Errorf("delete %s of workout %s: %w", coll.Name(), id, err)
		}
	}
	return nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Owner listing, newest first
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
