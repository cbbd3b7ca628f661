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

type mongoRecurringAlertRepository struct {
	collection *mongo.Collection
}

func NewMongoRecurringAlertRepository(db *mongo.Database) repository.RecurringAlertRepository {
	return &mongoRecurringAlertRepository{
		collection: db.Collection(recurringAlertCollectionName),
	}
}

var byTimeOfDay = bson.D{
	{Key: "time.hour", Value: 1},
	{Key: "time.minute", Value: 1},
	{Key: "time.second", Value: 1},
	{Key: "_id", Value: 1},
}

func (r *mongoRecurringAlertRepository) Create(ctx context.Context, alert *domain.RecurringWorkoutAlert) (string, error) {
	if alert.WorkoutID == "" {
		return "", errors.New("recurring alert requires workoutId")
	}
	alert.ID = uuid.NewString()
	if alert.WeekDays == nil {
		// stored as [] rather than null
		alert.WeekDays = []int{}
	}
	ts := now()
	alert.CreatedAt = ts
	alert.UpdatedAt = ts

	if _, err := r.collection.InsertOne(ctx, alert); err != nil {
		return "", err
	}
	return alert.ID, nil
}

func (r *mongoRecurringAlertRepository) GetByID(ctx context.Context, id, workoutID string) (*domain.RecurringWorkoutAlert, error) {
	return findOne[domain.RecurringWorkoutAlert](ctx, r.collection, bson.M{"_id": id, "workoutId": workoutID})
}

func (r *mongoRecurringAlertRepository) ListByWorkout(ctx context.Context, workoutID string, page repository.Page) ([]domain.RecurringWorkoutAlert, int64, error) {
	return findPage[domain.RecurringWorkoutAlert](ctx, r.collection, bson.M{"workoutId": workoutID}, pageOptions(page, byTimeOfDay))
}

// Update uses updatedAt as the version of the document; see the scheduled date repository.
func (r *mongoRecurringAlertRepository) Update(ctx context.Context, id, workoutID string, mutate func(*domain.RecurringWorkoutAlert) error) (*domain.RecurringWorkoutAlert, error) {
	current, err := r.GetByID(ctx, id, workoutID)
	if err != nil {
		return nil, err
	}
	prevUpdated := current.UpdatedAt

	if err := mutate(current); err != nil {
		return nil, err
	}
	current.ID, current.WorkoutID = id, workoutID
	if current.WeekDays == nil {
		current.WeekDays = []int{}
	}
	current.UpdatedAt = now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id, "workoutId": workoutID, "updatedAt": prevUpdated}, current)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, repository.ErrConflict
	}
	return current, nil
}

func (r *mongoRecurringAlertRepository) Delete(ctx context.Context, id, workoutID string) error {
	return deleteOne(ctx, r.collection, bson.M{"_id": id, "workoutId": workoutID})
}

// FindDueAt matches an array field against a scalar, which Mongo treats as "contains".
func (r *mongoRecurringAlertRepository) FindDueAt(ctx context.Context, day domain.Weekday, hour, minute int) ([]domain.RecurringWorkoutAlert, error) {
	filter := bson.M{
		"time.hour":   hour,
		"time.minute": minute,
		"weekDays":    int(day),
	}
	return findAll[domain.RecurringWorkoutAlert](ctx, r.collection, filter, options.Find().SetSort(byTimeOfDay))
}

// EnsureRecurringAlertIndexes creates necessary indexes. Call during startup.
func EnsureRecurringAlertIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workoutId", Value: 1}},
			Options: options.Index(),
		},
		{
			// FindDueAt, once per minute
			Keys:    bson.D{{Key: "time.hour", Value: 1}, {Key: "time.minute", Value: 1}, {Key: "weekDays", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
