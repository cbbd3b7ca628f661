package mongo

import (
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// Collection names
const (
	workoutCollectionName          = "workouts"
	scheduledDateCollectionName    = "scheduled_workout_dates"
	recurringAlertCollectionName   = "recurring_workout_alerts"
	exercisePlanCollectionName     = "exercise_plans"
	commentCollectionName          = "workout_comments"
	exerciseCategoryCollectionName = "exercise_categories"
	exerciseCollectionName         = "exercises"
)

// caseInsensitive orders strings the way lower(name) would.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

// ConnectDB establishes a connection to MongoDB using the provided URI.
// It returns the mongo.Client which can be used to access databases and collections.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// The initial connect may succeed against an unresponsive server, so ping the primary.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}
	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// NewRepositories wires every Mongo-backed repository against db.
func NewRepositories(db *mongo.Database) repository.Repositories {
	return repository.Repositories{
		Workouts:           NewMongoWorkoutRepository(db),
		ScheduledDates:     NewMongoScheduledDateRepository(db),
		RecurringAlerts:    NewMongoRecurringAlertRepository(db),
		ExercisePlans:      NewMongoExercisePlanRepository(db),
		Comments:           NewMongoCommentRepository(db),
		ExerciseCategories: NewMongoExerciseCategoryRepository(db),
		Exercises:          NewMongoExerciseRepository(db),
	}
}

// EnsureIndexes creates the indexes of every collection. Call during startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	return errors.Join(
		EnsureWorkoutIndexes(ctx, db.Collection(workoutCollectionName)),
		EnsureScheduledDateIndexes(ctx, db.Collection(scheduledDateCollectionName)),
		EnsureRecurringAlertIndexes(ctx, db.Collection(recurringAlertCollectionName)),
		EnsureExercisePlanIndexes(ctx, db.Collection(exercisePlanCollectionName)),
		EnsureCommentIndexes(ctx, db.Collection(commentCollectionName)),
		EnsureExerciseIndexes(ctx, db.Collection(exerciseCategoryCollectionName), db.Collection(exerciseCollectionName)),
	)
}

// pageOptions applies sort, skip and limit. A zero limit returns everything.
func pageOptions(page repository.Page, sort bson.D) *options.FindOptions {
	opts := options.Find().SetSort(sort)
	if page.Offset > 0 {
		opts.SetSkip(int64(page.Offset))
	}
	if page.Limit > 0 {
		opts.SetLimit(int64(page.Limit))
	}
	return opts
}

// findPage counts every document matching filter and decodes the requested page.
func findPage[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]T, int64, error) {
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items, err := findAll[T](ctx, coll, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var item T
	err := coll.FindOne(ctx, filter).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func deleteOne(ctx context.Context, coll *mongo.Collection, filter bson.M) error {
	result, err := coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// now is the timestamp written to createdAt/updatedAt, at the precision Mongo stores.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
