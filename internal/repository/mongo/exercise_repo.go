package mongo

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoExerciseCategoryRepository implements repository.ExerciseCategoryRepository
type mongoExerciseCategoryRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseCategoryRepository creates a new ExerciseCategory repository backed by MongoDB.
func NewMongoExerciseCategoryRepository(db *mongo.Database) repository.ExerciseCategoryRepository {
	return &mongoExerciseCategoryRepository{
		collection: db.Collection(exerciseCategoryCollectionName),
	}
}

// CreateMany assigns IDs and inserts all categories in one round trip.
func (r *mongoExerciseCategoryRepository) CreateMany(ctx context.Context, categories []domain.ExerciseCategory) (int, error) {
	if len(categories) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, len(categories))
	for i := range categories {
		categories[i].ID = uuid.NewString()
		docs[i] = categories[i]
	}
	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(result.InsertedIDs), nil
}

func (r *mongoExerciseCategoryRepository) GetByID(ctx context.Context, id string) (*domain.ExerciseCategory, error) {
	return findOne[domain.ExerciseCategory](ctx, r.collection, bson.M{"_id": id})
}

func (r *mongoExerciseCategoryRepository) FindByNames(ctx context.Context, names []string) ([]domain.ExerciseCategory, error) {
	if len(names) == 0 {
		return []domain.ExerciseCategory{}, nil
	}
	return findAll[domain.ExerciseCategory](ctx, r.collection, bson.M{"name": bson.M{"$in": names}}, options.Find())
}

func (r *mongoExerciseCategoryRepository) List(ctx context.Context, page repository.Page) ([]domain.ExerciseCategory, int64, error) {
	opts := pageOptions(page, bson.D{{Key: "name", Value: 1}}).SetCollation(caseInsensitive)
	return findPage[domain.ExerciseCategory](ctx, r.collection, bson.M{}, opts)
}

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

func (r *mongoExerciseRepository) CreateMany(ctx context.Context, exercises []domain.Exercise) (int, error) {
	if len(exercises) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, len(exercises))
	for i := range exercises {
		exercises[i].ID = uuid.NewString()
		docs[i] = exercises[i]
	}
	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(result.InsertedIDs), nil
}

// GetByID retrieves an exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	return findOne[domain.Exercise](ctx, r.collection, bson.M{"_id": id})
}

func (r *mongoExerciseRepository) ListByCategory(ctx context.Context, categoryID string, page repository.Page) ([]domain.Exercise, int64, error) {
	opts := pageOptions(page, bson.D{{Key: "name", Value: 1}}).SetCollation(caseInsensitive)
	return findPage[domain.Exercise](ctx, r.collection, bson.M{"categoryId": categoryID}, opts)
}

// EnsureExerciseIndexes creates the catalog indexes. Category names and
// (category, exercise name) pairs are unique, matching the seed's dedupe.
func EnsureExerciseIndexes(ctx context.Context, categories, exercises *mongo.Collection) error {
	if _, err := categories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	_, err := exercises.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "categoryId", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("exercise_text_search"),
		},
	})
	return err
}
