// internal/domain/exercise.go
package domain

// ExerciseCategory groups catalog exercises, e.g. "Cardio" or "Flexibility".
type ExerciseCategory struct {
	ID   string `bson:"_id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// Exercise is a catalog entry that exercise plans point at.
// The catalog is read-only over the API and populated by the seed command.
type Exercise struct {
	ID          string `bson:"_id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	CategoryID  string `bson:"categoryId" json:"categoryId"`
}
