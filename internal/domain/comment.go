package domain

import (
	"time"
)

// WorkoutComment is a free-text note left by the owner on a workout.
type WorkoutComment struct {
	ID        string    `bson:"_id" json:"id"`
	WorkoutID string    `bson:"workoutId" json:"workoutId"`
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
