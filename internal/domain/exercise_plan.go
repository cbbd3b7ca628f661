package domain

import (
	"time"
)

// ExercisePlan attaches a catalog exercise to a workout with its training parameters.
type ExercisePlan struct {
	ID                string    `bson:"_id" json:"id"`
	WorkoutID         string    `bson:"workoutId" json:"workoutId"`
	ExerciseID        string    `bson:"exerciseId" json:"exerciseId"`
	Name              string    `bson:"name" json:"name"`
	Description       string    `bson:"description,omitempty" json:"description,omitempty"`
	Sets              *int      `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps              *int      `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight            *int      `bson:"weight,omitempty" json:"weight,omitempty"`
	WeightMeasureUnit string    `bson:"weightMeasureUnit,omitempty" json:"weightMeasureUnit,omitempty"` // e.g. "kg", "pounds"
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}

type ExercisePlanPatch struct {
	ExerciseID        *string
	Name              *string
	Description       *string
	Sets              *int
	Reps              *int
	Weight            *int
	WeightMeasureUnit *string
}

func (p *ExercisePlan) Apply(patch ExercisePlanPatch) {
	if patch.ExerciseID != nil {
		p.ExerciseID = *patch.ExerciseID
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Sets != nil {
		p.Sets = patch.Sets
	}
	if patch.Reps != nil {
		p.Reps = patch.Reps
	}
	if patch.Weight != nil {
		p.Weight = patch.Weight
	}
	if patch.WeightMeasureUnit != nil {
		p.WeightMeasureUnit = *patch.WeightMeasureUnit
	}
}
