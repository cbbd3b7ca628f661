package domain

import (
	"time"
)

// WorkoutType decides which schedule collection a workout may own.
type WorkoutType string

const (
	WorkoutTypeUnset     WorkoutType = ""
	WorkoutTypeScheduled WorkoutType = "scheduled" // one-off ScheduledWorkoutDates
	WorkoutTypeRecurrent WorkoutType = "recurrent" // weekly RecurringWorkoutAlerts
)

// Valid reports whether t is one of the known workout types.
func (t WorkoutType) Valid() bool {
	switch t {
	case WorkoutTypeUnset, WorkoutTypeScheduled, WorkoutTypeRecurrent:
		return true
	}
	return false
}

// WorkoutStatus is derived from the type and the schedules, never stored.
type WorkoutStatus string

const (
	WorkoutStatusPending   WorkoutStatus = "Pending"
	WorkoutStatusActive    WorkoutStatus = "Active"
	WorkoutStatusCompleted WorkoutStatus = "Completed"
)

// Workout is the schedulable unit owned by a user.
type Workout struct {
	ID          string      `bson:"_id" json:"id"`
	OwnerID     string      `bson:"ownerId" json:"ownerId"` // Subject of the bearer token that created it
	Name        string      `bson:"name" json:"name"`
	Description string      `bson:"description,omitempty" json:"description,omitempty"`
	Type        WorkoutType `bson:"type" json:"type"`
	CreatedAt   time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time   `bson:"updatedAt" json:"updatedAt"`
	// Scheduled dates, recurring alerts, exercise plans and comments reference this ID.
}

func (w *Workout) IsScheduled() bool {
	return w.Type == WorkoutTypeScheduled
}

func (w *Workout) IsRecurrent() bool {
	return w.Type == WorkoutTypeRecurrent
}

// Status computes the display status. hasUpcomingDate is only consulted for
// scheduled workouts and must say whether any scheduled date lies after now.
func (w *Workout) Status(hasUpcomingDate bool) WorkoutStatus {
	switch w.Type {
	case WorkoutTypeRecurrent:
		return WorkoutStatusActive
	case WorkoutTypeScheduled:
		if hasUpcomingDate {
			return WorkoutStatusActive
		}
		return WorkoutStatusCompleted
	default:
		return WorkoutStatusPending
	}
}

// WorkoutPatch carries the user-editable fields of a partial update.
type WorkoutPatch struct {
	Name        *string
	Description *string
}

// Apply merges the non-nil fields of p into w.
func (w *Workout) Apply(p WorkoutPatch) {
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.Description != nil {
		w.Description = *p.Description
	}
}
