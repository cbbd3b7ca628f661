package domain

import (
	"time"
)

// ScheduledWorkoutDate is a single one-off occurrence of a workout.
type ScheduledWorkoutDate struct {
	ID          string    `bson:"_id" json:"id"`
	WorkoutID   string    `bson:"workoutId" json:"workoutId"`
	ScheduledAt time.Time `bson:"scheduledAt" json:"datetime"`
	Activated   bool      `bson:"activated" json:"activated"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ScheduledDatePatch is a partial update; nil fields are left untouched.
type ScheduledDatePatch struct {
	ScheduledAt *time.Time
	Activated   *bool
}

// NormalizeInstant converts t to the precision every backend can store (UTC, milliseconds),
// so a value read back compares equal to the value written.
func NormalizeInstant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// Apply merges p into d. Moving the date to a different instant always revokes
// activation, even when the same patch asks for activated=true.
// It reports whether the instant changed.
func (d *ScheduledWorkoutDate) Apply(p ScheduledDatePatch) (rescheduled bool) {
	if p.Activated != nil {
		d.Activated = *p.Activated
	}
	if p.ScheduledAt != nil {
		at := NormalizeInstant(*p.ScheduledAt)
		if !at.Equal(d.ScheduledAt) {
			d.ScheduledAt = at
			d.Activated = false
			rescheduled = true
		}
	}
	return rescheduled
}

func (d *ScheduledWorkoutDate) Activate() {
	d.Activated = true
}

// MinuteWindow returns the half-open calendar minute [from, to) that contains now.
func MinuteWindow(now time.Time) (from, to time.Time) {
	from = now.UTC().Truncate(time.Minute)
	return from, from.Add(time.Minute)
}

// DueWithin reports whether the scheduled instant falls inside [from, to).
func (d *ScheduledWorkoutDate) DueWithin(from, to time.Time) bool {
	return !d.ScheduledAt.Before(from) && d.ScheduledAt.Before(to)
}
