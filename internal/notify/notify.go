package notify

import (
	"context"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/logger"
)

// Kind tells the receiver which schedule type fired.
type Kind string

const (
	KindScheduledDate  Kind = "scheduled_date"
	KindRecurringAlert Kind = "recurring_alert"
)

// Notification is the payload handed to a Sender for one due schedule.
type Notification struct {
	Kind       Kind      `json:"kind"`
	ScheduleID string    `json:"scheduleId"`
	WorkoutID  string    `json:"workoutId"`
	FireAt     time.Time `json:"fireAt"`             // the minute the scan matched
	Time       string    `json:"time,omitempty"`     // recurring alerts only, "HH:MM:SS"
	WeekDays   string    `json:"weekDays,omitempty"` // recurring alerts only, display form
}

// Sender delivers a notification. Implementations must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

func FromScheduledDate(d domain.ScheduledWorkoutDate) Notification {
	return Notification{
		Kind:       KindScheduledDate,
		ScheduleID: d.ID,
		WorkoutID:  d.WorkoutID,
		FireAt:     d.ScheduledAt,
	}
}

func FromRecurringAlert(a domain.RecurringWorkoutAlert, firedAt time.Time) Notification {
	return Notification{
		Kind:       KindRecurringAlert,
		ScheduleID: a.ID,
		WorkoutID:  a.WorkoutID,
		FireAt:     firedAt,
		Time:       a.Time.String(),
		WeekDays:   a.WeekDaysDisplay(),
	}
}

// LogSender only writes the notification to the log. It is the default driver.
type LogSender struct {
	log *logger.Logger
}

func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log.With("component", "LogSender")}
}

func (s *LogSender) Send(_ context.Context, n Notification) error {
	s.log.Info("Workout notification",
		"kind", n.Kind,
		"schedule_id", n.ScheduleID,
		"workout_id", n.WorkoutID,
		"fire_at", n.FireAt,
		"time", n.Time,
		"week_days", n.WeekDays,
	)
	return nil
}
