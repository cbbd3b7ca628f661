package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/notify"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"fmt"
	"time"
)

// ScanResult summarises one scan pass.
type ScanResult struct {
	Due      int
	Notified int
	Failed   int
}

// NotificationScanner finds the schedules due in the current minute and hands each
// one to a notify.Sender. It never changes the activated flag.
type NotificationScanner struct {
	dateRepo  repository.ScheduledDateRepository
	alertRepo repository.RecurringAlertRepository
	sender    notify.Sender
	location  *time.Location
	clock     Clock
	log       *logger.Logger
}

// NewNotificationScanner creates a scanner. location is the zone recurring alert times
// are written in; nil means UTC.
func NewNotificationScanner(
	dateRepo repository.ScheduledDateRepository,
	alertRepo repository.RecurringAlertRepository,
	sender notify.Sender,
	location *time.Location,
	clock Clock,
	log *logger.Logger,
) *NotificationScanner {
	if location == nil {
		location = time.UTC
	}
	return &NotificationScanner{
		dateRepo:  dateRepo,
		alertRepo: alertRepo,
		sender:    sender,
		location:  location,
		clock:     clock,
		log:       log.With("component", "NotificationScanner"),
	}
}

// ScanScheduledDates notifies every scheduled date inside the current calendar minute.
// The clock is read once for the whole pass.
func (s *NotificationScanner) ScanScheduledDates(ctx context.Context) (ScanResult, error) {
	from, to := domain.MinuteWindow(s.clock.now())

	dates, err := s.dateRepo.FindInWindow(ctx, from, to)
	if err != nil {
		return ScanResult{}, fmt.Errorf("find scheduled dates in [%s, %s): %w", from.Format(time.RFC3339), to.Format(time.RFC3339), err)
	}

	result := ScanResult{Due: len(dates)}
	for _, d := range dates {
		if err := s.send(ctx, notify.FromScheduledDate(d)); err != nil {
			result.Failed++
			s.log.Error("Failed to send scheduled date notification", "scheduled_date_id", d.ID, "workout_id", d.WorkoutID, "error", err)
			continue
		}
		result.Notified++
	}
	return result, nil
}

// ScanRecurringAlerts notifies every alert whose hour and minute match the current
// wall-clock time in the scanner's location and whose week days contain today.
func (s *NotificationScanner) ScanRecurringAlerts(ctx context.Context) (ScanResult, error) {
	now := s.clock.now().In(s.location)
	day := domain.WeekdayOf(now)

	alerts, err := s.alertRepo.FindDueAt(ctx, day, now.Hour(), now.Minute())
	if err != nil {
		return ScanResult{}, fmt.Errorf("find recurring alerts due %s %02d:%02d: %w", day, now.Hour(), now.Minute(), err)
	}

	firedAt := now.Truncate(time.Minute).UTC()
	result := ScanResult{Due: len(alerts)}
	for _, a := range alerts {
		if err := s.send(ctx, notify.FromRecurringAlert(a, firedAt)); err != nil {
			result.Failed++
			s.log.Error("Failed to send recurring alert notification", "recurring_alert_id", a.ID, "workout_id", a.WorkoutID, "error", err)
			continue
		}
		result.Notified++
	}
	return result, nil
}

// send turns a panicking sender into an error for that one notification.
func (s *NotificationScanner) send(ctx context.Context, n notify.Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sender panicked: %v", r)
		}
	}()
	return s.sender.Send(ctx, n)
}
