package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/notify"
)

func sentIDs(s *recordingSender) []string {
	ids := make([]string, 0, len(s.sent))
	for _, n := range s.sent {
		ids = append(ids, n.ScheduleID)
	}
	sort.Strings(ids)
	return ids
}

func insertDate(t *testing.T, env *testEnv, workoutID string, at time.Time) string {
	t.Helper()
	d := &domain.ScheduledWorkoutDate{WorkoutID: workoutID, ScheduledAt: at}
	id, err := env.repos.ScheduledDates.Create(context.Background(), d)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func insertAlert(t *testing.T, env *testEnv, workoutID string, tod domain.TimeOfDay, days ...int) string {
	t.Helper()
	a := &domain.RecurringWorkoutAlert{WorkoutID: workoutID, Time: tod, WeekDays: days}
	id, err := env.repos.RecurringAlerts.Create(context.Background(), a)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestScanScheduledDatesMatchesCurrentMinute(t *testing.T) {
	env := newTestEnv(testNow)
	minute := testNow // 10:00:00 UTC
	due := insertDate(t, env, "w1", minute)
	dueLate := insertDate(t, env, "w1", minute.Add(59*time.Second+999*time.Millisecond))
	insertDate(t, env, "w1", minute.Add(-time.Millisecond))
	insertDate(t, env, "w1", minute.Add(time.Minute))
	// Activation is not a filter.
	activated := insertDate(t, env, "w2", minute.Add(30*time.Second))
	if _, err := env.repos.ScheduledDates.Update(context.Background(), activated, "w2", func(d *domain.ScheduledWorkoutDate) error {
		d.Activate()
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	sender := &recordingSender{}
	scanner := NewNotificationScanner(env.repos.ScheduledDates, env.repos.RecurringAlerts, sender, nil, fixedClock(minute.Add(42*time.Second)), logger.Nop())
	result, err := scanner.ScanScheduledDates(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if result != (ScanResult{Due: 3, Notified: 3}) {
		t.Fatalf("result = %+v", result)
	}
	want := []string{due, dueLate, activated}
	sort.Strings(want)
	got := sentIDs(sender)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sent %v, want %v", got, want)
		}
	}
	for _, n := range sender.sent {
		if n.Kind != notify.KindScheduledDate {
			t.Fatalf("kind = %s", n.Kind)
		}
	}
}

func TestScanContinuesAfterSendFailure(t *testing.T) {
	env := newTestEnv(testNow)
	first := insertDate(t, env, "w1", testNow.Add(10*time.Second))
	second := insertDate(t, env, "w1", testNow.Add(20*time.Second))

	sender := &recordingSender{failFor: map[string]bool{first: true}}
	scanner := NewNotificationScanner(env.repos.ScheduledDates, env.repos.RecurringAlerts, sender, nil, fixedClock(testNow), logger.Nop())
	result, err := scanner.ScanScheduledDates(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if result != (ScanResult{Due: 2, Notified: 1, Failed: 1}) {
		t.Fatalf("result = %+v", result)
	}
	if ids := sentIDs(sender); len(ids) != 1 || ids[0] != second {
		t.Fatalf("sent %v", ids)
	}
}

func TestScanContinuesAfterSendPanic(t *testing.T) {
	env := newTestEnv(testNow)
	first := insertDate(t, env, "w1", testNow.Add(10*time.Second))
	second := insertDate(t, env, "w1", testNow.Add(20*time.Second))
	alert := insertAlert(t, env, "w1", domain.TimeOfDay{Hour: 10}, int(domain.Thursday))
	insertAlert(t, env, "w2", domain.TimeOfDay{Hour: 10}, int(domain.Thursday))

	sender := &recordingSender{panicFor: map[string]bool{first: true, alert: true}}
	scanner := NewNotificationScanner(env.repos.ScheduledDates, env.repos.RecurringAlerts, sender, nil, fixedClock(testNow), logger.Nop())

	result, err := scanner.ScanScheduledDates(context.Background())
	if err != nil {
		t.Fatalf("scan dates: %v", err)
	}
	if result != (ScanResult{Due: 2, Notified: 1, Failed: 1}) {
		t.Fatalf("dates result = %+v", result)
	}
	if ids := sentIDs(sender); len(ids) != 1 || ids[0] != second {
		t.Fatalf("sent %v", ids)
	}

	result, err = scanner.ScanRecurringAlerts(context.Background())
	if err != nil {
		t.Fatalf("scan alerts: %v", err)
	}
	if result != (ScanResult{Due: 2, Notified: 1, Failed: 1}) {
		t.Fatalf("alerts result = %+v", result)
	}
}

func TestScanRecurringAlerts(t *testing.T) {
	env := newTestEnv(testNow)
	// testNow is Thursday (3) 10:00 UTC.
	due := insertAlert(t, env, "w1", domain.TimeOfDay{Hour: 10, Minute: 0, Second: 45}, 1, 3)
	insertAlert(t, env, "w1", domain.TimeOfDay{Hour: 10, Minute: 1}, 3)
	insertAlert(t, env, "w1", domain.TimeOfDay{Hour: 10}, 0, 1, 2, 4, 5, 6)
	insertAlert(t, env, "w1", domain.TimeOfDay{Hour: 10})

	sender := &recordingSender{}
	now := testNow.Add(42 * time.Second)
	scanner := NewNotificationScanner(env.repos.ScheduledDates, env.repos.RecurringAlerts, sender, nil, fixedClock(now), logger.Nop())
	result, err := scanner.ScanRecurringAlerts(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if result != (ScanResult{Due: 1, Notified: 1}) {
		t.Fatalf("result = %+v", result)
	}
	n := sender.sent[0]
	if n.ScheduleID != due || n.Kind != notify.KindRecurringAlert {
		t.Fatalf("notification = %+v", n)
	}
	if !n.FireAt.Equal(testNow) || n.Time != "10:00:45" || n.WeekDays != "Tuesday, Thursday" {
		t.Fatalf("notification = %+v", n)
	}
}

func TestScanRecurringAlertsUsesConfiguredZone(t *testing.T) {
	env := newTestEnv(testNow)
	// 23:30 UTC on Wednesday is 01:30 on Thursday two hours east.
	now := time.Date(2026, 10, 14, 23, 30, 0, 0, time.UTC)
	zone := time.FixedZone("UTC+2", 2*60*60)
	thursday := insertAlert(t, env, "w1", domain.TimeOfDay{Hour: 1, Minute: 30}, int(domain.Thursday))
	insertAlert(t, env, "w1", domain.TimeOfDay{Hour: 23, Minute: 30}, int(domain.Wednesday))

	sender := &recordingSender{}
	scanner := NewNotificationScanner(env.repos.ScheduledDates, env.repos.RecurringAlerts, sender, zone, fixedClock(now), logger.Nop())
	result, err := scanner.ScanRecurringAlerts(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if result.Notified != 1 || sender.sent[0].ScheduleID != thursday {
		t.Fatalf("result = %+v, sent %v", result, sentIDs(sender))
	}
	if fireAt := sender.sent[0].FireAt; fireAt.Location() != time.UTC || !fireAt.Equal(now) {
		t.Fatalf("fireAt = %s", fireAt)
	}
}
