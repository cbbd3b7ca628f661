package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/service"

	"github.com/robfig/cron/v3"
)

type fakeScanner struct {
	mu          sync.Mutex
	dateScans   int
	alertScans  int
	failDates   bool
	panicDates  bool
	sawDeadline bool
}

func (f *fakeScanner) ScanScheduledDates(ctx context.Context) (service.ScanResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dateScans++
	_, f.sawDeadline = ctx.Deadline()
	if f.panicDates {
		panic("scan exploded")
	}
	if f.failDates {
		return service.ScanResult{}, errors.New("database unavailable")
	}
	return service.ScanResult{Due: 1, Notified: 1}, nil
}

func (f *fakeScanner) ScanRecurringAlerts(ctx context.Context) (service.ScanResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alertScans++
	return service.ScanResult{}, nil
}

func TestNewRejectsInvalidSpec(t *testing.T) {
	if _, err := New("every minute please", &fakeScanner{}, time.Second, logger.Nop()); err == nil {
		t.Fatal("expected an error for an invalid cron spec")
	}
	if _, err := New("*/5 * * * *", &fakeScanner{}, time.Second, logger.Nop()); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}
}

func TestRunOnceRunsBothScans(t *testing.T) {
	scanner := &fakeScanner{failDates: true}
	r, err := New("* * * * *", scanner, time.Second, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}

	r.RunOnce(context.Background())
	if scanner.dateScans != 1 || scanner.alertScans != 1 {
		t.Fatalf("date scans = %d, alert scans = %d", scanner.dateScans, scanner.alertScans)
	}
}

func TestTickAppliesTimeout(t *testing.T) {
	scanner := &fakeScanner{}
	r, err := New("* * * * *", scanner, time.Second, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	r.tick()
	if !scanner.sawDeadline {
		t.Fatal("scan context has no deadline")
	}
}

func TestStartStop(t *testing.T) {
	r, err := New("* * * * *", &fakeScanner{}, time.Second, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	r.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r.Stop(ctx)
}

func TestScheduledJobRecoversFromPanic(t *testing.T) {
	scanner := &fakeScanner{panicDates: true}
	r, err := New("* * * * *", scanner, time.Second, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	entries := r.cron.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d", len(entries))
	}

	// Runs the job through the same chain the cron loop uses.
	entries[0].WrappedJob.Run()
	entries[0].WrappedJob.Run()
	if scanner.dateScans != 2 {
		t.Fatalf("date scans = %d", scanner.dateScans)
	}
}

func TestCronLoggerAdapter(t *testing.T) {
	var _ cron.Logger = cronLogger{}
	l := cronLogger{logger.Nop()}
	l.Info("skip", "now", time.Now())
	l.Error(errors.New("boom"), "panic", "stack", "...")
}
