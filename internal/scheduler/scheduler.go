package scheduler

import (
	"context"
	"fmt"
	"time"

	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/service"

	"github.com/robfig/cron/v3"
)

// Scanner is the part of service.NotificationScanner the runner drives.
type Scanner interface {
	ScanScheduledDates(ctx context.Context) (service.ScanResult, error)
	ScanRecurringAlerts(ctx context.Context) (service.ScanResult, error)
}

// Runner triggers both notification scans on a cron schedule.
// A tick that is still running when the next one is due makes the next one skip.
type Runner struct {
	cron    *cron.Cron
	scanner Scanner
	timeout time.Duration
	log     *logger.Logger
}

// New registers the scans under spec (five-field cron syntax). Nothing runs until Start.
func New(spec string, scanner Scanner, timeout time.Duration, log *logger.Logger) (*Runner, error) {
	r := &Runner{
		scanner: scanner,
		timeout: timeout,
		log:     log.With("component", "Scheduler"),
	}
	cl := cronLogger{r.log}
	r.cron = cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := r.cron.AddFunc(spec, r.tick); err != nil {
		return nil, fmt.Errorf("add scan schedule %q: %w", spec, err)
	}
	return r, nil
}

func (r *Runner) Start() {
	r.log.Info("Notification scheduler started", "entries", len(r.cron.Entries()))
	r.cron.Start()
}

// Stop halts the schedule and waits for a running tick, at most until ctx is done.
func (r *Runner) Stop(ctx context.Context) {
	done := r.cron.Stop()
	select {
	case <-done.Done():
		r.log.Info("Notification scheduler stopped")
	case <-ctx.Done():
		r.log.Warn("Notification scheduler stop timed out", "error", ctx.Err())
	}
}

func (r *Runner) tick() {
	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	r.RunOnce(ctx)
}

// RunOnce runs both scans. A failing scan is logged and does not prevent the other.
func (r *Runner) RunOnce(ctx context.Context) {
	scans := []struct {
		name string
		run  func(context.Context) (service.ScanResult, error)
	}{
		{"scheduled_dates", r.scanner.ScanScheduledDates},
		{"recurring_alerts", r.scanner.ScanRecurringAlerts},
	}
	for _, scan := range scans {
		started := time.Now()
		result, err := scan.run(ctx)
		if err != nil {
			r.log.Error("Notification scan failed", "scan", scan.name, "error", err)
			continue
		}
		if result.Due == 0 {
			r.log.Debug("Notification scan found nothing due", "scan", scan.name)
			continue
		}
		r.log.Info("Notification scan finished",
			"scan", scan.name,
			"due", result.Due,
			"notified", result.Notified,
			"failed", result.Failed,
			"took", time.Since(started),
		)
	}
}

// cronLogger routes cron's own messages (skips, recovered panics) to the zap logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
