// Package schedule re-runs work on a cron schedule.
//
// Example usage:
//
//	trigger, err := schedule.NewCronTrigger("*/15 * * * *", runBatch, logger)
//	if err != nil {
//	    return err
//	}
//	trigger.Run(ctx) // blocks until ctx is cancelled
package schedule

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrInvalidCronSpec is returned when the cron specification cannot be parsed.
var ErrInvalidCronSpec = errors.New("invalid cron spec")

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// RunFunc is the work executed on every tick.
type RunFunc func(ctx context.Context) error

// Validate reports whether spec is a valid five field cron expression.
func Validate(spec string) error {
	if _, err := parser.Parse(spec); err != nil {
		return errors.Join(ErrInvalidCronSpec, err)
	}
	return nil
}

// CronTrigger executes a RunFunc according to a cron schedule.
type CronTrigger struct {
	spec     string
	schedule cron.Schedule
	run      RunFunc
	logger   *slog.Logger

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// NewCronTrigger creates a CronTrigger. The spec follows the standard cron format
// (minute, hour, day of month, month, day of week).
func NewCronTrigger(spec string, run RunFunc, logger *slog.Logger) (*CronTrigger, error) {
	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, errors.Join(ErrInvalidCronSpec, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CronTrigger{
		spec:     spec,
		schedule: schedule,
		run:      run,
		logger:   logger,
		now:      time.Now,
		after:    time.After,
	}, nil
}

// NextRun returns the next scheduled run time from now.
func (ct *CronTrigger) NextRun() time.Time {
	return ct.schedule.Next(ct.now())
}

// Start runs the trigger loop in a goroutine and returns immediately.
func (ct *CronTrigger) Start(ctx context.Context) {
	go ct.Run(ctx)
}

// Run blocks, executing the RunFunc on every tick, until ctx is cancelled.
// A failing run is logged and does not stop the schedule.
func (ct *CronTrigger) Run(ctx context.Context) {
	for {
		nextRun := ct.schedule.Next(ct.now())
		wait := nextRun.Sub(ct.now())

		ct.logger.Debug("waiting for next scheduled run",
			"schedule", ct.spec,
			"next_run", nextRun,
			"wait_duration", wait,
		)

		select {
		case <-ctx.Done():
			ct.logger.Info("cron trigger shutting down")
			return
		case <-ct.after(wait):
			ct.execute(ctx)
		}
	}
}

func (ct *CronTrigger) execute(ctx context.Context) {
	ct.logger.Info("starting scheduled run")

	if err := ct.run(ctx); err != nil {
		ct.logger.Warn("scheduled run completed with error", "error", err)
		return
	}
	ct.logger.Info("scheduled run completed successfully")
}
