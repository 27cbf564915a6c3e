// Package scheduler fires spin reminders on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/robfig/cron/v3"

	apperrors "github.com/julianstephens/spinday/internal/errors"
	"github.com/julianstephens/spinday/internal/logger"
	"github.com/julianstephens/spinday/internal/models"
	"github.com/julianstephens/spinday/internal/utils"
)

// Source reports whether a reminder is still needed
type Source interface {
	GetPendingActivity() (models.PendingActivity, error)
	GetSpinDates() ([]string, error)
}

// Notifier delivers a reminder. pending is the unfinished activity, if any.
type Notifier interface {
	Reminder(ctx context.Context, pending string) error
}

// Outcome describes what one reminder firing did
type Outcome int

const (
	Skipped Outcome = iota // already spun today with nothing pending
	RemindedSpin
	RemindedDiary
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case RemindedSpin:
		return "spin"
	case RemindedDiary:
		return "diary"
	default:
		return "unknown"
	}
}

type Reminder struct {
	spec     string
	schedule cron.Schedule
	loc      *time.Location
	source   Source
	notifier Notifier
	now      func() time.Time
}

// New parses spec as a standard five-field cron expression evaluated in loc
func New(spec string, loc *time.Location, source Source, notifier Notifier) (*Reminder, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Reminder{
		spec:     spec,
		schedule: schedule,
		loc:      loc,
		source:   source,
		notifier: notifier,
		now:      time.Now,
	}, nil
}

// Next returns the first firing strictly after t
func (r *Reminder) Next(t time.Time) time.Time {
	return r.schedule.Next(t.In(r.loc))
}

// Fire sends a diary reminder when an activity is pending, a spin reminder
// when today has no spin yet, and nothing otherwise.
func (r *Reminder) Fire(ctx context.Context) (Outcome, error) {
	pending, err := r.source.GetPendingActivity()
	if err != nil {
		return Skipped, apperrors.Storage("get pending activity", err)
	}
	if !pending.IsZero() {
		return RemindedDiary, r.notifier.Reminder(ctx, pending.Item)
	}

	dates, err := r.source.GetSpinDates()
	if err != nil {
		return Skipped, apperrors.Storage("get spin dates", err)
	}
	if slices.Contains(dates, utils.FormatDate(r.now().In(r.loc))) {
		return Skipped, nil
	}
	return RemindedSpin, r.notifier.Reminder(ctx, "")
}

// Run fires reminders until ctx is cancelled
func (r *Reminder) Run(ctx context.Context) error {
	c := cron.New(
		cron.WithLocation(r.loc),
		cron.WithLogger(cronLogger{}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{})),
	)
	c.Schedule(r.schedule, cron.FuncJob(func() {
		outcome, err := r.Fire(ctx)
		if err != nil {
			logger.Warn("Reminder failed", "outcome", outcome, "error", err)
			return
		}
		logger.Info("Reminder fired", "outcome", outcome)
	}))

	logger.Info("Reminder scheduler started", "schedule", r.spec, "next", r.Next(r.now()))
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

// cronLogger routes cron's own logging through the application logger
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
