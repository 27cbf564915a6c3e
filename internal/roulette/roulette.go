// Package roulette ties the pool, the spin engine and storage together: it
// builds a wheel for a context and records what happens once it settles.
package roulette

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/spinday/internal/constants"
	apperrors "github.com/julianstephens/spinday/internal/errors"
	"github.com/julianstephens/spinday/internal/logger"
	"github.com/julianstephens/spinday/internal/models"
	"github.com/julianstephens/spinday/internal/spin"
	"github.com/julianstephens/spinday/internal/utils"
)

// ErrNotSettled is returned when recording a wheel that has not landed
var ErrNotSettled = errors.New("wheel has not settled")

// Store is the storage the roulette writes spin outcomes to
type Store interface {
	GetSettings() (models.Settings, error)
	AddSpinEvent(models.SpinEvent) error
	GetSpinEvents(startDay, endDay string) ([]models.SpinEvent, error)
	SavePendingActivity(models.PendingActivity) error
}

// Pool supplies wheel contents and the spin record
type Pool interface {
	EffectivePool(pc models.PoolContext) ([]string, error)
	RecordSpin(date time.Time) error
}

// Notifier announces settled spins
type Notifier interface {
	SpinResult(ctx context.Context, pc string, item string) error
}

type Service struct {
	store    Store
	pool     Pool
	notifier Notifier
	now      func() time.Time
	newID    func() string
}

type Option func(*Service)

// WithNotifier announces results when notifications are enabled in settings
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs replaces the spin event ID generator
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func New(store Store, pool Pool, opts ...Option) *Service {
	s := &Service{
		store: store,
		pool:  pool,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Wheel is an engine bound to the context its items came from
type Wheel struct {
	*spin.Engine
	Context models.PoolContext
	// Seed reproduces the wheel when it was built from a generated source, else 0
	Seed int64
}

func (s *Service) settings() (models.Settings, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return models.Settings{}, apperrors.Storage("get settings", err)
	}
	return settings, nil
}

// Today returns local midnight in the configured timezone
func (s *Service) Today() (time.Time, error) {
	settings, err := s.settings()
	if err != nil {
		return time.Time{}, err
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	return utils.TruncateDay(s.now().In(loc)), nil
}

// TodayContext picks the weekday or weekend pool for today
func (s *Service) TodayContext() (models.PoolContext, error) {
	today, err := s.Today()
	if err != nil {
		return "", err
	}
	return utils.ContextForDate(today), nil
}

// NewWheel draws a working set from the effective pool of pc. A nil rng uses
// a freshly seeded source whose seed is kept on the wheel.
func (s *Service) NewWheel(pc models.PoolContext, rng spin.Random, opts ...spin.Option) (*Wheel, error) {
	settings, err := s.settings()
	if err != nil {
		return nil, err
	}
	items, err := s.pool.EffectivePool(pc)
	if err != nil {
		return nil, err
	}

	var seed int64
	if rng == nil {
		var r spin.Random
		r, seed, err = spin.NewSeededRandom()
		if err != nil {
			return nil, err
		}
		rng = r
	}

	working, err := spin.BuildWorkingSet(items, rng, settings.ShuffleWorkingSet)
	if err != nil {
		return nil, err
	}
	engine, err := spin.NewEngine(working, rng, opts...)
	if err != nil {
		return nil, err
	}

	logger.Debug("Built wheel", "context", pc, "pool", len(items), "slices", len(working), "seed", seed)
	return &Wheel{Engine: engine, Context: pc, Seed: seed}, nil
}

// RevealDelay is the configured pause between settling and recording
func (s *Service) RevealDelay() time.Duration {
	settings, err := s.settings()
	if err != nil {
		return constants.RevealDelay
	}
	return settings.RevealDelay()
}

// Reveal waits out the reveal delay. Cancelling ctx abandons the result.
func (s *Service) Reveal(ctx context.Context) error {
	delay := s.RevealDelay()
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Record marks today as spun, logs the event and makes the selection the
// pending activity. Notification failures are logged, not returned.
func (s *Service) Record(ctx context.Context, w *Wheel) (models.SpinEvent, error) {
	st := w.State()
	if !st.Settled() {
		return models.SpinEvent{}, ErrNotSettled
	}

	settings, err := s.settings()
	if err != nil {
		return models.SpinEvent{}, err
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return models.SpinEvent{}, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	now := s.now().In(loc)

	if err := s.pool.RecordSpin(now); err != nil {
		return models.SpinEvent{}, err
	}

	event := models.SpinEvent{
		ID:        s.newID(),
		Day:       utils.FormatDate(now),
		Context:   w.Context,
		Item:      st.Selected,
		CreatedAt: now.UTC(),
	}
	if err := s.store.AddSpinEvent(event); err != nil {
		return models.SpinEvent{}, apperrors.Storage("add spin event", err)
	}
	pending := models.PendingActivity{Item: st.Selected, Context: w.Context}
	if err := s.store.SavePendingActivity(pending); err != nil {
		return models.SpinEvent{}, apperrors.Storage("save pending activity", err)
	}
	logger.Info("Spin recorded", "day", event.Day, "context", event.Context, "item", event.Item)

	if settings.NotificationsEnabled && s.notifier != nil {
		if err := s.notifier.SpinResult(ctx, string(w.Context), st.Selected); err != nil {
			logger.Warn("Failed to announce spin result", "error", err)
		}
	}
	return event, nil
}

// Settle waits for the reveal delay, then records the wheel
func (s *Service) Settle(ctx context.Context, w *Wheel) (models.SpinEvent, error) {
	if !w.State().Settled() {
		return models.SpinEvent{}, ErrNotSettled
	}
	if err := s.Reveal(ctx); err != nil {
		return models.SpinEvent{}, err
	}
	return s.Record(ctx, w)
}

// History returns spin events from the last days days, today included, oldest first
func (s *Service) History(days int) ([]models.SpinEvent, error) {
	if days < 1 {
		return nil, fmt.Errorf("days must be at least 1, got %d", days)
	}
	today, err := s.Today()
	if err != nil {
		return nil, err
	}
	start := today.AddDate(0, 0, -(days - 1))
	events, err := s.store.GetSpinEvents(utils.FormatDate(start), utils.FormatDate(today))
	if err != nil {
		return nil, apperrors.Storage("get spin events", err)
	}
	return events, nil
}
