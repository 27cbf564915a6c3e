package spin

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/julianstephens/spinday/internal/constants"
	apperrors "github.com/julianstephens/spinday/internal/errors"
	"github.com/julianstephens/spinday/internal/logger"
)

var (
	ErrAlreadySpinning = errors.New("wheel is already spinning")
	ErrNotSpinning     = errors.New("wheel is not spinning")
)

// Phase is where the engine is in a spin
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSpinning
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSpinning:
		return "spinning"
	case PhaseSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// State is a snapshot of the engine
type State struct {
	Phase    Phase
	Rotation float64 // cumulative degrees
	Tick     int     // ticks applied in the current spin
	Index    int     // landed slice, -1 until settled
	Selected string
}

// Settled reports whether State carries a selection
func (s State) Settled() bool { return s.Phase == PhaseSettled }

// Engine drives one wheel through Idle, Spinning and Settled. Methods are
// safe for concurrent use but ticks are expected from a single driver.
type Engine struct {
	mu       sync.Mutex
	working  []string
	rng      Random
	ticks    int
	interval time.Duration

	phase      Phase
	rotation   float64
	tick       int
	index      int
	increments []float64
}

// Option customizes an Engine
type Option func(*Engine)

// WithTickInterval overrides the pause between ticks used by Spin
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) { e.interval = d }
}

// NewEngine prepares an idle engine for working. The working set is copied.
func NewEngine(working []string, rng Random, opts ...Option) (*Engine, error) {
	if len(working) == 0 {
		return nil, apperrors.ErrEmptyPool
	}
	e := &Engine{
		working:  append([]string(nil), working...),
		rng:      rng,
		ticks:    constants.SpinTicks,
		interval: constants.SpinTickInterval,
		index:    -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// WorkingSet returns the wheel's items in slice order
func (e *Engine) WorkingSet() []string {
	return append([]string(nil), e.working...)
}

// Start begins a new spin from zero rotation. It fails while a spin is in progress.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase == PhaseSpinning {
		return ErrAlreadySpinning
	}
	e.reset()
	e.phase = PhaseSpinning
	return nil
}

// Tick applies one random increment. The final tick settles the wheel.
func (e *Engine) Tick() (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseSpinning {
		return e.stateLocked(), ErrNotSpinning
	}

	inc := e.rng.Float64() * constants.FullTurnDegrees
	e.rotation += inc
	e.increments = append(e.increments, inc)
	e.tick++

	if e.tick >= e.ticks {
		e.index = SelectIndex(e.rotation, len(e.working))
		e.phase = PhaseSettled
		logger.Debug("Wheel settled", "rotation", e.rotation, "index", e.index, "item", e.working[e.index])
	}
	return e.stateLocked(), nil
}

// Cancel abandons the current spin. The engine returns to Idle with no selection.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

func (e *Engine) reset() {
	e.phase = PhaseIdle
	e.rotation = 0
	e.tick = 0
	e.index = -1
	e.increments = nil
}

// State returns a snapshot of the engine
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *Engine) stateLocked() State {
	st := State{
		Phase:    e.phase,
		Rotation: e.rotation,
		Tick:     e.tick,
		Index:    e.index,
	}
	if e.phase == PhaseSettled {
		st.Selected = e.working[e.index]
	}
	return st
}

// Increments returns the increments applied in the current or last spin
func (e *Engine) Increments() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]float64(nil), e.increments...)
}

// Spin runs a whole spin, pausing between ticks. onTick, if set, sees every
// intermediate state. Cancelling ctx before the last tick returns the engine
// to Idle; once settled the selection stands.
func (e *Engine) Spin(ctx context.Context, onTick func(State)) (State, error) {
	if err := e.Start(); err != nil {
		return e.State(), err
	}

	for {
		if err := ctx.Err(); err != nil {
			e.Cancel()
			return e.State(), err
		}
		st, err := e.Tick()
		if err != nil {
			return st, err
		}
		if onTick != nil {
			onTick(st)
		}
		if st.Settled() {
			return st, nil
		}

		timer := time.NewTimer(e.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			e.Cancel()
			return e.State(), ctx.Err()
		case <-timer.C:
		}
	}
}
