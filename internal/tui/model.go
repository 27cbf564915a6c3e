// Package tui is the interactive spinday screen: a wheel tab driven by
// bubbletea tick messages, plus item, diary and calendar tabs.
package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/spinday/internal/constants"
	"github.com/julianstephens/spinday/internal/diary"
	apperrors "github.com/julianstephens/spinday/internal/errors"
	"github.com/julianstephens/spinday/internal/logger"
	"github.com/julianstephens/spinday/internal/models"
	"github.com/julianstephens/spinday/internal/pool"
	"github.com/julianstephens/spinday/internal/roulette"
	"github.com/julianstephens/spinday/internal/spin"
	"github.com/julianstephens/spinday/internal/tui/components/diarylist"
	"github.com/julianstephens/spinday/internal/tui/components/itemlist"
	"github.com/julianstephens/spinday/internal/tui/components/wheel"
)

type SessionState int

const (
	StateWheel SessionState = iota
	StateItems
	StateDiary
	StateCalendar
	StateAddItem
	StateWriteDiary
)

var tabTitles = []string{"Wheel", "Items", "Diary", "Calendar"}

// Services are the domain services the screen drives
type Services struct {
	Pool     *pool.Manager
	Diary    *diary.Service
	Roulette *roulette.Service
}

type ItemFormModel struct {
	Label   string
	Context models.PoolContext
}

type DiaryFormModel struct {
	Photo   string
	Text    string
	Discard bool
}

type tickMsg struct{ gen int }

type revealMsg struct{ gen int }

type recordedMsg struct {
	event models.SpinEvent
	err   error
}

type Model struct {
	svc           Services
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	pc        models.PoolContext
	wheel     *roulette.Wheel
	wheelView wheel.Model
	rng       spin.Random
	gen       int // invalidates ticks of cancelled spins
	revealing bool
	recording bool // the settled wheel is being saved; the wheel must not restart
	recorded  *models.SpinEvent

	itemCtx   models.PoolContext
	itemList  itemlist.Model
	diaryList diarylist.Model
	pending   models.PendingActivity
	month     time.Time

	form      *huh.Form
	itemForm  *ItemFormModel
	diaryForm *DiaryFormModel

	tickInterval time.Duration
	status       string
	fatal        error
	quitting     bool
	width        int
	height       int
}

// Option customizes a Model
type Option func(*Model)

// WithRandom fixes the random source used for new wheels
func WithRandom(rng spin.Random) Option {
	return func(m *Model) { m.rng = rng }
}

// NewModel opens the wheel for today's context. An empty pool is not an
// error: the wheel tab explains it and spinning stays disabled.
func NewModel(svc Services, opts ...Option) (Model, error) {
	m := Model{
		svc:          svc,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		tickInterval: constants.SpinTickInterval,
	}
	for _, opt := range opts {
		opt(&m)
	}

	today, err := svc.Roulette.Today()
	if err != nil {
		return Model{}, err
	}
	m.month = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	m.pc, err = svc.Roulette.TodayContext()
	if err != nil {
		return Model{}, err
	}
	m.itemCtx = m.pc
	m.itemList = itemlist.New(nil, 0, 0)
	m.diaryList = diarylist.New(nil, 0, 0)

	if err := m.newWheel(); err != nil {
		return Model{}, err
	}
	if err := m.refreshItems(); err != nil {
		return Model{}, err
	}
	if err := m.refreshDiary(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// newWheel draws a fresh working set. An empty pool leaves the wheel nil.
func (m *Model) newWheel() error {
	w, err := m.svc.Roulette.NewWheel(m.pc, m.rng)
	if errors.Is(err, apperrors.ErrEmptyPool) {
		m.wheel = nil
		m.wheelView = wheel.New(nil)
		return nil
	}
	if err != nil {
		return err
	}
	m.wheel = w
	m.wheelView = wheel.New(w.WorkingSet())
	m.recorded = nil
	return nil
}

func (m *Model) refreshItems() error {
	items, err := m.svc.Pool.Items(m.itemCtx)
	if err != nil {
		return err
	}
	m.itemList.SetItems(items)
	return nil
}

func (m *Model) refreshDiary() error {
	entries, err := m.svc.Diary.List()
	if err != nil {
		return err
	}
	m.diaryList.SetEntries(entries)
	m.pending, err = m.svc.Diary.Pending()
	return err
}

// spinning reports whether a spin or its reveal is in flight
func (m Model) spinning() bool {
	if m.revealing {
		return true
	}
	return m.wheel != nil && m.wheel.State().Phase == spin.PhaseSpinning
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateWheel:
		if m.spinning() {
			return append(keys, m.keys.Cancel)
		}
		keys = append(keys, m.keys.Spin, m.keys.NewWheel)
		if !m.pending.IsZero() {
			keys = append(keys, m.keys.Write)
		}
	case StateItems:
		k := m.itemList.Keys()
		keys = append(keys, k.Add, k.Remove, k.Restore, k.Context)
	case StateDiary:
		k := m.diaryList.Keys()
		keys = append(keys, k.Write, k.Delete)
	case StateCalendar:
		keys = append(keys, m.keys.PrevMon, m.keys.NextMon)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	return [][]key.Binding{global, m.ShortHelp()[3:]}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
}

// fail reports a storage outage and quits; anything else is shown and kept
func (m *Model) fail(err error) tea.Cmd {
	if errors.Is(err, apperrors.ErrStorageUnavailable) {
		logger.Error("Storage unavailable", "error", err)
		m.fatal = err
		m.quitting = true
		return tea.Quit
	}
	m.setStatus("Error: %v", err)
	return nil
}

// Err is the fatal error that ended the program, if any
func (m Model) Err() error { return m.fatal }
