package roulette

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/julianstephens/spinday/internal/errors"
	"github.com/julianstephens/spinday/internal/models"
	"github.com/julianstephens/spinday/internal/pool"
	"github.com/julianstephens/spinday/internal/spin"
	"github.com/julianstephens/spinday/internal/storage/sqlite"
)

type testCatalog map[models.PoolContext][]string

func (c testCatalog) Items(pc models.PoolContext) []string { return append([]string{}, c[pc]...) }

var catalog = testCatalog{
	models.ContextWeekday: {"Read", "Cook", "Walk", "Call a friend"},
	models.ContextWeekend: {"Go hiking", "Museum"},
}

type recordingNotifier struct {
	calls []string
	err   error
}

func (n *recordingNotifier) SpinResult(_ context.Context, pc string, item string) error {
	n.calls = append(n.calls, pc+":"+item)
	return n.err
}

type fixture struct {
	svc      *Service
	store    *sqlite.Store
	pool     *pool.Manager
	notifier *recordingNotifier
	now      time.Time
}

func setup(t *testing.T, mutate func(*models.Settings)) *fixture {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "spinday.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	settings.RevealDelaySec = 0
	if mutate != nil {
		mutate(&settings)
	}
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	f := &fixture{
		store:    store,
		notifier: &recordingNotifier{},
		// a Saturday
		now: time.Date(2026, 10, 17, 23, 30, 0, 0, time.UTC),
	}
	f.pool = pool.NewManager(store, catalog)
	ids := 0
	f.svc = New(store, f.pool,
		WithNotifier(f.notifier),
		WithClock(func() time.Time { return f.now }),
		WithIDs(func() string { ids++; return fmt.Sprintf("spin-%d", ids) }),
	)
	return f
}

func spinToEnd(t *testing.T, w *Wheel) spin.State {
	t.Helper()
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	for {
		st, err := w.Tick()
		if err != nil {
			t.Fatalf("Tick() error = %v", err)
		}
		if st.Settled() {
			return st
		}
	}
}

func TestTodayContext(t *testing.T) {
	f := setup(t, nil)
	pc, err := f.svc.TodayContext()
	if err != nil {
		t.Fatal(err)
	}
	if pc != models.ContextWeekend {
		t.Errorf("TodayContext() = %s, want weekend", pc)
	}

	// 16:00 UTC Sunday is 01:00 Monday in Tokyo
	f = setup(t, func(s *models.Settings) { s.Timezone = "Asia/Tokyo" })
	f.now = time.Date(2026, 10, 18, 16, 0, 0, 0, time.UTC)
	pc, err = f.svc.TodayContext()
	if err != nil {
		t.Fatal(err)
	}
	if pc != models.ContextWeekday {
		t.Errorf("TodayContext() in Tokyo = %s, want weekday", pc)
	}
}

func TestNewWheelUsesEffectivePool(t *testing.T) {
	f := setup(t, nil)
	if err := f.pool.AddUserItem(models.ContextWeekday, "Dance"); err != nil {
		t.Fatal(err)
	}
	if err := f.pool.HideDefaultItem("Cook"); err != nil {
		t.Fatal(err)
	}

	w, err := f.svc.NewWheel(models.ContextWeekday, spin.NewRandom(1))
	if err != nil {
		t.Fatalf("NewWheel() error = %v", err)
	}
	want := []string{"Dance", "Read", "Walk", "Call a friend"}
	if diff := cmp.Diff(want, w.WorkingSet()); diff != "" {
		t.Errorf("working set mismatch (-want +got):\n%s", diff)
	}
	if w.Context != models.ContextWeekday || w.Seed != 0 {
		t.Errorf("wheel = %+v", w)
	}
}

func TestNewWheelShuffleSetting(t *testing.T) {
	f := setup(t, func(s *models.Settings) { s.ShuffleWorkingSet = true })
	w, err := f.svc.NewWheel(models.ContextWeekday, spin.NewRandom(7))
	if err != nil {
		t.Fatal(err)
	}
	got := w.WorkingSet()
	if len(got) != 4 {
		t.Fatalf("working set size = %d, want 4", len(got))
	}
	seen := map[string]bool{}
	for _, item := range got {
		seen[item] = true
	}
	for _, item := range catalog[models.ContextWeekday] {
		if !seen[item] {
			t.Errorf("shuffled set lost %q: %v", item, got)
		}
	}
}

func TestNewWheelGeneratesSeed(t *testing.T) {
	f := setup(t, nil)
	w, err := f.svc.NewWheel(models.ContextWeekend, nil)
	if err != nil {
		t.Fatal(err)
	}

	st := spinToEnd(t, w)
	replay, err := f.svc.NewWheel(models.ContextWeekend, spin.NewRandom(w.Seed))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(w.WorkingSet(), replay.WorkingSet()); diff != "" {
		t.Errorf("replayed working set differs:\n%s", diff)
	}
	if got := spinToEnd(t, replay); got.Selected != st.Selected {
		t.Errorf("replay selected %q, want %q", got.Selected, st.Selected)
	}
}

func TestNewWheelEmptyPool(t *testing.T) {
	f := setup(t, nil)
	for _, item := range catalog[models.ContextWeekend] {
		if err := f.pool.HideDefaultItem(item); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := f.svc.NewWheel(models.ContextWeekend, spin.NewRandom(1)); !errors.Is(err, apperrors.ErrEmptyPool) {
		t.Errorf("NewWheel() error = %v, want ErrEmptyPool", err)
	}
}

func TestSettleRecordsSpin(t *testing.T) {
	f := setup(t, func(s *models.Settings) { s.NotificationsEnabled = true })
	w, err := f.svc.NewWheel(models.ContextWeekend, spin.NewRandom(3))
	if err != nil {
		t.Fatal(err)
	}
	st := spinToEnd(t, w)

	event, err := f.svc.Settle(context.Background(), w)
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}
	want := models.SpinEvent{
		ID:        "spin-1",
		Day:       "2026-10-17",
		Context:   models.ContextWeekend,
		Item:      st.Selected,
		CreatedAt: f.now,
	}
	if diff := cmp.Diff(want, event); diff != "" {
		t.Errorf("event mismatch (-want +got):\n%s", diff)
	}

	dates, err := f.pool.SpinDates()
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 1 || dates[0].Format("2006-01-02") != "2026-10-17" {
		t.Errorf("spin dates = %v", dates)
	}

	pending, err := f.store.GetPendingActivity()
	if err != nil {
		t.Fatal(err)
	}
	if pending.Item != st.Selected || pending.Context != models.ContextWeekend {
		t.Errorf("pending = %+v", pending)
	}

	if diff := cmp.Diff([]string{"weekend:" + st.Selected}, f.notifier.calls); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordTwiceSameDay(t *testing.T) {
	f := setup(t, nil)
	w, err := f.svc.NewWheel(models.ContextWeekday, spin.NewRandom(5))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		spinToEnd(t, w)
		if _, err := f.svc.Record(context.Background(), w); err != nil {
			t.Fatalf("Record() #%d error = %v", i, err)
		}
	}

	dates, err := f.pool.SpinDates()
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 1 {
		t.Errorf("spin dates = %v, want one day", dates)
	}
	events, err := f.svc.History(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Errorf("events = %d, want 2", len(events))
	}
	if len(f.notifier.calls) != 0 {
		t.Errorf("notified with notifications disabled: %v", f.notifier.calls)
	}
}

func TestNotifierFailureIsNotFatal(t *testing.T) {
	f := setup(t, func(s *models.Settings) { s.NotificationsEnabled = true })
	f.notifier.err = errors.New("tray gone")
	w, err := f.svc.NewWheel(models.ContextWeekday, spin.NewRandom(5))
	if err != nil {
		t.Fatal(err)
	}
	spinToEnd(t, w)
	if _, err := f.svc.Record(context.Background(), w); err != nil {
		t.Errorf("Record() error = %v, want nil", err)
	}
}

func TestRecordRequiresSettled(t *testing.T) {
	f := setup(t, nil)
	w, err := f.svc.NewWheel(models.ContextWeekday, spin.NewRandom(5))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Record(context.Background(), w); !errors.Is(err, ErrNotSettled) {
		t.Errorf("Record() idle error = %v, want ErrNotSettled", err)
	}

	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Tick(); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Settle(context.Background(), w); !errors.Is(err, ErrNotSettled) {
		t.Errorf("Settle() spinning error = %v, want ErrNotSettled", err)
	}

	dates, err := f.pool.SpinDates()
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 0 {
		t.Errorf("spin recorded for unsettled wheel: %v", dates)
	}
}

func TestSettleCancelledDuringReveal(t *testing.T) {
	f := setup(t, func(s *models.Settings) { s.RevealDelaySec = 3 })
	w, err := f.svc.NewWheel(models.ContextWeekday, spin.NewRandom(5))
	if err != nil {
		t.Fatal(err)
	}
	spinToEnd(t, w)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.svc.Settle(ctx, w); !errors.Is(err, context.Canceled) {
		t.Fatalf("Settle() error = %v, want context.Canceled", err)
	}

	dates, err := f.pool.SpinDates()
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 0 {
		t.Errorf("spin recorded after cancelled reveal: %v", dates)
	}
	if f.svc.RevealDelay() != 3*time.Second {
		t.Errorf("RevealDelay() = %v", f.svc.RevealDelay())
	}
}

func TestHistoryWindow(t *testing.T) {
	f := setup(t, nil)
	for _, ev := range []models.SpinEvent{
		{ID: "a", Day: "2026-10-01", Context: models.ContextWeekday, Item: "Read", CreatedAt: time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)},
		{ID: "b", Day: "2026-10-11", Context: models.ContextWeekend, Item: "Museum", CreatedAt: time.Date(2026, 10, 11, 8, 0, 0, 0, time.UTC)},
		{ID: "c", Day: "2026-10-17", Context: models.ContextWeekend, Item: "Go hiking", CreatedAt: time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)},
	} {
		if err := f.store.AddSpinEvent(ev); err != nil {
			t.Fatal(err)
		}
	}

	events, err := f.svc.History(7)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}
	if diff := cmp.Diff([]string{"b", "c"}, ids); diff != "" {
		t.Errorf("History(7) mismatch (-want +got):\n%s", diff)
	}

	if _, err := f.svc.History(0); err == nil {
		t.Error("History(0) should fail")
	}
}
