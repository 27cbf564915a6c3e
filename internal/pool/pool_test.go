package pool

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/spinday/internal/config"
	apperrors "github.com/julianstephens/spinday/internal/errors"
	"github.com/julianstephens/spinday/internal/models"
	"github.com/julianstephens/spinday/internal/storage/sqlite"
)

type testCatalog map[models.PoolContext][]string

func (c testCatalog) Items(pc models.PoolContext) []string { return append([]string{}, c[pc]...) }

var catalog = testCatalog{
	models.ContextWeekday: {"Read a book", "Go for a walk", "Cook"},
	models.ContextWeekend: {"Go hiking", "Visit a museum"},
}

func setupManager(t *testing.T) *Manager {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "spinday.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewManager(store, catalog)
}

func mustPool(t *testing.T, m *Manager, pc models.PoolContext) []string {
	t.Helper()
	pool, err := m.EffectivePool(pc)
	if err != nil {
		t.Fatalf("EffectivePool(%s) error = %v", pc, err)
	}
	return pool
}

func TestEffectivePoolFreshStore(t *testing.T) {
	m := setupManager(t)
	if diff := cmp.Diff(catalog[models.ContextWeekday], mustPool(t, m, models.ContextWeekday)); diff != "" {
		t.Errorf("weekday pool mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(catalog[models.ContextWeekend], mustPool(t, m, models.ContextWeekend)); diff != "" {
		t.Errorf("weekend pool mismatch (-want +got):\n%s", diff)
	}
}

func TestEffectivePoolEmptyCatalog(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "spinday.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer store.Close()
	m := NewManager(store, testCatalog{})

	pool, err := m.EffectivePool(models.ContextWeekday)
	if err != nil {
		t.Fatalf("EffectivePool() error = %v", err)
	}
	if len(pool) != 0 {
		t.Errorf("EffectivePool() = %v, want empty", pool)
	}
}

func TestAddUserItemPrependsToDefaults(t *testing.T) {
	m := setupManager(t)
	if err := m.AddUserItem(models.ContextWeekday, "Dance"); err != nil {
		t.Fatalf("AddUserItem() error = %v", err)
	}

	want := append([]string{"Dance"}, catalog[models.ContextWeekday]...)
	if diff := cmp.Diff(want, mustPool(t, m, models.ContextWeekday)); diff != "" {
		t.Errorf("weekday pool mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(catalog[models.ContextWeekend], mustPool(t, m, models.ContextWeekend)); diff != "" {
		t.Errorf("weekend pool changed (-want +got):\n%s", diff)
	}
}

func TestUserItemOrderAndDuplicates(t *testing.T) {
	m := setupManager(t)
	for _, label := range []string{"Dance", "Bake", "Dance"} {
		if err := m.AddUserItem(models.ContextWeekend, label); err != nil {
			t.Fatalf("AddUserItem(%q) error = %v", label, err)
		}
	}

	want := append([]string{"Dance", "Bake", "Dance"}, catalog[models.ContextWeekend]...)
	if diff := cmp.Diff(want, mustPool(t, m, models.ContextWeekend)); diff != "" {
		t.Errorf("pool mismatch (-want +got):\n%s", diff)
	}

	if err := m.RemoveUserItem(models.ContextWeekend, "Dance"); err != nil {
		t.Fatalf("RemoveUserItem() error = %v", err)
	}
	want = append([]string{"Bake", "Dance"}, catalog[models.ContextWeekend]...)
	if diff := cmp.Diff(want, mustPool(t, m, models.ContextWeekend)); diff != "" {
		t.Errorf("pool after remove mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveUserItemAbsentIsNoOp(t *testing.T) {
	m := setupManager(t)
	before := mustPool(t, m, models.ContextWeekday)
	if err := m.RemoveUserItem(models.ContextWeekday, "Nothing here"); err != nil {
		t.Fatalf("RemoveUserItem() error = %v", err)
	}
	// Default labels are not user items and stay put
	if err := m.RemoveUserItem(models.ContextWeekday, "Cook"); err != nil {
		t.Fatalf("RemoveUserItem() error = %v", err)
	}
	if diff := cmp.Diff(before, mustPool(t, m, models.ContextWeekday)); diff != "" {
		t.Errorf("pool changed (-want +got):\n%s", diff)
	}
}

func TestHideAndRestoreDefault(t *testing.T) {
	m := setupManager(t)

	for i := 0; i < 2; i++ {
		if err := m.HideDefaultItem("Go hiking"); err != nil {
			t.Fatalf("HideDefaultItem() error = %v", err)
		}
	}
	if diff := cmp.Diff([]string{"Visit a museum"}, mustPool(t, m, models.ContextWeekend)); diff != "" {
		t.Errorf("pool after hide (-want +got):\n%s", diff)
	}

	if err := m.RestoreDefaultItem("Go hiking"); err != nil {
		t.Fatalf("RestoreDefaultItem() error = %v", err)
	}
	if err := m.RestoreDefaultItem("Go hiking"); err != nil {
		t.Fatalf("second RestoreDefaultItem() error = %v", err)
	}
	if diff := cmp.Diff(catalog[models.ContextWeekend], mustPool(t, m, models.ContextWeekend)); diff != "" {
		t.Errorf("pool after restore (-want +got):\n%s", diff)
	}
}

func TestHideDoesNotAffectUserItems(t *testing.T) {
	m := setupManager(t)
	if err := m.AddUserItem(models.ContextWeekday, "Cook"); err != nil {
		t.Fatalf("AddUserItem() error = %v", err)
	}
	if err := m.HideDefaultItem("Cook"); err != nil {
		t.Fatalf("HideDefaultItem() error = %v", err)
	}
	want := []string{"Cook", "Read a book", "Go for a walk"}
	if diff := cmp.Diff(want, mustPool(t, m, models.ContextWeekday)); diff != "" {
		t.Errorf("pool mismatch (-want +got):\n%s", diff)
	}
}

func TestItemsListing(t *testing.T) {
	m := setupManager(t)
	if err := m.AddUserItem(models.ContextWeekday, "Dance"); err != nil {
		t.Fatal(err)
	}
	if err := m.HideDefaultItem("Read a book"); err != nil {
		t.Fatal(err)
	}

	got, err := m.Items(models.ContextWeekday)
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	want := []models.Item{
		{Label: "Dance", Context: models.ContextWeekday, Provenance: models.ProvenanceUserAdded},
		{Label: "Go for a walk", Context: models.ContextWeekday, Provenance: models.ProvenanceDefault},
		{Label: "Cook", Context: models.ContextWeekday, Provenance: models.ProvenanceDefault},
		{Label: "Read a book", Context: models.ContextWeekday, Provenance: models.ProvenanceDefault, Hidden: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordSpinIsIdempotent(t *testing.T) {
	m := setupManager(t)
	morning := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 10, 17, 21, 30, 0, 0, time.UTC)
	earlier := time.Date(2026, 10, 3, 12, 0, 0, 0, time.UTC)

	for _, d := range []time.Time{morning, evening, earlier} {
		if err := m.RecordSpin(d); err != nil {
			t.Fatalf("RecordSpin(%v) error = %v", d, err)
		}
	}

	got, err := m.SpinDates()
	if err != nil {
		t.Fatalf("SpinDates() error = %v", err)
	}
	want := []time.Time{
		time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SpinDates() mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordSpinUsesLocalDay(t *testing.T) {
	m := setupManager(t)
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2026-10-17 01:00 in Tokyo is still the 16th in UTC
	if err := m.RecordSpin(time.Date(2026, 10, 17, 1, 0, 0, 0, tokyo)); err != nil {
		t.Fatal(err)
	}
	got, _ := m.SpinDates()
	if len(got) != 1 || got[0].Day() != 17 {
		t.Errorf("SpinDates() = %v, want the 17th", got)
	}
}

func TestDefaultCatalogIntegration(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "spinday.db"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	m := NewManager(store, config.DefaultCatalog())

	pool, err := m.EffectivePool(models.ContextWeekend)
	if err != nil {
		t.Fatal(err)
	}
	if len(pool) == 0 {
		t.Error("default weekend pool is empty")
	}
}

type failingStore struct{ Store }

var errDiskGone = errors.New("disk gone")

func (failingStore) GetUserItems(models.PoolContext) ([]string, error) { return nil, errDiskGone }
func (failingStore) AppendUserItem(models.PoolContext, string) error    { return errDiskGone }
func (failingStore) AddDeletedDefault(string) error                     { return errDiskGone }
func (failingStore) AddSpinDate(string) error                           { return errDiskGone }

func TestStorageFailuresSurface(t *testing.T) {
	m := NewManager(failingStore{}, catalog)

	checks := map[string]error{
		"EffectivePool":   func() error { _, err := m.EffectivePool(models.ContextWeekday); return err }(),
		"AddUserItem":     m.AddUserItem(models.ContextWeekday, "Dance"),
		"HideDefaultItem": m.HideDefaultItem("Cook"),
		"RecordSpin":      m.RecordSpin(time.Now()),
	}
	for name, err := range checks {
		if !errors.Is(err, apperrors.ErrStorageUnavailable) {
			t.Errorf("%s error = %v, want ErrStorageUnavailable", name, err)
		}
		if !errors.Is(err, errDiskGone) {
			t.Errorf("%s error = %v, want it to wrap the cause", name, err)
		}
	}
}
