// Package storagetest holds the behaviour every storage.Provider must share.
package storagetest

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/julianstephens/spinday/internal/errors"
	"github.com/julianstephens/spinday/internal/models"
	"github.com/julianstephens/spinday/internal/storage"
)

// Run exercises a freshly initialized provider returned by newStore.
// Each subtest gets its own store.
func Run(t *testing.T, newStore func(t *testing.T) storage.Provider) {
	t.Helper()

	t.Run("DefaultSettings", func(t *testing.T) {
		s := newStore(t)
		got, err := s.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings() error = %v", err)
		}
		if diff := cmp.Diff(models.DefaultSettings(), got); diff != "" {
			t.Errorf("default settings mismatch (-want +got):\n%s", diff)
		}

		got.Timezone = "Asia/Tokyo"
		got.ShuffleWorkingSet = true
		got.RevealDelaySec = 0
		if err := s.SaveSettings(got); err != nil {
			t.Fatalf("SaveSettings() error = %v", err)
		}
		updated, err := s.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings() error = %v", err)
		}
		if diff := cmp.Diff(got, updated); diff != "" {
			t.Errorf("updated settings mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("UserItemsKeepInsertionOrder", func(t *testing.T) {
		s := newStore(t)
		for _, label := range []string{"Dance", "Bake", "Dance"} {
			if err := s.AppendUserItem(models.ContextWeekday, label); err != nil {
				t.Fatalf("AppendUserItem(%q) error = %v", label, err)
			}
		}
		if err := s.AppendUserItem(models.ContextWeekend, "Kayak"); err != nil {
			t.Fatalf("AppendUserItem() error = %v", err)
		}

		got, err := s.GetUserItems(models.ContextWeekday)
		if err != nil {
			t.Fatalf("GetUserItems() error = %v", err)
		}
		if diff := cmp.Diff([]string{"Dance", "Bake", "Dance"}, got); diff != "" {
			t.Errorf("weekday items mismatch (-want +got):\n%s", diff)
		}

		removed, err := s.RemoveUserItem(models.ContextWeekday, "Dance")
		if err != nil || !removed {
			t.Fatalf("RemoveUserItem() = %v, %v; want true, nil", removed, err)
		}
		got, _ = s.GetUserItems(models.ContextWeekday)
		if diff := cmp.Diff([]string{"Bake", "Dance"}, got); diff != "" {
			t.Errorf("after removing first Dance (-want +got):\n%s", diff)
		}

		removed, err = s.RemoveUserItem(models.ContextWeekday, "Kayak")
		if err != nil || removed {
			t.Errorf("RemoveUserItem() of other context item = %v, %v; want false, nil", removed, err)
		}

		weekend, _ := s.GetUserItems(models.ContextWeekend)
		if diff := cmp.Diff([]string{"Kayak"}, weekend); diff != "" {
			t.Errorf("weekend items mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("DeletedDefaultsAreASet", func(t *testing.T) {
		s := newStore(t)
		for _, label := range []string{"Go hiking", "Go hiking", "Read a book"} {
			if err := s.AddDeletedDefault(label); err != nil {
				t.Fatalf("AddDeletedDefault(%q) error = %v", label, err)
			}
		}
		got, err := s.GetDeletedDefaults()
		if err != nil {
			t.Fatalf("GetDeletedDefaults() error = %v", err)
		}
		if diff := cmp.Diff([]string{"Go hiking", "Read a book"}, got); diff != "" {
			t.Errorf("deleted defaults mismatch (-want +got):\n%s", diff)
		}

		if err := s.RemoveDeletedDefault("Go hiking"); err != nil {
			t.Fatalf("RemoveDeletedDefault() error = %v", err)
		}
		if err := s.RemoveDeletedDefault("never hidden"); err != nil {
			t.Fatalf("RemoveDeletedDefault() of absent label error = %v", err)
		}
		got, _ = s.GetDeletedDefaults()
		if diff := cmp.Diff([]string{"Read a book"}, got); diff != "" {
			t.Errorf("after restore (-want +got):\n%s", diff)
		}
	})

	t.Run("SpinDatesDeduplicate", func(t *testing.T) {
		s := newStore(t)
		for _, day := range []string{"2026-10-17", "2026-10-01", "2026-10-17"} {
			if err := s.AddSpinDate(day); err != nil {
				t.Fatalf("AddSpinDate(%q) error = %v", day, err)
			}
		}
		got, err := s.GetSpinDates()
		if err != nil {
			t.Fatalf("GetSpinDates() error = %v", err)
		}
		if diff := cmp.Diff([]string{"2026-10-01", "2026-10-17"}, got); diff != "" {
			t.Errorf("spin dates mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("SpinEventsByRange", func(t *testing.T) {
		s := newStore(t)
		base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
		events := []models.SpinEvent{
			{ID: "a", Day: "2026-10-01", Context: models.ContextWeekday, Item: "Dance", CreatedAt: base},
			{ID: "b", Day: "2026-10-10", Context: models.ContextWeekend, Item: "Go hiking", CreatedAt: base.Add(9 * 24 * time.Hour)},
			{ID: "c", Day: "2026-11-02", Context: models.ContextWeekday, Item: "Bake", CreatedAt: base.Add(32 * 24 * time.Hour)},
		}
		for _, e := range events {
			if err := s.AddSpinEvent(e); err != nil {
				t.Fatalf("AddSpinEvent(%s) error = %v", e.ID, err)
			}
		}

		got, err := s.GetSpinEvents("2026-10-01", "2026-10-31")
		if err != nil {
			t.Fatalf("GetSpinEvents() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("GetSpinEvents() returned %d events, want 2", len(got))
		}
		if got[0].ID != "a" || got[1].ID != "b" {
			t.Errorf("events out of order: %s, %s", got[0].ID, got[1].ID)
		}
		if got[1].Context != models.ContextWeekend || got[1].Item != "Go hiking" {
			t.Errorf("event b = %+v", got[1])
		}
		if !got[0].CreatedAt.Equal(base) {
			t.Errorf("CreatedAt = %v, want %v", got[0].CreatedAt, base)
		}
	})

	t.Run("PendingActivity", func(t *testing.T) {
		s := newStore(t)
		p, err := s.GetPendingActivity()
		if err != nil {
			t.Fatalf("GetPendingActivity() error = %v", err)
		}
		if !p.IsZero() {
			t.Errorf("fresh store pending = %+v, want zero", p)
		}

		want := models.PendingActivity{Item: "Dance", Context: models.ContextWeekday}
		if err := s.SavePendingActivity(want); err != nil {
			t.Fatalf("SavePendingActivity() error = %v", err)
		}
		got, _ := s.GetPendingActivity()
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("pending mismatch (-want +got):\n%s", diff)
		}

		// Pending state must not disturb settings
		if _, err := s.GetSettings(); err != nil {
			t.Errorf("GetSettings() after pending save error = %v", err)
		}

		if err := s.ClearPendingActivity(); err != nil {
			t.Fatalf("ClearPendingActivity() error = %v", err)
		}
		got, _ = s.GetPendingActivity()
		if !got.IsZero() {
			t.Errorf("pending after clear = %+v, want zero", got)
		}
	})

	t.Run("DiaryEntries", func(t *testing.T) {
		s := newStore(t)
		updated := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
		entry := models.DiaryEntry{PhotoURI: "/photos/a.jpg", Text: "Hiked\nup the hill", SavedOn: "2026-10-17", UpdatedAt: updated}
		if err := s.SaveDiaryEntry(entry); err != nil {
			t.Fatalf("SaveDiaryEntry() error = %v", err)
		}
		if err := s.SaveDiaryEntry(models.DiaryEntry{PhotoURI: "/photos/b.jpg", Text: "undated", UpdatedAt: updated}); err != nil {
			t.Fatalf("SaveDiaryEntry() error = %v", err)
		}

		got, err := s.GetDiaryEntry("/photos/a.jpg")
		if err != nil {
			t.Fatalf("GetDiaryEntry() error = %v", err)
		}
		if got.Text != entry.Text || got.SavedOn != entry.SavedOn || !got.UpdatedAt.Equal(updated) {
			t.Errorf("GetDiaryEntry() = %+v, want %+v", got, entry)
		}

		entry.Text = "Edited"
		if err := s.SaveDiaryEntry(entry); err != nil {
			t.Fatalf("SaveDiaryEntry() overwrite error = %v", err)
		}
		all, err := s.GetAllDiaryEntries()
		if err != nil {
			t.Fatalf("GetAllDiaryEntries() error = %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("GetAllDiaryEntries() returned %d entries, want 2", len(all))
		}

		if err := s.DeleteDiaryEntry("/photos/a.jpg"); err != nil {
			t.Fatalf("DeleteDiaryEntry() error = %v", err)
		}
		if _, err := s.GetDiaryEntry("/photos/a.jpg"); !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("GetDiaryEntry() after delete error = %v, want ErrNotFound", err)
		}
		if err := s.DeleteDiaryEntry("/photos/a.jpg"); !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("DeleteDiaryEntry() twice error = %v, want ErrNotFound", err)
		}
	})
}
