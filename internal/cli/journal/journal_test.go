package journal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/spinday/internal/cli"
	"github.com/julianstephens/spinday/internal/config"
	apperrors "github.com/julianstephens/spinday/internal/errors"
	"github.com/julianstephens/spinday/internal/models"
	"github.com/julianstephens/spinday/internal/storage/sqlite"
)

type fixture struct {
	ctx   *cli.Context
	out   *bytes.Buffer
	now   time.Time
	photo string
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(dir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	photo := filepath.Join(dir, "hike.jpg")
	if err := os.WriteFile(photo, []byte("jpeg"), 0600); err != nil {
		t.Fatal(err)
	}

	f := &fixture{out: &bytes.Buffer{}, now: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC), photo: photo}
	f.ctx = &cli.Context{
		Store: store,
		Catalog: config.Catalog{
			Weekday: []string{"Read"},
			Weekend: []string{"Go hiking", "Museum"},
		},
		Out: f.out,
		Now: func() time.Time { return f.now },
	}
	return f
}

func (f *fixture) pending(t *testing.T, item string, pc models.PoolContext) {
	t.Helper()
	if err := f.ctx.Store.SavePendingActivity(models.PendingActivity{Item: item, Context: pc}); err != nil {
		t.Fatal(err)
	}
}

func TestDiaryAddDefaultsText(t *testing.T) {
	f := setup(t)
	f.pending(t, "Go hiking", models.ContextWeekend)

	if err := (&DiaryAddCmd{Photo: f.photo}).Run(f.ctx); err != nil {
		t.Fatalf("diary add failed: %v", err)
	}
	entry, err := f.ctx.Store.GetDiaryEntry(f.photo)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Encode() != "Completed: Go hiking\nDate: 2026-10-17" {
		t.Errorf("entry = %q", entry.Encode())
	}

	pending, err := f.ctx.Store.GetPendingActivity()
	if err != nil {
		t.Fatal(err)
	}
	if !pending.IsZero() {
		t.Errorf("pending not cleared: %+v", pending)
	}
}

func TestDiaryAddDiscard(t *testing.T) {
	f := setup(t)
	f.pending(t, "Go hiking", models.ContextWeekend)

	if err := (&DiaryAddCmd{Photo: f.photo, Text: "Summit!", Discard: true}).Run(f.ctx); err != nil {
		t.Fatalf("diary add failed: %v", err)
	}
	pool, err := f.ctx.Pool().EffectivePool(models.ContextWeekend)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Museum"}, pool); diff != "" {
		t.Errorf("weekend pool mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(f.out.String(), `Took "Go hiking" off the weekend wheel`) {
		t.Errorf("output = %q", f.out.String())
	}
}

func TestDiaryAddErrors(t *testing.T) {
	f := setup(t)

	if err := (&DiaryAddCmd{Photo: f.photo}).Run(f.ctx); err == nil || !strings.Contains(err.Error(), "--text") {
		t.Errorf("add without text or pending error = %v", err)
	}
	if err := (&DiaryAddCmd{Photo: filepath.Join(t.TempDir(), "missing.jpg"), Text: "x"}).Run(f.ctx); err == nil {
		t.Error("add with missing photo file should fail")
	}
	if err := (&DiaryAddCmd{Photo: "  ", Text: "x"}).Run(f.ctx); err == nil {
		t.Error("add with blank photo should fail")
	}

	if err := (&DiaryAddCmd{Photo: "content://media/42", Text: "Painted"}).Run(f.ctx); err != nil {
		t.Errorf("add with URI error = %v", err)
	}
	if _, err := f.ctx.Store.GetDiaryEntry("content://media/42"); err != nil {
		t.Errorf("URI entry not stored: %v", err)
	}
}

func TestDiaryListShowEditDelete(t *testing.T) {
	f := setup(t)
	if err := (&DiaryAddCmd{Photo: f.photo, Text: "First line\nsecond line"}).Run(f.ctx); err != nil {
		t.Fatal(err)
	}
	f.now = f.now.AddDate(0, 1, 0)
	if err := (&DiaryAddCmd{Photo: "content://media/7", Text: "Museum day"}).Run(f.ctx); err != nil {
		t.Fatal(err)
	}

	f.out.Reset()
	if err := (&DiaryListCmd{}).Run(f.ctx); err != nil {
		t.Fatal(err)
	}
	got := f.out.String()
	if strings.Index(got, "Museum day") > strings.Index(got, "First line …") {
		t.Errorf("entries not newest first:\n%s", got)
	}

	f.out.Reset()
	list := &DiaryListCmd{Month: "2026-10"}
	if err := list.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := list.Run(f.ctx); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(f.out.String(), "Museum day") || !strings.Contains(f.out.String(), "First line") {
		t.Errorf("--month output:\n%s", f.out.String())
	}
	if err := (&DiaryListCmd{Month: "Oct"}).Validate(); err == nil {
		t.Error("invalid month should fail validation")
	}

	f.out.Reset()
	if err := (&DiaryShowCmd{Photo: f.photo}).Run(f.ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(f.out.String(), "First line\nsecond line") || !strings.Contains(f.out.String(), "Saved: 2026-10-17") {
		t.Errorf("show output:\n%s", f.out.String())
	}

	if err := (&DiaryEditCmd{Photo: f.photo, Text: "Rewritten"}).Run(f.ctx); err != nil {
		t.Fatal(err)
	}
	entry, err := f.ctx.Store.GetDiaryEntry(f.photo)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Text != "Rewritten" || entry.SavedOn != "2026-11-17" {
		t.Errorf("edited entry = %+v", entry)
	}

	f.ctx.In = strings.NewReader("n\n")
	if err := (&DiaryDeleteCmd{Photo: f.photo}).Run(f.ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := f.ctx.Store.GetDiaryEntry(f.photo); err != nil {
		t.Errorf("entry deleted despite declining: %v", err)
	}

	f.ctx.In = strings.NewReader("y\n")
	if err := (&DiaryDeleteCmd{Photo: f.photo}).Run(f.ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := f.ctx.Store.GetDiaryEntry(f.photo); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetDiaryEntry after delete error = %v", err)
	}

	if err := (&DiaryShowCmd{Photo: f.photo}).Run(f.ctx); err == nil {
		t.Error("show of deleted entry should fail")
	}
	if err := (&DiaryDeleteCmd{Photo: "content://media/7", Yes: true}).Run(f.ctx); err != nil {
		t.Errorf("delete -y error = %v", err)
	}
}

func TestDiaryEmptyList(t *testing.T) {
	f := setup(t)
	if err := (&DiaryListCmd{}).Run(f.ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(f.out.String(), "No diary entries yet.") {
		t.Errorf("output = %q", f.out.String())
	}
}
