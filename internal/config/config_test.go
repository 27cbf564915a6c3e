package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/spinday/internal/models"
)

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()
	for _, ctx := range models.Contexts {
		if len(cat.Items(ctx)) == 0 {
			t.Errorf("embedded catalog has no %s items", ctx)
		}
	}
	if !cat.Contains("Go hiking") {
		t.Error("Contains(\"Go hiking\") = false, want true")
	}
	if cat.Contains("Dance") {
		t.Error("Contains(\"Dance\") = true, want false")
	}
}

func TestCatalogItemsReturnsCopy(t *testing.T) {
	cat := Catalog{Weekday: []string{"A", "B"}}
	items := cat.Items(models.ContextWeekday)
	items[0] = "changed"
	if cat.Weekday[0] != "A" {
		t.Errorf("Items() aliases the catalog: Weekday[0] = %q", cat.Weekday[0])
	}
	if got := cat.Items(models.PoolContext("holiday")); len(got) != 0 {
		t.Errorf("Items(unknown) = %v, want empty", got)
	}
}

func TestParseCatalog(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Catalog
		wantErr string
	}{
		{
			name:  "both contexts",
			input: "weekday: [Read, Walk]\nweekend: [Hike]\n",
			want:  Catalog{Weekday: []string{"Read", "Walk"}, Weekend: []string{"Hike"}},
		},
		{
			name:    "duplicate label",
			input:   "weekday: [Read, Read]\n",
			wantErr: "more than once",
		},
		{
			name:    "blank label",
			input:   "weekend: [\"  \"]\n",
			wantErr: "empty label",
		},
		{
			name:    "not yaml",
			input:   "weekday: [unterminated\n",
			wantErr: "yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCatalog([]byte(tt.input))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ParseCatalog() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCatalog() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseCatalog() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Run("empty path uses embedded", func(t *testing.T) {
		cat, err := LoadCatalog("")
		if err != nil {
			t.Fatalf("LoadCatalog(\"\") error: %v", err)
		}
		if diff := cmp.Diff(DefaultCatalog(), cat); diff != "" {
			t.Errorf("LoadCatalog(\"\") mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("file override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "defaults.yaml")
		if err := os.WriteFile(path, []byte("weekday: [Swim]\n"), 0600); err != nil {
			t.Fatal(err)
		}
		cat, err := LoadCatalog(path)
		if err != nil {
			t.Fatalf("LoadCatalog() error: %v", err)
		}
		if diff := cmp.Diff([]string{"Swim"}, cat.Items(models.ContextWeekday)); diff != "" {
			t.Errorf("weekday items mismatch (-want +got):\n%s", diff)
		}
		if len(cat.Items(models.ContextWeekend)) != 0 {
			t.Errorf("weekend items = %v, want none", cat.Items(models.ContextWeekend))
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("LoadCatalog() on missing file returned nil error")
		}
	})
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SPINDAY_CONFIG", "/tmp/spin.db")
	t.Setenv("SPINDAY_DEBUG", "true")
	t.Setenv("SPINDAY_DEFAULTS_FILE", "~/defaults.yaml")

	cfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() error: %v", err)
	}
	if cfg.ConfigPath != "/tmp/spin.db" {
		t.Errorf("ConfigPath = %q, want /tmp/spin.db", cfg.ConfigPath)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
	if cfg.DefaultsFile != "~/defaults.yaml" {
		t.Errorf("DefaultsFile = %q", cfg.DefaultsFile)
	}
}

func TestLoadEnvInvalidBool(t *testing.T) {
	t.Setenv("SPINDAY_DEBUG", "maybe")
	if _, err := LoadEnv(); err == nil {
		t.Error("LoadEnv() with invalid bool returned nil error")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	got, err := ExpandPath("~/.config/spinday/spinday.db")
	if err != nil {
		t.Fatalf("ExpandPath() error: %v", err)
	}
	if want := filepath.Join(home, ".config/spinday/spinday.db"); got != want {
		t.Errorf("ExpandPath() = %q, want %q", got, want)
	}

	if got, _ := ExpandPath("/abs/path.db"); got != "/abs/path.db" {
		t.Errorf("ExpandPath(abs) = %q, want unchanged", got)
	}
}

func TestIsPostgresTarget(t *testing.T) {
	tests := map[string]bool{
		"postgres://localhost/spinday":   true,
		"postgresql://user@host/spinday": true,
		"/home/me/.config/spinday.db":    false,
		"spinday.json":                   false,
	}
	for target, want := range tests {
		if got := IsPostgresTarget(target); got != want {
			t.Errorf("IsPostgresTarget(%q) = %v, want %v", target, got, want)
		}
	}
}
