package models

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

func TestParsePoolContext(t *testing.T) {
	tests := []struct {
		in      string
		want    PoolContext
		wantErr bool
	}{
		{"weekday", ContextWeekday, false},
		{"WEEKDAY", ContextWeekday, false},
		{" wd ", ContextWeekday, false},
		{"weekend", ContextWeekend, false},
		{"we", ContextWeekend, false},
		{"holiday", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePoolContext(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePoolContext(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePoolContext(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDiaryEntryEncode(t *testing.T) {
	dated := DiaryEntry{PhotoURI: "p.jpg", Text: "Went hiking", SavedOn: "2026-10-17"}
	if got, want := dated.Encode(), "Went hiking\nDate: 2026-10-17"; got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}

	undated := DiaryEntry{PhotoURI: "p.jpg", Text: "Just text"}
	if got := undated.Encode(); got != "Just text" {
		t.Errorf("Encode() = %q, want %q", got, "Just text")
	}
}

func TestParseDiaryEntry(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want DiaryEntry
	}{
		{
			name: "dated",
			raw:  "Read a book\nDate: 2026-10-01",
			want: DiaryEntry{PhotoURI: "a", Text: "Read a book", SavedOn: "2026-10-01"},
		},
		{
			name: "undated",
			raw:  "Read a book",
			want: DiaryEntry{PhotoURI: "a", Text: "Read a book"},
		},
		{
			name: "delimiter in text",
			raw:  "Line\nDate: soon\nDate: 2026-10-02",
			want: DiaryEntry{PhotoURI: "a", Text: "Line\nDate: soon", SavedOn: "2026-10-02"},
		},
		{
			name: "invalid date suffix kept as text",
			raw:  "Line\nDate: tomorrow",
			want: DiaryEntry{PhotoURI: "a", Text: "Line\nDate: tomorrow"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDiaryEntry("a", tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseDiaryEntry() mismatch (-want +got):\n%s", diff)
			}
			if got.Encode() != tt.raw {
				t.Errorf("Encode() = %q, want original %q", got.Encode(), tt.raw)
			}
		})
	}
}

func TestSettingsMapRoundTrip(t *testing.T) {
	s := Settings{
		Timezone:             "Asia/Tokyo",
		Language:             "ja",
		ShuffleWorkingSet:    true,
		RevealDelaySec:       5,
		NotificationsEnabled: true,
		ReminderSchedule:     "30 8 * * 1-5",
	}

	got, err := SettingsFromMap(s.ToMap())
	if err != nil {
		t.Fatalf("SettingsFromMap() error = %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsFromMapDefaultsAndErrors(t *testing.T) {
	got, err := SettingsFromMap(map[string]string{"unknown": "x"})
	if err != nil {
		t.Fatalf("SettingsFromMap() error = %v", err)
	}
	if diff := cmp.Diff(DefaultSettings(), got); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	if _, err := SettingsFromMap(map[string]string{"reveal_delay_sec": "soon"}); err == nil {
		t.Error("expected error for non-numeric reveal delay")
	}
	if _, err := SettingsFromMap(map[string]string{"shuffle_working_set": "maybe"}); err == nil {
		t.Error("expected error for non-boolean shuffle flag")
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(*Settings) {}, false},
		{"named timezone", func(s *Settings) { s.Timezone = "Europe/Berlin" }, false},
		{"bad timezone", func(s *Settings) { s.Timezone = "Mars/Olympus" }, true},
		{"bad language", func(s *Settings) { s.Language = "not a tag!" }, true},
		{"negative delay", func(s *Settings) { s.RevealDelaySec = -1 }, true},
		{"bad cron", func(s *Settings) { s.ReminderSchedule = "every morning" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			if err := s.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettingsHelpers(t *testing.T) {
	s := DefaultSettings()
	if s.RevealDelay() != 3*time.Second {
		t.Errorf("RevealDelay() = %v, want 3s", s.RevealDelay())
	}
	if s.LanguageTag() != language.English {
		t.Errorf("LanguageTag() = %v, want en", s.LanguageTag())
	}
	s.Language = "???"
	if s.LanguageTag() != language.English {
		t.Errorf("LanguageTag() fallback = %v, want en", s.LanguageTag())
	}
}

func TestPendingActivityIsZero(t *testing.T) {
	if !(PendingActivity{}).IsZero() {
		t.Error("empty pending activity should be zero")
	}
	if (PendingActivity{Item: "Dance", Context: ContextWeekday}).IsZero() {
		t.Error("pending activity with item should not be zero")
	}
}
