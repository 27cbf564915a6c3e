package utils

import (
	"testing"
	"time"

	"github.com/julianstephens/spinday/internal/models"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{"empty is local", "", false},
		{"Local", "Local", false},
		{"UTC", "UTC", false},
		{"IANA name", "Asia/Tokyo", false},
		{"invalid", "Not/AZone", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadLocation(%q) error = %v, wantErr %v", tt.timezone, err, tt.wantErr)
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation(%q) returned nil location", tt.timezone)
			}
		})
	}
}

func TestTodayFromSettings(t *testing.T) {
	today, err := TodayFromSettings(models.Settings{Timezone: "UTC"})
	if err != nil {
		t.Fatalf("TodayFromSettings() error: %v", err)
	}
	if today.Hour() != 0 || today.Minute() != 0 || today.Second() != 0 {
		t.Errorf("TodayFromSettings() = %v, want midnight", today)
	}
	if today.Location() != time.UTC {
		t.Errorf("TodayFromSettings() location = %v, want UTC", today.Location())
	}

	if _, err := TodayFromSettings(models.Settings{Timezone: "Mars/Olympus"}); err == nil {
		t.Error("TodayFromSettings() with invalid timezone returned nil error")
	}
}

func TestTruncateDay(t *testing.T) {
	in := time.Date(2026, 10, 17, 23, 59, 59, 999, time.UTC)
	got := TruncateDay(in)
	want := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("TruncateDay() = %v, want %v", got, want)
	}
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	if err != nil {
		t.Fatalf("ParseDate() error: %v", err)
	}
	if FormatDate(d) != "2026-02-28" {
		t.Errorf("FormatDate() = %q, want 2026-02-28", FormatDate(d))
	}
	if _, err := ParseDate("28/02/2026"); err == nil {
		t.Error("ParseDate() accepted a non-ISO date")
	}
}

func TestContextForDate(t *testing.T) {
	tests := []struct {
		date string
		want models.PoolContext
	}{
		{"2026-10-16", models.ContextWeekday}, // Friday
		{"2026-10-17", models.ContextWeekend}, // Saturday
		{"2026-10-18", models.ContextWeekend}, // Sunday
		{"2026-10-19", models.ContextWeekday}, // Monday
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := ParseDate(tt.date)
			if err != nil {
				t.Fatal(err)
			}
			if got := ContextForDate(d); got != tt.want {
				t.Errorf("ContextForDate(%s) = %s, want %s", tt.date, got, tt.want)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Local") || !ValidateTimezone("") || !ValidateTimezone("Europe/London") {
		t.Error("ValidateTimezone() rejected a valid timezone")
	}
	if ValidateTimezone("Invalid/Zone") {
		t.Error("ValidateTimezone() accepted an invalid timezone")
	}
}
