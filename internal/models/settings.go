package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/text/language"

	"github.com/julianstephens/spinday/internal/constants"
)

// Settings represents application-wide settings
type Settings struct {
	Timezone             string `json:"timezone"`              // IANA timezone name or "Local"
	Language             string `json:"language"`              // BCP 47 tag, e.g. "en" or "ja"
	ShuffleWorkingSet    bool   `json:"shuffle_working_set"`   // shuffle wheels that need no sampling
	RevealDelaySec       int    `json:"reveal_delay_sec"`      // pause after the wheel settles
	NotificationsEnabled bool   `json:"notifications_enabled"` // announce results to the tray app
	ReminderSchedule     string `json:"reminder_schedule"`     // cron spec for spin reminders
}

// DefaultSettings returns the settings written by a fresh init
func DefaultSettings() Settings {
	return Settings{
		Timezone:             constants.DefaultTimezone,
		Language:             constants.DefaultLanguage,
		ShuffleWorkingSet:    constants.DefaultShuffleWorkingSet,
		RevealDelaySec:       constants.DefaultRevealDelaySec,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		ReminderSchedule:     constants.DefaultReminderSchedule,
	}
}

// ToMap flattens settings into the key/value rows stored by every backend
func (s Settings) ToMap() map[string]string {
	return map[string]string{
		constants.SettingTimezone:             s.Timezone,
		constants.SettingLanguage:             s.Language,
		constants.SettingShuffleWorkingSet:    strconv.FormatBool(s.ShuffleWorkingSet),
		constants.SettingRevealDelaySec:       strconv.Itoa(s.RevealDelaySec),
		constants.SettingNotificationsEnabled: strconv.FormatBool(s.NotificationsEnabled),
		constants.SettingReminderSchedule:     s.ReminderSchedule,
	}
}

// SettingsFromMap rebuilds settings from stored rows. Missing keys keep their
// defaults and unknown keys are ignored.
func SettingsFromMap(values map[string]string) (Settings, error) {
	settings := DefaultSettings()
	for key, value := range values {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingLanguage:
			settings.Language = value
		case constants.SettingShuffleWorkingSet:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.ShuffleWorkingSet = b
		case constants.SettingRevealDelaySec:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.RevealDelaySec = n
		case constants.SettingNotificationsEnabled:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.NotificationsEnabled = b
		case constants.SettingReminderSchedule:
			settings.ReminderSchedule = value
		}
	}
	return settings, nil
}

// Validate checks every field that has a restricted form
func (s Settings) Validate() error {
	if s.Timezone != "" && s.Timezone != "Local" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
		}
	}
	if _, err := language.Parse(s.Language); err != nil {
		return fmt.Errorf("invalid language %q: %w", s.Language, err)
	}
	if s.RevealDelaySec < 0 {
		return fmt.Errorf("reveal delay must not be negative, got %d", s.RevealDelaySec)
	}
	if _, err := cron.ParseStandard(s.ReminderSchedule); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.ReminderSchedule, err)
	}
	return nil
}

// RevealDelay is the pause between the wheel settling and the result being recorded
func (s Settings) RevealDelay() time.Duration {
	return time.Duration(s.RevealDelaySec) * time.Second
}

// LanguageTag returns the parsed language, falling back to English
func (s Settings) LanguageTag() language.Tag {
	tag, err := language.Parse(s.Language)
	if err != nil {
		return language.English
	}
	return tag
}
