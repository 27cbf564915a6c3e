package models

import (
	"strings"
	"time"

	"github.com/julianstephens/spinday/internal/constants"
)

// DiaryEntry is a note attached to the photo taken after completing an activity.
// PhotoURI is the entry's key.
type DiaryEntry struct {
	PhotoURI  string    `json:"photo_uri"`
	Text      string    `json:"text"`
	SavedOn   string    `json:"saved_on,omitempty"` // YYYY-MM-DD, empty for undated entries
	UpdatedAt time.Time `json:"updated_at"`
}

// Encode renders the entry in its single-string form: the text, then the
// save date after a delimiter when one is set.
func (d DiaryEntry) Encode() string {
	if d.SavedOn == "" {
		return d.Text
	}
	return d.Text + constants.DiaryDateDelimiter + d.SavedOn
}

// ParseDiaryEntry is the inverse of Encode. The last delimiter wins so the
// text itself may contain the delimiter.
func ParseDiaryEntry(photoURI, raw string) DiaryEntry {
	entry := DiaryEntry{PhotoURI: photoURI, Text: raw}
	idx := strings.LastIndex(raw, constants.DiaryDateDelimiter)
	if idx < 0 {
		return entry
	}
	date := raw[idx+len(constants.DiaryDateDelimiter):]
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return entry
	}
	entry.Text = raw[:idx]
	entry.SavedOn = date
	return entry
}
