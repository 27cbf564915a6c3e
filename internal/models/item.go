package models

import (
	"fmt"
	"strings"
)

// PoolContext identifies which calendar variant of the wheel an item belongs to
type PoolContext string

const (
	ContextWeekday PoolContext = "weekday"
	ContextWeekend PoolContext = "weekend"
)

// Contexts lists every pool context in display order
var Contexts = []PoolContext{ContextWeekday, ContextWeekend}

// ParsePoolContext accepts "weekday"/"weekend" (case-insensitive) and their short forms
func ParsePoolContext(s string) (PoolContext, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekday", "wd", "day":
		return ContextWeekday, nil
	case "weekend", "we", "end":
		return ContextWeekend, nil
	default:
		return "", fmt.Errorf("invalid context %q (expected weekday or weekend)", s)
	}
}

func (c PoolContext) String() string { return string(c) }

// Provenance records where an activity label came from
type Provenance string

const (
	ProvenanceDefault   Provenance = "default"
	ProvenanceUserAdded Provenance = "user"
)

// Item is an activity label annotated for listing. Labels are their own identity.
type Item struct {
	Label      string      `json:"label"`
	Context    PoolContext `json:"context"`
	Provenance Provenance  `json:"provenance"`
	Hidden     bool        `json:"hidden"` // default item suppressed by the user
}
