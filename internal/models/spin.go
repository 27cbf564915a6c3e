package models

import "time"

// SpinEvent is the history record written when a spin settles
type SpinEvent struct {
	ID        string      `json:"id"`
	Day       string      `json:"day"` // YYYY-MM-DD format
	Context   PoolContext `json:"context"`
	Item      string      `json:"item"`
	CreatedAt time.Time   `json:"created_at"`
}

// PendingActivity is the most recent spin result not yet turned into a diary entry
type PendingActivity struct {
	Item    string      `json:"item"`
	Context PoolContext `json:"context"`
}

func (p PendingActivity) IsZero() bool { return p.Item == "" }
