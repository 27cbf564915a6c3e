// Package pool manages the activities that can land on the wheel. The
// effective pool for a context is the user's own items followed by the
// default items that have not been hidden. It is recomputed on every read.
package pool

import (
	"time"

	"github.com/julianstephens/spinday/internal/constants"
	apperrors "github.com/julianstephens/spinday/internal/errors"
	"github.com/julianstephens/spinday/internal/logger"
	"github.com/julianstephens/spinday/internal/models"
)

// Store is the slice of storage.Provider the pool needs
type Store interface {
	GetUserItems(pc models.PoolContext) ([]string, error)
	AppendUserItem(pc models.PoolContext, label string) error
	RemoveUserItem(pc models.PoolContext, label string) (bool, error)
	GetDeletedDefaults() ([]string, error)
	AddDeletedDefault(label string) error
	RemoveDeletedDefault(label string) error
	AddSpinDate(day string) error
	GetSpinDates() ([]string, error)
}

// Defaults supplies the shipped items for a context in source order
type Defaults interface {
	Items(pc models.PoolContext) []string
}

type Manager struct {
	store    Store
	defaults Defaults
}

func NewManager(store Store, defaults Defaults) *Manager {
	return &Manager{store: store, defaults: defaults}
}

// EffectivePool returns the user items for pc in insertion order, then the
// surviving defaults in source order.
func (m *Manager) EffectivePool(pc models.PoolContext) ([]string, error) {
	user, err := m.store.GetUserItems(pc)
	if err != nil {
		return nil, apperrors.Storage("read user items", err)
	}
	hidden, err := m.hiddenSet()
	if err != nil {
		return nil, err
	}

	pool := make([]string, 0, len(user))
	pool = append(pool, user...)
	for _, label := range m.defaults.Items(pc) {
		if !hidden[label] {
			pool = append(pool, label)
		}
	}
	return pool, nil
}

// Items lists every item that belongs to pc, hidden defaults included, in
// effective-pool order with the hidden defaults after the visible ones.
func (m *Manager) Items(pc models.PoolContext) ([]models.Item, error) {
	user, err := m.store.GetUserItems(pc)
	if err != nil {
		return nil, apperrors.Storage("read user items", err)
	}
	hidden, err := m.hiddenSet()
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(user))
	for _, label := range user {
		items = append(items, models.Item{Label: label, Context: pc, Provenance: models.ProvenanceUserAdded})
	}
	var suppressed []models.Item
	for _, label := range m.defaults.Items(pc) {
		item := models.Item{Label: label, Context: pc, Provenance: models.ProvenanceDefault, Hidden: hidden[label]}
		if item.Hidden {
			suppressed = append(suppressed, item)
			continue
		}
		items = append(items, item)
	}
	return append(items, suppressed...), nil
}

func (m *Manager) hiddenSet() (map[string]bool, error) {
	labels, err := m.store.GetDeletedDefaults()
	if err != nil {
		return nil, apperrors.Storage("read hidden defaults", err)
	}
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		set[l] = true
	}
	return set, nil
}

// AddUserItem appends label to pc. Duplicates are kept and each copy takes
// its own slot on the wheel.
func (m *Manager) AddUserItem(pc models.PoolContext, label string) error {
	if err := m.store.AppendUserItem(pc, label); err != nil {
		return apperrors.Storage("add user item", err)
	}
	logger.Debug("Added user item", "context", pc, "label", label)
	return nil
}

// RemoveUserItem drops the first occurrence of label from pc. Absent labels are ignored.
func (m *Manager) RemoveUserItem(pc models.PoolContext, label string) error {
	removed, err := m.store.RemoveUserItem(pc, label)
	if err != nil {
		return apperrors.Storage("remove user item", err)
	}
	logger.Debug("Removed user item", "context", pc, "label", label, "found", removed)
	return nil
}

// HideDefaultItem suppresses a default label in every context
func (m *Manager) HideDefaultItem(label string) error {
	if err := m.store.AddDeletedDefault(label); err != nil {
		return apperrors.Storage("hide default item", err)
	}
	logger.Debug("Hid default item", "label", label)
	return nil
}

// RestoreDefaultItem undoes HideDefaultItem
func (m *Manager) RestoreDefaultItem(label string) error {
	if err := m.store.RemoveDeletedDefault(label); err != nil {
		return apperrors.Storage("restore default item", err)
	}
	logger.Debug("Restored default item", "label", label)
	return nil
}

// RecordSpin marks the calendar day of date as spun. The day is taken in
// date's own location.
func (m *Manager) RecordSpin(date time.Time) error {
	day := date.Format(constants.DateFormat)
	if err := m.store.AddSpinDate(day); err != nil {
		return apperrors.Storage("record spin date", err)
	}
	return nil
}

// SpinDates returns every spun day at midnight UTC, oldest first
func (m *Manager) SpinDates() ([]time.Time, error) {
	days, err := m.store.GetSpinDates()
	if err != nil {
		return nil, apperrors.Storage("read spin dates", err)
	}
	dates := make([]time.Time, 0, len(days))
	for _, d := range days {
		t, err := time.Parse(constants.DateFormat, d)
		if err != nil {
			logger.Warn("Skipping malformed spin date", "value", d, "error", err)
			continue
		}
		dates = append(dates, t)
	}
	return dates, nil
}
