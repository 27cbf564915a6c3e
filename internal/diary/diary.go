// Package diary records what happened after a spin: one entry per photo,
// tied to the activity that was pending when it was written.
package diary

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/spinday/internal/constants"
	apperrors "github.com/julianstephens/spinday/internal/errors"
	"github.com/julianstephens/spinday/internal/logger"
	"github.com/julianstephens/spinday/internal/models"
)

var (
	ErrMissingPhoto = errors.New("photo path is required")
	ErrNoText       = errors.New("diary text is empty and no activity is pending")
	ErrNoActivity   = errors.New("no activity to discard")
)

// Store is the slice of storage.Provider the diary needs
type Store interface {
	SaveDiaryEntry(models.DiaryEntry) error
	GetDiaryEntry(photoURI string) (models.DiaryEntry, error)
	GetAllDiaryEntries() ([]models.DiaryEntry, error)
	DeleteDiaryEntry(photoURI string) error

	GetPendingActivity() (models.PendingActivity, error)
	SavePendingActivity(models.PendingActivity) error
	ClearPendingActivity() error
}

// Pool removes finished activities from the wheel
type Pool interface {
	HideDefaultItem(label string) error
	RemoveUserItem(pc models.PoolContext, label string) error
}

// Defaults supplies the shipped items for a context
type Defaults interface {
	Items(pc models.PoolContext) []string
}

type Service struct {
	store    Store
	pool     Pool
	defaults Defaults
	now      func() time.Time
}

// NewService wires a diary. now supplies the current time in the user's
// timezone and decides the date stamped on entries.
func NewService(store Store, pool Pool, defaults Defaults, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, pool: pool, defaults: defaults, now: now}
}

// Pending returns the activity awaiting a diary entry, zero when there is none
func (s *Service) Pending() (models.PendingActivity, error) {
	p, err := s.store.GetPendingActivity()
	if err != nil {
		return models.PendingActivity{}, apperrors.Storage("read pending activity", err)
	}
	return p, nil
}

// SetPending remembers the activity the user is about to do
func (s *Service) SetPending(p models.PendingActivity) error {
	return apperrors.Storage("save pending activity", s.store.SavePendingActivity(p))
}

// ClearPending forgets the pending activity
func (s *Service) ClearPending() error {
	return apperrors.Storage("clear pending activity", s.store.ClearPendingActivity())
}

// Complete writes the entry for photoURI. Blank text becomes
// "Completed: <activity>" for the pending activity. The pending activity is
// consumed and returned so the caller can offer to discard it.
//
// On any error nothing is returned. If only clearing the pending activity
// failed, the entry is already stored and the activity is still pending, so
// calling Complete again with the same photo is safe.
func (s *Service) Complete(photoURI, text string) (models.DiaryEntry, models.PendingActivity, error) {
	photoURI = strings.TrimSpace(photoURI)
	if photoURI == "" {
		return models.DiaryEntry{}, models.PendingActivity{}, ErrMissingPhoto
	}

	pending, err := s.Pending()
	if err != nil {
		return models.DiaryEntry{}, models.PendingActivity{}, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		if pending.IsZero() {
			return models.DiaryEntry{}, models.PendingActivity{}, ErrNoText
		}
		text = constants.DiaryCompletedPrefix + pending.Item
	}

	entry := s.stamp(models.DiaryEntry{PhotoURI: photoURI, Text: text})
	if err := s.store.SaveDiaryEntry(entry); err != nil {
		return models.DiaryEntry{}, models.PendingActivity{}, apperrors.Storage("save diary entry", err)
	}

	if !pending.IsZero() {
		if err := s.ClearPending(); err != nil {
			return models.DiaryEntry{}, models.PendingActivity{}, err
		}
	}

	logger.Info("Diary entry saved", "photo", photoURI, "activity", pending.Item)
	return entry, pending, nil
}

// Discard takes a finished activity off the wheel. Default items are hidden,
// user items lose their first occurrence in the activity's context.
func (s *Service) Discard(activity models.PendingActivity) error {
	if activity.IsZero() {
		return ErrNoActivity
	}
	pc := activity.Context
	if pc == "" {
		pc = models.ContextWeekday
	}

	if slices.Contains(s.defaults.Items(pc), activity.Item) {
		logger.Info("Hiding default item after completion", "item", activity.Item)
		return s.pool.HideDefaultItem(activity.Item)
	}
	logger.Info("Removing user item after completion", "item", activity.Item, "context", pc)
	return s.pool.RemoveUserItem(pc, activity.Item)
}

// Edit replaces the text of an existing entry and re-dates it to today
func (s *Service) Edit(photoURI, text string) (models.DiaryEntry, error) {
	entry, err := s.Get(photoURI)
	if err != nil {
		return models.DiaryEntry{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return models.DiaryEntry{}, fmt.Errorf("diary text cannot be empty")
	}
	entry.Text = text
	entry = s.stamp(entry)
	if err := s.store.SaveDiaryEntry(entry); err != nil {
		return models.DiaryEntry{}, apperrors.Storage("save diary entry", err)
	}
	return entry, nil
}

func (s *Service) stamp(entry models.DiaryEntry) models.DiaryEntry {
	now := s.now()
	entry.SavedOn = now.Format(constants.DateFormat)
	entry.UpdatedAt = now
	return entry
}

// Get returns the entry for photoURI or an error wrapping ErrNotFound
func (s *Service) Get(photoURI string) (models.DiaryEntry, error) {
	entry, err := s.store.GetDiaryEntry(photoURI)
	if err != nil {
		return models.DiaryEntry{}, storageUnlessMissing("read diary entry", err)
	}
	return entry, nil
}

// List returns every entry, newest first. Undated entries sort last.
func (s *Service) List() ([]models.DiaryEntry, error) {
	entries, err := s.store.GetAllDiaryEntries()
	if err != nil {
		return nil, apperrors.Storage("list diary entries", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.SavedOn != b.SavedOn {
			return a.SavedOn > b.SavedOn
		}
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.PhotoURI < b.PhotoURI
	})
	return entries, nil
}

// ListMonth returns the entries saved in month, newest first
func (s *Service) ListMonth(month time.Time) ([]models.DiaryEntry, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	prefix := month.Format(constants.MonthFormat)
	var out []models.DiaryEntry
	for _, e := range all {
		if strings.HasPrefix(e.SavedOn, prefix) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Delete removes the entry for photoURI
func (s *Service) Delete(photoURI string) error {
	if err := s.store.DeleteDiaryEntry(photoURI); err != nil {
		return storageUnlessMissing("delete diary entry", err)
	}
	return nil
}

func storageUnlessMissing(op string, err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return apperrors.Storage(op, err)
}
