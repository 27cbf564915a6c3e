package storage

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"time"

	apperrors "github.com/julianstephens/spinday/internal/errors"
	"github.com/julianstephens/spinday/internal/models"
)

const jsonDocumentVersion = 1

// Document is the on-disk layout of the JSON backend. It mirrors a flat
// preferences file: one list per context and the diary as encoded strings.
type Document struct {
	Version             int                  `json:"version"`
	Settings            models.Settings      `json:"settings"`
	WeekdayItems        []string             `json:"weekday_items"`
	WeekendItems        []string             `json:"weekend_items"`
	DeletedDefaultItems []string             `json:"deleted_default_items"`
	SpinDates           []string             `json:"spin_dates"`
	SpinEvents          []models.SpinEvent   `json:"spin_events"`
	SelectedItem        string               `json:"selected_item,omitempty"`
	SelectedContext     string               `json:"selected_context,omitempty"`
	Diary               map[string]string    `json:"diary"` // photo -> "text\nDate: yyyy-mm-dd"
	DiaryUpdatedAt      map[string]time.Time `json:"diary_updated_at"`
}

type JSONStore struct {
	path string
	doc  *Document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	doc := &Document{
		Version:  jsonDocumentVersion,
		Settings: models.DefaultSettings(),
	}
	doc.ensureMaps()
	if err := s.save(doc); err != nil {
		return err
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'spinday init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonDocumentVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d) - please upgrade spinday", doc.Version, jsonDocumentVersion)
	}
	doc.ensureMaps()
	s.doc = doc

	return nil
}

func (d *Document) ensureMaps() {
	if d.Diary == nil {
		d.Diary = make(map[string]string)
	}
	if d.DiaryUpdatedAt == nil {
		d.DiaryUpdatedAt = make(map[string]time.Time)
	}
}

func (s *JSONStore) Close() error {
	return nil
}

// clone deep-copies the document so a failed save leaves the loaded one untouched
func (d *Document) clone() *Document {
	c := *d
	c.WeekdayItems = slices.Clone(d.WeekdayItems)
	c.WeekendItems = slices.Clone(d.WeekendItems)
	c.DeletedDefaultItems = slices.Clone(d.DeletedDefaultItems)
	c.SpinDates = slices.Clone(d.SpinDates)
	c.SpinEvents = slices.Clone(d.SpinEvents)
	c.Diary = maps.Clone(d.Diary)
	c.DiaryUpdatedAt = maps.Clone(d.DiaryUpdatedAt)
	c.ensureMaps()
	return &c
}

// update applies mutate to a copy of the document and keeps the copy only
// once it is on disk
func (s *JSONStore) update(mutate func(doc *Document) error) error {
	if err := s.loaded(); err != nil {
		return err
	}
	next := s.doc.clone()
	if err := mutate(next); err != nil {
		return err
	}
	if err := s.save(next); err != nil {
		return err
	}
	s.doc = next
	return nil
}

// save writes the document atomically through a temporary file
func (s *JSONStore) save(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) loaded() error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	return s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	return s.update(func(doc *Document) error {
		doc.Settings = settings
		return nil
	})
}

func (d *Document) itemList(pc models.PoolContext) (*[]string, error) {
	switch pc {
	case models.ContextWeekday:
		return &d.WeekdayItems, nil
	case models.ContextWeekend:
		return &d.WeekendItems, nil
	default:
		return nil, fmt.Errorf("unknown context %q", pc)
	}
}

func (s *JSONStore) GetUserItems(pc models.PoolContext) ([]string, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	list, err := s.doc.itemList(pc)
	if err != nil {
		return nil, err
	}
	return append([]string{}, (*list)...), nil
}

func (s *JSONStore) AppendUserItem(pc models.PoolContext, label string) error {
	return s.update(func(doc *Document) error {
		list, err := doc.itemList(pc)
		if err != nil {
			return err
		}
		*list = append(*list, label)
		return nil
	})
}

func (s *JSONStore) RemoveUserItem(pc models.PoolContext, label string) (bool, error) {
	if err := s.loaded(); err != nil {
		return false, err
	}
	list, err := s.doc.itemList(pc)
	if err != nil {
		return false, err
	}
	if !slices.Contains(*list, label) {
		return false, nil
	}
	err = s.update(func(doc *Document) error {
		list, _ := doc.itemList(pc)
		idx := slices.Index(*list, label)
		*list = slices.Delete(*list, idx, idx+1)
		return nil
	})
	return err == nil, err
}

func (s *JSONStore) GetDeletedDefaults() ([]string, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	labels := append([]string{}, s.doc.DeletedDefaultItems...)
	sort.Strings(labels)
	return labels, nil
}

func (s *JSONStore) AddDeletedDefault(label string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if slices.Contains(s.doc.DeletedDefaultItems, label) {
		return nil
	}
	return s.update(func(doc *Document) error {
		doc.DeletedDefaultItems = append(doc.DeletedDefaultItems, label)
		return nil
	})
}

func (s *JSONStore) RemoveDeletedDefault(label string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	idx := slices.Index(s.doc.DeletedDefaultItems, label)
	if idx < 0 {
		return nil
	}
	return s.update(func(doc *Document) error {
		doc.DeletedDefaultItems = slices.Delete(doc.DeletedDefaultItems, idx, idx+1)
		return nil
	})
}

func (s *JSONStore) AddSpinDate(day string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if slices.Contains(s.doc.SpinDates, day) {
		return nil
	}
	return s.update(func(doc *Document) error {
		doc.SpinDates = append(doc.SpinDates, day)
		sort.Strings(doc.SpinDates)
		return nil
	})
}

func (s *JSONStore) GetSpinDates() ([]string, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return append([]string{}, s.doc.SpinDates...), nil
}

func (s *JSONStore) AddSpinEvent(event models.SpinEvent) error {
	return s.update(func(doc *Document) error {
		doc.SpinEvents = append(doc.SpinEvents, event)
		return nil
	})
}

func (s *JSONStore) GetSpinEvents(startDay, endDay string) ([]models.SpinEvent, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	events := []models.SpinEvent{}
	for _, e := range s.doc.SpinEvents {
		if e.Day >= startDay && e.Day <= endDay {
			events = append(events, e)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events, nil
}

func (s *JSONStore) GetPendingActivity() (models.PendingActivity, error) {
	if err := s.loaded(); err != nil {
		return models.PendingActivity{}, err
	}
	return models.PendingActivity{
		Item:    s.doc.SelectedItem,
		Context: models.PoolContext(s.doc.SelectedContext),
	}, nil
}

func (s *JSONStore) SavePendingActivity(p models.PendingActivity) error {
	return s.update(func(doc *Document) error {
		doc.SelectedItem = p.Item
		doc.SelectedContext = string(p.Context)
		return nil
	})
}

func (s *JSONStore) ClearPendingActivity() error {
	return s.SavePendingActivity(models.PendingActivity{})
}

func (s *JSONStore) SaveDiaryEntry(entry models.DiaryEntry) error {
	return s.update(func(doc *Document) error {
		doc.Diary[entry.PhotoURI] = entry.Encode()
		doc.DiaryUpdatedAt[entry.PhotoURI] = entry.UpdatedAt
		return nil
	})
}

func (s *JSONStore) GetDiaryEntry(photoURI string) (models.DiaryEntry, error) {
	if err := s.loaded(); err != nil {
		return models.DiaryEntry{}, err
	}
	raw, ok := s.doc.Diary[photoURI]
	if !ok {
		return models.DiaryEntry{}, fmt.Errorf("diary entry %s: %w", photoURI, apperrors.ErrNotFound)
	}
	entry := models.ParseDiaryEntry(photoURI, raw)
	entry.UpdatedAt = s.doc.DiaryUpdatedAt[photoURI]
	return entry, nil
}

func (s *JSONStore) GetAllDiaryEntries() ([]models.DiaryEntry, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	entries := make([]models.DiaryEntry, 0, len(s.doc.Diary))
	for photo, raw := range s.doc.Diary {
		entry := models.ParseDiaryEntry(photo, raw)
		entry.UpdatedAt = s.doc.DiaryUpdatedAt[photo]
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].PhotoURI < entries[j].PhotoURI })
	return entries, nil
}

func (s *JSONStore) DeleteDiaryEntry(photoURI string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Diary[photoURI]; !ok {
		return fmt.Errorf("diary entry %s: %w", photoURI, apperrors.ErrNotFound)
	}
	return s.update(func(doc *Document) error {
		delete(doc.Diary, photoURI)
		delete(doc.DiaryUpdatedAt, photoURI)
		return nil
	})
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
