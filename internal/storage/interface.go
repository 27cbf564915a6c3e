package storage

import "github.com/julianstephens/spinday/internal/models"

// Provider is the persistence boundary shared by every backend.
// Dates are passed as YYYY-MM-DD strings.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// User items, kept in insertion order per context
	GetUserItems(pc models.PoolContext) ([]string, error)
	AppendUserItem(pc models.PoolContext, label string) error
	// RemoveUserItem deletes the first matching entry and reports whether one existed
	RemoveUserItem(pc models.PoolContext, label string) (bool, error)

	// Hidden default items
	GetDeletedDefaults() ([]string, error)
	AddDeletedDefault(label string) error
	RemoveDeletedDefault(label string) error

	// Spins
	AddSpinDate(day string) error
	GetSpinDates() ([]string, error)
	AddSpinEvent(models.SpinEvent) error
	GetSpinEvents(startDay, endDay string) ([]models.SpinEvent, error)

	// Pending activity
	GetPendingActivity() (models.PendingActivity, error)
	SavePendingActivity(models.PendingActivity) error
	ClearPendingActivity() error

	// Diary
	SaveDiaryEntry(models.DiaryEntry) error
	GetDiaryEntry(photoURI string) (models.DiaryEntry, error)
	GetAllDiaryEntries() ([]models.DiaryEntry, error)
	DeleteDiaryEntry(photoURI string) error

	// Utils
	GetConfigPath() string
}
