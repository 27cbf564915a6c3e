package constants

import "time"

const (
	AppName            = "spinday"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/spinday/spinday.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is used for calendar month selection (YYYY-MM)
	MonthFormat = "2006-01"

	// TimestampFormat is a fixed-width UTC timestamp that sorts lexically
	TimestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "spinday-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "spinday-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.spinday"
	TrayAppExecutable      = "spinday-tray"

	// Diary constants
	DiaryDateDelimiter   = "\nDate: "
	DiaryCompletedPrefix = "Completed: "

	// Pending activity keys, stored alongside settings
	PendingActivityKey = "selected_item"
	PendingContextKey  = "selected_context"

	DefaultHistoryDays     = 30
	CalendarHalfMonthSplit = 15
)
