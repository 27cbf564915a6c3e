package constants

const (
	// General Settings
	SettingTimezone             = "timezone"
	SettingLanguage             = "language"
	SettingShuffleWorkingSet    = "shuffle_working_set"
	SettingRevealDelaySec       = "reveal_delay_sec"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingReminderSchedule     = "reminder_schedule"

	// Default Settings Values
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultLanguage             = "en"
	DefaultShuffleWorkingSet    = false
	DefaultRevealDelaySec       = 3
	DefaultNotificationsEnabled = false
	DefaultReminderSchedule     = "0 9 * * *"
)
