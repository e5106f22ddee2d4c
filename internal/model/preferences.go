package model

// Preferences are the user-configurable toggles. Persisted as a single
// record; the loader decodes over DefaultPreferences, so fields absent
// from an older file keep their defaults.
type Preferences struct {
	SoftMode           bool   `json:"soft_mode"`
	AvatarEmoji        string `json:"avatar_emoji"`
	WeekStartsOnMonday bool   `json:"week_starts_on_monday"`
	DailyReminder      bool   `json:"daily_reminder"`
	SparkSound         bool   `json:"spark_sound"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		SoftMode:           true,
		AvatarEmoji:        "🏠",
		WeekStartsOnMonday: true,
		SparkSound:         true,
	}
}
