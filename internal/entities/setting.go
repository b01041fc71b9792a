package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// Reading preferences
	SettingKeyAnnualGoal               = "annual_goal"
	SettingKeySimultaneousReadingLimit = "simultaneous_reading_limit"
	SettingKeyFavoriteGenre            = "favorite_genre"

	// Catalog owner
	SettingKeyOwnerName  = "owner_name"
	SettingKeyOwnerEmail = "owner_email"

	// Scheduled report export
	SettingKeyExportEnabled     = "export_enabled"
	SettingKeyExportDir         = "export_dir"
	SettingKeyExportSchedule    = "export_schedule"
	SettingKeyExportLastAt      = "export_last_at"
	SettingKeyExportLastStatus  = "export_last_status"
	SettingKeyExportLastMessage = "export_last_message"
)
