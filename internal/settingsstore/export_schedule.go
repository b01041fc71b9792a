package settingsstore

import (
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/shelf/internal/entities"
)

const defaultExportSchedule = "0 6 * * *"

// ExportScheduleConfig represents the effective configuration for scheduled exports
type ExportScheduleConfig struct {
	Enabled  bool   `json:"enabled"`
	Dir      string `json:"dir"`
	Schedule string `json:"schedule"`
}

// ExportScheduleInfo includes source information for each field
type ExportScheduleInfo struct {
	Enabled       bool   `json:"enabled"`
	EnabledSource string `json:"enabled_source"`

	Dir       string `json:"dir"`
	DirSource string `json:"dir_source"`

	Schedule       string `json:"schedule"`
	ScheduleSource string `json:"schedule_source"`
}

// ExportStatus represents the outcome of the last export run
type ExportStatus struct {
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
	Status    string     `json:"status,omitempty"`  // "success", "failed", ""
	Message   string     `json:"message,omitempty"` // Error message or stats summary
}

func (s *SettingsStore) GetExportEnabled() (bool, string) {
	return s.resolveBool(entities.SettingKeyExportEnabled, "EXPORT_SCHEDULE_ENABLED", false)
}

func (s *SettingsStore) SetExportEnabled(enabled bool) error {
	return s.repo.SetSetting(entities.SettingKeyExportEnabled, strconv.FormatBool(enabled))
}

func (s *SettingsStore) GetExportDir() (string, string) {
	return s.resolve(entities.SettingKeyExportDir, "EXPORT_DIR", "./export")
}

func (s *SettingsStore) SetExportDir(dir string) error {
	return s.repo.SetSetting(entities.SettingKeyExportDir, dir)
}

func (s *SettingsStore) GetExportSchedule() (string, string) {
	return s.resolve(entities.SettingKeyExportSchedule, "EXPORT_SCHEDULE", defaultExportSchedule)
}

// SetExportSchedule validates and stores a five-field cron expression.
func (s *SettingsStore) SetExportSchedule(schedule string) error {
	if err := ValidateCronSchedule(schedule); err != nil {
		return err
	}
	return s.repo.SetSetting(entities.SettingKeyExportSchedule, schedule)
}

func (s *SettingsStore) GetExportScheduleConfig() ExportScheduleConfig {
	enabled, _ := s.GetExportEnabled()
	dir, _ := s.GetExportDir()
	schedule, _ := s.GetExportSchedule()
	return ExportScheduleConfig{Enabled: enabled, Dir: dir, Schedule: schedule}
}

func (s *SettingsStore) GetExportScheduleInfo() ExportScheduleInfo {
	info := ExportScheduleInfo{}
	info.Enabled, info.EnabledSource = s.GetExportEnabled()
	info.Dir, info.DirSource = s.GetExportDir()
	info.Schedule, info.ScheduleSource = s.GetExportSchedule()
	return info
}

// GetExportStatus returns the last export status
func (s *SettingsStore) GetExportStatus() ExportStatus {
	status := ExportStatus{}

	if value, ok := s.stored(entities.SettingKeyExportLastAt); ok {
		if ts, err := time.Parse(time.RFC3339, value); err == nil {
			status.LastRunAt = &ts
		}
	}
	status.Status, _ = s.stored(entities.SettingKeyExportLastStatus)
	status.Message, _ = s.stored(entities.SettingKeyExportLastMessage)
	return status
}

// SetExportStatus records the outcome of an export run
func (s *SettingsStore) SetExportStatus(status, message string) error {
	return s.repo.SetSettings(map[string]string{
		entities.SettingKeyExportLastAt:      time.Now().UTC().Format(time.RFC3339),
		entities.SettingKeyExportLastStatus:  status,
		entities.SettingKeyExportLastMessage: message,
	})
}

// ClearExportSettings clears all database overrides, reverting to env/default
func (s *SettingsStore) ClearExportSettings() error {
	return s.clear(
		entities.SettingKeyExportEnabled,
		entities.SettingKeyExportDir,
		entities.SettingKeyExportSchedule,
	)
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule validates a cron schedule string
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// GetCronDescription returns a human-readable description of a cron schedule
func GetCronDescription(schedule string) string {
	switch schedule {
	case "0 * * * *":
		return "Every hour at :00"
	case "0 6 * * *":
		return "Daily at 06:00"
	case "0 0 * * *":
		return "Daily at midnight"
	case "0 0 * * 0":
		return "Weekly on Sunday at midnight"
	case "0 0 1 * *":
		return "Monthly on the 1st at midnight"
	default:
		return "Custom schedule: " + schedule
	}
}

// GetNextRunTime calculates when the next export will run after from
func GetNextRunTime(schedule string, from time.Time) (time.Time, error) {
	sched, err := cronParser.Parse(schedule)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(from), nil
}
