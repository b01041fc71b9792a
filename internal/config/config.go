package config

import (
	"time"

	"github.com/spf13/viper"
)

type StorageBackend string

const (
	StorageBackendSQLite StorageBackend = "sqlite" // Catalog kept in the main database (default)
	StorageBackendJSON   StorageBackend = "json"   // Catalog kept in a single JSON file
)

type (
	Config struct {
		Database
		Storage
		Export
		ExportSchedule
		Reports
		Files
		Audit
		Global
		Tasks
	}

	Database struct {
		Path     string
		LogLevel string // silent, error, warn or info
	}
	Storage struct {
		Backend  StorageBackend
		JSONPath string
	}
	Export struct {
		Dir string // Directory for markdown exports
	}
	ExportSchedule struct {
		Enabled  bool
		Schedule string // Cron format: "0 6 * * *" = daily at 06:00
	}
	Reports struct {
		GoalPace string // daily or monthly
		TopN     int
	}
	Files struct {
		VerifyConcurrency int
	}
	Audit struct {
		Dir           string // Snapshots of removed publications
		RetentionDays int    // Days to keep audit events (default: 90)
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("storage_backend", string(StorageBackendSQLite))
	v.SetDefault("storage_json_path", DefaultCatalogJSONPath)
	v.SetDefault("export_dir", "./export")
	v.SetDefault("export_schedule_enabled", false)
	v.SetDefault("export_schedule", "0 6 * * *") // Daily at 06:00
	v.SetDefault("goal_pace", "daily")
	v.SetDefault("report_top_n", 5)
	v.SetDefault("verify_concurrency", 8)
	v.SetDefault("audit_dir", "./audit")
	v.SetDefault("audit_retention_days", 90)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	return &Config{
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Storage: Storage{
			Backend:  StorageBackend(v.GetString("STORAGE_BACKEND")),
			JSONPath: v.GetString("STORAGE_JSON_PATH"),
		},
		Export: Export{
			Dir: v.GetString("EXPORT_DIR"),
		},
		ExportSchedule: ExportSchedule{
			Enabled:  v.GetBool("EXPORT_SCHEDULE_ENABLED"),
			Schedule: v.GetString("EXPORT_SCHEDULE"),
		},
		Reports: Reports{
			GoalPace: v.GetString("GOAL_PACE"),
			TopN:     v.GetInt("REPORT_TOP_N"),
		},
		Files: Files{
			VerifyConcurrency: v.GetInt("VERIFY_CONCURRENCY"),
		},
		Audit: Audit{
			Dir:           v.GetString("AUDIT_DIR"),
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
	}
}
