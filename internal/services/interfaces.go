package services

import (
	"github.com/mrlokans/shelf/internal/catalog"
	"github.com/mrlokans/shelf/internal/entities"
)

// SettingsRepository is the key/value persistence behind the settings store.
type SettingsRepository interface {
	GetValue(key string) (string, bool, error)
	SetSetting(key, value string) error
	SetSettings(values map[string]string) error
	DeleteSettings(keys ...string) error
	All(prefix string) ([]entities.Setting, error)
}

// ConfigurationProvider supplies the reader's current preferences.
type ConfigurationProvider interface {
	GetConfiguration() *catalog.Configuration
}

// AuditLogger records catalog mutations.
type AuditLogger interface {
	LogPublication(eventType entities.AuditEventType, publicationID int, description string, err error)
	LogRemoval(publicationID int, description, snapshot string)
	LogAnnotation(eventType entities.AuditEventType, publicationID int, annotationID, description string)
}

// SnapshotWriter keeps a copy of data that is about to be destroyed.
type SnapshotWriter interface {
	SaveJSON(data any) (string, error)
}

// CatalogStore loads and persists the whole collection.
type CatalogStore interface {
	Load() (*catalog.Collection, error)
	Save(c *catalog.Collection) error
}

// MaintenanceSettings is the part of the settings store used by exports.
type MaintenanceSettings interface {
	ConfigurationProvider
	GetOwner() (catalog.User, error)
	SetExportStatus(status, message string) error
}

// MaintenanceAuditLogger records export and file verification runs.
type MaintenanceAuditLogger interface {
	LogExport(description string, filesWritten int, err error)
	LogVerify(description string, checked, missing int, err error)
}
