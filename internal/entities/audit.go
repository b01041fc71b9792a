package entities

import "time"

type AuditEventType string

const (
	AuditEventRegister          AuditEventType = "register"
	AuditEventRemove            AuditEventType = "remove"
	AuditEventReadingStarted    AuditEventType = "reading_started"
	AuditEventReadingFinished   AuditEventType = "reading_finished"
	AuditEventRated             AuditEventType = "rated"
	AuditEventAnnotationAdded   AuditEventType = "annotation_added"
	AuditEventAnnotationRemoved AuditEventType = "annotation_removed"
	AuditEventSettings          AuditEventType = "settings"
	AuditEventExport            AuditEventType = "export"
	AuditEventVerify            AuditEventType = "verify"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action      string         `gorm:"size:100" json:"action"`      // e.g., "publication_register", "markdown_export"
	Description string         `gorm:"size:500" json:"description"` // Human-readable summary
	EntityType  string         `gorm:"size:50" json:"entity_type"`  // "publication", "annotation", etc.
	EntityID    *uint          `gorm:"index" json:"entity_id,omitempty"`
	Metadata    string         `gorm:"type:text" json:"metadata,omitempty"` // JSON for extra data
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
