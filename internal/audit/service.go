package audit

import (
	"log"
	"sync"
	"time"

	"github.com/mrlokans/shelf/internal/database/audit"
	"github.com/mrlokans/shelf/internal/entities"
)

const (
	EntityPublication = "publication"
	EntityAnnotation  = "annotation"
	EntityCatalog     = "catalog"
)

// Service provides high-level audit logging functionality.
//
// A Service built with NewService writes events before returning, which is
// what short-lived CLI commands need. NewAsyncService writes in the background
// for the long-running daemon.
type Service struct {
	repo    *audit.Repository
	async   bool
	pending sync.WaitGroup
}

// NewService creates an audit service that logs synchronously.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// NewAsyncService creates an audit service that logs in the background.
func NewAsyncService(repo *audit.Repository) *Service {
	return &Service{repo: repo, async: true}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until every background write has finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

func (s *Service) record(event *entities.AuditEvent) {
	if s.async {
		s.LogAsync(event)
		return
	}
	if err := s.Log(event); err != nil {
		log.Printf("Failed to log audit event: %v", err)
	}
}

// LogPublication records a lifecycle change of a single publication.
func (s *Service) LogPublication(eventType entities.AuditEventType, publicationID int, description string, err error) {
	id := uint(publicationID)
	event := &entities.AuditEvent{
		EventType:   eventType,
		Action:      EntityPublication + "_" + string(eventType),
		Description: description,
		EntityType:  EntityPublication,
		EntityID:    &id,
		Status:      entities.AuditStatusSuccess,
	}
	withError(event, err)
	s.record(event)
}

// LogRemoval records a removed publication and the snapshot file holding its last state.
func (s *Service) LogRemoval(publicationID int, description, snapshot string) {
	id := uint(publicationID)
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventRemove,
		Action:      EntityPublication + "_remove",
		Description: description,
		EntityType:  EntityPublication,
		EntityID:    &id,
		Status:      entities.AuditStatusSuccess,
	}
	withMetadata(event, map[string]any{"snapshot": snapshot})
	s.record(event)
}

// LogAnnotation records an annotation added to or removed from a publication.
func (s *Service) LogAnnotation(eventType entities.AuditEventType, publicationID int, annotationID, description string) {
	id := uint(publicationID)
	event := &entities.AuditEvent{
		EventType:   eventType,
		Action:      string(eventType),
		Description: description,
		EntityType:  EntityPublication,
		EntityID:    &id,
		Status:      entities.AuditStatusSuccess,
	}
	withMetadata(event, map[string]any{"annotation_id": annotationID})
	s.record(event)
}

// LogExport records a markdown or report export.
func (s *Service) LogExport(description string, filesWritten int, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventExport,
		Action:      "markdown_export",
		Description: description,
		EntityType:  EntityCatalog,
		Status:      entities.AuditStatusSuccess,
	}
	withMetadata(event, map[string]any{"files_written": filesWritten})
	withError(event, err)
	s.record(event)
}

// LogVerify records a digital file verification run.
func (s *Service) LogVerify(description string, checked, missing int, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventVerify,
		Action:      "digital_files_verify",
		Description: description,
		EntityType:  EntityCatalog,
		Status:      entities.AuditStatusSuccess,
	}
	withMetadata(event, map[string]any{"checked": checked, "missing": missing})
	withError(event, err)
	s.record(event)
}

// LogSettings records a settings change event.
func (s *Service) LogSettings(action, description string) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventSettings,
		Action:      action,
		Description: description,
		Status:      entities.AuditStatusSuccess,
	}
	s.record(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByType retrieves audit events filtered by type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByType(eventType, limit, offset)
}

// GetPublicationHistory retrieves the events recorded for one publication.
func (s *Service) GetPublicationHistory(publicationID int, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsForEntity(EntityPublication, uint(publicationID), limit, offset)
}

// GetEvent retrieves a single event by ID.
func (s *Service) GetEvent(id uint) (*entities.AuditEvent, error) {
	return s.repo.GetEventByID(id)
}

// GetEventsSince retrieves every event recorded within the last window, newest first.
func (s *Service) GetEventsSince(window time.Duration) ([]entities.AuditEvent, error) {
	return s.repo.GetRecentEvents(time.Now().Add(-window))
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

func withError(event *entities.AuditEvent, err error) {
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
}

func withMetadata(event *entities.AuditEvent, metadata map[string]any) {
	if mdBytes, err := json.Marshal(metadata); err == nil {
		event.Metadata = string(mdBytes)
	} else {
		log.Printf("Failed to encode audit metadata for %s: %v", event.Action, err)
	}
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
