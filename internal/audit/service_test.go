package audit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	auditRepo "github.com/mrlokans/shelf/internal/database/audit"
	"github.com/mrlokans/shelf/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	repo := auditRepo.NewRepository(db)
	svc := NewService(repo)

	return svc, db
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventRegister,
		Action:      "test_register",
		Description: "Test register event",
		Status:      entities.AuditStatusSuccess,
	}

	err := svc.Log(event)
	require.NoError(t, err)

	var saved entities.AuditEvent
	err = db.First(&saved, event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, "test_register", saved.Action)
}

func TestService_LogPublication(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("successful transition", func(t *testing.T) {
		svc.LogPublication(entities.AuditEventReadingStarted, 7, "Started reading Dune", nil)

		var event entities.AuditEvent
		err := db.Where("action = ?", "publication_reading_started").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusSuccess, event.Status)
		assert.Equal(t, EntityPublication, event.EntityType)
		require.NotNil(t, event.EntityID)
		assert.Equal(t, uint(7), *event.EntityID)
	})

	t.Run("failed transition", func(t *testing.T) {
		svc.LogPublication(entities.AuditEventRated, 7, "Rating Dune", errors.New("publication cannot be evaluated without finishing reading"))

		var event entities.AuditEvent
		err := db.Where("action = ?", "publication_rated").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusFailed, event.Status)
		assert.Contains(t, event.ErrorMsg, "without finishing reading")
	})
}

func TestService_LogRemovalAndAnnotation(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogRemoval(3, "Removed Dune", "abc.json")
	svc.LogAnnotation(entities.AuditEventAnnotationAdded, 3, "ann_3_1", "Added note")

	var removal entities.AuditEvent
	require.NoError(t, db.Where("event_type = ?", entities.AuditEventRemove).First(&removal).Error)
	assert.Contains(t, removal.Metadata, "abc.json")

	var note entities.AuditEvent
	require.NoError(t, db.Where("event_type = ?", entities.AuditEventAnnotationAdded).First(&note).Error)
	assert.Contains(t, note.Metadata, "ann_3_1")

	history, total, err := svc.GetPublicationHistory(3, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, history, 2)
}

func TestService_LogExportAndVerify(t *testing.T) {
	svc, _ := setupTestService(t)

	svc.LogExport("Exported 4 publications", 5, nil)
	svc.LogVerify("Verified digital files", 3, 1, nil)

	exports, _, err := svc.GetEventsByType(entities.AuditEventExport, 10, 0)
	require.NoError(t, err)
	require.Len(t, exports, 1)
	assert.Contains(t, exports[0].Metadata, "files_written")

	verifies, _, err := svc.GetEventsByType(entities.AuditEventVerify, 10, 0)
	require.NoError(t, err)
	require.Len(t, verifies, 1)
	assert.Contains(t, verifies[0].Metadata, `"missing":1`)
}

func TestService_LogSettings(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogSettings("settings_update", "Annual goal set to 20")

	var event entities.AuditEvent
	err := db.Where("action = ?", "settings_update").First(&event).Error
	require.NoError(t, err)
	assert.Equal(t, entities.AuditEventSettings, event.EventType)
}

func TestAsyncService(t *testing.T) {
	_, db := setupTestService(t)
	svc := NewAsyncService(auditRepo.NewRepository(db))

	svc.LogSettings("settings_clear", "Cleared settings")

	svc.Wait()

	var count int64
	require.NoError(t, db.Model(&entities.AuditEvent{}).Where("action = ?", "settings_clear").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, _ := setupTestService(t)

	require.NoError(t, svc.Log(&entities.AuditEvent{
		EventType: entities.AuditEventExport,
		Action:    "old",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-72 * time.Hour),
	}))
	require.NoError(t, svc.Log(&entities.AuditEvent{
		EventType: entities.AuditEventExport,
		Action:    "new",
		Status:    entities.AuditStatusSuccess,
	}))

	deleted, err := svc.DeleteOldEvents(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
}

func TestService_GetEventAndSince(t *testing.T) {
	svc, db := setupTestService(t)

	old := &entities.AuditEvent{
		EventType: entities.AuditEventExport,
		Action:    "markdown_export",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-72 * time.Hour),
	}
	require.NoError(t, db.Create(old).Error)
	svc.LogSettings("preferences_update", "Goal changed")

	got, err := svc.GetEvent(old.ID)
	require.NoError(t, err)
	assert.Equal(t, "markdown_export", got.Action)

	_, err = svc.GetEvent(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	recent, err := svc.GetEventsSince(24 * time.Hour)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, entities.AuditEventSettings, recent[0].EventType)
}
