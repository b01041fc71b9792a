package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/shelf/internal/entities"
)

func TestDatabaseInitialization(t *testing.T) {
	t.Run("NewDatabase creates database file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "init_test.db")

		db, err := NewDatabase(dbPath)
		require.NoError(t, err)
		defer db.Close()

		_, err = os.Stat(dbPath)
		assert.NoError(t, err)
	})

	t.Run("NewDatabase migrates every table", func(t *testing.T) {
		db, err := NewDatabaseWithLogLevel(filepath.Join(t.TempDir(), "migrate_test.db"), "silent")
		require.NoError(t, err)
		defer db.Close()

		for _, model := range []any{&entities.Publication{}, &entities.Annotation{}, &entities.Setting{}, &entities.AuditEvent{}} {
			assert.True(t, db.DB.Migrator().HasTable(model), "missing table for %T", model)
		}
	})

	t.Run("NewDatabase is idempotent", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "idempotent_test.db")

		db1, err := NewDatabaseWithLogLevel(dbPath, "silent")
		require.NoError(t, err)
		require.NoError(t, db1.DB.Create(&entities.Setting{Key: "annual_goal", Value: "12"}).Error)
		db1.Close()

		db2, err := NewDatabaseWithLogLevel(dbPath, "silent")
		require.NoError(t, err)
		defer db2.Close()

		var count int64
		require.NoError(t, db2.DB.Model(&entities.Setting{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Close closes database connection", func(t *testing.T) {
		db, err := NewDatabase(filepath.Join(t.TempDir(), "close_test.db"))
		require.NoError(t, err)

		assert.NoError(t, db.Close())
	})
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]logger.LogLevel{
		"silent":  logger.Silent,
		"ERROR":   logger.Error,
		"info":    logger.Info,
		"warn":    logger.Warn,
		"verbose": logger.Warn,
		"":        logger.Warn,
	}
	for level, want := range tests {
		assert.Equal(t, want, parseLogLevel(level), level)
	}
}
