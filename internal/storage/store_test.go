package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/shelf/internal/config"
	"github.com/mrlokans/shelf/internal/database"
	"github.com/mrlokans/shelf/internal/database/publications"
	"github.com/mrlokans/shelf/internal/storage/jsonfile"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	db, err := database.NewDatabaseWithLogLevel(filepath.Join(dir, "shelf.db"), "silent")
	require.NoError(t, err)
	defer db.Close()

	t.Run("sqlite is the default", func(t *testing.T) {
		store, err := Open(config.Storage{}, db.DB)
		require.NoError(t, err)
		assert.IsType(t, &publications.Repository{}, store)
	})

	t.Run("sqlite needs a database", func(t *testing.T) {
		_, err := Open(config.Storage{Backend: config.StorageBackendSQLite}, nil)
		assert.Error(t, err)
	})

	t.Run("json backend", func(t *testing.T) {
		store, err := Open(config.Storage{Backend: config.StorageBackendJSON, JSONPath: filepath.Join(dir, "c.json")}, nil)
		require.NoError(t, err)
		assert.IsType(t, &jsonfile.Store{}, store)

		c, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := Open(config.Storage{Backend: "s3"}, db.DB)
		assert.Error(t, err)
	})
}
