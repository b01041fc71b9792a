package entrypoint

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/shelf/internal/catalog"
	"github.com/mrlokans/shelf/internal/config"
)

func testConfig(t *testing.T, backend config.StorageBackend) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Database: config.Database{Path: filepath.Join(dir, "shelf.db"), LogLevel: "silent"},
		Storage:  config.Storage{Backend: backend, JSONPath: filepath.Join(dir, "catalog.json")},
		Audit:    config.Audit{Dir: filepath.Join(dir, "audit"), RetentionDays: 90},
		Reports:  config.Reports{GoalPace: "monthly", TopN: 5},
	}
}

func TestOpen(t *testing.T) {
	for _, backend := range []config.StorageBackend{config.StorageBackendSQLite, config.StorageBackendJSON} {
		t.Run("wires the "+string(backend)+" backend", func(t *testing.T) {
			app, err := Open(testConfig(t, backend), false)
			require.NoError(t, err)
			defer app.Close()

			p, err := app.Catalog.Add(func(id int) (*catalog.Publication, error) {
				return catalog.NewBook(catalog.Details{ID: id, Title: "Dune", Author: "Frank Herbert", Year: 1965, NumberOfPages: 412}, "", 0)
			})
			require.NoError(t, err)
			require.NoError(t, app.Catalog.StartReading(p.ID()))

			c, err := app.Store.Load()
			require.NoError(t, err)
			got, ok := c.Get(p.ID())
			require.True(t, ok)
			assert.Equal(t, catalog.StatusReading, got.Status())

			events, total, err := app.Audit.GetPublicationHistory(p.ID(), 10, 0)
			require.NoError(t, err)
			assert.Equal(t, int64(2), total)
			assert.Len(t, events, 2)
		})
	}

	t.Run("rejects an unknown pace", func(t *testing.T) {
		cfg := testConfig(t, config.StorageBackendSQLite)
		cfg.Reports.GoalPace = "weekly"

		_, err := Open(cfg, false)
		assert.Error(t, err)
	})

	t.Run("rejects an unknown backend", func(t *testing.T) {
		_, err := Open(testConfig(t, "postgres"), false)
		assert.Error(t, err)
	})
}
