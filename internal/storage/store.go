// Package storage selects where the catalog collection is persisted.
package storage

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/shelf/internal/catalog"
	"github.com/mrlokans/shelf/internal/config"
	"github.com/mrlokans/shelf/internal/database/publications"
	"github.com/mrlokans/shelf/internal/storage/jsonfile"
)

// CatalogStore loads and saves a whole collection.
// Save is called after every mutating operation.
type CatalogStore interface {
	Load() (*catalog.Collection, error)
	Save(c *catalog.Collection) error
}

// Open returns the catalog store configured by cfg.Storage. The SQLite backend
// shares db with settings and audit events.
func Open(cfg config.Storage, db *gorm.DB) (CatalogStore, error) {
	switch cfg.Backend {
	case "", config.StorageBackendSQLite:
		if db == nil {
			return nil, fmt.Errorf("sqlite storage backend requires a database")
		}
		return publications.NewRepository(db), nil
	case config.StorageBackendJSON:
		return jsonfile.NewStore(cfg.JSONPath), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (expected sqlite or json)", cfg.Backend)
	}
}
