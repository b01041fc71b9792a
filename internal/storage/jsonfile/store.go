// Package jsonfile stores the catalog as a single JSON document.
package jsonfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/mrlokans/shelf/internal/catalog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store reads and writes a catalog.CollectionRecord file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the catalog file. A missing file is an empty catalog.
func (s *Store) Load() (*catalog.Collection, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return catalog.NewCollection(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var record catalog.CollectionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode catalog file %s: %w", s.path, err)
	}
	c, err := catalog.CollectionFromRecord(record)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog file %s: %w", s.path, err)
	}
	return c, nil
}

// Save writes the catalog atomically: a temporary file in the same directory
// is renamed over the previous version.
func (s *Store) Save(c *catalog.Collection) error {
	data, err := json.MarshalIndent(c.Record(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary catalog file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace catalog file: %w", err)
	}
	return nil
}
