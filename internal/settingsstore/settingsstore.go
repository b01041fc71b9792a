package settingsstore

import (
	"log"
	"os"
	"strconv"

	"github.com/mrlokans/shelf/internal/entities"
	"github.com/mrlokans/shelf/internal/services"
)

// Setting sources reported by the ...Source helpers.
const (
	SourceDatabase    = "database"
	SourceEnvironment = "environment"
	SourceDefault     = "default"
)

// Priority: database > environment > default
type SettingsStore struct {
	repo services.SettingsRepository
}

func New(repo services.SettingsRepository) *SettingsStore {
	return &SettingsStore{repo: repo}
}

// resolve returns the effective value of a string setting and where it came from.
func (s *SettingsStore) resolve(key, envVar, def string) (string, string) {
	if value, ok := s.stored(key); ok {
		return value, SourceDatabase
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal, SourceEnvironment
	}
	return def, SourceDefault
}

// resolvePositiveInt is resolve for settings that must be positive integers.
// Unparseable or non-positive values are skipped in favour of the next source.
func (s *SettingsStore) resolvePositiveInt(key, envVar string, def int) (int, string) {
	if value, ok := s.stored(key); ok {
		if n, ok := positiveInt(value); ok {
			return n, SourceDatabase
		}
		log.Printf("Ignoring invalid stored value %q for %s", value, key)
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		if n, ok := positiveInt(envVal); ok {
			return n, SourceEnvironment
		}
		log.Printf("Ignoring invalid %s=%q", envVar, envVal)
	}
	return def, SourceDefault
}

func (s *SettingsStore) resolveBool(key, envVar string, def bool) (bool, string) {
	value, source := s.resolve(key, envVar, "")
	if source == SourceDefault {
		return def, source
	}
	return value == "true" || value == "1", source
}

func (s *SettingsStore) stored(key string) (string, bool) {
	value, ok, err := s.repo.GetValue(key)
	if err != nil {
		log.Printf("Failed to read setting %s: %v", key, err)
		return "", false
	}
	return value, ok
}

func (s *SettingsStore) clear(keys ...string) error {
	return s.repo.DeleteSettings(keys...)
}

// Stored returns the raw database overrides, ordered by key.
func (s *SettingsStore) Stored() ([]entities.Setting, error) {
	return s.repo.All("")
}

func positiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
