package settingsstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/viper"

	"github.com/mrlokans/shelf/internal/catalog"
	"github.com/mrlokans/shelf/internal/entities"
)

// Environment variables overriding the built-in reading preferences.
const (
	EnvAnnualGoal               = "ANNUAL_GOAL"
	EnvSimultaneousReadingLimit = "SIMULTANEOUS_READING_LIMIT"
	EnvFavoriteGenre            = "FAVORITE_GENRE"
)

// ConfigurationInfo includes source information for each preference
type ConfigurationInfo struct {
	AnnualGoal       int    `json:"annual_goal"`
	AnnualGoalSource string `json:"annual_goal_source"` // "database", "environment", "default"

	SimultaneousReadingLimit       int    `json:"simultaneous_reading_limit"`
	SimultaneousReadingLimitSource string `json:"simultaneous_reading_limit_source"`

	FavoriteGenre       string `json:"favorite_genre"`
	FavoriteGenreSource string `json:"favorite_genre_source"`
}

func (s *SettingsStore) GetAnnualGoal() (int, string) {
	return s.resolvePositiveInt(entities.SettingKeyAnnualGoal, EnvAnnualGoal, catalog.DefaultAnnualGoal)
}

func (s *SettingsStore) GetSimultaneousReadingLimit() (int, string) {
	return s.resolvePositiveInt(entities.SettingKeySimultaneousReadingLimit, EnvSimultaneousReadingLimit, catalog.DefaultSimultaneousReadingLimit)
}

func (s *SettingsStore) GetFavoriteGenre() (string, string) {
	return s.resolve(entities.SettingKeyFavoriteGenre, EnvFavoriteGenre, catalog.DefaultFavoriteGenre)
}

// GetConfiguration returns the effective reading preferences. Invalid stored
// values never surface here, so the result always satisfies catalog invariants.
func (s *SettingsStore) GetConfiguration() *catalog.Configuration {
	goal, _ := s.GetAnnualGoal()
	limit, _ := s.GetSimultaneousReadingLimit()
	genre, _ := s.GetFavoriteGenre()
	cfg, err := catalog.NewConfiguration(goal, limit, genre)
	if err != nil {
		return catalog.DefaultConfiguration()
	}
	return cfg
}

// GetConfigurationInfo returns the preferences with source information
func (s *SettingsStore) GetConfigurationInfo() ConfigurationInfo {
	info := ConfigurationInfo{}
	info.AnnualGoal, info.AnnualGoalSource = s.GetAnnualGoal()
	info.SimultaneousReadingLimit, info.SimultaneousReadingLimitSource = s.GetSimultaneousReadingLimit()
	info.FavoriteGenre, info.FavoriteGenreSource = s.GetFavoriteGenre()
	return info
}

// SaveConfiguration stores every preference in the database.
func (s *SettingsStore) SaveConfiguration(cfg *catalog.Configuration) error {
	err := s.repo.SetSettings(map[string]string{
		entities.SettingKeyAnnualGoal:               strconv.Itoa(cfg.AnnualGoal()),
		entities.SettingKeySimultaneousReadingLimit: strconv.Itoa(cfg.SimultaneousReadingLimit()),
		entities.SettingKeyFavoriteGenre:            cfg.FavoriteGenre(),
	})
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// ClearConfiguration clears all database overrides, reverting to env/default
func (s *SettingsStore) ClearConfiguration() error {
	return s.clear(
		entities.SettingKeyAnnualGoal,
		entities.SettingKeySimultaneousReadingLimit,
		entities.SettingKeyFavoriteGenre,
	)
}

// ImportFile reads preferences from a JSON, YAML or TOML file using the
// annualGoal, simultaneousReadingLimit and favoriteGenre keys, validates them
// and stores them. Keys missing from the file keep their current value.
func (s *SettingsStore) ImportFile(path string) (*catalog.Configuration, error) {
	current := s.GetConfiguration()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("annualGoal", current.AnnualGoal())
	v.SetDefault("simultaneousReadingLimit", current.SimultaneousReadingLimit())
	v.SetDefault("favoriteGenre", current.FavoriteGenre())
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	cfg, err := catalog.ConfigurationFromRecord(catalog.ConfigurationRecord{
		AnnualGoal:               v.GetInt("annualGoal"),
		SimultaneousReadingLimit: v.GetInt("simultaneousReadingLimit"),
		FavoriteGenre:            v.GetString("favoriteGenre"),
	})
	if err != nil {
		return nil, err
	}
	if err := s.SaveConfiguration(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ExportFile writes cfg as a settings.json document.
func ExportFile(path string, cfg *catalog.Configuration) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(cfg.Record(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
