package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/shelf/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the SQLite database at dbPath and migrates every entity.
func NewDatabase(dbPath string) (*Database, error) {
	return NewDatabaseWithLogLevel(dbPath, "warn")
}

// NewDatabaseWithLogLevel is NewDatabase with an explicit gorm log level
// (silent, error, warn or info).
func NewDatabaseWithLogLevel(dbPath, level string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(parseLogLevel(level)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Publication{},
		&entities.Annotation{},
		&entities.Setting{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
