// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── publications/    # Catalog publications and their annotations
//	├── settings/        # Application settings
//	└── audit/           # Audit event log
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./shelf.db")
//
//	pubs := publications.NewRepository(db.DB)
//	collection, err := pubs.Load()
//
// # Interface Implementations
//
//   - publications.Repository: implements storage.CatalogStore
//   - settings.Repository: implements services.SettingsRepository
//   - audit.Repository: backs audit.Service
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Add compile-time interface check in internal/interfaces/checks.go
package database
