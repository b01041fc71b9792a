// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help contributors find
// extension points and see how to implement new functionality.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - CatalogStore: Load and save the whole collection (internal/services/interfaces.go)
//   - SettingsRepository: Key/value settings rows (internal/services/interfaces.go)
//
// ## Settings Interfaces
//
//   - ConfigurationProvider: Reading preferences, database over environment over default
//   - MaintenanceSettings: Preferences plus owner and export status (internal/services/interfaces.go)
//   - ScheduleSource: Export schedule configuration (internal/scheduler/export.go)
//
// ## Audit Interfaces
//
//   - AuditLogger, MaintenanceAuditLogger: Event logging (internal/services/interfaces.go)
//   - SnapshotWriter: JSON snapshots of removed publications
//   - AuditEventCleaner: Retention cleanup (internal/tasks/cleanup_audit.go)
//
// ## Background Work Interfaces
//
//   - CatalogExportRunner, FileVerifier: Task queue processors (internal/tasks/)
//   - ExportRunner, ExportEnqueuer: Scheduled export (internal/scheduler/export.go)
//
// ## Report Interfaces
//
//   - Strategy: Pluggable report generators (internal/report/strategy.go)
//
// # Adding a New Storage Backend
//
// To keep the catalog somewhere else (e.g., a YAML file):
//
//  1. Create a package under internal/storage/
//
//     type Store struct { path string }
//
//     func (s *Store) Load() (*catalog.Collection, error)
//     func (s *Store) Save(c *catalog.Collection) error
//
//  2. Round-trip through catalog.CollectionRecord so validation runs on load
//
//  3. Add a backend constant in internal/config and a case in storage.Open
//
//  4. Add a compile-time check to checks.go
//
// # Adding a New Report
//
//  1. Implement Strategy in internal/report/
//
//     type GenreStrategy struct{}
//
//     func (GenreStrategy) Name() string
//     func (GenreStrategy) Description() string
//     func (GenreStrategy) Generate(pubs []*catalog.Publication, cfg *catalog.Configuration) (any, error)
//     func (GenreStrategy) Format(data any) string
//
//  2. Add it to the list returned by report.Strategies so Lookup and the markdown reports page see it
//
// # Adding a New Background Task
//
//  1. Define a task type with a backlite.QueueConfig in internal/tasks/
//
//  2. Write a processor that depends on a small interface, not a concrete service
//
//  3. Register the queue in Client.RegisterCatalogQueues and add an Enqueue helper
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
