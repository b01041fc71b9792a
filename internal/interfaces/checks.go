package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/shelf/internal/audit"
	"github.com/mrlokans/shelf/internal/database/publications"
	"github.com/mrlokans/shelf/internal/database/settings"
	"github.com/mrlokans/shelf/internal/exporters"
	"github.com/mrlokans/shelf/internal/report"
	"github.com/mrlokans/shelf/internal/scheduler"
	"github.com/mrlokans/shelf/internal/services"
	"github.com/mrlokans/shelf/internal/settingsstore"
	"github.com/mrlokans/shelf/internal/storage"
	"github.com/mrlokans/shelf/internal/storage/jsonfile"
	"github.com/mrlokans/shelf/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// CatalogStore implementations
var _ services.CatalogStore = (*publications.Repository)(nil)
var _ services.CatalogStore = (*jsonfile.Store)(nil)
var _ storage.CatalogStore = (*publications.Repository)(nil)
var _ storage.CatalogStore = (*jsonfile.Store)(nil)

// SettingsRepository implementations
var _ services.SettingsRepository = (*settings.Repository)(nil)

// =============================================================================
// Settings
// =============================================================================

var _ services.ConfigurationProvider = (*settingsstore.SettingsStore)(nil)
var _ services.MaintenanceSettings = (*settingsstore.SettingsStore)(nil)
var _ scheduler.ScheduleSource = (*settingsstore.SettingsStore)(nil)

// =============================================================================
// Audit
// =============================================================================

var _ services.AuditLogger = (*audit.Service)(nil)
var _ services.MaintenanceAuditLogger = (*audit.Service)(nil)
var _ services.SnapshotWriter = (*audit.Auditor)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

// =============================================================================
// Export and Background Work
// =============================================================================

var _ exporters.CatalogExporter = (*exporters.MarkdownExporter)(nil)
var _ tasks.CatalogExportRunner = (*services.MaintenanceService)(nil)
var _ tasks.FileVerifier = (*services.MaintenanceService)(nil)
var _ scheduler.ExportRunner = (*services.MaintenanceService)(nil)
var _ scheduler.ExportEnqueuer = (*tasks.Client)(nil)

// =============================================================================
// Reports
// =============================================================================

var _ report.Strategy = report.EvaluationStrategy{}
var _ report.Strategy = report.TopRatedStrategy{}
var _ report.Strategy = report.ProgressStrategy{}
