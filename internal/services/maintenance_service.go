package services

import (
	"context"
	"fmt"
	"log"

	"github.com/mrlokans/shelf/internal/catalog"
	"github.com/mrlokans/shelf/internal/digitalfiles"
	"github.com/mrlokans/shelf/internal/exporters"
	"github.com/mrlokans/shelf/internal/report"
)

// Export status values stored in settings.
const (
	ExportStatusSuccess = "success"
	ExportStatusFailed  = "failed"
)

// MaintenanceService runs whole-catalog jobs: markdown/report export and
// digital file verification. It backs the CLI, the scheduler and the task queue.
type MaintenanceService struct {
	store    CatalogStore
	settings MaintenanceSettings
	audit    MaintenanceAuditLogger
	pace     report.Pace
}

// NewMaintenanceService creates a new MaintenanceService. audit may be nil;
// a nil pace measures goal progress with report.DailyPace.
func NewMaintenanceService(store CatalogStore, settings MaintenanceSettings, audit MaintenanceAuditLogger, pace report.Pace) *MaintenanceService {
	if pace == nil {
		pace = report.DailyPace
	}
	return &MaintenanceService{
		store:    store,
		settings: settings,
		audit:    audit,
		pace:     pace,
	}
}

// Export writes the markdown notes and reports page into dir and records the outcome.
func (s *MaintenanceService) Export(ctx context.Context, dir string) (exporters.ExportResult, error) {
	result, err := s.export(ctx, dir)

	status, message := ExportStatusSuccess, fmt.Sprintf("%d publications, %d annotations, %d files",
		result.PublicationsProcessed, result.AnnotationsProcessed, result.FilesWritten)
	if err != nil {
		status, message = ExportStatusFailed, err.Error()
	}
	if s.settings != nil {
		if serr := s.settings.SetExportStatus(status, message); serr != nil {
			log.Printf("Failed to record export status: %v", serr)
		}
	}
	if s.audit != nil {
		s.audit.LogExport("Exported catalog to "+dir, result.FilesWritten, err)
	}
	return result, err
}

func (s *MaintenanceService) export(ctx context.Context, dir string) (exporters.ExportResult, error) {
	if dir == "" {
		return exporters.ExportResult{}, fmt.Errorf("export directory not configured")
	}
	if err := ctx.Err(); err != nil {
		return exporters.ExportResult{}, err
	}
	c, err := s.store.Load()
	if err != nil {
		return exporters.ExportResult{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	exporter := exporters.NewMarkdownExporter(dir)
	exporter.Pace = s.pace
	cfg := catalog.DefaultConfiguration()
	if s.settings != nil {
		cfg = s.settings.GetConfiguration()
		if owner, err := s.settings.GetOwner(); err == nil {
			exporter.Owner = &owner
		}
	}
	return exporter.Export(c, cfg)
}

// VerifyFiles checks every digital file referenced by the catalog.
func (s *MaintenanceService) VerifyFiles(ctx context.Context, concurrency int) (digitalfiles.Report, error) {
	c, err := s.store.Load()
	if err != nil {
		err = fmt.Errorf("failed to load catalog: %w", err)
		s.logVerify(digitalfiles.Report{}, err)
		return digitalfiles.Report{}, err
	}
	result, err := digitalfiles.Verify(ctx, c.ListAll(), concurrency)
	s.logVerify(result, err)
	return result, err
}

func (s *MaintenanceService) logVerify(r digitalfiles.Report, err error) {
	if s.audit == nil {
		return
	}
	s.audit.LogVerify(fmt.Sprintf("Verified %d digital files, %d missing", r.Checked, r.Missing), r.Checked, r.Missing, err)
}
