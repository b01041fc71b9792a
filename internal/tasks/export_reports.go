package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/shelf/internal/exporters"
)

// CatalogExportRunner writes the markdown notes and reports page into a directory.
type CatalogExportRunner interface {
	Export(ctx context.Context, dir string) (exporters.ExportResult, error)
}

// ExportReportsTask exports the catalog and its reports as markdown.
type ExportReportsTask struct {
	RunID string `json:"run_id"`
	Dir   string `json:"dir"`
}

func (t ExportReportsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "export_reports",
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration: 24 * time.Hour,
			Data:     &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ExportReportsProcessor runs the export through runner.
func ExportReportsProcessor(runner CatalogExportRunner) backlite.QueueProcessor[ExportReportsTask] {
	return func(ctx context.Context, task ExportReportsTask) error {
		if runner == nil {
			return fmt.Errorf("export runner not configured")
		}

		result, err := runner.Export(ctx, task.Dir)
		if err != nil {
			return fmt.Errorf("export run %s: %w", task.RunID, err)
		}

		log.Printf("[TASK] Export %s wrote %d files (%d publications, %d failed) to %s",
			task.RunID, result.FilesWritten, result.PublicationsProcessed, result.PublicationsFailed, task.Dir)
		return nil
	}
}

func NewExportReportsQueue(runner CatalogExportRunner) backlite.Queue {
	return backlite.NewQueue(ExportReportsProcessor(runner))
}
