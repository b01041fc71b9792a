package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/shelf/internal/digitalfiles"
)

// FileVerifier checks the digital files referenced by the catalog.
type FileVerifier interface {
	VerifyFiles(ctx context.Context, concurrency int) (digitalfiles.Report, error)
}

// VerifyFilesTask checks that every referenced e-book file still exists.
type VerifyFilesTask struct {
	Concurrency int `json:"concurrency"`
}

func (t VerifyFilesTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "verify_files",
		MaxAttempts: 1,
		Timeout:     10 * time.Minute,
		Retention: &backlite.Retention{
			Duration: 24 * time.Hour,
			Data:     &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func VerifyFilesProcessor(verifier FileVerifier) backlite.QueueProcessor[VerifyFilesTask] {
	return func(ctx context.Context, task VerifyFilesTask) error {
		if verifier == nil {
			return fmt.Errorf("file verifier not configured")
		}

		report, err := verifier.VerifyFiles(ctx, task.Concurrency)
		if err != nil {
			return fmt.Errorf("verify files: %w", err)
		}

		log.Printf("[TASK] Verified %d digital files, %d missing", report.Checked, report.Missing)
		for _, f := range report.MissingFiles() {
			log.Printf("[TASK] Missing file for publication %d (%s): %s", f.PublicationID, f.Title, f.Path)
		}
		return nil
	}
}

func NewVerifyFilesQueue(verifier FileVerifier) backlite.Queue {
	return backlite.NewQueue(VerifyFilesProcessor(verifier))
}
