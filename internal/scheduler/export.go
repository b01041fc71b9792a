// Package scheduler runs the catalog export on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/shelf/internal/exporters"
	"github.com/mrlokans/shelf/internal/settingsstore"
)

// ScheduleSource provides the effective export schedule.
type ScheduleSource interface {
	GetExportScheduleConfig() settingsstore.ExportScheduleConfig
}

// ExportRunner performs one export run and records its outcome.
type ExportRunner interface {
	Export(ctx context.Context, dir string) (exporters.ExportResult, error)
}

// ExportEnqueuer hands export runs to the task queue instead of running them inline.
type ExportEnqueuer interface {
	EnqueueExport(dir string) (string, error)
}

// ExportScheduler manages periodic markdown and report exports.
type ExportScheduler struct {
	settings ScheduleSource
	runner   ExportRunner
	queue    ExportEnqueuer

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewExportScheduler creates a new scheduler instance. When queue is non-nil
// scheduled runs are enqueued; RunNow always exports inline.
func NewExportScheduler(settings ScheduleSource, runner ExportRunner, queue ExportEnqueuer) *ExportScheduler {
	return &ExportScheduler{
		settings: settings,
		runner:   runner,
		queue:    queue,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if scheduled export is enabled
func (s *ExportScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	config := s.settings.GetExportScheduleConfig()
	if !config.Enabled {
		log.Printf("Report export scheduler: disabled")
		return nil
	}
	if config.Dir == "" {
		log.Printf("Report export scheduler: export directory not configured, skipping")
		return nil
	}
	if err := settingsstore.ValidateCronSchedule(config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", config.Schedule, err)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	entryID, err := s.cron.AddFunc(config.Schedule, func() {
		s.runScheduled(cancelCtx)
	})
	if err != nil {
		s.cancelFunc()
		return fmt.Errorf("failed to schedule export job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := settingsstore.GetNextRunTime(config.Schedule, time.Now())
	log.Printf("Report export scheduler: started with schedule '%s' (%s). Next run: %v",
		config.Schedule,
		settingsstore.GetCronDescription(config.Schedule),
		nextRun)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running export to finish
func (s *ExportScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Report export scheduler: stopped")
}

// Reschedule updates the schedule (call after settings change)
func (s *ExportScheduler) Reschedule(ctx context.Context) error {
	s.Stop()
	return s.Start(ctx)
}

// RunNow exports immediately, regardless of the enabled flag
func (s *ExportScheduler) RunNow(ctx context.Context) (exporters.ExportResult, error) {
	config := s.settings.GetExportScheduleConfig()
	return s.runner.Export(ctx, config.Dir)
}

// IsRunning returns whether the scheduler is active
func (s *ExportScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next export will occur
func (s *ExportScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *ExportScheduler) runScheduled(ctx context.Context) {
	config := s.settings.GetExportScheduleConfig()
	if !config.Enabled {
		log.Printf("Report export: skipped (disabled)")
		return
	}

	if s.queue != nil {
		runID, err := s.queue.EnqueueExport(config.Dir)
		if err != nil {
			log.Printf("Report export: failed to enqueue: %v", err)
			return
		}
		log.Printf("Report export: enqueued run %s", runID)
		return
	}

	start := time.Now()
	result, err := s.runner.Export(ctx, config.Dir)
	if err != nil {
		log.Printf("Report export: failed: %v", err)
		return
	}
	log.Printf("Report export: wrote %d files to %s in %v",
		result.FilesWritten, config.Dir, time.Since(start).Round(time.Millisecond))
}
