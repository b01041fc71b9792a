package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/shelf/internal/exporters"
	"github.com/mrlokans/shelf/internal/settingsstore"
)

type staticSchedule struct {
	cfg settingsstore.ExportScheduleConfig
}

func (s *staticSchedule) GetExportScheduleConfig() settingsstore.ExportScheduleConfig { return s.cfg }

type recordingRunner struct {
	dirs []string
	err  error
}

func (r *recordingRunner) Export(_ context.Context, dir string) (exporters.ExportResult, error) {
	r.dirs = append(r.dirs, dir)
	return exporters.ExportResult{FilesWritten: 3}, r.err
}

type recordingQueue struct{ dirs []string }

func (q *recordingQueue) EnqueueExport(dir string) (string, error) {
	q.dirs = append(q.dirs, dir)
	return "run-1", nil
}

func enabledSchedule() *staticSchedule {
	return &staticSchedule{cfg: settingsstore.ExportScheduleConfig{
		Enabled:  true,
		Dir:      "/tmp/export",
		Schedule: "0 6 * * *",
	}}
}

func TestExportScheduler_Start(t *testing.T) {
	t.Run("does nothing when disabled", func(t *testing.T) {
		s := NewExportScheduler(&staticSchedule{}, &recordingRunner{}, nil)

		require.NoError(t, s.Start(context.Background()))
		assert.False(t, s.IsRunning())
		assert.Nil(t, s.NextRunTime())
	})

	t.Run("skips when directory is missing", func(t *testing.T) {
		settings := enabledSchedule()
		settings.cfg.Dir = ""
		s := NewExportScheduler(settings, &recordingRunner{}, nil)

		require.NoError(t, s.Start(context.Background()))
		assert.False(t, s.IsRunning())
	})

	t.Run("rejects invalid schedule", func(t *testing.T) {
		settings := enabledSchedule()
		settings.cfg.Schedule = "daily"
		s := NewExportScheduler(settings, &recordingRunner{}, nil)

		assert.Error(t, s.Start(context.Background()))
		assert.False(t, s.IsRunning())
	})

	t.Run("starts and stops", func(t *testing.T) {
		s := NewExportScheduler(enabledSchedule(), &recordingRunner{}, nil)

		require.NoError(t, s.Start(context.Background()))
		assert.True(t, s.IsRunning())

		next := s.NextRunTime()
		require.NotNil(t, next)
		assert.Equal(t, 6, next.Hour())
		assert.Equal(t, 0, next.Minute())

		s.Stop()
		assert.False(t, s.IsRunning())
		assert.Nil(t, s.NextRunTime())
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		s := NewExportScheduler(enabledSchedule(), &recordingRunner{}, nil)
		ctx, cancel := context.WithCancel(context.Background())

		require.NoError(t, s.Start(ctx))
		cancel()

		assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("reschedule restarts", func(t *testing.T) {
		s := NewExportScheduler(enabledSchedule(), &recordingRunner{}, nil)
		require.NoError(t, s.Start(context.Background()))

		require.NoError(t, s.Reschedule(context.Background()))
		assert.True(t, s.IsRunning())
		s.Stop()
	})
}

func TestExportScheduler_Runs(t *testing.T) {
	t.Run("run now exports inline", func(t *testing.T) {
		runner := &recordingRunner{}
		s := NewExportScheduler(enabledSchedule(), runner, &recordingQueue{})

		result, err := s.RunNow(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, result.FilesWritten)
		assert.Equal(t, []string{"/tmp/export"}, runner.dirs)
	})

	t.Run("scheduled run uses the queue when present", func(t *testing.T) {
		runner := &recordingRunner{}
		queue := &recordingQueue{}
		s := NewExportScheduler(enabledSchedule(), runner, queue)

		s.runScheduled(context.Background())
		assert.Equal(t, []string{"/tmp/export"}, queue.dirs)
		assert.Empty(t, runner.dirs)
	})

	t.Run("scheduled run exports inline without a queue", func(t *testing.T) {
		runner := &recordingRunner{err: errors.New("disk full")}
		s := NewExportScheduler(enabledSchedule(), runner, nil)

		s.runScheduled(context.Background())
		assert.Len(t, runner.dirs, 1)
	})

	t.Run("scheduled run skips when disabled", func(t *testing.T) {
		runner := &recordingRunner{}
		s := NewExportScheduler(&staticSchedule{}, runner, nil)

		s.runScheduled(context.Background())
		assert.Empty(t, runner.dirs)
	})
}
