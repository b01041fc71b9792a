package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/shelf/internal/config"
	"github.com/mrlokans/shelf/internal/digitalfiles"
	"github.com/mrlokans/shelf/internal/exporters"
)

func newTestClient(t *testing.T) (*Client, string) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Workers = 1
	catalogDB := filepath.Join(t.TempDir(), "shelf.db")
	client, err := NewClient(catalogDB, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client, catalogDB
}

func TestNewClient(t *testing.T) {
	client, catalogDB := newTestClient(t)

	_, err := os.Stat(TasksDBPath(catalogDB))
	assert.NoError(t, err, "queue database sits next to the catalog")
	_, err = os.Stat(catalogDB)
	assert.True(t, os.IsNotExist(err), "catalog database is left alone")

	assert.NoError(t, client.Close())
}

func TestClientStartStop(t *testing.T) {
	client, _ := newTestClient(t)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	assert.True(t, client.Stop(stopCtx), "stopping an idle client is a no-op")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	assert.True(t, client.Stop(stopCtx))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Minute, cfg.RetryDelay)
	assert.Equal(t, 5*time.Minute, cfg.TaskTimeout)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
	assert.Equal(t, 24*time.Hour, cfg.RetentionDuration)
}

type stubRunner struct{ dirs chan string }

func (s stubRunner) Export(_ context.Context, dir string) (exporters.ExportResult, error) {
	s.dirs <- dir
	return exporters.ExportResult{FilesWritten: 2}, nil
}

type stubVerifier struct{ report digitalfiles.Report }

func (s stubVerifier) VerifyFiles(_ context.Context, _ int) (digitalfiles.Report, error) {
	return s.report, nil
}

type stubCleaner struct {
	retention time.Duration
	err       error
}

func (s *stubCleaner) DeleteOldEvents(retention time.Duration) (int64, error) {
	s.retention = retention
	return 4, s.err
}

func TestQueueConfigs(t *testing.T) {
	assert.Equal(t, "export_reports", ExportReportsTask{}.Config().Name)
	assert.Equal(t, 3, ExportReportsTask{}.Config().MaxAttempts)
	assert.Equal(t, "verify_files", VerifyFilesTask{}.Config().Name)
	assert.Equal(t, 1, VerifyFilesTask{}.Config().MaxAttempts)
	assert.Equal(t, "cleanup_audit_events", CleanupAuditEventsTask{}.Config().Name)
	assert.NotNil(t, CleanupAuditEventsTask{}.Config().Retention)
}

func TestProcessors(t *testing.T) {
	t.Run("export passes the directory through", func(t *testing.T) {
		runner := stubRunner{dirs: make(chan string, 1)}
		err := ExportReportsProcessor(runner)(context.Background(), ExportReportsTask{RunID: "r1", Dir: "/tmp/out"})
		require.NoError(t, err)
		assert.Equal(t, "/tmp/out", <-runner.dirs)
	})

	t.Run("nil dependencies fail", func(t *testing.T) {
		assert.Error(t, ExportReportsProcessor(nil)(context.Background(), ExportReportsTask{}))
		assert.Error(t, VerifyFilesProcessor(nil)(context.Background(), VerifyFilesTask{}))
		assert.Error(t, CleanupAuditEventsProcessor(nil)(context.Background(), CleanupAuditEventsTask{}))
	})

	t.Run("verify succeeds with missing files", func(t *testing.T) {
		verifier := stubVerifier{report: digitalfiles.Report{
			Checked: 1,
			Missing: 1,
			Files:   []digitalfiles.FileStatus{{PublicationID: 1, Title: "Dune", Path: "/x.epub"}},
		}}
		assert.NoError(t, VerifyFilesProcessor(verifier)(context.Background(), VerifyFilesTask{Concurrency: 2}))
	})

	t.Run("cleanup defaults retention", func(t *testing.T) {
		cleaner := &stubCleaner{}
		require.NoError(t, CleanupAuditEventsProcessor(cleaner)(context.Background(), CleanupAuditEventsTask{}))
		assert.Equal(t, 90*24*time.Hour, cleaner.retention)

		require.NoError(t, CleanupAuditEventsProcessor(cleaner)(context.Background(), CleanupAuditEventsTask{RetentionDays: 7}))
		assert.Equal(t, 7*24*time.Hour, cleaner.retention)

		cleaner.err = errors.New("locked")
		assert.ErrorContains(t, CleanupAuditEventsProcessor(cleaner)(context.Background(), CleanupAuditEventsTask{}), "locked")
	})
}

func TestEnqueueExport(t *testing.T) {
	client, _ := newTestClient(t)

	runner := stubRunner{dirs: make(chan string, 1)}
	cleaner := &stubCleaner{}
	client.RegisterCatalogQueues(runner, stubVerifier{}, cleaner)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	runID, err := client.EnqueueExport("/tmp/export")
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	select {
	case dir := <-runner.dirs:
		assert.Equal(t, "/tmp/export", dir)
	case <-time.After(5 * time.Second):
		t.Fatal("export task was not executed within timeout")
	}
}

func TestTasksDBPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "shelf-tasks.db"), TasksDBPath(filepath.Join("data", "shelf.db")))
}

func TestFromAppConfig(t *testing.T) {
	cfg := FromAppConfig(config.Tasks{Workers: 4})
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
}
