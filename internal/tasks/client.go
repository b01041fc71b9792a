package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
)

// Client owns the background queue database and the backlite workers that
// drain it.
type Client struct {
	client *backlite.Client
	db     *sql.DB
	config Config

	mu      sync.RWMutex
	started bool
}

// TasksDBPath returns the task database path for a catalog database:
// "shelf.db" becomes "shelf-tasks.db" in the same directory.
func TasksDBPath(catalogDB string) string {
	name := filepath.Base(catalogDB)
	ext := filepath.Ext(name)
	return filepath.Join(filepath.Dir(catalogDB), strings.TrimSuffix(name, ext)+"-tasks"+ext)
}

func openQueueDB(path string, workers int) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open task database %s: %w", path, err)
	}
	// every worker holds a connection while a task runs
	db.SetMaxOpenConns(workers + 5)
	db.SetMaxIdleConns(workers + 2)
	db.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// NewClient opens the queue database beside catalogDB and installs the
// backlite schema into it.
func NewClient(catalogDB string, cfg Config) (*Client, error) {
	db, err := openQueueDB(TasksDBPath(catalogDB), cfg.Workers)
	if err != nil {
		return nil, err
	}

	client, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          queueLogger{},
	})
	if err == nil {
		err = client.Install()
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("set up task queue: %w", err)
	}

	return &Client{client: client, db: db, config: cfg}, nil
}

// Register adds queues to the client before Start.
func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.client.Register(q)
	}
}

// RegisterCatalogQueues registers the export, verification and audit cleanup queues.
func (c *Client) RegisterCatalogQueues(runner CatalogExportRunner, verifier FileVerifier, cleaner AuditEventCleaner) {
	c.Register(
		NewExportReportsQueue(runner),
		NewVerifyFilesQueue(verifier),
		NewCleanupAuditEventsQueue(cleaner),
	)
}

// EnqueueExport schedules a catalog export into dir and returns the run id.
func (c *Client) EnqueueExport(dir string) (string, error) {
	runID := uuid.NewString()
	if _, err := c.Add(ExportReportsTask{RunID: runID, Dir: dir}).Save(); err != nil {
		return "", fmt.Errorf("failed to enqueue export: %w", err)
	}
	return runID, nil
}

// EnqueueVerify schedules a digital file verification run.
func (c *Client) EnqueueVerify(concurrency int) error {
	_, err := c.Add(VerifyFilesTask{Concurrency: concurrency}).Save()
	return err
}

// EnqueueAuditCleanup schedules removal of audit events older than retentionDays.
func (c *Client) EnqueueAuditCleanup(retentionDays int) error {
	_, err := c.Add(CleanupAuditEventsTask{RetentionDays: retentionDays}).Save()
	return err
}

// Start runs the workers until ctx is cancelled or Stop is called. Calling it
// twice is a no-op.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	already := c.started
	c.started = true
	c.mu.Unlock()
	if already {
		return
	}

	log.Printf("[TASK] queue running with %d workers", c.config.Workers)
	c.client.Start(ctx)
}

// Stop waits for in-flight tasks until ctx expires. It reports false when
// workers were still busy at the deadline.
func (c *Client) Stop(ctx context.Context) bool {
	c.mu.RLock()
	running := c.started
	c.mu.RUnlock()
	if !running {
		return true
	}

	drained := c.client.Stop(ctx)
	if !drained {
		log.Println("[TASK] queue stopped before every task finished")
		return false
	}
	log.Println("[TASK] queue drained")
	return true
}

// Close closes the queue database. Call it after Stop.
func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Add begins enqueuing tasks; finish with Save.
func (c *Client) Add(tasks ...backlite.Task) *backlite.TaskAddOp {
	return c.client.Add(tasks...)
}

type queueLogger struct{}

func (queueLogger) Info(message string, params ...any) {
	log.Printf("[TASK] "+message, params...)
}

func (queueLogger) Error(message string, params ...any) {
	log.Printf("[TASK ERROR] "+message, params...)
}
