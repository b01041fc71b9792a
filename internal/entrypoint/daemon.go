package entrypoint

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrlokans/shelf/internal/config"
	"github.com/mrlokans/shelf/internal/scheduler"
	"github.com/mrlokans/shelf/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// RunDaemon starts the export scheduler and the task queue and blocks until
// SIGINT or SIGTERM.
func RunDaemon(cfg *config.Config, version string) error {
	log.Printf("Starting shelf daemon v%s", version)

	app, err := Open(cfg, true)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var taskClient *tasks.Client
	var queue scheduler.ExportEnqueuer
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.FromAppConfig(cfg.Tasks))
		if err != nil {
			return err
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.RegisterCatalogQueues(app.Maintenance, app.Maintenance, app.Audit)
		go taskClient.Start(ctx)
		queue = taskClient

		if err := taskClient.EnqueueAuditCleanup(cfg.Audit.RetentionDays); err != nil {
			log.Printf("Failed to enqueue audit cleanup: %v", err)
		}
		if err := taskClient.EnqueueVerify(cfg.Files.VerifyConcurrency); err != nil {
			log.Printf("Failed to enqueue file verification: %v", err)
		}
	} else {
		log.Printf("Task queue disabled, scheduled exports run inline")
	}

	exportScheduler := scheduler.NewExportScheduler(app.Settings, app.Maintenance, queue)
	if err := exportScheduler.Start(ctx); err != nil {
		return err
	}

	onShutdown := func(ctx context.Context) {
		exportScheduler.Stop()
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
	}

	waitForShutdown(time.Duration(cfg.Global.ShutdownTimeoutInSeconds)*time.Second, onShutdown)
	return nil
}

func waitForShutdown(timeout time.Duration, onShutdown ShutdownFunc) {
	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutting down, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}
	log.Println("Daemon exiting")
}
