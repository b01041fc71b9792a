package entrypoint

import (
	"fmt"
	"log"

	"github.com/mrlokans/shelf/internal/audit"
	"github.com/mrlokans/shelf/internal/config"
	"github.com/mrlokans/shelf/internal/database"
	auditrepo "github.com/mrlokans/shelf/internal/database/audit"
	"github.com/mrlokans/shelf/internal/database/settings"
	"github.com/mrlokans/shelf/internal/report"
	"github.com/mrlokans/shelf/internal/services"
	"github.com/mrlokans/shelf/internal/settingsstore"
	"github.com/mrlokans/shelf/internal/storage"
)

// App holds every wired component of the catalog. CLI commands and the
// daemon build one with Open and release it with Close.
type App struct {
	Config      *config.Config
	DB          *database.Database
	Store       storage.CatalogStore
	Settings    *settingsstore.SettingsStore
	Audit       *audit.Service
	Auditor     *audit.Auditor
	Catalog     *services.CatalogService
	Maintenance *services.MaintenanceService
	Pace        report.Pace
}

// Open connects to the database, selects the catalog storage backend and
// wires the services. async selects background audit logging.
func Open(cfg *config.Config, async bool) (*App, error) {
	pace, err := report.ParsePace(cfg.Reports.GoalPace)
	if err != nil {
		return nil, err
	}

	db, err := database.NewDatabaseWithLogLevel(cfg.Database.Path, cfg.Database.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	store, err := storage.Open(cfg.Storage, db.DB)
	if err != nil {
		db.Close()
		return nil, err
	}

	settingsStore := settingsstore.New(settings.NewRepository(db.DB))

	auditRepo := auditrepo.NewRepository(db.DB)
	auditService := audit.NewService(auditRepo)
	if async {
		auditService = audit.NewAsyncService(auditRepo)
	}
	auditor := audit.NewAuditor(cfg.Audit.Dir)

	return &App{
		Config:      cfg,
		DB:          db,
		Store:       store,
		Settings:    settingsStore,
		Audit:       auditService,
		Auditor:     auditor,
		Catalog:     services.NewCatalogService(store, settingsStore, auditService, auditor),
		Maintenance: services.NewMaintenanceService(store, settingsStore, auditService, pace),
		Pace:        pace,
	}, nil
}

func (a *App) Close() {
	a.Audit.Wait()
	if err := a.DB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
