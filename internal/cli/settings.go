package cli

import (
	"flag"
	"fmt"
	"time"

	"github.com/mrlokans/shelf/internal/catalog"
	"github.com/mrlokans/shelf/internal/settingsstore"
)

var settingsActions = []string{"show", "set", "import", "export", "clear", "owner", "schedule"}

// SettingsCommand inspects and changes reading preferences, the owner and the export schedule.
type SettingsCommand struct {
	baseCommand
	Action string
	File   string

	AnnualGoal int
	Limit      int
	Genre      string

	OwnerName  string
	OwnerEmail string

	ScheduleEnabled string
	ScheduleDir     string
	Schedule        string

	JSON bool
}

func NewSettingsCommand() *SettingsCommand {
	return &SettingsCommand{}
}

func (cmd *SettingsCommand) ParseFlags(args []string) error {
	cmd.Action = "show"
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd.Action, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet("settings "+cmd.Action, flag.ExitOnError)
	cmd.registerCommonFlags(fs)
	fs.StringVar(&cmd.File, "file", "", "Settings file (import: json/yaml/toml, export: json)")
	fs.IntVar(&cmd.AnnualGoal, "goal", 0, "Publications to finish per year (set)")
	fs.IntVar(&cmd.Limit, "limit", 0, "Maximum simultaneous readings (set)")
	fs.StringVar(&cmd.Genre, "genre", "", "Favourite genre (set)")
	fs.StringVar(&cmd.OwnerName, "name", "", "Owner name (owner)")
	fs.StringVar(&cmd.OwnerEmail, "email", "", "Owner email (owner)")
	fs.StringVar(&cmd.ScheduleEnabled, "enabled", "", "Enable scheduled export: true or false (schedule)")
	fs.StringVar(&cmd.ScheduleDir, "dir", "", "Export directory (schedule)")
	fs.StringVar(&cmd.Schedule, "cron", "", "Five-field cron expression (schedule)")
	fs.BoolVar(&cmd.JSON, "json", false, "Print settings as JSON (show)")
	fs.Usage = usage(fs, "settings <show|set|import|export|clear|owner|schedule> [options]",
		"Manage reading preferences. Values stored here override environment variables.\n"+
			"clear removes stored preferences, export settings and the owner.")

	if err := fs.Parse(args); err != nil {
		return err
	}

	switch cmd.Action {
	case "import", "export":
		if cmd.File == "" {
			return fmt.Errorf("required flag -file not provided")
		}
	case "set":
		if cmd.AnnualGoal == 0 && cmd.Limit == 0 && cmd.Genre == "" {
			return fmt.Errorf("nothing to set: use -goal, -limit or -genre")
		}
	case "show", "clear", "owner", "schedule":
	default:
		return fmt.Errorf("unknown settings action %q (expected one of %v)", cmd.Action, settingsActions)
	}
	return nil
}

func (cmd *SettingsCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()
	store := app.Settings

	switch cmd.Action {
	case "show":
		return cmd.show(store)

	case "set":
		cfg := store.GetConfiguration()
		if cmd.AnnualGoal != 0 {
			if err := cfg.SetAnnualGoal(cmd.AnnualGoal); err != nil {
				return describe(err)
			}
		}
		if cmd.Limit != 0 {
			if err := cfg.SetSimultaneousReadingLimit(cmd.Limit); err != nil {
				return describe(err)
			}
		}
		if cmd.Genre != "" {
			cfg.SetFavoriteGenre(cmd.Genre)
		}
		if err := store.SaveConfiguration(cfg); err != nil {
			return err
		}
		app.Audit.LogSettings("preferences_update", "Reading preferences updated")
		return cmd.show(store)

	case "import":
		cfg, err := store.ImportFile(cmd.File)
		if err != nil {
			return describe(err)
		}
		app.Audit.LogSettings("preferences_import", "Reading preferences imported from "+cmd.File)
		cmd.printf("Imported settings: goal %d, limit %d, genre %s\n",
			cfg.AnnualGoal(), cfg.SimultaneousReadingLimit(), cfg.FavoriteGenre())

	case "export":
		if err := settingsstore.ExportFile(cmd.File, store.GetConfiguration()); err != nil {
			return err
		}
		cmd.printf("Settings written to %s\n", cmd.File)

	case "clear":
		if err := store.ClearConfiguration(); err != nil {
			return err
		}
		if err := store.ClearExportSettings(); err != nil {
			return err
		}
		if err := store.ClearOwner(); err != nil {
			return err
		}
		app.Audit.LogSettings("preferences_clear", "Stored settings cleared")
		cmd.printf("Stored settings cleared, environment and defaults apply\n")

	case "owner":
		if cmd.OwnerName == "" && cmd.OwnerEmail == "" {
			owner, err := store.GetOwner()
			if err != nil {
				return err
			}
			cmd.printf("%s\n", owner)
			return nil
		}
		owner, err := catalog.NewUser(cmd.OwnerName, cmd.OwnerEmail)
		if err != nil {
			return describe(err)
		}
		if err := store.SetOwner(owner); err != nil {
			return err
		}
		app.Audit.LogSettings("owner_update", "Catalog owner updated")
		cmd.printf("%s\n", owner)

	case "schedule":
		return cmd.schedule(store)
	}
	return nil
}

func (cmd *SettingsCommand) show(store *settingsstore.SettingsStore) error {
	info := store.GetConfigurationInfo()
	schedule := store.GetExportScheduleInfo()
	if cmd.JSON {
		stored, err := store.Stored()
		if err != nil {
			return err
		}
		return cmd.writeJSON(map[string]any{
			"preferences":     info,
			"export_schedule": schedule,
			"export_status":   store.GetExportStatus(),
			"stored":          stored,
		})
	}

	cmd.printf("Annual goal:        %d (%s)\n", info.AnnualGoal, info.AnnualGoalSource)
	cmd.printf("Reading limit:      %d (%s)\n", info.SimultaneousReadingLimit, info.SimultaneousReadingLimitSource)
	cmd.printf("Favourite genre:    %s (%s)\n", info.FavoriteGenre, info.FavoriteGenreSource)
	if owner, err := store.GetOwner(); err == nil {
		cmd.printf("Owner:              %s <%s>\n", owner.Name, owner.Email)
	}
	cmd.printf("Scheduled export:   %t (%s)\n", schedule.Enabled, schedule.EnabledSource)
	cmd.printf("Export directory:   %s (%s)\n", schedule.Dir, schedule.DirSource)
	cmd.printf("Export schedule:    %s, %s (%s)\n", schedule.Schedule,
		settingsstore.GetCronDescription(schedule.Schedule), schedule.ScheduleSource)
	if status := store.GetExportStatus(); status.LastRunAt != nil {
		cmd.printf("Last export:        %s %s: %s\n", status.LastRunAt.Format(time.RFC3339), status.Status, status.Message)
	}
	return nil
}

func (cmd *SettingsCommand) schedule(store *settingsstore.SettingsStore) error {
	switch cmd.ScheduleEnabled {
	case "":
	case "true", "false":
		if err := store.SetExportEnabled(cmd.ScheduleEnabled == "true"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("-enabled must be true or false")
	}
	if cmd.ScheduleDir != "" {
		if err := store.SetExportDir(cmd.ScheduleDir); err != nil {
			return err
		}
	}
	if cmd.Schedule != "" {
		if err := store.SetExportSchedule(cmd.Schedule); err != nil {
			return fmt.Errorf("invalid cron schedule %q: %w", cmd.Schedule, err)
		}
	}

	cfg := store.GetExportScheduleConfig()
	cmd.printf("Scheduled export %t: %s into %s\n", cfg.Enabled, settingsstore.GetCronDescription(cfg.Schedule), cfg.Dir)
	if next, err := settingsstore.GetNextRunTime(cfg.Schedule, time.Now()); err == nil && cfg.Enabled {
		cmd.printf("Next run: %s\n", next.Format(time.RFC3339))
	}
	return nil
}
