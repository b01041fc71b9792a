package cli

import (
	"flag"
	"fmt"

	"github.com/mrlokans/shelf/internal/catalog"
)

// InitCommand creates the database and optionally stores preferences and the owner.
type InitCommand struct {
	baseCommand
	AnnualGoal int
	Limit      int
	Genre      string
	OwnerName  string
	OwnerEmail string
}

func NewInitCommand() *InitCommand {
	return &InitCommand{}
}

func (cmd *InitCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	cmd.registerCommonFlags(fs)
	fs.IntVar(&cmd.AnnualGoal, "goal", 0, "Publications to finish per year")
	fs.IntVar(&cmd.Limit, "limit", 0, "Maximum number of publications read at the same time")
	fs.StringVar(&cmd.Genre, "genre", "", "Favourite genre")
	fs.StringVar(&cmd.OwnerName, "owner-name", "", "Catalog owner name")
	fs.StringVar(&cmd.OwnerEmail, "owner-email", "", "Catalog owner email")
	fs.Usage = usage(fs, "init [options]", "Create the catalog database and store reading preferences.")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if (cmd.OwnerName == "") != (cmd.OwnerEmail == "") {
		return fmt.Errorf("-owner-name and -owner-email must be given together")
	}
	return nil
}

func (cmd *InitCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	cfg := app.Settings.GetConfiguration()
	changed := false
	if cmd.AnnualGoal != 0 {
		if err := cfg.SetAnnualGoal(cmd.AnnualGoal); err != nil {
			return describe(err)
		}
		changed = true
	}
	if cmd.Limit != 0 {
		if err := cfg.SetSimultaneousReadingLimit(cmd.Limit); err != nil {
			return describe(err)
		}
		changed = true
	}
	if cmd.Genre != "" {
		cfg.SetFavoriteGenre(cmd.Genre)
		changed = true
	}
	if changed {
		if err := app.Settings.SaveConfiguration(cfg); err != nil {
			return err
		}
		app.Audit.LogSettings("preferences_update", "Preferences set during init")
	}

	if cmd.OwnerName != "" {
		owner, err := catalog.NewUser(cmd.OwnerName, cmd.OwnerEmail)
		if err != nil {
			return describe(err)
		}
		if err := app.Settings.SetOwner(owner); err != nil {
			return err
		}
		app.Audit.LogSettings("owner_update", "Owner set during init")
	}

	c, err := app.Store.Load()
	if err != nil {
		return err
	}

	cmd.printf("Catalog ready at %s (%d publications)\n", app.Config.Database.Path, c.Len())
	cmd.printf("Annual goal: %d, reading limit: %d, favourite genre: %s\n",
		cfg.AnnualGoal(), cfg.SimultaneousReadingLimit(), cfg.FavoriteGenre())
	return nil
}
