package cli

import (
	"flag"
	"fmt"
	"math"
)

// StartCommand moves a publication to READING.
type StartCommand struct {
	baseCommand
	ID int
}

func NewStartCommand() *StartCommand {
	return &StartCommand{}
}

func (cmd *StartCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("start", flag.ExitOnError)
	cmd.registerCommonFlags(fs)
	fs.IntVar(&cmd.ID, "id", 0, "Publication ID (required)")
	fs.Usage = usage(fs, "start -id <id>", "Start reading a publication. Re-reading a finished one clears its rating.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return requireID(cmd.ID)
}

func (cmd *StartCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Catalog.StartReading(cmd.ID); err != nil {
		return describe(err)
	}
	cmd.printf("Started reading #%d\n", cmd.ID)
	return nil
}

// FinishCommand moves a publication to READ.
type FinishCommand struct {
	baseCommand
	ID int
}

func NewFinishCommand() *FinishCommand {
	return &FinishCommand{}
}

func (cmd *FinishCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("finish", flag.ExitOnError)
	cmd.registerCommonFlags(fs)
	fs.IntVar(&cmd.ID, "id", 0, "Publication ID (required)")
	fs.Usage = usage(fs, "finish -id <id>", "Finish reading a publication.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return requireID(cmd.ID)
}

func (cmd *FinishCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Catalog.FinishReading(cmd.ID); err != nil {
		return describe(err)
	}
	cmd.printf("Finished reading #%d\n", cmd.ID)
	return nil
}

// RateCommand rates a finished publication.
type RateCommand struct {
	baseCommand
	ID     int
	Rating float64
}

func NewRateCommand() *RateCommand {
	return &RateCommand{Rating: math.NaN()}
}

func (cmd *RateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("rate", flag.ExitOnError)
	cmd.registerCommonFlags(fs)
	fs.IntVar(&cmd.ID, "id", 0, "Publication ID (required)")
	fs.Float64Var(&cmd.Rating, "value", math.NaN(), "Rating between 0 and 10 (required)")
	fs.Usage = usage(fs, "rate -id <id> -value <0-10>", "Rate a publication you have finished.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if math.IsNaN(cmd.Rating) {
		return fmt.Errorf("required flag -value not provided")
	}
	return requireID(cmd.ID)
}

func (cmd *RateCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Catalog.Rate(cmd.ID, cmd.Rating); err != nil {
		return describe(err)
	}
	cmd.printf("Rated #%d: %.1f\n", cmd.ID, cmd.Rating)
	return nil
}

// RemoveCommand deletes a publication, keeping a JSON snapshot in the audit directory.
type RemoveCommand struct {
	baseCommand
	ID int
}

func NewRemoveCommand() *RemoveCommand {
	return &RemoveCommand{}
}

func (cmd *RemoveCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	cmd.registerCommonFlags(fs)
	fs.IntVar(&cmd.ID, "id", 0, "Publication ID (required)")
	fs.Usage = usage(fs, "remove -id <id>", "Remove a publication from the catalog.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return requireID(cmd.ID)
}

func (cmd *RemoveCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	p, err := app.Catalog.Remove(cmd.ID)
	if err != nil {
		return describe(err)
	}
	cmd.printf("Removed #%d: %s\n", p.ID(), p.Title())
	return nil
}
