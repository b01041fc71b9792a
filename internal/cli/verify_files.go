package cli

import (
	"context"
	"flag"
	"fmt"
)

// VerifyFilesCommand reports publications whose digital file is missing.
type VerifyFilesCommand struct {
	baseCommand
	Concurrency int
	JSON        bool
}

func NewVerifyFilesCommand() *VerifyFilesCommand {
	return &VerifyFilesCommand{}
}

func (cmd *VerifyFilesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("verify-files", flag.ExitOnError)
	cmd.registerCommonFlags(fs)
	fs.IntVar(&cmd.Concurrency, "concurrency", 0, "Parallel file checks (default: $VERIFY_CONCURRENCY)")
	fs.BoolVar(&cmd.JSON, "json", false, "Print the result as JSON")
	fs.Usage = usage(fs, "verify-files [options]", "Check that every referenced digital file exists.")
	return fs.Parse(args)
}

func (cmd *VerifyFilesCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	concurrency := cmd.Concurrency
	if concurrency <= 0 {
		concurrency = app.Config.Files.VerifyConcurrency
	}

	result, err := app.Maintenance.VerifyFiles(context.Background(), concurrency)
	if err != nil {
		return err
	}
	if cmd.JSON {
		return cmd.writeJSON(result)
	}

	for _, f := range result.Files {
		state := "ok"
		if !f.Exists {
			state = "MISSING"
			if f.Error != "" {
				state = "ERROR " + f.Error
			}
		}
		cmd.printf("%4d  %-8s %s\n", f.PublicationID, state, f.Path)
	}
	cmd.printf("\n%d checked, %d missing\n", result.Checked, result.Missing)
	if result.Missing > 0 {
		return fmt.Errorf("%d digital files missing", result.Missing)
	}
	return nil
}
