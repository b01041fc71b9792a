package cli

import (
	"context"
	"flag"

	"github.com/mrlokans/shelf/internal/settingsstore"
)

// ExportCommand writes markdown notes and the reports page.
type ExportCommand struct {
	baseCommand
	Dir string
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	cmd.registerCommonFlags(fs)
	fs.StringVar(&cmd.Dir, "dir", "", "Output directory (default: export directory setting)")
	fs.Usage = usage(fs, "export [-dir <path>]", "Export every publication as a markdown note plus index.md and reports.md.")
	return fs.Parse(args)
}

func (cmd *ExportCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	dir := cmd.Dir
	if dir == "" {
		var source string
		dir, source = app.Settings.GetExportDir()
		if source == settingsstore.SourceDefault && app.Config.Export.Dir != "" {
			dir = app.Config.Export.Dir
		}
	}

	result, err := app.Maintenance.Export(context.Background(), dir)
	if err != nil {
		return err
	}
	cmd.printf("Exported %d publications (%d annotations, %d failed) to %s\n",
		result.PublicationsProcessed, result.AnnotationsProcessed, result.PublicationsFailed, dir)
	return nil
}
