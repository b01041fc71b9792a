package cli

import (
	"flag"

	"github.com/mrlokans/shelf/internal/entrypoint"
)

// DaemonCommand runs the export scheduler and background task queue.
type DaemonCommand struct {
	baseCommand
	Version string
}

func NewDaemonCommand(version string) *DaemonCommand {
	return &DaemonCommand{Version: version}
}

func (cmd *DaemonCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("daemon", flag.ExitOnError)
	cmd.registerCommonFlags(fs)
	fs.Usage = usage(fs, "daemon [options]",
		"Run scheduled exports, file verification and audit cleanup until interrupted.")
	return fs.Parse(args)
}

func (cmd *DaemonCommand) Run() error {
	return entrypoint.RunDaemon(cmd.config(), cmd.Version)
}
