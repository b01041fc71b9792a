package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/shelf/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "init":
		cmd = cli.NewInitCommand()
	case "add":
		cmd = cli.NewAddCommand()
	case "list":
		cmd = cli.NewListCommand()
	case "show":
		cmd = cli.NewShowCommand()
	case "search":
		cmd = cli.NewSearchCommand()
	case "start":
		cmd = cli.NewStartCommand()
	case "finish":
		cmd = cli.NewFinishCommand()
	case "rate":
		cmd = cli.NewRateCommand()
	case "remove":
		cmd = cli.NewRemoveCommand()
	case "annotate":
		cmd = cli.NewAnnotateCommand()
	case "report":
		cmd = cli.NewReportCommand()
	case "settings":
		cmd = cli.NewSettingsCommand()
	case "export":
		cmd = cli.NewExportCommand()
	case "verify-files":
		cmd = cli.NewVerifyFilesCommand()
	case "history":
		cmd = cli.NewHistoryCommand()
	case "daemon":
		cmd = cli.NewDaemonCommand(Version)

	case "version":
		fmt.Printf("shelf %s (%s)\n", Version, Commit)
		return

	case "-h", "--help", "help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(2)
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  init          Create the catalog and store reading preferences\n")
	fmt.Fprintf(os.Stderr, "  add           Register a book or periodical\n")
	fmt.Fprintf(os.Stderr, "  list          List publications, optionally filtered by status or reading period\n")
	fmt.Fprintf(os.Stderr, "  show          Show one publication\n")
	fmt.Fprintf(os.Stderr, "  search        Search publications by author or title\n")
	fmt.Fprintf(os.Stderr, "  start         Start reading a publication\n")
	fmt.Fprintf(os.Stderr, "  finish        Finish reading a publication\n")
	fmt.Fprintf(os.Stderr, "  rate          Rate a finished publication from 0 to 10\n")
	fmt.Fprintf(os.Stderr, "  remove        Remove a publication from the catalog\n")
	fmt.Fprintf(os.Stderr, "  annotate      Add, list, view, search or remove notes\n")
	fmt.Fprintf(os.Stderr, "  report        Print status, goal, top rated, evaluation or progress reports\n")
	fmt.Fprintf(os.Stderr, "  settings      Manage reading preferences, owner and export schedule\n")
	fmt.Fprintf(os.Stderr, "  export        Export the catalog as markdown notes\n")
	fmt.Fprintf(os.Stderr, "  verify-files  Check that referenced digital files exist\n")
	fmt.Fprintf(os.Stderr, "  history       Show the audit log\n")
	fmt.Fprintf(os.Stderr, "  daemon        Run scheduled exports and background tasks\n")
	fmt.Fprintf(os.Stderr, "  version       Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
