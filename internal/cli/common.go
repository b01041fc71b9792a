// Package cli implements the shelf subcommands. Each command parses its own
// flags with ParseFlags and does its work in Run.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/mrlokans/shelf/internal/catalog"
	"github.com/mrlokans/shelf/internal/config"
	"github.com/mrlokans/shelf/internal/entrypoint"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// baseCommand carries the options every command shares.
type baseCommand struct {
	DatabasePath string
	JSONPath     string
	// Config overrides the environment configuration when set.
	Config *config.Config
	Out    io.Writer
}

func (b *baseCommand) registerCommonFlags(fs *flag.FlagSet) {
	fs.StringVar(&b.DatabasePath, "db", "", "Path to the database file (default: $DATABASE_PATH or "+config.DefaultDatabasePath+")")
	fs.StringVar(&b.JSONPath, "catalog-file", "", "Keep the catalog in this JSON file instead of the database")
}

func (b *baseCommand) config() *config.Config {
	cfg := b.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if b.DatabasePath != "" {
		cfg.Database.Path = b.DatabasePath
	}
	if b.JSONPath != "" {
		cfg.Storage.Backend = config.StorageBackendJSON
		cfg.Storage.JSONPath = b.JSONPath
	}
	return cfg
}

func (b *baseCommand) open() (*entrypoint.App, error) {
	return entrypoint.Open(b.config(), false)
}

func (b *baseCommand) out() io.Writer {
	if b.Out == nil {
		return os.Stdout
	}
	return b.Out
}

func (b *baseCommand) printf(format string, args ...any) {
	fmt.Fprintf(b.out(), format, args...)
}

func (b *baseCommand) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(b.out(), string(data))
	return err
}

func usage(fs *flag.FlagSet, synopsis, description string) func() {
	return func() {
		fmt.Fprintf(os.Stderr, "Usage: %s %s\n\n", os.Args[0], synopsis)
		fmt.Fprintf(os.Stderr, "%s\n\n", description)
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
}

func requireID(id int) error {
	if id <= 0 {
		return fmt.Errorf("required flag -id not provided")
	}
	return nil
}

// describe prefixes catalog errors with their kind, keeping them unwrappable.
func describe(err error) error {
	var ce *catalog.Error
	if !errors.As(err, &ce) {
		return err
	}
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return fmt.Errorf("not found: %w", err)
	case errors.Is(err, catalog.ErrState):
		return fmt.Errorf("invalid state: %w", err)
	case errors.Is(err, catalog.ErrLimitExceeded):
		return fmt.Errorf("limit reached: %w", err)
	case errors.Is(err, catalog.ErrDuplicate):
		return fmt.Errorf("duplicate: %w", err)
	default:
		return fmt.Errorf("invalid input: %w", err)
	}
}

func dateOrDash(t time.Time, ok bool) string {
	if !ok {
		return "-"
	}
	return catalog.FormatDate(t)
}
