package cli

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/mrlokans/shelf/internal/catalog"
)

// SearchCommand finds publications by author or title.
type SearchCommand struct {
	baseCommand
	Author string
	Title  string
	JSON   bool
}

func NewSearchCommand() *SearchCommand {
	return &SearchCommand{}
}

func (cmd *SearchCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	cmd.registerCommonFlags(fs)
	fs.StringVar(&cmd.Author, "author", "", "Case-insensitive author substring")
	fs.StringVar(&cmd.Title, "title", "", "Case-insensitive title substring")
	fs.BoolVar(&cmd.JSON, "json", false, "Print JSON records")
	fs.Usage = usage(fs, "search (-author <term> | -title <term>)", "Search the catalog.")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if (cmd.Author == "") == (cmd.Title == "") {
		return fmt.Errorf("exactly one of -author or -title is required")
	}
	return nil
}

func (cmd *SearchCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	c, err := app.Catalog.Collection()
	if err != nil {
		return err
	}

	var pubs []*catalog.Publication
	if cmd.Author != "" {
		pubs = c.SearchByAuthor(cmd.Author)
	} else {
		pubs = c.SearchByTitle(cmd.Title)
	}
	return printPublications(&cmd.baseCommand, pubs, cmd.JSON)
}

// parsePeriod parses "YYYY-MM-DD:YYYY-MM-DD".
func parsePeriod(s string) (time.Time, time.Time, error) {
	from, to, ok := strings.Cut(s, ":")
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("period must look like 2024-01-01:2024-12-31")
	}
	start, err := catalog.ParseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := catalog.ParseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
