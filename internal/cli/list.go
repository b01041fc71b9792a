package cli

import (
	"flag"
	"fmt"

	"github.com/mrlokans/shelf/internal/catalog"
)

// ListCommand prints the catalog, optionally filtered.
type ListCommand struct {
	baseCommand
	Status   string
	SortBy   string
	Finished string // "from:to" reading period
	JSON     bool
}

func NewListCommand() *ListCommand {
	return &ListCommand{}
}

func (cmd *ListCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	cmd.registerCommonFlags(fs)
	fs.StringVar(&cmd.Status, "status", "", "Only show UNREAD, READING or READ publications")
	fs.StringVar(&cmd.SortBy, "sort", "id", "Sort order: id or year")
	fs.StringVar(&cmd.Finished, "finished", "", "Only show publications finished in a period, e.g. 2024-01-01:2024-12-31")
	fs.BoolVar(&cmd.JSON, "json", false, "Print JSON records")
	fs.Usage = usage(fs, "list [options]", "List publications in the catalog.")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.SortBy != "id" && cmd.SortBy != "year" {
		return fmt.Errorf("unknown sort order %q (expected id or year)", cmd.SortBy)
	}
	return nil
}

func (cmd *ListCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	c, err := app.Catalog.Collection()
	if err != nil {
		return err
	}

	pubs := c.ListAll()
	if cmd.Finished != "" {
		start, end, err := parsePeriod(cmd.Finished)
		if err != nil {
			return describe(err)
		}
		pubs = c.FilterByReadingPeriod(start, end)
	}
	if cmd.Status != "" {
		status, err := catalog.ParseStatus(cmd.Status)
		if err != nil {
			return describe(err)
		}
		pubs = keepStatus(pubs, status)
	}
	if cmd.SortBy == "year" {
		catalog.SortByYear(pubs)
	}

	return printPublications(&cmd.baseCommand, pubs, cmd.JSON)
}

func keepStatus(pubs []*catalog.Publication, status catalog.Status) []*catalog.Publication {
	var out []*catalog.Publication
	for _, p := range pubs {
		if p.Status() == status {
			out = append(out, p)
		}
	}
	return out
}

func printPublications(b *baseCommand, pubs []*catalog.Publication, asJSON bool) error {
	if asJSON {
		records := make([]catalog.PublicationRecord, 0, len(pubs))
		for _, p := range pubs {
			records = append(records, p.Record())
		}
		return b.writeJSON(records)
	}

	if len(pubs) == 0 {
		b.printf("No publications found\n")
		return nil
	}
	for _, p := range pubs {
		b.printf("%4d  %-8s %-10s %s", p.ID(), p.Status(), p.Kind(), p.Title())
		if p.Author() != "" {
			b.printf(" by %s", p.Author())
		}
		b.printf(" (%d)", p.Year())
		if r, ok := p.Rating(); ok {
			b.printf("  rated %.1f", r)
		}
		b.printf("\n")
	}
	b.printf("\n%d publications\n", len(pubs))
	return nil
}
