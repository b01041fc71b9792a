package cli

import (
	"flag"
	"fmt"

	"github.com/mrlokans/shelf/internal/catalog"
)

// AddCommand registers a book or a periodical issue.
type AddCommand struct {
	baseCommand
	Kind    string
	ID      int
	Details catalog.Details
	ISBN    string
	Edition int
	ISSN    string
	Issue   int
}

func NewAddCommand() *AddCommand {
	return &AddCommand{}
}

func (cmd *AddCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	cmd.registerCommonFlags(fs)
	fs.StringVar(&cmd.Kind, "kind", "book", "Publication kind: book or periodical")
	fs.IntVar(&cmd.ID, "id", 0, "Publication ID (default: next free ID)")
	fs.StringVar(&cmd.Details.Title, "title", "", "Title (required)")
	fs.StringVar(&cmd.Details.Author, "author", "", "Author")
	fs.StringVar(&cmd.Details.Publisher, "publisher", "", "Publisher")
	fs.IntVar(&cmd.Details.Year, "year", 0, "Publication year (required)")
	fs.StringVar(&cmd.Details.Genre, "genre", "", "Genre")
	fs.IntVar(&cmd.Details.NumberOfPages, "pages", 0, "Number of pages (required)")
	fs.StringVar(&cmd.Details.FilePath, "file", "", "Path to the digital copy")
	fs.StringVar(&cmd.ISBN, "isbn", "", "ISBN (books)")
	fs.IntVar(&cmd.Edition, "edition", 1, "Edition (books)")
	fs.StringVar(&cmd.ISSN, "issn", "", "ISSN (periodicals)")
	fs.IntVar(&cmd.Issue, "issue", 0, "Issue number (periodicals)")
	fs.Usage = usage(fs, "add -title <title> -year <year> -pages <n> [options]", "Register a publication in the catalog.")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Details.Title == "" {
		return fmt.Errorf("required flag -title not provided")
	}
	if _, err := catalog.ParseKind(cmd.Kind); err != nil {
		return describe(err)
	}
	return nil
}

func (cmd *AddCommand) build(id int) (*catalog.Publication, error) {
	kind, err := catalog.ParseKind(cmd.Kind)
	if err != nil {
		return nil, err
	}
	d := cmd.Details
	d.ID = id
	if kind == catalog.KindPeriodical {
		return catalog.NewPeriodical(d, cmd.ISSN, cmd.Issue)
	}
	return catalog.NewBook(d, cmd.ISBN, cmd.Edition)
}

func (cmd *AddCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	var p *catalog.Publication
	if cmd.ID > 0 {
		p, err = cmd.build(cmd.ID)
		if err == nil {
			err = app.Catalog.Register(p)
		}
	} else {
		p, err = app.Catalog.Add(cmd.build)
	}
	if err != nil {
		return describe(err)
	}

	cmd.printf("Added #%d: %s\n", p.ID(), p)
	return nil
}
