package cli

import (
	"flag"
)

// ShowCommand prints every field of one publication.
type ShowCommand struct {
	baseCommand
	ID   int
	JSON bool
}

func NewShowCommand() *ShowCommand {
	return &ShowCommand{}
}

func (cmd *ShowCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	cmd.registerCommonFlags(fs)
	fs.IntVar(&cmd.ID, "id", 0, "Publication ID (required)")
	fs.BoolVar(&cmd.JSON, "json", false, "Print the stored record as JSON")
	fs.Usage = usage(fs, "show -id <id>", "Show one publication with its reading history.")

	if err := fs.Parse(args); err != nil {
		return err
	}
	return requireID(cmd.ID)
}

func (cmd *ShowCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	p, err := app.Catalog.Get(cmd.ID)
	if err != nil {
		return describe(err)
	}
	if cmd.JSON {
		return cmd.writeJSON(p.Record())
	}

	cmd.printf("%s\n", p.Title())
	cmd.printf("  ID:         %d\n", p.ID())
	cmd.printf("  Kind:       %s\n", p.Kind())
	cmd.printf("  Author:     %s\n", p.Author())
	cmd.printf("  Publisher:  %s\n", p.Publisher())
	cmd.printf("  Year:       %d\n", p.Year())
	cmd.printf("  Genre:      %s\n", p.Genre())
	cmd.printf("  Pages:      %d\n", p.NumberOfPages())
	if p.IsBook() {
		cmd.printf("  ISBN:       %s\n", p.ISBN())
		cmd.printf("  Edition:    %d\n", p.Edition())
	} else {
		cmd.printf("  ISSN:       %s\n", p.ISSN())
		cmd.printf("  Issue:      %d\n", p.IssueNumber())
	}
	if p.HasDigitalFile() {
		cmd.printf("  File:       %s (present: %t)\n", p.FilePath(), p.DigitalFileExists())
	}
	cmd.printf("  Status:     %s\n", p.Status())
	cmd.printf("  Started:    %s\n", dateOrDash(p.StartReadDate()))
	cmd.printf("  Finished:   %s\n", dateOrDash(p.EndReadDate()))
	if r, ok := p.Rating(); ok {
		cmd.printf("  Rating:     %.1f on %s\n", r, dateOrDash(p.RatingDate()))
	} else {
		cmd.printf("  Rating:     -\n")
	}
	cmd.printf("  Notes:      %d\n", p.AnnotationCount())
	return nil
}
