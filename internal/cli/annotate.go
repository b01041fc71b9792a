package cli

import (
	"flag"
	"fmt"

	"github.com/mrlokans/shelf/internal/catalog"
	"github.com/mrlokans/shelf/internal/services"
)

var annotateActions = []string{"add", "list", "view", "remove", "search", "all"}

// AnnotateCommand manages the notes attached to publications.
type AnnotateCommand struct {
	baseCommand
	Action       string
	ID           int
	AnnotationID string
	Text         string
	Excerpt      string
	Term         string
}

func NewAnnotateCommand() *AnnotateCommand {
	return &AnnotateCommand{}
}

func (cmd *AnnotateCommand) ParseFlags(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("annotate requires an action: %v", annotateActions)
	}
	cmd.Action = args[0]

	fs := flag.NewFlagSet("annotate "+cmd.Action, flag.ExitOnError)
	cmd.registerCommonFlags(fs)
	fs.IntVar(&cmd.ID, "id", 0, "Publication ID")
	fs.StringVar(&cmd.AnnotationID, "annotation", "", "Annotation ID (view, remove)")
	fs.StringVar(&cmd.Text, "text", "", "Annotation text (add)")
	fs.StringVar(&cmd.Excerpt, "excerpt", "", "Quoted passage the note refers to (add)")
	fs.StringVar(&cmd.Term, "term", "", "Search term (search)")
	fs.Usage = usage(fs, "annotate <add|list|view|remove|search|all> [options]", "Manage annotations.")

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	switch cmd.Action {
	case "add":
		if cmd.Text == "" {
			return fmt.Errorf("required flag -text not provided")
		}
		return requireID(cmd.ID)
	case "list":
		return requireID(cmd.ID)
	case "view", "remove":
		if cmd.AnnotationID == "" {
			return fmt.Errorf("required flag -annotation not provided")
		}
		return requireID(cmd.ID)
	case "search":
		if cmd.Term == "" {
			return fmt.Errorf("required flag -term not provided")
		}
	case "all":
	default:
		return fmt.Errorf("unknown annotate action %q (expected one of %v)", cmd.Action, annotateActions)
	}
	return nil
}

func (cmd *AnnotateCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	switch cmd.Action {
	case "add":
		a, err := app.Catalog.AddAnnotation(cmd.ID, cmd.Text, cmd.Excerpt)
		if err != nil {
			return describe(err)
		}
		cmd.printf("Added annotation %s to #%d\n", a.ID(), cmd.ID)

	case "remove":
		if err := app.Catalog.RemoveAnnotation(cmd.ID, cmd.AnnotationID); err != nil {
			return describe(err)
		}
		cmd.printf("Removed annotation %s from #%d\n", cmd.AnnotationID, cmd.ID)

	case "list", "view":
		p, err := app.Catalog.Get(cmd.ID)
		if err != nil {
			return describe(err)
		}
		if cmd.Action == "view" {
			a, ok := p.Annotation(cmd.AnnotationID)
			if !ok {
				return fmt.Errorf("not found: annotation with ID %s not found", cmd.AnnotationID)
			}
			cmd.printAnnotation(p, a)
			return nil
		}
		annotations := p.Annotations()
		if len(annotations) == 0 {
			cmd.printf("No annotations for #%d\n", p.ID())
		}
		for _, a := range annotations {
			cmd.printAnnotation(p, a)
		}

	case "search", "all":
		var matches []services.AnnotationMatch
		if cmd.Action == "search" {
			matches, err = app.Catalog.SearchAnnotations(cmd.Term)
		} else {
			matches, err = app.Catalog.AllAnnotations()
		}
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			cmd.printf("No annotations found\n")
		}
		for _, m := range matches {
			cmd.printAnnotation(m.Publication, m.Annotation)
		}
	}
	return nil
}

func (cmd *AnnotateCommand) printAnnotation(p *catalog.Publication, a catalog.Annotation) {
	cmd.printf("#%d %s [%s]\n  %s\n", p.ID(), p.Title(), a.ID(), a)
}
