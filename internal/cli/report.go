package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/mrlokans/shelf/internal/catalog"
	"github.com/mrlokans/shelf/internal/report"
)

var reportTypes = []string{"status", "goal", "top", "evaluation", "progress", "full"}

// ReportCommand prints catalog statistics.
type ReportCommand struct {
	baseCommand
	Type string
	TopN int
	Pace string
	JSON bool
}

func NewReportCommand() *ReportCommand {
	return &ReportCommand{}
}

func (cmd *ReportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	cmd.registerCommonFlags(fs)
	fs.StringVar(&cmd.Type, "type", "status", "Report: "+strings.Join(reportTypes, ", "))
	fs.IntVar(&cmd.TopN, "n", 0, "Number of publications in the top report (default: $REPORT_TOP_N)")
	fs.StringVar(&cmd.Pace, "pace", "", "Goal pace baseline: daily or monthly (default: $GOAL_PACE)")
	fs.BoolVar(&cmd.JSON, "json", false, "Print the report as JSON")
	fs.Usage = usage(fs, "report [-type <type>] [options]", "Print reading statistics.")

	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, t := range reportTypes {
		if cmd.Type == t {
			return nil
		}
	}
	return fmt.Errorf("unknown report type %q (expected one of %s)", cmd.Type, strings.Join(reportTypes, ", "))
}

func (cmd *ReportCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	pace := app.Pace
	if cmd.Pace != "" {
		if pace, err = report.ParsePace(cmd.Pace); err != nil {
			return err
		}
	}
	topN := cmd.TopN
	if topN == 0 {
		topN = app.Config.Reports.TopN
	}
	if topN == 0 {
		topN = report.DefaultTopN
	}

	c, err := app.Catalog.Collection()
	if err != nil {
		return err
	}
	cfg := app.Catalog.Configuration()
	now := catalog.Now()
	pubs := c.ListAll()

	sections := map[string]func() (any, string){
		"status": func() (any, string) {
			s := report.Summarize(c, now)
			return s, report.RenderSummary(s)
		},
		"goal": func() (any, string) {
			g := report.AnnualGoalProgressAt(c, cfg, now, pace)
			return g, report.RenderGoal(g)
		},
		"top": func() (any, string) {
			top := report.TopNByRating(c, topN)
			records := make([]catalog.PublicationRecord, 0, len(top))
			for _, p := range top {
				records = append(records, p.Record())
			}
			return records, report.RenderTopRated(top)
		},
		"evaluation": func() (any, string) {
			ev := report.EvaluationStatistics(pubs)
			return ev, report.RenderEvaluation(ev)
		},
		"progress": func() (any, string) {
			p := report.ProgressReportAt(pubs, cfg, now, pace)
			return p, report.RenderProgress(p)
		},
	}

	if cmd.Type != "full" {
		data, text := sections[cmd.Type]()
		if cmd.JSON {
			return cmd.writeJSON(data)
		}
		cmd.printf("%s", text)
		return nil
	}

	full := make(map[string]any, len(sections))
	var texts []string
	if owner, err := app.Settings.GetOwner(); err == nil {
		full["owner"] = owner
		texts = append(texts, owner.String()+"\n")
	}
	for _, name := range reportTypes[:len(reportTypes)-1] {
		data, text := sections[name]()
		full[name] = data
		texts = append(texts, text)
	}
	if cmd.JSON {
		return cmd.writeJSON(full)
	}
	cmd.printf("%s", strings.Join(texts, "\n"))
	return nil
}
