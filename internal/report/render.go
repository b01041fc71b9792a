package report

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mrlokans/shelf/internal/catalog"
)

const barWidth = 20

var printer = message.NewPrinter(language.English)

// ProgressBar draws a fixed-width bar for pct percent, clamped to [0, 100].
func ProgressBar(pct float64) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * barWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// RenderSummary formats the status overview.
func RenderSummary(s StatusSummary) string {
	var b strings.Builder
	printer.Fprintf(&b, "CATALOG STATUS (%s)\n\n", s.GeneratedAt)
	printer.Fprintf(&b, "Total publications: %d\n", s.Total)
	for _, st := range catalog.Statuses {
		sc := s.ByStatus[st]
		printer.Fprintf(&b, "  %-8s %6d  %5.1f%%\n", st, sc.Count, sc.Percentage)
	}
	return b.String()
}

// RenderGoal formats annual goal progress.
func RenderGoal(g GoalProgress) string {
	var b strings.Builder
	printer.Fprintf(&b, "ANNUAL GOAL %s\n\n", strconv.Itoa(g.Year))
	printer.Fprintf(&b, "Goal:      %d\n", g.Goal)
	printer.Fprintf(&b, "Completed: %d\n", g.Completed)
	printer.Fprintf(&b, "Remaining: %d\n", g.Remaining)
	printer.Fprintf(&b, "Progress:  %.1f%% (expected %.1f%%)\n", g.Percentage, g.ExpectedProgress)
	printer.Fprintf(&b, "   [%s]\n", ProgressBar(g.Percentage))
	if g.OnTrack {
		b.WriteString("On track.\n")
	} else {
		b.WriteString("Behind schedule.\n")
	}
	return b.String()
}

// RenderEvaluation formats rating statistics.
func RenderEvaluation(ev Evaluation) string {
	var b strings.Builder
	b.WriteString("RATINGS REPORT\n\n")
	if ev.Count == 0 {
		b.WriteString("No rated publications yet.\n")
		return b.String()
	}
	printer.Fprintf(&b, "Total publications: %d\n", ev.Total)
	printer.Fprintf(&b, "Rated publications: %d\n\n", ev.Count)
	printer.Fprintf(&b, "Average:   %.2f/10\n", ev.Mean)
	printer.Fprintf(&b, "Std dev:   %.2f\n", ev.StdDev)
	printer.Fprintf(&b, "Lowest:    %g/10\n", ev.Min)
	printer.Fprintf(&b, "Highest:   %g/10\n", ev.Max)
	if ev.MostCommon != nil {
		printer.Fprintf(&b, "Most common: %g/10 (%d publications)\n", ev.MostCommon.Rating, ev.MostCommon.Count)
	}
	b.WriteString("\nDistribution:\n")
	for _, bucket := range ev.Histogram {
		printer.Fprintf(&b, "  %5g/10: %s (%d)\n", bucket.Rating, strings.Repeat("█", bucket.Count), bucket.Count)
	}
	return b.String()
}

// RenderTopRated formats a ranked list of publications.
func RenderTopRated(pubs []*catalog.Publication) string {
	var b strings.Builder
	b.WriteString("TOP RATED\n\n")
	if len(pubs) == 0 {
		b.WriteString("No rated publications yet.\n")
		return b.String()
	}
	for i, p := range pubs {
		r, _ := p.Rating()
		printer.Fprintf(&b, "%2d. %s by %s (%s) %g/10\n", i+1, p.Title(), p.Author(), strconv.Itoa(p.Year()), r)
	}
	return b.String()
}

// RenderProgress formats the annual progress report.
func RenderProgress(p Progress) string {
	var b strings.Builder
	b.WriteString(RenderGoal(p.GoalProgress))
	printer.Fprintf(&b, "\nCurrently reading: %d of %d allowed\n", p.CurrentlyReading, p.Limit)
	printer.Fprintf(&b, "Pages read:        %d\n", p.PagesRead)
	printer.Fprintf(&b, "Average pages:     %.0f\n", p.AveragePages)
	if len(p.Finished) > 0 {
		b.WriteString("\nFinished this year:\n")
		for _, e := range p.Finished {
			printer.Fprintf(&b, "  %s  %s by %s\n", catalog.FormatDate(e.Date), e.Title, e.Author)
		}
	}
	if len(p.Reading) > 0 {
		b.WriteString("\nReading now:\n")
		for _, e := range p.Reading {
			printer.Fprintf(&b, "  since %s  %s by %s\n", catalog.FormatDate(e.Date), e.Title, e.Author)
		}
	}
	return b.String()
}
