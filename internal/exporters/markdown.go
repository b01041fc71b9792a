package exporters

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrlokans/shelf/internal/catalog"
	"github.com/mrlokans/shelf/internal/report"
	"github.com/mrlokans/shelf/internal/utils"
)

// MarkdownExporter writes one note per publication, an index and a reports page.
//
// Layout:
//
//	<dir>/books/<Title>.md
//	<dir>/periodicals/<Title> #<issue>.md
//	<dir>/index.md
//	<dir>/reports.md
type MarkdownExporter struct {
	ExportDir       string
	IndexFileName   string
	ReportsFileName string
	Owner           *catalog.User
	Pace            report.Pace
	Result          ExportResult
}

func NewMarkdownExporter(exportDir string) *MarkdownExporter {
	return &MarkdownExporter{
		ExportDir:       exportDir,
		IndexFileName:   "index.md",
		ReportsFileName: "reports.md",
		Pace:            report.DailyPace,
	}
}

func (exporter *MarkdownExporter) ensureDirs() error {
	for _, sub := range []string{"", kindFolder(catalog.KindBook), kindFolder(catalog.KindPeriodical)} {
		if err := os.MkdirAll(filepath.Join(exporter.ExportDir, sub), 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	return nil
}

func kindFolder(k catalog.Kind) string {
	if k == catalog.KindPeriodical {
		return "periodicals"
	}
	return "books"
}

// NoteName is the file name, without extension, of a publication's note.
func NoteName(p *catalog.Publication) string {
	name := p.Title()
	if p.IsPeriodical() {
		name = fmt.Sprintf("%s #%d", name, p.IssueNumber())
	}
	return utils.SanitizeFilename(name)
}

func (exporter *MarkdownExporter) exportPublication(p *catalog.Publication) (string, error) {
	outputPath := filepath.Join(exporter.ExportDir, kindFolder(p.Kind()), NoteName(p)+".md")
	if err := os.WriteFile(outputPath, []byte(GenerateMarkdown(p)), 0644); err != nil {
		return "", err
	}
	exporter.Result.AnnotationsProcessed += p.AnnotationCount()
	return outputPath, nil
}

func quote(s string) string {
	return "\"" + strings.ReplaceAll(s, "\"", "\\\"") + "\""
}

// GenerateMarkdown renders a publication note with YAML front matter.
func GenerateMarkdown(p *catalog.Publication) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: %s\n", strings.ToLower(string(p.Kind())))
	fmt.Fprintf(&builder, "exported_at: %s\n", catalog.FormatDate(catalog.Today()))
	fmt.Fprintf(&builder, "id: %d\n", p.ID())
	fmt.Fprintf(&builder, "title: %s\n", quote(p.Title()))
	fmt.Fprintf(&builder, "author: %s\n", quote(p.Author()))
	if p.Publisher() != "" {
		fmt.Fprintf(&builder, "publisher: %s\n", quote(p.Publisher()))
	}
	fmt.Fprintf(&builder, "year: %d\n", p.Year())
	if p.Genre() != "" {
		fmt.Fprintf(&builder, "genre: %s\n", quote(p.Genre()))
	}
	fmt.Fprintf(&builder, "pages: %d\n", p.NumberOfPages())
	if p.IsBook() {
		if p.ISBN() != "" {
			fmt.Fprintf(&builder, "isbn: %s\n", quote(p.ISBN()))
		}
		fmt.Fprintf(&builder, "edition: %d\n", p.Edition())
	} else {
		if p.ISSN() != "" {
			fmt.Fprintf(&builder, "issn: %s\n", quote(p.ISSN()))
		}
		fmt.Fprintf(&builder, "issue: %d\n", p.IssueNumber())
	}
	fmt.Fprintf(&builder, "status: %s\n", p.Status())
	if d, ok := p.StartReadDate(); ok {
		fmt.Fprintf(&builder, "started: %s\n", catalog.FormatDate(d))
	}
	if d, ok := p.EndReadDate(); ok {
		fmt.Fprintf(&builder, "finished: %s\n", catalog.FormatDate(d))
	}
	if r, ok := p.Rating(); ok {
		fmt.Fprintf(&builder, "rating: %.1f\n", r)
	}
	fmt.Fprintf(&builder, "tags: reading, %s\n", strings.ToLower(string(p.Status())))
	fmt.Fprintf(&builder, "---\n\n")
	fmt.Fprintf(&builder, "# %s\n\n", p.Title())
	if p.Author() != "" {
		fmt.Fprintf(&builder, "*%s*\n\n", p.Author())
	}

	annotations := p.Annotations()
	if len(annotations) == 0 {
		return builder.String()
	}
	fmt.Fprintf(&builder, "## Annotations\n\n")
	for _, a := range annotations {
		fmt.Fprintf(&builder, "### %s\n\n", catalog.FormatDate(a.CreatedOn()))
		if a.ReferenceExcerpt() != "" {
			fmt.Fprintf(&builder, "> %s\n\n", strings.ReplaceAll(a.ReferenceExcerpt(), "\n", "\n> "))
		}
		fmt.Fprintf(&builder, "%s\n\n", a.Text())
	}
	return builder.String()
}

// GenerateIndex renders wiki links to every note grouped by status.
func GenerateIndex(pubs []*catalog.Publication) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "# Reading catalog\n\n")
	for _, status := range catalog.Statuses {
		fmt.Fprintf(&builder, "## %s\n\n", status)
		n := 0
		for _, p := range pubs {
			if p.Status() != status {
				continue
			}
			fmt.Fprintf(&builder, "- [[%s/%s]]", kindFolder(p.Kind()), NoteName(p))
			if p.Author() != "" {
				fmt.Fprintf(&builder, " by %s", p.Author())
			}
			builder.WriteString("\n")
			n++
		}
		if n == 0 {
			builder.WriteString("_None_\n")
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

// GenerateReports renders the status summary, the annual goal measured against
// pace and every report strategy.
func GenerateReports(c *catalog.Collection, cfg *catalog.Configuration, owner *catalog.User, pace report.Pace) (string, error) {
	now := catalog.Now()
	var builder strings.Builder
	fmt.Fprintf(&builder, "# Reading reports\n\n")
	if owner != nil {
		fmt.Fprintf(&builder, "Owner: %s <%s>\n\n", owner.Name, owner.Email)
	}

	section := func(body string) {
		fmt.Fprintf(&builder, "```\n%s```\n\n", body)
	}
	section(report.RenderSummary(report.Summarize(c, now)))
	section(report.RenderGoal(report.AnnualGoalProgressAt(c, cfg, now, pace)))

	pubs := c.ListAll()
	for _, strategy := range report.Strategies() {
		data, err := strategy.Generate(pubs, cfg)
		if err != nil {
			return "", fmt.Errorf("report %s: %w", strategy.Name(), err)
		}
		fmt.Fprintf(&builder, "## %s\n\n", strategy.Description())
		section(strategy.Format(data))
	}
	return builder.String(), nil
}

// Export writes every publication note plus index and reports pages.
// A publication that cannot be written is counted as failed and skipped.
func (exporter *MarkdownExporter) Export(c *catalog.Collection, cfg *catalog.Configuration) (ExportResult, error) {
	// Reset result state for each export
	exporter.Result = ExportResult{}

	if err := exporter.ensureDirs(); err != nil {
		return ExportResult{}, err
	}

	pubs := c.ListAll()
	for _, p := range pubs {
		if _, err := exporter.exportPublication(p); err != nil {
			log.Printf("Failed to export publication %d (%s): %v", p.ID(), p.Title(), err)
			exporter.Result.PublicationsFailed++
			continue
		}
		exporter.Result.PublicationsProcessed++
		exporter.Result.FilesWritten++
	}

	indexPath := filepath.Join(exporter.ExportDir, exporter.IndexFileName)
	if err := os.WriteFile(indexPath, []byte(GenerateIndex(pubs)), 0644); err != nil {
		return exporter.Result, fmt.Errorf("failed to write index: %w", err)
	}
	exporter.Result.FilesWritten++

	pace := exporter.Pace
	if pace == nil {
		pace = report.DailyPace
	}
	reports, err := GenerateReports(c, cfg, exporter.Owner, pace)
	if err != nil {
		return exporter.Result, err
	}
	reportsPath := filepath.Join(exporter.ExportDir, exporter.ReportsFileName)
	if err := os.WriteFile(reportsPath, []byte(reports), 0644); err != nil {
		return exporter.Result, fmt.Errorf("failed to write reports: %w", err)
	}
	exporter.Result.FilesWritten++

	return exporter.Result, nil
}

var _ CatalogExporter = (*MarkdownExporter)(nil)
