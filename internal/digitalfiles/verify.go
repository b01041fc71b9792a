// Package digitalfiles checks that the e-book files referenced by the catalog exist.
package digitalfiles

import (
	"context"
	"os"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/shelf/internal/catalog"
	"github.com/mrlokans/shelf/internal/utils"
)

const DefaultConcurrency = 8

// FileStatus is the result of checking one publication's file.
type FileStatus struct {
	PublicationID int    `json:"publication_id"`
	Title         string `json:"title"`
	Path          string `json:"path"`
	Format        string `json:"format,omitempty"`
	Exists        bool   `json:"exists"`
	Size          int64  `json:"size,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Report summarises a verification run.
type Report struct {
	Checked int          `json:"checked"`
	Missing int          `json:"missing"`
	Files   []FileStatus `json:"files"`
}

// MissingFiles returns the statuses whose file could not be found.
func (r Report) MissingFiles() []FileStatus {
	var missing []FileStatus
	for _, f := range r.Files {
		if !f.Exists {
			missing = append(missing, f)
		}
	}
	return missing
}

// Verify stats the file of every publication that has one, with at most
// concurrency checks in flight. Publications without a file are skipped.
// Results are ordered by publication id.
func Verify(ctx context.Context, pubs []*catalog.Publication, concurrency int) (Report, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var targets []*catalog.Publication
	for _, p := range pubs {
		if p.HasDigitalFile() {
			targets = append(targets, p)
		}
	}

	results := make([]FileStatus, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, p := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = check(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].PublicationID < results[j].PublicationID })
	report := Report{Checked: len(results), Files: results}
	for _, r := range results {
		if !r.Exists {
			report.Missing++
		}
	}
	return report, nil
}

func check(p *catalog.Publication) FileStatus {
	status := FileStatus{
		PublicationID: p.ID(),
		Title:         p.Title(),
		Path:          p.FilePath(),
		Format:        utils.BookFormat(p.FilePath()),
	}
	info, err := os.Stat(p.FilePath())
	switch {
	case err == nil && info.IsDir():
		status.Error = "path is a directory"
	case err == nil:
		status.Exists = true
		status.Size = info.Size()
	case !os.IsNotExist(err):
		status.Error = err.Error()
	}
	return status
}
