package report

import (
	"sort"
	"time"

	"github.com/mrlokans/shelf/internal/catalog"
)

// ProgressEntry is a publication listed in the progress report with its relevant date.
type ProgressEntry struct {
	ID     int       `json:"id"`
	Title  string    `json:"title"`
	Author string    `json:"author"`
	Date   time.Time `json:"date"`
}

// Progress restates annual goal progress with reading activity for the year.
type Progress struct {
	GoalProgress
	CurrentlyReading int             `json:"currently_reading"`
	Limit            int             `json:"limit"`
	PagesRead        int             `json:"pages_read"`
	AveragePages     float64         `json:"avg_pages"`
	Finished         []ProgressEntry `json:"finished_publications"`
	Reading          []ProgressEntry `json:"reading_publications"`
}

// ProgressReport builds the annual progress report for the current year.
func ProgressReport(pubs []*catalog.Publication, cfg *catalog.Configuration) Progress {
	return ProgressReportAt(pubs, cfg, catalog.Now(), DailyPace)
}

// ProgressReportAt builds the progress report for the year of now.
// Percentage is rounded to one decimal and AveragePages to a whole number.
func ProgressReportAt(pubs []*catalog.Publication, cfg *catalog.Configuration, now time.Time, pace Pace) Progress {
	gp := goalProgress(pubs, cfg, now, pace)
	gp.Percentage = round(gp.Percentage, 1)
	gp.ExpectedProgress = round(gp.ExpectedProgress, 1)

	finished := finishedIn(pubs, now.Year())
	pages := 0
	for _, p := range finished {
		pages += p.NumberOfPages()
	}
	var avg float64
	if len(finished) > 0 {
		avg = round(float64(pages)/float64(len(finished)), 0)
	}

	var reading []*catalog.Publication
	for _, p := range pubs {
		if p.Status() == catalog.StatusReading {
			reading = append(reading, p)
		}
	}

	return Progress{
		GoalProgress:     gp,
		CurrentlyReading: len(reading),
		Limit:            cfg.SimultaneousReadingLimit(),
		PagesRead:        pages,
		AveragePages:     avg,
		Finished:         entriesByDate(finished, (*catalog.Publication).EndReadDate),
		Reading:          entriesByDate(reading, (*catalog.Publication).StartReadDate),
	}
}

func entriesByDate(pubs []*catalog.Publication, dateOf func(*catalog.Publication) (time.Time, bool)) []ProgressEntry {
	out := make([]ProgressEntry, 0, len(pubs))
	for _, p := range pubs {
		d, _ := dateOf(p)
		out = append(out, ProgressEntry{ID: p.ID(), Title: p.Title(), Author: p.Author(), Date: d})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
