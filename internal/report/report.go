// Package report computes read-only statistics over a catalog.
//
// Every function here is pure: it reads a collection or a slice of
// publications and never mutates them. Empty input yields zero values.
package report

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/mrlokans/shelf/internal/catalog"
)

// DefaultTopN is the number of entries returned by the top-rated listing.
const DefaultTopN = 5

// ErrConfigurationRequired is returned by strategies that need reading preferences.
var ErrConfigurationRequired = errors.New("configuration required for progress report")

// StatusCount is the size of one status bucket and its share of the catalog.
type StatusCount struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TotalCount returns the number of publications in c.
func TotalCount(c *catalog.Collection) int {
	return c.Len()
}

// CountsByStatus returns a bucket for every status, including empty ones.
func CountsByStatus(c *catalog.Collection) map[catalog.Status]StatusCount {
	total := c.Len()
	out := make(map[catalog.Status]StatusCount, len(catalog.Statuses))
	for _, s := range catalog.Statuses {
		n := c.CountByStatus(s)
		out[s] = StatusCount{Count: n, Percentage: percentage(n, total)}
	}
	return out
}

// AverageRating is the mean rating of rated READ publications, or 0.
func AverageRating(c *catalog.Collection) float64 {
	ratings := ratingsOf(c.SearchByStatus(catalog.StatusRead))
	if len(ratings) == 0 {
		return 0
	}
	return sum(ratings) / float64(len(ratings))
}

// TopNByRating returns up to n rated READ publications, best first.
// Equal ratings are ordered by title.
func TopNByRating(c *catalog.Collection, n int) []*catalog.Publication {
	return topRated(c.SearchByStatus(catalog.StatusRead), n)
}

func topRated(pubs []*catalog.Publication, n int) []*catalog.Publication {
	if n <= 0 {
		return []*catalog.Publication{}
	}
	rated := make([]*catalog.Publication, 0, len(pubs))
	for _, p := range pubs {
		if p.Status() == catalog.StatusRead && p.HasRating() {
			rated = append(rated, p)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		ri, _ := rated[i].Rating()
		rj, _ := rated[j].Rating()
		if ri != rj {
			return ri > rj
		}
		return rated[i].Title() < rated[j].Title()
	})
	if len(rated) > n {
		rated = rated[:n]
	}
	return rated
}

// StatusSummary is the catalog overview shown by `report status`.
type StatusSummary struct {
	Total       int                            `json:"total_publications"`
	ByStatus    map[catalog.Status]StatusCount `json:"by_status"`
	GeneratedAt string                         `json:"generated_at"`
}

// Summarize builds a StatusSummary with percentages rounded to one decimal.
func Summarize(c *catalog.Collection, now time.Time) StatusSummary {
	counts := CountsByStatus(c)
	for s, sc := range counts {
		sc.Percentage = round(sc.Percentage, 1)
		counts[s] = sc
	}
	return StatusSummary{
		Total:       TotalCount(c),
		ByStatus:    counts,
		GeneratedAt: catalog.FormatDate(now),
	}
}

func ratingsOf(pubs []*catalog.Publication) []float64 {
	out := make([]float64, 0, len(pubs))
	for _, p := range pubs {
		if r, ok := p.Rating(); ok {
			out = append(out, r)
		}
	}
	return out
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func percentage(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
