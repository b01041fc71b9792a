package report

import (
	"math"
	"sort"

	"github.com/mrlokans/shelf/internal/catalog"
)

// RatingBucket is one histogram entry: how many publications got Rating.
type RatingBucket struct {
	Rating float64 `json:"rating"`
	Count  int     `json:"count"`
}

// Evaluation summarises the ratings given so far.
// Mean and StdDev are rounded to two decimals.
type Evaluation struct {
	Count      int            `json:"total_evaluated"`
	Total      int            `json:"total_publications"`
	Mean       float64        `json:"average"`
	StdDev     float64        `json:"std_dev"`
	Min        float64        `json:"min_rating"`
	Max        float64        `json:"max_rating"`
	Histogram  []RatingBucket `json:"distribution"`
	MostCommon *RatingBucket  `json:"most_common"`
}

// EvaluationStatistics computes rating statistics over the rated publications in pubs.
// The standard deviation is the sample deviation, and 0 for a single rating.
// Ties for the most common rating go to the rating seen first.
func EvaluationStatistics(pubs []*catalog.Publication) Evaluation {
	ratings := ratingsOf(pubs)
	ev := Evaluation{
		Count:     len(ratings),
		Total:     len(pubs),
		Histogram: []RatingBucket{},
	}
	if len(ratings) == 0 {
		return ev
	}

	mean := sum(ratings) / float64(len(ratings))
	ev.Mean = round(mean, 2)
	if len(ratings) > 1 {
		var sq float64
		for _, r := range ratings {
			sq += (r - mean) * (r - mean)
		}
		ev.StdDev = round(math.Sqrt(sq/float64(len(ratings)-1)), 2)
	}

	ev.Min, ev.Max = ratings[0], ratings[0]
	counts := make(map[float64]int)
	order := make([]float64, 0, len(ratings))
	for _, r := range ratings {
		ev.Min = math.Min(ev.Min, r)
		ev.Max = math.Max(ev.Max, r)
		if counts[r] == 0 {
			order = append(order, r)
		}
		counts[r]++
	}

	best := RatingBucket{Rating: order[0], Count: counts[order[0]]}
	for _, r := range order[1:] {
		if counts[r] > best.Count {
			best = RatingBucket{Rating: r, Count: counts[r]}
		}
	}
	ev.MostCommon = &best

	sort.Float64s(order)
	for _, r := range order {
		ev.Histogram = append(ev.Histogram, RatingBucket{Rating: r, Count: counts[r]})
	}
	return ev
}
