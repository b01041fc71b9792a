package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/mrlokans/shelf/internal/catalog"
)

// Pace returns the share of the annual goal, in percent, that should be
// complete by now.
type Pace func(now time.Time) float64

// DailyPace expects progress proportional to the days elapsed in the year,
// counting today.
func DailyPace(now time.Time) float64 {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := start.AddDate(1, 0, 0).Sub(start).Hours() / 24
	return float64(now.YearDay()) / days * 100
}

// MonthlyPace expects progress only for fully elapsed months.
func MonthlyPace(now time.Time) float64 {
	return float64(now.Month()-1) / 12 * 100
}

// ParsePace maps a configuration value to a Pace. An empty name selects DailyPace.
func ParsePace(name string) (Pace, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "daily":
		return DailyPace, nil
	case "monthly":
		return MonthlyPace, nil
	}
	return nil, fmt.Errorf("unknown goal pace %q (expected daily or monthly)", name)
}

// GoalProgress describes how far the reader is towards the annual goal.
type GoalProgress struct {
	Year             int     `json:"year"`
	Goal             int     `json:"goal"`
	Completed        int     `json:"completed"`
	Remaining        int     `json:"remaining"`
	Percentage       float64 `json:"percentage"`
	ExpectedProgress float64 `json:"expected_progress"`
	OnTrack          bool    `json:"on_track"`
}

// AnnualGoalProgress measures progress for the current year using DailyPace.
func AnnualGoalProgress(c *catalog.Collection, cfg *catalog.Configuration) GoalProgress {
	return AnnualGoalProgressAt(c, cfg, catalog.Now(), DailyPace)
}

// AnnualGoalProgressAt measures progress for the year of now.
func AnnualGoalProgressAt(c *catalog.Collection, cfg *catalog.Configuration, now time.Time, pace Pace) GoalProgress {
	return goalProgress(c.ListAll(), cfg, now, pace)
}

func goalProgress(pubs []*catalog.Publication, cfg *catalog.Configuration, now time.Time, pace Pace) GoalProgress {
	if pace == nil {
		pace = DailyPace
	}
	goal := cfg.AnnualGoal()
	completed := len(finishedIn(pubs, now.Year()))
	remaining := goal - completed
	if remaining < 0 {
		remaining = 0
	}
	pct := percentage(completed, goal)
	expected := pace(now)
	return GoalProgress{
		Year:             now.Year(),
		Goal:             goal,
		Completed:        completed,
		Remaining:        remaining,
		Percentage:       pct,
		ExpectedProgress: expected,
		OnTrack:          pct >= expected,
	}
}

func finishedIn(pubs []*catalog.Publication, year int) []*catalog.Publication {
	out := []*catalog.Publication{}
	for _, p := range pubs {
		if end, ok := p.EndReadDate(); ok && end.Year() == year {
			out = append(out, p)
		}
	}
	return out
}
