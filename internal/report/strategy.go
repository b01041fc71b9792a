package report

import (
	"fmt"

	"github.com/mrlokans/shelf/internal/catalog"
)

// Strategy is a named report that can be generated and rendered as text.
type Strategy interface {
	Name() string
	Description() string
	Generate(pubs []*catalog.Publication, cfg *catalog.Configuration) (any, error)
	Format(data any) string
}

// EvaluationStrategy reports rating statistics.
type EvaluationStrategy struct{}

func (EvaluationStrategy) Name() string        { return "evaluation" }
func (EvaluationStrategy) Description() string { return "Rating statistics and distribution" }

func (EvaluationStrategy) Generate(pubs []*catalog.Publication, _ *catalog.Configuration) (any, error) {
	return EvaluationStatistics(pubs), nil
}

func (EvaluationStrategy) Format(data any) string {
	ev, ok := data.(Evaluation)
	if !ok {
		return unsupported(data)
	}
	return RenderEvaluation(ev)
}

// TopRatedStrategy lists the best rated publications.
type TopRatedStrategy struct {
	Limit int
}

func (TopRatedStrategy) Name() string        { return "top" }
func (TopRatedStrategy) Description() string { return "Best rated publications" }

func (s TopRatedStrategy) Generate(pubs []*catalog.Publication, _ *catalog.Configuration) (any, error) {
	limit := s.Limit
	if limit == 0 {
		limit = DefaultTopN
	}
	return topRated(pubs, limit), nil
}

func (TopRatedStrategy) Format(data any) string {
	pubs, ok := data.([]*catalog.Publication)
	if !ok {
		return unsupported(data)
	}
	return RenderTopRated(pubs)
}

// ProgressStrategy reports progress towards the annual goal. It needs a configuration.
type ProgressStrategy struct{}

func (ProgressStrategy) Name() string        { return "progress" }
func (ProgressStrategy) Description() string { return "Annual reading goal progress" }

func (ProgressStrategy) Generate(pubs []*catalog.Publication, cfg *catalog.Configuration) (any, error) {
	if cfg == nil {
		return nil, ErrConfigurationRequired
	}
	return ProgressReport(pubs, cfg), nil
}

func (ProgressStrategy) Format(data any) string {
	p, ok := data.(Progress)
	if !ok {
		return unsupported(data)
	}
	return RenderProgress(p)
}

// Strategies returns every available strategy in display order.
func Strategies() []Strategy {
	return []Strategy{
		EvaluationStrategy{},
		TopRatedStrategy{Limit: DefaultTopN},
		ProgressStrategy{},
	}
}

// Lookup finds a strategy by name.
func Lookup(name string) (Strategy, bool) {
	for _, s := range Strategies() {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

func unsupported(data any) string {
	return fmt.Sprintf("unsupported report data: %T", data)
}
