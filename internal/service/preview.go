package service

import (
	"context"
	"errors"
	"fmt"

	"halal-atlas/backend/internal/matching"
)

// ErrUnknownSource is returned when a preview names a source with no
// configured threshold.
var ErrUnknownSource = errors.New("unknown source")

// PreviewResult is one non-persisting engine run against the catalog.
type PreviewResult struct {
	Name        string              `json:"name"`
	Source      string              `json:"source"`
	Threshold   float64             `json:"threshold"`
	Outcome     matching.Outcome    `json:"outcome"`
	Match       *matching.Candidate `json:"match,omitempty"`
	Score       float64             `json:"score"`
	Method      matching.Method     `json:"method,omitempty"`
	Suggestions []string            `json:"suggestions,omitempty"`
}

// PreviewService runs the matching engine against the current catalog
// without writing anything, so operators can vet a name or tune a
// threshold before a batch run.
type PreviewService struct {
	restaurants catalogReader
	overrides   overrideReader
	suggest     *SuggestService
	configs     []matching.SourceConfig
}

// NewPreviewService creates a preview service over the given source
// configs. The first config is the default when a request names none.
func NewPreviewService(restaurants catalogReader, overrides overrideReader, configs []matching.SourceConfig) *PreviewService {
	return &PreviewService{
		restaurants: restaurants,
		overrides:   overrides,
		suggest:     NewSuggestService(),
		configs:     configs,
	}
}

// Preview resolves one name against the catalog under the named source's
// overrides and threshold. A non-nil threshold overrides the source's
// configured one for this call only.
func (s *PreviewService) Preview(ctx context.Context, name, source string, threshold *float64) (*PreviewResult, error) {
	cfg, err := s.configFor(source)
	if err != nil {
		return nil, err
	}
	if threshold != nil {
		cfg.Threshold = *threshold
	}

	restaurants, err := s.restaurants.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	raw, err := s.overrides.Map(ctx, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("load overrides: %w", err)
	}
	overrides, _ := matching.NewOverrides(raw)

	candidates := make([]matching.Candidate, len(restaurants))
	for i, r := range restaurants {
		candidates[i] = r.AsCandidate()
	}

	decision := cfg.Decide(matching.Resolve(name, candidates, overrides))
	result := &PreviewResult{
		Name:      name,
		Source:    cfg.Source,
		Threshold: cfg.Threshold,
		Outcome:   decision.Outcome,
		Match:     decision.Result.Candidate,
		Score:     decision.Result.Score,
		Method:    decision.Result.Method,
	}
	if decision.Outcome != matching.OutcomeAccepted {
		result.Suggestions = s.suggest.Nearest(name, candidates)
	}
	return result, nil
}

func (s *PreviewService) configFor(source string) (matching.SourceConfig, error) {
	if source == "" && len(s.configs) > 0 {
		return s.configs[0], nil
	}
	for _, cfg := range s.configs {
		if cfg.Source == source {
			return cfg, nil
		}
	}
	return matching.SourceConfig{}, fmt.Errorf("%w: %q", ErrUnknownSource, source)
}
