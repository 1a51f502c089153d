package service

import (
	"sort"

	"halal-atlas/backend/internal/matching"

	"github.com/agnivade/levenshtein"
)

const defaultSuggestionLimit = 3

// SuggestService ranks the nearest candidate names for a target that failed
// to resolve. The hints are for manual triage only and never feed back into
// match decisions.
type SuggestService struct {
	limit int
}

// NewSuggestService creates a suggest service with the default hint limit
func NewSuggestService() *SuggestService {
	return &SuggestService{limit: defaultSuggestionLimit}
}

// Nearest returns up to the configured number of candidate names ordered by
// edit distance between normalized forms. Candidates whose names normalize
// to the empty string are skipped.
func (s *SuggestService) Nearest(name string, candidates []matching.Candidate) []string {
	target := matching.Normalize(name)
	if target == "" {
		return nil
	}

	type scored struct {
		name     string
		distance int
	}
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		norm := matching.Normalize(c.Name)
		if norm == "" {
			continue
		}
		ranked = append(ranked, scored{name: c.Name, distance: levenshtein.ComputeDistance(target, norm)})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].distance < ranked[j].distance })

	n := s.limit
	if len(ranked) < n {
		n = len(ranked)
	}
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = ranked[i].name
	}
	return names
}
