package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidates(names ...string) []Candidate {
	out := make([]Candidate, len(names))
	for i, n := range names {
		out[i] = Candidate{ID: n, Name: n}
	}
	return out
}

func TestResolveExact(t *testing.T) {
	cands := []Candidate{{ID: "1", Name: "Vij's Restaurant"}}
	result := Resolve("Vij's", cands, nil)

	require.NotNil(t, result.Candidate)
	assert.Equal(t, "1", result.Candidate.ID)
	assert.Equal(t, ScoreExact, result.Score)
	assert.Equal(t, MethodExact, result.Method)
}

func TestResolveEmptyCandidates(t *testing.T) {
	result := Resolve("Totally Unrelated Name", nil, nil)
	assert.Nil(t, result.Candidate)
	assert.Zero(t, result.Score)
}

func TestResolveFuzzy(t *testing.T) {
	cands := candidates("Afghan Horsemen", "Kebab House Main St", "Sushi Garden")
	result := Resolve("Kebab House Downtown", cands, nil)

	require.NotNil(t, result.Candidate)
	assert.Equal(t, "Kebab House Main St", result.Candidate.Name)
	assert.Equal(t, MethodFuzzy, result.Method)
	assert.GreaterOrEqual(t, result.Score, 0.90)
}

func TestResolveOverridePrecedence(t *testing.T) {
	// The override points at a candidate that scores far lower than the
	// structural best; it must still win, with score 1.0.
	cands := candidates("Kebab House Main St", "Golden Horsemen")
	overrides, skipped := NewOverrides(map[string]string{
		"Kebab House Downtown": "  GOLDEN HORSEMEN ",
	})
	require.Zero(t, skipped)

	result := Resolve("Kebab House Downtown", cands, overrides)
	require.NotNil(t, result.Candidate)
	assert.Equal(t, "Golden Horsemen", result.Candidate.Name)
	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, MethodOverride, result.Method)
}

func TestResolveOverrideMissingTargetFallsThrough(t *testing.T) {
	cands := candidates("Kebab House Main St")
	overrides, _ := NewOverrides(map[string]string{
		"Kebab House Downtown": "No Such Listing",
	})

	result := Resolve("Kebab House Downtown", cands, overrides)
	require.NotNil(t, result.Candidate)
	assert.Equal(t, MethodFuzzy, result.Method)
}

func TestResolveTieBreakFirstCandidate(t *testing.T) {
	// Both candidates are exact normalized matches; the first in supplied
	// order must win.
	cands := []Candidate{
		{ID: "first", Name: "Vij's Restaurant"},
		{ID: "second", Name: "Vij's"},
	}
	result := Resolve("Vij's", cands, nil)
	require.NotNil(t, result.Candidate)
	assert.Equal(t, "first", result.Candidate.ID)

	// Same for fuzzy ties.
	fuzzyCands := []Candidate{
		{ID: "a", Name: "Kebab House Main St"},
		{ID: "b", Name: "Kebab House Main Street"},
	}
	fuzzy := Resolve("Kebab House Downtown", fuzzyCands, nil)
	require.NotNil(t, fuzzy.Candidate)
	assert.Equal(t, "a", fuzzy.Candidate.ID)
}

func TestResolveOrderIndependencePerTarget(t *testing.T) {
	// Resolving the same targets in any invocation order yields identical
	// per-target results.
	cands := candidates("Afghan Horsemen", "Kebab House Main St", "Sushi Garden", "Vij's Restaurant")
	overrides, _ := NewOverrides(map[string]string{"zam zam": "sushi garden"})
	targets := []string{"Vij's", "Kebab House Downtown", "Zam Zam", "Nowhere Else"}

	r := NewResolver(cands, overrides)
	forward := make(map[string]MatchResult, len(targets))
	for _, target := range targets {
		forward[target] = r.Resolve(target)
	}
	for i := len(targets) - 1; i >= 0; i-- {
		assert.Equal(t, forward[targets[i]], r.Resolve(targets[i]))
	}
}

func TestNewOverridesSkipsMalformed(t *testing.T) {
	overrides, skipped := NewOverrides(map[string]string{
		"Good Key":   "Good Target",
		"":           "orphan target",
		"empty goal": "   ",
	})
	assert.Equal(t, 2, skipped)
	assert.Len(t, overrides, 1)

	target, ok := overrides.Lookup("  good KEY ")
	assert.True(t, ok)
	assert.Equal(t, "good target", target)
}
