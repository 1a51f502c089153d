package matching

import (
	"slices"
	"strings"
)

// Empirically tuned scoring constants carried over from the original
// per-source loaders. Treat any change as a behavior change requiring
// re-validation against prior accepted/unmatched counts, not a bug fix.
const (
	// ScoreExact is awarded when two names normalize identically.
	ScoreExact = 0.95
	// scorePrefix3 is awarded when the first three tokens match.
	scorePrefix3 = 0.93
	// scorePrefix2 is awarded when the first two tokens match.
	scorePrefix2 = 0.90
	// scoreOverlap is awarded when enough tokens are shared.
	scoreOverlap = 0.90
	// minOverlapRatio is the shared-token ratio required for scoreOverlap.
	minOverlapRatio = 0.75
)

// nameForm carries the precomputed comparable forms of one raw name so a
// batch resolve normalizes each candidate once, not once per heuristic.
type nameForm struct {
	raw    []string // tokens before stop-word removal, for prefix comparison
	tokens []string // surviving tokens
	norm   string   // surviving tokens space-joined
}

func parseName(name string) nameForm {
	raw := splitTokens(name)
	tokens := dropStopwords(raw)
	return nameForm{raw: raw, tokens: tokens, norm: strings.Join(tokens, " ")}
}

// Score computes similarity between two raw names in [0,1]. It takes the
// maximum of several independent heuristics rather than a blend: any one
// strong signal suffices, because character similarity alone under-scores
// true matches that differ by a trailing qualifier or token reordering.
// If either name normalizes to the empty string the score is 0, so names
// made of nothing but stop-words can never match.
func Score(a, b string) float64 {
	return scoreForms(parseName(a), parseName(b))
}

func scoreForms(a, b nameForm) float64 {
	if a.norm == "" || b.norm == "" {
		return 0
	}
	if a.norm == b.norm {
		return ScoreExact
	}

	score := Ratio(a.norm, b.norm)
	if s := prefixScore(a.raw, b.raw); s > score {
		score = s
	}
	if s := overlapScore(a.tokens, b.tokens); s > score {
		score = s
	}
	return score
}

// prefixScore compares leading tokens. A full three-token prefix match is a
// stronger signal than a two-token one; single-token prefixes are too weak
// to count. It looks at tokens before stop-word removal, so location
// qualifiers after a generic-word prefix ("Kebab House ...") still line up.
func prefixScore(aTokens, bTokens []string) float64 {
	aPrefix := aTokens[:min(3, len(aTokens))]
	bPrefix := bTokens[:min(3, len(bTokens))]
	if len(aPrefix) >= 2 && slices.Equal(aPrefix, bPrefix) {
		return scorePrefix3
	}
	if len(aTokens) >= 2 && len(bTokens) >= 2 && slices.Equal(aTokens[:2], bTokens[:2]) {
		return scorePrefix2
	}
	return 0
}

// overlapScore rewards names sharing most of their surviving tokens
// regardless of order. Both sides need at least two tokens; the ratio is
// distinct shared tokens over the shorter token count.
func overlapScore(aTokens, bTokens []string) float64 {
	if len(aTokens) < 2 || len(bTokens) < 2 {
		return 0
	}

	seen := make(map[string]struct{}, len(aTokens))
	for _, t := range aTokens {
		seen[t] = struct{}{}
	}
	shared := make(map[string]struct{})
	for _, t := range bTokens {
		if _, ok := seen[t]; ok {
			shared[t] = struct{}{}
		}
	}

	ratio := float64(len(shared)) / float64(min(len(aTokens), len(bTokens)))
	if ratio >= minOverlapRatio {
		return scoreOverlap
	}
	return 0
}
