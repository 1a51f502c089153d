package matching

import "strings"

// Outcome classifies a thresholded match.
type Outcome string

const (
	// OutcomeAccepted means the match clears the source's threshold and may
	// be persisted as evidence.
	OutcomeAccepted Outcome = "accepted"
	// OutcomeUnmatched means no candidate scored high enough; the name is
	// surfaced for manual review, never silently dropped.
	OutcomeUnmatched Outcome = "unmatched"
	// OutcomeAmbiguous means more than one candidate is equally plausible;
	// the engine reports the conflict instead of guessing. Ambiguity is a
	// first-class outcome requiring human resolution, not an error, and it
	// is remediated differently from unmatched (data cleanup vs. threshold
	// or override tuning), so the two are never merged.
	OutcomeAmbiguous Outcome = "ambiguous"
)

// Decision couples an outcome with the match it was derived from.
// Conflicts is populated only for ambiguous decisions.
type Decision struct {
	Outcome   Outcome
	Result    MatchResult
	Conflicts []Candidate
}

// ApplyThreshold turns a resolver verdict into an outcome. Overrides are
// accepted unconditionally; anything else needs Score >= threshold.
func ApplyThreshold(result MatchResult, threshold float64) Decision {
	if result.Method == MethodOverride {
		return Decision{Outcome: OutcomeAccepted, Result: result}
	}
	if result.Candidate == nil || result.Score < threshold {
		return Decision{Outcome: OutcomeUnmatched, Result: result}
	}
	return Decision{Outcome: OutcomeAccepted, Result: result}
}

// KeyedIndex groups candidates by their exact normalized name, for callers
// that look entities up by key instead of scoring a list. Candidates whose
// names normalize to the empty string are unindexable and omitted.
type KeyedIndex map[string][]Candidate

// BuildIndex indexes candidates by normalized name, preserving input order
// within each key.
func BuildIndex(candidates []Candidate) KeyedIndex {
	idx := make(KeyedIndex, len(candidates))
	for _, c := range candidates {
		key := Normalize(c.Name)
		if key == "" {
			continue
		}
		idx[key] = append(idx[key], c)
	}
	return idx
}

// ResolveKeyed looks a target up by its exact normalized key. A single row
// under the key is accepted as an exact match; several rows sharing the key
// are ambiguous regardless of score, because the engine must not guess
// among equally-keyed rows.
func ResolveKeyed(target string, index KeyedIndex) Decision {
	key := Normalize(strings.TrimSpace(target))
	if key == "" {
		return Decision{Outcome: OutcomeUnmatched, Result: MatchResult{Method: MethodExact}}
	}

	rows := index[key]
	switch len(rows) {
	case 0:
		return Decision{Outcome: OutcomeUnmatched, Result: MatchResult{Method: MethodExact}}
	case 1:
		return Decision{
			Outcome: OutcomeAccepted,
			Result:  MatchResult{Candidate: &rows[0], Score: ScoreExact, Method: MethodExact},
		}
	default:
		return Decision{
			Outcome:   OutcomeAmbiguous,
			Result:    MatchResult{Score: ScoreExact, Method: MethodExact},
			Conflicts: rows,
		}
	}
}
