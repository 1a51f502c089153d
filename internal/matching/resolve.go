package matching

import "strings"

// Method identifies how a name was resolved.
type Method string

const (
	MethodOverride Method = "override"
	MethodExact    Method = "exact"
	MethodFuzzy    Method = "fuzzy"
)

// Candidate is one catalog entity offered to the resolver. The engine never
// mutates candidates; callers fetch the full candidate set once per run and
// hold it immutable for the duration.
type Candidate struct {
	ID   string
	Name string
}

// MatchResult is the resolver's verdict for a single target name.
// Candidate is nil when nothing matched at all.
type MatchResult struct {
	Candidate *Candidate
	Score     float64
	Method    Method
}

// Overrides pins specific source names to specific catalog names, keyed
// case- and whitespace-insensitively. An override bypasses scoring entirely.
type Overrides map[string]string

// NewOverrides builds an override map from raw rows. Entries with an empty
// key or value are malformed and skipped rather than treated as fatal; the
// skipped count is returned so callers can log it.
func NewOverrides(rows map[string]string) (Overrides, int) {
	o := make(Overrides, len(rows))
	skipped := 0
	for key, target := range rows {
		k := overrideKey(key)
		v := overrideKey(target)
		if k == "" || v == "" {
			skipped++
			continue
		}
		o[k] = v
	}
	return o, skipped
}

// Lookup returns the pinned catalog name for a source name, if any.
func (o Overrides) Lookup(name string) (string, bool) {
	target, ok := o[overrideKey(name)]
	return target, ok
}

func overrideKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Resolver matches target names against a fixed candidate list, normalizing
// each candidate once up front. Build one per batch run.
type Resolver struct {
	candidates []Candidate
	forms      []nameForm
	overrides  Overrides
}

// NewResolver precomputes candidate forms. The candidate slice is not
// copied; it must stay unmodified for the resolver's lifetime.
func NewResolver(candidates []Candidate, overrides Overrides) *Resolver {
	forms := make([]nameForm, len(candidates))
	for i := range candidates {
		forms[i] = parseName(candidates[i].Name)
	}
	return &Resolver{candidates: candidates, forms: forms, overrides: overrides}
}

// Resolve matches a target name against the candidate list.
// Precedence: a pinned override (score 1.0, authoritative even when another
// candidate scores higher structurally), then an exact normalized match,
// then the highest-scoring fuzzy candidate. When several candidates attain
// the maximum score, the first one in the supplied order wins; this
// tie-break is deliberate, so callers must supply candidates in stable
// catalog order. An empty candidate list yields a nil candidate with score
// 0, never an error.
func (r *Resolver) Resolve(target string) MatchResult {
	if want, ok := r.overrides.Lookup(target); ok {
		for i := range r.candidates {
			if overrideKey(r.candidates[i].Name) == want {
				return MatchResult{Candidate: &r.candidates[i], Score: 1.0, Method: MethodOverride}
			}
		}
	}

	form := parseName(target)

	if form.norm != "" {
		for i := range r.candidates {
			if r.forms[i].norm == form.norm {
				return MatchResult{Candidate: &r.candidates[i], Score: ScoreExact, Method: MethodExact}
			}
		}
	}

	best := MatchResult{Method: MethodFuzzy}
	for i := range r.candidates {
		if s := scoreForms(form, r.forms[i]); s > best.Score {
			best.Score = s
			best.Candidate = &r.candidates[i]
		}
	}
	return best
}

// Resolve is the one-shot form of Resolver.Resolve for callers matching a
// single name.
func Resolve(target string, candidates []Candidate, overrides Overrides) MatchResult {
	return NewResolver(candidates, overrides).Resolve(target)
}
