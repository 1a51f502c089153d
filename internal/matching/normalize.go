// Package matching implements the restaurant name matching engine shared by
// every source loader. Names arrive as noisy free text (punctuation,
// diacritics, generic suffixes, word-order variation); the engine resolves
// them against the catalog with an override shortcut, an exact-normalized
// shortcut, and a fuzzy fallback. It is a pure in-memory computation: no
// I/O, no shared state, safe for concurrent use.
package matching

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// stopwords are generic restaurant-industry terms that carry no identity.
// Changing this set changes match outcomes across all sources.
var stopwords = map[string]struct{}{
	"restaurant":  {},
	"restaurants": {},
	"bar":         {},
	"cafe":        {},
	"bistro":      {},
	"kitchen":     {},
	"grill":       {},
	"grille":      {},
	"pub":         {},
	"the":         {},
	"and":         {},
	"lounge":      {},
	"house":       {},
	"eatery":      {},
}

// Normalize canonicalizes a raw name for comparison: diacritics folded to
// ASCII, lowercased, "&" expanded to "and", everything outside [a-z0-9]
// collapsed to spaces, stop-words dropped, surviving tokens rejoined with
// single spaces. The result may be empty when every token was a stop-word;
// callers must treat an empty normalized name as unmatchable.
func Normalize(name string) string {
	return strings.Join(Tokenize(name), " ")
}

// Tokenize returns the surviving tokens of a normalized name, in order.
func Tokenize(name string) []string {
	return dropStopwords(splitTokens(name))
}

// splitTokens lowercases, folds diacritics, expands "&" and splits on runs
// of non-alphanumeric characters, keeping stop-words.
func splitTokens(name string) []string {
	text := strings.ToLower(unidecode.Unidecode(name))
	text = strings.ReplaceAll(text, "&", " and ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

func dropStopwords(fields []string) []string {
	tokens := make([]string, 0, len(fields))
	for _, t := range fields {
		if _, skip := stopwords[t]; skip {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}
