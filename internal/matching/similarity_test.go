package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{"identical", "kebab palace", "kebab palace", 1.0},
		{"both empty", "", "", 1.0},
		{"one empty", "kebab", "", 0.0},
		{"disjoint", "abc", "xyz", 0.0},
		{"partial overlap", "abcd", "bcde", 0.75}, // block "bcd": 2*3/8
		{"repeated blocks", "abab", "ab", 2 * 2.0 / 6.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Ratio(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"kebab downtown", "kebab main st"},
		{"golden dragon", "dragon golden"},
		{"a", "abcdefg"},
		// Tie-break-sensitive pair: the longest-block recursion used to pick
		// different flanks per direction here (0.2222 vs 0.2963).
		{"sushi garden", "afghan horsemen"},
	}
	for _, p := range pairs {
		assert.InDelta(t, Ratio(p[0], p[1]), Ratio(p[1], p[0]), 1e-9,
			"Ratio(%q,%q) should be symmetric", p[0], p[1])
	}
}

func TestRatioBounds(t *testing.T) {
	pairs := [][2]string{
		{"sushi garden", "sushi garden richmond"},
		{"x", "y"},
		{"", "nonempty"},
	}
	for _, p := range pairs {
		r := Ratio(p[0], p[1])
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, 1.0)
	}
}
