package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreSelf(t *testing.T) {
	names := []string{
		"Vij's Restaurant",
		"Kebab House Downtown",
		"Afghan Horsemen",
		"A",
	}
	for _, n := range names {
		assert.GreaterOrEqual(t, Score(n, n), 0.95, "Score(%q, %q)", n, n)
	}
}

func TestScoreEmptyNormalized(t *testing.T) {
	// A name made of nothing but stop-words must never match anything,
	// whatever the other side looks like.
	for _, other := range []string{"Vij's Restaurant", "The Bar", ""} {
		assert.Zero(t, Score("The Restaurant & Bar", other))
		assert.Zero(t, Score(other, "The Restaurant & Bar"))
	}
}

func TestScoreHeuristics(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		min  float64
		max  float64
	}{
		{
			name: "exact after normalization",
			a:    "Vij's",
			b:    "Vij's Restaurant",
			min:  0.95,
			max:  0.95,
		},
		{
			name: "two-token prefix with location qualifiers",
			a:    "Kebab House Downtown",
			b:    "Kebab House Main St",
			min:  0.90,
			max:  0.93,
		},
		{
			name: "three-token prefix",
			a:    "Golden Dragon Palace Downtown",
			b:    "Golden Dragon Palace on Main",
			min:  0.93,
			max:  0.93,
		},
		{
			name: "token overlap despite reordering",
			a:    "Spice Hut Indian Cuisine",
			b:    "Indian Spice Hut",
			min:  0.90,
			max:  0.93,
		},
		{
			name: "unrelated names",
			a:    "Sushi Garden",
			b:    "Afghan Horsemen",
			min:  0.0,
			max:  0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Score(tt.a, tt.b)
			assert.GreaterOrEqual(t, s, tt.min)
			assert.LessOrEqual(t, s, tt.max)
		})
	}
}

func TestScoreSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Kebab House Downtown", "Kebab House Main St"},
		{"Spice Hut Indian Cuisine", "Indian Spice Hut"},
		{"Vij's", "Vij's Restaurant"},
		{"Sushi Garden", "Afghan Horsemen"},
	}
	for _, p := range pairs {
		assert.InDelta(t, Score(p[0], p[1]), Score(p[1], p[0]), 1e-9,
			"Score(%q,%q) should be symmetric", p[0], p[1])
	}
}

func TestScoreBounds(t *testing.T) {
	pairs := [][2]string{
		{"Vij's", "Vij's Restaurant"},
		{"Kebab House Downtown", "Kebab House Main St"},
		{"", "anything"},
		{"The Grill", "The Bar"},
	}
	for _, p := range pairs {
		s := Score(p[0], p[1])
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}
