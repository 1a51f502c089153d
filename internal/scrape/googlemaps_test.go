package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mapsListHTML = `
<html><body>
<button class="SMP2wb">
  <div class="fontHeadlineSmall rZF81c">Zam Zam Restaurant</div>
  <span class="MW4etd">4.3</span>
  <span class="UY7F9">(1,204)</span>
  <div class="IIrLbb">Zam Zam Restaurant</div>
  <div class="IIrLbb">$$ · Pakistani</div>
  <img class="WkIe8" src="https://example.com/zamzam.jpg"/>
</button>
<button class="SMP2wb">
  <div class="fontHeadlineSmall rZF81c">Nusa Coffee</div>
  <span class="MW4etd">4.8</span>
  <span class="UY7F9">(87)</span>
  <div class="IIrLbb">Permanently closed</div>
</button>
<button class="SMP2wb">
  <div class="fontHeadlineSmall rZF81c"></div>
</button>
</body></html>`

func TestParseMapsList(t *testing.T) {
	entries, err := ParseMapsList(mapsListHTML)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	zamzam := entries[0]
	assert.Equal(t, "Zam Zam Restaurant", zamzam.Name)
	assert.Equal(t, "zam zam", zamzam.Normalized)
	require.NotNil(t, zamzam.Rating)
	assert.InDelta(t, 4.3, *zamzam.Rating, 1e-9)
	require.NotNil(t, zamzam.ReviewsCount)
	assert.Equal(t, int32(1204), *zamzam.ReviewsCount)
	require.NotNil(t, zamzam.Price)
	assert.Equal(t, "$$", *zamzam.Price)
	require.NotNil(t, zamzam.CategoryName)
	assert.Equal(t, "Pakistani", *zamzam.CategoryName)
	require.NotNil(t, zamzam.ImageURL)
	assert.Equal(t, "https://example.com/zamzam.jpg", *zamzam.ImageURL)
	assert.False(t, zamzam.PermanentlyClosed)

	nusa := entries[1]
	assert.Equal(t, "Nusa Coffee", nusa.Name)
	assert.True(t, nusa.PermanentlyClosed)
	assert.Nil(t, nusa.Price)
	assert.Nil(t, nusa.CategoryName)
}

func TestParseListNames(t *testing.T) {
	html := `
<div class="fontHeadlineSmall rZF81c">Zam Zam Restaurant</div>
<div class="fontHeadlineSmall rZF81c">ZAM ZAM RESTAURANT</div>
<div class="fontHeadlineSmall rZF81c">Tandoori Kona</div>
<div class="fontHeadlineSmall rZF81c"></div>`

	names, err := ParseListNames(html)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zam Zam Restaurant", "Tandoori Kona"}, names)
}

func TestConsolidateEntries(t *testing.T) {
	price := "$$"
	category := "Pakistani"
	image := "https://example.com/a.jpg"
	few := int32(10)
	many := int32(500)

	entries := []MapsEntry{
		{Name: "Zam Zam", Normalized: "zam zam", ReviewsCount: &few, Price: &price},
		{Name: "Zam Zam Restaurant", Normalized: "zam zam", ReviewsCount: &many, CategoryName: &category},
		{Name: "Zam Zam Cafe", Normalized: "zam zam", ImageURL: &image, PermanentlyClosed: true},
		{Name: "The Restaurant", Normalized: ""}, // unkeyable, dropped
		{Name: "Tandoori Kona", Normalized: "tandoori kona"},
	}

	merged := ConsolidateEntries(entries)
	require.Len(t, merged, 2)

	zamzam := merged[0]
	// The row with the most reviews wins; missing fields are backfilled
	// and the closed flag from any duplicate sticks.
	assert.Equal(t, "Zam Zam Restaurant", zamzam.Name)
	assert.Equal(t, many, *zamzam.ReviewsCount)
	assert.Equal(t, category, *zamzam.CategoryName)
	assert.Equal(t, image, *zamzam.ImageURL)
	assert.True(t, zamzam.PermanentlyClosed)

	assert.Equal(t, "Tandoori Kona", merged[1].Name)
}

func TestParseReviews(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *int32
	}{
		{"with separator", "(1,204)", int32Ptr(1204)},
		{"plain", "(87)", int32Ptr(87)},
		{"not numeric", "(many)", nil},
		{"no parens", "87", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseReviews(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.expected, *got)
		})
	}
}

func TestParsePriceAndCategory(t *testing.T) {
	price, category := parsePriceAndCategory("$$ · Pakistani")
	require.NotNil(t, price)
	require.NotNil(t, category)
	assert.Equal(t, "$$", *price)
	assert.Equal(t, "Pakistani", *category)

	price, category = parsePriceAndCategory("Permanently closed")
	assert.Nil(t, price)
	assert.Nil(t, category)

	price, category = parsePriceAndCategory("Afghan")
	assert.Nil(t, price)
	require.NotNil(t, category)
	assert.Equal(t, "Afghan", *category)
}

func int32Ptr(n int32) *int32 { return &n }
