package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const foodiesPageHTML = `
<html><body>
<article class="hp-listing hp-listing--view-block">
  <h4 class="hp-listing__title"><a href="/listing/zarak/">Zarak   by Afghan Kitchen</a></h4>
  <div class="hp-listing__attribute--bcma-certified">BCMA</div>
</article>
<article class="hp-listing hp-listing--view-block">
  <h4 class="hp-listing__title"><a href="https://vancouverfoodies.ca/listing/tandoori-kona/">Tandoori Kona</a></h4>
  <div class="hp-listing__attribute--alcohol">Alcohol</div>
</article>
<article class="hp-listing hp-listing--view-block">
  <h4 class="hp-listing__title"></h4>
</article>
<nav class="pagination">
  <a class="page-numbers">1</a>
  <a class="page-numbers">2</a>
  <a class="page-numbers">7</a>
  <a class="page-numbers">Next</a>
</nav>
</body></html>`

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParseListingCards(t *testing.T) {
	s := NewFoodiesScraper(NewClient(0), "https://vancouverfoodies.ca")
	listings := s.parseListingCards(parseDoc(t, foodiesPageHTML))

	require.Len(t, listings, 2)

	assert.Equal(t, "Zarak by Afghan Kitchen", listings[0].Name)
	assert.Equal(t, "https://vancouverfoodies.ca/listing/zarak/", listings[0].URL)
	assert.True(t, listings[0].HalalCertified)
	assert.False(t, listings[0].AlcoholServed)
	assert.Equal(t, []string{"BCMA Certified"}, listings[0].Badges)

	assert.Equal(t, "Tandoori Kona", listings[1].Name)
	assert.Equal(t, "https://vancouverfoodies.ca/listing/tandoori-kona/", listings[1].URL)
	assert.False(t, listings[1].HalalCertified)
	assert.True(t, listings[1].AlcoholServed)
	assert.Equal(t, []string{"Alcohol Served"}, listings[1].Badges)
}

func TestDiscoverTotalPages(t *testing.T) {
	assert.Equal(t, 7, discoverTotalPages(parseDoc(t, foodiesPageHTML)))
	assert.Equal(t, 1, discoverTotalPages(parseDoc(t, "<html><body></body></html>")))
}

func TestDedupeByURL(t *testing.T) {
	listings := []FoodiesListing{
		{Name: "First", URL: "https://example.com/a"},
		{Name: "Second", URL: "https://example.com/b"},
		{Name: "First Updated", URL: "https://example.com/a"},
	}

	deduped := dedupeByURL(listings)
	require.Len(t, deduped, 2)
	// Later duplicates replace earlier ones in place.
	assert.Equal(t, "First Updated", deduped[0].Name)
	assert.Equal(t, "Second", deduped[1].Name)
}
