package scrape

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"halal-atlas/backend/internal/logger"

	"github.com/PuerkitoBio/goquery"
)

const foodiesListingsPath = "/restaurants/"

// FoodiesListing is one scraped Vancouver Foodies directory card.
type FoodiesListing struct {
	Name           string
	URL            string
	Badges         []string
	HalalCertified bool
	AlcoholServed  bool
}

// FoodiesScraper walks the paginated Vancouver Foodies directory
type FoodiesScraper struct {
	client  *Client
	baseURL string
}

// NewFoodiesScraper creates a scraper rooted at the directory's base URL
func NewFoodiesScraper(client *Client, baseURL string) *FoodiesScraper {
	return &FoodiesScraper{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// FetchAll retrieves every directory page and returns the listings,
// de-duplicated by URL (later pages win).
func (s *FoodiesScraper) FetchAll(ctx context.Context) ([]FoodiesListing, error) {
	firstHTML, err := s.client.Fetch(ctx, s.baseURL+foodiesListingsPath)
	if err != nil {
		return nil, err
	}

	firstDoc, err := goquery.NewDocumentFromReader(strings.NewReader(firstHTML))
	if err != nil {
		return nil, fmt.Errorf("parse listings page: %w", err)
	}

	listings := s.parseListingCards(firstDoc)
	totalPages := discoverTotalPages(firstDoc)
	logger.Debug().Int("total_pages", totalPages).Msg("discovered foodies pagination")

	for page := 2; page <= totalPages; page++ {
		url := fmt.Sprintf("%s%spage/%d/", s.baseURL, foodiesListingsPath, page)
		html, err := s.client.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return nil, fmt.Errorf("parse listings page %d: %w", page, err)
		}
		listings = append(listings, s.parseListingCards(doc)...)
	}

	return dedupeByURL(listings), nil
}

// parseListingCards extracts listing cards from one directory page
func (s *FoodiesScraper) parseListingCards(doc *goquery.Document) []FoodiesListing {
	var listings []FoodiesListing
	doc.Find("article.hp-listing.hp-listing--view-block").Each(func(_ int, card *goquery.Selection) {
		nameEl := card.Find("h4.hp-listing__title > a").First()
		if nameEl.Length() == 0 {
			return
		}
		name := collapseText(nameEl.Text())
		if name == "" {
			return
		}

		href := nameEl.AttrOr("href", "")
		url := href
		if !strings.HasPrefix(href, "http") {
			url = s.baseURL + href
		}

		alcohol := card.Find(".hp-listing__attribute--alcohol").Length() > 0
		bcma := card.Find(".hp-listing__attribute--bcma-certified").Length() > 0

		var badges []string
		if bcma {
			badges = append(badges, "BCMA Certified")
		}
		if alcohol {
			badges = append(badges, "Alcohol Served")
		}

		listings = append(listings, FoodiesListing{
			Name:           name,
			URL:            url,
			Badges:         badges,
			HalalCertified: bcma,
			AlcoholServed:  alcohol,
		})
	})
	return listings
}

// discoverTotalPages reads the highest page number from pagination links
func discoverTotalPages(doc *goquery.Document) int {
	total := 1
	doc.Find(".pagination .page-numbers").Each(func(_ int, link *goquery.Selection) {
		if n, err := strconv.Atoi(strings.TrimSpace(link.Text())); err == nil && n > total {
			total = n
		}
	})
	return total
}

func dedupeByURL(listings []FoodiesListing) []FoodiesListing {
	index := make(map[string]int, len(listings))
	out := make([]FoodiesListing, 0, len(listings))
	for _, l := range listings {
		if i, seen := index[l.URL]; seen {
			out[i] = l
			continue
		}
		index[l.URL] = len(out)
		out = append(out, l)
	}
	return out
}

// collapseText flattens element text to single-spaced form
func collapseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
