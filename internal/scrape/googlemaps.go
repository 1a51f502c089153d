package scrape

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"halal-atlas/backend/internal/matching"

	"github.com/PuerkitoBio/goquery"
)

// MapsEntry is one restaurant entry extracted from a saved Google Maps list
// HTML export.
type MapsEntry struct {
	Name              string
	Normalized        string
	Rating            *float64
	ReviewsCount      *int32
	Price             *string
	CategoryName      *string
	ImageURL          *string
	PermanentlyClosed bool
}

var (
	controlCharRegex = regexp.MustCompile(`[\x00-\x1f\x7f]`)
	reviewsRegex     = regexp.MustCompile(`\(([^)]+)\)`)
)

// ParseListNames extracts just the entry names from a saved list export,
// de-duplicated case-insensitively in first-seen order.
func ParseListNames(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse maps list: %w", err)
	}

	seen := make(map[string]struct{})
	var names []string
	doc.Find("div.fontHeadlineSmall.rZF81c").Each(func(_ int, node *goquery.Selection) {
		name := cleanText(collapseText(node.Text()))
		if name == "" {
			return
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		names = append(names, name)
	})
	return names, nil
}

// ParseMapsList extracts full entries (rating, reviews, price, category,
// image, closure flag) from a saved list export.
func ParseMapsList(html string) ([]MapsEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse maps list: %w", err)
	}

	var entries []MapsEntry
	doc.Find("button.SMP2wb").Each(func(_ int, btn *goquery.Selection) {
		name := cleanText(collapseText(btn.Find("div.fontHeadlineSmall.rZF81c").First().Text()))
		if name == "" {
			return
		}

		entry := MapsEntry{
			Name:       name,
			Normalized: matching.Normalize(name),
		}

		if ratingText := strings.TrimSpace(btn.Find("span.MW4etd").First().Text()); ratingText != "" {
			if rating, err := strconv.ParseFloat(ratingText, 64); err == nil {
				entry.Rating = &rating
			}
		}

		entry.ReviewsCount = parseReviews(strings.TrimSpace(btn.Find("span.UY7F9").First().Text()))

		var infoLines []string
		btn.Find("div.IIrLbb").Each(func(_ int, node *goquery.Selection) {
			infoLines = append(infoLines, cleanText(collapseText(node.Text())))
		})
		switch {
		case len(infoLines) >= 2:
			entry.Price, entry.CategoryName = parsePriceAndCategory(infoLines[1])
		case len(infoLines) == 1:
			entry.Price, entry.CategoryName = parsePriceAndCategory(infoLines[0])
		}

		if src, ok := btn.Find("img.WkIe8").First().Attr("src"); ok && src != "" {
			entry.ImageURL = &src
		}

		entry.PermanentlyClosed = strings.Contains(cleanText(collapseText(btn.Text())), "Permanently closed")

		entries = append(entries, entry)
	})
	return entries, nil
}

// ConsolidateEntries merges duplicate entries sharing a normalized name.
// The row with the most reviews wins; missing fields are backfilled from
// the losers, and a closed flag from any duplicate sticks. Entries whose
// names normalize to the empty string cannot be keyed and are dropped.
func ConsolidateEntries(entries []MapsEntry) []MapsEntry {
	index := make(map[string]int, len(entries))
	out := make([]MapsEntry, 0, len(entries))

	for _, entry := range entries {
		key := entry.Normalized
		if key == "" {
			continue
		}
		i, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, entry)
			continue
		}

		current := &out[i]
		if reviewCount(entry.ReviewsCount) > reviewCount(current.ReviewsCount) {
			closed := current.PermanentlyClosed || entry.PermanentlyClosed
			*current = entry
			current.PermanentlyClosed = closed
			continue
		}

		if current.Price == nil && entry.Price != nil {
			current.Price = entry.Price
		}
		if current.CategoryName == nil && entry.CategoryName != nil {
			current.CategoryName = entry.CategoryName
		}
		if current.ImageURL == nil && entry.ImageURL != nil {
			current.ImageURL = entry.ImageURL
		}
		if entry.PermanentlyClosed {
			current.PermanentlyClosed = true
		}
	}
	return out
}

func reviewCount(n *int32) int32 {
	if n == nil {
		return 0
	}
	return *n
}

// parseReviews extracts a review count like "(1,204)"
func parseReviews(text string) *int32 {
	if text == "" {
		return nil
	}
	m := reviewsRegex.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	numeric := strings.TrimSpace(strings.ReplaceAll(m[1], ",", ""))
	n, err := strconv.ParseInt(numeric, 10, 32)
	if err != nil {
		return nil
	}
	count := int32(n)
	return &count
}

// parsePriceAndCategory splits an info line like "$$ · Pakistani" into its
// price and category parts. Closed entries carry neither.
func parsePriceAndCategory(infoLine string) (price, category *string) {
	if infoLine == "" || strings.Contains(infoLine, "Permanently closed") {
		return nil, nil
	}
	for _, part := range strings.Split(infoLine, "·") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "$") {
			p := part
			price = &p
		} else {
			c := part
			category = &c
		}
	}
	return price, category
}

// cleanText strips control characters and trims the result
func cleanText(value string) string {
	return strings.TrimSpace(controlCharRegex.ReplaceAllString(value, ""))
}
