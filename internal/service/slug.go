package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// slugify folds a display name into a lowercase URL slug. Names that reduce
// to nothing get a generic fallback so rows always carry a usable slug.
func slugify(name string) string {
	s := strings.ToLower(unidecode.Unidecode(name))
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "restaurant"
	}
	return s
}

// uniqueSlug appends a numeric suffix until the slug is free, and reserves
// the result in taken.
func uniqueSlug(base string, taken map[string]struct{}) string {
	slug := base
	for i := 2; ; i++ {
		if _, exists := taken[slug]; !exists {
			break
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	taken[slug] = struct{}{}
	return slug
}
