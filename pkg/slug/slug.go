package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given name. Product IDs in
// the catalog seed default to the slug of their name.
//
// Examples:
//   - "Mango Juice" → "mango-juice"
//   - "Eggs (dozen)" → "eggs-dozen"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugRegexp.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
