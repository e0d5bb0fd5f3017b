package util

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^\p{L}\p{N}-]+`)
	slugDashRuns     = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe identifier from a display name.
// Letters and digits of any script are kept; everything else collapses to
// single hyphens.
func Slugify(name string) string {
	slug := strings.TrimSpace(name)
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	slug = slugDashRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return strings.ToLower(slug)
}
