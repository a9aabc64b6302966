// Package identity resolves the many spellings of a team (full name,
// nickname, three-letter alias) to the keys used by rating lookups.
package identity

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases s, folds diacritics and drops every rune outside
// [a-z0-9]. "Trail Blazers", "trail-blazers" and "TRAILBLAZERS" collapse
// to the same key.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(strings.ToLower(s)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
