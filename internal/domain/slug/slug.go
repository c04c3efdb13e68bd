// Package slug derives URL path segments from titles.
package slug

import (
	"regexp"
	"strings"
)

var (
	nonWord = regexp.MustCompile(`[^\w ]+`)
	spaces  = regexp.MustCompile(` +`)
	valid   = regexp.MustCompile(`^[A-Za-z0-9_]+(-[A-Za-z0-9_]+)*$`)
)

// Make lowercases text, drops everything but word characters and spaces and
// joins words with hyphens.
func Make(text string) string {
	s := strings.ToLower(text)
	s = nonWord.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return spaces.ReplaceAllString(s, "-")
}

// Valid reports whether s is usable as a slug.
func Valid(s string) bool {
	return valid.MatchString(s)
}

// OrMake returns s when it is set, otherwise the slug of fallback.
func OrMake(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return Make(fallback)
}
