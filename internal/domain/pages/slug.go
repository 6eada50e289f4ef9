package pages

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

/*
	Slug helpers
	------------
	- Responsible ONLY for:
	  • generating slug candidates from arbitrary input
	  • validating candidates before any store round-trip
	  • building public URLs
	- Availability lives on the Store (global namespace, not per-owner)
*/

const (
	SlugMinLen = 3
	SlugMaxLen = 50
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)

	// NFD decompose, drop combining marks, recompose. "Café" -> "Cafe".
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// GenerateSlug turns an arbitrary title into a URL-safe slug.
// Example: "Café Açaí!!" -> "cafe-acai". Total: empty input yields "".
func GenerateSlug(input string) string {
	base, _, err := transform.String(deaccent, input)
	if err != nil {
		base = input
	}

	base = strings.ToLower(strings.TrimSpace(base))
	base = strings.Join(strings.Fields(base), "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	return base
}

// ValidateSlugCandidate rejects malformed candidates locally, before the
// availability query is even attempted.
func ValidateSlugCandidate(candidate string) error {
	if len(candidate) < SlugMinLen || len(candidate) > SlugMaxLen {
		return fmt.Errorf("slug must be between %d and %d characters", SlugMinLen, SlugMaxLen)
	}
	if candidate != GenerateSlug(candidate) {
		return fmt.Errorf("slug may only contain lowercase letters, digits and single hyphens")
	}
	return nil
}

// BuildPublicURL builds the absolute public URL for a canonical path.
// Example: ("https://memorizu.com", "/s/john-mary") -> "https://memorizu.com/s/john-mary"
func BuildPublicURL(base, canonicalPath string) string {
	return strings.TrimRight(base, "/") + canonicalPath
}
