package article

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FallbackSlug is used when a title has no usable characters.
const FallbackSlug = "articolo"

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify converts text to a URL-safe slug.
// "Caffè & Co." -> "caffe-co", "Go—Rust" -> "go-rust".
// "" -> "articolo".
func Slugify(text string) string {
	// Only the combining marks are dropped; other non-ASCII runes act as separators.
	s, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), text)
	if err != nil {
		s = text
	}

	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = multipleHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if s == "" {
		return FallbackSlug
	}
	return s
}
