package textutil

import (
	"regexp"
	"strings"
)

// ascii punctuation the admin panel strips when it derives a url slug
// from an event title
const slugPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var whitespaceRegex = regexp.MustCompile(`\s+`)

// FormatDefaultSlug reproduces the slug the admin panel generates for
// an event title when the seller doesn't pick one: punctuation
// removed, spaces turned into hyphens, everything lowercased.
func FormatDefaultSlug(title string) string {
	var kept strings.Builder
	for _, r := range title {
		if strings.ContainsRune(slugPunctuation, r) {
			continue
		}
		kept.WriteRune(r)
	}
	return strings.ToLower(strings.ReplaceAll(kept.String(), " ", "-"))
}

// NormalizeName flattens scraped display text so two renderings of the
// same name compare equal.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return name
}
