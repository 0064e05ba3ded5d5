package suggest

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripped is the fixed punctuation set removed during normalization.
// Removing these characters never merges two words: they only ever appear
// attached to a word or between a word and whitespace in titles.
const stripped = ":,'’"

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize produces the canonical matching form of a title: lowercase,
// diacritics stripped, the fixed punctuation set removed, and whitespace
// collapsed. Idempotent by construction.
func Normalize(title string) string {
	flattened, _, err := transform.String(deaccent, title)
	if err != nil {
		flattened = title
	}
	lowered := strings.ToLower(flattened)
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(stripped, r) {
			return -1
		}
		return r
	}, lowered)
	return strings.Join(strings.Fields(cleaned), " ")
}
