package suggest

import (
	"strconv"
	"strings"
)

// Roman numeral sequel markers II through XX. I is deliberately absent: a
// bare trailing "I" is far more often part of the title than a sequel number.
var romanMarkers = map[string]struct{}{
	"ii": {}, "iii": {}, "iv": {}, "v": {}, "vi": {}, "vii": {}, "viii": {},
	"ix": {}, "x": {}, "xi": {}, "xii": {}, "xiii": {}, "xiv": {}, "xv": {},
	"xvi": {}, "xvii": {}, "xviii": {}, "xix": {}, "xx": {},
}

// BaseKey returns the normalized title with its trailing sequel marker
// removed. Titles without a marker map to their normalized form unchanged.
func BaseKey(title string) string {
	base, _ := splitSequelMarker(Normalize(title))
	return base
}

// HasSequelMarker reports whether the title ends in a sequel marker: a
// standalone trailing numeral (2-99), a Roman numeral II-XX, or "part N".
func HasSequelMarker(title string) bool {
	_, found := splitSequelMarker(Normalize(title))
	return found
}

// StripMarkerTitle removes a trailing sequel marker from a raw title while
// preserving its original casing, for use as a group display name.
func StripMarkerTitle(title string) string {
	tokens := strings.Fields(strings.TrimSpace(title))
	drop := markerTokenCount(normalizeTokens(tokens))
	if drop == 0 {
		return strings.Join(tokens, " ")
	}
	return strings.Join(tokens[:len(tokens)-drop], " ")
}

// splitSequelMarker strips a trailing sequel marker from an
// already-normalized title. The marker must form its own trailing word;
// numerals embedded in a larger token are left alone.
func splitSequelMarker(normalized string) (string, bool) {
	tokens := strings.Fields(normalized)
	drop := markerTokenCount(tokens)
	if drop == 0 {
		return normalized, false
	}
	return strings.Join(tokens[:len(tokens)-drop], " "), true
}

// markerTokenCount reports how many trailing tokens form a sequel marker:
// 2 for "part N", 1 for a bare numeral, 0 for none.
func markerTokenCount(tokens []string) int {
	if len(tokens) < 2 {
		return 0
	}
	last := tokens[len(tokens)-1]
	if !isSequelNumeral(last) {
		return 0
	}
	if len(tokens) >= 3 && tokens[len(tokens)-2] == "part" {
		return 2
	}
	return 1
}

func normalizeTokens(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, token := range tokens {
		out[i] = Normalize(token)
	}
	return out
}

func isSequelNumeral(token string) bool {
	if _, ok := romanMarkers[token]; ok {
		return true
	}
	n, err := strconv.Atoi(token)
	return err == nil && n >= 2 && n <= 99
}
