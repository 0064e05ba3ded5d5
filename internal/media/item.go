package media

import "strings"

// ticksPerMinute converts Jellyfin RunTimeTicks (100ns units) to minutes.
const ticksPerMinute = 10_000_000 * 60

// MovieItem is one movie as reported by the media server for a single scan.
type MovieItem struct {
	ID             string
	Title          string
	Genres         []string
	RuntimeMinutes int // 0 means unknown
	OfficialRating string
	Overview       string
	Tagline        string
	Studios        []string
}

// HasRuntime reports whether the server supplied a usable runtime.
func (m MovieItem) HasRuntime() bool {
	return m.RuntimeMinutes > 0
}

// HasGenre reports whether the item carries the named genre, ignoring case.
func (m MovieItem) HasGenre(name string) bool {
	for _, genre := range m.Genres {
		if strings.EqualFold(strings.TrimSpace(genre), name) {
			return true
		}
	}
	return false
}

// RuntimeMinutesFromTicks converts a Jellyfin tick count to whole minutes.
func RuntimeMinutesFromTicks(ticks int64) int {
	if ticks <= 0 {
		return 0
	}
	return int(ticks / ticksPerMinute)
}

// JoinTaglines flattens the server's tagline list into one string.
func JoinTaglines(taglines []string) string {
	parts := make([]string, 0, len(taglines))
	for _, tagline := range taglines {
		if trimmed := strings.TrimSpace(tagline); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}
