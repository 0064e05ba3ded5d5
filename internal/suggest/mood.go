package suggest

import (
	"sort"
	"strings"

	"curator/internal/media"
)

// Mood confidence scaling: one matched keyword scores moodBaseConfidence,
// each additional distinct keyword adds moodKeywordStep, capped at moodMaxConfidence.
const (
	moodBaseConfidence = 0.62
	moodKeywordStep    = 0.06
	moodMaxConfidence  = 0.80
)

// MoodOrder fixes the evaluation and emission order of mood dimensions.
var MoodOrder = []string{"Cozy", "Funny", "Action", "Dark", "Emotional", "Scary", "Christmas", "Halloween"}

// moodKeywords holds the curated keyword list per mood. Genre names double
// as keywords because the matched text includes the item's genre set.
var moodKeywords = map[string][]string{
	"Cozy":      {"heartwarming", "friendship", "gentle", "cozy", "wholesome", "feel-good", "feel good"},
	"Funny":     {"comedy", "hilarious", "funny", "comedian", "laugh"},
	"Action":    {"action", "explosive", "assassin", "fight", "battle", "mission"},
	"Dark":      {"thriller", "crime", "dark", "corrupt", "serial", "noir"},
	"Emotional": {"tearjerker", "grief", "loss", "tragic", "emotional"},
	"Scary":     {"horror", "terror", "haunted", "killer", "slasher", "demon"},
	"Christmas": {"christmas", "santa", "holiday", "xmas", "north pole", "reindeer"},
	"Halloween": {"halloween", "pumpkin", "witch", "haunted", "ghost", "spooky"},
}

// MoodMatch is one (item, mood) assignment with the keywords that produced it.
type MoodMatch struct {
	Mood       string
	Keywords   []string
	Confidence float64
}

// MoodMatches evaluates an item's overview, tagline, and genres against the
// curated keyword lists. An item may match any number of moods.
func MoodMatches(item media.MovieItem) []MoodMatch {
	text := moodText(item)
	if text == "" {
		return nil
	}

	var matches []MoodMatch
	for _, mood := range MoodOrder {
		var hits []string
		for _, keyword := range moodKeywords[mood] {
			if strings.Contains(text, keyword) {
				hits = append(hits, keyword)
			}
		}
		if len(hits) == 0 {
			continue
		}
		sort.Strings(hits)
		matches = append(matches, MoodMatch{
			Mood:       mood,
			Keywords:   hits,
			Confidence: moodConfidence(len(hits)),
		})
	}
	return matches
}

func moodText(item media.MovieItem) string {
	parts := make([]string, 0, 2+len(item.Genres))
	if item.Overview != "" {
		parts = append(parts, item.Overview)
	}
	if item.Tagline != "" {
		parts = append(parts, item.Tagline)
	}
	parts = append(parts, item.Genres...)
	return strings.ToLower(strings.Join(parts, " "))
}

func moodConfidence(matched int) float64 {
	if matched < 1 {
		return 0
	}
	confidence := moodBaseConfidence + moodKeywordStep*float64(matched-1)
	if confidence > moodMaxConfidence {
		return moodMaxConfidence
	}
	return confidence
}
