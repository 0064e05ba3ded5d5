package suggest

import (
	"math"
	"testing"

	"curator/internal/media"
)

func TestMoodMatchesScenario(t *testing.T) {
	item := media.MovieItem{
		Overview: "A heartwarming Christmas comedy about an unlikely friendship.",
		Genres:   []string{"Comedy"},
	}

	matches := MoodMatches(item)
	byMood := make(map[string]MoodMatch, len(matches))
	for _, m := range matches {
		byMood[m.Mood] = m
	}

	cozy, ok := byMood["Cozy"]
	if !ok {
		t.Fatal("expected Cozy match (heartwarming, friendship)")
	}
	if len(cozy.Keywords) != 2 {
		t.Errorf("Cozy keywords = %v", cozy.Keywords)
	}
	if math.Abs(cozy.Confidence-0.68) > 1e-9 {
		t.Errorf("Cozy confidence = %v, want 0.68", cozy.Confidence)
	}

	funny, ok := byMood["Funny"]
	if !ok {
		t.Fatal("expected Funny match (comedy)")
	}
	if funny.Confidence != 0.62 {
		t.Errorf("Funny confidence = %v, want 0.62", funny.Confidence)
	}

	christmas, ok := byMood["Christmas"]
	if !ok {
		t.Fatal("expected Christmas match")
	}
	if christmas.Confidence != 0.62 {
		t.Errorf("Christmas confidence = %v, want 0.62", christmas.Confidence)
	}

	if _, ok := byMood["Scary"]; ok {
		t.Error("Scary must not match this overview")
	}
}

func TestMoodConfidenceScaling(t *testing.T) {
	cases := []struct {
		matched int
		want    float64
	}{
		{0, 0},
		{1, 0.62},
		{2, 0.68},
		{3, 0.74},
		{4, 0.80},
		// Capped at 0.80.
		{5, 0.80},
		{10, 0.80},
	}
	for _, tc := range cases {
		if got := moodConfidence(tc.matched); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("moodConfidence(%d) = %v, want %v", tc.matched, got, tc.want)
		}
	}
}

func TestMoodMatchesEmptyText(t *testing.T) {
	if matches := MoodMatches(media.MovieItem{Title: "Silent"}); matches != nil {
		t.Errorf("item without text matched moods: %+v", matches)
	}
}

func TestMoodMatchesTaglineAndGenres(t *testing.T) {
	item := media.MovieItem{
		Tagline: "The scariest haunted house on the block.",
		Genres:  []string{"Horror"},
	}
	matches := MoodMatches(item)

	var scary *MoodMatch
	for i := range matches {
		if matches[i].Mood == "Scary" {
			scary = &matches[i]
		}
	}
	if scary == nil {
		t.Fatal("expected Scary match from tagline and genre")
	}
	// "horror" and "haunted" are two distinct keywords.
	if len(scary.Keywords) != 2 || math.Abs(scary.Confidence-0.68) > 1e-9 {
		t.Errorf("Scary match = %+v", scary)
	}
}
