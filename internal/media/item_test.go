package media

import "testing"

func TestHasGenre(t *testing.T) {
	item := MovieItem{Genres: []string{"Animation", " comedy "}}

	if !item.HasGenre("animation") {
		t.Error("genre match should ignore case")
	}
	if !item.HasGenre("Comedy") {
		t.Error("genre match should ignore surrounding whitespace")
	}
	if item.HasGenre("Horror") {
		t.Error("unexpected genre match")
	}
	if (MovieItem{}).HasGenre("Drama") {
		t.Error("empty genre list must not match")
	}
}

func TestHasRuntime(t *testing.T) {
	if (MovieItem{}).HasRuntime() {
		t.Error("zero runtime means unknown")
	}
	if !(MovieItem{RuntimeMinutes: 90}).HasRuntime() {
		t.Error("positive runtime is usable")
	}
}

func TestRuntimeMinutesFromTicks(t *testing.T) {
	cases := []struct {
		ticks int64
		want  int
	}{
		{0, 0},
		{-5, 0},
		{600_000_000, 1},              // exactly one minute
		{72_000_000_000, 120},         // two hours
		{599_999_999, 0},              // just under a minute truncates
		{66_600_000_000, 111},         // 111 minutes
	}
	for _, tc := range cases {
		if got := RuntimeMinutesFromTicks(tc.ticks); got != tc.want {
			t.Errorf("RuntimeMinutesFromTicks(%d) = %d, want %d", tc.ticks, got, tc.want)
		}
	}
}

func TestJoinTaglines(t *testing.T) {
	got := JoinTaglines([]string{" One last job. ", "", "  ", "No turning back."})
	want := "One last job. No turning back."
	if got != want {
		t.Errorf("JoinTaglines = %q, want %q", got, want)
	}
	if JoinTaglines(nil) != "" {
		t.Error("nil taglines should join to empty string")
	}
}
