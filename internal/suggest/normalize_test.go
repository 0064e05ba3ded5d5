package suggest

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Star Wars: Episode IV", "star wars episode iv"},
		{"Amélie", "amelie"},
		{"  WALL·E  ", "wall·e"},
		{"Ocean's Eleven", "oceans eleven"},
		{"Monsters, Inc.", "monsters inc."},
		{"L'État, c'est moi", "letat cest moi"},
		{"Spider-Man", "spider-man"},
		{"A\tB\n C", "a b c"},
		{"", ""},
		{"Léon: The Professional", "leon the professional"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Star Wars: Episode IV", "Amélie", "Ocean's Eleven",
		"Monsters, Inc.", "Die Hard 2", "naïve café RÉSUMÉ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent on %q: %q != %q", in, once, twice)
		}
	}
}
