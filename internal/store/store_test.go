package store_test

import (
	"context"
	"testing"
	"time"

	"curator/internal/media"
	"curator/internal/suggest"
	"curator/internal/testsupport"
)

func sampleSuggestion(title string, conf float64) suggest.Suggestion {
	return suggest.Suggestion{
		ID:         suggest.ID(suggest.TypeFranchise, title),
		Type:       suggest.TypeFranchise,
		Title:      title,
		Confidence: conf,
		ItemIDs:    []string{"a", "b"},
		Reason:     "sequel pattern detected",
		CreatedAt:  time.Now().UTC(),
	}
}

func TestItemSnapshotRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	items := []media.MovieItem{
		{ID: "1", Title: "Rocky", Genres: []string{"Drama"}, RuntimeMinutes: 120, Studios: []string{"MGM"}},
		{ID: "2", Title: "Alien", Genres: []string{"Horror", "Sci-Fi"}, OfficialRating: "R", Overview: "In space"},
	}
	if err := st.UpsertItems(ctx, items); err != nil {
		t.Fatalf("UpsertItems: %v", err)
	}

	got, err := st.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d items, want 2", len(got))
	}
	// Ordered by title.
	if got[0].Title != "Alien" || got[1].Title != "Rocky" {
		t.Errorf("order = %q, %q", got[0].Title, got[1].Title)
	}
	if got[0].OfficialRating != "R" || len(got[0].Genres) != 2 {
		t.Errorf("Alien round trip = %+v", got[0])
	}
	if got[1].RuntimeMinutes != 120 || got[1].Studios[0] != "MGM" {
		t.Errorf("Rocky round trip = %+v", got[1])
	}

	// Snapshot semantics: a second upsert replaces everything.
	if err := st.UpsertItems(ctx, items[:1]); err != nil {
		t.Fatalf("UpsertItems: %v", err)
	}
	count, err := st.ItemCount(ctx)
	if err != nil {
		t.Fatalf("ItemCount: %v", err)
	}
	if count != 1 {
		t.Errorf("count after replace = %d, want 1", count)
	}
}

func TestReplaceUnappliedPreservesApplied(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first := sampleSuggestion("Rocky", 0.95)
	second := sampleSuggestion("Alien", 0.95)
	if err := st.ReplaceUnapplied(ctx, []suggest.Suggestion{first, second}); err != nil {
		t.Fatalf("ReplaceUnapplied: %v", err)
	}

	if err := st.MarkApplied(ctx, first.ID, "col-1"); err != nil {
		t.Fatalf("MarkApplied: %v", err)
	}

	// Rescan: same Rocky candidate plus a new one; Alien disappears.
	third := sampleSuggestion("Terminator", 0.95)
	if err := st.ReplaceUnapplied(ctx, []suggest.Suggestion{first, third}); err != nil {
		t.Fatalf("ReplaceUnapplied: %v", err)
	}

	all, err := st.ListSuggestions(ctx, "")
	if err != nil {
		t.Fatalf("ListSuggestions: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d suggestions, want 2 (applied Rocky + new Terminator)", len(all))
	}

	rocky, err := st.GetSuggestion(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetSuggestion: %v", err)
	}
	if rocky == nil || !rocky.Applied || rocky.AppliedCollectionID != "col-1" {
		t.Errorf("applied suggestion not preserved: %+v", rocky)
	}

	alien, err := st.GetSuggestion(ctx, second.ID)
	if err != nil {
		t.Fatalf("GetSuggestion: %v", err)
	}
	if alien != nil {
		t.Errorf("unapplied Alien should be gone, got %+v", alien)
	}
}

func TestGetSuggestionMissingReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	got, err := st.GetSuggestion(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("GetSuggestion: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestMarkAppliedUnknownID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	if err := st.MarkApplied(context.Background(), "no-such-id", "col"); err == nil {
		t.Error("expected error for unknown suggestion")
	}
}

func TestListSuggestionsFilterAndOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	low := suggest.Suggestion{
		ID:         suggest.ID(suggest.TypeMood, "Cozy"),
		Type:       suggest.TypeMood,
		Title:      "Cozy",
		Confidence: 0.62,
		ItemIDs:    []string{"a", "b"},
		CreatedAt:  time.Now().UTC(),
	}
	high := sampleSuggestion("Rocky", 0.95)
	if err := st.ReplaceUnapplied(ctx, []suggest.Suggestion{low, high}); err != nil {
		t.Fatalf("ReplaceUnapplied: %v", err)
	}

	all, err := st.ListSuggestions(ctx, "")
	if err != nil {
		t.Fatalf("ListSuggestions: %v", err)
	}
	if len(all) != 2 || all[0].Confidence < all[1].Confidence {
		t.Errorf("expected confidence-descending order, got %+v", all)
	}

	moods, err := st.ListSuggestions(ctx, suggest.TypeMood)
	if err != nil {
		t.Fatalf("ListSuggestions: %v", err)
	}
	if len(moods) != 1 || moods[0].Title != "Cozy" {
		t.Errorf("type filter = %+v", moods)
	}
}

func TestClearAppliedAndStats(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := st.UpsertItems(ctx, []media.MovieItem{{ID: "1", Title: "Rocky"}}); err != nil {
		t.Fatalf("UpsertItems: %v", err)
	}

	sg := sampleSuggestion("Rocky", 0.95)
	if err := st.ReplaceUnapplied(ctx, []suggest.Suggestion{sg}); err != nil {
		t.Fatalf("ReplaceUnapplied: %v", err)
	}
	if err := st.MarkApplied(ctx, sg.ID, "col-1"); err != nil {
		t.Fatalf("MarkApplied: %v", err)
	}

	stats, err := st.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Items != 1 || stats.Total != 1 || stats.Applied != 1 || stats.Unapplied != 0 {
		t.Errorf("stats = %+v", stats)
	}

	cleared, err := st.ClearApplied(ctx)
	if err != nil {
		t.Fatalf("ClearApplied: %v", err)
	}
	if cleared != 1 {
		t.Errorf("cleared = %d, want 1", cleared)
	}

	got, err := st.GetSuggestion(ctx, sg.ID)
	if err != nil {
		t.Fatalf("GetSuggestion: %v", err)
	}
	if got.Applied || got.AppliedCollectionID != "" {
		t.Errorf("suggestion should be unapplied after clear: %+v", got)
	}
}
