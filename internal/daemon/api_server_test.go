package daemon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"curator/internal/api"
	"curator/internal/media"
	"curator/internal/testsupport"
)

type staticLibrary struct {
	items []media.MovieItem
}

func (s staticLibrary) FetchMovies(context.Context) ([]media.MovieItem, error) {
	return s.items, nil
}

type noopCollections struct{}

func (noopCollections) CreateCollection(context.Context, string, []string) (string, error) {
	return "col-1", nil
}

func (noopCollections) AddToCollection(context.Context, string, []string) error {
	return nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	library := staticLibrary{items: []media.MovieItem{
		{ID: "1", Title: "Rocky", Genres: []string{"Drama"}, RuntimeMinutes: 120, OfficialRating: "PG"},
		{ID: "2", Title: "Rocky II", Genres: []string{"Drama"}, RuntimeMinutes: 119, OfficialRating: "PG"},
	}}
	service := api.NewService(cfg, st, library, noopCollections{}, nil)

	server := httptest.NewServer(newHandler(service, nil, func() bool { return true }))
	t.Cleanup(server.Close)
	return server
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	var body map[string]any
	decodeBody(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
	if dryRun, ok := body["dryRun"].(bool); !ok || !dryRun {
		t.Errorf("dryRun = %v, want true by default", body["dryRun"])
	}
}

func TestScanAndListEndpoints(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/scan", "application/json", nil)
	if err != nil {
		t.Fatalf("POST scan: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("scan status = %d", resp.StatusCode)
	}
	var scan api.ScanResult
	decodeBody(t, resp, &scan)
	if scan.Items != 2 || scan.Suggestions == 0 {
		t.Errorf("scan = %+v", scan)
	}

	resp, err = http.Get(server.URL + "/api/suggestions?type=collection-franchise")
	if err != nil {
		t.Fatalf("GET suggestions: %v", err)
	}
	var list struct {
		Suggestions []api.Suggestion `json:"suggestions"`
	}
	decodeBody(t, resp, &list)
	if len(list.Suggestions) != 1 || list.Suggestions[0].Title != "Rocky" {
		t.Fatalf("suggestions = %+v", list.Suggestions)
	}

	// Fetch by id.
	id := list.Suggestions[0].ID
	resp, err = http.Get(server.URL + "/api/suggestions/" + id)
	if err != nil {
		t.Fatalf("GET suggestion: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("get status = %d", resp.StatusCode)
	}
	var got api.Suggestion
	decodeBody(t, resp, &got)
	if got.ID != id {
		t.Errorf("id = %q, want %q", got.ID, id)
	}
}

func TestListRejectsUnknownTypeFilter(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/suggestions?type=bogus")
	if err != nil {
		t.Fatalf("GET suggestions: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetUnknownSuggestionReturns404(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/suggestions/no-such-id")
	if err != nil {
		t.Fatalf("GET suggestion: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestApplyEndpointDryRun(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/scan", "application/json", nil)
	if err != nil {
		t.Fatalf("POST scan: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Get(server.URL + "/api/suggestions")
	if err != nil {
		t.Fatalf("GET suggestions: %v", err)
	}
	var list struct {
		Suggestions []api.Suggestion `json:"suggestions"`
	}
	decodeBody(t, resp, &list)
	if len(list.Suggestions) == 0 {
		t.Fatal("no suggestions to apply")
	}

	resp, err = http.Post(server.URL+"/api/suggestions/"+list.Suggestions[0].ID+"/apply", "application/json", nil)
	if err != nil {
		t.Fatalf("POST apply: %v", err)
	}
	var result api.ApplyResult
	decodeBody(t, resp, &result)
	if !result.DryRun {
		t.Errorf("apply result = %+v, want dry run", result)
	}
}

func TestStatsEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/stats")
	if err != nil {
		t.Fatalf("GET stats: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	var stats api.StatsResult
	decodeBody(t, resp, &stats)
	if stats.Items != 0 || stats.Suggestions != 0 {
		t.Errorf("stats before scan = %+v", stats)
	}
}
