package jellyfin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"curator/internal/config"
	"curator/internal/media"
)

// HTTPDoer abstracts the HTTP transport for testing.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to a Jellyfin server.
type Client struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
}

// NewClient builds a client from application configuration.
func NewClient(cfg *config.Config) *Client {
	return New(cfg.Jellyfin.URL, cfg.Jellyfin.APIKey, &http.Client{Timeout: 60 * time.Second})
}

// New builds a client with an explicit transport. A nil doer falls back to a
// default http.Client.
func New(baseURL, apiKey string, doer HTTPDoer) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  doer,
	}
}

// movieFields are the metadata fields the suggestion engine inspects.
const movieFields = "Genres,Studios,Taglines,Overview,OfficialRating"

type itemsResponse struct {
	Items []movieDTO `json:"Items"`
}

type movieDTO struct {
	ID             string   `json:"Id"`
	Name           string   `json:"Name"`
	Genres         []string `json:"Genres"`
	RunTimeTicks   int64    `json:"RunTimeTicks"`
	OfficialRating string   `json:"OfficialRating"`
	Overview       string   `json:"Overview"`
	Taglines       []string `json:"Taglines"`
	Studios        []studio `json:"Studios"`
}

type studio struct {
	Name string `json:"Name"`
}

// FetchMovies retrieves every movie in the library with the metadata fields
// the suggestion engine needs.
func (c *Client) FetchMovies(ctx context.Context) ([]media.MovieItem, error) {
	query := url.Values{
		"IncludeItemTypes": []string{"Movie"},
		"Recursive":        []string{"true"},
		"Fields":           []string{movieFields},
	}

	var payload itemsResponse
	if err := c.getJSON(ctx, "/Items", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch movies: %w", err)
	}

	items := make([]media.MovieItem, 0, len(payload.Items))
	for _, dto := range payload.Items {
		studios := make([]string, 0, len(dto.Studios))
		for _, s := range dto.Studios {
			if name := strings.TrimSpace(s.Name); name != "" {
				studios = append(studios, name)
			}
		}
		items = append(items, media.MovieItem{
			ID:             dto.ID,
			Title:          dto.Name,
			Genres:         dto.Genres,
			RuntimeMinutes: media.RuntimeMinutesFromTicks(dto.RunTimeTicks),
			OfficialRating: dto.OfficialRating,
			Overview:       dto.Overview,
			Tagline:        media.JoinTaglines(dto.Taglines),
			Studios:        studios,
		})
	}
	return items, nil
}

type collectionResponse struct {
	ID string `json:"Id"`
}

// CreateCollection creates a named collection containing the given items and
// returns the new collection's ID.
func (c *Client) CreateCollection(ctx context.Context, name string, itemIDs []string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("create collection: name must not be empty")
	}
	query := url.Values{
		"Name": []string{name},
		"Ids":  []string{strings.Join(itemIDs, ",")},
	}

	var payload collectionResponse
	if err := c.postJSON(ctx, "/Collections", query, &payload); err != nil {
		return "", fmt.Errorf("create collection %q: %w", name, err)
	}
	if payload.ID == "" {
		return "", fmt.Errorf("create collection %q: server returned no collection id", name)
	}
	return payload.ID, nil
}

// AddToCollection adds items to an existing collection.
func (c *Client) AddToCollection(ctx context.Context, collectionID string, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}
	query := url.Values{"Ids": []string{strings.Join(itemIDs, ",")}}
	path := fmt.Sprintf("/Collections/%s/Items", url.PathEscape(collectionID))
	if err := c.postJSON(ctx, path, query, nil); err != nil {
		return fmt.Errorf("add items to collection %s: %w", collectionID, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, out)
}

func (c *Client) postJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, query, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Emby-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("jellyfin returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
