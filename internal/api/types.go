package api

import "time"

// Suggestion is the external representation shared by the HTTP API and the
// CLI JSON output.
type Suggestion struct {
	ID                  string    `json:"id"`
	Type                string    `json:"type"`
	Title               string    `json:"title"`
	Confidence          float64   `json:"confidence"`
	ItemIDs             []string  `json:"itemIds"`
	ItemCount           int       `json:"itemCount"`
	Reason              string    `json:"reason"`
	Applied             bool      `json:"applied"`
	AppliedCollectionID string    `json:"appliedCollectionId,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

// SkippedCategory reports a classifier that failed during a scan.
type SkippedCategory struct {
	Category string `json:"category"`
	Error    string `json:"error"`
}

// ScanResult summarizes one completed scan.
type ScanResult struct {
	Items       int               `json:"items"`
	Suggestions int               `json:"suggestions"`
	Skipped     []SkippedCategory `json:"skipped,omitempty"`
}

// ApplyResult reports the outcome of applying a suggestion.
type ApplyResult struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	ItemCount      int    `json:"itemCount"`
	Applied        bool   `json:"applied"`
	AlreadyApplied bool   `json:"alreadyApplied"`
	DryRun         bool   `json:"dryRun"`
	CollectionID   string `json:"collectionId,omitempty"`
}

// StatsResult reports persisted state counts.
type StatsResult struct {
	Items       int `json:"items"`
	Suggestions int `json:"suggestions"`
	Applied     int `json:"applied"`
	Unapplied   int `json:"unapplied"`
}
