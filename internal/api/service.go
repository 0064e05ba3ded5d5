package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"curator/internal/config"
	"curator/internal/logging"
	"curator/internal/media"
	"curator/internal/store"
	"curator/internal/suggest"
)

// ErrNotFound indicates the requested suggestion does not exist.
var ErrNotFound = errors.New("suggestion not found")

// Library reads the movie catalog from the media server.
type Library interface {
	FetchMovies(ctx context.Context) ([]media.MovieItem, error)
}

// Collections creates and extends collections on the media server.
type Collections interface {
	CreateCollection(ctx context.Context, name string, itemIDs []string) (string, error)
	AddToCollection(ctx context.Context, collectionID string, itemIDs []string) error
}

// Service wires the suggestion engine to storage and the media server.
type Service struct {
	cfg         *config.Config
	store       *store.Store
	library     Library
	collections Collections
	logger      *slog.Logger

	scanMu sync.Mutex
}

// NewService constructs the service layer. A nil logger is replaced with a
// no-op logger.
func NewService(cfg *config.Config, st *store.Store, library Library, collections Collections, logger *slog.Logger) *Service {
	return &Service{
		cfg:         cfg,
		store:       st,
		library:     library,
		collections: collections,
		logger:      logging.NewComponentLogger(logger, "api"),
	}
}

// Scan fetches the library, runs the suggestion engine, and persists both
// the item snapshot and the refreshed suggestion batch. Concurrent calls are
// serialized.
func (s *Service) Scan(ctx context.Context) (ScanResult, error) {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	runID := uuid.NewString()
	logger := s.logger.With(logging.String("scan_id", runID))
	started := time.Now()
	logger.Info("scan started")

	items, err := s.library.FetchMovies(ctx)
	if err != nil {
		return ScanResult{}, fmt.Errorf("scan: %w", err)
	}

	if err := s.store.UpsertItems(ctx, items); err != nil {
		return ScanResult{}, fmt.Errorf("scan: %w", err)
	}

	opts, err := s.assemblerOptions()
	if err != nil {
		return ScanResult{}, fmt.Errorf("scan: %w", err)
	}

	assembler := suggest.NewAssembler(opts, logger)
	result := assembler.Run(items, time.Now().UTC())

	if err := s.store.ReplaceUnapplied(ctx, result.Suggestions); err != nil {
		return ScanResult{}, fmt.Errorf("scan: %w", err)
	}

	scan := ScanResult{
		Items:       result.ItemCount,
		Suggestions: len(result.Suggestions),
	}
	for _, catErr := range result.Errors {
		scan.Skipped = append(scan.Skipped, SkippedCategory{
			Category: catErr.Category,
			Error:    catErr.Err.Error(),
		})
	}

	logger.Info("scan finished",
		logging.Int("items", scan.Items),
		logging.Int("suggestions", scan.Suggestions),
		logging.Int("skipped_categories", len(scan.Skipped)),
		logging.Duration("elapsed", time.Since(started)))
	return scan, nil
}

func (s *Service) assemblerOptions() (suggest.Options, error) {
	overrides, err := s.cfg.FranchiseRules()
	if err != nil {
		return suggest.Options{}, err
	}
	allowlist, err := s.cfg.StudioAllowlist()
	if err != nil {
		return suggest.Options{}, err
	}

	sc := s.cfg.Suggest
	return suggest.Options{
		Franchise:       sc.EnableFranchise,
		Studio:          sc.EnableStudio,
		Format:          sc.EnableFormat,
		Length:          sc.EnableLength,
		Audience:        sc.EnableAudience,
		Mood:            sc.EnableMood,
		MinGroupSize:    sc.MinGroupSize,
		TopStudios:      sc.TopStudios,
		FranchiseRules:  suggest.MergeFranchiseRules(overrides),
		StudioAllowlist: allowlist,
	}, nil
}

// List returns stored suggestions, optionally filtered by type. An unknown
// type string is an error.
func (s *Service) List(ctx context.Context, typeFilter string) ([]Suggestion, error) {
	var filter suggest.Type
	if typeFilter != "" {
		parsed, ok := suggest.ParseType(typeFilter)
		if !ok {
			return nil, fmt.Errorf("unknown suggestion type %q", typeFilter)
		}
		filter = parsed
	}

	stored, err := s.store.ListSuggestions(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]Suggestion, 0, len(stored))
	for _, sg := range stored {
		out = append(out, toAPISuggestion(sg))
	}
	return out, nil
}

// Describe returns one suggestion by ID.
func (s *Service) Describe(ctx context.Context, id string) (Suggestion, error) {
	sg, err := s.store.GetSuggestion(ctx, id)
	if err != nil {
		return Suggestion{}, err
	}
	if sg == nil {
		return Suggestion{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return toAPISuggestion(*sg), nil
}

// Apply turns a suggestion into a Jellyfin collection. Already-applied
// suggestions are reported as such without touching the server, and dry-run
// mode reports the plan without side effects.
func (s *Service) Apply(ctx context.Context, id string) (ApplyResult, error) {
	sg, err := s.store.GetSuggestion(ctx, id)
	if err != nil {
		return ApplyResult{}, err
	}
	if sg == nil {
		return ApplyResult{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	result := ApplyResult{
		ID:        sg.ID,
		Title:     sg.Title,
		ItemCount: len(sg.ItemIDs),
	}

	if sg.Applied {
		result.Applied = true
		result.AlreadyApplied = true
		result.CollectionID = sg.AppliedCollectionID
		return result, nil
	}

	if s.cfg.Jellyfin.DryRun {
		result.DryRun = true
		s.logger.Info("dry run: would create collection",
			logging.String("suggestion_id", sg.ID),
			logging.String("title", sg.Title),
			logging.Int("items", len(sg.ItemIDs)))
		return result, nil
	}

	first, rest := splitBatch(sg.ItemIDs, applyBatchSize)
	collectionID, err := s.collections.CreateCollection(ctx, sg.Title, first)
	if err != nil {
		return ApplyResult{}, fmt.Errorf("apply suggestion %s: %w", sg.ID, err)
	}
	for len(rest) > 0 {
		var batch []string
		batch, rest = splitBatch(rest, applyBatchSize)
		if err := s.collections.AddToCollection(ctx, collectionID, batch); err != nil {
			return ApplyResult{}, fmt.Errorf("apply suggestion %s: %w", sg.ID, err)
		}
	}
	if err := s.store.MarkApplied(ctx, sg.ID, collectionID); err != nil {
		return ApplyResult{}, err
	}

	result.Applied = true
	result.CollectionID = collectionID
	s.logger.Info("collection created",
		logging.String("suggestion_id", sg.ID),
		logging.String("collection_id", collectionID),
		logging.String("title", sg.Title),
		logging.Int("items", len(sg.ItemIDs)))
	return result, nil
}

// applyBatchSize caps how many item ids ride in a single collection request;
// Jellyfin takes the ids as a query parameter and very large collections
// would blow the URL length.
const applyBatchSize = 100

func splitBatch(ids []string, size int) (batch, rest []string) {
	if len(ids) <= size {
		return ids, nil
	}
	return ids[:size], ids[size:]
}

// DryRun reports whether apply operates in report-only mode.
func (s *Service) DryRun() bool {
	return s.cfg.Jellyfin.DryRun
}

// ClearApplied resets applied flags so the next scan regenerates everything.
func (s *Service) ClearApplied(ctx context.Context) (int, error) {
	cleared, err := s.store.ClearApplied(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("applied suggestions cleared", logging.Int("count", cleared))
	return cleared, nil
}

// Stats reports persisted state counts.
func (s *Service) Stats(ctx context.Context) (StatsResult, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return StatsResult{}, err
	}
	return StatsResult{
		Items:       stats.Items,
		Suggestions: stats.Total,
		Applied:     stats.Applied,
		Unapplied:   stats.Unapplied,
	}, nil
}

func toAPISuggestion(sg suggest.Suggestion) Suggestion {
	return Suggestion{
		ID:                  sg.ID,
		Type:                string(sg.Type),
		Title:               sg.Title,
		Confidence:          sg.Confidence,
		ItemIDs:             sg.ItemIDs,
		ItemCount:           len(sg.ItemIDs),
		Reason:              sg.Reason,
		Applied:             sg.Applied,
		AppliedCollectionID: sg.AppliedCollectionID,
		CreatedAt:           sg.CreatedAt,
	}
}
