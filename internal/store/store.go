package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	_ "modernc.org/sqlite"

	"curator/internal/config"
	"curator/internal/media"
	"curator/internal/suggest"
)

// Stats summarizes the persisted state for status displays.
type Stats struct {
	Items     int
	Total     int
	Applied   int
	Unapplied int
}

// Store provides persistence for library items and suggestions.
type Store struct {
	db *sql.DB
}

// Open creates or opens the SQLite database under the configured data
// directory and ensures the schema is current.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return OpenPath(cfg.DatabasePath())
}

// OpenPath opens the database at an explicit path.
func OpenPath(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?%s", path, url.Values{
		"_pragma": []string{
			"journal_mode(WAL)",
			"busy_timeout(5000)",
			"foreign_keys(ON)",
		},
	}.Encode())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertItems replaces the stored library snapshot with the given movies.
func (s *Store) UpsertItems(ctx context.Context, items []media.MovieItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin item snapshot: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (id, title, genres, runtime_minutes, official_rating, overview, tagline, studios)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare item insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		genres, err := encodeStrings(item.Genres)
		if err != nil {
			return err
		}
		studios, err := encodeStrings(item.Studios)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx,
			item.ID, item.Title, genres, item.RuntimeMinutes,
			item.OfficialRating, item.Overview, item.Tagline, studios,
		); err != nil {
			return fmt.Errorf("insert item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit item snapshot: %w", err)
	}
	return nil
}

// ListItems returns the stored library snapshot ordered by title.
func (s *Store) ListItems(ctx context.Context) ([]media.MovieItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, genres, runtime_minutes, official_rating, overview, tagline, studios
		FROM items ORDER BY title ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []media.MovieItem
	for rows.Next() {
		var item media.MovieItem
		var genres, studios string
		if err := rows.Scan(&item.ID, &item.Title, &genres, &item.RuntimeMinutes,
			&item.OfficialRating, &item.Overview, &item.Tagline, &studios); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if item.Genres, err = decodeStrings(genres); err != nil {
			return nil, err
		}
		if item.Studios, err = decodeStrings(studios); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ItemCount reports how many movies the snapshot holds.
func (s *Store) ItemCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}

// ReplaceUnapplied deletes all unapplied suggestions and inserts the fresh
// batch. Candidates whose (type, title) pair matches an applied suggestion
// are skipped, so applied state survives rescans.
func (s *Store) ReplaceUnapplied(ctx context.Context, suggestions []suggest.Suggestion) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin suggestion refresh: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM suggestions WHERE applied = 0`); err != nil {
		return fmt.Errorf("clear unapplied suggestions: %w", err)
	}

	applied, err := appliedKeys(ctx, tx)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO suggestions (id, type, title, confidence, item_ids, reason, applied, applied_collection_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, '', ?)`)
	if err != nil {
		return fmt.Errorf("prepare suggestion insert: %w", err)
	}
	defer stmt.Close()

	for _, sg := range suggestions {
		if _, ok := applied[sg.Key()]; ok {
			continue
		}
		itemIDs, err := encodeStrings(sg.ItemIDs)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx,
			sg.ID, string(sg.Type), sg.Title, sg.Confidence,
			itemIDs, sg.Reason, sg.CreatedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("insert suggestion %s: %w", sg.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit suggestion refresh: %w", err)
	}
	return nil
}

func appliedKeys(ctx context.Context, tx *sql.Tx) (map[string]struct{}, error) {
	rows, err := tx.QueryContext(ctx, `SELECT type, title FROM suggestions WHERE applied = 1`)
	if err != nil {
		return nil, fmt.Errorf("list applied suggestions: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var typ, title string
		if err := rows.Scan(&typ, &title); err != nil {
			return nil, fmt.Errorf("scan applied suggestion: %w", err)
		}
		keys[suggest.Suggestion{Type: suggest.Type(typ), Title: title}.Key()] = struct{}{}
	}
	return keys, rows.Err()
}

const suggestionColumns = `id, type, title, confidence, item_ids, reason, applied, applied_collection_id, created_at`

// ListSuggestions returns all suggestions, highest confidence first. When
// typeFilter is non-empty only suggestions of that type are returned.
func (s *Store) ListSuggestions(ctx context.Context, typeFilter suggest.Type) ([]suggest.Suggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM suggestions`
	var args []any
	if typeFilter != "" {
		query += ` WHERE type = ?`
		args = append(args, string(typeFilter))
	}
	query += ` ORDER BY confidence DESC, created_at DESC, title ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []suggest.Suggestion
	for rows.Next() {
		sg, err := scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, sg)
	}
	return suggestions, rows.Err()
}

// GetSuggestion fetches a single suggestion by ID. It returns nil when the
// suggestion does not exist.
func (s *Store) GetSuggestion(ctx context.Context, id string) (*suggest.Suggestion, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+suggestionColumns+` FROM suggestions WHERE id = ?`, id)
	sg, err := scanSuggestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sg, nil
}

// MarkApplied records that a suggestion was turned into a collection.
func (s *Store) MarkApplied(ctx context.Context, id, collectionID string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE suggestions SET applied = 1, applied_collection_id = ? WHERE id = ?`,
		collectionID, id)
	if err != nil {
		return fmt.Errorf("mark suggestion applied: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark suggestion applied: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("suggestion %s not found", id)
	}
	return nil
}

// ClearApplied removes the applied flag from every suggestion so the next
// scan regenerates them from scratch.
func (s *Store) ClearApplied(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE suggestions SET applied = 0, applied_collection_id = '' WHERE applied = 1`)
	if err != nil {
		return 0, fmt.Errorf("clear applied suggestions: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear applied suggestions: %w", err)
	}
	return int(affected), nil
}

// Stats reports item and suggestion counts.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&stats.Items); err != nil {
		return Stats{}, fmt.Errorf("count items: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN applied = 1 THEN 1 ELSE 0 END), 0)
		FROM suggestions`).Scan(&stats.Total, &stats.Applied); err != nil {
		return Stats{}, fmt.Errorf("count suggestions: %w", err)
	}
	stats.Unapplied = stats.Total - stats.Applied
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSuggestion(row rowScanner) (suggest.Suggestion, error) {
	var sg suggest.Suggestion
	var typ, itemIDs, createdAt string
	var applied int
	if err := row.Scan(&sg.ID, &typ, &sg.Title, &sg.Confidence,
		&itemIDs, &sg.Reason, &applied, &sg.AppliedCollectionID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return suggest.Suggestion{}, err
		}
		return suggest.Suggestion{}, fmt.Errorf("scan suggestion: %w", err)
	}
	sg.Type = suggest.Type(typ)
	sg.Applied = applied != 0
	ids, err := decodeStrings(itemIDs)
	if err != nil {
		return suggest.Suggestion{}, err
	}
	sg.ItemIDs = ids
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return suggest.Suggestion{}, fmt.Errorf("parse suggestion timestamp: %w", err)
	}
	sg.CreatedAt = parsed
	return sg, nil
}

func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode string list: %w", err)
	}
	return string(data), nil
}

func decodeStrings(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("decode string list: %w", err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}
