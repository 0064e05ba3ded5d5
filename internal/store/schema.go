package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
)

// schemaVersion identifies the on-disk layout. Bump it when the schema
// changes shape; Open refuses databases written by a different version.
const schemaVersion = 1

//go:embed schema.sql
var schemaSQL string

// ErrSchemaMismatch indicates the database was created by an incompatible
// version of curator.
var ErrSchemaMismatch = errors.New("store: database schema version mismatch")

func initSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	var version int
	err := db.QueryRow(`SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("%w: database has version %d, this build expects %d", ErrSchemaMismatch, version, schemaVersion)
	}

	return nil
}
