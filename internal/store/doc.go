// Package store persists the library snapshot and suggestion state in a
// local SQLite database.
//
// Scans replace the movie snapshot wholesale and refresh every unapplied
// suggestion; applied suggestions are kept so reapplying after a rescan stays
// idempotent. The schema carries a version marker and Open refuses databases
// written by a different schema version.
package store
