// Package config loads, normalizes, and validates curator configuration.
//
// It supplies repository defaults, expands tilde paths, reads TOML files,
// and honours the JELLYFIN_API_KEY environment fallback. Rule-table fields
// (franchise rules, studio allowlist) arrive JSON-encoded and are parsed and
// checked during validation so malformed configuration fails before any scan
// runs.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and validated thresholds.
package config
