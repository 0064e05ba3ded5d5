// Package api hosts the service layer shared by the CLI and the daemon HTTP
// API.
//
// Service coordinates scans (fetch library, run the suggestion engine,
// persist results) and applies suggestions as Jellyfin collections. Scans are
// serialized with a mutex; apply is idempotent and honours the configured
// dry-run mode.
package api
