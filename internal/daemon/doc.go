// Package daemon runs curatord: a single-instance background process that
// rescans the Jellyfin library on an interval and serves the HTTP API the
// CLI and other clients talk to.
//
// Single-instance enforcement uses a flock-based lock file under the data
// directory. Shutdown is graceful within the configured timeout.
package daemon
