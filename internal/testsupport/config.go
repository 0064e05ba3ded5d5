// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"testing"

	"curator/internal/config"
)

// NewConfig returns a validated configuration rooted in a per-test temp
// directory with placeholder Jellyfin credentials.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Storage.DataDir = t.TempDir()
	cfg.Jellyfin.URL = "http://jellyfin.test:8096"
	cfg.Jellyfin.APIKey = "test-api-key"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}
