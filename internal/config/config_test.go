package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("JELLYFIN_API_KEY", "")
	path := writeConfig(t, `
[jellyfin]
url = "http://media.local:8096"
api_key = "abc123"
`)

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be detected")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Server.Bind != "127.0.0.1:7787" {
		t.Errorf("default bind = %q", cfg.Server.Bind)
	}
	if !cfg.Jellyfin.DryRun {
		t.Error("dry_run should default to true")
	}
	if cfg.Suggest.MinGroupSize != 2 || cfg.Suggest.TopStudios != 20 {
		t.Errorf("suggest defaults = %d/%d", cfg.Suggest.MinGroupSize, cfg.Suggest.TopStudios)
	}
	if cfg.Workflow.ScanInterval != 360 {
		t.Errorf("scan_interval default = %d", cfg.Workflow.ScanInterval)
	}
	if !cfg.Suggest.EnableFranchise || !cfg.Suggest.EnableMood {
		t.Error("all suggestion categories should default to enabled")
	}
}

func TestLoadRequiresJellyfinSettings(t *testing.T) {
	t.Setenv("JELLYFIN_API_KEY", "")
	path := writeConfig(t, `
[server]
bind = "127.0.0.1:7787"
`)

	_, _, _, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for missing jellyfin settings")
	}
	if !strings.Contains(err.Error(), "jellyfin.url") {
		t.Errorf("error should mention jellyfin.url, got %v", err)
	}
	if !strings.Contains(err.Error(), "jellyfin.api_key") {
		t.Errorf("error should mention jellyfin.api_key, got %v", err)
	}
}

func TestLoadAPIKeyEnvFallback(t *testing.T) {
	t.Setenv("JELLYFIN_API_KEY", "from-env")
	path := writeConfig(t, `
[jellyfin]
url = "http://media.local:8096"
`)

	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Jellyfin.APIKey != "from-env" {
		t.Errorf("api key = %q, want env fallback", cfg.Jellyfin.APIKey)
	}
}

func TestNormalizeTrimsTrailingSlash(t *testing.T) {
	t.Setenv("JELLYFIN_API_KEY", "")
	path := writeConfig(t, `
[jellyfin]
url = "http://media.local:8096/"
api_key = "abc"
`)

	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Jellyfin.URL != "http://media.local:8096" {
		t.Errorf("url = %q, want trailing slash removed", cfg.Jellyfin.URL)
	}
}

func TestValidateRejectsBadThresholds(t *testing.T) {
	cfg := Default()
	cfg.Jellyfin.URL = "http://media.local:8096"
	cfg.Jellyfin.APIKey = "abc"
	cfg.Storage.DataDir = "/tmp/curator"
	cfg.Suggest.MinGroupSize = 0
	cfg.Suggest.TopStudios = -3

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "min_group_size") {
		t.Errorf("error should mention min_group_size, got %v", err)
	}
	if !strings.Contains(err.Error(), "top_studios") {
		t.Errorf("error should mention top_studios, got %v", err)
	}
}

func TestFranchiseRulesParsing(t *testing.T) {
	cfg := Default()
	cfg.Suggest.FranchiseRulesJSON = `{"Middle-earth": ["lord of the rings", "hobbit"]}`

	rules, err := cfg.FranchiseRules()
	if err != nil {
		t.Fatalf("FranchiseRules: %v", err)
	}
	if len(rules) != 1 || len(rules["Middle-earth"]) != 2 {
		t.Errorf("rules = %v", rules)
	}

	cfg.Suggest.FranchiseRulesJSON = `{"Empty": []}`
	if _, err := cfg.FranchiseRules(); err == nil {
		t.Error("expected error for rule without keywords")
	}

	cfg.Suggest.FranchiseRulesJSON = `not json`
	if _, err := cfg.FranchiseRules(); err == nil {
		t.Error("expected error for malformed JSON")
	}

	cfg.Suggest.FranchiseRulesJSON = ""
	rules, err = cfg.FranchiseRules()
	if err != nil || rules != nil {
		t.Errorf("empty setting should yield nil, got %v, %v", rules, err)
	}
}

func TestStudioAllowlistParsing(t *testing.T) {
	cfg := Default()
	cfg.Suggest.StudioAllowlistJSON = `["Disney", "Pixar"]`

	allowlist, err := cfg.StudioAllowlist()
	if err != nil {
		t.Fatalf("StudioAllowlist: %v", err)
	}
	if len(allowlist) != 2 || allowlist[0] != "Disney" {
		t.Errorf("allowlist = %v", allowlist)
	}

	cfg.Suggest.StudioAllowlistJSON = `{"not": "an array"}`
	if _, err := cfg.StudioAllowlist(); err == nil {
		t.Error("expected error for non-array JSON")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	expanded, err := ExpandPath("~/.local/share/curator")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if expanded != filepath.Join(home, ".local/share/curator") {
		t.Errorf("expanded = %q", expanded)
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := Default()
	cfg.Storage.DataDir = "/var/lib/curator"

	if got := cfg.DatabasePath(); got != "/var/lib/curator/curator.db" {
		t.Errorf("DatabasePath = %q", got)
	}
	if got := cfg.LogDir(); got != "/var/lib/curator/logs" {
		t.Errorf("LogDir = %q", got)
	}
	if got := cfg.LockPath(); got != "/var/lib/curator/curatord.lock" {
		t.Errorf("LockPath = %q", got)
	}
}

func TestCreateSampleProducesLoadableFile(t *testing.T) {
	t.Setenv("JELLYFIN_API_KEY", "sample-key")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	patched := strings.Replace(string(contents), `url = ""`, `url = "http://media.local:8096"`, 1)
	if err := os.WriteFile(path, []byte(patched), 0o644); err != nil {
		t.Fatalf("patch sample: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample file should exist")
	}
	if cfg.Jellyfin.APIKey != "sample-key" {
		t.Errorf("api key = %q", cfg.Jellyfin.APIKey)
	}
}
