package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Validate checks configuration invariants. It is called by Load after
// normalization; callers constructing a Config by hand should call it too.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Bind == "" {
		problems = append(problems, "server.bind must not be empty")
	}
	if c.Jellyfin.URL == "" {
		problems = append(problems, "jellyfin.url is required")
	}
	if c.Jellyfin.APIKey == "" {
		problems = append(problems, "jellyfin.api_key is required (or set JELLYFIN_API_KEY)")
	}
	if c.Storage.DataDir == "" {
		problems = append(problems, "storage.data_dir must not be empty")
	}
	if c.Suggest.MinGroupSize < 1 {
		problems = append(problems, "suggest.min_group_size must be at least 1")
	}
	if c.Suggest.TopStudios < 1 {
		problems = append(problems, "suggest.top_studios must be at least 1")
	}
	if c.Workflow.ScanInterval < 1 {
		problems = append(problems, "workflow.scan_interval must be at least 1 minute")
	}
	if c.Workflow.ShutdownTimeout < 1 {
		problems = append(problems, "workflow.shutdown_timeout must be at least 1 second")
	}

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level))
	}

	if _, err := c.FranchiseRules(); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := c.StudioAllowlist(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// FranchiseRules parses the JSON-encoded franchise rule overrides. An empty
// setting yields a nil map, meaning built-in rules apply unchanged.
func (c *Config) FranchiseRules() (map[string][]string, error) {
	raw := strings.TrimSpace(c.Suggest.FranchiseRulesJSON)
	if raw == "" {
		return nil, nil
	}
	rules := make(map[string][]string)
	if err := json.Unmarshal([]byte(raw), &rules); err != nil {
		return nil, fmt.Errorf("suggest.franchise_rules_json is not a valid JSON object of string arrays: %w", err)
	}
	for name, keywords := range rules {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("suggest.franchise_rules_json contains a rule with an empty name")
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("suggest.franchise_rules_json rule %q has no keywords", name)
		}
	}
	return rules, nil
}

// StudioAllowlist parses the JSON-encoded studio allowlist. An empty setting
// yields nil, meaning the top-N selection by count applies.
func (c *Config) StudioAllowlist() ([]string, error) {
	raw := strings.TrimSpace(c.Suggest.StudioAllowlistJSON)
	if raw == "" {
		return nil, nil
	}
	var allowlist []string
	if err := json.Unmarshal([]byte(raw), &allowlist); err != nil {
		return nil, fmt.Errorf("suggest.studio_allowlist_json is not a valid JSON array of strings: %w", err)
	}
	return allowlist, nil
}
