package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Server contains the daemon API bind address.
type Server struct {
	Bind string `toml:"bind"`
}

// Jellyfin contains the media server connection settings.
type Jellyfin struct {
	URL    string `toml:"url"`
	APIKey string `toml:"api_key"`
	// DryRun reports what apply would do without creating collections.
	DryRun bool `toml:"dry_run"`
}

// Storage contains local state locations.
type Storage struct {
	DataDir string `toml:"data_dir"`
}

// Suggest contains the suggestion engine knobs.
type Suggest struct {
	EnableFranchise bool `toml:"enable_franchise"`
	EnableStudio    bool `toml:"enable_studio"`
	EnableFormat    bool `toml:"enable_format"`
	EnableLength    bool `toml:"enable_length"`
	EnableAudience  bool `toml:"enable_audience"`
	EnableMood      bool `toml:"enable_mood"`

	MinGroupSize int `toml:"min_group_size"`
	TopStudios   int `toml:"top_studios"`

	// FranchiseRulesJSON is a JSON object mapping franchise name to an
	// array of lowercase keyword phrases; it merges over the built-ins.
	FranchiseRulesJSON string `toml:"franchise_rules_json"`
	// StudioAllowlistJSON is a JSON array of canonical studio names. When
	// non-empty it replaces the automatic top-N studio selection.
	StudioAllowlistJSON string `toml:"studio_allowlist_json"`
}

// Workflow contains daemon timing configuration.
type Workflow struct {
	ScanInterval    int `toml:"scan_interval"`    // minutes between scans
	ShutdownTimeout int `toml:"shutdown_timeout"` // seconds
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for curator.
type Config struct {
	Server   Server   `toml:"server"`
	Jellyfin Jellyfin `toml:"jellyfin"`
	Storage  Storage  `toml:"storage"`
	Suggest  Suggest  `toml:"suggest"`
	Workflow Workflow `toml:"workflow"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/curator/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and rule tables checked.
func Load(path string) (*Config, string, bool, error) {
	cfg, resolvedPath, exists, err := LoadForInspection(path)
	if err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return cfg, resolvedPath, exists, nil
}

// LoadForInspection parses and normalizes a configuration file without
// validating it, so display commands can work with incomplete settings.
func LoadForInspection(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("curator.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Storage.DataDir, c.LogDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the SQLite database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Storage.DataDir, "curator.db")
}

// LogDir returns the directory log files are written to.
func (c *Config) LogDir() string {
	if strings.TrimSpace(c.Storage.DataDir) == "" {
		return ""
	}
	return filepath.Join(c.Storage.DataDir, "logs")
}

// LockPath returns the daemon single-instance lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Storage.DataDir, "curatord.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
