package config

import (
	"os"
	"strings"
)

// normalize trims string fields, applies environment fallbacks, and expands
// filesystem paths so the rest of the program never sees a tilde.
func (c *Config) normalize() error {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)

	c.Jellyfin.URL = strings.TrimRight(strings.TrimSpace(c.Jellyfin.URL), "/")
	c.Jellyfin.APIKey = strings.TrimSpace(c.Jellyfin.APIKey)
	if c.Jellyfin.APIKey == "" {
		c.Jellyfin.APIKey = strings.TrimSpace(os.Getenv("JELLYFIN_API_KEY"))
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	c.Suggest.FranchiseRulesJSON = strings.TrimSpace(c.Suggest.FranchiseRulesJSON)
	c.Suggest.StudioAllowlistJSON = strings.TrimSpace(c.Suggest.StudioAllowlistJSON)

	dataDir, err := expandPath(strings.TrimSpace(c.Storage.DataDir))
	if err != nil {
		return err
	}
	c.Storage.DataDir = dataDir

	return nil
}
