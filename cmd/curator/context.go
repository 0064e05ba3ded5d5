package main

import (
	"log/slog"

	"curator/internal/api"
	"curator/internal/config"
	"curator/internal/logging"
	"curator/internal/services/jellyfin"
	"curator/internal/store"
)

// commandContext carries shared CLI state and lazily constructs the service
// stack the first time a command needs it.
type commandContext struct {
	configPath string
	jsonOutput bool
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

// loadConfig resolves and caches the configuration.
func (c *commandContext) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, _, _, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// newLogger returns a stderr console logger. CLI output itself goes to
// stdout; logs stay out of the way unless --verbose is set.
func (c *commandContext) newLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	level := "warn"
	if c.verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{
		Level:       level,
		Format:      "console",
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return logger, nil
}

// openService builds the full service stack. The returned cleanup closes the
// store and must always be called.
func (c *commandContext) openService() (*api.Service, func(), error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.newLogger()
	if err != nil {
		return nil, nil, err
	}

	st, err := store.Open(cfg)
	if err != nil {
		return nil, nil, err
	}

	client := jellyfin.NewClient(cfg)
	service := api.NewService(cfg, st, client, client, logger)
	cleanup := func() {
		if err := st.Close(); err != nil {
			logger.Warn("close store", logging.Error(err))
		}
	}
	return service, cleanup, nil
}
