// Command curatord runs the curator daemon: it rescans the Jellyfin library
// on an interval and serves the HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"curator/internal/api"
	"curator/internal/config"
	"curator/internal/daemon"
	"curator/internal/logging"
	"curator/internal/services/jellyfin"
	"curator/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "curatord: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	client := jellyfin.NewClient(cfg)
	service := api.NewService(cfg, st, client, client, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return daemon.New(cfg, service, logger).Run(ctx)
}
