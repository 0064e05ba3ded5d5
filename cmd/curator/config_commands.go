package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"curator/internal/config"
)

func newConfigCommand(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the curator configuration file",
	}
	cmd.AddCommand(newConfigInitCommand(cmdCtx), newConfigShowCommand(cmdCtx))
	return cmd
}

func newConfigInitCommand(cmdCtx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented sample config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cmdCtx.configPath
			if path == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				path = defaultPath
			} else {
				expanded, err := config.ExpandPath(path)
				if err != nil {
					return err
				}
				path = expanded
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			if err := config.CreateSample(path); err != nil {
				return err
			}
			fmt.Printf("Wrote sample config to %s\n", path)
			fmt.Println("Edit it to set jellyfin.url and jellyfin.api_key.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newConfigShowCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.LoadForInspection(cmdCtx.configPath)
			if err != nil {
				return err
			}
			validationErr := cfg.Validate()

			if cmdCtx.jsonOutput {
				payload := map[string]any{
					"path":   path,
					"exists": exists,
					"config": redacted(cfg),
				}
				if validationErr != nil {
					payload["validationError"] = validationErr.Error()
				}
				return printJSON(payload)
			}

			if exists {
				fmt.Printf("Config file: %s\n", path)
			} else {
				fmt.Printf("Config file: %s (not found, showing defaults)\n", path)
			}
			fmt.Printf("Server bind:   %s\n", cfg.Server.Bind)
			fmt.Printf("Jellyfin URL:  %s\n", cfg.Jellyfin.URL)
			fmt.Printf("API key:       %s\n", maskSecret(cfg.Jellyfin.APIKey))
			fmt.Printf("Dry run:       %t\n", cfg.Jellyfin.DryRun)
			fmt.Printf("Data dir:      %s\n", cfg.Storage.DataDir)
			fmt.Printf("Min group:     %d\n", cfg.Suggest.MinGroupSize)
			fmt.Printf("Top studios:   %d\n", cfg.Suggest.TopStudios)
			fmt.Printf("Scan interval: %d minutes\n", cfg.Workflow.ScanInterval)
			fmt.Printf("Logging:       %s/%s\n", cfg.Logging.Format, cfg.Logging.Level)
			if validationErr != nil {
				fmt.Printf("\nWarning: %v\n", validationErr)
			}
			return nil
		},
	}
}

// redacted deep-copies the config with the API key masked for JSON output.
func redacted(cfg *config.Config) config.Config {
	copied := *cfg
	copied.Jellyfin.APIKey = maskSecret(copied.Jellyfin.APIKey)
	return copied
}

func maskSecret(secret string) string {
	if secret == "" {
		return "(unset)"
	}
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:2] + "****" + secret[len(secret)-2:]
}
