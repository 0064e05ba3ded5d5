package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmdCtx := &commandContext{}

	root := &cobra.Command{
		Use:   "curator",
		Short: "Suggest and create Jellyfin collections from library metadata",
		Long: `curator scans a Jellyfin movie library and suggests collections:
franchise groupings, studio tags, and format, length, audience, and mood
tags. Suggestions are reviewed and applied explicitly; nothing changes on
the server until you ask for it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cmdCtx.configPath, "config", "", "path to config file")
	flags.BoolVar(&cmdCtx.jsonOutput, "json", false, "emit machine-readable JSON output")
	flags.BoolVar(&cmdCtx.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(
		newScanCommand(cmdCtx),
		newSuggestionsCommand(cmdCtx),
		newShowCommand(cmdCtx),
		newApplyCommand(cmdCtx),
		newClearAppliedCommand(cmdCtx),
		newStatsCommand(cmdCtx),
		newConfigCommand(cmdCtx),
	)
	return root
}
