package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show stored item and suggestion counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cleanup, err := cmdCtx.openService()
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := service.Stats(cmd.Context())
			if err != nil {
				return err
			}

			if cmdCtx.jsonOutput {
				return printJSON(stats)
			}
			fmt.Printf("Movies:      %d\n", stats.Items)
			fmt.Printf("Suggestions: %d (%d applied, %d pending)\n",
				stats.Suggestions, stats.Applied, stats.Unapplied)
			return nil
		},
	}
}
