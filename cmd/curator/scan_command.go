package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScanCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Fetch the library from Jellyfin and regenerate suggestions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cleanup, err := cmdCtx.openService()
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := service.Scan(cmd.Context())
			if err != nil {
				return err
			}

			if cmdCtx.jsonOutput {
				return printJSON(result)
			}

			fmt.Printf("Scanned %d movies, %d suggestions.\n", result.Items, result.Suggestions)
			for _, skipped := range result.Skipped {
				fmt.Printf("Skipped %s: %s\n", skipped.Category, skipped.Error)
			}
			return nil
		},
	}
}
