package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newApplyCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <id>",
		Short: "Create a Jellyfin collection from a suggestion",
		Long: `Apply turns a stored suggestion into a real collection on the Jellyfin
server and marks it applied. With jellyfin.dry_run enabled (the default)
it only reports what would happen.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cleanup, err := cmdCtx.openService()
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveSuggestionID(cmd.Context(), service, args[0])
			if err != nil {
				return err
			}
			result, err := service.Apply(cmd.Context(), id)
			if err != nil {
				return err
			}

			if cmdCtx.jsonOutput {
				return printJSON(result)
			}

			switch {
			case result.DryRun:
				fmt.Printf("Dry run: would create collection %q with %d items.\n",
					result.Title, result.ItemCount)
				fmt.Println("Set jellyfin.dry_run = false to apply for real.")
			case result.AlreadyApplied:
				fmt.Printf("Suggestion %q was already applied (collection %s).\n",
					result.Title, result.CollectionID)
			default:
				fmt.Printf("Created collection %q (%s) with %d items.\n",
					result.Title, result.CollectionID, result.ItemCount)
			}
			return nil
		},
	}
}

func newClearAppliedCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-applied",
		Short: "Forget which suggestions were applied",
		Long: `Clear-applied resets the applied flag on every suggestion so the next
scan regenerates them. Collections already created on the server are not
touched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cleanup, err := cmdCtx.openService()
			if err != nil {
				return err
			}
			defer cleanup()

			cleared, err := service.ClearApplied(cmd.Context())
			if err != nil {
				return err
			}

			if cmdCtx.jsonOutput {
				return printJSON(map[string]int{"cleared": cleared})
			}
			fmt.Printf("Cleared %d applied suggestions.\n", cleared)
			return nil
		},
	}
}
