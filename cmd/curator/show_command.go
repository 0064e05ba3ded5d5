package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newShowCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one suggestion in full, including its item IDs",
		Args:  cobra.ExactArgs(1),
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
			suggestion, err := service.Describe(cmd.Context(), id)
			if err != nil {
				return err
			}

			if cmdCtx.jsonOutput {
				return printJSON(suggestion)
			}

			t := newTable(os.Stdout)
			t.AppendRow(table.Row{"ID", suggestion.ID})
			t.AppendRow(table.Row{"Type", suggestion.Type})
			t.AppendRow(table.Row{"Title", suggestion.Title})
			t.AppendRow(table.Row{"Confidence", fmt.Sprintf("%.2f", suggestion.Confidence)})
			t.AppendRow(table.Row{"Items", suggestion.ItemCount})
			t.AppendRow(table.Row{"Reason", suggestion.Reason})
			t.AppendRow(table.Row{"Applied", appliedMark(suggestion.Applied)})
			if suggestion.AppliedCollectionID != "" {
				t.AppendRow(table.Row{"Collection", suggestion.AppliedCollectionID})
			}
			t.AppendRow(table.Row{"Created", suggestion.CreatedAt.Format("2006-01-02 15:04:05 MST")})
			t.Render()

			fmt.Println("Item IDs:")
			for _, itemID := range suggestion.ItemIDs {
				fmt.Printf("  %s\n", itemID)
			}
			return nil
		},
	}
}
