package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"curator/internal/suggest"
)

func newSuggestionsCommand(cmdCtx *commandContext) *cobra.Command {
	var typeFilter string

	cmd := &cobra.Command{
		Use:   "suggestions",
		Short: "List stored suggestions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cleanup, err := cmdCtx.openService()
			if err != nil {
				return err
			}
			defer cleanup()

			suggestions, err := service.List(cmd.Context(), typeFilter)
			if err != nil {
				return err
			}

			if cmdCtx.jsonOutput {
				return printJSON(suggestions)
			}
			if len(suggestions) == 0 {
				fmt.Println("No suggestions stored. Run `curator scan` first.")
				return nil
			}
			renderSuggestions(os.Stdout, suggestions)
			return nil
		},
	}

	types := make([]string, 0, len(suggest.AllTypes()))
	for _, t := range suggest.AllTypes() {
		types = append(types, string(t))
	}
	cmd.Flags().StringVar(&typeFilter, "type", "",
		"only show one suggestion type ("+strings.Join(types, ", ")+")")
	return cmd
}
