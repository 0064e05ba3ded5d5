package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"curator/internal/api"
)

// newTable builds a table writer with the rendering style used across the
// CLI. Fancy borders only appear on a real terminal.
func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	if file, ok := out.(*os.File); ok && isatty.IsTerminal(file.Fd()) {
		t.SetStyle(table.StyleRounded)
	} else {
		t.SetStyle(table.StyleLight)
	}
	t.Style().Format.Header = text.FormatUpper
	return t
}

// printJSON writes indented JSON to stdout for --json mode.
func printJSON(payload any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

// renderSuggestions prints the standard suggestion listing table.
func renderSuggestions(out io.Writer, suggestions []api.Suggestion) {
	t := newTable(out)
	t.AppendHeader(table.Row{"ID", "Type", "Title", "Conf", "Items", "Applied", "Reason"})
	for _, sg := range suggestions {
		t.AppendRow(table.Row{
			shortID(sg.ID),
			sg.Type,
			sg.Title,
			fmt.Sprintf("%.2f", sg.Confidence),
			sg.ItemCount,
			appliedMark(sg.Applied),
			truncate(sg.Reason, 48),
		})
	}
	t.Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func appliedMark(applied bool) string {
	if applied {
		return "yes"
	}
	return ""
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max-1]) + "…"
}
