// Command curator is the command line interface for the suggestion engine:
// scan the Jellyfin library, inspect suggestions, and apply them as
// collections.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
