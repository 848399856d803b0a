// Package main provides the DealerDesk data tooling CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/dealerdesk/dealerdesk/cmd/dealerdesk-cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
