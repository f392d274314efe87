// Package main is the entry point for the units CLI.
package main

import (
	"os"

	"units-system/cmd/cli/cmd"
	"units-system/internal/logging"
)

func main() {
	defer logging.Sync()
	if err := cmd.Execute(); err != nil {
		logging.Sync()
		os.Exit(1)
	}
}
