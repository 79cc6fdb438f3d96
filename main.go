// =============================================================================
// Contentful CSV Importer - Main Entry Point
// =============================================================================
//
// This is the main entry point for the cfimp CLI application. It hands
// control to the Cobra command tree in the cmd package.
//
// USAGE:
//   cfimp model:page space:abc123 locale:en-US [options] - Import a file
//   cfimp fields input:import.csv locale:en-US           - Show the columns
//   cfimp version                                        - Display the version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core logic (not for external import)
//   - pkg/       : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/cfimp/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
