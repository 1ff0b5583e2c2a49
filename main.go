// =============================================================================
// Hold Grid Converter - Main Entry Point
// =============================================================================
//
// This is the entry point for the holdgrid CLI. It initializes the Cobra
// CLI framework and delegates command execution to the cmd package.
//
// USAGE:
//   holdgrid convert <mainline> <aux> <output>  - Generate the OpenSCAD data file
//   holdgrid validate <mainline> <aux>          - Check the grids without writing
//   holdgrid version                            - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core parsing, merging, and rendering logic
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/homewall/holdgrid/cmd"
)

func main() {
	cmd.Execute()
}
