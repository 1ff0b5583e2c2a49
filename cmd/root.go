// =============================================================================
// Hold Grid Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All subcommands
// ('convert', 'validate', 'version') attach to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (holdgrid)
//   ├── convertCmd  (holdgrid convert)
//   ├── validateCmd (holdgrid validate)
//   └── versionCmd  (holdgrid version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/homewall/holdgrid/internal/config"
)

// cfgFile holds the path to an optional grid-profile YAML file.
// When empty, the built-in reference profile is used.
var cfgFile string

// verbose enables per-run diagnostics (validation findings, parse detail).
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "holdgrid",
	Short: "Hold Grid Converter - Generate OpenSCAD hold data from hold map grids",
	Long: `Hold Grid Converter turns the two CSV grids exported from a climbing
wall's hold map workbook (the Main Line grid and the Aux grid) into one
OpenSCAD data file for the homewall geometry model.

The mainline grid supplies horizontal-orientation angles on the even
columns, the aux grid vertical-orientation angles on the odd columns.
Both are merged into one table keyed by (column, row), missing kickboard
positions are filled with default angles, and the result is rendered as
static OpenSCAD arrays plus lookup functions.

Example Usage:
  holdgrid convert "Main Line Grid.csv" "Aux Grid.csv" kilter_angles.scad
  holdgrid convert --workbook "10x12 Hold Map.xlsx" "Main Line Grid" "Aux Grid" out.scad
  holdgrid validate "Main Line Grid.csv" "Aux Grid.csv"`,

	Run: func(cmd *cobra.Command, args []string) {
		// Without a subcommand there is nothing to do but explain.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
// Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to a grid-profile YAML file (default: built-in reference layout)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig resolves the grid profile for a run: the built-in reference
// layout, or the --config file layered over it.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load grid profile: %w", err)
	}

	if verbose {
		fmt.Printf("Using grid profile: %s\n", cfgFile)
	}
	return cfg, nil
}
