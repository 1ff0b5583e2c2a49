// =============================================================================
// Hold Grid Converter - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which runs the extraction half
// of the pipeline and reports what a conversion would find, without
// writing anything.
//
// COMMAND USAGE:
//   holdgrid validate <mainline> <aux> [flags]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/homewall/holdgrid/internal/converter"
	"github.com/homewall/holdgrid/internal/validation"
)

// validateWorkbook switches both grid args to sheet names of this workbook.
var validateWorkbook string

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate <mainline> <aux>",
	Short: "Check the hold map grids without generating output",
	Long: `The validate command parses and merges both grid exports exactly as
convert would, then reports hold statistics and any findings: missing
kickboard coverage, conflicting hold numbers between the two grids, and
out-of-range angles.

The command exits non-zero when an error-level finding is present.`,

	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(
		&validateWorkbook,
		"workbook",
		"",
		"Read grids as sheets of this .xlsx workbook",
	)
}

// runValidate builds the hold table and reports on it.
func runValidate(mainlinePath, auxPath string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	conv := converter.New(cfg, converter.Options{
		MainlinePath: mainlinePath,
		AuxPath:      auxPath,
		WorkbookPath: validateWorkbook,
		Logf: func(format string, args ...any) {
			fmt.Printf(format, args...)
		},
	})

	table, err := conv.BuildTable()
	if err != nil {
		return err
	}

	stats := table.Stats()
	fmt.Printf("Found %d holds (%d horizontal, %d vertical)\n",
		stats.Total, stats.Horizontal, stats.Vertical)
	fmt.Printf("Kickboard coverage: %d K1 column(s), %d K2 column(s)\n",
		stats.KickboardH, stats.KickboardV)

	result := validation.Validate(table, cfg)
	fmt.Print(validation.FormatReport(result))

	if result.HasErrors() {
		return fmt.Errorf("validation failed with error-level findings")
	}

	return nil
}
