// =============================================================================
// Hold Grid Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, the main operation of the tool.
//
// COMMAND USAGE:
//   holdgrid convert <mainline> <aux> <output_file> [flags]
//
// FLAGS:
//   --workbook    : Read the two grids as sheets of this .xlsx workbook
//                   (the positional args become sheet names)
//   --dry-run     : Run the pipeline and print statistics, write nothing
//   --archive-dir : Move the input CSVs here after successful conversion
//   --no-trace    : Omit debug echo statements from the generated lookups
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/homewall/holdgrid/internal/converter"
	"github.com/homewall/holdgrid/internal/scadwriter"
	"github.com/homewall/holdgrid/internal/validation"
)

// dryRun simulates processing without writing output files.
var dryRun bool

// workbookPath switches both grid args to sheet names of this workbook.
var workbookPath string

// archiveDir receives the processed input CSVs on success.
var archiveDir string

// noTrace strips the cosmetic echo statements from the generated lookups.
var noTrace bool

// errorLogDir receives a log of validation findings, when any occur.
var errorLogDir string

// convertCmd represents the 'convert' command.
var convertCmd = &cobra.Command{
	Use:   "convert <mainline> <aux> <output_file>",
	Short: "Convert the two hold map grids into an OpenSCAD data file",
	Long: `The convert command reads the mainline (horizontal) and aux (vertical)
grid exports, merges them into one hold table, fills missing kickboard
positions with default angles, and writes the resulting OpenSCAD data
file.

By default the two grid arguments are CSV file paths. With --workbook
they are sheet names inside the given .xlsx hold map, read directly
without a CSV export step.`,

	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(args[0], args[1], args[2])
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Simulate processing without writing output files",
	)

	convertCmd.Flags().StringVar(
		&workbookPath,
		"workbook",
		"",
		"Read grids as sheets of this .xlsx workbook",
	)

	convertCmd.Flags().StringVar(
		&archiveDir,
		"archive-dir",
		"",
		"Move input CSVs to this directory after successful conversion",
	)

	convertCmd.Flags().StringVar(
		&errorLogDir,
		"error-log-dir",
		"",
		"Write a log of validation findings to this directory",
	)

	convertCmd.Flags().BoolVar(
		&noTrace,
		"no-trace",
		false,
		"Omit debug echo statements from the generated lookup functions",
	)
}

// runConvert executes the conversion pipeline and reports the outcome.
func runConvert(mainlinePath, auxPath, outputPath string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	scadOpts := scadwriter.DefaultGenerateOptions(cfg)
	scadOpts.IncludeDebugEchoes = !noTrace

	conv := converter.New(cfg, converter.Options{
		MainlinePath: mainlinePath,
		AuxPath:      auxPath,
		WorkbookPath: workbookPath,
		OutputPath:   outputPath,
		DryRun:       dryRun,
		ArchiveDir:   archiveDir,
		ErrorLogDir:  errorLogDir,
		Scad:         scadOpts,
		Logf: func(format string, args ...any) {
			fmt.Printf(format, args...)
		},
	})

	result, err := conv.Run()
	if err != nil {
		return err
	}

	if result.OutputFile != "" {
		fmt.Printf("Successfully generated OpenSCAD code in %s\n", result.OutputFile)
	}

	// Verification statistics for eyeballing against the source workbook.
	stats := result.Stats
	fmt.Printf("Found %d holds\n", stats.Total)
	fmt.Printf("Horizontal holds: %d\n", stats.Horizontal)
	fmt.Printf("Vertical holds: %d\n", stats.Vertical)
	fmt.Printf("K1 (horizontal kicker) holds: %d\n", stats.KickboardH)
	fmt.Printf("K2 (vertical kicker) holds: %d\n", stats.KickboardV)

	if n := len(result.Validation.Findings); n > 0 {
		if verbose {
			fmt.Print(validation.FormatReport(result.Validation))
		} else {
			fmt.Printf("%d validation finding(s); run 'holdgrid validate' for details\n", n)
		}
	}

	if result.ErrorLog != "" {
		fmt.Printf("Validation findings logged to %s\n", result.ErrorLog)
	}

	for _, archived := range result.ArchivedFiles {
		fmt.Printf("Archived input: %s\n", archived)
	}

	return nil
}
