// =============================================================================
// Hold Grid Converter - Converter Module
// =============================================================================
//
// This module orchestrates the conversion pipeline for one run:
//
//   1. Parse the mainline (horizontal) grid export
//   2. Parse the aux (vertical) grid export
//   3. Scan each grid for header pairs and extract hold facts
//   4. Merge both sources into the hold table
//   5. Fill missing kickboard entries with default angles
//   6. Render the OpenSCAD data file
//   7. Write the output atomically, optionally archiving the inputs
//
// The two scans are sequential; they share nothing but the hold table
// they merge into, and the whole run is bounded to a few hundred rows.
//
// =============================================================================

package converter

import (
	"fmt"

	"github.com/homewall/holdgrid/internal/config"
	"github.com/homewall/holdgrid/internal/gridparser"
	"github.com/homewall/holdgrid/internal/holdtable"
	"github.com/homewall/holdgrid/internal/scadwriter"
	"github.com/homewall/holdgrid/internal/scanner"
	"github.com/homewall/holdgrid/internal/validation"
	"github.com/homewall/holdgrid/pkg/utils"
)

// =============================================================================
// OPTIONS AND RESULT
// =============================================================================

// Options configures one conversion run.
type Options struct {
	// MainlinePath and AuxPath locate the two grid sources. In CSV mode
	// they are file paths; in workbook mode they are sheet names.
	MainlinePath string
	AuxPath      string

	// WorkbookPath, when set, switches to workbook mode: both grids are
	// read as sheets of this .xlsx file.
	WorkbookPath string

	// OutputPath is where the generated OpenSCAD file goes.
	OutputPath string

	// DryRun runs the whole pipeline but writes nothing.
	DryRun bool

	// ArchiveDir, when set, receives the input CSVs after a successful
	// conversion. Ignored in workbook and dry-run modes.
	ArchiveDir string

	// ErrorLogDir, when set, receives a log of validation findings
	// whenever a run produces any.
	ErrorLogDir string

	// Scad controls the rendered output.
	Scad scadwriter.GenerateOptions

	// Logf receives progress lines. Defaults to a no-op.
	Logf func(format string, args ...any)
}

// Result is the outcome of a successful run.
type Result struct {
	// OutputFile is the written file, or "" for dry runs.
	OutputFile string

	// Stats are the verification statistics of the merged table.
	Stats holdtable.Stats

	// Validation carries the non-fatal findings of the run.
	Validation *validation.Result

	// ArchivedFiles lists inputs moved to the archive directory.
	ArchivedFiles []string

	// ErrorLog is the validation log written for this run, if any.
	ErrorLog string
}

// =============================================================================
// CONVERTER
// =============================================================================

// Converter runs the conversion pipeline.
type Converter struct {
	cfg  *config.Config
	opts Options
	logf func(format string, args ...any)
}

// New creates a converter for one run.
func New(cfg *config.Config, opts Options) *Converter {
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Converter{cfg: cfg, opts: opts, logf: logf}
}

// Run executes the full pipeline and returns the run's result.
func (c *Converter) Run() (*Result, error) {
	table, err := c.BuildTable()
	if err != nil {
		return nil, err
	}

	result := &Result{
		Stats:      table.Stats(),
		Validation: validation.Validate(table, c.cfg),
	}

	if c.opts.ErrorLogDir != "" && len(result.Validation.Findings) > 0 {
		lines := make([]string, 0, len(result.Validation.Findings))
		for i := range result.Validation.Findings {
			lines = append(lines, result.Validation.Findings[i].Error())
		}
		logPath, err := utils.WriteErrorLog(c.opts.ErrorLogDir, lines)
		if err != nil {
			return nil, err
		}
		result.ErrorLog = logPath
	}

	output := scadwriter.Generate(table, c.opts.Scad)

	if c.opts.DryRun {
		c.logf("Dry run: skipping write of %s (%d bytes)\n", c.opts.OutputPath, len(output))
		return result, nil
	}

	if err := utils.WriteFileAtomic(c.opts.OutputPath, output); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", c.opts.OutputPath, err)
	}
	result.OutputFile = c.opts.OutputPath

	if c.opts.ArchiveDir != "" && c.opts.WorkbookPath == "" {
		for _, path := range []string{c.opts.MainlinePath, c.opts.AuxPath} {
			dest, err := utils.ArchiveFile(path, c.opts.ArchiveDir)
			if err != nil {
				return nil, fmt.Errorf("conversion succeeded but archival failed: %w", err)
			}
			result.ArchivedFiles = append(result.ArchivedFiles, dest)
		}
	}

	return result, nil
}

// BuildTable runs the extraction half of the pipeline: parse both grids,
// scan them, merge the facts, and fill kickboard defaults. The validate
// subcommand uses this directly.
func (c *Converter) BuildTable() (*holdtable.Table, error) {
	mainline, aux, err := c.loadGrids()
	if err != nil {
		return nil, err
	}

	table := holdtable.New()

	c.logf("Processing Mainline (horizontal) holds from: %s\n", mainline.Source)
	c.mergeGrid(table, mainline, c.cfg.Mainline, holdtable.Horizontal)

	c.logf("Processing Auxiliary (vertical) holds from: %s\n", aux.Source)
	c.mergeGrid(table, aux, c.cfg.Aux, holdtable.Vertical)

	table.FillKickboardDefaults(c.cfg)

	return table, nil
}

// loadGrids reads both sources in the configured mode.
func (c *Converter) loadGrids() (mainline, aux *gridparser.Grid, err error) {
	if c.opts.WorkbookPath != "" {
		grids, err := gridparser.ParseWorkbookSheets(c.opts.WorkbookPath, c.opts.MainlinePath, c.opts.AuxPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read workbook: %w", err)
		}
		return grids[0], grids[1], nil
	}

	mainline, err = gridparser.ParseCSV(c.opts.MainlinePath, c.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse mainline grid: %w", err)
	}

	aux, err = gridparser.ParseCSV(c.opts.AuxPath, c.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse aux grid: %w", err)
	}

	return mainline, aux, nil
}

// mergeGrid scans one grid and records every extractable fact.
func (c *Converter) mergeGrid(table *holdtable.Table, grid *gridparser.Grid, profile config.SourceProfile, orientation holdtable.Orientation) {
	pairs := scanner.Scan(grid, profile, c.cfg.Markers)

	facts := 0
	for _, pair := range pairs {
		for _, fact := range scanner.ExtractFacts(grid, pair, profile, orientation) {
			table.Record(fact)
			facts++
		}
	}

	c.logf("  %d header pair(s), %d %s hold(s)\n", len(pairs), facts, orientation)
}
