// =============================================================================
// Hold Grid Converter - Validation Module
// =============================================================================
//
// This module inspects a merged hold table and reports conditions worth a
// human look before the generated file is trusted. Conversion itself is
// deliberately best-effort (the grids are hand-maintained spreadsheets),
// so none of these findings stop a run; the validate subcommand surfaces
// them, and convert mentions them when verbose.
//
// CHECKS:
//   - Kickboard coverage: every even column has a K1 entry, every odd
//     column a K2 entry (guaranteed after default filling)
//   - Label conflicts: positions where the two sources disagreed on the
//     hold number (the first writer's label was kept)
//   - Angle sanity: angles outside 0..360 degrees
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/homewall/holdgrid/internal/config"
	"github.com/homewall/holdgrid/internal/holdtable"
)

// =============================================================================
// FINDINGS
// =============================================================================

// Severity classifies a finding.
type Severity string

const (
	// SeverityError marks findings that indicate the output is incomplete.
	SeverityError Severity = "ERROR"

	// SeverityWarning marks findings that are suspicious but tolerated.
	SeverityWarning Severity = "WARNING"
)

// Finding is one validation result tied to a hold position.
type Finding struct {
	Severity Severity
	Column   int
	Row      holdtable.RowID
	Message  string
}

// Error renders the finding for reports and logs.
func (f *Finding) Error() string {
	return fmt.Sprintf("[%s] hold %s: %s", f.Severity, holdtable.Key(f.Column, f.Row), f.Message)
}

// Result collects the findings of one validation pass.
type Result struct {
	Findings []Finding
}

// HasErrors reports whether any finding is an error.
func (r *Result) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Warnings counts the warning-level findings.
func (r *Result) Warnings() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate runs all checks against a merged, default-filled hold table.
func Validate(table *holdtable.Table, cfg *config.Config) *Result {
	result := &Result{}
	checkKickboardCoverage(result, table, cfg)
	checkLabelConflicts(result, table)
	checkAngleRanges(result, table)
	return result
}

// checkKickboardCoverage verifies the default-fill guarantee: full K1
// coverage on even columns and K2 coverage on odd columns.
func checkKickboardCoverage(result *Result, table *holdtable.Table, cfg *config.Config) {
	for col := 2; col <= cfg.MaxColumn; col += 2 {
		if _, ok := table.Entry(col, holdtable.KickboardHorizontal); !ok {
			result.Findings = append(result.Findings, Finding{
				Severity: SeverityError,
				Column:   col,
				Row:      holdtable.KickboardHorizontal,
				Message:  "missing horizontal kickboard entry",
			})
		}
	}
	for col := 1; col <= cfg.MaxColumn; col += 2 {
		if _, ok := table.Entry(col, holdtable.KickboardVertical); !ok {
			result.Findings = append(result.Findings, Finding{
				Severity: SeverityError,
				Column:   col,
				Row:      holdtable.KickboardVertical,
				Message:  "missing vertical kickboard entry",
			})
		}
	}
}

// checkLabelConflicts surfaces hold numbers that were silently discarded
// during merging. The merge keeps the first writer's label; a conflict
// usually means the two grid exports disagree about a physical hold.
func checkLabelConflicts(result *Result, table *holdtable.Table) {
	for _, c := range table.Conflicts() {
		result.Findings = append(result.Findings, Finding{
			Severity: SeverityWarning,
			Column:   c.Column,
			Row:      c.Row,
			Message:  fmt.Sprintf("conflicting hold numbers: kept %q, discarded %q", c.Kept, c.Discarded),
		})
	}
}

// checkAngleRanges flags angles outside a physical 0..360 degree range.
func checkAngleRanges(result *Result, table *holdtable.Table) {
	for _, col := range table.Columns() {
		for _, row := range table.Rows(col) {
			entry, ok := table.Entry(col, row)
			if !ok {
				continue
			}
			for _, angle := range []int{entry.AngleH, entry.AngleV} {
				if angle < 0 || angle > 360 {
					result.Findings = append(result.Findings, Finding{
						Severity: SeverityWarning,
						Column:   col,
						Row:      row,
						Message:  fmt.Sprintf("angle %d out of range", angle),
					})
					break
				}
			}
		}
	}
}

// =============================================================================
// REPORTING
// =============================================================================

// FormatReport renders the findings as a human-readable report.
func FormatReport(result *Result) string {
	if len(result.Findings) == 0 {
		return "No validation findings.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Validation findings (%d):\n", len(result.Findings))
	for i := range result.Findings {
		fmt.Fprintf(&b, "  %s\n", result.Findings[i].Error())
	}
	return b.String()
}
