// =============================================================================
// Hold Grid Converter - OpenSCAD Writer Module
// =============================================================================
//
// This module renders the merged hold table into the OpenSCAD data file
// consumed by the homewall geometry model. The file contains:
//
//   angle_data   = [ ["<col>_<row>", [angle_h, angle_v]], ... ];
//   hold_numbers = [ ["<col>_<row>", "<label>"], ... ];
//
// followed by four OpenSCAD functions: a numeric-type predicate, a
// kicker-row predicate, and the two lookup functions (angle by position
// and orientation, hold number by position). Lookups that miss the arrays
// fall back to column-parity defaults, matching the kickboard filling.
//
// Output is fully deterministic: columns ascend numerically, rows within a
// column sort numbered-rows-first, and nothing in the file depends on the
// run (no timestamps). Converting unchanged inputs twice yields identical
// bytes.
//
// =============================================================================

package scadwriter

import (
	"fmt"
	"strings"

	"github.com/homewall/holdgrid/internal/config"
	"github.com/homewall/holdgrid/internal/holdtable"
)

// =============================================================================
// GENERATION OPTIONS
// =============================================================================

// GenerateOptions controls the rendered file.
type GenerateOptions struct {
	// Indent is the indentation used inside the arrays.
	Indent string

	// IncludeDebugEchoes embeds echo() trace statements in the generated
	// lookup functions. They are cosmetic console output for debugging a
	// model render and carry no functional weight.
	IncludeDebugEchoes bool

	// EvenDefault and OddDefault are the angle pairs returned by the
	// generated get_angle when a key is absent, chosen by column parity.
	// They mirror the kickboard fill defaults.
	EvenDefault config.KickboardDefaults
	OddDefault  config.KickboardDefaults
}

// DefaultGenerateOptions returns options matching the reference layout.
func DefaultGenerateOptions(cfg *config.Config) GenerateOptions {
	return GenerateOptions{
		Indent:             "    ",
		IncludeDebugEchoes: true,
		EvenDefault:        cfg.KickboardHorizontal,
		OddDefault:         cfg.KickboardVertical,
	}
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate renders the hold table as OpenSCAD source.
func Generate(table *holdtable.Table, opts GenerateOptions) []byte {
	var b strings.Builder

	b.WriteString("// Hold angle data for Kilter Homewall\n")
	b.WriteString("// Generated from CSV data\n\n")

	writeAngleData(&b, table, opts)
	writeHoldNumbers(&b, table, opts)
	writeHelperFunctions(&b)
	writeGetAngle(&b, opts)
	writeGetHoldNumber(&b, opts)

	return []byte(b.String())
}

// writeAngleData renders the angle_data array.
func writeAngleData(b *strings.Builder, table *holdtable.Table, opts GenerateOptions) {
	b.WriteString("// Static array with hold angles\n")
	b.WriteString("// Format: [angle_h, angle_v] for each position\n")
	b.WriteString("angle_data = [\n")

	forEachEntry(table, func(key string, entry *holdtable.Entry) {
		fmt.Fprintf(b, "%s[\"%s\", [%d, %d]],\n", opts.Indent, key, entry.AngleH, entry.AngleV)
	})

	b.WriteString("];\n\n")
}

// writeHoldNumbers renders the hold_numbers array.
func writeHoldNumbers(b *strings.Builder, table *holdtable.Table, opts GenerateOptions) {
	b.WriteString("// Static array with hold numbers\n")
	b.WriteString("// Format: hold_number for each position\n")
	b.WriteString("hold_numbers = [\n")

	forEachEntry(table, func(key string, entry *holdtable.Entry) {
		fmt.Fprintf(b, "%s[\"%s\", \"%s\"],\n", opts.Indent, key, entry.HoldNumber)
	})

	b.WriteString("];\n\n")
}

// forEachEntry visits every entry in serialization order: ascending
// columns, rows ordered numbered-then-kickboard within each column.
func forEachEntry(table *holdtable.Table, visit func(key string, entry *holdtable.Entry)) {
	for _, col := range table.Columns() {
		for _, row := range table.Rows(col) {
			entry, ok := table.Entry(col, row)
			if !ok {
				continue
			}
			visit(holdtable.Key(col, row), entry)
		}
	}
}

// writeHelperFunctions renders the two type predicates used by the model.
func writeHelperFunctions(b *strings.Builder) {
	b.WriteString("// Helper function to check if a value is a number\n")
	b.WriteString("function is_num(val) =\n")
	b.WriteString("    is_undef(val) ? false :\n")
	b.WriteString("    is_string(val) ? false :\n")
	b.WriteString("    is_list(val) ? false :\n")
	b.WriteString("    is_bool(val) ? false :\n")
	b.WriteString("    true;\n\n")

	b.WriteString("// Helper function to check if a row is a kicker row (K1 or K2)\n")
	b.WriteString("function is_kicker_row(row) =\n")
	fmt.Fprintf(b, "    is_string(row) && (row == \"%s\" || row == \"%s\");\n\n",
		holdtable.KickboardHorizontal, holdtable.KickboardVertical)
}

// writeGetAngle renders the angle lookup function.
func writeGetAngle(b *strings.Builder, opts GenerateOptions) {
	b.WriteString("// Function to find angle data for a position\n")
	b.WriteString("function get_angle(col, row, is_horizontal) =\n")
	b.WriteString("    let(\n")

	if opts.IncludeDebugEchoes {
		b.WriteString("        debug_1 = echo(\"DEBUG - get_angle:\"),\n")
		b.WriteString("        debug_2 = echo(\"  col:\", col, \"row:\", row, \"is_horizontal:\", is_horizontal),\n")
	}

	b.WriteString("        // Key format matches the angle_data array\n")
	b.WriteString("        key = str(col, \"_\", is_string(row) ? row : str(row)),\n")

	if opts.IncludeDebugEchoes {
		b.WriteString("        debug_3 = echo(\"  key:\", key),\n")
	}

	b.WriteString("        indices = [for (i = [0:len(angle_data)-1])\n")
	b.WriteString("                  if (angle_data[i][0] == key) i],\n")

	if opts.IncludeDebugEchoes {
		b.WriteString("        debug_4 = echo(\"  indices:\", indices),\n")
	}

	b.WriteString("        // Fall back to column-parity defaults when the key is absent\n")
	b.WriteString("        angles = (len(indices) > 0) ?\n")
	b.WriteString("                 angle_data[indices[0]][1] :\n")
	fmt.Fprintf(b, "                 (col %% 2 == 0) ? [%d, %d] : [%d, %d]",
		opts.EvenDefault.AngleH, opts.EvenDefault.AngleV,
		opts.OddDefault.AngleH, opts.OddDefault.AngleV)

	if opts.IncludeDebugEchoes {
		b.WriteString(",\n")
		b.WriteString("        debug_5 = echo(\"  angles:\", angles)\n")
	} else {
		b.WriteString("\n")
	}

	b.WriteString("    )\n")
	b.WriteString("    is_horizontal ? angles[0] : angles[1];\n\n")
}

// writeGetHoldNumber renders the hold-number lookup function.
func writeGetHoldNumber(b *strings.Builder, opts GenerateOptions) {
	b.WriteString("// Function to find hold number for a position\n")
	b.WriteString("function get_hold_number(col, row) =\n")
	b.WriteString("    let(\n")

	if opts.IncludeDebugEchoes {
		b.WriteString("        debug_1 = echo(\"DEBUG - get_hold_number:\"),\n")
		b.WriteString("        debug_2 = echo(\"  col:\", col, \"row:\", row),\n")
	}

	b.WriteString("        // Key format matches the hold_numbers array\n")
	b.WriteString("        key = str(col, \"_\", is_string(row) ? row : str(row)),\n")

	if opts.IncludeDebugEchoes {
		b.WriteString("        debug_3 = echo(\"  key:\", key),\n")
	}

	b.WriteString("        indices = [for (i = [0:len(hold_numbers)-1])\n")
	b.WriteString("                  if (hold_numbers[i][0] == key) i],\n")

	if opts.IncludeDebugEchoes {
		b.WriteString("        debug_4 = echo(\"  indices:\", indices),\n")
	}

	b.WriteString("        // Synthesize a label when the key is absent\n")
	b.WriteString("        number = (len(indices) > 0) ?\n")
	b.WriteString("                 hold_numbers[indices[0]][1] :\n")
	b.WriteString("                 str(\"C\", col, \"_R\", row)")

	if opts.IncludeDebugEchoes {
		b.WriteString(",\n")
		b.WriteString("        debug_5 = echo(\"  number:\", number)\n")
	} else {
		b.WriteString("\n")
	}

	b.WriteString("    )\n")
	b.WriteString("    number;\n")
}
