// =============================================================================
// Hold Grid Converter - Grid Parser Module
// =============================================================================
//
// This module reads one grid export into a positional cell grid. The hold
// map grids are hand-maintained spreadsheets: irregular header rows, sparse
// markers, rows of wildly varying width. Nothing here interprets the cells;
// the scanner does that. The parser's only job is to deliver every row of
// text cells in order, tolerating the irregularities:
//   - Variable field counts per row
//   - Quotes that do not follow strict CSV rules
//   - Configurable delimiter
//
// =============================================================================

package gridparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/homewall/holdgrid/internal/config"
)

// =============================================================================
// GRID DATA STRUCTURE
// =============================================================================

// Grid is one parsed grid export.
type Grid struct {
	// Rows contains every row of the export as ordered text cells,
	// including header and spacer rows. The scanner decides which rows
	// carry data.
	Rows [][]string

	// Source names where the grid came from: a file path, or
	// "workbook.xlsx#Sheet" for workbook sheets. Used in error messages
	// and progress output.
	Source string
}

// RowCount returns the number of rows in the grid.
func (g *Grid) RowCount() int {
	return len(g.Rows)
}

// =============================================================================
// CSV PARSING
// =============================================================================

// ParseCSV reads a CSV grid export.
func ParseCSV(filePath string, cfg *config.Config) (*Grid, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	configureReader(reader, cfg)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("grid file is empty: %s", filePath)
	}

	return &Grid{Rows: rows, Source: filePath}, nil
}

// configureReader applies the grid profile's CSV settings.
func configureReader(reader *csv.Reader, cfg *config.Config) {
	switch cfg.Delimiter {
	case "\\t", "tab", "TAB":
		reader.Comma = '\t'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(cfg.Delimiter) > 0 {
			reader.Comma = rune(cfg.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Hand-maintained grids have ragged rows and loose quoting.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// Cell returns the trimmed cell at (row, col), or "" when the coordinates
// fall outside the grid. Most scanner decisions go through this accessor
// so that ragged rows read as runs of empty cells.
func (g *Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.Rows) {
		return ""
	}
	r := g.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// IsRowEmpty checks whether a row contains only blank cells.
func IsRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
