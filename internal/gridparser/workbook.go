// =============================================================================
// Hold Grid Converter - Workbook Parser
// =============================================================================
//
// Workbook mode reads the grid sheets straight out of the source .xlsx
// hold map, skipping the manual per-sheet CSV export. The sheet contents
// come back as the same positional cell grid the CSV path produces, so
// everything downstream is identical.
//
// =============================================================================

package gridparser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ParseWorkbookSheet reads one sheet of an XLSX workbook as a grid.
func ParseWorkbookSheet(workbookPath, sheetName string) (*Grid, error) {
	f, err := excelize.OpenFile(workbookPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return readSheet(f, workbookPath, sheetName)
}

// ParseWorkbookSheets reads several sheets of one workbook, opening the
// file once. Sheets come back in argument order.
func ParseWorkbookSheets(workbookPath string, sheetNames ...string) ([]*Grid, error) {
	f, err := excelize.OpenFile(workbookPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	grids := make([]*Grid, 0, len(sheetNames))
	for _, name := range sheetNames {
		grid, err := readSheet(f, workbookPath, name)
		if err != nil {
			return nil, err
		}
		grids = append(grids, grid)
	}

	return grids, nil
}

func readSheet(f *excelize.File, workbookPath, sheetName string) (*Grid, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheetName)
	}

	return &Grid{
		Rows:   rows,
		Source: fmt.Sprintf("%s#%s", workbookPath, sheetName),
	}, nil
}
