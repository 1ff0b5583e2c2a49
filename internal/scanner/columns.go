// =============================================================================
// Hold Grid Converter - Column Resolver
// =============================================================================

package scanner

import (
	"regexp"
	"strconv"

	"github.com/homewall/holdgrid/internal/gridparser"
)

// columnLabelPattern matches the explicit column labels ("C-2", "C-27")
// that appear in the header rows above a hold block.
var columnLabelPattern = regexp.MustCompile(`C-(\d+)`)

// columnLookback is how many rows above a header pair are searched for an
// explicit column label. The bound comes from the reference grid layout,
// where label rows sit at most four rows above the hold rows they head.
const columnLookback = 4

// Stride is the positional fallback for column numbering: data cell j maps
// to column Start + (j-1)*Step. The mainline grid uses (2, 2) for the even
// columns, the aux grid (1, 2) for the odd ones.
type Stride struct {
	Start int
	Step  int
}

// Column applies the stride formula to data-cell index j.
func (s Stride) Column(j int) int {
	return s.Start + (j-1)*s.Step
}

// ResolveColumn determines the logical column number for data cell cellIdx
// of the header pair at rowIdx.
//
// An explicit label always wins: the cells directly above the header pair
// are scanned upward, and the first one matching "C-<n>" yields n. Only
// when no label is found within the lookback window does the positional
// stride formula apply. The scan never reaches the grid's first row, which
// in these exports is always the sheet title.
func ResolveColumn(grid *gridparser.Grid, rowIdx, cellIdx int, stride Stride) int {
	for k := rowIdx - 1; k >= rowIdx-columnLookback && k > 0; k-- {
		cell := grid.Cell(k, cellIdx)
		if cell == "" {
			continue
		}
		if m := columnLabelPattern.FindStringSubmatch(cell); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return n
			}
		}
	}
	return stride.Column(cellIdx)
}
