// =============================================================================
// Hold Grid Converter - Grid Scanner Module
// =============================================================================
//
// The scanner walks the rows of one grid export and locates its extractable
// units: "Hold #" rows immediately followed by an "Angle" row. Around those
// pairs it reconstructs the positional context the spreadsheet encodes only
// loosely:
//   - The current row identifier, tracked from the row-id column as rows
//     stream past ("R-12" for numbered rows, "K-1" for kickboard rows)
//   - Whether the kickboard section has started ("Kickboard Below"), after
//     which row ids are found by a short lookahead instead of the running
//     identifier, and column labels are no longer trusted
//
// The scanner is deliberately forgiving: short rows, blank leading cells,
// and header pairs with no identifiable row are skipped without comment.
// The grids are hand-maintained and best-effort extraction beats strict
// validation here.
//
// =============================================================================

package scanner

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/homewall/holdgrid/internal/config"
	"github.com/homewall/holdgrid/internal/gridparser"
	"github.com/homewall/holdgrid/internal/holdtable"
)

// digitRunPattern extracts the numeric part of an angle cell ("180˚").
var digitRunPattern = regexp.MustCompile(`\d+`)

// kickboardLookahead is the size of the window, starting at the header
// pair, searched for a kickboard row id. The bound is inherited from the
// reference layout; kickboard blocks carry their id within three rows.
const kickboardLookahead = 3

// =============================================================================
// HEADER PAIRS
// =============================================================================

// HeaderPair is one located extractable unit: the index of its "Hold #"
// row (the following row is the "Angle" row), the row identifier in effect,
// and whether it sits in the kickboard section. Kickboard pairs always use
// positional column numbering.
type HeaderPair struct {
	Index     int
	RowID     holdtable.RowID
	Kickboard bool
}

// =============================================================================
// SCANNING
// =============================================================================

// Scan walks the grid and returns its header pairs in row order.
func Scan(grid *gridparser.Grid, profile config.SourceProfile, markers config.Markers) []HeaderPair {
	var pairs []HeaderPair

	var rowID holdtable.RowID
	haveRowID := false
	kickboardActive := false

	for i, row := range grid.Rows {
		// Short rows and rows with a blank leading cell never carry
		// markers or data; skip them without touching scanner state.
		if len(row) < profile.MinRowWidth {
			continue
		}
		lead := strings.TrimSpace(row[0])
		if lead == "" {
			continue
		}

		if lead == markers.KickboardSection {
			kickboardActive = true
		}

		if id, ok := parseRowLabel(grid.Cell(i, profile.RowIDIndex), markers); ok {
			rowID = id
			haveRowID = true
		}

		if lead != markers.HoldNumberRow {
			continue
		}
		if grid.Cell(i+1, 0) != markers.AngleRow {
			continue
		}

		if kickboardActive {
			// Kickboard blocks place their row id beside the pair itself,
			// so look ahead for it instead of trusting the running id.
			id, ok := findKickboardID(grid, i, profile, markers)
			if !ok {
				continue
			}
			rowID = id
			haveRowID = true
			pairs = append(pairs, HeaderPair{Index: i, RowID: id, Kickboard: true})
			continue
		}

		if !haveRowID {
			// No identifier observed yet; the pair cannot be keyed.
			continue
		}
		pairs = append(pairs, HeaderPair{Index: i, RowID: rowID})
	}

	return pairs
}

// parseRowLabel normalizes a row-identifier cell. "R-12" yields the
// numbered row "12"; "K-1" yields the kickboard sentinel "K1". Anything
// else is not a row label.
func parseRowLabel(cell string, markers config.Markers) (holdtable.RowID, bool) {
	switch {
	case strings.HasPrefix(cell, markers.RowPrefix):
		return holdtable.RowID(strings.TrimPrefix(cell, markers.RowPrefix)), true
	case strings.HasPrefix(cell, markers.KickboardPrefix):
		return holdtable.RowID(strings.Replace(cell, markers.KickboardPrefix, "K", 1)), true
	default:
		return "", false
	}
}

// findKickboardID searches the lookahead window starting at the header
// pair for a kickboard row id.
func findKickboardID(grid *gridparser.Grid, pairIdx int, profile config.SourceProfile, markers config.Markers) (holdtable.RowID, bool) {
	for k := pairIdx; k < pairIdx+kickboardLookahead; k++ {
		cell := grid.Cell(k, profile.RowIDIndex)
		if strings.HasPrefix(cell, markers.KickboardPrefix) {
			return holdtable.RowID(strings.Replace(cell, markers.KickboardPrefix, "K", 1)), true
		}
	}
	return "", false
}

// =============================================================================
// FACT EXTRACTION
// =============================================================================

// ExtractFacts reads the data cells of one header pair and produces the
// merge facts they encode. Cells whose angle text carries no run of digits
// contribute nothing, as do cells whose column cannot be determined.
func ExtractFacts(grid *gridparser.Grid, pair HeaderPair, profile config.SourceProfile, orientation holdtable.Orientation) []holdtable.Fact {
	stride := Stride{Start: profile.ColumnStart, Step: profile.ColumnStep}

	var facts []holdtable.Fact
	for j := 1; j <= profile.DataCells; j++ {
		angle, ok := parseAngle(grid.Cell(pair.Index+1, j))
		if !ok {
			continue
		}

		var column int
		if pair.Kickboard {
			// Kickboard blocks have no nearby column-label rows.
			column = stride.Column(j)
		} else {
			column = ResolveColumn(grid, pair.Index, j, stride)
		}
		if column <= 0 {
			continue
		}

		facts = append(facts, holdtable.Fact{
			Column:      column,
			Row:         pair.RowID,
			Angle:       angle,
			HoldNumber:  grid.Cell(pair.Index, j),
			Orientation: orientation,
		})
	}

	return facts
}

// parseAngle extracts the angle from a cell formatted like "180˚". The
// first run of digits wins; a cell without one is skipped.
func parseAngle(cell string) (int, bool) {
	digits := digitRunPattern.FindString(cell)
	if digits == "" {
		return 0, false
	}
	angle, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return angle, true
}
