// =============================================================================
// Hold Grid Converter - Hold Table Module
// =============================================================================
//
// This module holds the merged hold data extracted from the two grid
// sources. Each physical hold position is keyed by (column, row); the
// mainline source contributes horizontal angles, the aux source vertical
// angles, and both may land on the same key.
//
// LIFECYCLE:
//   The table is built once per run: created empty, populated by the two
//   scan passes, completed by kickboard default filling, then only read
//   during serialization.
//
// =============================================================================

package holdtable

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/homewall/holdgrid/internal/config"
)

// =============================================================================
// ROW IDENTIFIERS
// =============================================================================

// RowID identifies a wall row: the decimal digits of an ordinary numbered
// row ("12"), or one of the two kickboard sentinels.
type RowID string

const (
	// KickboardHorizontal is the kickboard row carrying horizontal
	// (even-column) holds.
	KickboardHorizontal RowID = "K1"

	// KickboardVertical is the kickboard row carrying vertical
	// (odd-column) holds.
	KickboardVertical RowID = "K2"
)

// IsKickboard reports whether the row is one of the two kickboard sentinels.
func (r RowID) IsKickboard() bool {
	return r == KickboardHorizontal || r == KickboardVertical
}

// sortKey orders rows for serialization: numbered rows ascending, then the
// kickboard sentinels (K1 before K2), then anything unrecognized by its
// literal text.
func (r RowID) sortKey() (tier int, num int, text string) {
	if r.IsKickboard() {
		return 2, 0, string(r)
	}
	if n, err := strconv.Atoi(string(r)); err == nil {
		return 1, n, ""
	}
	return 3, 0, string(r)
}

// Less reports whether r sorts before other in the serialized output.
func (r RowID) Less(other RowID) bool {
	t1, n1, s1 := r.sortKey()
	t2, n2, s2 := other.sortKey()
	if t1 != t2 {
		return t1 < t2
	}
	if n1 != n2 {
		return n1 < n2
	}
	return s1 < s2
}

// =============================================================================
// ORIENTATION
// =============================================================================

// Orientation says which angle slot a source contributes to.
type Orientation int

const (
	// Horizontal holds come from the mainline grid and fill the first
	// angle slot.
	Horizontal Orientation = iota

	// Vertical holds come from the aux grid and fill the second slot.
	Vertical
)

// String returns the orientation name for progress output.
func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// =============================================================================
// ENTRIES AND FACTS
// =============================================================================

// Entry is the merged value at one hold position.
type Entry struct {
	// AngleH and AngleV are the hold orientation angles in degrees.
	// A slot stays 0 until a source supplies it.
	AngleH int
	AngleV int

	// HoldNumber is the printed label of the hold. When the source cell is
	// blank it is synthesized as "C<column>_R<row>".
	HoldNumber string
}

// Fact is one extracted observation: an angle cell plus its hold-number
// label, already resolved to a (column, row) key.
type Fact struct {
	Column      int
	Row         RowID
	Angle       int
	HoldNumber  string
	Orientation Orientation
}

// LabelConflict records a hold-number label that was discarded because a
// different source already labeled the same position. The first writer's
// label is kept; see Record.
type LabelConflict struct {
	Column    int
	Row       RowID
	Kept      string
	Discarded string
}

// Key renders the "<column>_<row>" key used in the generated arrays.
func Key(column int, row RowID) string {
	return fmt.Sprintf("%d_%s", column, row)
}

// SynthesizeHoldNumber builds the default label for an unlabeled position.
func SynthesizeHoldNumber(column int, row RowID) string {
	return fmt.Sprintf("C%d_R%s", column, row)
}

// =============================================================================
// TABLE
// =============================================================================

// Table is the merged hold table, keyed column -> row -> entry.
// Each (column, row) pair appears at most once.
type Table struct {
	columns   map[int]map[RowID]*Entry
	conflicts []LabelConflict
}

// New creates an empty hold table.
func New() *Table {
	return &Table{columns: make(map[int]map[RowID]*Entry)}
}

// Record upserts one extracted fact.
//
// A new position gets both angle slots zeroed, the fact's angle written
// into the slot matching its orientation, and the hold number from the
// fact's label (synthesized if the label is blank). An existing position
// only has its matching angle slot overwritten: the hold number is never
// replaced by a later write. A later conflicting label is discarded but
// remembered so validation can report it.
func (t *Table) Record(f Fact) {
	rows, ok := t.columns[f.Column]
	if !ok {
		rows = make(map[RowID]*Entry)
		t.columns[f.Column] = rows
	}

	entry, ok := rows[f.Row]
	if !ok {
		entry = &Entry{}
		if f.HoldNumber != "" {
			entry.HoldNumber = f.HoldNumber
		} else {
			entry.HoldNumber = SynthesizeHoldNumber(f.Column, f.Row)
		}
		rows[f.Row] = entry
	} else if f.HoldNumber != "" && f.HoldNumber != entry.HoldNumber {
		t.conflicts = append(t.conflicts, LabelConflict{
			Column:    f.Column,
			Row:       f.Row,
			Kept:      entry.HoldNumber,
			Discarded: f.HoldNumber,
		})
	}

	if f.Orientation == Horizontal {
		entry.AngleH = f.Angle
	} else {
		entry.AngleV = f.Angle
	}
}

// FillKickboardDefaults guarantees complete kickboard coverage: every even
// column gets a K1 entry, every odd column a K2 entry, inserting the
// configured default angle pair where a source supplied nothing. Inserted
// entries carry the sentinel itself as their hold number, matching the
// labels printed on the physical kickboard trim.
func (t *Table) FillKickboardDefaults(cfg *config.Config) {
	for col := 2; col <= cfg.MaxColumn; col += 2 {
		t.fillKickboard(col, KickboardHorizontal, cfg.KickboardHorizontal)
	}
	for col := 1; col <= cfg.MaxColumn; col += 2 {
		t.fillKickboard(col, KickboardVertical, cfg.KickboardVertical)
	}
}

func (t *Table) fillKickboard(col int, row RowID, def config.KickboardDefaults) {
	rows, ok := t.columns[col]
	if !ok {
		rows = make(map[RowID]*Entry)
		t.columns[col] = rows
	}
	if _, ok := rows[row]; !ok {
		rows[row] = &Entry{
			AngleH:     def.AngleH,
			AngleV:     def.AngleV,
			HoldNumber: string(row),
		}
	}
}

// =============================================================================
// READ ACCESS
// =============================================================================

// Columns returns the column numbers in ascending order.
func (t *Table) Columns() []int {
	cols := make([]int, 0, len(t.columns))
	for col := range t.columns {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	return cols
}

// Rows returns the rows of one column in serialization order.
func (t *Table) Rows(column int) []RowID {
	rows := make([]RowID, 0, len(t.columns[column]))
	for row := range t.columns[column] {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Less(rows[j]) })
	return rows
}

// Entry returns the entry at (column, row), if present.
func (t *Table) Entry(column int, row RowID) (*Entry, bool) {
	entry, ok := t.columns[column][row]
	return entry, ok
}

// Len returns the total number of hold positions in the table.
func (t *Table) Len() int {
	n := 0
	for _, rows := range t.columns {
		n += len(rows)
	}
	return n
}

// Conflicts returns the discarded hold-number labels recorded during
// merging, in the order they were seen.
func (t *Table) Conflicts() []LabelConflict {
	return t.conflicts
}

// =============================================================================
// STATISTICS
// =============================================================================

// Stats summarizes the table for the post-run verification report.
type Stats struct {
	// Total is the number of hold positions.
	Total int

	// Horizontal and Vertical count positions on even and odd columns.
	Horizontal int
	Vertical   int

	// KickboardH and KickboardV count columns with K1 / K2 coverage.
	KickboardH int
	KickboardV int
}

// Stats computes the verification statistics printed after a run.
func (t *Table) Stats() Stats {
	var s Stats
	for col, rows := range t.columns {
		s.Total += len(rows)
		if col%2 == 0 {
			s.Horizontal += len(rows)
			if _, ok := rows[KickboardHorizontal]; ok {
				s.KickboardH++
			}
		} else {
			s.Vertical += len(rows)
			if _, ok := rows[KickboardVertical]; ok {
				s.KickboardV++
			}
		}
	}
	return s
}
