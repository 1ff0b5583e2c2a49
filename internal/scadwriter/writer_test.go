package scadwriter

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homewall/holdgrid/internal/config"
	"github.com/homewall/holdgrid/internal/holdtable"
)

func sampleTable(t *testing.T) *holdtable.Table {
	t.Helper()
	table := holdtable.New()
	table.Record(holdtable.Fact{Column: 2, Row: "1", Angle: 180, HoldNumber: "42", Orientation: holdtable.Horizontal})
	table.Record(holdtable.Fact{Column: 2, Row: "1", Angle: 90, Orientation: holdtable.Vertical})
	table.Record(holdtable.Fact{Column: 3, Row: "2", Angle: 45, Orientation: holdtable.Vertical})
	table.FillKickboardDefaults(config.Default())
	return table
}

func TestGenerateArrays(t *testing.T) {
	out := string(Generate(sampleTable(t), DefaultGenerateOptions(config.Default())))

	assert.Contains(t, out, `["2_1", [180, 90]],`)
	assert.Contains(t, out, `["2_1", "42"],`)
	assert.Contains(t, out, `["3_2", [0, 45]],`)
	assert.Contains(t, out, `["3_2", "C3_R2"],`)
	assert.Contains(t, out, `["2_K1", [180, 0]],`)
	assert.Contains(t, out, `["1_K2", [0, 90]],`)
}

func TestGenerateFunctions(t *testing.T) {
	out := string(Generate(sampleTable(t), DefaultGenerateOptions(config.Default())))

	for _, decl := range []string{
		"function is_num(val) =",
		"function is_kicker_row(row) =",
		"function get_angle(col, row, is_horizontal) =",
		"function get_hold_number(col, row) =",
	} {
		assert.Contains(t, out, decl)
	}

	// Parity defaults in get_angle mirror the kickboard fill.
	assert.Contains(t, out, `(col % 2 == 0) ? [180, 0] : [0, 90]`)
	// Missing hold numbers synthesize the C<col>_R<row> label.
	assert.Contains(t, out, `str("C", col, "_R", row)`)
}

func TestGenerateKeySetsAreBijective(t *testing.T) {
	out := string(Generate(sampleTable(t), DefaultGenerateOptions(config.Default())))

	angleKeys := extractKeys(t, out, "angle_data")
	numberKeys := extractKeys(t, out, "hold_numbers")

	assert.Equal(t, angleKeys, numberKeys,
		"every key in angle_data appears exactly once in hold_numbers and vice versa")

	seen := map[string]bool{}
	for _, k := range angleKeys {
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
}

// extractKeys pulls the entry keys out of one generated array block.
func extractKeys(t *testing.T, out, arrayName string) []string {
	t.Helper()

	start := strings.Index(out, arrayName+" = [")
	require.GreaterOrEqual(t, start, 0)
	end := strings.Index(out[start:], "];")
	require.GreaterOrEqual(t, end, 0)
	block := out[start : start+end]

	matches := regexp.MustCompile(`\["([^"]+)",`).FindAllStringSubmatch(block, -1)
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		keys = append(keys, m[1])
	}
	require.NotEmpty(t, keys)
	return keys
}

func TestGenerateIsDeterministic(t *testing.T) {
	table := sampleTable(t)
	opts := DefaultGenerateOptions(config.Default())

	first := Generate(table, opts)
	second := Generate(table, opts)
	assert.Equal(t, first, second, "serializing the same table twice must be byte-identical")
}

func TestGenerateOrdering(t *testing.T) {
	out := string(Generate(sampleTable(t), DefaultGenerateOptions(config.Default())))

	// Column 2's numbered row precedes its kickboard row, and column 2
	// precedes column 3.
	idx21 := strings.Index(out, `["2_1",`)
	idx2K1 := strings.Index(out, `["2_K1",`)
	idx32 := strings.Index(out, `["3_2",`)
	require.Greater(t, idx21, 0)
	assert.Less(t, idx21, idx2K1)
	assert.Less(t, idx2K1, idx32)
}

func TestGenerateWithoutDebugEchoes(t *testing.T) {
	opts := DefaultGenerateOptions(config.Default())
	opts.IncludeDebugEchoes = false

	out := string(Generate(sampleTable(t), opts))
	assert.NotContains(t, out, "echo(")
	assert.Contains(t, out, "is_horizontal ? angles[0] : angles[1];")
	assert.Contains(t, out, "    number;")
}
