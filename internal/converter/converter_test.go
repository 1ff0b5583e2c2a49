package converter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/homewall/holdgrid/internal/config"
	"github.com/homewall/holdgrid/internal/scadwriter"
)

// mainlineCSV is a minimal horizontal grid: hold 42 at column 2 / row 1,
// and hold 12 at column 4 / row 5.
func mainlineCSV() string {
	pad12 := strings.Repeat(",", 12)
	return "Hold #,42" + pad12 + ",R-1\n" +
		"Angle,180˚" + pad12 + ",\n" +
		"Hold #,,12" + strings.Repeat(",", 11) + ",R-5\n" +
		"Angle,,180˚" + strings.Repeat(",", 11) + ",\n"
}

// auxCSV is a minimal vertical grid contributing a 90-degree vertical
// angle to column 4 / row 5 via an explicit C-4 column label, with a
// conflicting hold number.
func auxCSV() string {
	pad13 := strings.Repeat(",", 13)
	return "Aux Grid\n" +
		"Labels,,C-4" + pad13 + "\n" +
		"Hold #,,99" + pad13 + "R-5\n" +
		"Angle,,90˚" + pad13 + "\n"
}

func writeInputs(t *testing.T) (mainline, aux, output string) {
	t.Helper()
	dir := t.TempDir()
	mainline = filepath.Join(dir, "mainline.csv")
	aux = filepath.Join(dir, "aux.csv")
	output = filepath.Join(dir, "kilter_angles.scad")
	require.NoError(t, os.WriteFile(mainline, []byte(mainlineCSV()), 0644))
	require.NoError(t, os.WriteFile(aux, []byte(auxCSV()), 0644))
	return mainline, aux, output
}

func newTestConverter(opts Options) *Converter {
	cfg := config.Default()
	if opts.Scad == (scadwriter.GenerateOptions{}) {
		opts.Scad = scadwriter.DefaultGenerateOptions(cfg)
	}
	return New(cfg, opts)
}

func TestRunEndToEnd(t *testing.T) {
	mainline, aux, output := writeInputs(t)

	result, err := newTestConverter(Options{
		MainlinePath: mainline,
		AuxPath:      aux,
		OutputPath:   output,
	}).Run()
	require.NoError(t, err)
	assert.Equal(t, output, result.OutputFile)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	out := string(data)

	// The hold at column 2 / row 1: explicit number, horizontal only.
	assert.Contains(t, out, `["2_1", [180, 0]],`)
	assert.Contains(t, out, `["2_1", "42"],`)

	// The hold at column 4 / row 5: both sources merged, first label kept.
	assert.Contains(t, out, `["4_5", [180, 90]],`)
	assert.Contains(t, out, `["4_5", "12"],`)

	// Kickboard filling covered every column.
	assert.Contains(t, out, `["26_K1", [180, 0]],`)
	assert.Contains(t, out, `["27_K2", [0, 90]],`)

	stats := result.Stats
	assert.Equal(t, 15, stats.Horizontal, "2 scanned holds plus 13 filled K1 entries")
	assert.Equal(t, 14, stats.Vertical, "14 filled K2 entries")
	assert.Equal(t, 29, stats.Total)
	assert.Equal(t, 13, stats.KickboardH)
	assert.Equal(t, 14, stats.KickboardV)

	// The discarded aux hold number surfaces as a validation warning.
	assert.Equal(t, 1, result.Validation.Warnings())
	assert.False(t, result.Validation.HasErrors())
}

func TestRunIsIdempotent(t *testing.T) {
	mainline, aux, output := writeInputs(t)

	opts := Options{MainlinePath: mainline, AuxPath: aux, OutputPath: output}

	_, err := newTestConverter(opts).Run()
	require.NoError(t, err)
	first, err := os.ReadFile(output)
	require.NoError(t, err)

	_, err = newTestConverter(opts).Run()
	require.NoError(t, err)
	second, err := os.ReadFile(output)
	require.NoError(t, err)

	assert.Equal(t, first, second, "unchanged inputs must produce byte-identical output")
}

func TestDryRunWritesNothing(t *testing.T) {
	mainline, aux, output := writeInputs(t)

	result, err := newTestConverter(Options{
		MainlinePath: mainline,
		AuxPath:      aux,
		OutputPath:   output,
		DryRun:       true,
	}).Run()
	require.NoError(t, err)

	assert.Empty(t, result.OutputFile)
	_, err = os.Stat(output)
	assert.True(t, os.IsNotExist(err))

	// The pipeline still ran in full.
	assert.Equal(t, 29, result.Stats.Total)
}

func TestRunArchivesInputs(t *testing.T) {
	mainline, aux, output := writeInputs(t)
	archiveDir := filepath.Join(t.TempDir(), "archive")

	result, err := newTestConverter(Options{
		MainlinePath: mainline,
		AuxPath:      aux,
		OutputPath:   output,
		ArchiveDir:   archiveDir,
	}).Run()
	require.NoError(t, err)
	require.Len(t, result.ArchivedFiles, 2)

	for _, original := range []string{mainline, aux} {
		_, err := os.Stat(original)
		assert.True(t, os.IsNotExist(err), "input %s should have been moved", original)
	}
	for _, archived := range result.ArchivedFiles {
		_, err := os.Stat(archived)
		assert.NoError(t, err)
	}
}

func TestRunWritesErrorLog(t *testing.T) {
	mainline, aux, output := writeInputs(t)
	logDir := filepath.Join(t.TempDir(), "logs")

	result, err := newTestConverter(Options{
		MainlinePath: mainline,
		AuxPath:      aux,
		OutputPath:   output,
		ErrorLogDir:  logDir,
	}).Run()
	require.NoError(t, err)
	require.NotEmpty(t, result.ErrorLog, "the fixtures carry a hold-number conflict")

	data, err := os.ReadFile(result.ErrorLog)
	require.NoError(t, err)
	assert.Contains(t, string(data), "conflicting hold numbers")
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()

	_, err := newTestConverter(Options{
		MainlinePath: filepath.Join(dir, "nope.csv"),
		AuxPath:      filepath.Join(dir, "nope2.csv"),
		OutputPath:   filepath.Join(dir, "out.scad"),
	}).Run()
	assert.Error(t, err)
}

func TestWorkbookMode(t *testing.T) {
	dir := t.TempDir()
	workbook := filepath.Join(dir, "holdmap.xlsx")
	output := filepath.Join(dir, "out.scad")

	writeWorkbook(t, workbook)

	result, err := newTestConverter(Options{
		MainlinePath: "Main Line Grid",
		AuxPath:      "Aux Grid",
		WorkbookPath: workbook,
		OutputPath:   output,
	}).Run()
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `["2_1", [180, 0]],`)
	assert.Contains(t, out, `["2_1", "42"],`)
	assert.Equal(t, 29, result.Stats.Total, "workbook mode matches the CSV path")
}

// writeWorkbook builds an .xlsx hold map with the same cell layout as the
// CSV fixtures.
func writeWorkbook(t *testing.T, path string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Main Line Grid"))
	_, err := f.NewSheet("Aux Grid")
	require.NoError(t, err)

	writeSheetRows(t, f, "Main Line Grid", parseCSVFixture(mainlineCSV()))
	writeSheetRows(t, f, "Aux Grid", parseCSVFixture(auxCSV()))

	require.NoError(t, f.SaveAs(path))
}

func writeSheetRows(t *testing.T, f *excelize.File, sheet string, rows [][]string) {
	t.Helper()
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &cells))
	}
}

// parseCSVFixture splits the fixture strings into cell rows.
func parseCSVFixture(content string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimSuffix(content, "\n"), "\n") {
		rows = append(rows, strings.Split(line, ","))
	}
	return rows
}
