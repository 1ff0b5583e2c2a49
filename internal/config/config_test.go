package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfile(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	// Reference layout: row ids at cell 14/15, even/odd column strides.
	assert.Equal(t, 14, cfg.Mainline.RowIDIndex)
	assert.Equal(t, 15, cfg.Aux.RowIDIndex)
	assert.Equal(t, 2, cfg.Mainline.ColumnStart)
	assert.Equal(t, 2, cfg.Mainline.ColumnStep)
	assert.Equal(t, 1, cfg.Aux.ColumnStart)
	assert.Equal(t, 2, cfg.Aux.ColumnStep)
	assert.Equal(t, 27, cfg.MaxColumn)
	assert.Equal(t, 180, cfg.KickboardHorizontal.AngleH)
	assert.Equal(t, 90, cfg.KickboardVertical.AngleV)
}

func TestLoadOverridesSelectively(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := "delimiter: \";\"\nmainline:\n  row_id_index: 20\n  min_row_width: 20\n  data_cells: 13\n  column_start: 2\n  column_step: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ";", cfg.Delimiter)
	assert.Equal(t, 20, cfg.Mainline.RowIDIndex)
	// Everything the file does not mention keeps its default.
	assert.Equal(t, 15, cfg.Aux.RowIDIndex)
	assert.Equal(t, "Hold #", cfg.Markers.HoldNumberRow)
}

func TestLoadRejectsInvalidProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := "mainline:\n  row_id_index: -1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
