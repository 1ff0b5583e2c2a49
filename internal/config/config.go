// =============================================================================
// Hold Grid Converter - Configuration Module
// =============================================================================
//
// This module defines the grid-layout profile used to decode the hold map
// exports. The reference layout (the 10x12 Kilter homewall "Hold Map"
// workbook) is baked in as the default profile; a YAML file can override
// individual settings for walls whose exports place the row-identifier
// column elsewhere or use a different column spacing.
//
// PROFILE CONTENTS:
//   1. Marker tokens   : literal cell values that structure the grid
//                        ("Kickboard Below", "Hold #", "Angle")
//   2. Source profiles : per-source cell geometry (row-id index, minimum
//                        row width, data-cell count, column stride/offset)
//   3. Kickboard rules : sentinel row ids and their default angle pairs
//   4. Column range    : the fixed 1..27 column span of the wall
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MARKER TOKENS
// =============================================================================

// Markers holds the literal cell values that the scanner matches against.
type Markers struct {
	// KickboardSection is the leading-cell value that opens the kickboard
	// section of a grid. Once seen, the scanner stays in kickboard mode.
	KickboardSection string `yaml:"kickboard_section"`

	// HoldNumberRow is the leading-cell value of a hold-number row.
	HoldNumberRow string `yaml:"hold_number_row"`

	// AngleRow is the leading-cell value of an angle row. An extractable
	// header pair is a hold-number row immediately followed by an angle row.
	AngleRow string `yaml:"angle_row"`

	// RowPrefix is the label prefix of ordinary numbered rows ("R-12").
	RowPrefix string `yaml:"row_prefix"`

	// KickboardPrefix is the label prefix of kickboard rows ("K-1").
	KickboardPrefix string `yaml:"kickboard_prefix"`
}

// =============================================================================
// SOURCE PROFILES
// =============================================================================

// SourceProfile describes the cell geometry of one grid export.
// The mainline (horizontal) and aux (vertical) grids are formatted
// independently and each carries its own profile.
type SourceProfile struct {
	// RowIDIndex is the cell index of the row-identifier column.
	// 14 for the mainline grid, 15 for the aux grid.
	RowIDIndex int `yaml:"row_id_index"`

	// MinRowWidth is the minimum cell count for a row to be considered
	// at all. Shorter rows are skipped without touching scanner state.
	MinRowWidth int `yaml:"min_row_width"`

	// DataCells is the number of data cells per header-pair row.
	// Data cells occupy indices 1..DataCells.
	DataCells int `yaml:"data_cells"`

	// ColumnStart and ColumnStep define the positional fallback used when
	// no explicit "C-<n>" label is found near a header pair:
	//   column = ColumnStart + (j-1) * ColumnStep
	// for data-cell index j. Mainline: (2, 2) covering the even columns
	// 2..26; aux: (1, 2) covering the odd columns 1..27.
	ColumnStart int `yaml:"column_start"`
	ColumnStep  int `yaml:"column_step"`
}

// =============================================================================
// KICKBOARD RULES
// =============================================================================

// KickboardDefaults holds the default angle pair inserted for a kickboard
// position that neither source supplied.
type KickboardDefaults struct {
	// AngleH and AngleV are the default horizontal and vertical angles
	// in degrees.
	AngleH int `yaml:"angle_h"`
	AngleV int `yaml:"angle_v"`
}

// =============================================================================
// TOP-LEVEL CONFIG
// =============================================================================

// Config is the full grid-layout profile.
type Config struct {
	// Markers are the literal tokens recognized in the grids.
	Markers Markers `yaml:"markers"`

	// Mainline is the profile of the horizontal-orientation source.
	Mainline SourceProfile `yaml:"mainline"`

	// Aux is the profile of the vertical-orientation source.
	Aux SourceProfile `yaml:"aux"`

	// MaxColumn is the highest column number on the wall. Default filling
	// covers even columns 2..MaxColumn-1 and odd columns 1..MaxColumn.
	MaxColumn int `yaml:"max_column"`

	// KickboardHorizontal is the default angle pair for missing entries on
	// the horizontal kickboard row (K1, even columns).
	KickboardHorizontal KickboardDefaults `yaml:"kickboard_horizontal"`

	// KickboardVertical is the default angle pair for missing entries on
	// the vertical kickboard row (K2, odd columns).
	KickboardVertical KickboardDefaults `yaml:"kickboard_vertical"`

	// Delimiter is the field separator of the CSV exports.
	Delimiter string `yaml:"delimiter"`
}

// Default returns the profile of the reference 10x12 hold map workbook.
func Default() *Config {
	return &Config{
		Markers: Markers{
			KickboardSection: "Kickboard Below",
			HoldNumberRow:    "Hold #",
			AngleRow:         "Angle",
			RowPrefix:        "R-",
			KickboardPrefix:  "K-",
		},
		Mainline: SourceProfile{
			RowIDIndex:  14,
			MinRowWidth: 14,
			DataCells:   13,
			ColumnStart: 2,
			ColumnStep:  2,
		},
		Aux: SourceProfile{
			RowIDIndex:  15,
			MinRowWidth: 15,
			DataCells:   14,
			ColumnStart: 1,
			ColumnStep:  2,
		},
		MaxColumn:           27,
		KickboardHorizontal: KickboardDefaults{AngleH: 180, AngleV: 0},
		KickboardVertical:   KickboardDefaults{AngleH: 0, AngleV: 90},
		Delimiter:           ",",
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads a profile from a YAML file. Settings absent from the file
// keep their default values, so a profile only needs to state what
// differs from the reference layout.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the profile for values the scanner cannot work with.
func (c *Config) Validate() error {
	for name, p := range map[string]SourceProfile{"mainline": c.Mainline, "aux": c.Aux} {
		if p.RowIDIndex <= 0 {
			return fmt.Errorf("%s: row_id_index must be positive", name)
		}
		if p.MinRowWidth <= 0 {
			return fmt.Errorf("%s: min_row_width must be positive", name)
		}
		if p.DataCells <= 0 {
			return fmt.Errorf("%s: data_cells must be positive", name)
		}
		if p.ColumnStep <= 0 {
			return fmt.Errorf("%s: column_step must be positive", name)
		}
	}

	if c.MaxColumn <= 0 {
		return fmt.Errorf("max_column must be positive")
	}
	if c.Markers.HoldNumberRow == "" || c.Markers.AngleRow == "" {
		return fmt.Errorf("hold_number_row and angle_row markers must be set")
	}

	return nil
}
