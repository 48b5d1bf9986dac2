package ruleset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type rulesetFile struct {
	Version       int                      `yaml:"version"`
	RequiredProps map[string][]PropDefault `yaml:"required_props"`
	MinSizes      map[string]MinSize       `yaml:"min_sizes"`
	GapPresets    []int                    `yaml:"gap_presets"`
	ChartTypes    []string                 `yaml:"chart_types"`
	MaxChartTypes int                      `yaml:"max_chart_types"`
	FontFloor     float64                  `yaml:"font_floor"`
	FallbackColor string                   `yaml:"fallback_color"`
	DefaultCols   int                      `yaml:"default_columns"`
}

// Load reads a ruleset YAML file. Any section present in the file replaces
// the corresponding built-in table; absent or empty sections keep their
// defaults. An empty list is never accepted as an override: the preset and
// chart tables must stay non-empty for every rule to remain total.
func Load(path string) (*Ruleset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ruleset file: %w", err)
	}

	var f rulesetFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("failed to parse ruleset YAML: %w", err)
	}

	if f.Version != 1 {
		return nil, fmt.Errorf("unsupported ruleset version: %d", f.Version)
	}

	rs := Default()
	if f.RequiredProps != nil {
		rs.RequiredProps = f.RequiredProps
	}
	if f.MinSizes != nil {
		rs.MinSizes = f.MinSizes
	}
	if len(f.GapPresets) > 0 {
		rs.GapPresets = f.GapPresets
	}
	if len(f.ChartTypes) > 0 {
		rs.ChartTypes = f.ChartTypes
	}
	if f.MaxChartTypes > 0 {
		rs.MaxChartTypes = f.MaxChartTypes
	}
	if f.FontFloor > 0 {
		rs.FontFloor = f.FontFloor
	}
	if f.FallbackColor != "" {
		rs.FallbackColor = f.FallbackColor
	}
	if f.DefaultCols > 0 {
		rs.DefaultCols = f.DefaultCols
	}
	return rs, nil
}
