// Package ruleset holds the per-type repair tables. Widget types are an open
// string set, so every lookup is a total function with an explicit unknown-type
// result instead of a silent zero value.
package ruleset

// MetricCardType is the widget type constrained by skeleton KPI limits and the
// accessibility font floor.
const MetricCardType = "MetricCard"

// MinSize is the smallest allowed box extent for a widget type.
type MinSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// PropDefault is one required prop and the value to scaffold when it is
// absent or empty. Order matters: defaults apply in declaration order so the
// fix log is stable.
type PropDefault struct {
	Key   string      `yaml:"key"`
	Value interface{} `yaml:"value"`
}

// Ruleset bundles every table the repair rules consult.
type Ruleset struct {
	RequiredProps map[string][]PropDefault
	MinSizes      map[string]MinSize
	GapPresets    []int
	ChartTypes    []string
	MaxChartTypes int
	FontFloor     float64
	FallbackColor string
	DefaultCols   int
}

// Default returns the built-in tables.
func Default() *Ruleset {
	return &Ruleset{
		RequiredProps: map[string][]PropDefault{
			"MetricCard": {
				{Key: "title", Value: "Untitled Metric"},
				{Key: "valueField", Value: "value"},
			},
			"TimeseriesChart": {
				{Key: "title", Value: "Untitled Chart"},
				{Key: "xAxisField", Value: "timestamp"},
				{Key: "yAxisField", Value: "count"},
			},
			"LineChart": {
				{Key: "title", Value: "Untitled Chart"},
				{Key: "xAxisField", Value: "timestamp"},
				{Key: "yAxisField", Value: "count"},
			},
			"AreaChart": {
				{Key: "title", Value: "Untitled Chart"},
				{Key: "xAxisField", Value: "timestamp"},
				{Key: "yAxisField", Value: "count"},
			},
			"BarChart": {
				{Key: "title", Value: "Untitled Chart"},
				{Key: "xAxisField", Value: "category"},
				{Key: "yAxisField", Value: "count"},
			},
			"PieChart": {
				{Key: "title", Value: "Untitled Chart"},
				{Key: "categoryField", Value: "category"},
				{Key: "valueField", Value: "count"},
			},
			"DonutChart": {
				{Key: "title", Value: "Untitled Chart"},
				{Key: "categoryField", Value: "category"},
				{Key: "valueField", Value: "count"},
			},
			"DataTable": {
				{Key: "title", Value: "Untitled Table"},
			},
		},
		MinSizes: map[string]MinSize{
			"MetricCard":      {W: 2, H: 2},
			"TimeseriesChart": {W: 4, H: 3},
			"LineChart":       {W: 4, H: 3},
			"AreaChart":       {W: 4, H: 3},
			"BarChart":        {W: 4, H: 3},
			"PieChart":        {W: 3, H: 3},
			"DonutChart":      {W: 3, H: 3},
			"DataTable":       {W: 4, H: 3},
		},
		GapPresets: []int{8, 12, 16, 20, 24, 28, 32},
		ChartTypes: []string{
			"TimeseriesChart",
			"BarChart",
			"PieChart",
			"DonutChart",
			"AreaChart",
			"LineChart",
		},
		MaxChartTypes: 3,
		FontFloor:     14,
		FallbackColor: "#3B82F6",
		DefaultCols:   12,
	}
}

// RequiredPropsFor returns the scaffold defaults for a type.
// Unknown types return (nil, false).
func (r *Ruleset) RequiredPropsFor(widgetType string) ([]PropDefault, bool) {
	defaults, ok := r.RequiredProps[widgetType]
	return defaults, ok
}

// MinSizeFor returns the minimum box extent for a type.
// Unknown types return (MinSize{}, false).
func (r *Ruleset) MinSizeFor(widgetType string) (MinSize, bool) {
	ms, ok := r.MinSizes[widgetType]
	return ms, ok
}

// IsChartType reports whether a type renders a chart.
func (r *Ruleset) IsChartType(widgetType string) bool {
	for _, t := range r.ChartTypes {
		if t == widgetType {
			return true
		}
	}
	return false
}

// IsPresetGap reports whether a gap value is already one of the presets.
func (r *Ruleset) IsPresetGap(gap int) bool {
	for _, p := range r.GapPresets {
		if p == gap {
			return true
		}
	}
	return false
}

// NearestGap returns the preset closest to gap. At equal distance the preset
// visited first in ascending order wins; that tie-break is relied on by
// existing fix logs and must not change. An empty preset list returns the
// gap unchanged rather than panicking mid-repair.
func (r *Ruleset) NearestGap(gap int) int {
	if len(r.GapPresets) == 0 {
		return gap
	}
	best := r.GapPresets[0]
	for _, p := range r.GapPresets[1:] {
		if abs(gap-p) < abs(gap-best) {
			best = p
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
