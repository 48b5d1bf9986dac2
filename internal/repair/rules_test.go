package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencykit/specforge/internal/dashspec"
	"github.com/agencykit/specforge/internal/ruleset"
	"github.com/agencykit/specforge/internal/tokens"
)

func grid(columns, gap int) dashspec.GridLayout {
	return dashspec.GridLayout{Columns: columns, Gap: gap}
}

func TestKPILimit_KeepsFirstNInOrder(t *testing.T) {
	s := &dashspec.Spec{
		Layout:           grid(12, 16),
		LayoutSkeletonID: "exec-overview",
		Components: []dashspec.Component{
			comp("k1", "MetricCard", 0, 0, 2, 2),
			comp("k2", "MetricCard", 2, 0, 2, 2),
			comp("chart", "BarChart", 0, 2, 4, 3),
			comp("k3", "MetricCard", 4, 0, 2, 2),
			comp("k4", "MetricCard", 6, 0, 2, 2),
			comp("k5", "MetricCard", 8, 0, 2, 2),
		},
	}

	res := New(WithSkeletons(testCatalog(2))).Repair(s)

	var metricIDs []string
	for _, c := range res.Spec.Components {
		if c.Type == ruleset.MetricCardType {
			metricIDs = append(metricIDs, c.ID)
		}
	}
	assert.Equal(t, []string{"k1", "k2"}, metricIDs)
	// Non-KPI components are untouched by the limit.
	assert.Len(t, res.Spec.Components, 3)
}

func TestKPILimit_UnknownSkeletonIsNoOp(t *testing.T) {
	s := &dashspec.Spec{
		Layout:           grid(12, 16),
		LayoutSkeletonID: "no-such-skeleton",
		Components: []dashspec.Component{
			comp("k1", "MetricCard", 0, 0, 2, 2),
			comp("k2", "MetricCard", 2, 0, 2, 2),
			comp("k3", "MetricCard", 4, 0, 2, 2),
		},
	}

	res := New(WithSkeletons(testCatalog(1))).Repair(s)
	assert.Len(t, res.Spec.Components, 3)
}

func TestGridBounds_OutOfBoundsColResets(t *testing.T) {
	s := &dashspec.Spec{
		Layout: grid(12, 16),
		Components: []dashspec.Component{
			comp("far", "Widget", 15, 0, 14, 2),
		},
	}

	res := New().Repair(s)
	box := res.Spec.Components[0].Layout
	assert.Equal(t, 0, box.Col)
	assert.Equal(t, 12, box.W)
}

func TestGridBounds_OverflowingWidthClamps(t *testing.T) {
	s := &dashspec.Spec{
		Layout: grid(12, 16),
		Components: []dashspec.Component{
			comp("wide", "Widget", 10, 0, 6, 2),
		},
	}

	res := New().Repair(s)
	box := res.Spec.Components[0].Layout
	assert.Equal(t, 10, box.Col)
	assert.Equal(t, 2, box.W)
}

func TestOverlap_PushesBelowInStableOrder(t *testing.T) {
	s := &dashspec.Spec{
		Layout: grid(12, 16),
		Components: []dashspec.Component{
			comp("first", "Widget", 0, 0, 4, 3),
			comp("second", "Widget", 0, 0, 4, 3),
			comp("third", "Widget", 0, 0, 4, 3),
		},
	}

	res := New().Repair(s)
	rows := []int{
		res.Spec.Components[0].Layout.Row,
		res.Spec.Components[1].Layout.Row,
		res.Spec.Components[2].Layout.Row,
	}
	assert.Equal(t, []int{0, 3, 6}, rows)
	for _, c := range res.Spec.Components {
		assert.Equal(t, 0, c.Layout.Col, "overlap resolution must not touch col")
	}
}

func TestRequiredProps_NeverOverwrites(t *testing.T) {
	c := comp("m", "MetricCard", 0, 0, 2, 2)
	c.Props.Set("title", "")         // empty triggers the default
	c.Props.Set("valueField", "rev") // present value survives
	s := &dashspec.Spec{Layout: grid(12, 16), Components: []dashspec.Component{c}}

	res := New().Repair(s)
	props := &res.Spec.Components[0].Props

	title, _ := props.GetString("title")
	assert.Equal(t, "Untitled Metric", title)
	vf, _ := props.GetString("valueField")
	assert.Equal(t, "rev", vf)
}

func TestColorValidation_SnapsOffPaletteHex(t *testing.T) {
	c := comp("m", "Widget", 0, 0, 2, 2)
	c.Props.Set("barColor", "#123456")     // off palette, replaced
	c.Props.Set("accentColor", "#00ff00")  // in palette (case-insensitive), kept
	c.Props.Set("fillOpacity", float64(1)) // key matches but value is not hex
	c.Props.Set("color", "red")            // not hex-like
	s := &dashspec.Spec{Layout: grid(12, 16), Components: []dashspec.Component{c}}

	pal := &tokens.DesignTokens{Colors: map[string]string{
		"primary": "#FF0000",
		"accent":  "#00FF00",
	}}
	res := New(WithTokens(pal)).Repair(s)
	props := &res.Spec.Components[0].Props

	bar, _ := props.GetString("barColor")
	assert.Equal(t, "#FF0000", bar)
	accent, _ := props.GetString("accentColor")
	assert.Equal(t, "#00ff00", accent)
	colorVal, _ := props.GetString("color")
	assert.Equal(t, "red", colorVal)
}

func TestColorValidation_NoTokensIsNoOp(t *testing.T) {
	c := comp("m", "Widget", 0, 0, 2, 2)
	c.Props.Set("color", "#123456")
	s := &dashspec.Spec{Layout: grid(12, 16), Components: []dashspec.Component{c}}

	res := New().Repair(s)
	v, _ := res.Spec.Components[0].Props.GetString("color")
	assert.Equal(t, "#123456", v)
}

func TestMinSizes_RaisesButNeverShrinks(t *testing.T) {
	s := &dashspec.Spec{
		Layout: grid(12, 16),
		Components: []dashspec.Component{
			comp("small", "MetricCard", 0, 0, 1, 1),
			comp("big", "MetricCard", 4, 0, 6, 5),
		},
	}

	res := New().Repair(s)
	small := res.Spec.Components[0].Layout
	assert.Equal(t, 2, small.W)
	assert.Equal(t, 2, small.H)
	big := res.Spec.Components[1].Layout
	assert.Equal(t, 6, big.W)
	assert.Equal(t, 5, big.H)
}

func TestComponentIDs_DuplicatesGetSuffixes(t *testing.T) {
	s := &dashspec.Spec{
		Layout: grid(12, 16),
		Components: []dashspec.Component{
			comp("a", "Widget", 0, 0, 2, 2),
			comp("a", "Widget", 2, 0, 2, 2),
			comp("a", "Widget", 4, 0, 2, 2),
		},
	}

	res := New().Repair(s)
	ids := []string{
		res.Spec.Components[0].ID,
		res.Spec.Components[1].ID,
		res.Spec.Components[2].ID,
	}
	assert.Equal(t, []string{"a", "a-dup1", "a-dup2"}, ids)
}

func TestComponentIDs_MissingIDGetsGenerated(t *testing.T) {
	s := &dashspec.Spec{
		Layout: grid(12, 16),
		Components: []dashspec.Component{
			comp("", "Widget", 0, 0, 2, 2),
			comp("", "Widget", 2, 0, 2, 2),
		},
	}

	res := New().Repair(s)
	first := res.Spec.Components[0].ID
	second := res.Spec.Components[1].ID
	require.NotEmpty(t, first)
	require.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
}

func TestSingleDominant_FirstWins(t *testing.T) {
	var comps []dashspec.Component
	for _, id := range []string{"d1", "d2", "d3"} {
		c := comp(id, "Widget", 0, 0, 2, 2)
		c.Props.Set("dominant", true)
		comps = append(comps, c)
	}
	comps[1].Layout.Col = 2
	comps[2].Layout.Col = 4
	s := &dashspec.Spec{Layout: grid(12, 16), Components: comps}

	res := New().Repair(s)

	trueCount := 0
	for i := range res.Spec.Components {
		v, ok := res.Spec.Components[i].Props.Get("dominant")
		require.True(t, ok)
		if v == true {
			trueCount++
		} else {
			assert.Equal(t, false, v)
		}
	}
	assert.Equal(t, 1, trueCount)
	v, _ := res.Spec.Components[0].Props.Get("dominant")
	assert.Equal(t, true, v)
}

func TestSpacingSnap(t *testing.T) {
	cases := []struct {
		gap  int
		want int
	}{
		{19, 20},
		{18, 16}, // equidistant: ascending scan keeps the first preset
		{8, 8},
		{0, 8},
		{100, 32},
	}
	for _, tc := range cases {
		s := &dashspec.Spec{Layout: grid(12, tc.gap), Components: []dashspec.Component{}}
		res := New().Repair(s)
		assert.Equal(t, tc.want, res.Spec.Layout.Gap, "gap %d", tc.gap)
	}
}

func TestSpacingSnap_EmptyPresetListIsNoOp(t *testing.T) {
	rs := ruleset.Default()
	rs.GapPresets = nil

	s := &dashspec.Spec{Layout: grid(12, 19), Components: []dashspec.Component{}}
	res := New(WithRuleset(rs)).Repair(s)

	assert.Equal(t, 19, res.Spec.Layout.Gap)
	assert.Equal(t, 0, res.FixCount)
}

func TestAccessibilityFloor_RaisesOnlyPresentProps(t *testing.T) {
	c := comp("m", "MetricCard", 0, 0, 2, 2)
	c.Props.Set("fontSize", float64(10))
	other := comp("m2", "MetricCard", 2, 0, 2, 2)
	other.Props.Set("valueFontSize", float64(20))
	s := &dashspec.Spec{Layout: grid(12, 16), Components: []dashspec.Component{c, other}}

	res := New().Repair(s)

	fs, ok := res.Spec.Components[0].Props.GetNumber("fontSize")
	require.True(t, ok)
	assert.Equal(t, float64(14), fs)
	_, present := res.Spec.Components[0].Props.Get("valueFontSize")
	assert.False(t, present, "absent props must stay absent")

	vfs, _ := res.Spec.Components[1].Props.GetNumber("valueFontSize")
	assert.Equal(t, float64(20), vfs)
}

func TestChartDiversity_PieToTimeseriesRemapsFields(t *testing.T) {
	var comps []dashspec.Component
	row := 0
	add := func(prefix, typ string, n int) {
		for i := 0; i < n; i++ {
			comps = append(comps, comp(prefix+string(rune('a'+i)), typ, 0, row, 4, 3))
			row += 4
		}
	}
	add("ts", "TimeseriesChart", 5)
	add("bar", "BarChart", 4)
	add("line", "LineChart", 3)
	add("pie", "PieChart", 2)
	add("area", "AreaChart", 1)
	comps[12].Props.Set("categoryField", "plan") // piea

	s := &dashspec.Spec{Layout: grid(12, 16), Components: comps}
	res := New().Repair(s)

	distinct := map[string]bool{}
	for _, c := range res.Spec.Components {
		distinct[c.Type] = true
	}
	assert.Equal(t, map[string]bool{
		"TimeseriesChart": true,
		"BarChart":        true,
		"LineChart":       true,
	}, distinct)

	// The converted pie keeps its category as the x axis.
	var pie *dashspec.Component
	for i := range res.Spec.Components {
		if res.Spec.Components[i].ID == "piea" {
			pie = &res.Spec.Components[i]
		}
	}
	require.NotNil(t, pie)
	assert.Equal(t, "TimeseriesChart", pie.Type)
	x, _ := pie.Props.GetString("xAxisField")
	assert.Equal(t, "plan", x)
	_, hasCategory := pie.Props.Get("categoryField")
	assert.False(t, hasCategory)
	y, _ := pie.Props.GetString("yAxisField")
	assert.Equal(t, "count", y)
}

func TestChartDiversity_UnderCapIsNoOp(t *testing.T) {
	s := &dashspec.Spec{
		Layout: grid(12, 16),
		Components: []dashspec.Component{
			comp("ts", "TimeseriesChart", 0, 0, 4, 3),
			comp("bar", "BarChart", 0, 4, 4, 3),
			comp("pie", "PieChart", 0, 8, 4, 3),
		},
	}

	res := New().Repair(s)
	assert.Equal(t, "PieChart", res.Spec.Components[2].Type)
}
