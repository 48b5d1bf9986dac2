package repair

import (
	"sort"

	"github.com/agencykit/specforge/internal/dashspec"
	"github.com/agencykit/specforge/internal/ruleset"
)

// Rule 10: snap the grid gap to the nearest spacing preset. Without presets
// there is nothing to snap to; degrading to a no-op keeps the engine total.
func (e *Engine) applySpacingSnap(s *dashspec.Spec, log *FixLog) {
	if len(e.rules.GapPresets) == 0 {
		return
	}
	if e.rules.IsPresetGap(s.Layout.Gap) {
		return
	}
	nearest := e.rules.NearestGap(s.Layout.Gap)
	log.Addf(10, nameSpacingSnap, "snapped gap %d to preset %d", s.Layout.Gap, nearest)
	s.Layout.Gap = nearest
}

// accessibilityProps are the explicit font-size props rule 11 inspects.
// Absent props stay absent; only present sub-floor values are raised.
var accessibilityProps = []string{"fontSize", "valueFontSize"}

// Rule 11: raise MetricCard font sizes to the accessibility floor.
func (e *Engine) applyAccessibilityFloor(s *dashspec.Spec, log *FixLog) {
	for i := range s.Components {
		c := &s.Components[i]
		if c.Type != ruleset.MetricCardType {
			continue
		}
		for _, key := range accessibilityProps {
			v, ok := c.Props.GetNumber(key)
			if !ok || v >= e.rules.FontFloor {
				continue
			}
			c.Props.Set(key, e.rules.FontFloor)
			log.Addf(11, nameAccessibility, "raised %s from %v to %v on %s",
				key, v, e.rules.FontFloor, componentRef(c, i))
		}
	}
}

// categoryCharts render discrete slices and carry categoryField/valueField
// props. Every other chart in the closed set is axis-based; Bar accepts
// either naming but prefers axis-style.
var categoryCharts = map[string]bool{
	"PieChart":   true,
	"DonutChart": true,
}

// Rule 12: cap distinct chart types at the configured maximum. Excess types
// are converted to the single most frequent type, remapping field props so
// the target renders. Frequencies tie toward the type seen first.
func (e *Engine) applyChartDiversity(s *dashspec.Spec, log *FixLog) {
	counts := make(map[string]int)
	var firstSeen []string
	for i := range s.Components {
		t := s.Components[i].Type
		if !e.rules.IsChartType(t) {
			continue
		}
		if counts[t] == 0 {
			firstSeen = append(firstSeen, t)
		}
		counts[t]++
	}
	if len(firstSeen) <= e.rules.MaxChartTypes {
		return
	}

	ranked := append([]string{}, firstSeen...)
	sort.SliceStable(ranked, func(a, b int) bool {
		return counts[ranked[a]] > counts[ranked[b]]
	})
	target := ranked[0]
	kept := make(map[string]bool, e.rules.MaxChartTypes)
	for _, t := range ranked[:e.rules.MaxChartTypes] {
		kept[t] = true
	}

	for i := range s.Components {
		c := &s.Components[i]
		if !e.rules.IsChartType(c.Type) || kept[c.Type] {
			continue
		}
		from := c.Type
		convertChart(c, target)
		log.Addf(12, nameChartDiversity, "converted %s from %s to %s",
			componentRef(c, i), from, target)
	}
}

// convertChart rewrites a component to the target chart type and remaps its
// field props. A prop already correctly named for the target is never
// overwritten.
func convertChart(c *dashspec.Component, target string) {
	c.Type = target

	if categoryCharts[target] {
		if _, ok := c.Props.Get("categoryField"); !ok {
			if v, ok := c.Props.Get("xAxisField"); ok {
				c.Props.Set("categoryField", v)
				c.Props.Delete("xAxisField")
			}
		}
		if _, ok := c.Props.Get("valueField"); !ok {
			if v, ok := c.Props.Get("yAxisField"); ok {
				c.Props.Set("valueField", v)
			} else {
				c.Props.Set("valueField", "count")
			}
		}
		return
	}

	if _, ok := c.Props.Get("xAxisField"); !ok {
		if v, ok := c.Props.Get("categoryField"); ok {
			c.Props.Set("xAxisField", v)
			c.Props.Delete("categoryField")
		}
	}
	if _, ok := c.Props.Get("yAxisField"); !ok {
		if v, ok := c.Props.Get("valueField"); ok {
			c.Props.Set("yAxisField", v)
		} else {
			c.Props.Set("yAxisField", "count")
		}
	}
}
