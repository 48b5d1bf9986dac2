package repair

import (
	"sort"

	"github.com/agencykit/specforge/internal/dashspec"
	"github.com/agencykit/specforge/internal/ruleset"
)

// maxOverlapAttempts caps the per-component push-down loop. Rows only ever
// increase, so conflicts resolve long before the cap; it exists to break
// pathological cycles, not as an expected path.
const maxOverlapAttempts = 20

// Rule 1: when the spec names a resolvable skeleton with a KPI limit, keep
// the first maxKPIs MetricCards in array order and drop the rest.
func (e *Engine) applyKPILimit(s *dashspec.Spec, log *FixLog) {
	if e.skeletons == nil || s.LayoutSkeletonID == "" {
		return
	}
	if !e.skeletons.IsValidID(s.LayoutSkeletonID) {
		return
	}
	desc := e.skeletons.Get(s.LayoutSkeletonID)
	if desc == nil || desc.MaxKPIs <= 0 {
		return
	}

	kpis := 0
	for _, c := range s.Components {
		if c.Type == ruleset.MetricCardType {
			kpis++
		}
	}
	if kpis <= desc.MaxKPIs {
		return
	}

	kept := make([]dashspec.Component, 0, len(s.Components))
	seen := 0
	for i := range s.Components {
		c := s.Components[i]
		if c.Type != ruleset.MetricCardType {
			kept = append(kept, c)
			continue
		}
		seen++
		if seen <= desc.MaxKPIs {
			kept = append(kept, c)
			continue
		}
		log.Addf(1, nameKPILimit, "dropped MetricCard %s over skeleton limit of %d",
			componentRef(&c, i), desc.MaxKPIs)
	}
	s.Components = kept
}

// Rule 2: clamp every box onto the grid. Negative positions and sub-unit
// extents are normalized first so the published bounds hold even for
// adversarial input; width never drops below 1.
func (e *Engine) applyGridBounds(s *dashspec.Spec, log *FixLog) {
	columns := s.Layout.Columns
	if columns < 1 {
		columns = e.rules.DefaultCols
		log.Addf(2, nameGridBounds, "reset invalid column count %d to %d",
			s.Layout.Columns, columns)
		s.Layout.Columns = columns
	}

	for i := range s.Components {
		c := &s.Components[i]
		box := &c.Layout

		if box.Col < 0 {
			log.Addf(2, nameGridBounds, "reset negative col %d to 0 on %s", box.Col, componentRef(c, i))
			box.Col = 0
		}
		if box.Row < 0 {
			log.Addf(2, nameGridBounds, "reset negative row %d to 0 on %s", box.Row, componentRef(c, i))
			box.Row = 0
		}
		if box.W < 1 {
			log.Addf(2, nameGridBounds, "raised width %d to 1 on %s", box.W, componentRef(c, i))
			box.W = 1
		}
		if box.H < 1 {
			log.Addf(2, nameGridBounds, "raised height %d to 1 on %s", box.H, componentRef(c, i))
			box.H = 1
		}

		if box.Col >= columns {
			log.Addf(2, nameGridBounds, "moved out-of-bounds col %d to 0 on %s", box.Col, componentRef(c, i))
			box.Col = 0
			if box.W > columns {
				box.W = columns
			}
		} else if box.Col+box.W > columns {
			w := columns - box.Col
			if w < 1 {
				w = 1
			}
			log.Addf(2, nameGridBounds, "clamped width %d to %d on %s", box.W, w, componentRef(c, i))
			box.W = w
		}
	}
}

// Rule 3: resolve AABB overlaps by pushing later components down. Components
// are visited in (row, col) order, stable on original array position; only
// row ever changes, so resolution cannot oscillate.
func (e *Engine) applyOverlapResolution(s *dashspec.Spec, log *FixLog) {
	order := make([]int, len(s.Components))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ba, bb := s.Components[order[a]].Layout, s.Components[order[b]].Layout
		if ba.Row != bb.Row {
			return ba.Row < bb.Row
		}
		return ba.Col < bb.Col
	})

	occupied := make([]dashspec.Box, 0, len(s.Components))
	for _, idx := range order {
		c := &s.Components[idx]
		startRow := c.Layout.Row

		for attempt := 0; attempt < maxOverlapAttempts; attempt++ {
			conflict := false
			for _, other := range occupied {
				if c.Layout.Overlaps(other) {
					c.Layout.Row = other.Row + other.H
					conflict = true
					break // restart the scan from the first placed box
				}
			}
			if !conflict {
				break
			}
		}

		if c.Layout.Row != startRow {
			log.Addf(3, nameOverlap, "moved %s from row %d to row %d to resolve overlap",
				componentRef(c, idx), startRow, c.Layout.Row)
		}
		occupied = append(occupied, c.Layout)
	}
}
