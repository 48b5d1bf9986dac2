package repair

import (
	"fmt"

	"github.com/agencykit/specforge/internal/dashspec"
)

// Rule names as they appear in fix strings.
const (
	nameKPILimit       = "KPI Limit"
	nameGridBounds     = "Grid Bounds"
	nameOverlap        = "Overlap Resolution"
	nameRequiredProps  = "Required Props"
	nameColors         = "Color Validation"
	nameMinSizes       = "Min Sizes"
	nameComponentIDs   = "Component IDs"
	nameSingleDominant = "Single Dominant"
	nameSpacingSnap    = "Spacing Snap"
	nameAccessibility  = "Accessibility Floor"
	nameChartDiversity = "Chart Diversity"
)

// FixLog accumulates human-readable fix strings across the rule sequence.
// Rules only ever append; none reads another rule's entries.
type FixLog struct {
	entries []string
}

// NewFixLog creates an empty fix log.
func NewFixLog() *FixLog {
	return &FixLog{entries: []string{}}
}

// Addf appends one fix in the "Rule N (<name>): <what>" format.
func (l *FixLog) Addf(number int, name, format string, args ...interface{}) {
	l.entries = append(l.entries,
		fmt.Sprintf("Rule %d (%s): %s", number, name, fmt.Sprintf(format, args...)))
}

// Entries returns the accumulated fixes in order.
func (l *FixLog) Entries() []string {
	return l.entries
}

// Len returns the number of fixes.
func (l *FixLog) Len() int {
	return len(l.entries)
}

// componentRef names a component for the fix log. Rules that run before ID
// repair may see components without an ID.
func componentRef(c *dashspec.Component, index int) string {
	if c.ID != "" {
		return c.ID
	}
	return fmt.Sprintf("component[%d]", index)
}
