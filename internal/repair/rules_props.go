package repair

import (
	"regexp"

	"github.com/agencykit/specforge/internal/dashspec"
	"github.com/agencykit/specforge/internal/tokens"
)

var colorKeyPattern = regexp.MustCompile(`(?i)color|fill`)

// Rule 5: scaffold required props for types with a defaults table. A present
// non-empty value is never overwritten.
func (e *Engine) applyRequiredProps(s *dashspec.Spec, log *FixLog) {
	for i := range s.Components {
		c := &s.Components[i]
		defaults, ok := e.rules.RequiredPropsFor(c.Type)
		if !ok {
			// Unknown type: nothing to scaffold.
			continue
		}
		for _, d := range defaults {
			if !c.Props.Missing(d.Key) {
				continue
			}
			c.Props.Set(d.Key, d.Value)
			log.Addf(5, nameRequiredProps, "set missing %s=%v on %s",
				d.Key, d.Value, componentRef(c, i))
		}
	}
}

// Rule 6: snap off-palette hex colors to the tenant palette. Applies only
// when tokens are provided, only to props whose key mentions color or fill,
// and only to hex-looking values.
func (e *Engine) applyColorValidation(s *dashspec.Spec, log *FixLog) {
	if e.tokens == nil || len(e.tokens.Colors) == 0 {
		return
	}

	target := e.tokens.Primary()
	if target == "" {
		target = e.rules.FallbackColor
	}

	for i := range s.Components {
		c := &s.Components[i]
		for _, key := range c.Props.Keys() {
			if !colorKeyPattern.MatchString(key) {
				continue
			}
			v, ok := c.Props.GetString(key)
			if !ok || !tokens.IsHex(v) {
				continue
			}
			if e.tokens.HasColor(v) {
				continue
			}
			if tokens.NormalizeHex(v) == tokens.NormalizeHex(target) {
				// Already the replacement value; re-logging it would break
				// idempotence when the fallback is off-palette.
				continue
			}
			c.Props.Set(key, target)
			log.Addf(6, nameColors, "replaced off-palette %s %s with %s on %s",
				key, v, target, componentRef(c, i))
		}
	}
}

// Rule 7: raise boxes to the per-type minimum extent. Never shrinks. The
// width raise is capped at the grid width so it cannot undo rule 2.
func (e *Engine) applyMinSizes(s *dashspec.Spec, log *FixLog) {
	for i := range s.Components {
		c := &s.Components[i]
		ms, ok := e.rules.MinSizeFor(c.Type)
		if !ok {
			continue
		}
		if s.Layout.Columns >= 1 && ms.W > s.Layout.Columns {
			ms.W = s.Layout.Columns
		}
		if c.Layout.W < ms.W {
			log.Addf(7, nameMinSizes, "raised width %d to minimum %d on %s",
				c.Layout.W, ms.W, componentRef(c, i))
			c.Layout.W = ms.W
			if over := c.Layout.Col + c.Layout.W - s.Layout.Columns; over > 0 && c.Layout.Col >= over {
				// Shift left so the raise stays on the grid.
				c.Layout.Col -= over
			}
		}
		if c.Layout.H < ms.H {
			log.Addf(7, nameMinSizes, "raised height %d to minimum %d on %s",
				c.Layout.H, ms.H, componentRef(c, i))
			c.Layout.H = ms.H
		}
	}
}
