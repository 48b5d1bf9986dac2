package repair

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/agencykit/specforge/internal/dashspec"
)

var dupSuffixPattern = regexp.MustCompile(`-dup\d+$`)

// freshID generates an id for a component that arrived without one. This is
// the engine's only source of nondeterminism.
func freshID() string {
	return "comp-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Rule 8: give every component a unique id. Missing ids get a fresh one;
// repeats get a -dupN suffix counted per stripped base id, so a second pass
// over already-suffixed ids finds nothing to do.
func (e *Engine) applyComponentIDs(s *dashspec.Spec, log *FixLog) {
	used := make(map[string]bool, len(s.Components))
	dupCounts := make(map[string]int)

	for i := range s.Components {
		c := &s.Components[i]

		if c.ID == "" {
			id := freshID()
			for used[id] {
				id = freshID()
			}
			c.ID = id
			used[id] = true
			log.Addf(8, nameComponentIDs, "generated id %s for component[%d]", id, i)
			continue
		}

		if !used[c.ID] {
			used[c.ID] = true
			continue
		}

		base := dupSuffixPattern.ReplaceAllString(c.ID, "")
		var candidate string
		for {
			dupCounts[base]++
			candidate = fmt.Sprintf("%s-dup%d", base, dupCounts[base])
			if !used[candidate] {
				break
			}
		}
		log.Addf(8, nameComponentIDs, "renamed duplicate id %s to %s", c.ID, candidate)
		c.ID = candidate
		used[candidate] = true
	}
}

// Rule 9: at most one component may carry the dominant marker, in either its
// props or its layout. The first in array order keeps it; the flag is cleared
// in both locations on all others.
func (e *Engine) applySingleDominant(s *dashspec.Spec, log *FixLog) {
	found := false
	for i := range s.Components {
		c := &s.Components[i]
		propDominant := c.Props.Truthy("dominant")
		layoutDominant := c.Layout.Dominant
		if !propDominant && !layoutDominant {
			continue
		}
		if !found {
			found = true
			continue
		}
		if propDominant {
			c.Props.Set("dominant", false)
		}
		if layoutDominant {
			c.Layout.Dominant = false
		}
		log.Addf(9, nameSingleDominant, "cleared extra dominant flag on %s", componentRef(c, i))
	}
}
