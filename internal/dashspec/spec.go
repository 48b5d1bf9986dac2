package dashspec

// Spec is the top-level dashboard description produced by the generation step.
// It arrives untrusted: any field may be missing, zero, or out of range.
type Spec struct {
	Layout           GridLayout  `json:"layout"`
	Components       []Component `json:"components"`
	LayoutSkeletonID string      `json:"layoutSkeletonId,omitempty"`
}

// GridLayout describes the column grid components are placed on.
// Height is unbounded; only columns are constrained.
type GridLayout struct {
	Columns int `json:"columns"`
	Gap     int `json:"gap"`
}

// Component is one widget: a type name, a loosely typed props bag, and a grid box.
// Type is an open string set; new widget types arrive via ruleset configuration.
type Component struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	Props  PropBag `json:"props"`
	Layout Box     `json:"layout"`
}

// Box is a component's position and extent on the grid.
type Box struct {
	Col      int  `json:"col"`
	Row      int  `json:"row"`
	W        int  `json:"w"`
	H        int  `json:"h"`
	Dominant bool `json:"dominant,omitempty"`
}

// Overlaps reports whether two boxes intersect on both axes (AABB test).
func (b Box) Overlaps(other Box) bool {
	return b.Col < other.Col+other.W && b.Col+b.W > other.Col &&
		b.Row < other.Row+other.H && b.Row+b.H > other.Row
}
