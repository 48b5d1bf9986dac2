package dashspec

// Clone returns an independent structural copy of the spec. The copy is built
// by walking the fields directly rather than a marshal/unmarshal round trip,
// so attacker-controlled prop keys stay plain data and can never affect
// anything but their own entry.
func (s *Spec) Clone() *Spec {
	if s == nil {
		return nil
	}

	out := &Spec{
		Layout:           s.Layout,
		LayoutSkeletonID: s.LayoutSkeletonID,
	}
	if s.Components != nil {
		out.Components = make([]Component, len(s.Components))
		for i, c := range s.Components {
			out.Components[i] = Component{
				ID:     c.ID,
				Type:   c.Type,
				Props:  c.Props.Clone(),
				Layout: c.Layout,
			}
		}
	}
	return out
}

// cloneValue deep-copies a loosely typed prop value. Maps and slices are
// copied recursively; scalars are returned as-is.
func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}
