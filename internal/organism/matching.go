package organism

// Matches reports whether r is a candidate for the cell at c, judged against
// the previous tick's board: the target must equal the cell's kind and the
// neighbour condition, if any, must hold.
func (r Rule) Matches(prev State, c Coords) bool {
	if !r.Active() || prev.Kind(c) != r.Target {
		return false
	}
	if !r.Conditional() {
		return true
	}
	return neighborMatches(r.Neighbor, prev.Kind(c.Add(r.NeighborDir.Delta())))
}

// neighborMatches compares a rule's neighbour condition against the kind
// actually found. ANY accepts everything except an empty square.
func neighborMatches(want, got CellKind) bool {
	if want == KindAny {
		return got != KindNone
	}
	return want == got
}
