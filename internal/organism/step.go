package organism

// NoRule marks squares where no rule was applied during a tick.
const NoRule = -1

// AppliedRules records, per square, the index of the rule applied in a tick.
type AppliedRules [Width][Height]int

func noRulesApplied() AppliedRules {
	var a AppliedRules
	for x := range Width {
		for y := range Height {
			a[x][y] = NoRule
		}
	}
	return a
}

// StepResult is the outcome of a single tick.
type StepResult struct {
	State   State
	Applied AppliedRules
	Deaths  int
	Changed bool
}

// tick holds the write side of one step. Reads go to the previous State,
// writes go to next.
type tick struct {
	next    board
	divided []Coords
	dying   map[Coords]struct{}
}

// Step advances prev by one tick under rules. prev must carry a live-cell
// list. Cells are visited in live-list order; cells created by division this
// tick are appended after the tick and first act on the next one. An error is
// always an *InvariantError.
func Step(prev State, rules *Rules) (StepResult, error) {
	live, ok := prev.LiveCells()
	if !ok {
		return StepResult{}, corrupt("state has no live-cell list")
	}

	t := &tick{
		next:  prev.board,
		dying: make(map[Coords]struct{}),
	}
	res := StepResult{Applied: noRulesApplied()}

	// 1) resolve at most one rule per cell
	for _, c := range live {
		for i := range rules {
			r := &rules[i]
			if !r.Matches(prev, c) {
				continue
			}
			if t.apply(c, r) {
				res.Applied[c.X][c.Y] = i
				res.Changed = true
				break
			}
		}
	}

	// 2) deferred deaths
	for c := range t.dying {
		t.next.cells[c.X][c.Y] = KindNone
		t.next.unlinkAll(c)
	}
	res.Deaths = len(t.dying)

	// 3) merge the live list: survivors in order, then new cells
	merged := make([]Coords, 0, len(live)+len(t.divided))
	for _, c := range live {
		if _, dead := t.dying[c]; !dead {
			merged = append(merged, c)
		}
	}
	merged = append(merged, t.divided...)

	state, err := newTrackedState(t.next, merged)
	if err != nil {
		return StepResult{}, err
	}
	res.State = state
	return res, nil
}

// apply performs r's reaction for the cell at c and reports whether it took
// effect. A reaction that cannot take effect leaves the board untouched.
func (t *tick) apply(c Coords, r *Rule) bool {
	switch rx := r.Reaction.(type) {
	case Divide:
		dst := c.Add(rx.Dir.Delta())
		if !dst.InBounds() || t.next.kind(dst) != KindNone {
			return false
		}
		t.next.cells[dst.X][dst.Y] = t.next.cells[c.X][c.Y]
		*t.next.link(c, dst) = true
		t.divided = append(t.divided, dst)
		return true

	case Die:
		t.dying[c] = struct{}{}
		return true

	case Fuse:
		dst := c.Add(rx.Dir.Delta())
		if !dst.InBounds() || !t.next.kind(dst).IsLiving() {
			return false
		}
		l := t.next.link(c, dst)
		if *l {
			return false
		}
		*l = true
		return true

	case Specialize:
		t.next.cells[c.X][c.Y] = rx.Into
		return true
	}
	return false
}
