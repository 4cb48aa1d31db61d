package organism

import "slices"

// Grid holds one CellKind per board square, indexed [x][y].
type Grid [Width][Height]CellKind

// HorzLinks[i][j] records a link between (i, j) and (i+1, j).
type HorzLinks [Width - 1][Height]bool

// VertLinks[i][j] records a link between (i, j) and (i, j+1).
type VertLinks [Width][Height - 1]bool

// board is the plain, copyable payload of a State.
type board struct {
	cells Grid
	horz  HorzLinks
	vert  VertLinks
}

func (b *board) kind(c Coords) CellKind {
	if !c.InBounds() {
		return KindNone
	}
	return b.cells[c.X][c.Y]
}

// link locates the edge slot between two orthogonally adjacent squares.
func (b *board) link(a, c Coords) *bool {
	switch {
	case a.Y == c.Y && (a.X-c.X == 1 || c.X-a.X == 1):
		return &b.horz[min(a.X, c.X)][a.Y]
	case a.X == c.X && (a.Y-c.Y == 1 || c.Y-a.Y == 1):
		return &b.vert[a.X][min(a.Y, c.Y)]
	}
	return nil
}

func (b *board) linked(a, c Coords) bool {
	if !a.InBounds() || !c.InBounds() {
		return false
	}
	l := b.link(a, c)
	return l != nil && *l
}

// unlinkAll clears every edge touching c.
func (b *board) unlinkAll(c Coords) {
	if c.X > 0 {
		b.horz[c.X-1][c.Y] = false
	}
	if c.X+1 < Width {
		b.horz[c.X][c.Y] = false
	}
	if c.Y > 0 {
		b.vert[c.X][c.Y-1] = false
	}
	if c.Y+1 < Height {
		b.vert[c.X][c.Y] = false
	}
}

// State is an immutable snapshot of the board. The live-cell list is only
// tracked while simulating; stored and target states carry none.
type State struct {
	board
	live    []Coords
	tracked bool
}

// NewState builds a State without a live-cell list and checks its invariants.
func NewState(cells Grid, horz HorzLinks, vert VertLinks) (State, error) {
	s := State{board: board{cells: cells, horz: horz, vert: vert}}
	if err := s.Check(); err != nil {
		return State{}, err
	}
	return s, nil
}

// EmptyState returns a board of NONE squares with no links.
func EmptyState() State {
	var s State
	for x := range Width {
		for y := range Height {
			s.cells[x][y] = KindNone
		}
	}
	return s
}

func newTrackedState(b board, live []Coords) (State, error) {
	s := State{board: b, live: live, tracked: true}
	if err := s.Check(); err != nil {
		return State{}, err
	}
	return s, nil
}

// Kind returns the kind at c. Squares off the board read as NONE.
func (s State) Kind(c Coords) CellKind { return s.kind(c) }

// Cells returns a copy of the grid.
func (s State) Cells() Grid { return s.cells }

// Horz returns a copy of the horizontal links.
func (s State) Horz() HorzLinks { return s.horz }

// Vert returns a copy of the vertical links.
func (s State) Vert() VertLinks { return s.vert }

// Linked reports whether a and c are adjacent and connected.
func (s State) Linked(a, c Coords) bool { return s.linked(a, c) }

// LiveCells returns a copy of the live-cell list in insertion order and
// whether the state tracks one at all.
func (s State) LiveCells() ([]Coords, bool) {
	if !s.tracked {
		return nil, false
	}
	return slices.Clone(s.live), true
}

// WithoutLiveCells returns s with its live-cell list dropped.
func (s State) WithoutLiveCells() State {
	return State{board: s.board}
}

// Living returns the coordinates of every living square in x, y order.
func (s State) Living() []Coords {
	var out []Coords
	for x := range Width {
		for y := range Height {
			if s.cells[x][y].IsLiving() {
				out = append(out, Coords{X: x, Y: y})
			}
		}
	}
	return out
}

// Equal compares grids and links; live-cell lists are ignored.
func (s State) Equal(o State) bool {
	return s.board == o.board
}

// Check verifies the structural invariants and returns an *InvariantError
// describing the first violation.
func (s State) Check() error {
	for x := range Width {
		for y := range Height {
			k := s.cells[x][y]
			if !k.Valid() || k == KindIgnore || k == KindAny {
				return corrupt("square (%d, %d) holds %v", x, y, k)
			}
			if x+1 < Width && s.horz[x][y] && !(k.IsLiving() && s.cells[x+1][y].IsLiving()) {
				return corrupt("horizontal link at (%d, %d) joins non-living squares", x, y)
			}
			if y+1 < Height && s.vert[x][y] && !(k.IsLiving() && s.cells[x][y+1].IsLiving()) {
				return corrupt("vertical link at (%d, %d) joins non-living squares", x, y)
			}
		}
	}
	if !s.tracked {
		return nil
	}

	seen := make(map[Coords]struct{}, len(s.live))
	for _, c := range s.live {
		if !c.InBounds() {
			return corrupt("live cell %v is off the board", c)
		}
		if _, dup := seen[c]; dup {
			return corrupt("live cell %v listed twice", c)
		}
		if !s.kind(c).IsLiving() {
			return corrupt("live cell %v holds %v", c, s.kind(c))
		}
		seen[c] = struct{}{}
	}
	if n := len(s.Living()); n != len(seen) {
		return corrupt("live-cell list has %d entries, board has %d living squares", len(seen), n)
	}
	return nil
}
