package organism

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// emptyBoard returns a board of NONE squares.
func emptyBoard() board {
	return EmptyState().board
}

// tracked builds a simulation state from b with the given live list.
func tracked(t *testing.T, b board, live ...Coords) State {
	t.Helper()
	s, err := newTrackedState(b, live)
	require.NoError(t, err)
	return s
}

// rulesOf fills the leading slots with rs and leaves the rest unused.
func rulesOf(rs ...Rule) *Rules {
	all := EmptyRules()
	copy(all[:], rs)
	return &all
}

func unconditional(target CellKind, reaction Reaction) Rule {
	return Rule{Target: target, Neighbor: KindIgnore, NeighborDir: Right, Reaction: reaction}
}

func when(target, neighbor CellKind, dir Direction, reaction Reaction) Rule {
	return Rule{Target: target, Neighbor: neighbor, NeighborDir: dir, Reaction: reaction}
}

func at(x, y int) Coords { return Coords{X: x, Y: y} }
