package organism

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoords_InBounds(t *testing.T) {
	assert.True(t, at(0, 0).InBounds())
	assert.True(t, at(3, 4).InBounds())
	assert.False(t, at(4, 0).InBounds())
	assert.False(t, at(0, 5).InBounds())
	assert.False(t, at(-1, 2).InBounds())
}

func TestCoords_Order(t *testing.T) {
	cs := []Coords{at(2, 1), at(0, 4), at(2, 0), at(1, 3)}
	slices.SortFunc(cs, Coords.Compare)
	assert.Equal(t, []Coords{at(0, 4), at(1, 3), at(2, 0), at(2, 1)}, cs)
	assert.True(t, at(1, 4).Less(at(2, 0)))
	assert.Equal(t, at(3, 1), at(1, 2).Add(at(2, -1)))
}

func TestCellKind_SymbolsAreBijective(t *testing.T) {
	seen := make(map[rune]CellKind)
	for k := KindIgnore; k <= KindNone; k++ {
		require.True(t, k.Valid(), "kind %d", k)
		s := k.Symbol()
		if other, dup := seen[s]; dup {
			t.Fatalf("symbol %q shared by %v and %v", s, other, k)
		}
		seen[s] = k

		back, err := KindFromSymbol(s)
		require.NoError(t, err)
		assert.Equal(t, k, back)
	}
	assert.Len(t, seen, 14)

	metal, err := KindFromSymbol('X')
	require.NoError(t, err)
	assert.Equal(t, KindMetal, metal)

	_, err = KindFromSymbol('z')
	assert.Error(t, err)
	assert.False(t, CellKind(14).Valid())
}

func TestCellKind_IsLiving(t *testing.T) {
	notLiving := []CellKind{KindIgnore, KindMetal, KindAny, KindNone}
	for k := KindIgnore; k <= KindNone; k++ {
		assert.Equal(t, !slices.Contains(notLiving, k), k.IsLiving(), "%v", k)
	}
}

func TestDirection_DeltaRoundTrip(t *testing.T) {
	for _, d := range Directions {
		back, ok := DirectionFromDelta(d.Delta())
		require.True(t, ok)
		assert.Equal(t, d, back)
	}
	_, ok := DirectionFromDelta(at(1, 1))
	assert.False(t, ok)
	assert.Equal(t, at(0, -1), Down.Delta())
	assert.Equal(t, []Direction{1, 2, 4, 8}, Directions[:])
}

func TestRules_Count(t *testing.T) {
	rs := rulesOf(
		unconditional(KindSeed, Specialize{Into: KindFlesh}),
		when(KindFlesh, KindNone, Left, Divide{Dir: Right}),
		when(KindFlesh, KindAny, Up, Ignore{}),
	)
	active, conditional := rs.Count()
	assert.Equal(t, 3, active)
	assert.Equal(t, 2, conditional)
}

func TestState_Invariants(t *testing.T) {
	t.Run("link between living cells", func(t *testing.T) {
		b := emptyBoard()
		b.cells[0][0], b.cells[1][0] = KindFlesh, KindBone
		b.horz[0][0] = true
		_, err := NewState(b.cells, b.horz, b.vert)
		assert.NoError(t, err)
	})

	t.Run("link to empty square", func(t *testing.T) {
		b := emptyBoard()
		b.cells[0][0] = KindFlesh
		b.vert[0][0] = true
		_, err := NewState(b.cells, b.horz, b.vert)
		require.Error(t, err)
		assert.True(t, IsInternal(err))
	})

	t.Run("link to metal", func(t *testing.T) {
		b := emptyBoard()
		b.cells[2][3], b.cells[3][3] = KindSkin, KindMetal
		b.horz[2][3] = true
		_, err := NewState(b.cells, b.horz, b.vert)
		assert.ErrorIs(t, err, ErrCorruptState)
	})

	t.Run("wildcards never sit on the board", func(t *testing.T) {
		for _, k := range []CellKind{KindIgnore, KindAny} {
			b := emptyBoard()
			b.cells[1][1] = k
			_, err := NewState(b.cells, b.horz, b.vert)
			assert.Error(t, err, "%v", k)
		}
	})

	t.Run("live list must match living squares", func(t *testing.T) {
		b := emptyBoard()
		b.cells[1][2] = KindSeed
		_, err := newTrackedState(b, []Coords{at(1, 2)})
		assert.NoError(t, err)

		_, err = newTrackedState(b, nil)
		assert.Error(t, err)
		_, err = newTrackedState(b, []Coords{at(1, 2), at(1, 2)})
		assert.Error(t, err)
		_, err = newTrackedState(b, []Coords{at(1, 2), at(0, 0)})
		assert.Error(t, err)
	})
}

func TestState_EqualIgnoresLiveCells(t *testing.T) {
	b := emptyBoard()
	b.cells[1][2] = KindSeed
	live := tracked(t, b, at(1, 2))
	plain, err := NewState(b.cells, b.horz, b.vert)
	require.NoError(t, err)

	assert.True(t, live.Equal(plain))
	_, ok := live.WithoutLiveCells().LiveCells()
	assert.False(t, ok)
	cells, ok := live.LiveCells()
	assert.True(t, ok)
	assert.Equal(t, []Coords{at(1, 2)}, cells)
}

func TestState_AccessorsReturnCopies(t *testing.T) {
	b := emptyBoard()
	b.cells[0][0] = KindSeed
	s := tracked(t, b, at(0, 0))

	cells := s.Cells()
	cells[0][0] = KindNone
	live, _ := s.LiveCells()
	live[0] = at(3, 3)

	assert.Equal(t, KindSeed, s.Kind(at(0, 0)))
	again, _ := s.LiveCells()
	assert.Equal(t, []Coords{at(0, 0)}, again)
	assert.Equal(t, KindNone, s.Kind(at(-1, 0)))
}
