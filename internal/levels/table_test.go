package levels

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniacca/xbpgh/internal/organism"
)

func defaultSet(t *testing.T) *Set {
	t.Helper()
	set, err := Default()
	require.NoError(t, err)
	return set
}

func TestDefault_RenderRoundTrip(t *testing.T) {
	set := defaultSet(t)
	require.Equal(t, 10, set.Len())

	for _, l := range set.All() {
		back, err := organism.ParseState(l.Target.Render())
		require.NoError(t, err, l.Name)
		assert.True(t, back.Equal(l.Target), l.Name)
		assert.NoError(t, l.Target.Check(), l.Name)
	}
}

func TestDefault_PlayOrder(t *testing.T) {
	all := defaultSet(t).All()
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Index, all[i].Index)
	}
	last := all[len(all)-1]
	assert.Equal(t, "Puzzle Editor", last.Name)
	assert.True(t, last.CanMetal)
	assert.True(t, last.Bonus)
}

func TestDefault_Once(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestSet_ByID(t *testing.T) {
	set := defaultSet(t)

	l, ok := set.ByID(102)
	require.True(t, ok)
	assert.Equal(t, "Twins", l.Name)
	assert.Equal(t, organism.KindFlesh, l.Target.Kind(organism.Coords{X: 1, Y: 0}))

	_, ok = set.ByID(7)
	assert.False(t, ok)
}

func TestSet_AllReturnsCopy(t *testing.T) {
	set := defaultSet(t)
	all := set.All()
	all[0].Name = "changed"
	assert.Equal(t, "Sprout", set.All()[0].Name)
}

func TestSet_Lookup(t *testing.T) {
	set := defaultSet(t)

	tests := []struct {
		query string
		want  string
	}{
		{"Twins", "Twins"},
		{"  twINS ", "Twins"},
		{"patient ibarra", "Patient Ibarra"},
		{"editor", "Puzzle Editor"},
		{"the EDITOR level", "Puzzle Editor"},
		{"Clark", "Patient Clark"},
		{"dr novak please", "Patient Novak"},
		{"1-1", "Sprout"},
		{"1-3", "Column"},
		{"2-1", "Bridge"},
		{"2-3", "Heartbeat"},
		{"b1-2", "Patient Ibarra"},
		{"bonus 1-3", "Patient Novak"},
		{"B2-1", "Puzzle Editor"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			l, err := set.Lookup(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.Name)
		})
	}
}

func TestSet_LookupUnknown(t *testing.T) {
	set := defaultSet(t)
	for _, q := range []string{"", "nothing", "3-1", "1-4", "0-1", "123", "b2-2"} {
		_, err := set.Lookup(q)
		assert.ErrorIs(t, err, ErrUnknownLevel, "query %q", q)
	}
}

func TestSet_SolvesTwins(t *testing.T) {
	level, err := defaultSet(t).Lookup("1-2")
	require.NoError(t, err)

	rules := organism.EmptyRules()
	rules[0] = organism.Rule{Target: organism.KindSeed, Neighbor: organism.KindIgnore, NeighborDir: organism.Right, Reaction: organism.Specialize{Into: organism.KindFlesh}}
	rules[1] = organism.Rule{Target: organism.KindFlesh, Neighbor: organism.KindNone, NeighborDir: organism.Left, Reaction: organism.Divide{Dir: organism.Right}}

	res, err := organism.Simulate(level, organism.Solution{Rules: rules, Start: organism.Coords{}})
	require.NoError(t, err)
	assert.Equal(t, organism.Metrics{
		IsCorrect:           true,
		NumRules:            2,
		NumRulesConditional: 1,
		NumFrames:           3,
		IsStable:            true,
	}, res.Metrics)
}

const validTable = `
levels:
  - id: 1
    name: One
    index: 0
    min_waste: 0
    target: |
      ┌───────┐
      │_ _ _ _│
      │       │
      │_ _ _ _│
      │       │
      │_ _ _ _│
      │       │
      │_ _ _ _│
      │       │
      │f _ _ _│
      └───────┘
  - id: 2
    name: Editor
    index: 1
    bonus: true
    can_place_metal: true
    min_waste: 0
    target: |
      ┌───────┐
      │_ _ _ _│
      │       │
      │_ _ _ _│
      │       │
      │_ _ _ _│
      │       │
      │_ _ _ _│
      │       │
      │_ _ _ _│
      └───────┘
`

func TestParse_Minimal(t *testing.T) {
	set, err := Parse([]byte(validTable))
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())
	l, ok := set.ByID(1)
	require.True(t, ok)
	assert.Equal(t, organism.KindFlesh, l.Target.Kind(organism.Coords{}))
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		edit func(string) string
		want string
	}{
		{"duplicate id", func(s string) string { return strings.Replace(s, "id: 2", "id: 1", 1) }, "unique"},
		{"duplicate name", func(s string) string { return strings.Replace(s, "name: Editor", "name: one", 1) }, "duplicate level name"},
		{"duplicate index", func(s string) string { return strings.Replace(s, "index: 1", "index: 0", 1) }, "duplicate level index"},
		{"missing name", func(s string) string { return strings.Replace(s, "name: One", "name: ''", 1) }, "Name"},
		{"negative waste", func(s string) string { return strings.Replace(s, "min_waste: 0", "min_waste: -2", 1) }, "MinWaste"},
		{"editor not last", func(s string) string { return strings.Replace(s, "bonus: true", "bonus: false", 1) }, "must be the bonus editor level"},
		{"unknown field", func(s string) string { return strings.Replace(s, "min_waste: 0", "minwaste: 0", 1) }, "minwaste"},
		{"bad symbol", func(s string) string { return strings.Replace(s, "f _ _ _", "z _ _ _", 1) }, "unknown cell symbol"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.edit(validTable)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse([]byte("levels: []\n"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.HasIssues())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validTable), 0o600))

	set, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Editor", set.Editor().Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSet_Position(t *testing.T) {
	set := defaultSet(t)
	for _, l := range set.All() {
		pos := set.Position(l)
		back, err := set.Lookup(pos)
		require.NoError(t, err, pos)
		assert.Equal(t, l.ID, back.ID, pos)
	}
	assert.Equal(t, "B2-1", set.Position(set.Editor()))
	assert.Empty(t, set.Position(organism.Level{ID: 5}))
}
