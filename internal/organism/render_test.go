package organism

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twinsBoard = `┌───────┐
│_ _ _ _│
│       │
│_ _ _ _│
│       │
│_ _ █ _│
│       │
│_ s _ _│
│  |    │
│f-s _ _│
└───────┘`

func TestParseState(t *testing.T) {
	s, err := ParseState(twinsBoard)
	require.NoError(t, err)

	assert.Equal(t, KindFlesh, s.Kind(at(0, 0)))
	assert.Equal(t, KindSkin, s.Kind(at(1, 0)))
	assert.Equal(t, KindSkin, s.Kind(at(1, 1)))
	assert.Equal(t, KindMetal, s.Kind(at(2, 2)))
	assert.True(t, s.Linked(at(0, 0), at(1, 0)))
	assert.True(t, s.Linked(at(1, 0), at(1, 1)))
	assert.False(t, s.Linked(at(0, 0), at(0, 1)))
	assert.Len(t, s.Living(), 3)

	assert.Equal(t, twinsBoard, s.Render())
}

func TestParseState_WithoutBorder(t *testing.T) {
	lines := strings.Split(twinsBoard, "\n")
	inner := make([]string, 0, len(lines)-2)
	for _, l := range lines[1 : len(lines)-1] {
		r := []rune(l)
		inner = append(inner, string(r[1:len(r)-1]))
	}

	s, err := ParseState(strings.Join(inner, "\n") + "\n")
	require.NoError(t, err)
	want, err := ParseState(twinsBoard)
	require.NoError(t, err)
	assert.True(t, want.Equal(s))
}

func TestParseState_LegacyMetal(t *testing.T) {
	s, err := ParseState(strings.Replace(twinsBoard, "█", "X", 1))
	require.NoError(t, err)
	assert.Equal(t, KindMetal, s.Kind(at(2, 2)))
}

func TestParseState_Rejects(t *testing.T) {
	_, err := ParseState("_ _ _ _")
	assert.Error(t, err)

	_, err = ParseState(strings.Replace(twinsBoard, "f-s", "f-_", 1))
	assert.Error(t, err, "link to an empty square")

	_, err = ParseState(strings.Replace(twinsBoard, "f-s", "z-s", 1))
	assert.Error(t, err, "unknown symbol")
}

func TestRender_RoundTrip(t *testing.T) {
	level := levelWith(t, emptyBoard(), 0)
	res, err := Simulate(level, blinker())
	require.NoError(t, err)
	for _, s := range res.States {
		back, err := ParseState(s.Render())
		require.NoError(t, err)
		assert.True(t, s.Equal(back))
	}
}

func TestRenderRule(t *testing.T) {
	got := RenderRule(when(KindFlesh, KindNone, Left, Divide{Dir: Up}))
	want := strings.Join([]string{
		"┌─────┐ ┌─────┐",
		"│     │ │  f  │",
		"│     │ │  |  │",
		"│_ f  │>│_ f  │",
		"│     │ │     │",
		"│     │ │     │",
		"└─────┘ └─────┘",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRenderRule_Reactions(t *testing.T) {
	die := strings.Split(RenderRule(unconditional(KindSkin, Die{})), "\n")
	assert.Equal(t, "│  s  │>│  _  │", die[3])

	pic := strings.Split(RenderRule(unconditional(KindSeed, Specialize{Into: KindBone})), "\n")
	assert.Equal(t, "│  *  │>│  b  │", pic[3])

	fuse := strings.Split(RenderRule(when(KindBone, KindFlesh, Right, Fuse{Dir: Right})), "\n")
	assert.Equal(t, "│  b f│>│  b-b│", fuse[3])
}
