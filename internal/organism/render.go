package organism

import (
	"fmt"
	"strings"
)

// Canvas sizes of the canonical rendering: cells sit on even positions and
// links between them on odd positions.
const (
	canvasW = 2*Width - 1
	canvasH = 2*Height - 1
)

// canvas is indexed [x][y] with y growing upwards.
type canvas [][]rune

func newCanvas(w, h int) canvas {
	c := make(canvas, w)
	for x := range c {
		c[x] = []rune(strings.Repeat(" ", h))
	}
	return c
}

// lines draws the canvas inside a box, top row first.
func (c canvas) lines() []string {
	w, h := len(c), len(c[0])
	out := make([]string, 0, h+2)
	out = append(out, "┌"+strings.Repeat("─", w)+"┐")
	for y := h - 1; y >= 0; y-- {
		var sb strings.Builder
		sb.WriteRune('│')
		for x := range w {
			sb.WriteRune(c[x][y])
		}
		sb.WriteRune('│')
		out = append(out, sb.String())
	}
	out = append(out, "└"+strings.Repeat("─", w)+"┘")
	return out
}

// Render draws s as a bordered 7x9 block: cell symbols, '-' for horizontal
// links and '|' for vertical links. The top line is y = 4.
func (s State) Render() string {
	g := newCanvas(canvasW, canvasH)
	for x := range Width {
		for y := range Height {
			g[2*x][2*y] = s.cells[x][y].Symbol()
		}
	}
	for x := range Width - 1 {
		for y := range Height {
			if s.horz[x][y] {
				g[2*x+1][2*y] = '-'
			}
		}
	}
	for x := range Width {
		for y := range Height - 1 {
			if s.vert[x][y] {
				g[2*x][2*y+1] = '|'
			}
		}
	}
	return strings.Join(g.lines(), "\n")
}

// ParseState reads the block produced by Render. The surrounding border is
// optional.
func ParseState(text string) (State, error) {
	text = strings.ReplaceAll(text, "\r", "")
	raw := strings.Split(strings.TrimRight(text, "\n"), "\n")
	rows := make([][]rune, len(raw))
	for i, l := range raw {
		rows[i] = []rune(l)
	}

	if len(rows) == canvasH+2 && allWidth(rows, canvasW+2) {
		rows = rows[1 : len(rows)-1]
		for i := range rows {
			rows[i] = rows[i][1 : len(rows[i])-1]
		}
	}
	if len(rows) != canvasH || !allWidth(rows, canvasW) {
		return State{}, fmt.Errorf("board must be %dx%d characters, got %d lines", canvasW, canvasH, len(rows))
	}

	at := func(x, y int) rune { return rows[canvasH-1-y][x] }

	var (
		cells Grid
		horz  HorzLinks
		vert  VertLinks
	)
	for x := range Width {
		for y := range Height {
			k, err := KindFromSymbol(at(2*x, 2*y))
			if err != nil {
				return State{}, fmt.Errorf("square (%d, %d): %w", x, y, err)
			}
			cells[x][y] = k
		}
	}
	for x := range Width - 1 {
		for y := range Height {
			horz[x][y] = at(2*x+1, 2*y) == '-'
		}
	}
	for x := range Width {
		for y := range Height - 1 {
			vert[x][y] = at(2*x, 2*y+1) == '|'
		}
	}
	return NewState(cells, horz, vert)
}

func allWidth(rows [][]rune, w int) bool {
	for _, r := range rows {
		if len(r) != w {
			return false
		}
	}
	return true
}

// RenderRule draws a rule as two 5x5 pictures, before and after, joined by
// an arrow.
func RenderRule(r Rule) string {
	origin := Coords{X: 1, Y: 1}
	before := ruleCanvas(r, origin)
	after := ruleCanvas(r, origin)

	switch rx := r.Reaction.(type) {
	case Divide:
		drawLink(after, origin, origin.Add(rx.Dir.Delta()), r.Target.Symbol())
	case Fuse:
		drawLink(after, origin, origin.Add(rx.Dir.Delta()), r.Target.Symbol())
	case Die:
		after[2*origin.X][2*origin.Y] = KindNone.Symbol()
	case Specialize:
		after[2*origin.X][2*origin.Y] = rx.Into.Symbol()
	}

	left, right := before.lines(), after.lines()
	mid := len(left) / 2
	out := make([]string, len(left))
	for i := range left {
		arrow := " "
		if i == mid {
			arrow = ">"
		}
		out[i] = left[i] + arrow + right[i]
	}
	return strings.Join(out, "\n")
}

func ruleCanvas(r Rule, origin Coords) canvas {
	g := newCanvas(5, 5)
	g[2*origin.X][2*origin.Y] = r.Target.Symbol()
	n := origin.Add(r.NeighborDir.Delta())
	g[2*n.X][2*n.Y] = r.Neighbor.Symbol()
	return g
}

func drawLink(g canvas, from, to Coords, symbol rune) {
	g[2*to.X][2*to.Y] = symbol
	link := '|'
	if from.X != to.X {
		link = '-'
	}
	g[from.X+to.X][from.Y+to.Y] = link
}
