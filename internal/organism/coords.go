package organism

import (
	"cmp"
	"fmt"
)

// Board dimensions. Every State is exactly Width x Height cells.
const (
	Width  = 4
	Height = 5
)

// Coords addresses one square of the board. x grows to the right, y grows up.
type Coords struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// InBounds reports whether c lies on the board.
func (c Coords) InBounds() bool {
	return 0 <= c.X && c.X < Width && 0 <= c.Y && c.Y < Height
}

// Add returns the coordinate-wise sum of c and o.
func (c Coords) Add(o Coords) Coords {
	return Coords{X: c.X + o.X, Y: c.Y + o.Y}
}

// Compare orders coordinates by x, then by y.
func (c Coords) Compare(o Coords) int {
	if r := cmp.Compare(c.X, o.X); r != 0 {
		return r
	}
	return cmp.Compare(c.Y, o.Y)
}

// Less reports whether c sorts before o.
func (c Coords) Less(o Coords) bool { return c.Compare(o) < 0 }

func (c Coords) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}
