package organism

import "fmt"

// Direction is one of the four orthogonal neighbours. Values are wire codes.
type Direction int32

const (
	Right Direction = 1
	Up    Direction = 2
	Left  Direction = 4
	Down  Direction = 8
)

// Directions lists every direction in wire-code order.
var Directions = [...]Direction{Right, Up, Left, Down}

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	switch d {
	case Right, Up, Left, Down:
		return true
	}
	return false
}

// Delta returns the unit offset for d. Unknown directions yield the zero offset.
func (d Direction) Delta() Coords {
	switch d {
	case Right:
		return Coords{X: 1}
	case Up:
		return Coords{Y: 1}
	case Left:
		return Coords{X: -1}
	case Down:
		return Coords{Y: -1}
	}
	return Coords{}
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "RIGHT"
	case Up:
		return "UP"
	case Left:
		return "LEFT"
	case Down:
		return "DOWN"
	}
	return fmt.Sprintf("Direction(%d)", int32(d))
}

// DirectionFromDelta maps a unit offset back to its direction.
func DirectionFromDelta(delta Coords) (Direction, bool) {
	for _, d := range Directions {
		if d.Delta() == delta {
			return d, true
		}
	}
	return 0, false
}
