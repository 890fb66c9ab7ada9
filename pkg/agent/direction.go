package agent

// Direction is one of the four canonical facings, ordered clockwise so that
// turning is modulo-4 arithmetic.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Left returns the direction one counter-clockwise step away.
func (d Direction) Left() Direction {
	return (d + 3) % 4
}

// Right returns the direction one clockwise step away.
func (d Direction) Right() Direction {
	return (d + 1) % 4
}

// Delta returns the unit (row, col) offset of a single step in d.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	default:
		return 0, -1
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	default:
		return "west"
	}
}

// Symbol returns an arrow glyph for display.
func (d Direction) Symbol() string {
	switch d {
	case North:
		return "↑"
	case East:
		return "→"
	case South:
		return "↓"
	default:
		return "←"
	}
}
