package board

// Orientation is the way a gate currently leans.
type Orientation uint8

const (
	Left Orientation = iota
	Right
)

func (o Orientation) String() string {
	if o == Right {
		return "right"
	}
	return "left"
}

// Flipped returns the opposite orientation.
func (o Orientation) Flipped() Orientation {
	return o ^ 1
}

// Side is one of the two approach sides of a gate.
type Side uint8

const (
	LeftSide Side = iota
	RightSide
)

func (s Side) String() string {
	if s == RightSide {
		return "right-approach"
	}
	return "left-approach"
}

// Opposite returns the other approach side.
func (s Side) Opposite() Side {
	return s ^ 1
}

// A Gate is a single cell of the board. It leans left or right and can
// hold at most one resting token.
type Gate struct {
	orientation Orientation
	resting     bool
}

// NewGate creates a gate with the given attributes.
func NewGate(o Orientation, resting bool) Gate {
	return Gate{orientation: o, resting: resting}
}

func (g Gate) Orientation() Orientation {
	return g.orientation
}

func (g Gate) HasRestingToken() bool {
	return g.resting
}

// CapturingSide is the side on which an arriving token can be parked.
// A right-leaning gate captures on its right approach and vice versa.
func (g Gate) CapturingSide() Side {
	return Side(g.orientation)
}

// ReleasingSide is the side through which tokens fall to the next row.
func (g Gate) ReleasingSide() Side {
	return g.CapturingSide().Opposite()
}

// char is the compact single-letter form used by Board.String:
// l/r for an empty gate, L/R for a gate holding a token.
func (g Gate) char() byte {
	c := byte('l')
	if g.orientation == Right {
		c = 'r'
	}
	if g.resting {
		c -= 'a' - 'A'
	}
	return c
}
