package board

import (
	"errors"
	"fmt"
	"strings"
)

// Space - one of the nine cells, addressed by a row letter and a column digit.
type Space string

const (
	A1 Space = "A1"
	A2 Space = "A2"
	A3 Space = "A3"
	B1 Space = "B1"
	B2 Space = "B2"
	B3 Space = "B3"
	C1 Space = "C1"
	C2 Space = "C2"
	C3 Space = "C3"
)

// Kind - geometric classification of a space.
type Kind int

const (
	Corner Kind = iota + 1
	Edge
	Center
)

func (k Kind) String() string {
	switch k {
	case Corner:
		return "corner"
	case Edge:
		return "edge"
	case Center:
		return "center"
	default:
		return "unknown"
	}
}

// Vector - three spaces forming a line.
type Vector [3]Space

var ErrInvalidSpace = errors.New("invalid space")

var (
	// Spaces in row-major order.
	Spaces = []Space{A1, A2, A3, B1, B2, B3, C1, C2, C3}

	Corners = []Space{A1, A3, C1, C3}
	Edges   = []Space{A2, B1, B3, C2}

	CenterSpace = B2

	Rows = map[byte]Vector{
		'A': {A1, A2, A3},
		'B': {B1, B2, B3},
		'C': {C1, C2, C3},
	}

	Columns = map[byte]Vector{
		'1': {A1, B1, C1},
		'2': {A2, B2, C2},
		'3': {A3, B3, C3},
	}

	Diagonals = []Vector{
		{A1, B2, C3},
		{A3, B2, C1},
	}
)

// Vectors - all eight winning lines: rows, columns, diagonals.
func Vectors() []Vector {
	return []Vector{
		Rows['A'], Rows['B'], Rows['C'],
		Columns['1'], Columns['2'], Columns['3'],
		Diagonals[0], Diagonals[1],
	}
}

func Valid(space Space) bool {
	for _, s := range Spaces {
		if s == space {
			return true
		}
	}
	return false
}

// Classify - returns whether the space is a corner, an edge or the center.
func Classify(space Space) (Kind, error) {
	switch space {
	case A1, A3, C1, C3:
		return Corner, nil
	case A2, B1, B3, C2:
		return Edge, nil
	case B2:
		return Center, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSpace, string(space))
	}
}

func IsCorner(space Space) bool {
	kind, err := Classify(space)
	return err == nil && kind == Corner
}

func IsEdge(space Space) bool {
	kind, err := Classify(space)
	return err == nil && kind == Edge
}

func IsCenter(space Space) bool {
	return space == CenterSpace
}

// Row - the row letter of a space, zero when it has none.
func Row(space Space) byte {
	if len(space) < 2 {
		return 0
	}
	return space[0]
}

// Column - the column digit of a space, zero when it has none.
func Column(space Space) byte {
	if len(space) < 2 {
		return 0
	}
	return space[1]
}

// Parse - reads user input such as "b2" or " C3 ".
func Parse(input string) (Space, error) {
	space := Space(strings.ToUpper(strings.TrimSpace(input)))
	if !Valid(space) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSpace, input)
	}

	return space, nil
}

// Contains reports whether the vector passes through the space.
func (v Vector) Contains(space Space) bool {
	return v[0] == space || v[1] == space || v[2] == space
}

func (v Vector) String() string {
	return fmt.Sprintf("{%s,%s,%s}", v[0], v[1], v[2])
}
