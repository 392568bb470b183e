package model

import (
	"fmt"
	"strings"
)

// Direction is one of the six axis-aligned face directions. The numeric
// value doubles as the index into a box node's face layouts.
type Direction uint8

const (
	NegZ Direction = iota // front
	PosZ                  // back
	PosX                  // right
	NegX                  // left
	PosY                  // top
	NegY                  // bottom
)

// Directions lists every direction in emission order.
var Directions = [6]Direction{NegZ, PosZ, PosX, NegX, PosY, NegY}

var directionNames = [6]string{"front", "back", "right", "left", "top", "bottom"}

var directionOffsets = [6][3]int{
	{0, 0, -1},
	{0, 0, 1},
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
}

// Offset returns the neighbour offset along d.
func (d Direction) Offset() (dx, dy, dz int) {
	o := directionOffsets[d]
	return o[0], o[1], o[2]
}

// Opposite returns the direction facing the other way.
func (d Direction) Opposite() Direction {
	return d ^ 1
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", d)
}

// ParseDirection accepts face keys ("front", "top", ...) and axis
// notation ("-Z", "+Y", ...).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "front", "-z", "north":
		return NegZ, nil
	case "back", "+z", "z", "south":
		return PosZ, nil
	case "right", "+x", "x", "east":
		return PosX, nil
	case "left", "-x", "west":
		return NegX, nil
	case "top", "+y", "y", "up":
		return PosY, nil
	case "bottom", "-y", "down":
		return NegY, nil
	}
	return 0, fmt.Errorf("%w: direction %q", ErrInvalidNode, s)
}
