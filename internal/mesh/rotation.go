package mesh

import (
	"github.com/Faultbox/blockforge/internal/model"
	"github.com/Faultbox/blockforge/pkg/math"
)

// rotateBlock turns v about the block's vertical axis by r quarter turns.
// One turn sends +X to -Z, matching a positive rotation about Y.
func rotateBlock(v math.Vec3, r int) math.Vec3 {
	switch r & 3 {
	case 1:
		return math.Vec3{X: v.Z, Y: v.Y, Z: -v.X}
	case 2:
		return math.Vec3{X: -v.X, Y: v.Y, Z: -v.Z}
	case 3:
		return math.Vec3{X: -v.Z, Y: v.Y, Z: v.X}
	}
	return v
}

// rotateDirection returns the world direction a model face along d ends up
// facing once the block is turned by r quarter turns.
func rotateDirection(d model.Direction, r int) model.Direction {
	if r&3 == 0 || d == model.PosY || d == model.NegY {
		return d
	}
	n := rotateBlock(faceNormals[d], r)
	for _, c := range model.Directions {
		if faceNormals[c] == n {
			return c
		}
	}
	return d
}
