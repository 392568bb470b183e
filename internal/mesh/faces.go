package mesh

import (
	"github.com/Faultbox/blockforge/internal/model"
	"github.com/Faultbox/blockforge/pkg/math"
)

// cornerSigns holds, per direction, the corner of a unit box for each quad
// vertex. Corners run bottom-left, bottom-right, top-right, top-left and
// wind counter-clockwise seen from outside the box.
var cornerSigns = [6][4][3]float32{
	model.NegZ: {{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}},
	model.PosZ: {{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},
	model.PosX: {{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}},
	model.NegX: {{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}},
	model.PosY: {{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}},
	model.NegY: {{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}},
}

var faceNormals = [6]math.Vec3{
	model.NegZ: {Z: -1},
	model.PosZ: {Z: 1},
	model.PosX: {X: 1},
	model.NegX: {X: -1},
	model.PosY: {Y: 1},
	model.NegY: {Y: -1},
}

// boxCorners returns the local corners of face d of a box centred at c
// with half extents h.
func boxCorners(d model.Direction, c, h math.Vec3) [4]math.Vec3 {
	var out [4]math.Vec3
	for i, s := range cornerSigns[d] {
		out[i] = math.Vec3{
			X: c.X + s[0]*h.X,
			Y: c.Y + s[1]*h.Y,
			Z: c.Z + s[2]*h.Z,
		}
	}
	return out
}

// quadHalf maps a quad's two-dimensional size onto the plane facing d.
func quadHalf(d model.Direction, size math.Vec3) math.Vec3 {
	w, h := size.X/2, size.Y/2
	switch d {
	case model.PosX, model.NegX:
		return math.Vec3{Y: h, Z: w}
	case model.PosY, model.NegY:
		return math.Vec3{X: w, Z: h}
	default:
		return math.Vec3{X: w, Y: h}
	}
}
