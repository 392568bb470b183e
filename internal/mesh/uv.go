package mesh

import "github.com/Faultbox/blockforge/pkg/math"

// QuadUVs returns the corner coordinates of a texture rectangle in vertex
// order. V grows downwards, so the bottom corners take max V.
func QuadUVs(lo, hi math.Vec2) [4]math.Vec2 {
	return [4]math.Vec2{
		{X: lo.X, Y: hi.Y},
		{X: hi.X, Y: hi.Y},
		{X: hi.X, Y: lo.Y},
		{X: lo.X, Y: lo.Y},
	}
}

// RotateUVs turns the texture on a quad by angle degrees. Each quarter
// turn moves every coordinate one vertex forward.
func RotateUVs(uv *[4]math.Vec2, angle int) {
	steps := ((angle/90)%4 + 4) % 4
	for range steps {
		tmp := uv[0]
		uv[0] = uv[3]
		uv[3] = uv[2]
		uv[2] = uv[1]
		uv[1] = tmp
	}
}

// MirrorUVs flips the texture horizontally and/or vertically.
func MirrorUVs(uv *[4]math.Vec2, mirrorX, mirrorY bool) {
	if mirrorX {
		uv[0].X, uv[1].X = uv[1].X, uv[0].X
		uv[2].X, uv[3].X = uv[3].X, uv[2].X
	}
	if mirrorY {
		uv[0].Y, uv[3].Y = uv[3].Y, uv[0].Y
		uv[1].Y, uv[2].Y = uv[2].Y, uv[1].Y
	}
}
