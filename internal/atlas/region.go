package atlas

import (
	"image"

	"github.com/Faultbox/blockforge/pkg/math"
)

// Region is the placement of one texture inside the frozen atlas.
// U grows to the right and V grows downward, both in [0,1].
type Region struct {
	Name   string
	Index  int // order in which the texture was added
	X, Y   int
	Width  int
	Height int

	UMin, VMin float32
	UMax, VMax float32
}

// PixelRect returns the region's pixel rectangle in atlas space.
func (r Region) PixelRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Min returns (UMin, VMin).
func (r Region) Min() math.Vec2 {
	return math.Vec2{X: r.UMin, Y: r.VMin}
}

// Max returns (UMax, VMax).
func (r Region) Max() math.Vec2 {
	return math.Vec2{X: r.UMax, Y: r.VMax}
}

// Contains reports whether uv lies inside the region, inclusive of edges.
func (r Region) Contains(uv math.Vec2) bool {
	const eps = 1e-6
	return uv.X >= r.UMin-eps && uv.X <= r.UMax+eps &&
		uv.Y >= r.VMin-eps && uv.Y <= r.VMax+eps
}

func newRegion(name string, index, x, y, w, h, atlasW, atlasH int) Region {
	aw, ah := float32(atlasW), float32(atlasH)
	return Region{
		Name:   name,
		Index:  index,
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		UMin:   float32(x) / aw,
		VMin:   float32(y) / ah,
		UMax:   float32(x+w) / aw,
		VMax:   float32(y+h) / ah,
	}
}
