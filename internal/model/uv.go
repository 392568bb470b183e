package model

import (
	"github.com/Faultbox/blockforge/internal/atlas"
	"github.com/Faultbox/blockforge/pkg/math"
)

// faceDims returns the pixel footprint of a face looking along d. A quad
// always spans its own X and Y size.
func (n *Node) faceDims(d Direction) (w, h float32) {
	s := n.Size
	if n.Shape == ShapeQuad {
		return s.X, s.Y
	}
	switch d {
	case NegZ, PosZ:
		return s.X, s.Y
	case PosX, NegX:
		return s.Z, s.Y
	default:
		return s.X, s.Z
	}
}

// FacePixelSize returns the source-texture footprint of face d, with
// width and height swapped for faces turned by 90 or 270 degrees.
func (n *Node) FacePixelSize(d Direction, angle int) (w, h float32) {
	w, h = n.faceDims(d)
	if steps := quarterTurns(angle); steps%2 == 1 {
		w, h = h, w
	}
	return w, h
}

func quarterTurns(angle int) int {
	return ((angle/90)%4 + 4) % 4
}

// faceDirection maps a face slot to its direction.
func (n *Node) faceDirection(slot int) Direction {
	if n.Shape == ShapeQuad {
		return n.Normal
	}
	return Direction(slot)
}

// ResolveUVs projects every face's pixel offset into atlas space using the
// model's texture region. Faces are clamped to the region so a layout
// larger than its texture never samples a neighbour.
func (m *Model) ResolveUVs(region atlas.Region, atlasW, atlasH int) {
	for i := range m.nodes {
		n := &m.nodes[i]
		for slot := range n.Faces {
			f := &n.Faces[slot]
			w, h := n.FacePixelSize(n.faceDirection(slot), f.Angle)
			f.UV = projectRect(region, f.Offset.X, f.Offset.Y, w, h, atlasW, atlasH)
		}
	}
}

// SetFaceRegion maps one face onto a whole atlas region and records the
// region's slot on that face.
func (m *Model) SetFaceRegion(node int, d Direction, region atlas.Region) {
	f := m.nodes[node].Face(d)
	if f == nil {
		return
	}
	f.AtlasIndex = region.Index
	f.UV = UVRect{Min: region.Min(), Max: region.Max(), Resolved: true}
}

// Unresolved counts visible faces without atlas UVs.
func (m *Model) Unresolved() int {
	count := 0
	for i := range m.nodes {
		for _, f := range m.nodes[i].Faces {
			if !f.Hidden && !f.UV.Resolved {
				count++
			}
		}
	}
	return count
}

func projectRect(r atlas.Region, ox, oy, w, h float32, atlasW, atlasH int) UVRect {
	rx0, ry0 := float32(r.X), float32(r.Y)
	rx1, ry1 := rx0+float32(r.Width), ry0+float32(r.Height)

	x0 := clamp(rx0+ox, rx0, rx1)
	y0 := clamp(ry0+oy, ry0, ry1)
	x1 := clamp(rx0+ox+w, rx0, rx1)
	y1 := clamp(ry0+oy+h, ry0, ry1)

	aw, ah := float32(atlasW), float32(atlasH)
	return UVRect{
		Min:      math.Vec2{X: x0 / aw, Y: y0 / ah},
		Max:      math.Vec2{X: x1 / aw, Y: y1 / ah},
		Resolved: true,
	}
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
