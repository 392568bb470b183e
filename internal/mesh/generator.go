package mesh

import (
	"github.com/Faultbox/blockforge/internal/model"
	"github.com/Faultbox/blockforge/internal/world"
	"github.com/Faultbox/blockforge/pkg/math"
)

// OpacityClass decides whether a block hides its neighbours' faces.
type OpacityClass uint8

const (
	Transparent OpacityClass = iota
	Cutout
	Opaque
)

// BlockRef identifies a block for opacity queries. Prefab blocks carry only
// a name; world blocks carry the packed value and, when known, a name.
type BlockRef struct {
	Block world.PackedBlock
	Name  string
}

// IsAir reports whether ref is empty space.
func (r BlockRef) IsAir() bool {
	return (r.Name == "" && r.Block.IsAir()) || r.Name == "Empty"
}

// OpacityFunc classifies a neighbouring block. Only Opaque neighbours cull.
type OpacityFunc func(BlockRef) OpacityClass

// DefaultOpacity treats every non-air block as opaque.
func DefaultOpacity(ref BlockRef) OpacityClass {
	if ref.IsAir() {
		return Transparent
	}
	return Opaque
}

// ModelSource resolves a block type name to its model. A nil result means
// the block has no geometry. Models must not change while meshing.
type ModelSource interface {
	Model(name string) *model.Model
}

// BlockNames resolves packed world blocks to type names.
type BlockNames interface {
	BlockName(b world.PackedBlock) string
}

// Options configures a Generator. Zero values select the defaults.
type Options struct {
	Names   BlockNames
	Opacity OpacityFunc
}

// Stats counts what a generation pass did.
type Stats struct {
	Blocks     int // non-air blocks visited
	Unresolved int // blocks without a model
	Culled     int // faces hidden by an opaque neighbour
	Faces      int // faces emitted
	Untextured int // faces skipped for missing UVs
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Blocks += o.Blocks
	s.Unresolved += o.Unresolved
	s.Culled += o.Culled
	s.Faces += o.Faces
	s.Untextured += o.Untextured
}

// Generator emits culled, textured quads for placed models. It holds no
// per-call state and is safe for concurrent use.
type Generator struct {
	models  ModelSource
	names   BlockNames
	opacity OpacityFunc
}

// New returns a generator reading models from models.
func New(models ModelSource, opts Options) *Generator {
	g := &Generator{
		models:  models,
		names:   opts.Names,
		opacity: opts.Opacity,
	}
	if g.opacity == nil {
		g.opacity = DefaultOpacity
	}
	return g
}

func (g *Generator) ref(b world.PackedBlock) BlockRef {
	ref := BlockRef{Block: b}
	if g.names != nil {
		ref.Name = g.names.BlockName(b)
	}
	return ref
}

// frame caches a model's node transforms for one generation call.
type frame struct {
	world  []math.Mat4
	normal []math.Mat4
}

type frameCache map[*model.Model]*frame

func (c frameCache) get(m *model.Model) *frame {
	if f, ok := c[m]; ok {
		return f
	}
	rots := m.WorldRotations()
	f := &frame{world: m.WorldMatrices(), normal: make([]math.Mat4, len(rots))}
	for i, q := range rots {
		f.normal[i] = q.ToMat4()
	}
	c[m] = f
	return f
}

// placement is one block instance being emitted.
type placement struct {
	origin   math.Vec3
	rotation int
	open     [6]bool // world directions whose neighbour does not cull
}

func blockOrigin(x, y, z int) math.Vec3 {
	return math.Vec3{X: float32(x) + 0.5, Y: float32(y), Z: float32(z) + 0.5}
}

// emitModel walks the six directions and, for each, every node of m.
func (g *Generator) emitModel(out *Mesh, st *Stats, m *model.Model, f *frame, p *placement) {
	for _, d := range model.Directions {
		open := p.open[rotateDirection(d, p.rotation)]
		for i := 0; i < m.Len(); i++ {
			n := m.Node(i)
			if !n.Visible {
				continue
			}
			center := n.Offset.Scale(1.0 / model.PixelsPerUnit)
			switch n.Shape {
			case model.ShapeBox:
				face := &n.Faces[d]
				if face.Hidden {
					continue
				}
				if !open {
					st.Culled++
					continue
				}
				half := n.Size.Scale(0.5 / model.PixelsPerUnit)
				emitFace(out, st, n, f, i, d, face, boxCorners(d, center, half), p, true, false)
			case model.ShapeQuad:
				if n.Normal != d || n.Faces[0].Hidden {
					continue
				}
				// The reverse side of a double-sided quad culls against
				// the opposite neighbour.
				back := n.DoubleSided && p.open[rotateDirection(d.Opposite(), p.rotation)]
				if !open {
					st.Culled++
				}
				if n.DoubleSided && !back {
					st.Culled++
				}
				if !open && !back {
					continue
				}
				half := quadHalf(d, n.Size.Scale(1.0/model.PixelsPerUnit))
				emitFace(out, st, n, f, i, d, &n.Faces[0], boxCorners(d, center, half), p, open, back)
			}
		}
	}
}

// emitFace pushes one quad. front emits the face in stored winding, back
// the reverse-wound face over the same vertices.
func emitFace(out *Mesh, st *Stats, n *model.Node, f *frame, node int, d model.Direction,
	face *model.FaceLayout, corners [4]math.Vec3, p *placement, front, back bool) {
	if !face.UV.Resolved {
		if front {
			st.Untextured++
		}
		if back {
			st.Untextured++
		}
		return
	}

	uvs := QuadUVs(face.UV.Min, face.UV.Max)
	RotateUVs(&uvs, face.Angle)
	MirrorUVs(&uvs, face.MirrorX, face.MirrorY)

	normal := f.normal[node].TransformDirection(faceNormals[d]).Normalize()
	normal = rotateBlock(normal, p.rotation)

	var v [4]Vertex
	for k, c := range corners {
		pos := rotateBlock(f.world[node].TransformPoint(c), p.rotation).Add(p.origin)
		v[k] = Vertex{Position: pos, UV: uvs[k], Normal: normal}
	}

	material := face.AtlasIndex
	if material < 0 {
		material = n.AtlasIndex
	}
	base := out.AddVertices(v)
	if front {
		out.AddFace(base, material)
		st.Faces++
	}
	if back {
		out.AddReverseQuad(base, material)
		st.Faces++
	}
}
