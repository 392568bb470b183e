// Package mesh turns models placed in a world or prefab into quad meshes.
package mesh

import "github.com/Faultbox/blockforge/pkg/math"

// Vertex is a mesh vertex with position, texture coordinate and normal.
type Vertex struct {
	Position math.Vec3
	UV       math.Vec2
	Normal   math.Vec3
}

// Face is a triangle or quad referencing vertices of its mesh. Material is
// the atlas slot the face samples from.
type Face struct {
	Indices  [4]uint32
	Count    uint8
	Material int
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Mesh holds the faces generated for one column, prefab or model.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Faces    []Face
	Bounds   Bounds
}

// NewMesh returns an empty named mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddQuad appends four vertices and one quad face over them and returns
// the index of the first vertex.
func (m *Mesh) AddQuad(v [4]Vertex, material int) uint32 {
	base := m.AddVertices(v)
	m.AddFace(base, material)
	return base
}

// AddVertices appends the four corners of a quad without a face and
// returns the index of the first one.
func (m *Mesh) AddVertices(v [4]Vertex) uint32 {
	base := uint32(len(m.Vertices))
	lo, hi := v[0].Position, v[0].Position
	for i := 1; i < len(v); i++ {
		lo = lo.Min(v[i].Position)
		hi = hi.Max(v[i].Position)
	}
	m.extend(Bounds{Min: lo, Max: hi})
	m.Vertices = append(m.Vertices, v[:]...)
	return base
}

// AddFace appends a face over the four vertices starting at base in their
// stored order.
func (m *Mesh) AddFace(base uint32, material int) {
	m.Faces = append(m.Faces, Face{
		Indices:  [4]uint32{base, base + 1, base + 2, base + 3},
		Count:    4,
		Material: material,
	})
}

// AddReverseQuad appends a face over the four vertices starting at base
// with the opposite winding.
func (m *Mesh) AddReverseQuad(base uint32, material int) {
	m.Faces = append(m.Faces, Face{
		Indices:  [4]uint32{base, base + 3, base + 2, base + 1},
		Count:    4,
		Material: material,
	})
}

// Append merges other into m, rebasing its indices.
func (m *Mesh) Append(other *Mesh) {
	if other == nil || other.Empty() {
		return
	}
	base := uint32(len(m.Vertices))
	m.extend(other.Bounds)
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, f := range other.Faces {
		for i := 0; i < int(f.Count); i++ {
			f.Indices[i] += base
		}
		m.Faces = append(m.Faces, f)
	}
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int { return len(m.Faces) }

// Empty reports whether the mesh has no faces.
func (m *Mesh) Empty() bool { return len(m.Faces) == 0 }

// Materials returns the distinct material slots in first-use order.
func (m *Mesh) Materials() []int {
	seen := make(map[int]bool)
	var out []int
	for _, f := range m.Faces {
		if !seen[f.Material] {
			seen[f.Material] = true
			out = append(out, f.Material)
		}
	}
	return out
}

func (m *Mesh) extend(b Bounds) {
	if len(m.Vertices) == 0 {
		m.Bounds = b
		return
	}
	m.Bounds.Min = m.Bounds.Min.Min(b.Min)
	m.Bounds.Max = m.Bounds.Max.Max(b.Max)
}
