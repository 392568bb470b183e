package model

import "github.com/Faultbox/blockforge/pkg/math"

// LocalMatrix returns T(position) * R(orientation) * S(stretch) for the
// node, with procedural adjustments folded in and position in block units.
func (n *Node) LocalMatrix() math.Mat4 {
	pos := n.Position.Add(n.ProceduralOffset).Scale(1.0 / PixelsPerUnit)
	rot := n.Orientation.Mul(n.ProceduralRotation)
	return math.TranslateVec3(pos).
		Mul(rot.ToMat4()).
		Mul(math.ScaleVec3(n.Stretch))
}

// WorldMatrix composes the local matrices from the root down to node i.
func (m *Model) WorldMatrix(i int) math.Mat4 {
	var chain []int
	for j := i; j >= 0; j = m.parents[j] {
		chain = append(chain, j)
	}
	world := math.Identity()
	for k := len(chain) - 1; k >= 0; k-- {
		world = world.Mul(m.nodes[chain[k]].LocalMatrix())
	}
	return world
}

// WorldMatrices returns the world matrix of every node in one pass. It
// relies on parents being stored before their children.
func (m *Model) WorldMatrices() []math.Mat4 {
	out := make([]math.Mat4, len(m.nodes))
	for i := range m.nodes {
		local := m.nodes[i].LocalMatrix()
		if p := m.parents[i]; p >= 0 {
			out[i] = out[p].Mul(local)
		} else {
			out[i] = local
		}
	}
	return out
}

// WorldRotations returns the accumulated orientation of every node, without
// translation or stretch. Normals are transformed by these.
func (m *Model) WorldRotations() []math.Quat {
	out := make([]math.Quat, len(m.nodes))
	for i := range m.nodes {
		n := &m.nodes[i]
		local := n.Orientation.Mul(n.ProceduralRotation)
		if p := m.parents[i]; p >= 0 {
			out[i] = out[p].Mul(local)
		} else {
			out[i] = local
		}
	}
	return out
}
