package model

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/blockforge/pkg/math"
)

func TestLocalMatrixMatchesMathgl(t *testing.T) {
	n := NewNode(ShapeBox)
	n.Position = math.Vec3{X: 16, Y: 0, Z: -32}
	n.ProceduralOffset = math.Vec3{Y: 8}
	n.Orientation = math.QuatFromAxisAngle(math.Vec3{Y: 1}, gomath.Pi/2)
	n.ProceduralRotation = math.QuatFromAxisAngle(math.Vec3{X: 1}, 0.25)
	n.Stretch = math.Vec3{X: 2, Y: 1, Z: 0.5}

	q := mgl32.QuatRotate(gomath.Pi/2, mgl32.Vec3{0, 1, 0}).Mul(mgl32.QuatRotate(0.25, mgl32.Vec3{1, 0, 0}))
	want := mgl32.Translate3D(0.5, 0.25, -1).Mul4(q.Mat4()).Mul4(mgl32.Scale3D(2, 1, 0.5))

	assert.True(t, n.LocalMatrix().ApproxEqual(math.Mat4(want), 1e-5))
}

func TestWorldMatrixComposesRootFirst(t *testing.T) {
	m := New("arm", nil, 0)

	root := NewNode(ShapeNone)
	root.Position = math.Vec3{X: 32}
	root.Orientation = math.QuatFromAxisAngle(math.Vec3{Y: 1}, gomath.Pi/2)
	r, err := m.AddNode(root, -1)
	require.NoError(t, err)

	child := NewNode(ShapeBox)
	child.Position = math.Vec3{X: 32}
	c, err := m.AddNode(child, r)
	require.NoError(t, err)

	grandchild := NewNode(ShapeBox)
	grandchild.Stretch = math.Vec3{X: 2, Y: 2, Z: 2}
	g, err := m.AddNode(grandchild, c)
	require.NoError(t, err)

	// Child origin: translate root by 1, rotate child offset (1,0,0) by 90 deg about Y -> (0,0,-1).
	origin := m.WorldMatrix(c).TransformPoint(math.Vec3{})
	assert.True(t, origin.ApproxEqual(math.Vec3{X: 1, Z: -1}, 1e-5), "got %v", origin)

	p := m.WorldMatrix(g).TransformPoint(math.Vec3{X: 0.5})
	assert.True(t, p.ApproxEqual(math.Vec3{X: 1, Z: -2}, 1e-5), "got %v", p)

	all := m.WorldMatrices()
	require.Len(t, all, 3)
	for i := range all {
		assert.True(t, all[i].ApproxEqual(m.WorldMatrix(i), 1e-6), "node %d", i)
	}
}

func TestWorldRotationsIgnoreStretch(t *testing.T) {
	m := New("hinge", nil, 0)

	root := NewNode(ShapeNone)
	root.Orientation = math.QuatFromAxisAngle(math.Vec3{Y: 1}, gomath.Pi/2)
	root.Stretch = math.Vec3{X: 3, Y: 1, Z: 1}
	r, err := m.AddNode(root, -1)
	require.NoError(t, err)

	child := NewNode(ShapeBox)
	child.Position = math.Vec3{Z: 64}
	child.Orientation = math.QuatFromAxisAngle(math.Vec3{X: 1}, gomath.Pi/2)
	_, err = m.AddNode(child, r)
	require.NoError(t, err)

	rots := m.WorldRotations()
	require.Len(t, rots, 2)

	want := mgl32.QuatRotate(gomath.Pi/2, mgl32.Vec3{0, 1, 0}).Mul(mgl32.QuatRotate(gomath.Pi/2, mgl32.Vec3{1, 0, 0}))
	assert.True(t, rots[1].ToMat4().ApproxEqual(math.Mat4(want.Mat4()), 1e-5))

	// +Y under X then Y quarter turns: (0,1,0) -> (0,0,1) -> (1,0,0)
	n := rots[1].ToMat4().TransformDirection(math.Vec3{Y: 1})
	assert.True(t, n.ApproxEqual(math.Vec3{X: 1}, 1e-5), "got %v", n)
}
