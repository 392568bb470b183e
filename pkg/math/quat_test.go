package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	assert.True(t, q.IsIdentity())
	assert.Equal(t, Identity(), q.ToMat4())
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()
	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	assert.InDelta(t, 1.0, length, 1e-4)

	// near-zero quaternions collapse to identity
	assert.Equal(t, QuatIdentity(), Quat{}.Normalize())
}

func TestQuatToMat4MatchesMathgl(t *testing.T) {
	tests := []struct {
		name  string
		axis  Vec3
		angle float32
	}{
		{"y quarter", Vec3{0, 1, 0}, math.Pi / 2},
		{"x third", Vec3{1, 0, 0}, 2 * math.Pi / 3},
		{"oblique", Vec3{1, 1, 0}.Normalize(), 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatFromAxisAngle(tt.axis, tt.angle)
			want := mgl32.QuatRotate(tt.angle, mgl32.Vec3{tt.axis.X, tt.axis.Y, tt.axis.Z}).Mat4()
			assert.True(t, q.ToMat4().ApproxEqual(Mat4(want), 1e-5), "got %v, want %v", q.ToMat4(), want)
		})
	}
}

func TestQuatMulComposes(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.3)
	b := QuatFromAxisAngle(Vec3{1, 0, 0}, 1.1)

	got := a.Mul(b).ToMat4()
	want := a.ToMat4().Mul(b.ToMat4())
	assert.True(t, got.ApproxEqual(want, 1e-5))

	ma := mgl32.QuatRotate(0.3, mgl32.Vec3{0, 1, 0})
	mb := mgl32.QuatRotate(1.1, mgl32.Vec3{1, 0, 0})
	assert.True(t, got.ApproxEqual(Mat4(ma.Mul(mb).Mat4()), 1e-5))
}

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))
	assert.InDelta(t, math.Cos(math.Pi/4), q.W, 1e-3)
	assert.InDelta(t, math.Sin(math.Pi/4), q.Y, 1e-3)
}
