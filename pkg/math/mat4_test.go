package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func fromMgl(m mgl32.Mat4) Mat4 {
	return Mat4(m)
}

func TestIdentity(t *testing.T) {
	assert.Equal(t, fromMgl(mgl32.Ident4()), Identity())
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	assert.Equal(t, m, m.Mul(Identity()))
	assert.Equal(t, m, Identity().Mul(m))
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)
	assert.Equal(t, fromMgl(mgl32.Translate3D(5, 10, 15)), m)
	assert.Equal(t, Vec3{6, 12, 18}, m.TransformPoint(Vec3{1, 2, 3}))
}

func TestScale(t *testing.T) {
	m := ScaleVec3(Vec3{2, 3, 4})
	assert.Equal(t, fromMgl(mgl32.Scale3D(2, 3, 4)), m)
	assert.Equal(t, Vec3{2, 6, 12}, m.TransformPoint(Vec3{1, 2, 3}))
}

func TestRotateY(t *testing.T) {
	tests := []struct {
		name  string
		angle float32
		in    Vec3
		want  Vec3
	}{
		{"quarter", math.Pi / 2, Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"half", math.Pi, Vec3{1, 0, 2}, Vec3{-1, 0, -2}},
		{"three quarters", 3 * math.Pi / 2, Vec3{1, 0, 0}, Vec3{0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := RotateY(tt.angle)
			assert.True(t, m.ApproxEqual(fromMgl(mgl32.HomogRotate3DY(tt.angle)), 1e-6))
			got := m.TransformPoint(tt.in)
			assert.True(t, got.ApproxEqual(tt.want, 1e-5), "got %v, want %v", got, tt.want)
		})
	}
}

func TestMulMatchesMathgl(t *testing.T) {
	a := Translate(1, 2, 3).Mul(RotateY(0.7)).Mul(Scale(2, 1, 0.5))
	b := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.HomogRotate3DY(0.7)).Mul4(mgl32.Scale3D(2, 1, 0.5))
	assert.True(t, a.ApproxEqual(fromMgl(b), 1e-5))

	p := Vec3{0.25, -1, 4}
	want := mgl32.TransformCoordinate(mgl32.Vec3{p.X, p.Y, p.Z}, b)
	assert.True(t, a.TransformPoint(p).ApproxEqual(Vec3{want[0], want[1], want[2]}, 1e-5))
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30).Mul(RotateY(math.Pi / 2))
	got := m.TransformDirection(Vec3{1, 0, 0})
	assert.True(t, got.ApproxEqual(Vec3{0, 0, -1}, 1e-6))
	assert.True(t, m.Rotation().TransformPoint(Vec3{1, 0, 0}).ApproxEqual(got, 1e-6))
}
