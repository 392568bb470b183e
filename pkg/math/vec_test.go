package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Add(t *testing.T) {
	assert.Equal(t, Vec2{4, 6}, Vec2{1, 2}.Add(Vec2{3, 4}))
}

func TestVec2Length(t *testing.T) {
	assert.Equal(t, float32(5), Vec2{3, 4}.Length())
}

func TestVec3Cross(t *testing.T) {
	assert.Equal(t, Vec3{0, 0, 1}, Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0}))
}

func TestVec3Normalize(t *testing.T) {
	assert.InDelta(t, 1.0, Vec3{3, 4, 12}.Normalize().Length(), 1e-5)
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -2}
	b := Vec3{3, -1, 0}
	assert.Equal(t, Vec3{1, -1, -2}, a.Min(b))
	assert.Equal(t, Vec3{3, 5, 0}, a.Max(b))
	assert.Equal(t, Vec3{3, -5, 0}, a.Mul(b))
}
