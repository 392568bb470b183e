package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/blockforge/pkg/formats"
)

func TestPackedBlock(t *testing.T) {
	tests := []struct {
		id, state uint16
		rotation  int
	}{
		{0, 0, 0},
		{1, 0, 0},
		{0xFFFF, 3, 3},
		{42, 0x0106, 2},
	}
	for _, tt := range tests {
		b := Pack(tt.id, tt.state)
		assert.Equal(t, tt.id, b.ID())
		assert.Equal(t, tt.state, b.State())
		assert.Equal(t, tt.rotation, b.Rotation())
		assert.Equal(t, tt.id == 0, b.IsAir())
	}
	assert.Equal(t, PackedBlock(0x0002_0007), Pack(7, 2))
	assert.Equal(t, "7:2", Pack(7, 2).String())
}

func TestSectionIndexOrder(t *testing.T) {
	assert.Equal(t, 1, sectionIndex(1, 0, 0))
	assert.Equal(t, 32, sectionIndex(0, 0, 1))
	assert.Equal(t, 1024, sectionIndex(0, 1, 0))
	assert.Equal(t, sectionVolume-1, sectionIndex(31, 31, 31))
}

func TestColumnSetAndGet(t *testing.T) {
	c := &Column{}
	c.Set(3, 40, 5, Pack(9, 1))
	assert.Equal(t, Pack(9, 1), c.At(3, 40, 5))
	require.NotNil(t, c.Sections[1])
	assert.Nil(t, c.Sections[0])
	assert.False(t, c.Sections[1].Empty())

	c.Set(3, 40, 5, Air)
	assert.True(t, c.Sections[1].Empty())

	c.Set(0, 0, 0, Air)
	assert.Nil(t, c.Sections[0], "writing air does not allocate")
	assert.Equal(t, Air, c.At(0, -1, 0))
	assert.Equal(t, Air, c.At(0, ColumnHeight, 0))
}

func TestWorldNegativeCoordinates(t *testing.T) {
	w := NewWorld()
	w.SetBlock(-1, 10, -33, Pack(5, 0))
	w.SetBlock(31, 0, 0, Pack(6, 0))
	w.SetBlock(32, 0, 0, Pack(7, 0))

	assert.Equal(t, Pack(5, 0), w.BlockAt(-1, 10, -33))
	assert.Equal(t, Pack(6, 0), w.BlockAt(31, 0, 0))
	assert.Equal(t, Pack(7, 0), w.BlockAt(32, 0, 0))
	assert.Equal(t, Air, w.BlockAt(100, 0, 100))

	col := w.Column(ColumnPos{-1, -2})
	require.NotNil(t, col)
	assert.Equal(t, Pack(5, 0), col.At(31, 10, 31))
	x, z := col.Origin()
	assert.Equal(t, -32, x)
	assert.Equal(t, -64, z)

	cols := w.Columns()
	require.Len(t, cols, 3)
	assert.Equal(t, ColumnPos{-1, -2}, cols[0].Pos)
	assert.Equal(t, ColumnPos{0, 0}, cols[1].Pos)
	assert.Equal(t, ColumnPos{1, 0}, cols[2].Pos)
}

func TestPrefab(t *testing.T) {
	p := NewPrefab("hut", []PrefabBlock{
		{Pos: Pos{0, 0, 0}, Name: "Rock_Stone"},
		{Pos: Pos{2, 1, -1}, Name: "Wood_Planks", Rotation: 5},
		{Pos: Pos{0, 0, 0}, Name: "Soil_Dirt"},
	})

	assert.Equal(t, 2, p.Len())
	b, ok := p.At(Pos{0, 0, 0})
	require.True(t, ok)
	assert.Equal(t, "Soil_Dirt", b.Name, "later duplicates win")
	b, ok = p.At(Pos{2, 1, -1})
	require.True(t, ok)
	assert.Equal(t, 1, b.Rotation)
	_, ok = p.At(Pos{1, 0, 0})
	assert.False(t, ok)

	lo, hi := p.Bounds()
	assert.Equal(t, Pos{0, 0, -1}, lo)
	assert.Equal(t, Pos{2, 1, 0}, hi)
	assert.Equal(t, Pos{3, 2, 2}, p.Size())
	assert.Equal(t, []string{"Soil_Dirt", "Wood_Planks"}, p.UniqueNames())
}

func TestFromDocument(t *testing.T) {
	doc := &formats.Prefab{
		AnchorX: 1, AnchorY: 2, AnchorZ: 3,
		Blocks: []formats.PrefabBlock{
			{X: 1, Y: 0, Z: 0, Name: "Rock_Stone", Rotation: 3},
		},
	}
	p := FromDocument("doc", doc)
	assert.Equal(t, Pos{1, 2, 3}, p.Anchor)
	b, ok := p.At(Pos{1, 0, 0})
	require.True(t, ok)
	assert.Equal(t, 3, b.Rotation)
}

func TestIDMap(t *testing.T) {
	m := NewIDMap([]formats.BlockEntry{
		{ID: 1, Name: "Rock_Stone"},
		{ID: 70000, Name: "Overflow"},
	})
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, "Rock_Stone", m.BlockName(Pack(1, 3)))
	assert.Equal(t, "", m.BlockName(Pack(2, 0)))

	var none *IDMap
	assert.Equal(t, "", none.BlockName(Pack(1, 0)))
}
