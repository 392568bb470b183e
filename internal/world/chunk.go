package world

import "sort"

// Chunk geometry.
const (
	SectionSize     = 32
	SectionsPerCol  = 10
	ColumnHeight    = SectionSize * SectionsPerCol
	sectionVolume   = SectionSize * SectionSize * SectionSize
	sectionSizeMask = SectionSize - 1
)

// Section is a dense 32^3 block array indexed x + z*32 + y*32*32.
type Section struct {
	blocks [sectionVolume]PackedBlock
	count  int // non-air blocks
}

func sectionIndex(x, y, z int) int {
	return x + z*SectionSize + y*SectionSize*SectionSize
}

// At returns the block at local coordinates.
func (s *Section) At(x, y, z int) PackedBlock {
	return s.blocks[sectionIndex(x, y, z)]
}

// Set stores a block at local coordinates.
func (s *Section) Set(x, y, z int, b PackedBlock) {
	i := sectionIndex(x, y, z)
	old := s.blocks[i]
	s.blocks[i] = b
	switch {
	case old.IsAir() && !b.IsAir():
		s.count++
	case !old.IsAir() && b.IsAir():
		s.count--
	}
}

// Empty reports whether the section holds only air.
func (s *Section) Empty() bool { return s.count == 0 }

// ColumnPos addresses a column in column units.
type ColumnPos struct {
	X, Z int
}

// Column is a vertical stack of sections. Nil sections are all air.
type Column struct {
	Pos      ColumnPos
	Sections [SectionsPerCol]*Section
}

// At returns the block at column-local coordinates; out of range is air.
func (c *Column) At(x, y, z int) PackedBlock {
	if y < 0 || y >= ColumnHeight {
		return Air
	}
	s := c.Sections[y/SectionSize]
	if s == nil {
		return Air
	}
	return s.At(x, y&sectionSizeMask, z)
}

// Set stores a block, allocating the section when needed.
func (c *Column) Set(x, y, z int, b PackedBlock) {
	if y < 0 || y >= ColumnHeight {
		return
	}
	idx := y / SectionSize
	if c.Sections[idx] == nil {
		if b.IsAir() {
			return
		}
		c.Sections[idx] = &Section{}
	}
	c.Sections[idx].Set(x, y&sectionSizeMask, z, b)
}

// Origin returns the world coordinates of the column's (0,0,0) cell.
func (c *Column) Origin() (x, z int) {
	return c.Pos.X * SectionSize, c.Pos.Z * SectionSize
}

// World is a sparse set of columns keyed by position.
type World struct {
	columns map[ColumnPos]*Column
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{columns: make(map[ColumnPos]*Column)}
}

func floorDiv(v int) int {
	if v >= 0 {
		return v / SectionSize
	}
	return (v - SectionSize + 1) / SectionSize
}

func columnOf(x, z int) (ColumnPos, int, int) {
	p := ColumnPos{X: floorDiv(x), Z: floorDiv(z)}
	return p, x - p.X*SectionSize, z - p.Z*SectionSize
}

// BlockAt returns the block at world coordinates. Missing columns are air.
func (w *World) BlockAt(x, y, z int) PackedBlock {
	p, lx, lz := columnOf(x, z)
	c := w.columns[p]
	if c == nil {
		return Air
	}
	return c.At(lx, y, lz)
}

// SetBlock stores a block at world coordinates.
func (w *World) SetBlock(x, y, z int, b PackedBlock) {
	p, lx, lz := columnOf(x, z)
	c := w.columns[p]
	if c == nil {
		if b.IsAir() {
			return
		}
		c = &Column{Pos: p}
		w.columns[p] = c
	}
	c.Set(lx, y, lz, b)
}

// AddColumn inserts or replaces a column.
func (w *World) AddColumn(c *Column) {
	w.columns[c.Pos] = c
}

// Column returns the column at p, or nil.
func (w *World) Column(p ColumnPos) *Column {
	return w.columns[p]
}

// Columns returns every column sorted by X then Z.
func (w *World) Columns() []*Column {
	out := make([]*Column, 0, len(w.columns))
	for _, c := range w.columns {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pos.X != out[j].Pos.X {
			return out[i].Pos.X < out[j].Pos.X
		}
		return out[i].Pos.Z < out[j].Pos.Z
	})
	return out
}
