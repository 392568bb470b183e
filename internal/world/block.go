// Package world holds block placements: dense chunk columns for whole
// worlds and sparse block lists for prefabs.
package world

import "fmt"

// PackedBlock stores a block type id in the low 16 bits and its state in
// the high 16 bits.
type PackedBlock uint32

// Air is the empty block.
const Air PackedBlock = 0

// Pack combines a type id and a state.
func Pack(id, state uint16) PackedBlock {
	return PackedBlock(uint32(state)<<16 | uint32(id))
}

// ID returns the block type id.
func (b PackedBlock) ID() uint16 { return uint16(b) }

// State returns the orientation/state bits.
func (b PackedBlock) State() uint16 { return uint16(b >> 16) }

// Rotation returns the quarter turns about Y encoded in the state.
func (b PackedBlock) Rotation() int { return int(b.State() & 3) }

// IsAir reports whether the block type is air.
func (b PackedBlock) IsAir() bool { return b.ID() == 0 }

func (b PackedBlock) String() string {
	return fmt.Sprintf("%d:%d", b.ID(), b.State())
}
