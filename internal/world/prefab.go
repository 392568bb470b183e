package world

import (
	"sort"

	"github.com/Faultbox/blockforge/pkg/formats"
)

// Pos is an integer block position.
type Pos struct {
	X, Y, Z int
}

// Add returns p offset by (dx, dy, dz).
func (p Pos) Add(dx, dy, dz int) Pos {
	return Pos{p.X + dx, p.Y + dy, p.Z + dz}
}

// PrefabBlock is one placed block of a prefab.
type PrefabBlock struct {
	Pos
	Name     string
	Rotation int // quarter turns about Y, 0-3
}

// Prefab is a sparse block list with a position index for neighbour probes.
type Prefab struct {
	Name   string
	Anchor Pos
	Blocks []PrefabBlock
	index  map[Pos]int
}

// NewPrefab indexes blocks. A later block at the same position replaces
// the earlier one.
func NewPrefab(name string, blocks []PrefabBlock) *Prefab {
	p := &Prefab{Name: name, index: make(map[Pos]int, len(blocks))}
	for _, b := range blocks {
		b.Rotation &= 3
		if i, ok := p.index[b.Pos]; ok {
			p.Blocks[i] = b
			continue
		}
		p.index[b.Pos] = len(p.Blocks)
		p.Blocks = append(p.Blocks, b)
	}
	return p
}

// FromDocument converts a parsed prefab document.
func FromDocument(name string, doc *formats.Prefab) *Prefab {
	blocks := make([]PrefabBlock, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		blocks = append(blocks, PrefabBlock{
			Pos:      Pos{b.X, b.Y, b.Z},
			Name:     b.Name,
			Rotation: int(b.Rotation),
		})
	}
	p := NewPrefab(name, blocks)
	p.Anchor = Pos{int(doc.AnchorX), int(doc.AnchorY), int(doc.AnchorZ)}
	return p
}

// Len returns the number of blocks.
func (p *Prefab) Len() int { return len(p.Blocks) }

// At returns the block at pos.
func (p *Prefab) At(pos Pos) (PrefabBlock, bool) {
	i, ok := p.index[pos]
	if !ok {
		return PrefabBlock{}, false
	}
	return p.Blocks[i], true
}

// Bounds returns the inclusive min and max block positions.
func (p *Prefab) Bounds() (lo, hi Pos) {
	if len(p.Blocks) == 0 {
		return Pos{}, Pos{}
	}
	lo, hi = p.Blocks[0].Pos, p.Blocks[0].Pos
	for _, b := range p.Blocks[1:] {
		lo = Pos{min(lo.X, b.X), min(lo.Y, b.Y), min(lo.Z, b.Z)}
		hi = Pos{max(hi.X, b.X), max(hi.Y, b.Y), max(hi.Z, b.Z)}
	}
	return lo, hi
}

// Size returns the extent of the bounding box in blocks.
func (p *Prefab) Size() Pos {
	if len(p.Blocks) == 0 {
		return Pos{}
	}
	lo, hi := p.Bounds()
	return Pos{hi.X - lo.X + 1, hi.Y - lo.Y + 1, hi.Z - lo.Z + 1}
}

// UniqueNames returns the sorted distinct block names.
func (p *Prefab) UniqueNames() []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range p.Blocks {
		if !seen[b.Name] {
			seen[b.Name] = true
			out = append(out, b.Name)
		}
	}
	sort.Strings(out)
	return out
}
