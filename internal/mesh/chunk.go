package mesh

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/blockforge/internal/logger"
	"github.com/Faultbox/blockforge/internal/model"
	"github.com/Faultbox/blockforge/internal/world"
)

// GenerateColumn meshes every non-air block of col. Neighbours are probed
// through w, so faces against adjacent columns are culled too. Blocks are
// visited section by section in y, z, x order.
func (g *Generator) GenerateColumn(w *world.World, col *world.Column) (*Mesh, Stats) {
	out := NewMesh(fmt.Sprintf("column_%d_%d", col.Pos.X, col.Pos.Z))
	var st Stats
	frames := frameCache{}
	ox, oz := col.Origin()

	for s, sec := range col.Sections {
		if sec == nil || sec.Empty() {
			continue
		}
		baseY := s * world.SectionSize
		for y := 0; y < world.SectionSize; y++ {
			for z := 0; z < world.SectionSize; z++ {
				for x := 0; x < world.SectionSize; x++ {
					b := sec.At(x, y, z)
					if b.IsAir() {
						continue
					}
					g.emitWorldBlock(out, &st, frames, w, b, ox+x, baseY+y, oz+z)
				}
			}
		}
	}
	return out, st
}

func (g *Generator) emitWorldBlock(out *Mesh, st *Stats, frames frameCache, w *world.World,
	b world.PackedBlock, x, y, z int) {
	ref := g.ref(b)
	if ref.IsAir() {
		return
	}
	st.Blocks++

	var m *model.Model
	if ref.Name != "" {
		m = g.models.Model(ref.Name)
	}
	if m == nil {
		st.Unresolved++
		logger.Debug("block has no model", zap.Stringer("block", b), zap.String("name", ref.Name))
		return
	}

	p := placement{origin: blockOrigin(x, y, z), rotation: b.Rotation()}
	for _, d := range model.Directions {
		dx, dy, dz := d.Offset()
		p.open[d] = g.opacity(g.ref(w.BlockAt(x+dx, y+dy, z+dz))) != Opaque
	}
	g.emitModel(out, st, m, frames.get(m), &p)
}
