package mesh

import (
	"go.uber.org/zap"

	"github.com/Faultbox/blockforge/internal/logger"
	"github.com/Faultbox/blockforge/internal/model"
	"github.com/Faultbox/blockforge/internal/world"
)

// GeneratePrefab meshes a sparse prefab. Positions outside the prefab
// count as transparent.
func (g *Generator) GeneratePrefab(pf *world.Prefab) (*Mesh, Stats) {
	out := NewMesh(pf.Name)
	var st Stats
	frames := frameCache{}

	for _, b := range pf.Blocks {
		if (BlockRef{Name: b.Name}).IsAir() {
			continue
		}
		st.Blocks++

		m := g.models.Model(b.Name)
		if m == nil {
			st.Unresolved++
			logger.Debug("block has no model", zap.String("name", b.Name))
			continue
		}

		p := placement{origin: blockOrigin(b.X, b.Y, b.Z), rotation: b.Rotation}
		for _, d := range model.Directions {
			nb, ok := pf.At(b.Pos.Add(d.Offset()))
			p.open[d] = !ok || g.opacity(BlockRef{Name: nb.Name}) != Opaque
		}
		g.emitModel(out, &st, m, frames.get(m), &p)
	}
	return out, st
}
