package mesh

import (
	"context"
	"runtime"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/blockforge/internal/logger"
	"github.com/Faultbox/blockforge/internal/world"
)

// GenerateWorld meshes every column of w on a worker pool and returns the
// non-empty meshes in column order. Models and the atlas must be frozen
// before calling. workers <= 0 uses one worker per CPU.
func (g *Generator) GenerateWorld(ctx context.Context, w *world.World, workers int) ([]*Mesh, Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, Stats{}, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	cols := w.Columns()
	meshes := make([]*Mesh, len(cols))
	stats := make([]Stats, len(cols))

	pool := pond.NewPool(workers, pond.WithContext(ctx))
	for i, col := range cols {
		pool.Submit(func() {
			if ctx.Err() != nil {
				return
			}
			meshes[i], stats[i] = g.GenerateColumn(w, col)
		})
	}
	pool.StopAndWait()

	var total Stats
	for _, s := range stats {
		total.Add(s)
	}
	if err := ctx.Err(); err != nil {
		return nil, total, err
	}

	out := make([]*Mesh, 0, len(meshes))
	for _, m := range meshes {
		if m != nil && !m.Empty() {
			out = append(out, m)
		}
	}
	logger.Debug("world meshed",
		zap.Int("columns", len(cols)),
		zap.Int("meshes", len(out)),
		zap.Int("faces", total.Faces),
		zap.Int("culled", total.Culled))
	return out, total, nil
}
