// Package pipeline runs an export from asset sources to OBJ files.
//
// An Exporter works in two phases. Prepare resolves block types, decodes
// and packs every texture they reference, and builds their models against
// the frozen atlas. Meshing then only reads that state, so prefabs and
// worlds can be meshed concurrently.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/blockforge/internal/assets"
	"github.com/Faultbox/blockforge/internal/atlas"
	"github.com/Faultbox/blockforge/internal/config"
	"github.com/Faultbox/blockforge/internal/export"
	"github.com/Faultbox/blockforge/internal/logger"
	"github.com/Faultbox/blockforge/internal/mesh"
	"github.com/Faultbox/blockforge/internal/model"
	"github.com/Faultbox/blockforge/internal/texture"
	"github.com/Faultbox/blockforge/internal/world"
	"github.com/Faultbox/blockforge/pkg/formats"
)

var (
	ErrNotPrepared     = errors.New("pipeline: Prepare has not run")
	ErrAlreadyPrepared = errors.New("pipeline: Prepare already ran")
	ErrNoInput         = errors.New("pipeline: no prefab given")
	ErrNoBlockList     = errors.New("pipeline: world export needs a block list")
)

// Exporter owns the state of one export.
type Exporter struct {
	cfg      *config.Config
	assets   *assets.Manager
	names    *model.NameTable
	registry *model.Registry
	packer   *atlas.Packer
	ids      *world.IDMap

	blockFiles map[string]string // block name -> asset path
	types      map[string]*formats.BlockType
	prepared   bool
}

// New creates an exporter reading from mgr. The block list named in the
// config, when set, is loaded for world exports.
func New(cfg *config.Config, mgr *assets.Manager) (*Exporter, error) {
	packer, err := atlas.New(cfg.Atlas.Width, cfg.Atlas.Height)
	if err != nil {
		return nil, err
	}
	e := &Exporter{
		cfg:        cfg,
		assets:     mgr,
		names:      model.NewNameTable(),
		packer:     packer,
		blockFiles: make(map[string]string),
		types:      make(map[string]*formats.BlockType),
	}
	e.registry = model.NewRegistry(e.loadModel)

	for _, p := range mgr.List(cfg.Assets.BlockTypes) {
		if !strings.EqualFold(path.Ext(p), ".json") {
			continue
		}
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if _, dup := e.blockFiles[name]; !dup {
			e.blockFiles[name] = p
		}
	}
	logger.Debug("block types indexed", zap.Int("count", len(e.blockFiles)))

	if cfg.Assets.BlockList != "" {
		data, err := mgr.Load(cfg.Assets.BlockList)
		if err != nil {
			return nil, fmt.Errorf("block list: %w", err)
		}
		entries, err := formats.ParseBlockList(data)
		if err != nil {
			return nil, fmt.Errorf("block list: %w", err)
		}
		e.ids = world.NewIDMap(entries)
	}
	return e, nil
}

// Packer returns the exporter's atlas.
func (e *Exporter) Packer() *atlas.Packer { return e.packer }

// Models returns the model registry.
func (e *Exporter) Models() *model.Registry { return e.registry }

// SetBlockIDs replaces the block id map used for world exports.
func (e *Exporter) SetBlockIDs(ids *world.IDMap) { e.ids = ids }

// LoadPrefab reads a prefab JSON file from disk.
func LoadPrefab(file string) (*world.Prefab, error) {
	doc, err := formats.ParsePrefabFile(file)
	if err != nil {
		return nil, err
	}
	return world.FromDocument(PrefabName(file), doc), nil
}

// PrefabName derives an export name from a prefab file name.
func PrefabName(file string) string {
	base := filepath.Base(file)
	for _, ext := range []string{".prefab.json", ".json"} {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return base
}

func (e *Exporter) assetPath(p string) string {
	if e.cfg.Assets.Common == "" {
		return p
	}
	return path.Join(e.cfg.Assets.Common, p)
}

// blockType returns the parsed definition of name, or nil when it has
// none. Results are cached.
func (e *Exporter) blockType(name string) *formats.BlockType {
	if bt, ok := e.types[name]; ok {
		return bt
	}
	var bt *formats.BlockType
	if file, ok := e.blockFiles[name]; ok {
		data, err := e.assets.Load(file)
		if err == nil {
			bt, err = formats.ParseBlockType(data)
		}
		if err != nil {
			logger.Warn("block type unreadable", zap.String("block", name), zap.Error(err))
			bt = nil
		}
	} else {
		logger.Warn("block type not found", zap.String("block", name))
	}
	e.types[name] = bt
	return bt
}

// Prepare resolves every named block, packs the textures they use and
// builds their models. It runs once per Exporter.
func (e *Exporter) Prepare(ctx context.Context, names []string) error {
	if e.prepared {
		return ErrAlreadyPrepared
	}

	var textures []string
	seen := make(map[string]bool)
	for _, name := range names {
		if (mesh.BlockRef{Name: name}).IsAir() {
			continue
		}
		bt := e.blockType(name)
		if bt == nil {
			continue
		}
		for _, p := range bt.TexturePaths() {
			if !seen[p] {
				seen[p] = true
				textures = append(textures, p)
			}
		}
	}
	sort.Strings(textures)

	images, err := e.decodeTextures(ctx, textures)
	if err != nil {
		return err
	}
	for i, img := range images {
		if img == nil {
			continue
		}
		if err := e.packer.AddTexture(textures[i], img); err != nil {
			logger.Warn("texture skipped", zap.String("texture", textures[i]), zap.Error(err))
		}
	}
	if err := e.packer.Pack(); err != nil && !errors.Is(err, atlas.ErrAtlasFull) {
		return err
	}
	e.prepared = true

	for _, name := range names {
		if _, ok := e.types[name]; ok {
			e.registry.Model(name)
		}
	}
	logger.Info("blocks prepared",
		zap.Int("blocks", len(names)),
		zap.Int("textures", e.packer.Len()),
		zap.Strings("missing", e.registry.Missing()))
	return nil
}

// decodeTextures loads and decodes textures in parallel. A texture that
// cannot be read is logged and left nil.
func (e *Exporter) decodeTextures(ctx context.Context, paths []string) ([]image.Image, error) {
	out := make([]image.Image, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.WorkerCount())
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := e.assets.Load(e.assetPath(p))
			if err != nil {
				logger.Warn("texture missing", zap.String("texture", p), zap.Error(err))
				return nil
			}
			img, err := texture.Decode(p, data)
			if err != nil {
				logger.Warn("texture undecodable", zap.String("texture", p), zap.Error(err))
				return nil
			}
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, ctx.Err()
}

// loadModel builds the model for a block name against the packed atlas.
func (e *Exporter) loadModel(name string) (*model.Model, error) {
	if !e.prepared {
		return nil, ErrNotPrepared
	}
	// Only blocks resolved by Prepare get models; e.types is read-only now.
	bt := e.types[name]
	if bt == nil {
		return nil, fmt.Errorf("%w: %s", model.ErrModelNotFound, name)
	}

	var m *model.Model
	switch bt.DrawType {
	case formats.DrawCube:
		m = e.cubeModel(name, bt)
	case formats.DrawModel:
		var err error
		if m, err = e.customModel(name, bt); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s draws nothing", model.ErrModelNotFound, name)
	}

	if !e.cfg.Mesh.DoubleSided {
		m.Walk(func(_ int, n *model.Node) bool {
			n.DoubleSided = false
			return true
		})
	}
	if u := m.Unresolved(); u > 0 {
		logger.Debug("model has untextured faces", zap.String("block", name), zap.Int("faces", u))
	}
	return m, nil
}

func (e *Exporter) cubeModel(name string, bt *formats.BlockType) *model.Model {
	m := model.NewCube(name, e.names)
	for i, tex := range bt.FaceTextures() {
		if r, ok := e.packer.Region(tex); ok {
			m.SetFaceRegion(0, model.Directions[i], r)
		}
	}
	return m
}

func (e *Exporter) customModel(name string, bt *formats.BlockType) (*model.Model, error) {
	data, err := e.assets.Load(e.assetPath(bt.CustomModel))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrModelNotFound, name, err)
	}
	doc, err := formats.ParseBlockyModel(data)
	if err != nil {
		return nil, err
	}
	m, err := model.Build(name, doc, e.names, e.cfg.Mesh.MaxNodes)
	if err != nil {
		return nil, err
	}
	if s := bt.CustomModelScale; s > 0 && s != 1 {
		m.Scale(s)
	}

	aw, ah := e.packer.Size()
	if r, ok := e.packer.Region(bt.ModelTexture()); ok {
		m.SetAtlasIndex(r.Index)
		m.ResolveUVs(r, aw, ah)
	}
	return m, nil
}

// Opacity classifies blocks by their type definition. Only solid cubes
// hide their neighbours' faces.
func (e *Exporter) Opacity(ref mesh.BlockRef) mesh.OpacityClass {
	if ref.IsAir() || ref.Name == "" {
		return mesh.DefaultOpacity(ref)
	}
	bt, ok := e.types[ref.Name]
	if !ok || bt == nil || bt.DrawType != formats.DrawCube {
		return mesh.Transparent
	}
	switch bt.Opacity {
	case formats.OpacitySolid:
		return mesh.Opaque
	case formats.OpacityCutout:
		return mesh.Cutout
	default:
		return mesh.Transparent
	}
}

func (e *Exporter) generator() *mesh.Generator {
	opts := mesh.Options{Opacity: e.Opacity}
	if e.ids != nil {
		opts.Names = e.ids
	}
	return mesh.New(e.registry, opts)
}

// MeshPrefab meshes a prefab whose blocks were prepared.
func (e *Exporter) MeshPrefab(p *world.Prefab) (*mesh.Mesh, mesh.Stats, error) {
	if !e.prepared {
		return nil, mesh.Stats{}, ErrNotPrepared
	}
	m, st := e.generator().GeneratePrefab(p)
	return m, st, nil
}

// WorldBlockNames returns the distinct block names placed in w, sorted.
func WorldBlockNames(w *world.World, ids *world.IDMap) []string {
	seen := make(map[string]bool)
	for _, col := range w.Columns() {
		for _, sec := range col.Sections {
			if sec == nil || sec.Empty() {
				continue
			}
			for y := 0; y < world.SectionSize; y++ {
				for z := 0; z < world.SectionSize; z++ {
					for x := 0; x < world.SectionSize; x++ {
						if b := sec.At(x, y, z); !b.IsAir() {
							if name := ids.BlockName(b); name != "" {
								seen[name] = true
							}
						}
					}
				}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// MeshWorld meshes every column of w. Blocks are named through the block
// list, so one must be loaded or set.
func (e *Exporter) MeshWorld(ctx context.Context, w *world.World) ([]*mesh.Mesh, mesh.Stats, error) {
	if !e.prepared {
		return nil, mesh.Stats{}, ErrNotPrepared
	}
	if e.ids == nil {
		return nil, mesh.Stats{}, ErrNoBlockList
	}
	return e.generator().GenerateWorld(ctx, w, e.cfg.WorkerCount())
}

// ExportOptions returns the OBJ options from the config.
func (e *Exporter) ExportOptions() export.Options {
	return export.Options{FlipV: e.cfg.Output.FlipV, Normals: e.cfg.Output.Normals}
}

// Run exports the configured prefab end to end.
func (e *Exporter) Run(ctx context.Context) (export.Result, error) {
	if e.cfg.Input.Prefab == "" {
		return export.Result{}, ErrNoInput
	}
	p, err := LoadPrefab(e.cfg.Input.Prefab)
	if err != nil {
		return export.Result{}, err
	}
	logger.Info("prefab loaded", zap.String("name", p.Name), zap.Int("blocks", p.Len()))

	if err := e.Prepare(ctx, p.UniqueNames()); err != nil {
		return export.Result{}, err
	}
	m, st, err := e.MeshPrefab(p)
	if err != nil {
		return export.Result{}, err
	}
	logger.Info("prefab meshed",
		zap.Int("faces", st.Faces),
		zap.Int("culled", st.Culled),
		zap.Int("unresolved", st.Unresolved),
		zap.Int("untextured", st.Untextured))

	name := e.cfg.Output.Name
	if name == "" {
		name = p.Name
	}
	return export.Export(e.cfg.Output.Dir, name, []*mesh.Mesh{m}, e.packer, e.ExportOptions())
}
