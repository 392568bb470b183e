package export

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/blockforge/internal/logger"
	"github.com/Faultbox/blockforge/internal/mesh"
	"github.com/Faultbox/blockforge/internal/texture"
)

// ErrNothingToExport is returned when every mesh is empty.
var ErrNothingToExport = errors.New("export: no faces to export")

// AtlasSource provides the packed atlas image.
type AtlasSource interface {
	Image() (*image.RGBA, error)
}

// Result lists the files written by Export.
type Result struct {
	OBJ   string
	MTL   string
	Atlas string
	Faces int
}

// Export writes <name>.obj, <name>.mtl and <name>_atlas.png into dir.
// opts.MaterialLib is set from name. A literal nil atlas skips the PNG and
// the map_Kd statements; an interface holding a nil pointer is an atlas
// and fails with its Image error.
func Export(dir, name string, meshes []*mesh.Mesh, atlas AtlasSource, opts Options) (Result, error) {
	res := Result{}
	for _, m := range meshes {
		if m != nil {
			res.Faces += m.FaceCount()
		}
	}
	if res.Faces == 0 {
		return res, ErrNothingToExport
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return res, fmt.Errorf("creating %s: %w", dir, err)
	}

	atlasFile := ""
	if atlas != nil {
		img, err := atlas.Image()
		if err != nil {
			return res, fmt.Errorf("atlas image: %w", err)
		}
		atlasFile = name + "_atlas.png"
		res.Atlas = filepath.Join(dir, atlasFile)
		if err := writeFile(res.Atlas, func(f *os.File) error { return texture.EncodePNG(f, img) }); err != nil {
			return res, err
		}
	}

	mtlFile := name + ".mtl"
	res.MTL = filepath.Join(dir, mtlFile)
	materials := Materials(meshes)
	if err := writeFile(res.MTL, func(f *os.File) error { return WriteMTL(f, materials, atlasFile) }); err != nil {
		return res, err
	}

	opts.MaterialLib = mtlFile
	res.OBJ = filepath.Join(dir, name+".obj")
	if err := writeFile(res.OBJ, func(f *os.File) error { return WriteOBJ(f, meshes, opts) }); err != nil {
		return res, err
	}

	logger.Info("export written",
		zap.String("obj", res.OBJ),
		zap.Int("faces", res.Faces),
		zap.Int("materials", len(materials)))
	return res, nil
}

func writeFile(path string, write func(*os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
