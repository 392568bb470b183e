// Package export writes meshes as Wavefront OBJ with an MTL material
// library and a PNG texture atlas.
package export

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/Faultbox/blockforge/internal/mesh"
)

// Options controls OBJ output.
type Options struct {
	// MaterialLib is written as the mtllib statement when set.
	MaterialLib string
	// FlipV writes 1-v so images stored top row first sample correctly.
	FlipV bool
	// Normals writes vn records and v/vt/vn face triples.
	Normals bool
}

// MaterialName returns the material used for atlas slot index.
func MaterialName(index int) string {
	return fmt.Sprintf("atlas_%d", index)
}

// writer keeps the first write error so callers check once at the end.
type writer struct {
	w   *bufio.Writer
	err error
}

func (w *writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

func (w *writer) flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}

// WriteOBJ writes meshes as OBJ objects. Indices are one-based and run on
// across meshes. Quads keep their stored vertex order.
func WriteOBJ(out io.Writer, meshes []*mesh.Mesh, opts Options) error {
	w := &writer{w: bufio.NewWriter(out)}

	w.printf("# blockforge export\n# meshes: %d\n\n", len(meshes))
	if opts.MaterialLib != "" {
		w.printf("mtllib %s\n\n", opts.MaterialLib)
	}

	var offset uint32 = 1
	for _, m := range meshes {
		if m == nil || m.Empty() {
			continue
		}
		w.printf("o %s\n", m.Name)
		for _, v := range m.Vertices {
			w.printf("v %.6f %.6f %.6f\n", v.Position.X, v.Position.Y, v.Position.Z)
		}
		for _, v := range m.Vertices {
			tv := v.UV.Y
			if opts.FlipV {
				tv = 1 - tv
			}
			w.printf("vt %.6f %.6f\n", v.UV.X, tv)
		}
		if opts.Normals {
			for _, v := range m.Vertices {
				w.printf("vn %.4f %.4f %.4f\n", v.Normal.X, v.Normal.Y, v.Normal.Z)
			}
		}

		current := -1
		first := true
		for _, f := range m.Faces {
			if first || f.Material != current {
				w.printf("usemtl %s\n", MaterialName(f.Material))
				current, first = f.Material, false
			}
			w.printf("f")
			for i := 0; i < int(f.Count); i++ {
				idx := f.Indices[i] + offset
				if opts.Normals {
					w.printf(" %d/%d/%d", idx, idx, idx)
				} else {
					w.printf(" %d/%d", idx, idx)
				}
			}
			w.printf("\n")
		}
		w.printf("\n")
		offset += uint32(len(m.Vertices))
	}
	return w.flush()
}

// Materials returns the distinct material slots used by meshes, sorted.
func Materials(meshes []*mesh.Mesh) []int {
	seen := make(map[int]bool)
	for _, m := range meshes {
		if m == nil {
			continue
		}
		for _, idx := range m.Materials() {
			seen[idx] = true
		}
	}
	out := make([]int, 0, len(seen))
	for idx := range seen {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// WriteMTL writes one material per slot, each sampling atlasFile.
func WriteMTL(out io.Writer, materials []int, atlasFile string) error {
	w := &writer{w: bufio.NewWriter(out)}
	w.printf("# blockforge materials\n\n")
	for _, idx := range materials {
		w.printf("newmtl %s\n", MaterialName(idx))
		w.printf("Ka 1.000 1.000 1.000\n")
		w.printf("Kd 1.000 1.000 1.000\n")
		w.printf("Ks 0.000 0.000 0.000\n")
		w.printf("d 1.0\n")
		w.printf("illum 1\n")
		if atlasFile != "" {
			w.printf("map_Kd %s\n", atlasFile)
		}
		w.printf("\n")
	}
	return w.flush()
}
