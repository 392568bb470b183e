package assetpack

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Dir is an unpacked asset directory indexed when opened.
type Dir struct {
	root  string
	names index
}

// OpenDir walks root and indexes every regular file under it.
func OpenDir(root string) (*Dir, error) {
	d := &Dir{root: root, names: make(index)}
	err := filepath.WalkDir(root, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !e.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		d.names.add(filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("indexing %s: %w", root, err)
	}
	return d, nil
}

func (d *Dir) Name() string { return d.root }

func (d *Dir) List() []string { return d.names.list() }

func (d *Dir) Contains(path string) bool {
	_, ok := d.names.lookup(path)
	return ok
}

func (d *Dir) Read(path string) ([]byte, error) {
	orig, ok := d.names.lookup(path)
	if !ok {
		return nil, notFound(path)
	}
	data, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(orig)))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func (d *Dir) Close() error { return nil }
