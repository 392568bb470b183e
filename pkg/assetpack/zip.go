package assetpack

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
)

// Zip is an opened zip archive. Reads are safe for concurrent use.
type Zip struct {
	path   string
	reader *zip.ReadCloser
	files  map[string]*zip.File
	names  index
}

// OpenZip opens a zip archive and indexes its regular files.
func OpenZip(path string) (*Zip, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrNotArchive, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	z := &Zip{
		path:   path,
		reader: r,
		files:  make(map[string]*zip.File, len(r.File)),
		names:  make(index, len(r.File)),
	}
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		z.files[NormalizePath(f.Name)] = f
		z.names.add(f.Name)
	}
	return z, nil
}

func (z *Zip) Name() string { return z.path }

func (z *Zip) List() []string { return z.names.list() }

func (z *Zip) Contains(path string) bool {
	_, ok := z.files[NormalizePath(path)]
	return ok
}

func (z *Zip) Read(path string) ([]byte, error) {
	f, ok := z.files[NormalizePath(path)]
	if !ok {
		return nil, notFound(path)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func (z *Zip) Close() error {
	if z.reader == nil {
		return nil
	}
	err := z.reader.Close()
	z.reader = nil
	return err
}
