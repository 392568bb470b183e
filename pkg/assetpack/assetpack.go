// Package assetpack reads game assets from directories and zip archives.
//
// Paths are matched case-insensitively with forward slashes, so
// "Common\BlockTextures\Stone.png" and "common/blocktextures/stone.png"
// name the same entry.
package assetpack

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

var (
	ErrNotFound   = errors.New("assetpack: file not found")
	ErrNotArchive = errors.New("assetpack: not a directory or zip archive")
)

// Source is a read-only collection of asset files.
type Source interface {
	// Name identifies the source, usually its path on disk.
	Name() string
	// List returns every file path in its original spelling, sorted.
	List() []string
	Contains(path string) bool
	Read(path string) ([]byte, error)
	Close() error
}

// Open opens a directory or a zip archive.
func Open(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if info.IsDir() {
		return OpenDir(path)
	}
	return OpenZip(path)
}

// NormalizePath converts path to the lookup key used by every source.
func NormalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimLeft(path, "/")
	return strings.ToLower(path)
}

// index maps normalized keys to original paths.
type index map[string]string

func (ix index) add(path string) {
	ix[NormalizePath(path)] = path
}

func (ix index) lookup(path string) (string, bool) {
	orig, ok := ix[NormalizePath(path)]
	return orig, ok
}

func (ix index) list() []string {
	out := make([]string, 0, len(ix))
	for _, p := range ix {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func notFound(path string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, path)
}
