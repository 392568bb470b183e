// Package atlas packs many small RGBA textures into one fixed-size image.
//
// A Packer has two phases. During collection, textures are added by unique
// name. Pack is then called exactly once; it places every texture it can on
// horizontal shelves, releases the source pixels, and freezes the result.
// After Pack the Packer is read-only and safe for concurrent readers.
package atlas

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/Faultbox/blockforge/internal/logger"
	"github.com/Faultbox/blockforge/internal/texture"
)

var (
	ErrFrozen           = errors.New("atlas: already packed")
	ErrNotPacked        = errors.New("atlas: not packed yet")
	ErrDuplicateTexture = errors.New("atlas: duplicate texture")
	ErrEmptyTexture     = errors.New("atlas: empty texture")
	ErrInvalidSize      = errors.New("atlas: invalid atlas size")
	ErrAtlasFull        = errors.New("atlas: no room for texture")
)

// DropError reports a texture that did not fit in the atlas.
type DropError struct {
	Name          string
	Width, Height int
}

func (e *DropError) Error() string {
	return fmt.Sprintf("atlas: dropped %s (%dx%d)", e.Name, e.Width, e.Height)
}

func (e *DropError) Unwrap() error { return ErrAtlasFull }

type source struct {
	name  string
	index int
	img   *image.RGBA
}

type shelf struct {
	y, height int
	cursor    int // next free x
}

// Packer builds a texture atlas. It is not safe for concurrent use until
// Pack has returned.
type Packer struct {
	width, height int

	sources []*source
	names   map[string]struct{}

	regions map[string]Region
	ordered []Region
	dropped []string
	image   *image.RGBA
	frozen  bool
}

// New creates a packer for a width x height atlas.
func New(width, height int) (*Packer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Packer{
		width:  width,
		height: height,
		names:  make(map[string]struct{}),
	}, nil
}

// Size returns the fixed atlas dimensions.
func (p *Packer) Size() (width, height int) {
	return p.width, p.height
}

// Len returns the number of textures added so far.
func (p *Packer) Len() int {
	return len(p.names)
}

// Has reports whether a texture with this name was added.
func (p *Packer) Has(name string) bool {
	_, ok := p.names[name]
	return ok
}

// AddTexture stores a private RGBA copy of img under name.
func (p *Packer) AddTexture(name string, img image.Image) error {
	if p.frozen {
		return fmt.Errorf("%w: add %s", ErrFrozen, name)
	}
	if _, ok := p.names[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTexture, name)
	}
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("%w: %s", ErrEmptyTexture, name)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(rgba, image.Point{}, img, b, draw.Src, nil)

	p.names[name] = struct{}{}
	p.sources = append(p.sources, &source{name: name, index: len(p.sources), img: rgba})
	return nil
}

// AddEncoded decodes an encoded texture file and adds it under name.
func (p *Packer) AddEncoded(name string, data []byte) error {
	img, err := texture.Decode(name, data)
	if err != nil {
		return err
	}
	return p.AddTexture(name, img)
}

// Pack places every collected texture and freezes the atlas. Textures that
// do not fit are skipped; the returned error then lists each of them as a
// *DropError in placement order, while every other region stays usable.
func (p *Packer) Pack() error {
	if p.frozen {
		return ErrFrozen
	}
	p.frozen = true
	p.image = image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	p.regions = make(map[string]Region, len(p.sources))

	pending := make([]*source, len(p.sources))
	copy(pending, p.sources)
	sort.SliceStable(pending, func(i, j int) bool {
		a, b := pending[i].img.Rect, pending[j].img.Rect
		if a.Dy() != b.Dy() {
			return a.Dy() > b.Dy()
		}
		if a.Dx() != b.Dx() {
			return a.Dx() > b.Dx()
		}
		return pending[i].name < pending[j].name
	})

	var (
		shelves     []shelf
		totalHeight int
		errs        error
	)
	for _, src := range pending {
		w, h := src.img.Rect.Dx(), src.img.Rect.Dy()

		placed := false
		for i := range shelves {
			s := &shelves[i]
			if s.cursor+w <= p.width && h <= s.height {
				p.place(src, s.cursor, s.y)
				s.cursor += w
				placed = true
				break
			}
		}
		if !placed && w <= p.width && totalHeight+h <= p.height {
			shelves = append(shelves, shelf{y: totalHeight, height: h, cursor: w})
			p.place(src, 0, totalHeight)
			totalHeight += h
			placed = true
		}
		if !placed {
			p.dropped = append(p.dropped, src.name)
			errs = multierr.Append(errs, &DropError{Name: src.name, Width: w, Height: h})
			logger.Warn("atlas full, texture dropped",
				zap.String("texture", src.name), zap.Int("width", w), zap.Int("height", h))
		}
	}

	sort.Slice(p.ordered, func(i, j int) bool { return p.ordered[i].Index < p.ordered[j].Index })

	logger.Debug("atlas packed",
		zap.Int("regions", len(p.ordered)),
		zap.Int("dropped", len(p.dropped)),
		zap.Int("shelves", len(shelves)),
		zap.Int("used_height", totalHeight))

	p.sources = nil
	return errs
}

func (p *Packer) place(src *source, x, y int) {
	r := newRegion(src.name, src.index, x, y, src.img.Rect.Dx(), src.img.Rect.Dy(), p.width, p.height)
	draw.Draw(p.image, r.PixelRect(), src.img, image.Point{}, draw.Src)
	p.regions[src.name] = r
	p.ordered = append(p.ordered, r)
}

// Frozen reports whether Pack has been called.
func (p *Packer) Frozen() bool {
	return p.frozen
}

// Region returns the placement of a packed texture.
func (p *Packer) Region(name string) (Region, bool) {
	r, ok := p.regions[name]
	return r, ok
}

// Regions returns every placed region ordered by add order.
func (p *Packer) Regions() []Region {
	out := make([]Region, len(p.ordered))
	copy(out, p.ordered)
	return out
}

// Dropped returns the names of textures that did not fit, in placement order.
func (p *Packer) Dropped() []string {
	out := make([]string, len(p.dropped))
	copy(out, p.dropped)
	return out
}

// Image returns the frozen atlas pixels, or ErrNotPacked. A nil Packer
// reports ErrNotPacked.
func (p *Packer) Image() (*image.RGBA, error) {
	if p == nil || !p.frozen {
		return nil, ErrNotPacked
	}
	return p.image, nil
}
