package atlas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/Faultbox/blockforge/internal/texture"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestNewInvalidSize(t *testing.T) {
	_, err := New(0, 64)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestAddTextureErrors(t *testing.T) {
	p, err := New(64, 64)
	require.NoError(t, err)

	require.NoError(t, p.AddTexture("a", solid(8, 8, color.RGBA{R: 255, A: 255})))
	assert.ErrorIs(t, p.AddTexture("a", solid(8, 8, color.RGBA{})), ErrDuplicateTexture)
	assert.ErrorIs(t, p.AddTexture("empty", image.NewRGBA(image.Rect(0, 0, 0, 4))), ErrEmptyTexture)
	assert.Equal(t, 1, p.Len())
	assert.True(t, p.Has("a"))

	_, err = p.Image()
	assert.ErrorIs(t, err, ErrNotPacked)

	require.NoError(t, p.Pack())
	assert.ErrorIs(t, p.Pack(), ErrFrozen)
	assert.ErrorIs(t, p.AddTexture("b", solid(4, 4, color.RGBA{})), ErrFrozen)
}

func TestAddEncoded(t *testing.T) {
	p, err := New(32, 32)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, texture.EncodePNG(&buf, solid(4, 2, color.RGBA{G: 200, A: 255})))
	require.NoError(t, p.AddEncoded("leaf.png", buf.Bytes()))
	assert.ErrorIs(t, p.AddEncoded("junk.png", []byte("not an image")), texture.ErrUnknownFormat)

	require.NoError(t, p.Pack())
	r, ok := p.Region("leaf.png")
	require.True(t, ok)
	assert.Equal(t, 4, r.Width)
	assert.Equal(t, 2, r.Height)

	img, err := p.Image()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{G: 200, A: 255}, img.RGBAAt(r.X+3, r.Y+1))
}

func TestPackShelfOrder(t *testing.T) {
	p, err := New(64, 64)
	require.NoError(t, err)

	// Added shortest first; packing sorts by height desc, width desc, name asc.
	require.NoError(t, p.AddTexture("small", solid(16, 16, color.RGBA{G: 255, A: 255})))
	require.NoError(t, p.AddTexture("wide", solid(48, 32, color.RGBA{B: 255, A: 255})))
	require.NoError(t, p.AddTexture("b_tall", solid(16, 32, color.RGBA{R: 255, A: 255})))
	require.NoError(t, p.AddTexture("a_tall", solid(16, 32, color.RGBA{R: 128, A: 255})))
	require.NoError(t, p.Pack())

	want := map[string]image.Point{
		"wide":   {0, 0},
		"a_tall": {48, 0},
		"b_tall": {0, 32},
		"small":  {16, 32},
	}
	for name, pt := range want {
		r, ok := p.Region(name)
		require.True(t, ok, name)
		assert.Equal(t, pt, image.Pt(r.X, r.Y), name)
	}

	regions := p.Regions()
	require.Len(t, regions, 4)
	for i, r := range regions {
		assert.Equal(t, i, r.Index)
	}
	assert.Equal(t, "small", regions[0].Name)

	img, err := p.Image()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(10, 10))
	assert.Equal(t, color.RGBA{R: 128, A: 255}, img.RGBAAt(50, 5))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, img.RGBAAt(20, 40))
}

func TestPackExactFitNewShelf(t *testing.T) {
	p, err := New(32, 32)
	require.NoError(t, err)
	// equal sizes place by name, so "a_top" takes the first shelf
	require.NoError(t, p.AddTexture("b_bottom", solid(32, 16, color.RGBA{A: 255})))
	require.NoError(t, p.AddTexture("a_top", solid(32, 16, color.RGBA{A: 255})))
	require.NoError(t, p.Pack())

	r, ok := p.Region("a_top")
	require.True(t, ok)
	assert.Equal(t, 0, r.Y)
	assert.Equal(t, float32(0.5), r.VMax)
	r, ok = p.Region("b_bottom")
	require.True(t, ok)
	assert.Equal(t, 16, r.Y)
	assert.Equal(t, float32(1), r.VMax)
	assert.Empty(t, p.Dropped())
}

func TestPackReportsDropped(t *testing.T) {
	p, err := New(32, 32)
	require.NoError(t, err)
	require.NoError(t, p.AddTexture("fits", solid(32, 32, color.RGBA{A: 255})))
	require.NoError(t, p.AddTexture("z_extra", solid(8, 8, color.RGBA{A: 255})))
	require.NoError(t, p.AddTexture("a_extra", solid(8, 8, color.RGBA{A: 255})))
	require.NoError(t, p.AddTexture("too_wide", solid(40, 4, color.RGBA{A: 255})))

	err = p.Pack()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAtlasFull))

	errs := multierr.Errors(err)
	require.Len(t, errs, 3)
	var names []string
	for _, e := range errs {
		var drop *DropError
		require.True(t, errors.As(e, &drop))
		names = append(names, drop.Name)
	}
	assert.Equal(t, []string{"a_extra", "z_extra", "too_wide"}, names)
	assert.Equal(t, names, p.Dropped())

	_, ok := p.Region("fits")
	assert.True(t, ok)
	_, ok = p.Region("a_extra")
	assert.False(t, ok)
}

func TestPackNonOverlapAndUVRoundTrip(t *testing.T) {
	const size = 256
	rng := rand.New(rand.NewSource(7))

	p, err := New(size, size)
	require.NoError(t, err)
	area := 0
	for i := 0; area < size*size/3; i++ {
		w, h := 4+rng.Intn(28), 4+rng.Intn(28)
		area += w * h
		require.NoError(t, p.AddTexture(fmt.Sprintf("tex%03d", i), solid(w, h, color.RGBA{A: 255})))
	}
	require.NoError(t, p.Pack())

	bounds := image.Rect(0, 0, size, size)
	regions := p.Regions()
	require.Equal(t, p.Len(), len(regions))
	for i, a := range regions {
		ra := a.PixelRect()
		assert.True(t, ra.In(bounds), "%s out of bounds: %v", a.Name, ra)
		for _, b := range regions[i+1:] {
			assert.False(t, ra.Overlaps(b.PixelRect()), "%s overlaps %s", a.Name, b.Name)
		}

		assert.InDelta(t, a.X, a.UMin*size, 1e-3)
		assert.InDelta(t, a.Y, a.VMin*size, 1e-3)
		assert.InDelta(t, a.X+a.Width, a.UMax*size, 1e-3)
		assert.InDelta(t, a.Y+a.Height, a.VMax*size, 1e-3)
		assert.True(t, a.Contains(a.Min()))
		assert.True(t, a.Contains(a.Max()))
	}
}

func TestNilPackerImage(t *testing.T) {
	var p *Packer
	img, err := p.Image()
	assert.Nil(t, img)
	assert.ErrorIs(t, err, ErrNotPacked)
}
