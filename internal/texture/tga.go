package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	TGATypeUncompressed = 2
	TGATypeRLE          = 10
)

const tgaHeaderSize = 18

// DecodeTGA decodes uncompressed (type 2) and RLE (type 10) true-colour
// TGA data with 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("%w: tga header", ErrTruncated)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: colour-mapped tga", ErrUnsupported)
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("%w: tga type %d", ErrUnsupported, imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("%w: tga depth %d", ErrUnsupported, bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: tga size %dx%d", ErrUnsupported, width, height)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: tga id field", ErrTruncated)
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		width:       width,
		height:      height,
		stride:      bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}
	pixels := data[offset:]
	if imageType == TGATypeUncompressed {
		return d.img, d.raw(pixels)
	}
	return d.img, d.rle(pixels)
}

type tgaDecoder struct {
	img           *image.RGBA
	width, height int
	stride        int
	topToBottom   bool
}

// pixel reads one BGR(A) pixel.
func (d *tgaDecoder) pixel(p []byte) color.RGBA {
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.stride == 4 {
		c.A = p[3]
	}
	return c
}

// set stores the n-th pixel in file order.
func (d *tgaDecoder) set(n int, c color.RGBA) {
	x, y := n%d.width, n/d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
}

func (d *tgaDecoder) raw(data []byte) error {
	count := d.width * d.height
	if len(data) < count*d.stride {
		return fmt.Errorf("%w: tga pixels", ErrTruncated)
	}
	for n := range count {
		d.set(n, d.pixel(data[n*d.stride:]))
	}
	return nil
}

func (d *tgaDecoder) rle(data []byte) error {
	count := d.width * d.height
	n, i := 0, 0
	for n < count {
		if i >= len(data) {
			return fmt.Errorf("%w: tga rle stream", ErrTruncated)
		}
		packet := data[i]
		i++
		run := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if i+d.stride > len(data) {
				return fmt.Errorf("%w: tga rle run", ErrTruncated)
			}
			c := d.pixel(data[i:])
			i += d.stride
			for ; run > 0 && n < count; run-- {
				d.set(n, c)
				n++
			}
			continue
		}

		for ; run > 0 && n < count; run-- {
			if i+d.stride > len(data) {
				return fmt.Errorf("%w: tga raw packet", ErrTruncated)
			}
			d.set(n, d.pixel(data[i:]))
			i += d.stride
			n++
		}
	}
	return nil
}

// EncodeTGA writes img as an uncompressed 32-bit top-to-bottom TGA.
func EncodeTGA(img image.Image) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, tgaHeaderSize, tgaHeaderSize+w*h*4)
	out[2] = TGATypeUncompressed
	out[12], out[13] = byte(w), byte(w>>8)
	out[14], out[15] = byte(h), byte(h>>8)
	out[16] = 32
	out[17] = 0x20 | 8
	rgba := ToRGBA(img)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := rgba.RGBAAt(x, y)
			out = append(out, c.B, c.G, c.R, c.A)
		}
	}
	return out
}
