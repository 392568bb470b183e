// Package texture decodes block and model textures into RGBA images.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

var (
	ErrUnknownFormat = errors.New("texture: unknown image format")
	ErrUnsupported   = errors.New("texture: unsupported image")
	ErrTruncated     = errors.New("texture: truncated data")
)

// Format is a recognised texture encoding.
type Format string

const (
	FormatUnknown Format = ""
	FormatPNG     Format = "png"
	FormatJPEG    Format = "jpg"
	FormatGIF     Format = "gif"
	FormatBMP     Format = "bmp"
	FormatWebP    Format = "webp"
	FormatTGA     Format = "tga"
)

// Sniff identifies data by its magic bytes, falling back to the file
// extension for TGA which has no signature.
func Sniff(name string, data []byte) Format {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		switch kind.Extension {
		case "png":
			return FormatPNG
		case "jpg":
			return FormatJPEG
		case "gif":
			return FormatGIF
		case "bmp":
			return FormatBMP
		case "webp":
			return FormatWebP
		}
	}
	if strings.EqualFold(path.Ext(name), ".tga") {
		return FormatTGA
	}
	return FormatUnknown
}

// Decode decodes a texture file into RGBA.
func Decode(name string, data []byte) (*image.RGBA, error) {
	format := Sniff(name, data)
	if format == FormatTGA {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return img, nil
	}

	var decode func(io.Reader) (image.Image, error)
	switch format {
	case FormatPNG:
		decode = png.Decode
	case FormatJPEG:
		decode = jpeg.Decode
	case FormatGIF:
		decode = gif.Decode
	case FormatBMP:
		decode = bmp.Decode
	case FormatWebP:
		decode = webp.Decode
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}

	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA returns img as an *image.RGBA anchored at the origin, copying
// only when needed.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(rgba, image.Point{}, img, b, draw.Src, nil)
	return rgba
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
