package texture

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func checker() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(2, 0, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(0, 1, color.RGBA{10, 20, 30, 255})
	img.SetRGBA(1, 1, color.RGBA{40, 50, 60, 255})
	img.SetRGBA(2, 1, color.RGBA{70, 80, 90, 255})
	return img
}

func tgaHeader(imageType, w, h, bpp int, descriptor byte) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = byte(imageType)
	hdr[12], hdr[14] = byte(w), byte(h)
	hdr[16] = byte(bpp)
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	// 24-bit, rows stored bottom row first
	data := tgaHeader(TGATypeUncompressed, 2, 2, 24, 0)
	data = append(data,
		0, 0, 255, 0, 255, 0, // bottom: red, green
		255, 0, 0, 255, 255, 255, // top: blue, white
	)
	img, err := DecodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, img.RGBAAt(1, 1))
}

func TestDecodeTGARLE(t *testing.T) {
	data := tgaHeader(TGATypeRLE, 4, 1, 32, 0x20)
	data = append(data,
		0x82, 1, 2, 3, 4, // run of 3
		0x00, 9, 8, 7, 6, // one raw pixel
	)
	img, err := DecodeTGA(data)
	require.NoError(t, err)
	for x := range 3 {
		assert.Equal(t, color.RGBA{3, 2, 1, 4}, img.RGBAAt(x, 0))
	}
	assert.Equal(t, color.RGBA{7, 8, 9, 6}, img.RGBAAt(3, 0))

	_, err = DecodeTGA(data[:len(data)-3])
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", []byte{0, 0, 2}, ErrTruncated},
		{"colour mapped", func() []byte { h := tgaHeader(1, 1, 1, 8, 0); h[1] = 1; return h }(), ErrUnsupported},
		{"grayscale", tgaHeader(3, 1, 1, 8, 0), ErrUnsupported},
		{"16 bit", tgaHeader(TGATypeUncompressed, 1, 1, 16, 0), ErrUnsupported},
		{"missing pixels", tgaHeader(TGATypeUncompressed, 2, 2, 24, 0), ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTGARoundTrip(t *testing.T) {
	src := checker()
	img, err := Decode("blocks/checker.tga", EncodeTGA(src))
	require.NoError(t, err)
	assert.Equal(t, src.Pix, img.Pix)
}

func TestDecodeSniffsContent(t *testing.T) {
	src := checker()

	var pngBuf bytes.Buffer
	require.NoError(t, EncodePNG(&pngBuf, src))
	var bmpBuf bytes.Buffer
	require.NoError(t, bmp.Encode(&bmpBuf, src))

	tests := []struct {
		name   string
		data   []byte
		format Format
	}{
		// the extension is ignored when the content has a signature
		{"stone.tga", pngBuf.Bytes(), FormatPNG},
		{"stone.png", bmpBuf.Bytes(), FormatBMP},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.format, Sniff(tt.name, tt.data))
			img, err := Decode(tt.name, tt.data)
			require.NoError(t, err)
			assert.Equal(t, src.Bounds(), img.Bounds())
			assert.Equal(t, src.RGBAAt(1, 1), img.RGBAAt(1, 1))
		})
	}
}

func TestDecodeUnknown(t *testing.T) {
	_, err := Decode("notes.txt", []byte("hello world, not an image"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Equal(t, FormatUnknown, Sniff("notes.txt", nil))
}

func TestToRGBA(t *testing.T) {
	src := checker()
	assert.Same(t, src, ToRGBA(src))

	sub := src.SubImage(image.Rect(1, 1, 3, 2))
	got := ToRGBA(sub)
	assert.Equal(t, image.Rect(0, 0, 2, 1), got.Bounds())
	assert.Equal(t, src.RGBAAt(1, 1), got.RGBAAt(0, 0))
}
