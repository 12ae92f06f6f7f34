package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	data := pngBytes(t, solidImage(4, 4, color.White))

	img, err := decodeImage(data)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	_, err = decodeImage([]byte("not an image at all"))
	assert.Error(t, err)
}

func TestFitPageDownscales(t *testing.T) {
	// 2400×3200 is exactly 2× the box in both directions.
	img := fitPage(solidImage(2400, 3200, color.White), false)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 1600, img.Bounds().Dy())

	// Same input with enlargement allowed: still a downscale.
	img = fitPage(solidImage(2400, 3200, color.White), true)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 1600, img.Bounds().Dy())
}

func TestFitPagePreservesAspectRatio(t *testing.T) {
	// Wide landscape scan: width binds, height scales along.
	img := fitPage(solidImage(2400, 1200, color.White), false)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestFitPageEnlargement(t *testing.T) {
	small := solidImage(600, 800, color.White)

	// Raw uploads keep their native size.
	kept := fitPage(small, false)
	assert.Equal(t, 600, kept.Bounds().Dx())
	assert.Equal(t, 800, kept.Bounds().Dy())

	// The rendered-PDF branch scales small pages up to the box.
	up := fitPage(small, true)
	assert.Equal(t, 1200, up.Bounds().Dx())
	assert.Equal(t, 1600, up.Bounds().Dy())
}

func TestFlattenOnWhite(t *testing.T) {
	// Fully transparent input flattens to pure white.
	transparent := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	out := flattenOnWhite(transparent)

	r, g, b, a := out.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
	assert.Equal(t, uint32(0xffff), a)

	// Opaque pixels survive untouched.
	out = flattenOnWhite(solidImage(2, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255}))
	r, g, b, _ = out.At(1, 1).RGBA()
	assert.Equal(t, uint32(10)*257, r)
	assert.Equal(t, uint32(20)*257, g)
	assert.Equal(t, uint32(30)*257, b)
}

func TestRenderWidth(t *testing.T) {
	// US Letter and A4 widths in points, at the 2.0x render scale.
	assert.Equal(t, 1224, renderWidth(612))
	assert.Equal(t, 1190, renderWidth(595.28))
	assert.Equal(t, 0, renderWidth(0))
}

func TestMakeThumbnail(t *testing.T) {
	// Cover crop: exact 400×533 regardless of the source aspect ratio.
	for _, dims := range [][2]int{{1200, 1600}, {1600, 1200}, {100, 900}} {
		thumb := makeThumbnail(solidImage(dims[0], dims[1], color.White))
		assert.Equal(t, 400, thumb.Bounds().Dx())
		assert.Equal(t, 533, thumb.Bounds().Dy())
	}
}
