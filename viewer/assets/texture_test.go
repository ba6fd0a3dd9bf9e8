package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeTextureKeepsSmallImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 8))
	decoded, err := DecodeTexture(encodePNG(t, img), 32)
	require.NoError(t, err)
	assert.Equal(t, 16, decoded.Bounds().Dx())
	assert.Equal(t, 8, decoded.Bounds().Dy())
}

func TestDecodeTextureDownscalesLargeImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 128, 64))
	decoded, err := DecodeTexture(encodePNG(t, img), 32)
	require.NoError(t, err)
	assert.Equal(t, 32, decoded.Bounds().Dx())
	assert.Equal(t, 16, decoded.Bounds().Dy())
}

func TestDecodeTextureRejectsGarbage(t *testing.T) {
	_, err := DecodeTexture([]byte("not an image"), 32)
	assert.Error(t, err)
}

func TestHasTranslucentPixels(t *testing.T) {
	opaque := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			opaque.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	assert.False(t, HasTranslucentPixels(opaque))

	opaque.Set(3, 3, color.RGBA{R: 255, A: 128})
	assert.True(t, HasTranslucentPixels(opaque))
}
