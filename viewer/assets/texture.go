package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

// MaxTextureDim caps decoded texture dimensions; larger images are
// downscaled before inspection or upload.
const MaxTextureDim = 2048

// DecodeTexture decodes an embedded image payload, downscaling it when
// either dimension exceeds maxDim.
func DecodeTexture(data []byte, maxDim int) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("texture decode failed: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= maxDim && bounds.Dy() <= maxDim {
		return img, nil
	}

	scale := float64(maxDim) / float64(bounds.Dx())
	if bounds.Dy() > bounds.Dx() {
		scale = float64(maxDim) / float64(bounds.Dy())
	}
	w := int(float64(bounds.Dx()) * scale)
	h := int(float64(bounds.Dy()) * scale)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst, nil
}

// HasTranslucentPixels reports whether any pixel has a non-opaque alpha
// value. Sampled on a grid to keep large textures cheap.
func HasTranslucentPixels(img image.Image) bool {
	bounds := img.Bounds()
	stepX := max(1, bounds.Dx()/64)
	stepY := max(1, bounds.Dy()/64)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			_, _, _, a := img.At(x, y).RGBA()
			if a < 0xffff {
				return true
			}
		}
	}
	return false
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
