// Package sprite holds the game's images together with their collision masks.
package sprite

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/tomz197/spaceshooter/internal/physics"
)

// alphaThreshold is the minimum alpha (exclusive) for a pixel to count as solid.
const alphaThreshold = 127

// Image is an immutable RGBA picture and the mask of its opaque pixels.
// Images are shared read-only between sessions.
type Image struct {
	pix  *image.NRGBA
	mask *physics.Mask
}

// FromImage converts src into an Image, building its mask.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	pix := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(pix, pix.Bounds(), src, b.Min, draw.Src)
	return &Image{pix: pix, mask: MaskOf(pix)}
}

// MaskOf returns the occupancy mask of img's pixels with alpha above the threshold.
func MaskOf(img *image.NRGBA) *physics.Mask {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	m := physics.NewMask(w, h)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			if row[x*4+3] > alphaThreshold {
				m.Set(x, y)
			}
		}
	}
	return m
}

// Pixels returns the underlying picture. Callers must not modify it.
func (i *Image) Pixels() *image.NRGBA { return i.pix }

// Mask returns the collision mask.
func (i *Image) Mask() *physics.Mask { return i.mask }

// Width returns the image width in pixels.
func (i *Image) Width() int { return i.pix.Rect.Dx() }

// Height returns the image height in pixels.
func (i *Image) Height() int { return i.pix.Rect.Dy() }

// Size returns the image size as floats, for building rects.
func (i *Image) Size() (w, h float64) {
	return float64(i.Width()), float64(i.Height())
}

// Scale returns a copy of img resized by factor using nearest-neighbour sampling.
func Scale(img *Image, factor float64) *Image {
	w := int(math.Round(float64(img.Width()) * factor))
	h := int(math.Round(float64(img.Height()) * factor))
	dst := image.NewNRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img.pix, img.pix.Bounds(), xdraw.Src, nil)
	return &Image{pix: dst, mask: MaskOf(dst)}
}

// Rotate returns img rotated counter-clockwise by deg degrees.
// The result is sized to the rotated bounding box, so its center matches the source center.
func Rotate(img *Image, deg float64) *Image {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	sw, sh := float64(img.Width()), float64(img.Height())

	dw := int(math.Ceil(math.Abs(sw*cos) + math.Abs(sh*sin) - 1e-9))
	dh := int(math.Ceil(math.Abs(sw*sin) + math.Abs(sh*cos) - 1e-9))
	dst := image.NewNRGBA(image.Rect(0, 0, max(dw, 1), max(dh, 1)))

	// Source center -> origin, rotate (y axis points down), origin -> destination center.
	scx, scy := sw/2, sh/2
	dcx, dcy := float64(dw)/2, float64(dh)/2
	s2d := f64.Aff3{
		cos, sin, dcx - (cos*scx + sin*scy),
		-sin, cos, dcy - (-sin*scx + cos*scy),
	}
	xdraw.BiLinear.Transform(dst, s2d, img.pix, img.pix.Bounds(), xdraw.Over, nil)
	return &Image{pix: dst, mask: MaskOf(dst)}
}
