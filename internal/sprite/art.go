package sprite

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"

	"github.com/tomz197/spaceshooter/internal/physics"
)

// canvas is a scratch picture the built-in art is rasterized into.
type canvas struct {
	pix *image.NRGBA
}

func newCanvas(w, h int) *canvas {
	return &canvas{pix: image.NewNRGBA(image.Rect(0, 0, w, h))}
}

// polygon fills the closed polygon pts with c.
func (cv *canvas) polygon(pts []physics.Vec2, c color.Color) {
	if len(pts) < 3 {
		return
	}
	b := cv.pix.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	z.Draw(cv.pix, b, image.NewUniform(c), image.Point{})
}

// circle fills a circle approximated by a 32-gon.
func (cv *canvas) circle(cx, cy, r float64, c color.Color) {
	const n = 32
	pts := make([]physics.Vec2, n)
	for i := range pts {
		a := float64(i) * 2 * math.Pi / n
		pts[i] = physics.Vec2{X: cx + math.Cos(a)*r, Y: cy + math.Sin(a)*r}
	}
	cv.polygon(pts, c)
}

func (cv *canvas) image() *Image {
	return &Image{pix: cv.pix, mask: MaskOf(cv.pix)}
}

// withAlpha returns c with its alpha replaced by a (0..1).
func withAlpha(c color.RGBA, a float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(255 * math.Max(0, math.Min(1, a))))}
}

// ShipImage draws the player ship pointing up.
func ShipImage() *Image {
	cv := newCanvas(72, 80)
	hull := []physics.Vec2{
		{X: 36, Y: 0}, {X: 46, Y: 24}, {X: 50, Y: 46}, {X: 72, Y: 64}, {X: 70, Y: 76},
		{X: 48, Y: 70}, {X: 42, Y: 80}, {X: 30, Y: 80}, {X: 24, Y: 70}, {X: 2, Y: 76},
		{X: 0, Y: 64}, {X: 22, Y: 46}, {X: 26, Y: 24},
	}
	cv.polygon(hull, colornames.Lightsteelblue)
	cv.polygon([]physics.Vec2{{X: 36, Y: 10}, {X: 42, Y: 30}, {X: 36, Y: 40}, {X: 30, Y: 30}}, colornames.Deepskyblue)
	cv.polygon([]physics.Vec2{{X: 30, Y: 72}, {X: 42, Y: 72}, {X: 40, Y: 80}, {X: 32, Y: 80}}, colornames.Orange)
	return cv.image()
}

// StarImage draws a small four-pointed star.
func StarImage() *Image {
	cv := newCanvas(14, 14)
	cv.polygon([]physics.Vec2{
		{X: 7, Y: 0}, {X: 8.5, Y: 5.5}, {X: 14, Y: 7}, {X: 8.5, Y: 8.5},
		{X: 7, Y: 14}, {X: 5.5, Y: 8.5}, {X: 0, Y: 7}, {X: 5.5, Y: 5.5},
	}, colornames.Lightyellow)
	return cv.image()
}

// LaserImage draws the laser bolt.
func LaserImage() *Image {
	cv := newCanvas(10, 42)
	cv.polygon([]physics.Vec2{
		{X: 5, Y: 0}, {X: 10, Y: 6}, {X: 10, Y: 38}, {X: 5, Y: 42}, {X: 0, Y: 38}, {X: 0, Y: 6},
	}, colornames.Orangered)
	cv.polygon([]physics.Vec2{{X: 5, Y: 4}, {X: 7, Y: 8}, {X: 7, Y: 34}, {X: 3, Y: 34}, {X: 3, Y: 8}}, colornames.Lightyellow)
	return cv.image()
}

// MeteorImage draws an irregular rock. The outline is a polygon whose vertex
// distances vary around the nominal radius, seeded by rng.
func MeteorImage(rng *rand.Rand) *Image {
	const (
		size   = 100
		radius = 46.0
	)
	cv := newCanvas(size, size)
	numVerts := 10 + rng.Intn(5)
	pts := make([]physics.Vec2, numVerts)
	for i := range pts {
		a := float64(i) * 2 * math.Pi / float64(numVerts)
		d := radius * (0.78 + rng.Float64()*0.22)
		pts[i] = physics.Vec2{X: size/2 + math.Cos(a)*d, Y: size/2 + math.Sin(a)*d}
	}
	cv.polygon(pts, colornames.Rosybrown)

	for i := 0; i < 4; i++ {
		a := rng.Float64() * 2 * math.Pi
		d := rng.Float64() * radius * 0.45
		r := 5 + rng.Float64()*7
		cv.circle(size/2+math.Cos(a)*d, size/2+math.Sin(a)*d, r, colornames.Sienna)
	}
	return cv.image()
}

// ExplosionFrames draws n frames of an expanding, fading fireball.
func ExplosionFrames(n int) []*Image {
	const size = 110
	frames := make([]*Image, n)
	for i := range frames {
		t := float64(i+1) / float64(n)
		cv := newCanvas(size, size)
		c := size / 2.0

		outer := 12 + t*(size/2-14)
		cv.circle(c, c, outer, withAlpha(colornames.Orangered, 1-t*0.85))
		if t < 0.8 {
			cv.circle(c, c, outer*0.7, withAlpha(colornames.Orange, 1-t))
			cv.circle(c, c, outer*0.35*(1-t), withAlpha(colornames.Lightyellow, 1))
		}
		frames[i] = cv.image()
	}
	return frames
}
