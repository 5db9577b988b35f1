// Package window runs the game in a desktop window with ebiten.
package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/spaceshooter/internal/object"
	"github.com/tomz197/spaceshooter/internal/physics"
	"github.com/tomz197/spaceshooter/internal/sprite"
)

// textScale enlarges the 7x13 bitmap face to read at 1280x720.
const textScale = 3

// Surface adapts an ebiten screen image to object.Surface. Sprite images are
// uploaded once and reused; they are immutable after loading.
type Surface struct {
	dst      *ebiten.Image
	textures map[*sprite.Image]*ebiten.Image
	face     *text.GoXFace
}

var _ object.Surface = (*Surface)(nil)

// NewSurface returns a surface with an empty texture cache.
func NewSurface() *Surface {
	return &Surface{
		textures: make(map[*sprite.Image]*ebiten.Image),
		face:     text.NewGoXFace(basicfont.Face7x13),
	}
}

// Target sets the image drawn onto for the current frame.
func (s *Surface) Target(dst *ebiten.Image) {
	s.dst = dst
}

func (s *Surface) Fill(c color.Color) {
	s.dst.Fill(c)
}

func (s *Surface) DrawImage(img *sprite.Image, x, y float64) {
	tex, ok := s.textures[img]
	if !ok {
		tex = ebiten.NewImageFromImage(img.Pixels())
		s.textures[img] = tex
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	s.dst.DrawImage(tex, op)
}

func (s *Surface) FillRect(r physics.Rect, c color.Color) {
	vector.DrawFilledRect(s.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

// StrokeRect keeps the border inside r, matching the terminal canvas.
func (s *Surface) StrokeRect(r physics.Rect, width float64, c color.Color) {
	half := width / 2
	vector.StrokeRect(s.dst,
		float32(r.X+half), float32(r.Y+half),
		float32(r.W-width), float32(r.H-width),
		float32(width), c, false)
}

func (s *Surface) DrawText(str string, center physics.Vec2, c color.Color) {
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(center.X, center.Y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.dst, str, s.face, op)
}
