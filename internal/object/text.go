package object

import (
	"image/color"

	"github.com/tomz197/spaceshooter/internal/physics"
)

// Text is a simple drawable text object, centered on Center.
type Text struct {
	Center physics.Vec2
	Value  string
	Color  color.Color
}

// Draw renders the text; empty text draws nothing.
func (t Text) Draw(ctx DrawContext) error {
	if t.Value == "" {
		return nil
	}
	ctx.Surface.DrawText(t.Value, t.Center, t.Color)
	return nil
}

// Update is a no-op for static text.
func (t Text) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}
