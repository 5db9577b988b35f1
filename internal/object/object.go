package object

import (
	"image/color"
	"time"

	"github.com/tomz197/spaceshooter/internal/input"
	"github.com/tomz197/spaceshooter/internal/physics"
	"github.com/tomz197/spaceshooter/internal/sound"
	"github.com/tomz197/spaceshooter/internal/sprite"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Input is an alias for the input package's Input type.
type Input = input.Input

// UpdateContext provides all the information an object needs during update.
// Every object updated in one frame sees the same Delta and Now.
type UpdateContext struct {
	Delta   time.Duration // Simulated time since the previous frame
	Now     time.Duration // Game clock: sum of all deltas so far
	Input   Input
	Screen  Screen
	Spawner Spawner
	Sound   sound.Player
}

// Surface is the render target objects draw onto, in logical screen units.
type Surface interface {
	// Fill clears the whole surface to c.
	Fill(c color.Color)
	// DrawImage blits img with its top-left corner at (x, y).
	DrawImage(img *sprite.Image, x, y float64)
	// FillRect fills r with c.
	FillRect(r physics.Rect, c color.Color)
	// StrokeRect outlines r with a border of the given width.
	StrokeRect(r physics.Rect, width float64, c color.Color)
	// DrawText renders s centered on center.
	DrawText(s string, center physics.Vec2, c color.Color)
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Surface Surface
}

// Screen represents the logical play-field dimensions.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen returns a Screen of the given size.
func NewScreen(width, height int) Screen {
	return Screen{Width: width, Height: height, CenterX: width / 2, CenterY: height / 2}
}

// Center returns the screen midpoint.
func (s Screen) Center() physics.Vec2 {
	return physics.Vec2{X: float64(s.CenterX), Y: float64(s.CenterY)}
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object onto ctx.Surface.
	Draw(ctx DrawContext) error
}

// Collider is an object with a position and a pixel-accurate shape.
type Collider interface {
	Object
	Rect() physics.Rect
	Mask() *physics.Mask
}

// Collide reports whether the opaque pixels of a and b overlap.
func Collide(a, b Collider) bool {
	return physics.Collide(a.Rect(), a.Mask(), b.Rect(), b.Mask())
}

// spriteBody is the shared image-at-rect state of every visible object.
type spriteBody struct {
	rect  physics.Rect
	image *sprite.Image
}

func newBody(img *sprite.Image) spriteBody {
	w, h := img.Size()
	return spriteBody{rect: physics.Rect{W: w, H: h}, image: img}
}

// setImage swaps the visual and resizes the rect around its current center.
func (b *spriteBody) setImage(img *sprite.Image) {
	b.image = img
	w, h := img.Size()
	b.rect.Resize(w, h)
}

// Rect returns the object's bounding rect.
func (b *spriteBody) Rect() physics.Rect { return b.rect }

// Mask returns the collision mask of the current visual.
func (b *spriteBody) Mask() *physics.Mask { return b.image.Mask() }

// Image returns the current visual.
func (b *spriteBody) Image() *sprite.Image { return b.image }

// Draw blits the current visual at the rect.
func (b *spriteBody) Draw(ctx DrawContext) error {
	ctx.Surface.DrawImage(b.image, b.rect.X, b.rect.Y)
	return nil
}
