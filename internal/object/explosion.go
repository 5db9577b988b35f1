package object

import (
	"github.com/tomz197/spaceshooter/internal/physics"
	"github.com/tomz197/spaceshooter/internal/sound"
	"github.com/tomz197/spaceshooter/internal/sprite"
)

// ExplosionFrameRate is the animation speed in frames per second.
const ExplosionFrameRate = 20.0

// Explosion plays a one-shot animation and removes itself when done.
type Explosion struct {
	spriteBody
	frames []*sprite.Image
	index  float64
}

// NewExplosion starts an explosion centred on pos and plays its sound.
func NewExplosion(frames []*sprite.Image, pos physics.Vec2, snd sound.Player) *Explosion {
	e := &Explosion{spriteBody: newBody(frames[0]), frames: frames}
	e.rect.SetCenter(pos)
	snd.Play(sound.Explosion)
	return e
}

// Update advances the animation. The explosion is removed once the frame
// index runs past the last frame.
func (e *Explosion) Update(ctx UpdateContext) (bool, error) {
	e.index += ExplosionFrameRate * ctx.Delta.Seconds()
	if e.index >= float64(len(e.frames)) {
		return true, nil
	}
	e.setImage(e.frames[int(e.index)])
	return false, nil
}
