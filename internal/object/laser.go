package object

import (
	"github.com/tomz197/spaceshooter/internal/physics"
	"github.com/tomz197/spaceshooter/internal/sprite"
)

// LaserSpeed is how fast lasers travel upward, in pixels per second.
const LaserSpeed = 1000.0

// Laser is a projectile fired straight up by the player.
type Laser struct {
	spriteBody
}

// NewLaser creates a laser whose bottom edge is centred on pos.
func NewLaser(img *sprite.Image, pos physics.Vec2) *Laser {
	l := &Laser{spriteBody: newBody(img)}
	l.rect = physics.RectAtMidBottom(l.rect.W, l.rect.H, pos)
	return l
}

// Update moves the laser up and removes it once it has left the top edge.
func (l *Laser) Update(ctx UpdateContext) (bool, error) {
	l.rect.Y -= LaserSpeed * ctx.Delta.Seconds()
	return l.rect.Bottom() < 0, nil
}
