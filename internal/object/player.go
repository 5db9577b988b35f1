package object

import (
	"time"

	"github.com/tomz197/spaceshooter/internal/physics"
	"github.com/tomz197/spaceshooter/internal/sound"
	"github.com/tomz197/spaceshooter/internal/sprite"
)

const (
	PlayerSpeed   = 650.0                  // Pixels per second
	LaserCooldown = 400 * time.Millisecond // Minimum gap between shots
	WrapMargin    = 100.0                  // Off-screen distance before wrapping
)

// Player is the ship controlled by the user.
type Player struct {
	spriteBody
	laser *sprite.Image

	Direction      physics.Vec2
	CanShoot       bool
	LaserShootTime time.Duration
}

// NewPlayer places a ship at the centre of screen. laser is the image used
// for every laser it fires.
func NewPlayer(img, laser *sprite.Image, screen Screen) *Player {
	p := &Player{
		spriteBody: newBody(img),
		laser:      laser,
		CanShoot:   true,
	}
	p.rect.SetCenter(screen.Center())
	return p
}

// Update moves the ship, wraps it horizontally and fires when allowed.
func (p *Player) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	p.Direction = direction(ctx.Input)
	p.rect.Move(p.Direction.Scale(PlayerSpeed * dt))
	p.wrap(ctx.Screen)

	if ctx.Input.Fire && p.CanShoot {
		ctx.Spawner.Spawn(NewLaser(p.laser, p.rect.MidTop()))
		ctx.Sound.Play(sound.Laser)
		p.CanShoot = false
		p.LaserShootTime = ctx.Now
	}
	p.reload(ctx.Now)
	return false, nil
}

// direction maps held keys to a unit (or zero) vector.
func direction(in Input) physics.Vec2 {
	var d physics.Vec2
	if in.Right {
		d.X++
	}
	if in.Left {
		d.X--
	}
	if in.Down {
		d.Y++
	}
	if in.Up {
		d.Y--
	}
	return d.Normalize()
}

// wrap teleports the ship across the screen once it is fully past a side
// margin. Vertical position is left alone: the ship may leave top or bottom.
func (p *Player) wrap(screen Screen) {
	w := float64(screen.Width)
	switch {
	case p.rect.Left() > w+WrapMargin:
		p.rect.SetLeft(-WrapMargin)
	case p.rect.Right() < -WrapMargin:
		p.rect.SetRight(w + WrapMargin)
	}
}

func (p *Player) reload(now time.Duration) {
	if !p.CanShoot && now-p.LaserShootTime >= LaserCooldown {
		p.CanShoot = true
	}
}
