package object

import (
	"math/rand"

	"github.com/tomz197/spaceshooter/internal/physics"
	"github.com/tomz197/spaceshooter/internal/sprite"
)

const (
	MeteorSpinSpeed = 100.0 // Degrees per second

	meteorMinSpeed    = 250
	meteorMaxSpeed    = 600
	meteorMinRotation = 50
	meteorMaxRotation = 100
	meteorSpawnHeight = 200 // Spawn band above the top edge
)

// Meteor drifts down the screen while spinning.
type Meteor struct {
	spriteBody
	rotations *sprite.RotationCache

	Speed     float64
	Direction physics.Vec2 // Not normalized; X jitter makes diagonal meteors faster
	Rotation  float64      // Degrees
}

// NewMeteor spawns a meteor just above the visible area with random
// position, speed, heading and starting angle.
func NewMeteor(rotations *sprite.RotationCache, screen Screen, rng *rand.Rand) *Meteor {
	pos := physics.Vec2{
		X: float64(rng.Intn(screen.Width + 1)),
		Y: float64(-meteorSpawnHeight + rng.Intn(meteorSpawnHeight)),
	}
	speed := float64(meteorMinSpeed + rng.Intn(meteorMaxSpeed-meteorMinSpeed))
	dir := physics.Vec2{X: rng.Float64() - 0.5, Y: 1}
	rotation := float64(meteorMinRotation + rng.Intn(meteorMaxRotation-meteorMinRotation))
	return NewMeteorAt(rotations, pos, speed, dir, rotation)
}

// NewMeteorAt creates a meteor with its bottom edge centred on pos.
func NewMeteorAt(rotations *sprite.RotationCache, pos physics.Vec2, speed float64, dir physics.Vec2, rotation float64) *Meteor {
	m := &Meteor{
		spriteBody: newBody(rotations.At(rotation)),
		rotations:  rotations,
		Speed:      speed,
		Direction:  dir,
		Rotation:   rotation,
	}
	m.rect = physics.RectAtMidBottom(m.rect.W, m.rect.H, pos)
	return m
}

// Update moves and spins the meteor and removes it below the bottom edge.
func (m *Meteor) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()
	m.rect.Move(m.Direction.Scale(m.Speed * dt))

	m.Rotation += MeteorSpinSpeed * dt
	m.setImage(m.rotations.At(m.Rotation))

	return m.rect.Top() > float64(ctx.Screen.Height), nil
}
