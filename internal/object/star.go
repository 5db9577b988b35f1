package object

import (
	"math/rand"

	"github.com/tomz197/spaceshooter/internal/physics"
	"github.com/tomz197/spaceshooter/internal/sprite"
)

// Star is a static background decoration.
type Star struct {
	spriteBody
}

// NewStar centres a star at a random point of the screen.
func NewStar(img *sprite.Image, screen Screen, rng *rand.Rand) *Star {
	s := &Star{spriteBody: newBody(img)}
	s.rect.SetCenter(physics.Vec2{
		X: float64(rng.Intn(screen.Width + 1)),
		Y: float64(rng.Intn(screen.Height + 1)),
	})
	return s
}

func (s *Star) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}
