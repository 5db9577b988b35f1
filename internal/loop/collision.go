package loop

import (
	"github.com/tomz197/spaceshooter/internal/loop/config"
	"github.com/tomz197/spaceshooter/internal/object"
	"github.com/tomz197/spaceshooter/internal/sound"
	"github.com/tomz197/spaceshooter/internal/sprite"
)

// resolveCollisions runs the player-meteor and laser-meteor checks for one
// frame. It reports whether the player was hit.
func resolveCollisions(w *World, player *object.Player, s *Session, snd sound.Player, explosion []*sprite.Image) bool {
	hit := false
	if player != nil {
		for _, m := range w.Meteors.Objects() {
			if object.Collide(player, m.(object.Collider)) {
				w.Kill(m)
				hit = true
			}
		}
	}
	if hit {
		s.Health -= config.MeteorDamage
		snd.Play(sound.Damage)
	}

	for _, obj := range w.Lasers.Objects() {
		laser := obj.(*object.Laser)
		destroyed := false
		for _, m := range w.Meteors.Objects() {
			if object.Collide(laser, m.(object.Collider)) {
				w.Kill(m)
				destroyed = true
			}
		}
		if destroyed {
			w.Kill(laser)
			s.Score++
			w.Spawn(object.NewExplosion(explosion, laser.Rect().MidTop(), snd))
		}
	}
	return hit
}
