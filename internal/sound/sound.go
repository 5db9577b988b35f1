// Package sound synthesizes and plays the game's sound effects and music.
package sound

import "io"

// ID identifies a one-shot sound effect.
type ID int

const (
	Laser ID = iota
	Explosion
	Damage
)

func (id ID) String() string {
	switch id {
	case Laser:
		return "laser"
	case Explosion:
		return "explosion"
	case Damage:
		return "damage"
	default:
		return "unknown"
	}
}

// Player plays effects fire-and-forget and loops background music.
type Player interface {
	Play(id ID)
	PlayMusic()
	Close()
}

// Nop discards every sound.
type Nop struct{}

func (Nop) Play(ID)    {}
func (Nop) PlayMusic() {}
func (Nop) Close()     {}

// Bell rings the terminal bell on damage. Used where there is no audio device,
// such as SSH sessions. Writes happen on the caller's goroutine.
type Bell struct {
	w io.Writer
}

// NewBell returns a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Play implements Player.
func (b *Bell) Play(id ID) {
	if id == Damage {
		_, _ = io.WriteString(b.w, "\a")
	}
}

func (b *Bell) PlayMusic() {}
func (b *Bell) Close()     {}
