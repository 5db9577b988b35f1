package window

import (
	"bytes"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/tomz197/spaceshooter/internal/sound"
)

// Audio plays the synthesized effects through ebiten's audio context.
// The PCM for every effect is rendered once up front.
type Audio struct {
	ctx     *audio.Context
	effects map[sound.ID][]byte
	music   []byte
	loop    *audio.Player
}

var _ sound.Player = (*Audio)(nil)

// NewAudio renders the effects and music at the given volumes.
func NewAudio(musicVolume, effectVolume float64) *Audio {
	a := &Audio{
		ctx:     audio.NewContext(int(sound.SampleRate)),
		effects: make(map[sound.ID][]byte),
		music:   sound.PCM(sound.Music(musicVolume)),
	}
	for _, id := range []sound.ID{sound.Laser, sound.Explosion, sound.Damage} {
		a.effects[id] = sound.PCM(sound.Effect(id, effectVolume))
	}
	return a
}

// Play starts a one-shot player for id.
func (a *Audio) Play(id sound.ID) {
	pcm, ok := a.effects[id]
	if !ok {
		return
	}
	a.ctx.NewPlayerFromBytes(pcm).Play()
}

// PlayMusic starts the background loop once.
func (a *Audio) PlayMusic() {
	if a.loop != nil {
		return
	}
	loop := audio.NewInfiniteLoop(bytes.NewReader(a.music), int64(len(a.music)))
	p, err := a.ctx.NewPlayer(loop)
	if err != nil {
		return
	}
	a.loop = p
	a.loop.Play()
}

// Close stops the music.
func (a *Audio) Close() {
	if a.loop != nil {
		a.loop.Close()
		a.loop = nil
	}
}
