package sound

import (
	"bytes"
	"testing"
)

func TestEffectsAreFiniteAndAudible(t *testing.T) {
	for _, id := range []ID{Laser, Explosion, Damage} {
		pcm := PCM(Effect(id, 1))
		if len(pcm) == 0 || len(pcm)%4 != 0 {
			t.Fatalf("%s: pcm length %d", id, len(pcm))
		}
		if bytes.Count(pcm, []byte{0}) == len(pcm) {
			t.Fatalf("%s: silent", id)
		}
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	pcm := PCM(Effect(Laser, 0))
	if len(pcm) == 0 {
		t.Fatal("expected samples")
	}
	for _, b := range pcm {
		if b != 0 {
			t.Fatal("zero volume produced sound")
		}
	}
}

func TestMusicPassLength(t *testing.T) {
	pcm := PCM(Music(1))
	frames := len(pcm) / 4
	want := len(musicNotes) * SampleRate.N(musicNoteLength)
	if frames != want {
		t.Fatalf("music frames = %d, want %d", frames, want)
	}
}

func TestLoopRepeats(t *testing.T) {
	one := len(PCM(Effect(Damage, 1))) / 4
	looped := Loop(Effect(Damage, 1))

	buf := make([][2]float64, one*2+10)
	n, ok := looped.Stream(buf)
	if !ok || n <= one {
		t.Fatalf("loop streamed %d/%d ok=%v", n, len(buf), ok)
	}
}

func TestBellRingsOnlyOnDamage(t *testing.T) {
	var out bytes.Buffer
	b := NewBell(&out)
	b.Play(Laser)
	b.Play(Explosion)
	b.PlayMusic()
	b.Play(Damage)
	if out.String() != "\a" {
		t.Fatalf("bell wrote %q", out.String())
	}
}

// Speaker operations must be safe without an audio device.
func TestSpeakerGracefulWithoutInit(t *testing.T) {
	s := NewSpeaker(SpeakerOptions{MusicVolume: 0.5, EffectVolume: 0.5})
	s.Play(Laser)
	s.PlayMusic()
	s.Close()
	Nop{}.Play(Damage)
}
