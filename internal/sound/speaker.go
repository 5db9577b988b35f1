package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SpeakerOptions sets the independent music and effect volumes (0..1).
type SpeakerOptions struct {
	MusicVolume  float64
	EffectVolume float64
}

// Speaker plays sounds on the local audio device through a single beep mixer.
type Speaker struct {
	mu          sync.Mutex
	opts        SpeakerOptions
	mixer       *beep.Mixer
	music       *beep.Ctrl
	initialized bool
}

var _ Player = (*Speaker)(nil)

// NewSpeaker creates an uninitialized speaker; it is silent until Init succeeds.
func NewSpeaker(opts SpeakerOptions) *Speaker {
	return &Speaker{opts: opts, mixer: &beep.Mixer{}}
}

// Init opens the audio device. Calling it again is a no-op.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play implements Player.
func (s *Speaker) Play(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	st := Effect(id, s.opts.EffectVolume)
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// PlayMusic implements Player. Music already playing is left running.
func (s *Speaker) PlayMusic() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.music != nil {
		return
	}
	s.music = &beep.Ctrl{Streamer: Loop(Music(s.opts.MusicVolume))}
	speaker.Lock()
	s.mixer.Add(s.music)
	speaker.Unlock()
}

// Close stops all sounds and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	if s.music != nil {
		s.music.Paused = true
	}
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()

	s.music = nil
	s.initialized = false
}
