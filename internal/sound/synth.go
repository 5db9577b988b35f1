package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate all sounds are synthesized at.
const SampleRate = beep.SampleRate(44100)

// Format describes the synthesized stream.
var Format = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is an oscillator whose frequency glides linearly from freq to endFreq.
type tone struct {
	freq, endFreq float64
	phase         float64
	duration      int
	position      int
	wave          WaveType
	rng           *rand.Rand
}

func newTone(freq, endFreq float64, d time.Duration, wave WaveType) *tone {
	return &tone{
		freq:     freq,
		endFreq:  endFreq,
		duration: SampleRate.N(d),
		wave:     wave,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + int64(d))),
	}
}

func (o *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		f := o.freq + (o.endFreq-o.freq)*t
		o.phase += f / float64(SampleRate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *tone) Err() error { return nil }

// decay multiplies a stream by exp(-rate*t).
type decay struct {
	streamer beep.Streamer
	rate     float64
	position int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(d.position) / float64(SampleRate)
		g := math.Exp(-d.rate * t)
		samples[i][0] *= g
		samples[i][1] *= g
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume wraps s in a linear gain; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Effect synthesizes the one-shot sound for id at the given volume (0..1).
func Effect(id ID, vol float64) beep.Streamer {
	var s beep.Streamer
	switch id {
	case Laser:
		s = &decay{streamer: newTone(1400, 300, 140*time.Millisecond, WaveSquare), rate: 14}
		vol *= 0.25
	case Explosion:
		s = beep.Mix(
			&decay{streamer: newTone(0, 0, 600*time.Millisecond, WaveNoise), rate: 7},
			&decay{streamer: newTone(90, 40, 600*time.Millisecond, WaveSine), rate: 5},
		)
		vol *= 0.35
	case Damage:
		s = &decay{streamer: newTone(160, 70, 300*time.Millisecond, WaveSaw), rate: 6}
		vol *= 0.4
	default:
		return beep.Silence(0)
	}
	return newVolume(s, vol)
}

// musicNotes is the arpeggio the background loop is built from (A minor, Hz).
var musicNotes = []float64{220.00, 261.63, 329.63, 440.00, 392.00, 329.63, 261.63, 246.94}

const musicNoteLength = 260 * time.Millisecond

// Music synthesizes one pass of the background loop at the given volume.
func Music(vol float64) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(musicNotes))
	for _, f := range musicNotes {
		lead := &decay{streamer: newTone(f, f, musicNoteLength, WaveSine), rate: 4}
		bass := &decay{streamer: newTone(f/2, f/2, musicNoteLength, WaveSaw), rate: 6}
		notes = append(notes, beep.Mix(newVolume(lead, 0.5), newVolume(bass, 0.12)))
	}
	return newVolume(beep.Seq(notes...), vol*0.3)
}

// Loop buffers one pass of s and replays it forever.
func Loop(s beep.Streamer) beep.Streamer {
	buf := beep.NewBuffer(Format)
	buf.Append(s)
	return beep.Iterate(func() beep.Streamer {
		return buf.Streamer(0, buf.Len())
	})
}

// PCM renders a finite stream as signed 16-bit little-endian stereo frames.
func PCM(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 1024)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				v = math.Max(-1, math.Min(1, v))
				x := int16(v * math.MaxInt16)
				out = append(out, byte(x), byte(x>>8))
			}
		}
		if !ok || n == 0 {
			return out
		}
	}
}
