// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report presses (and auto-repeat), never releases.
const keyHoldDuration = 60 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
	Fire  bool // Also starts a new game from the menu
	Quit  bool
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
	fire  time.Time
	quit  time.Time

	// pending holds the start of an escape sequence cut off at the end of
	// the previous drain.
	pending []byte
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	done   chan struct{}
	exited chan struct{}
	closed bool
	state  keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The stream reports Quit once r is exhausted.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:     make(chan byte, 128),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go func() {
		defer close(s.exited)
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Stop releases the reader goroutine once nobody drains the stream.
// A goroutine blocked inside ReadByte exits on its next byte or error.
func (s *Stream) Stop() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// ReadInput drains all available bytes from the stream (non-blocking)
// and returns the key state as of now.
func ReadInput(s *Stream) Input {
	now := time.Now()
	var buf []byte

	// Drain all available bytes
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	s.state.apply(buf, now)
	in := s.state.snapshot(now)
	if s.closed {
		in.Quit = true
	}
	return in
}

// apply parses the collected bytes and updates key state timestamps.
// Escape sequences are consumed whole; only the arrow keys (CSI or SS3,
// with or without modifier parameters) map to input. A sequence cut off at
// the end of buf is kept for the next call, and an ESC that is still alone
// on the following call is the Esc key.
func (st *keyState) apply(buf []byte, now time.Time) {
	if len(st.pending) > 0 {
		buf = append(st.pending, buf...)
		st.pending = nil
		if len(buf) == 1 {
			// Nothing followed the ESC since the last drain.
			st.quit = now
			return
		}
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			st.key(b, now)
			continue
		}

		n, final, complete := escapeSequence(buf[i:])
		if !complete {
			st.pending = append([]byte(nil), buf[i:]...)
			return
		}
		if n == 1 {
			st.quit = now
			continue
		}
		st.arrow(final, now)
		i += n - 1
	}
}

// escapeSequence measures the escape sequence at the start of b (b[0] is ESC).
// It returns the sequence length and its final byte. complete is false when b
// ends before the sequence does. A lone ESC, or one followed by a byte that
// does not open CSI or SS3, has length 1.
func escapeSequence(b []byte) (n int, final byte, complete bool) {
	if len(b) == 1 {
		return 1, 0, false
	}
	switch b[1] {
	case 'O':
		// SS3: ESC O <final>
		if len(b) < 3 {
			return 2, 0, false
		}
		return 3, b[2], true
	case '[':
		// CSI: ESC [ <parameter 0x30-0x3f>* <intermediate 0x20-0x2f>* <final 0x40-0x7e>
		for j := 2; j < len(b); j++ {
			c := b[j]
			if c >= 0x40 && c <= 0x7e {
				return j + 1, c, true
			}
			if c < 0x20 || c > 0x3f {
				// Malformed; drop what was read so far.
				return j, 0, true
			}
		}
		return len(b), 0, false
	default:
		return 1, 0, true
	}
}

func (st *keyState) arrow(final byte, now time.Time) {
	switch final {
	case 'A':
		st.up = now
	case 'B':
		st.down = now
	case 'C':
		st.right = now
	case 'D':
		st.left = now
	}
}

func (st *keyState) key(b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		st.quit = now
	case 'a', 'A', 'h', 'H':
		st.left = now
	case 'd', 'D', 'l', 'L':
		st.right = now
	case 'w', 'W', 'k', 'K':
		st.up = now
	case 's', 'S', 'j', 'J':
		st.down = now
	case ' ', '\n', '\r':
		st.fire = now
	}
}

// snapshot builds input from key state - keys are "pressed" if seen within hold duration.
func (st *keyState) snapshot(now time.Time) Input {
	held := func(t time.Time) bool {
		return !t.IsZero() && now.Sub(t) < keyHoldDuration
	}
	return Input{
		Left:  held(st.left),
		Right: held(st.right),
		Up:    held(st.up),
		Down:  held(st.down),
		Fire:  held(st.fire),
		Quit:  held(st.quit),
	}
}
