package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestApplyArrowSequences(t *testing.T) {
	var st keyState
	now := time.Now()
	st.apply([]byte("\x1b[A\x1b[D"), now)

	in := st.snapshot(now)
	if !in.Up || !in.Left || in.Right || in.Down {
		t.Fatalf("unexpected input %+v", in)
	}
	if in.Quit {
		t.Fatal("escape sequence must not be read as a bare Esc")
	}
}

func TestApplyLetterKeys(t *testing.T) {
	var st keyState
	now := time.Now()
	st.apply([]byte("ds "), now)

	in := st.snapshot(now)
	if !in.Right || !in.Down || !in.Fire {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestApplySS3Arrows(t *testing.T) {
	var st keyState
	now := time.Now()
	st.apply([]byte("\x1bOA\x1bOC"), now)

	in := st.snapshot(now)
	if !in.Up || !in.Right || in.Left || in.Down || in.Quit {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestApplyModifiedArrows(t *testing.T) {
	var st keyState
	now := time.Now()
	st.apply([]byte("\x1b[1;5C\x1b[1;2B"), now)

	in := st.snapshot(now)
	if !in.Right || !in.Down || in.Left || in.Up || in.Quit {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestApplyIgnoresOtherSequences(t *testing.T) {
	for _, seq := range []string{"\x1b[H", "\x1b[F", "\x1b[15~", "\x1bOP", "\x1b[200~"} {
		var st keyState
		now := time.Now()
		st.apply([]byte(seq), now)
		st.apply(nil, now)
		if in := st.snapshot(now); in != (Input{}) {
			t.Errorf("%q gave %+v", seq, in)
		}
	}
}

func TestApplySplitArrow(t *testing.T) {
	for _, parts := range [][]string{
		{"\x1b", "[A"},
		{"\x1b[", "A"},
		{"\x1b", "[1;5", "A"},
		{"\x1b", "O", "A"},
	} {
		var st keyState
		now := time.Now()
		for _, p := range parts {
			st.apply([]byte(p), now)
			if st.snapshot(now).Quit {
				t.Fatalf("%q quit after %q", parts, p)
			}
		}
		if in := st.snapshot(now); !in.Up || in.Left {
			t.Errorf("%q gave %+v", parts, in)
		}
	}
}

func TestLoneEscQuitsOnNextDrain(t *testing.T) {
	var st keyState
	now := time.Now()
	st.apply([]byte("\x1b"), now)
	if st.snapshot(now).Quit {
		t.Fatal("a trailing Esc may still start a sequence")
	}
	st.apply(nil, now)
	if !st.snapshot(now).Quit {
		t.Fatal("Esc alone should quit")
	}
}

func TestEscFollowedByKeyQuits(t *testing.T) {
	var st keyState
	now := time.Now()
	st.apply([]byte("\x1bd"), now)
	in := st.snapshot(now)
	if !in.Quit || !in.Right {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, b := range []string{"q", "Q", "\x03"} {
		var st keyState
		now := time.Now()
		st.apply([]byte(b), now)
		if !st.snapshot(now).Quit {
			t.Errorf("%q should quit", b)
		}
	}
}

func TestKeysExpireAfterHold(t *testing.T) {
	var st keyState
	now := time.Now()
	st.apply([]byte("a"), now)

	if !st.snapshot(now.Add(keyHoldDuration / 2)).Left {
		t.Fatal("key should still be held")
	}
	if st.snapshot(now.Add(keyHoldDuration)).Left {
		t.Fatal("key should be released after hold duration")
	}
}

func TestStopReleasesReader(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader(strings.Repeat("a", 1000))))
	s.Stop()
	s.Stop()

	select {
	case <-s.exited:
	case <-time.After(time.Second):
		t.Fatal("reader goroutine still blocked after Stop")
	}
}

func TestClosedStreamQuits(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("")))

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if ReadInput(s).Quit {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("exhausted reader never produced Quit")
}
