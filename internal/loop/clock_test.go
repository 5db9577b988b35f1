package loop

import (
	"testing"
	"time"

	"github.com/tomz197/spaceshooter/internal/loop/config"
)

type fakeTime struct {
	now   time.Time
	slept []time.Duration
}

func (f *fakeTime) Now() time.Time { return f.now }

func (f *fakeTime) Sleep(d time.Duration) {
	f.slept = append(f.slept, d)
	f.now = f.now.Add(d)
}

func TestClockWaitsForFrame(t *testing.T) {
	ft := &fakeTime{now: time.Unix(0, 0)}
	c := newClock(50, ft.Now, ft.Sleep)

	ft.now = ft.now.Add(5 * time.Millisecond)
	if dt := c.Tick(); dt != 20*time.Millisecond {
		t.Fatalf("dt = %v, want 20ms", dt)
	}
	if len(ft.slept) != 1 || ft.slept[0] != 15*time.Millisecond {
		t.Fatalf("slept %v", ft.slept)
	}
}

func TestClockDoesNotSleepWhenLate(t *testing.T) {
	ft := &fakeTime{now: time.Unix(0, 0)}
	c := newClock(50, ft.Now, ft.Sleep)

	ft.now = ft.now.Add(30 * time.Millisecond)
	if dt := c.Tick(); dt != 30*time.Millisecond {
		t.Fatalf("dt = %v, want 30ms", dt)
	}
	if len(ft.slept) != 0 {
		t.Fatalf("slept %v", ft.slept)
	}
}

func TestClockClampsStall(t *testing.T) {
	ft := &fakeTime{now: time.Unix(0, 0)}
	c := newClock(60, ft.Now, ft.Sleep)

	ft.now = ft.now.Add(2 * time.Second)
	if dt := c.Tick(); dt != config.MaxDelta {
		t.Fatalf("dt = %v, want %v", dt, config.MaxDelta)
	}
	// The stall is not carried into the next frame.
	ft.now = ft.now.Add(20 * time.Millisecond)
	if dt := c.Tick(); dt != 20*time.Millisecond {
		t.Fatalf("dt = %v, want 20ms", dt)
	}
}

func TestTimerCarriesRemainder(t *testing.T) {
	tm := NewTimer(500 * time.Millisecond)
	steps := []struct {
		dt   time.Duration
		want int
	}{
		{300 * time.Millisecond, 0},
		{300 * time.Millisecond, 1},
		{1100 * time.Millisecond, 2},
		{299 * time.Millisecond, 0},
		{1 * time.Millisecond, 1},
	}
	for i, s := range steps {
		if got := tm.Advance(s.dt); got != s.want {
			t.Fatalf("step %d: fired %d, want %d", i, got, s.want)
		}
	}
}

func TestTimerReset(t *testing.T) {
	tm := NewTimer(500 * time.Millisecond)
	tm.Advance(400 * time.Millisecond)
	tm.Reset()
	if got := tm.Advance(400 * time.Millisecond); got != 0 {
		t.Fatalf("fired %d after reset", got)
	}
}
