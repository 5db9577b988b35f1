package loop

import (
	"time"

	"github.com/tomz197/spaceshooter/internal/loop/config"
)

// Clock paces the loop to a target frame time and reports each frame's delta.
type Clock struct {
	frame time.Duration
	max   time.Duration
	last  time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewClock returns a clock targeting fps frames per second.
func NewClock(fps int) *Clock {
	return newClock(fps, time.Now, time.Sleep)
}

func newClock(fps int, now func() time.Time, sleep func(time.Duration)) *Clock {
	if fps <= 0 {
		fps = config.TargetFPS
	}
	return &Clock{
		frame: time.Second / time.Duration(fps),
		max:   config.MaxDelta,
		last:  now(),
		now:   now,
		sleep: sleep,
	}
}

// Tick blocks until at least one frame time has passed since the previous
// tick and returns the elapsed time, clamped to config.MaxDelta.
func (c *Clock) Tick() time.Duration {
	if elapsed := c.now().Sub(c.last); elapsed < c.frame {
		c.sleep(c.frame - elapsed)
	}
	current := c.now()
	delta := current.Sub(c.last)
	c.last = current
	return min(delta, c.max)
}

// Timer fires every interval of simulated time.
type Timer struct {
	interval time.Duration
	elapsed  time.Duration
}

// NewTimer returns a timer firing every interval.
func NewTimer(interval time.Duration) Timer {
	return Timer{interval: interval}
}

// Advance adds dt to the timer and returns how many intervals completed.
// The remainder carries over to the next call.
func (t *Timer) Advance(dt time.Duration) int {
	if t.interval <= 0 {
		return 0
	}
	t.elapsed += dt
	n := int(t.elapsed / t.interval)
	t.elapsed -= time.Duration(n) * t.interval
	return n
}

// Reset discards any partial interval.
func (t *Timer) Reset() {
	t.elapsed = 0
}
