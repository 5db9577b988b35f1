package sprite

import "math"

// RotationCache holds a base image pre-rotated at evenly spaced angles,
// so per-frame rotation is a lookup instead of a resample.
type RotationCache struct {
	frames []*Image
	step   float64 // degrees between frames
}

// NewRotationCache pre-rotates base at steps evenly spaced angles over a full turn.
func NewRotationCache(base *Image, steps int) *RotationCache {
	if steps < 1 {
		steps = 1
	}
	step := 360 / float64(steps)
	frames := make([]*Image, steps)
	frames[0] = base
	for i := 1; i < steps; i++ {
		frames[i] = Rotate(base, float64(i)*step)
	}
	return &RotationCache{frames: frames, step: step}
}

// At returns the frame nearest to deg degrees (any value, wrapped to one turn).
func (c *RotationCache) At(deg float64) *Image {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	idx := int(math.Round(deg/c.step)) % len(c.frames)
	return c.frames[idx]
}

// Len returns the number of cached angles.
func (c *RotationCache) Len() int {
	return len(c.frames)
}
