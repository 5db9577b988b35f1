package physics

import (
	"math"
	"math/bits"
)

// Mask is a binary occupancy bitmap, one bit per pixel.
// Rows are packed into 64-bit words so overlap tests can compare 64 pixels at a time.
type Mask struct {
	w, h   int
	stride int // words per row
	bits   []uint64
}

// NewMask creates an empty w×h mask.
func NewMask(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	stride := (w + 63) / 64
	return &Mask{
		w:      w,
		h:      h,
		stride: stride,
		bits:   make([]uint64, stride*h),
	}
}

// Size returns the mask dimensions in pixels.
func (m *Mask) Size() (w, h int) {
	return m.w, m.h
}

// Set marks the pixel at (x, y) as solid. Out-of-range coordinates are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return
	}
	m.bits[y*m.stride+x/64] |= 1 << uint(x%64)
}

// get reports whether the pixel at (x, y) is solid.
func (m *Mask) get(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.bits[y*m.stride+x/64]&(1<<uint(x%64)) != 0
}

// count returns the number of solid pixels.
func (m *Mask) count() int {
	n := 0
	for _, w := range m.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// row returns the packed words of row y.
func (m *Mask) row(y int) []uint64 {
	return m.bits[y*m.stride : (y+1)*m.stride]
}

// bitsAt extracts n (<= 64) bits of row starting at bit start.
func bitsAt(row []uint64, start, n int) uint64 {
	word := start / 64
	off := uint(start % 64)
	v := row[word] >> off
	if off != 0 && word+1 < len(row) {
		v |= row[word+1] << (64 - off)
	}
	if n < 64 {
		v &= (1 << uint(n)) - 1
	}
	return v
}

// Overlap reports whether m and o share a solid pixel when o's top-left
// corner sits at (dx, dy) in m's coordinate space.
func (m *Mask) Overlap(o *Mask, dx, dy int) bool {
	x0, x1 := max(0, dx), min(m.w, dx+o.w)
	y0, y1 := max(0, dy), min(m.h, dy+o.h)
	if x0 >= x1 || y0 >= y1 {
		return false
	}

	for y := y0; y < y1; y++ {
		rowM := m.row(y)
		rowO := o.row(y - dy)
		for x := x0; x < x1; x += 64 {
			n := min(64, x1-x)
			if bitsAt(rowM, x, n)&bitsAt(rowO, x-dx, n) != 0 {
				return true
			}
		}
	}
	return false
}

// Collide tests two positioned masks: a bounding-box reject first,
// then the exact bitmap overlap at the rounded offset between the rects.
func Collide(a Rect, am *Mask, b Rect, bm *Mask) bool {
	if am == nil || bm == nil {
		return false
	}
	if !a.Intersects(b) {
		return false
	}
	dx := int(math.Round(b.X - a.X))
	dy := int(math.Round(b.Y - a.Y))
	return am.Overlap(bm, dx, dy)
}
