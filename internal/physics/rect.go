package physics

// Rect is an axis-aligned rectangle with float position.
// X and Y are the top-left corner; anchors mirror the usual sprite rect helpers.
type Rect struct {
	X, Y float64
	W, H float64
}

// RectAtCenter returns a w×h rect centered on c.
func RectAtCenter(w, h float64, c Vec2) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// RectAtMidBottom returns a w×h rect whose bottom edge midpoint is p.
func RectAtMidBottom(w, h float64, p Vec2) Rect {
	return Rect{X: p.X - w/2, Y: p.Y - h, W: w, H: h}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the midpoint of the rect.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// MidTop returns the midpoint of the top edge.
func (r Rect) MidTop() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y}
}

// MidBottom returns the midpoint of the bottom edge.
func (r Rect) MidBottom() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H}
}

// SetLeft moves the rect so its left edge is at x.
func (r *Rect) SetLeft(x float64) { r.X = x }

// SetRight moves the rect so its right edge is at x.
func (r *Rect) SetRight(x float64) { r.X = x - r.W }

// SetCenter moves the rect so its center is at c.
func (r *Rect) SetCenter(c Vec2) {
	r.X = c.X - r.W/2
	r.Y = c.Y - r.H/2
}

// Move translates the rect by d.
func (r *Rect) Move(d Vec2) {
	r.X += d.X
	r.Y += d.Y
}

// Resize changes the size while keeping the center in place.
func (r *Rect) Resize(w, h float64) {
	c := r.Center()
	r.W = w
	r.H = h
	r.SetCenter(c)
}

// Inflate returns a copy grown by dw and dh around the same center.
func (r Rect) Inflate(dw, dh float64) Rect {
	return RectAtCenter(r.W+dw, r.H+dh, r.Center())
}

// Intersects reports whether the two rects overlap with positive area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}
