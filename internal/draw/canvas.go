// Package draw renders the game onto an ANSI terminal.
package draw

import (
	"image/color"
	"io"
	"math"
	"unicode/utf8"

	"github.com/tomz197/spaceshooter/internal/object"
	"github.com/tomz197/spaceshooter/internal/physics"
	"github.com/tomz197/spaceshooter/internal/sprite"
)

// Half-block glyph: foreground paints the top sub-pixel, background the bottom.
const BlockUpperHalf = '▀'

// cell is one terminal character as it was (or will be) printed.
type cell struct {
	top, bottom color.RGBA
	ch          rune // 0 for a half-block cell
	fg          color.RGBA
}

type textItem struct {
	col, row int
	s        string
	c        color.RGBA
}

// Canvas is a colour drawing buffer with 2x vertical resolution using
// half-block characters. Game objects draw in logical coordinates which are
// scaled to the terminal. Render only rewrites cells that changed since the
// previous frame.
type Canvas struct {
	termWidth      int          // Actual terminal columns
	termHeight     int          // Actual terminal rows
	subPixelHeight int          // termHeight * 2
	pixels         []color.RGBA // Flat slice: [y * termWidth + x]

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	texts []textItem // Overlay queued for the next Render
	cells []cell     // Scratch buffer for the frame being rendered
	prev  []cell     // What the terminal currently shows
	force bool       // Repaint every cell on the next Render

	out     *ChunkWriter
	outDest io.Writer
}

var _ object.Surface = (*Canvas)(nil)

// NewCanvas creates a canvas that scales from logical coordinates to the
// given terminal size.
func NewCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{logicalWidth: logicalWidth, logicalHeight: logicalHeight}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping
// logical size. A size change forces a full repaint.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]color.RGBA, c.subPixelHeight*termWidth)
		c.cells = make([]cell, termWidth*termHeight)
		c.prev = make([]cell, termWidth*termHeight)
		c.force = true
	}
	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// Fill sets every pixel to col.
func (c *Canvas) Fill(col color.Color) {
	rgba := toRGBA(col)
	for i := range c.pixels {
		c.pixels[i] = rgba
	}
}

// pixelSpan maps the logical interval [from, to) to pixel indices, keeping
// at least one pixel for any non-empty interval.
func pixelSpan(from, to, scale float64, limit int) (int, int) {
	p0 := int(math.Round(from * scale))
	p1 := int(math.Round(to * scale))
	if p1 <= p0 && to > from {
		p1 = p0 + 1
	}
	return max(p0, 0), min(p1, limit)
}

// FillRect fills r, blending translucent colours over what is there.
func (c *Canvas) FillRect(r physics.Rect, col color.Color) {
	src := color.NRGBAModel.Convert(col).(color.NRGBA)
	if src.A == 0 {
		return
	}
	x0, x1 := pixelSpan(r.Left(), r.Right(), c.scaleX, c.termWidth)
	y0, y1 := pixelSpan(r.Top(), r.Bottom(), c.scaleY, c.subPixelHeight)
	for y := y0; y < y1; y++ {
		row := c.pixels[y*c.termWidth:]
		for x := x0; x < x1; x++ {
			row[x] = blend(row[x], src)
		}
	}
}

// StrokeRect outlines r with a border width logical units thick, drawn inside r.
func (c *Canvas) StrokeRect(r physics.Rect, width float64, col color.Color) {
	width = min(width, r.W/2, r.H/2)
	if width <= 0 {
		return
	}
	c.FillRect(physics.Rect{X: r.X, Y: r.Y, W: r.W, H: width}, col)
	c.FillRect(physics.Rect{X: r.X, Y: r.Bottom() - width, W: r.W, H: width}, col)
	c.FillRect(physics.Rect{X: r.X, Y: r.Y + width, W: width, H: r.H - 2*width}, col)
	c.FillRect(physics.Rect{X: r.Right() - width, Y: r.Y + width, W: width, H: r.H - 2*width}, col)
}

// DrawImage blits img with its top-left corner at logical (x, y), sampling
// the nearest source pixel for every terminal pixel it covers.
func (c *Canvas) DrawImage(img *sprite.Image, x, y float64) {
	pix := img.Pixels()
	w, h := img.Width(), img.Height()
	x0, x1 := pixelSpan(x, x+float64(w), c.scaleX, c.termWidth)
	y0, y1 := pixelSpan(y, y+float64(h), c.scaleY, c.subPixelHeight)

	for py := y0; py < y1; py++ {
		sy := int((float64(py)+0.5)/c.scaleY - y)
		if sy < 0 || sy >= h {
			continue
		}
		src := pix.Pix[sy*pix.Stride:]
		row := c.pixels[py*c.termWidth:]
		for px := x0; px < x1; px++ {
			sx := int((float64(px)+0.5)/c.scaleX - x)
			if sx < 0 || sx >= w {
				continue
			}
			s := src[sx*4 : sx*4+4 : sx*4+4]
			if s[3] == 0 {
				continue
			}
			row[px] = blend(row[px], color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]})
		}
	}
}

// DrawText queues s centred on the logical point center. Text is drawn as
// terminal characters on top of the pixels during Render.
func (c *Canvas) DrawText(s string, center physics.Vec2, col color.Color) {
	n := utf8.RuneCountInString(s)
	px := int(math.Round(center.X * c.scaleX))
	py := int(math.Round(center.Y * c.scaleY))
	c.texts = append(c.texts, textItem{
		col: px - n/2,
		row: py / 2,
		s:   s,
		c:   toRGBA(col),
	})
}

// Render writes the changed cells to w and resets the text overlay.
func (c *Canvas) Render(w io.Writer) error {
	if c.out == nil || c.outDest != w {
		c.out = NewChunkWriter(w)
		c.outDest = w
	}
	c.compose()

	cw := c.out
	cw.ResetColor()
	lastRow, lastCol := -1, -1
	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			i := row*c.termWidth + col
			cur := c.cells[i]
			if !c.force && cur == c.prev[i] {
				continue
			}
			if row != lastRow || col != lastCol+1 {
				cw.MoveCursor(col+1, row+1)
			}
			if cur.ch != 0 {
				cw.SetColor(cur.fg, cur.top)
				cw.WriteRune(cur.ch)
			} else {
				cw.SetColor(cur.top, cur.bottom)
				cw.WriteRune(BlockUpperHalf)
			}
			lastRow, lastCol = row, col
		}
	}
	cw.WriteString(sgrReset)
	cw.ResetColor()

	c.prev, c.cells = c.cells, c.prev
	c.texts = c.texts[:0]
	c.force = false
	return cw.Flush()
}

// compose folds the pixel buffer and text overlay into cells.
func (c *Canvas) compose() {
	for row := 0; row < c.termHeight; row++ {
		top := c.pixels[row*2*c.termWidth:]
		bottom := c.pixels[(row*2+1)*c.termWidth:]
		cells := c.cells[row*c.termWidth:]
		for col := 0; col < c.termWidth; col++ {
			cells[col] = cell{top: top[col], bottom: bottom[col]}
		}
	}
	for _, t := range c.texts {
		if t.row < 0 || t.row >= c.termHeight {
			continue
		}
		col := t.col
		for _, r := range t.s {
			if col >= 0 && col < c.termWidth {
				cl := &c.cells[t.row*c.termWidth+col]
				cl.ch = r
				cl.fg = t.c
			}
			col++
		}
	}
}

// blend composites src over dst.
func blend(dst color.RGBA, src color.NRGBA) color.RGBA {
	if src.A == 0xff {
		return color.RGBA{R: src.R, G: src.G, B: src.B, A: 0xff}
	}
	a := uint32(src.A)
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a) + 127) / 255)
	}
	return color.RGBA{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 0xff}
}

func toRGBA(c color.Color) color.RGBA {
	return blend(color.RGBA{A: 0xff}, color.NRGBAModel.Convert(c).(color.NRGBA))
}
