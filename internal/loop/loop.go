package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/tomz197/spaceshooter/internal/draw"
	"github.com/tomz197/spaceshooter/internal/input"
	"github.com/tomz197/spaceshooter/internal/loop/config"
)

// Fallback terminal size when the real one cannot be read.
const (
	fallbackCols = 80
	fallbackRows = 24
)

// RunOptions configures the terminal loop.
type RunOptions struct {
	TermSizeFunc draw.TermSizeFunc // Defaults to draw.DefaultTermSizeFunc
	FPS          int               // Defaults to config.TargetFPS
}

// Run drives g on a terminal with the standard Input → Update → Draw cycle.
// It returns when the player quits, r is closed or ctx is cancelled. A
// session still in progress is saved on the way out.
func Run(ctx context.Context, g *Game, r *bufio.Reader, w io.Writer, opts RunOptions) error {
	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = config.TargetFPS
	}

	stream := input.StartStream(r)
	defer stream.Stop()
	defer g.Close()

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	cols, rows, err := draw.TerminalSizeRawWith(sizeFunc)
	if err != nil {
		cols, rows = fallbackCols, fallbackRows
	}
	surface := draw.NewCanvas(cols, rows, config.ScreenWidth, config.ScreenHeight)
	clock := NewClock(fps)

	for !g.Done() {
		if ctx.Err() != nil {
			break
		}
		dt := clock.Tick()

		// ===== INPUT + UPDATE PHASE =====
		in := input.ReadInput(stream)
		if err := g.Update(in, dt); err != nil {
			return err
		}

		// ===== DRAW PHASE =====
		if cols, rows, err := draw.TerminalSizeRawWith(sizeFunc); err == nil {
			surface.Resize(cols, rows)
		}
		if err := g.Draw(surface); err != nil {
			return err
		}
		if err := surface.Render(w); err != nil {
			return fmt.Errorf("render frame: %w", err)
		}
	}

	draw.ClearScreen(w)
	return nil
}
