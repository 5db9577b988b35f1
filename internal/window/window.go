package window

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/spaceshooter/internal/input"
	"github.com/tomz197/spaceshooter/internal/loop"
	"github.com/tomz197/spaceshooter/internal/loop/config"
)

// Title is the window caption.
const Title = "Space Shooter"

// Adapter implements ebiten.Game on top of a loop.Game.
type Adapter struct {
	game    *loop.Game
	surface *Surface
	logger  *log.Logger
}

var _ ebiten.Game = (*Adapter)(nil)

// NewAdapter wraps g for ebiten.
func NewAdapter(g *loop.Game, logger *log.Logger) *Adapter {
	return &Adapter{game: g, surface: NewSurface(), logger: logger}
}

// Update runs one fixed tick. It ends the run loop once the game is done.
func (a *Adapter) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())
	if err := a.game.Update(readInput(), dt); err != nil {
		return err
	}
	if a.game.Done() {
		return ebiten.Termination
	}
	return nil
}

func (a *Adapter) Draw(screen *ebiten.Image) {
	a.surface.Target(screen)
	if err := a.game.Draw(a.surface); err != nil {
		a.logger.Error("draw failed", "err", err)
	}
}

// Layout keeps the logical resolution; ebiten scales it to the window.
func (a *Adapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// Run opens the window and blocks until it is closed or the player quits.
func Run(g *loop.Game, logger *log.Logger) error {
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle(Title)
	ebiten.SetTPS(config.TargetFPS)
	defer g.Close()
	return ebiten.RunGame(NewAdapter(g, logger))
}

func readInput() input.Input {
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	return input.Input{
		Left:  pressed(ebiten.KeyArrowLeft, ebiten.KeyA),
		Right: pressed(ebiten.KeyArrowRight, ebiten.KeyD),
		Up:    pressed(ebiten.KeyArrowUp, ebiten.KeyW),
		Down:  pressed(ebiten.KeyArrowDown, ebiten.KeyS),
		Fire:  pressed(ebiten.KeySpace, ebiten.KeyEnter),
		Quit:  pressed(ebiten.KeyEscape, ebiten.KeyQ),
	}
}
