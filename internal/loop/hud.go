package loop

import (
	"fmt"
	"image/color"
	"strconv"

	"golang.org/x/image/colornames"

	"github.com/tomz197/spaceshooter/internal/loop/config"
	"github.com/tomz197/spaceshooter/internal/object"
	"github.com/tomz197/spaceshooter/internal/physics"
)

var (
	backgroundColor = color.RGBA{R: 0x3a, G: 0x2e, B: 0x3f, A: 0xff}
	textColor       = colornames.Whitesmoke
	borderColor     = colornames.Whitesmoke
	healthColor     = colornames.Crimson
	titleColor      = colornames.Gold
)

// drawHUD draws the score box and health bar over the scene.
func (g *Game) drawHUD(ctx object.DrawContext) {
	w, h := float64(g.screen.Width), float64(g.screen.Height)

	value := strconv.Itoa(g.session.Score)
	center := physics.Vec2{X: w / 2, Y: h - config.ScoreOffsetY}
	object.Text{Center: center, Value: value, Color: textColor}.Draw(ctx)

	box := physics.RectAtCenter(
		float64(len(value))*config.ScoreCharWidth,
		config.ScoreCharWidth*1.5,
		center,
	).Inflate(2*config.ScoreBoxPaddingX, 2*config.ScoreBoxPaddingY)
	ctx.Surface.StrokeRect(box, config.ScoreBoxBorder, borderColor)

	bar := physics.Rect{
		X: config.HealthBarMargin,
		Y: config.HealthBarMargin,
		W: float64(max(g.session.Health, 0)),
		H: config.HealthBarHeight,
	}
	if bar.W > 0 {
		ctx.Surface.FillRect(bar, healthColor)
	}
	bar.W = config.InitialHealth
	ctx.Surface.StrokeRect(bar.Inflate(2*config.HealthBarBorder, 2*config.HealthBarBorder), config.HealthBarBorder, borderColor)
}

// drawMenu draws the title screen, last score, high score and the ship.
func (g *Game) drawMenu(ctx object.DrawContext) {
	w, h := float64(g.screen.Width), float64(g.screen.Height)

	ship := g.assets.MenuShip
	sw, sh := ship.Size()
	ctx.Surface.DrawImage(ship, (w-sw)/2, (h-sh)/2-40)

	lines := []object.Text{
		{Center: physics.Vec2{X: w / 2, Y: 110}, Value: "S P A C E   S H O O T E R", Color: titleColor},
		{Center: physics.Vec2{X: w / 2, Y: h - 190}, Value: "Press SPACE to play", Color: textColor},
		{Center: physics.Vec2{X: w / 2, Y: h - 140}, Value: fmt.Sprintf("Score: %d", g.session.Score), Color: textColor},
		{Center: physics.Vec2{X: w / 2, Y: h - 100}, Value: fmt.Sprintf("High score: %d", g.session.HighScore), Color: textColor},
		{Center: physics.Vec2{X: w / 2, Y: h - 40}, Value: "Arrows/WASD to move, SPACE to shoot, Q to quit", Color: textColor},
	}
	for _, t := range lines {
		t.Draw(ctx)
	}
}
