// Package loop provides the game state machine, the per-frame update and
// draw passes, and the terminal run loop.
package loop

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spaceshooter/internal/input"
	"github.com/tomz197/spaceshooter/internal/loop/config"
	"github.com/tomz197/spaceshooter/internal/object"
	"github.com/tomz197/spaceshooter/internal/score"
	"github.com/tomz197/spaceshooter/internal/sound"
	"github.com/tomz197/spaceshooter/internal/sprite"
)

// State represents the current game phase.
type State int

const (
	StateInactive State = iota // Menu / game-over screen
	StateActive                // Playing
)

func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateActive:
		return "active"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session holds the score and health of the current (or last) play-through.
type Session struct {
	Score     int
	Health    int
	HighScore int
}

// Options configures a Game.
type Options struct {
	Assets *sprite.Assets // Required
	Store  score.Store    // Required
	Sound  sound.Player   // Defaults to sound.Nop
	Logger *log.Logger    // Defaults to a discarding logger
	Rand   *rand.Rand     // Defaults to a time-seeded source
}

// Game owns one game: the state machine, the session and every entity.
// It holds no references to a terminal or window; front-ends feed it input
// and a delta each frame and hand it a surface to draw on.
type Game struct {
	assets *sprite.Assets
	store  score.Store
	sound  sound.Player
	logger *log.Logger
	rng    *rand.Rand

	screen  object.Screen
	state   State
	session Session
	world   World
	player  *object.Player
	spawn   Timer
	now     time.Duration // Game clock, advanced only while active
	armed   bool          // Fire may start a session; cleared at game over until fire is released
	done    bool
}

// NewGame creates a game in the inactive state, reads the stored high score
// and starts the background music.
func NewGame(opts Options) (*Game, error) {
	if opts.Assets == nil {
		return nil, errors.New("loop: assets are required")
	}
	if opts.Store == nil {
		return nil, errors.New("loop: score store is required")
	}
	if opts.Sound == nil {
		opts.Sound = sound.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	high, err := opts.Store.LoadAndMaybeUpdate(0)
	if err != nil {
		return nil, fmt.Errorf("read high score: %w", err)
	}

	g := &Game{
		assets:  opts.Assets,
		store:   opts.Store,
		sound:   opts.Sound,
		logger:  opts.Logger,
		rng:     opts.Rand,
		screen:  object.NewScreen(config.ScreenWidth, config.ScreenHeight),
		state:   StateInactive,
		armed:   true,
		session: Session{Health: config.InitialHealth, HighScore: high},
		spawn:   NewTimer(config.MeteorSpawnInterval),
	}
	g.sound.PlayMusic()
	return g, nil
}

// Update advances the game by one frame. dt is clamped to config.MaxDelta.
// A quit input is honoured after the frame completes; see Done.
func (g *Game) Update(in input.Input, dt time.Duration) error {
	if in.Quit {
		g.done = true
	}
	dt = max(0, min(dt, config.MaxDelta))

	switch g.state {
	case StateInactive:
		switch {
		case !in.Fire:
			g.armed = true
		case g.armed:
			g.start()
		}
	case StateActive:
		if err := g.updateActive(in, dt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) updateActive(in input.Input, dt time.Duration) error {
	g.now += dt
	for range g.spawn.Advance(dt) {
		g.world.Add(object.NewMeteor(g.assets.MeteorRotations, g.screen, g.rng))
	}

	ctx := object.UpdateContext{
		Delta:  dt,
		Now:    g.now,
		Input:  in,
		Screen: g.screen,
		Sound:  g.sound,
	}
	if err := g.world.Update(ctx); err != nil {
		return fmt.Errorf("update world: %w", err)
	}

	resolveCollisions(&g.world, g.player, &g.session, g.sound, g.assets.Explosion)
	g.world.FlushSpawned()

	if g.session.Health <= 0 {
		g.end()
	}
	return nil
}

// start begins a new session: fresh score, health, stars and player.
func (g *Game) start() {
	g.session.Score = 0
	g.session.Health = config.InitialHealth

	g.world.Clear()
	for range config.StarCount {
		g.world.Add(object.NewStar(g.assets.Star, g.screen, g.rng))
	}
	g.player = object.NewPlayer(g.assets.Player, g.assets.Laser, g.screen)
	g.world.Add(g.player)

	g.spawn.Reset()
	g.now = 0
	g.state = StateActive
	g.logger.Info("session started", "high_score", g.session.HighScore)
}

// end finishes the session. The rest of the scene stays frozen behind the menu.
func (g *Game) end() {
	g.world.Kill(g.player)
	g.player = nil
	g.state = StateInactive
	g.armed = false
	g.persist()
	g.logger.Info("session ended", "score", g.session.Score, "high_score", g.session.HighScore)
}

// persist offers the session score to the store. A failed write is logged
// and the in-memory high score is still raised.
func (g *Game) persist() {
	high, err := g.store.LoadAndMaybeUpdate(g.session.Score)
	if err != nil {
		g.logger.Error("failed to save high score", "score", g.session.Score, "err", err)
		high = max(g.session.HighScore, g.session.Score)
	}
	g.session.HighScore = high
}

// Close ends a session still in progress so its score is not lost.
func (g *Game) Close() {
	if g.state == StateActive {
		g.persist()
		g.logger.Info("session abandoned", "score", g.session.Score, "high_score", g.session.HighScore)
	}
}

// Draw renders the current frame onto s.
func (g *Game) Draw(s object.Surface) error {
	s.Fill(backgroundColor)
	ctx := object.DrawContext{Surface: s}
	if err := g.world.Draw(ctx); err != nil {
		return fmt.Errorf("draw world: %w", err)
	}

	switch g.state {
	case StateActive:
		g.drawHUD(ctx)
	case StateInactive:
		g.drawMenu(ctx)
	}
	return nil
}

// State returns the current phase.
func (g *Game) State() State { return g.state }

// Session returns a copy of the session state.
func (g *Game) Session() Session { return g.session }

// World returns the entity groups.
func (g *Game) World() *World { return &g.world }

// Player returns the current ship, or nil while inactive.
func (g *Game) Player() *object.Player { return g.player }

// Screen returns the logical play-field size.
func (g *Game) Screen() object.Screen { return g.screen }

// Now returns the game clock.
func (g *Game) Now() time.Duration { return g.now }

// Done reports whether a quit was requested.
func (g *Game) Done() bool { return g.done }
