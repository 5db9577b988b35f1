package object

import (
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/spaceshooter/internal/physics"
	"github.com/tomz197/spaceshooter/internal/sound"
	"github.com/tomz197/spaceshooter/internal/sprite"
)

var testScreen = NewScreen(1280, 720)

type spawnRecorder struct {
	spawned []Object
}

func (s *spawnRecorder) Spawn(obj Object) { s.spawned = append(s.spawned, obj) }

type soundRecorder struct {
	played []sound.ID
}

func (s *soundRecorder) Play(id sound.ID) { s.played = append(s.played, id) }
func (s *soundRecorder) PlayMusic()       {}
func (s *soundRecorder) Close()           {}

func solid(w, h int) *sprite.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return sprite.FromImage(img)
}

func newCtx(dt time.Duration, now time.Duration, in Input) (UpdateContext, *spawnRecorder, *soundRecorder) {
	sp := &spawnRecorder{}
	snd := &soundRecorder{}
	return UpdateContext{
		Delta:   dt,
		Now:     now,
		Input:   in,
		Screen:  testScreen,
		Spawner: sp,
		Sound:   snd,
	}, sp, snd
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestPlayerStartsCentred(t *testing.T) {
	p := NewPlayer(solid(72, 80), solid(10, 42), testScreen)
	if c := p.Rect().Center(); c != (physics.Vec2{X: 640, Y: 360}) {
		t.Fatalf("center = %v", c)
	}
	if !p.CanShoot {
		t.Fatal("new player cannot shoot")
	}
}

func TestPlayerDiagonalMovementIsNormalized(t *testing.T) {
	p := NewPlayer(solid(72, 80), solid(10, 42), testScreen)
	start := p.Rect().Center()

	ctx, _, _ := newCtx(100*time.Millisecond, 0, Input{Right: true, Down: true})
	p.Update(ctx)

	moved := physics.Vec2{X: p.Rect().Center().X - start.X, Y: p.Rect().Center().Y - start.Y}
	if !approx(moved.Length(), PlayerSpeed*0.1) {
		t.Fatalf("moved %v, want %v", moved.Length(), PlayerSpeed*0.1)
	}
	if !approx(moved.X, moved.Y) {
		t.Fatalf("uneven diagonal %v", moved)
	}
}

func TestPlayerOpposingKeysCancel(t *testing.T) {
	p := NewPlayer(solid(72, 80), solid(10, 42), testScreen)
	start := p.Rect()
	ctx, _, _ := newCtx(100*time.Millisecond, 0, Input{Left: true, Right: true})
	p.Update(ctx)
	if p.Rect() != start {
		t.Fatalf("moved to %v", p.Rect())
	}
}

func TestPlayerWrapsHorizontally(t *testing.T) {
	p := NewPlayer(solid(72, 80), solid(10, 42), testScreen)
	ctx, _, _ := newCtx(0, 0, Input{})

	p.rect.SetLeft(1280 + WrapMargin + 1)
	p.Update(ctx)
	if p.Rect().Left() != -WrapMargin {
		t.Fatalf("left = %v, want %v", p.Rect().Left(), -WrapMargin)
	}

	p.rect.SetRight(-WrapMargin - 1)
	p.Update(ctx)
	if p.Rect().Right() != 1280+WrapMargin {
		t.Fatalf("right = %v, want %v", p.Rect().Right(), 1280+WrapMargin)
	}
}

func TestPlayerNeverWrapsVertically(t *testing.T) {
	p := NewPlayer(solid(72, 80), solid(10, 42), testScreen)
	ctx, _, _ := newCtx(time.Second, 0, Input{Down: true})
	for range 10 {
		p.Update(ctx)
	}
	if want := 360 + 10*PlayerSpeed; !approx(p.Rect().Center().Y, want) {
		t.Fatalf("center y = %v, want %v", p.Rect().Center().Y, want)
	}
}

func TestPlayerWithinMarginDoesNotWrap(t *testing.T) {
	p := NewPlayer(solid(72, 80), solid(10, 42), testScreen)
	ctx, _, _ := newCtx(0, 0, Input{})
	p.rect.SetLeft(1280 + WrapMargin)
	p.Update(ctx)
	if p.Rect().Left() != 1280+WrapMargin {
		t.Fatalf("wrapped early: left = %v", p.Rect().Left())
	}
}

func TestPlayerFireCooldown(t *testing.T) {
	p := NewPlayer(solid(72, 80), solid(10, 42), testScreen)
	frame := 10 * time.Millisecond
	shots := 0
	var played []sound.ID

	// Hold fire for one second of game time.
	for now := time.Duration(0); now < time.Second; now += frame {
		ctx, sp, snd := newCtx(frame, now, Input{Fire: true})
		p.Update(ctx)
		shots += len(sp.spawned)
		played = append(played, snd.played...)
	}
	// Fire is checked before reload, so shots land at 0, 410ms and 820ms.
	if shots != 3 {
		t.Fatalf("shots = %d, want 3", shots)
	}
	if len(played) != 3 || played[0] != sound.Laser {
		t.Fatalf("sounds = %v", played)
	}
}

func TestPlayerLaserSpawnsAtNose(t *testing.T) {
	p := NewPlayer(solid(72, 80), solid(10, 42), testScreen)
	ctx, sp, _ := newCtx(0, 0, Input{Fire: true})
	p.Update(ctx)
	if len(sp.spawned) != 1 {
		t.Fatalf("spawned %d", len(sp.spawned))
	}
	l := sp.spawned[0].(*Laser)
	if l.Rect().MidBottom() != p.Rect().MidTop() {
		t.Fatalf("laser at %v, ship nose %v", l.Rect().MidBottom(), p.Rect().MidTop())
	}
}

func TestLaserMovesUpAndLeaves(t *testing.T) {
	l := NewLaser(solid(10, 42), physics.Vec2{X: 100, Y: 300})
	ctx, _, _ := newCtx(100*time.Millisecond, 0, Input{})

	remove, _ := l.Update(ctx)
	if remove {
		t.Fatal("removed on screen")
	}
	if !approx(l.Rect().Bottom(), 200) {
		t.Fatalf("bottom = %v, want 200", l.Rect().Bottom())
	}

	ctx.Delta = 250 * time.Millisecond
	if remove, _ := l.Update(ctx); !remove {
		t.Fatalf("not removed with bottom %v", l.Rect().Bottom())
	}
}

func TestMeteorSpawnRanges(t *testing.T) {
	rots := sprite.NewRotationCache(solid(20, 20), 8)
	rng := rand.New(rand.NewSource(42))
	for range 500 {
		m := NewMeteor(rots, testScreen, rng)
		mb := m.Rect().MidBottom()
		if mb.X < 0 || mb.X > 1280 {
			t.Fatalf("x = %v", mb.X)
		}
		if mb.Y < -200 || mb.Y >= 0 {
			t.Fatalf("y = %v", mb.Y)
		}
		if m.Speed < 250 || m.Speed >= 600 {
			t.Fatalf("speed = %v", m.Speed)
		}
		if m.Direction.X < -0.5 || m.Direction.X > 0.5 || m.Direction.Y != 1 {
			t.Fatalf("direction = %v", m.Direction)
		}
		if m.Rotation < 50 || m.Rotation >= 100 {
			t.Fatalf("rotation = %v", m.Rotation)
		}
	}
}

func TestMeteorFallsSpinsAndLeaves(t *testing.T) {
	rots := sprite.NewRotationCache(solid(20, 20), 360)
	m := NewMeteorAt(rots, physics.Vec2{X: 100, Y: 0}, 300, physics.Vec2{X: 0, Y: 1}, 60)
	ctx, _, _ := newCtx(100*time.Millisecond, 0, Input{})

	before := m.Rect().Center()
	if remove, _ := m.Update(ctx); remove {
		t.Fatal("removed on screen")
	}
	after := m.Rect().Center()
	if !approx(after.Y-before.Y, 30) || !approx(after.X, before.X) {
		t.Fatalf("moved from %v to %v", before, after)
	}
	if !approx(m.Rotation, 70) {
		t.Fatalf("rotation = %v", m.Rotation)
	}
	if m.Image() != rots.At(70) {
		t.Fatal("image not taken from rotation cache")
	}

	m.rect.Y = 721
	if remove, _ := m.Update(UpdateContext{Screen: testScreen}); !remove {
		t.Fatal("not removed below screen")
	}
}

func TestMeteorDiagonalIsFaster(t *testing.T) {
	rots := sprite.NewRotationCache(solid(20, 20), 4)
	m := NewMeteorAt(rots, physics.Vec2{X: 100, Y: 0}, 300, physics.Vec2{X: 0.5, Y: 1}, 0)
	before := m.Rect().Center()
	m.Update(UpdateContext{Delta: time.Second, Screen: NewScreen(1280, 10000)})
	after := m.Rect().Center()
	d := physics.Vec2{X: after.X - before.X, Y: after.Y - before.Y}
	if !approx(d.X, 150) || !approx(d.Y, 300) {
		t.Fatalf("displacement = %v", d)
	}
}

func TestExplosionLifetime(t *testing.T) {
	frames := make([]*sprite.Image, 21)
	for i := range frames {
		frames[i] = solid(10+i, 10+i)
	}
	snd := &soundRecorder{}
	e := NewExplosion(frames, physics.Vec2{X: 50, Y: 50}, snd)
	if len(snd.played) != 1 || snd.played[0] != sound.Explosion {
		t.Fatalf("sounds = %v", snd.played)
	}

	ctx := UpdateContext{Delta: 10 * time.Millisecond}
	updates := 0
	for {
		updates++
		remove, _ := e.Update(ctx)
		if remove {
			break
		}
		if e.Rect().Center() != (physics.Vec2{X: 50, Y: 50}) {
			t.Fatalf("explosion drifted to %v", e.Rect().Center())
		}
		if updates > 1000 {
			t.Fatal("explosion never finished")
		}
	}
	// 21 frames at 20 fps is 1.05 s of animation.
	if updates < 104 || updates > 106 {
		t.Fatalf("finished after %d updates", updates)
	}
}

func TestStarWithinScreen(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for range 100 {
		s := NewStar(solid(14, 14), testScreen, rng)
		c := s.Rect().Center()
		if c.X < 0 || c.X > 1280 || c.Y < 0 || c.Y > 720 {
			t.Fatalf("star at %v", c)
		}
		if remove, _ := s.Update(UpdateContext{}); remove {
			t.Fatal("star removed")
		}
	}
}

func TestCollideUsesMasks(t *testing.T) {
	a := NewLaser(solid(10, 10), physics.Vec2{X: 50, Y: 50})
	b := NewLaser(solid(10, 10), physics.Vec2{X: 55, Y: 55})
	c := NewLaser(solid(10, 10), physics.Vec2{X: 200, Y: 50})
	if !Collide(a, b) {
		t.Fatal("overlapping lasers do not collide")
	}
	if Collide(a, c) {
		t.Fatal("distant lasers collide")
	}
}

func TestGroupOrderAndRemoval(t *testing.T) {
	var g Group
	a := NewLaser(solid(1, 1), physics.Vec2{})
	b := NewLaser(solid(1, 1), physics.Vec2{})
	c := NewLaser(solid(1, 1), physics.Vec2{})
	g.Add(a)
	g.Add(b)
	g.Add(c)
	g.Add(b)
	if g.Len() != 3 {
		t.Fatalf("len = %d", g.Len())
	}

	objs := g.Objects()
	if !g.Remove(b) || g.Remove(b) {
		t.Fatal("remove did not report membership")
	}
	if len(objs) != 3 {
		t.Fatal("snapshot changed after remove")
	}
	got := g.Objects()
	if got[0] != a || got[1] != c {
		t.Fatalf("order = %v", got)
	}
	g.Clear()
	if g.Len() != 0 || g.Has(a) {
		t.Fatal("clear left members")
	}
}

type textSurface struct {
	texts []string
}

func (s *textSurface) Fill(color.Color)                                 {}
func (s *textSurface) DrawImage(*sprite.Image, float64, float64)        {}
func (s *textSurface) FillRect(physics.Rect, color.Color)               {}
func (s *textSurface) StrokeRect(physics.Rect, float64, color.Color)    {}
func (s *textSurface) DrawText(v string, _ physics.Vec2, _ color.Color) { s.texts = append(s.texts, v) }

func TestTextDraw(t *testing.T) {
	s := &textSurface{}
	Text{Value: "42"}.Draw(DrawContext{Surface: s})
	Text{}.Draw(DrawContext{Surface: s})
	if len(s.texts) != 1 || s.texts[0] != "42" {
		t.Fatalf("texts = %v", s.texts)
	}
}
