package sprite

import (
	"errors"
	"fmt"
	"image/png"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// MeteorRotationSteps is the number of pre-rotated meteor frames (one per degree).
	MeteorRotationSteps = 360
	// DefaultExplosionFrames is the frame count of the built-in explosion.
	DefaultExplosionFrames = 21
	// menuShipScale is the enlargement of the decorative ship on the menu screen.
	menuShipScale = 2
)

// Assets is the full set of images a game session draws.
type Assets struct {
	Player    *Image
	Star      *Image
	Laser     *Image
	Meteor    *Image
	Explosion []*Image

	MeteorRotations *RotationCache
	MenuShip        *Image
}

// Builtin returns the procedurally drawn art. The seed shapes the meteor outline.
func Builtin(seed int64) *Assets {
	rng := rand.New(rand.NewSource(seed))
	return finish(&Assets{
		Player:    ShipImage(),
		Star:      StarImage(),
		Laser:     LaserImage(),
		Meteor:    MeteorImage(rng),
		Explosion: ExplosionFrames(DefaultExplosionFrames),
	})
}

// Load returns the art in dir, or the built-in art when dir is empty.
func Load(dir string, seed int64) (*Assets, error) {
	if dir == "" {
		return Builtin(seed), nil
	}
	a, err := LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load assets from %s: %w", dir, err)
	}
	return a, nil
}

// LoadDir loads PNG art from dir. The layout is
//
//	player.png star.png laser.png meteor.png explosion/0.png explosion/1.png ...
//
// Any missing or undecodable image is an error; explosion frames are read
// from 0 upwards until the first missing index and at least one is required.
func LoadDir(dir string) (*Assets, error) {
	a := &Assets{}
	for _, f := range []struct {
		name string
		dst  **Image
	}{
		{"player.png", &a.Player},
		{"star.png", &a.Star},
		{"laser.png", &a.Laser},
		{"meteor.png", &a.Meteor},
	} {
		img, err := loadPNG(filepath.Join(dir, f.name))
		if err != nil {
			return nil, err
		}
		*f.dst = img
	}

	for i := 0; ; i++ {
		path := filepath.Join(dir, "explosion", strconv.Itoa(i)+".png")
		img, err := loadPNG(path)
		if errors.Is(err, fs.ErrNotExist) && i > 0 {
			break
		}
		if err != nil {
			return nil, err
		}
		a.Explosion = append(a.Explosion, img)
	}
	return finish(a), nil
}

// finish derives the cached variants from the base images.
func finish(a *Assets) *Assets {
	a.MeteorRotations = NewRotationCache(a.Meteor, MeteorRotationSteps)
	a.MenuShip = Scale(a.Player, menuShipScale)
	return a
}

func loadPNG(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return FromImage(img), nil
}
