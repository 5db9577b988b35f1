package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvScoreFile    = "SHOOTER_SCORE_FILE"
	EnvAssetDir     = "SHOOTER_ASSET_DIR"
	EnvLogFile      = "SHOOTER_LOG_FILE"
	EnvLogLevel     = "SHOOTER_LOG_LEVEL"
	EnvMusicVolume  = "SHOOTER_MUSIC_VOLUME"
	EnvEffectVolume = "SHOOTER_EFFECT_VOLUME"
	EnvMute         = "SHOOTER_MUTE"
	EnvSeed         = "SHOOTER_SEED"
)

// Config holds the settings shared by every front-end.
type Config struct {
	ScoreFile    string  // High-score record
	AssetDir     string  // PNG art directory; empty uses the built-in art
	LogFile      string  // Rotating log file; empty disables file logging
	LogLevel     string  // debug, info, warn or error
	MusicVolume  float64 // 0..1
	EffectVolume float64 // 0..1
	Mute         bool
	Seed         int64 // 0 seeds from the clock
}

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		ScoreFile:    "score.json",
		LogLevel:     "info",
		MusicVolume:  0.4,
		EffectVolume: 0.8,
	}
}

// Load reads the .env files (if present) into the environment without
// overriding variables that are already set, then builds a Config from it.
// With no files given it looks for .env in the working directory.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the environment alone.
func FromEnv() (Config, error) {
	cfg := Default()
	cfg.ScoreFile = GetEnv(EnvScoreFile, cfg.ScoreFile)
	cfg.AssetDir = GetEnv(EnvAssetDir, cfg.AssetDir)
	cfg.LogFile = GetEnv(EnvLogFile, cfg.LogFile)
	cfg.LogLevel = GetEnv(EnvLogLevel, cfg.LogLevel)

	var err error
	if cfg.MusicVolume, err = GetEnvFloat(EnvMusicVolume, cfg.MusicVolume); err != nil {
		return Config{}, err
	}
	if cfg.EffectVolume, err = GetEnvFloat(EnvEffectVolume, cfg.EffectVolume); err != nil {
		return Config{}, err
	}
	if cfg.Mute, err = GetEnvBool(EnvMute, cfg.Mute); err != nil {
		return Config{}, err
	}
	if cfg.Seed, err = GetEnvInt64(EnvSeed, cfg.Seed); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges that the environment parsers cannot.
func (c Config) Validate() error {
	if c.ScoreFile == "" {
		return fmt.Errorf("%s must not be empty", EnvScoreFile)
	}
	if c.MusicVolume < 0 || c.MusicVolume > 1 {
		return fmt.Errorf("%s must be within [0, 1], got %v", EnvMusicVolume, c.MusicVolume)
	}
	if c.EffectVolume < 0 || c.EffectVolume > 1 {
		return fmt.Errorf("%s must be within [0, 1], got %v", EnvEffectVolume, c.EffectVolume)
	}
	return nil
}

// Rand returns a source seeded from Seed, or from the clock when Seed is 0.
func (c Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
