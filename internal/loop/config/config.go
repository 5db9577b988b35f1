// Package config centralizes all tunable game parameters.
package config

import "time"

// Logical resolution. Front-ends scale this to whatever they render on.
const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

// Session
const (
	InitialHealth = 180
	MeteorDamage  = 20 // Health lost per frame with a player-meteor hit
	StarCount     = 20
)

// Spawning
const (
	MeteorSpawnInterval = 500 * time.Millisecond
)

// Frame timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	MaxDelta        = 100 * time.Millisecond // Longest simulated step per frame
)

// HUD layout
const (
	ScoreOffsetY     = 50 // Score text centre, measured up from the bottom edge
	ScoreCharWidth   = 22 // Approximate glyph advance for sizing the score box
	ScoreBoxPaddingX = 20
	ScoreBoxPaddingY = 10
	ScoreBoxBorder   = 5
	HealthBarHeight  = 20
	HealthBarMargin  = 20
	HealthBarBorder  = 3
)
