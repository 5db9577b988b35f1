package main

import (
	"fmt"
	"os"

	"github.com/tomz197/spaceshooter/internal/config"
	"github.com/tomz197/spaceshooter/internal/logging"
	"github.com/tomz197/spaceshooter/internal/loop"
	"github.com/tomz197/spaceshooter/internal/score"
	"github.com/tomz197/spaceshooter/internal/sound"
	"github.com/tomz197/spaceshooter/internal/sprite"
	"github.com/tomz197/spaceshooter/internal/window"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, closer, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Stderr: true,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	assets, err := sprite.Load(cfg.AssetDir, cfg.Seed)
	if err != nil {
		return err
	}
	store, err := score.OpenFile(cfg.ScoreFile)
	if err != nil {
		return err
	}

	var snd sound.Player = sound.Nop{}
	if !cfg.Mute {
		snd = window.NewAudio(cfg.MusicVolume, cfg.EffectVolume)
	}
	defer snd.Close()

	g, err := loop.NewGame(loop.Options{
		Assets: assets,
		Store:  store,
		Sound:  snd,
		Logger: logger,
		Rand:   cfg.Rand(),
	})
	if err != nil {
		return err
	}

	logger.Info("opening window", "score_file", store.Path())
	return window.Run(g, logger)
}
