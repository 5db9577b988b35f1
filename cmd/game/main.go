package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/spaceshooter/internal/config"
	"github.com/tomz197/spaceshooter/internal/logging"
	"github.com/tomz197/spaceshooter/internal/loop"
	"github.com/tomz197/spaceshooter/internal/score"
	"github.com/tomz197/spaceshooter/internal/sound"
	"github.com/tomz197/spaceshooter/internal/sprite"
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
	// The terminal belongs to the game, so logs only go to the file.
	logger, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
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
	snd := openSpeaker(cfg, logger)
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

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting terminal game", "score_file", store.Path())
	reader := bufio.NewReader(os.Stdin)
	return loop.Run(ctx, g, reader, os.Stdout, loop.RunOptions{})
}

// openSpeaker returns the local speaker, or a silent player when audio is
// muted or the device cannot be opened.
func openSpeaker(cfg config.Config, logger *log.Logger) sound.Player {
	if cfg.Mute {
		return sound.Nop{}
	}
	sp := sound.NewSpeaker(sound.SpeakerOptions{
		MusicVolume:  cfg.MusicVolume,
		EffectVolume: cfg.EffectVolume,
	})
	if err := sp.Init(); err != nil {
		logger.Warn("audio unavailable, continuing without sound", "err", err)
		return sound.Nop{}
	}
	return sp
}
