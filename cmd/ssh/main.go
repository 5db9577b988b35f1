package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	wishlogging "github.com/charmbracelet/wish/logging"

	"github.com/tomz197/spaceshooter/internal/config"
	"github.com/tomz197/spaceshooter/internal/draw"
	"github.com/tomz197/spaceshooter/internal/logging"
	"github.com/tomz197/spaceshooter/internal/loop"
	"github.com/tomz197/spaceshooter/internal/score"
	"github.com/tomz197/spaceshooter/internal/sound"
	"github.com/tomz197/spaceshooter/internal/sprite"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultMaxSessions = 32
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ssh server error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	maxSessions, err := config.GetEnvInt("SSH_MAX_SESSIONS", defaultMaxSessions)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Stderr: true,
		Prefix: "ssh",
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	// Art and the score file are shared by every session; both are safe
	// for concurrent use.
	assets, err := sprite.Load(cfg.AssetDir, cfg.Seed)
	if err != nil {
		return err
	}
	store, err := score.OpenFile(cfg.ScoreFile)
	if err != nil {
		return err
	}
	logger.Info("SSH config", "host", host, "port", port, "host_key", hostKeyPath,
		"score_file", store.Path(), "max_sessions", maxSessions)

	games := &gameHandler{
		assets:   assets,
		store:    store,
		logger:   logger,
		slots:    make(chan struct{}, max(maxSessions, 1)),
		baseSeed: cfg.Seed,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			wishlogging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-done:
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	}
	logger.Info("shutting down server", "sessions", games.active.Load())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	// Closing connections cancels every session; wait for their scores to be saved.
	_ = s.Close()
	games.wg.Wait()
	return nil
}

// gameHandler runs one independent game per SSH session.
type gameHandler struct {
	assets   *sprite.Assets
	store    score.Store
	logger   *log.Logger
	slots    chan struct{} // Session limit
	baseSeed int64

	wg     sync.WaitGroup
	active atomic.Int64
	count  atomic.Int64
}

// middleware handles SSH sessions and runs the game loop.
func (h *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}
		select {
		case h.slots <- struct{}{}:
			defer func() { <-h.slots }()
		default:
			fmt.Fprintln(sess, "Server is full, please try again later.")
			return
		}
		h.wg.Add(1)
		defer h.wg.Done()
		h.active.Add(1)
		defer h.active.Add(-1)

		logger := h.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("new game session", "term", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		g, err := loop.NewGame(loop.Options{
			Assets: h.assets,
			Store:  h.store,
			Sound:  sound.NewBell(sess),
			Logger: logger,
			Rand:   h.sessionRand(),
		})
		if err != nil {
			logger.Error("failed to start game", "err", err)
			fmt.Fprintln(sess, "Error: could not start the game.")
			return
		}

		reader := bufio.NewReader(sess)
		if err := loop.Run(sess.Context(), g, reader, sess, loop.RunOptions{
			TermSizeFunc: sizeTracker.getSize,
		}); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended", "score", g.Session().Score, "high_score", g.Session().HighScore)
		next(sess)
	}
}

// sessionRand gives each session its own source. With a fixed seed the
// sessions are reproducible in connection order.
func (h *gameHandler) sessionRand() *rand.Rand {
	n := h.count.Add(1)
	if h.baseSeed != 0 {
		return rand.New(rand.NewSource(h.baseSeed + n))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano() + n))
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
