package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/spaceshooter/internal/config"
	"github.com/tomz197/spaceshooter/internal/logging"
	"github.com/tomz197/spaceshooter/internal/score"
)

const (
	defaultHost    = "0.0.0.0"
	defaultPort    = "8080"
	scorePollEvery = time.Second
	writeTimeout   = 5 * time.Second
)

//go:embed index.html
var htmlPage string

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "web server error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	logger, closer, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Stderr: true,
		Prefix: "web",
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := score.OpenFile(cfg.ScoreFile)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           newMux(store, sshHost, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting web server", "url", "http://"+srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// scoreMessage is the JSON body of /api/score and of every feed update.
type scoreMessage struct {
	Score int `json:"score"`
}

func newMux(store score.Store, sshHost string, logger *log.Logger) *http.ServeMux {
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", html.EscapeString(sshHost))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("GET /api/score", func(w http.ResponseWriter, r *http.Request) {
		high, err := store.HighScore()
		if err != nil {
			logger.Error("read high score", "err", err)
			http.Error(w, "high score unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(scoreMessage{Score: high})
	})
	mux.Handle("GET /ws", &scoreFeed{store: store, logger: logger, every: scorePollEvery})
	return mux
}

// scoreFeed pushes the high score over a websocket whenever it changes.
type scoreFeed struct {
	store    score.Store
	logger   *log.Logger
	every    time.Duration
	upgrader websocket.Upgrader
}

func (f *scoreFeed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	// The page never sends anything; reading only detects the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(f.every)
	defer ticker.Stop()

	last := -1
	for {
		high, err := f.store.HighScore()
		if err != nil {
			f.logger.Error("read high score", "err", err)
		} else if high != last {
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(scoreMessage{Score: high}); err != nil {
				return
			}
			last = high
		}

		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
