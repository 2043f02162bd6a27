// Package web serves the browser front end: a static page that plays 2048
// over a WebSocket, one session per connection.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// shutdownTimeout bounds how long in-flight requests get on shutdown.
const shutdownTimeout = 10 * time.Second

//go:embed static
var staticFiles embed.FS

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Config holds configuration for the web server.
type Config struct {
	// Addr is the host:port to listen on (e.g., ":8080").
	Addr string

	// Game holds the rules every session plays by.
	Game config.GameConfig

	// Seed fixes the spawn sequence of new sessions. Zero uses the clock.
	Seed int64
}

// Server serves the page, the WebSocket endpoint and the scores API.
type Server struct {
	cfg    Config
	store  *storage.Store
	logger *log.Logger
	mux    *http.ServeMux
}

// New creates a web server. The store may be nil, which disables scores.
func New(cfg Config, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:    cfg,
		store:  store,
		logger: logger,
		mux:    http.NewServeMux(),
	}

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// The embedded directory is part of the binary.
		panic(fmt.Sprintf("web: embedded static files: %v", err))
	}

	s.mux.Handle("GET /", http.FileServer(http.FS(static)))
	s.mux.HandleFunc("GET /ws", s.handleWS)
	s.mux.HandleFunc("GET /api/scores", s.handleScores)
	s.mux.HandleFunc("GET /api/modes", s.handleModes)

	return s
}

// Handler returns the HTTP handler, wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("web: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// handleWS upgrades the connection and starts a session. The mode comes
// from the "mode" query parameter and defaults to classic.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	mode, err := game.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := s.logger.With("remote", r.RemoteAddr)
	c := newClient(conn, s.store, logger, s.cfg.Game, mode, seed)
	logger.Info("session started", "mode", mode)

	go c.writePump()
	go func() {
		c.readPump()
		logger.Info("session ended", "mode", c.mode, "score", c.session.Score())
	}()
}

// scoreJSON is one row of the scores API.
type scoreJSON struct {
	Score     int       `json:"score"`
	MaxTile   int       `json:"max_tile"`
	Moves     int       `json:"moves"`
	Won       bool      `json:"won"`
	CreatedAt time.Time `json:"created_at"`
}

// handleScores returns the top scores for the "mode" query parameter.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	mode, err := game.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows := []scoreJSON{}
	if s.store != nil {
		entries, err := s.store.TopScores(mode.ID(), 10)
		if err != nil {
			s.logger.Error("could not load scores", "mode", mode, "error", err)
			http.Error(w, "could not load scores", http.StatusInternalServerError)
			return
		}
		for _, e := range entries {
			rows = append(rows, scoreJSON{
				Score:     e.Score,
				MaxTile:   e.MaxTile,
				Moves:     e.Moves,
				Won:       e.Won,
				CreatedAt: e.CreatedAt,
			})
		}
	}

	writeJSON(w, map[string]any{"mode": mode, "scores": rows})
}

// handleModes lists the playable modes.
func (s *Server) handleModes(w http.ResponseWriter, _ *http.Request) {
	type modeJSON struct {
		Name  game.Mode `json:"name"`
		Title string    `json:"title"`
	}
	modes := []modeJSON{}
	for _, m := range game.Modes() {
		modes = append(modes, modeJSON{Name: m, Title: m.Title()})
	}
	writeJSON(w, modes)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// logRequests logs each HTTP request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"duration", time.Since(start),
		)
	})
}
