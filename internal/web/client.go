package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Browser swipes arrive in pixels; the threshold is in cells.
	pixelsPerCell = 10.0
)

// errSwipeTooShort is reported for gestures below the swipe threshold.
var errSwipeTooShort = errors.New("swipe too short")

// client is one browser connection playing its own session.
// The session is only touched by readPump.
type client struct {
	conn   *websocket.Conn
	send   chan []byte
	store  *storage.Store
	logger *log.Logger
	cfg    config.GameConfig
	seed   int64

	mode    game.Mode
	session *game.Session
	saved   bool // Whether the current game has been recorded
	best    map[game.Mode]int
}

func newClient(conn *websocket.Conn, store *storage.Store, logger *log.Logger, cfg config.GameConfig, mode game.Mode, seed int64) *client {
	c := &client{
		conn:   conn,
		send:   make(chan []byte, 16),
		store:  store,
		logger: logger,
		cfg:    cfg,
		seed:   seed,
	}
	c.start(mode)
	return c
}

// start begins a fresh session in the given mode, seeded with the best
// score on record.
func (c *client) start(mode game.Mode) {
	// Best carries over per mode, including games that were never saved.
	if c.best == nil {
		c.best = make(map[game.Mode]int)
	}
	if c.session != nil {
		c.best[c.mode] = max(c.best[c.mode], c.session.Best())
	}

	c.mode = mode
	c.session = game.NewSession(game.RulesFor(mode, c.cfg), c.seed)
	c.session.SetBestScore(c.best[mode])
	c.seed++
	c.saved = false

	if c.store != nil {
		best, err := c.store.HighScore(mode.ID())
		if err != nil {
			c.logger.Warn("could not load high score", "mode", mode, "error", err)
		}
		c.session.SetBestScore(best)
	}
}

// handle applies one client message and returns the reply.
func (c *client) handle(msg ClientMessage) ServerMessage {
	switch msg.Type {
	case msgMove:
		dir, err := game.ParseDirection(msg.Direction)
		if err != nil {
			return errorMessage(err)
		}
		c.move(dir)

	case msgSwipe:
		dir, ok := game.DirectionFromSwipe(msg.DX/pixelsPerCell, msg.DY/pixelsPerCell, c.cfg.SwipeThreshold)
		if !ok {
			return errorMessage(errSwipeTooShort)
		}
		c.move(dir)

	case msgNew:
		mode := c.mode
		if msg.Mode != "" {
			m, err := game.ParseMode(msg.Mode)
			if err != nil {
				return errorMessage(err)
			}
			mode = m
		}
		c.recordWin()
		c.start(mode)

	case msgContinue:
		if c.session.Continue() {
			c.saved = false
		}

	default:
		return errorMessage(fmt.Errorf("unknown message type %q", msg.Type))
	}

	return stateMessage(c.session.Snapshot(c.mode))
}

// move slides the board and records the game when it is lost.
func (c *client) move(dir game.Direction) {
	out := c.session.Move(dir)
	if out.Status == game.StatusLost {
		c.save()
	}
}

// recordWin saves a game that reached the target before it is abandoned.
func (c *client) recordWin() {
	target := c.session.Rules().Target
	if target > 0 && c.session.Grid().MaxTile() >= target {
		c.save()
	}
}

// save records the current game once.
func (c *client) save() {
	if c.saved || c.store == nil || c.session.Score() == 0 {
		return
	}
	c.saved = true

	target := c.session.Rules().Target
	rec := storage.Record{
		GameID:  c.mode.ID(),
		Score:   c.session.Score(),
		MaxTile: c.session.Grid().MaxTile(),
		Moves:   c.session.Moves(),
		Won:     target > 0 && c.session.Grid().MaxTile() >= target,
	}
	if _, err := c.store.SaveScore(rec); err != nil {
		c.logger.Warn("could not save score", "mode", c.mode, "score", rec.Score, "error", err)
		return
	}
	c.logger.Debug("score saved", "mode", c.mode, "score", rec.Score)
}

// reply queues a message for writePump. Returns false if the client is too
// slow to keep up.
func (c *client) reply(msg ServerMessage) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("could not encode message", "error", err)
		return true
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// readPump reads commands until the connection fails. It owns the session
// and closes send when done so writePump exits.
func (c *client) readPump() {
	defer func() {
		c.recordWin()
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // A failed deadline surfaces on the next read
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	if !c.reply(stateMessage(c.session.Snapshot(c.mode))) {
		return
	}

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				if !c.reply(errorMessage(fmt.Errorf("invalid message: %w", err))) {
					return
				}
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket error", "error", err)
			}
			return
		}

		if !c.reply(c.handle(msg)) {
			c.logger.Warn("client too slow, closing")
			return
		}
	}
}

// writePump writes queued messages and keeps the connection alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			//nolint:errcheck // A failed deadline surfaces on the next write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				//nolint:errcheck // Peer may already be gone
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			//nolint:errcheck // A failed deadline surfaces on the next write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
