package web

import (
	"github.com/vovakirdan/tui-2048/internal/game"
)

// Client message types.
const (
	msgMove     = "move"
	msgSwipe    = "swipe"
	msgNew      = "new"
	msgContinue = "continue"
)

// Server message types.
const (
	msgState = "state"
	msgError = "error"
)

// ClientMessage is a command sent by the browser.
type ClientMessage struct {
	Type      string  `json:"type"`
	Direction string  `json:"direction,omitempty"` // move
	DX        float64 `json:"dx,omitempty"`        // swipe, pixels
	DY        float64 `json:"dy,omitempty"`        // swipe, pixels, positive is down
	Mode      string  `json:"mode,omitempty"`      // new
}

// ServerMessage is pushed to the browser after every command.
type ServerMessage struct {
	Type  string         `json:"type"`
	State *game.Snapshot `json:"state,omitempty"`
	Error string         `json:"error,omitempty"`
}

func stateMessage(snap game.Snapshot) ServerMessage {
	return ServerMessage{Type: msgState, State: &snap}
}

func errorMessage(err error) ServerMessage {
	return ServerMessage{Type: msgError, Error: err.Error()}
}
