package game

import (
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
)

// Minimum screen size: HUD, gap, board, gap and controls line.
const (
	minScreenW = boardW + 2
	minScreenH = hudHeight + 1 + boardH + 2
)

// Game adapts a Session to the platform's Game interface.
type Game struct {
	mode    Mode
	cfg     config.GameConfig
	session *Session
	best    int // Seeded best score, applied when the session is created

	// Screen dimensions
	screenW int
	screenH int

	paused      bool
	tooSmall    bool
	lastOutcome MoveOutcome
}

// New creates a game in the given mode. Reset must be called before play.
func New(mode Mode, cfg config.GameConfig) *Game {
	return &Game{
		mode: mode,
		cfg:  cfg,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.mode.ID()
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.mode.Title()
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Session returns the underlying session, or nil before the first Reset.
func (g *Game) Session() *Session {
	return g.session
}

// Reset starts a new game. The best score carries over.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.session == nil {
		g.session = NewSession(RulesFor(g.mode, g.cfg), cfg.Seed)
		g.session.SetBestScore(g.best)
	} else {
		g.session.Reseed(cfg.Seed)
		g.session.NewGame()
	}

	g.paused = false
	g.lastOutcome = MoveOutcome{}
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// SetBestScore seeds the best score.
func (g *Game) SetBestScore(best int) {
	if best > g.best {
		g.best = best
	}
	if g.session != nil {
		g.session.SetBestScore(best)
	}
}

// Step applies one input event.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{}
	}

	if in.Has(core.ActionPause) && !g.session.Finished() {
		g.paused = !g.paused
	}

	if g.tooSmall || g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.session.NewGame()
		g.lastOutcome = MoveOutcome{}
		return core.StepResult{State: g.State()}
	}

	// Enter on the win overlay keeps playing, like the continue key.
	if in.Has(core.ActionContinue) || in.Has(core.ActionConfirm) {
		g.session.Continue()
	}

	if g.session.Finished() {
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFromInput(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	g.lastOutcome = g.session.Move(dir)
	return core.StepResult{State: g.State(), Moved: g.lastOutcome.Changed}
}

// directionFromInput picks the first direction action in the frame.
func directionFromInput(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// ActionFor maps a direction to its input action.
func ActionFor(dir Direction) core.Action {
	switch dir {
	case DirUp:
		return core.ActionUp
	case DirDown:
		return core.ActionDown
	case DirLeft:
		return core.ActionLeft
	case DirRight:
		return core.ActionRight
	}
	return core.ActionNone
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Best: g.best}
	}
	return core.GameState{
		Score:    g.session.Score(),
		Best:     g.session.Best(),
		GameOver: g.session.Finished(),
		Won:      g.session.Status() == StatusWon,
		Paused:   g.paused || g.tooSmall,
	}
}
