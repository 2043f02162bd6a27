package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// snapshotter is implemented by games that can describe their final state.
type snapshotter interface {
	Snapshot() game.Snapshot
}

// discardLogger returns a logger for local play, where output would
// corrupt the alternate screen.
func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// GameModel runs one game mode. Every key press or swipe is one Step;
// there is no tick loop.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	swipe      swipeTracker
	help       help.Model
	showHelp   bool
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the current game has been recorded
}

// NewGameModel creates a model for the given game and starts it.
// The best score is seeded from the store when one is available.
func NewGameModel(g registry.Game, store *storage.Store, cfg core.RuntimeConfig, swipeThreshold float64, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = discardLogger()
	}

	if store != nil {
		best, err := store.HighScore(g.ID())
		if err != nil {
			logger.Warn("could not load high score", "game", g.ID(), "error", err)
		}
		g.SetBestScore(best)
	}

	g.Reset(cfg)

	return GameModel{
		game:      g,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		logger:    logger,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		swipe:     newSwipeTracker(swipeThreshold),
		help:      help.New(),
		gameState: g.State(),
	}
}

// Init initializes the model. The game is already running.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()

	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.layout()
		return m, nil
	}

	frame := core.NewInputFrame()
	if m.keyMapper.MapKeyToFrame(msg, &frame) {
		m.recordWin()
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu is only offered when the board is not in play.
	if frame.Has(core.ActionBack) {
		if m.gameState.GameOver || m.gameState.Paused {
			m.recordWin()
			m.backToMenu = true
		}
		return m, nil
	}

	if frame.Has(core.ActionRestart) && !m.gameState.Paused {
		m.recordWin()
	}

	m.step(frame)
	return m, nil
}

// handleMouse turns drags into moves.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	dir, ok := m.swipe.handle(msg)
	if !ok {
		return m, nil
	}
	m.step(core.FrameOf(game.ActionFor(dir)))
	return m, nil
}

// step applies one input frame and records a lost game.
func (m *GameModel) step(frame core.InputFrame) {
	if frame.Empty() {
		return
	}

	prev := m.gameState
	result := m.game.Step(frame)
	m.gameState = result.State

	// Restarting or continuing after a win starts a stretch of play that
	// has not been recorded yet.
	restarted := frame.Has(core.ActionRestart) && !prev.Paused
	resumed := prev.GameOver && !m.gameState.GameOver
	if restarted || resumed {
		m.scoreSaved = false
	}

	if m.gameState.GameOver && !m.gameState.Won {
		m.saveScore()
	}
}

// recordWin saves a game that reached the target before the player leaves it.
// A lost game is saved as soon as it ends.
func (m *GameModel) recordWin() {
	if s, ok := m.game.(snapshotter); ok {
		snap := s.Snapshot()
		if snap.Target > 0 && snap.MaxTile >= snap.Target {
			m.saveScore()
		}
	}
}

// saveScore records the current game once.
func (m *GameModel) saveScore() {
	if m.scoreSaved || m.gameState.Score == 0 {
		return
	}
	m.scoreSaved = true

	if m.store == nil {
		return
	}

	rec := storage.Record{GameID: m.game.ID(), Score: m.gameState.Score}
	if s, ok := m.game.(snapshotter); ok {
		snap := s.Snapshot()
		rec.MaxTile = snap.MaxTile
		rec.Moves = snap.Moves
		rec.Won = snap.Target > 0 && snap.MaxTile >= snap.Target
	}

	if _, err := m.store.SaveScore(rec); err != nil {
		m.logger.Warn("could not save score", "game", rec.GameID, "score", rec.Score, "error", err)
		return
	}
	m.logger.Debug("score saved", "game", rec.GameID, "score", rec.Score, "max_tile", rec.MaxTile)
}

// layout sizes the game screen, leaving room for the full help view.
func (m *GameModel) layout() {
	h := m.config.ScreenH
	if m.showHelp {
		h -= lipgloss.Height(m.help.View(m.keyMapper.Keys()))
	}
	h = max(h, 0)

	m.screen.Resize(m.config.ScreenW, h)
	m.game.Resize(m.config.ScreenW, h)
	m.gameState = m.game.State()
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".t2048", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	view := RenderScreen(m.screen)

	if m.showHelp {
		view += "\n" + m.help.View(m.keyMapper.Keys())
	}
	return view
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single mode in the local terminal until the player quits.
func Run(g registry.Game, store *storage.Store, cfg core.RuntimeConfig, swipeThreshold float64, logger *log.Logger) error {
	model := NewGameModel(g, store, cfg, swipeThreshold, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
