package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// screen identifies which sub-model a session is showing.
type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScoreboard
)

// SessionModel manages the full session flow: menu -> game or scoreboard
// -> menu. It is used for local play without a mode and for SSH sessions.
type SessionModel struct {
	store      *storage.Store
	config     core.RuntimeConfig
	gameCfg    config.GameConfig
	logger     *log.Logger
	username   string
	current    screen
	menu       MenuModel
	scoreboard ScoreboardModel
	gameModel  *GameModel
	best       map[string]int // Best score per mode ID seen in this session
	quitting   bool
}

// NewSessionModel creates a new session model starting at the menu.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, gameCfg config.GameConfig, username string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = discardLogger()
	}
	m := SessionModel{
		store:    store,
		config:   cfg,
		gameCfg:  gameCfg,
		logger:   logger,
		username: username,
		best:     make(map[string]int),
	}
	m.menu = m.newMenu()
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
// Sub-models quit their own program when run standalone, so their
// commands are dropped on transitions.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.current = screenScoreboard
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		mode := m.menu.Selected().Mode
		g, err := registry.Create(mode.ID(), m.gameCfg)
		if err != nil {
			// Menu only lists registered modes.
			m.logger.Error("could not create game", "mode", mode, "error", err)
			m.menu = m.newMenu()
			return m, nil
		}
		g.SetBestScore(m.best[mode.ID()])

		gameModel := NewGameModel(g, m.store, m.config, m.gameCfg.SwipeThreshold, m.logger)
		m.gameModel = &gameModel
		m.current = screenGame
		m.logger.Info("game started", "user", m.username, "mode", mode)

		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.BackToMenu() {
		m.logger.Info("game ended", "user", m.username, "score", m.gameModel.State().Score)
		m.backToMenu()
		return m, m.menu.Init()
	}

	if m.gameModel.IsQuitting() {
		m.rememberBest()
		m.logger.Info("game ended", "user", m.username, "score", m.gameModel.State().Score)
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateScoreboard handles updates when the scoreboard is shown.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// backToMenu rebuilds the menu so best scores are fresh.
func (m *SessionModel) backToMenu() {
	m.rememberBest()
	m.current = screenMenu
	m.gameModel = nil
	m.menu = m.newMenu()
}

// rememberBest keeps the best score of the game being left, which may
// never have been saved.
func (m *SessionModel) rememberBest() {
	if m.gameModel == nil {
		return
	}
	id := m.gameModel.game.ID()
	m.best[id] = max(m.best[id], m.gameModel.State().Best)
}

// newMenu builds the menu, raising stored bests to those seen this session.
func (m SessionModel) newMenu() MenuModel {
	menu := NewMenuModel(m.store, m.config)
	for i, item := range menu.items {
		if item.Kind == MenuItemMode {
			menu.items[i].Best = max(item.Best, m.best[item.Mode.ID()])
		}
	}
	return menu
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.gameModel.View()
	case screenScoreboard:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, gameCfg config.GameConfig, logger *log.Logger) error {
	model := NewSessionModel(store, cfg, gameCfg, "local", logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
