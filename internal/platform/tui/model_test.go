package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// scriptedGame returns preset states so the model's bookkeeping can be
// tested without playing a real board.
type scriptedGame struct {
	state  core.GameState
	next   []core.GameState
	snap   game.Snapshot
	frames []core.InputFrame
	best   int
	w, h   int
}

func (g *scriptedGame) ID() string                   { return "2048" }
func (g *scriptedGame) Title() string                { return "2048" }
func (g *scriptedGame) Reset(cfg core.RuntimeConfig) { g.w, g.h = cfg.ScreenW, cfg.ScreenH }
func (g *scriptedGame) Resize(w, h int)              { g.w, g.h = w, h }
func (g *scriptedGame) Render(dst *core.Screen)      { dst.DrawText(0, 0, "scripted") }
func (g *scriptedGame) State() core.GameState        { return g.state }
func (g *scriptedGame) SetBestScore(best int)        { g.best = best }
func (g *scriptedGame) Snapshot() game.Snapshot      { return g.snap }

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in)
	if len(g.next) > 0 {
		g.state, g.next = g.next[0], g.next[1:]
	}
	return core.StepResult{State: g.state}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func press(m GameModel, msg tea.Msg) GameModel {
	next, _ := m.Update(msg)
	return next.(GameModel)
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1}
}

func TestGameModelSeedsBestScore(t *testing.T) {
	store := openStore(t)
	store.SaveScore(storage.Record{GameID: "2048", Score: 777}) //nolint:errcheck

	g := &scriptedGame{}
	NewGameModel(g, store, testConfig(), 1, nil)

	if g.best != 777 {
		t.Errorf("best = %d, want 777", g.best)
	}
	if g.w != 80 || g.h != 24 {
		t.Errorf("game should be reset to the screen size, got %dx%d", g.w, g.h)
	}
}

func TestGameModelKeyStepsGame(t *testing.T) {
	g := &scriptedGame{}
	m := NewGameModel(g, nil, testConfig(), 1, nil)

	m = press(m, runeKey('a'))
	m = press(m, runeKey('z'))

	if len(g.frames) != 1 {
		t.Fatalf("expected 1 step, got %d", len(g.frames))
	}
	if !g.frames[0].Has(core.ActionLeft) {
		t.Error("a should step with ActionLeft")
	}
}

func TestGameModelSavesLossOnce(t *testing.T) {
	store := openStore(t)
	lost := core.GameState{Score: 120, GameOver: true}
	g := &scriptedGame{
		next: []core.GameState{lost, lost},
		snap: game.Snapshot{MaxTile: 16, Moves: 30, Target: 2048},
	}
	m := NewGameModel(g, store, testConfig(), 1, nil)

	m = press(m, runeKey('a'))
	m = press(m, runeKey('d'))

	scores, err := store.TopScores("2048", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("lost game should be saved once, got %d entries", len(scores))
	}
	if scores[0].Score != 120 || scores[0].MaxTile != 16 || scores[0].Moves != 30 || scores[0].Won {
		t.Errorf("saved entry = %+v", scores[0])
	}
}

func TestGameModelSavesWinWhenLeaving(t *testing.T) {
	store := openStore(t)
	won := core.GameState{Score: 20000, GameOver: true, Won: true}
	g := &scriptedGame{
		next: []core.GameState{won, {}},
		snap: game.Snapshot{MaxTile: 2048, Target: 2048},
	}
	m := NewGameModel(g, store, testConfig(), 1, nil)

	m = press(m, runeKey('a'))
	if high, _ := store.HighScore("2048"); high != 0 {
		t.Fatal("a win should not be saved while the player may continue")
	}

	m = press(m, runeKey('r'))
	scores, _ := store.TopScores("2048", 10)
	if len(scores) != 1 || !scores[0].Won || scores[0].Score != 20000 {
		t.Fatalf("restart after a win should save it, got %+v", scores)
	}
	if !g.frames[len(g.frames)-1].Has(core.ActionRestart) {
		t.Error("restart should be passed to the game")
	}
}

func TestGameModelQuit(t *testing.T) {
	g := &scriptedGame{}
	m := NewGameModel(g, nil, testConfig(), 1, nil)

	next, cmd := m.Update(runeKey('q'))
	m = next.(GameModel)
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestGameModelBackOnlyWhenStopped(t *testing.T) {
	g := &scriptedGame{}
	m := NewGameModel(g, nil, testConfig(), 1, nil)

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back should be ignored during play")
	}

	g.next = []core.GameState{{Paused: true}}
	m = press(m, runeKey('p'))
	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should work while paused")
	}
}

func TestGameModelMouseSwipe(t *testing.T) {
	g := &scriptedGame{}
	m := NewGameModel(g, nil, testConfig(), 1, nil)

	m = press(m, tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = press(m, tea.MouseMsg{X: 10, Y: 14, Action: tea.MouseActionRelease})

	if len(g.frames) != 1 || !g.frames[0].Has(core.ActionDown) {
		t.Fatalf("drag down should step down, frames = %v", g.frames)
	}
}

func TestGameModelResizeKeepsGame(t *testing.T) {
	g := &scriptedGame{}
	m := NewGameModel(g, nil, testConfig(), 1, nil)

	m = press(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.w != 100 || g.h != 40 {
		t.Errorf("resize = %dx%d, want 100x40", g.w, g.h)
	}
	if len(g.frames) != 0 {
		t.Error("resize should not step the game")
	}

	m = press(m, runeKey('?'))
	if g.h >= 40 {
		t.Errorf("help should take rows from the board, height = %d", g.h)
	}
	if !strings.Contains(m.View(), "scripted") {
		t.Error("view should include the game render")
	}
}

func TestSwipeTracker(t *testing.T) {
	tests := []struct {
		name       string
		start, end [2]int
		button     tea.MouseButton
		want       game.Direction
		ok         bool
	}{
		{"right", [2]int{10, 10}, [2]int{20, 11}, tea.MouseButtonLeft, game.DirRight, true},
		{"left", [2]int{20, 10}, [2]int{12, 10}, tea.MouseButtonLeft, game.DirLeft, true},
		{"up counts rows double", [2]int{10, 10}, [2]int{13, 8}, tea.MouseButtonLeft, game.DirUp, true},
		{"click", [2]int{10, 10}, [2]int{10, 10}, tea.MouseButtonLeft, 0, false},
		{"right button", [2]int{10, 10}, [2]int{20, 10}, tea.MouseButtonRight, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSwipeTracker(1)
			s.handle(tea.MouseMsg{X: tt.start[0], Y: tt.start[1], Action: tea.MouseActionPress, Button: tt.button})
			got, ok := s.handle(tea.MouseMsg{X: tt.end[0], Y: tt.end[1], Action: tea.MouseActionRelease})
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("swipe = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSessionModelFlow(t *testing.T) {
	store := openStore(t)
	m := NewSessionModel(store, testConfig(), config.Default().Game, "tester", nil)

	update := func(msg tea.Msg) {
		next, _ := m.Update(msg)
		m = next.(SessionModel)
	}

	update(tea.KeyMsg{Type: tea.KeyTab})
	if m.current != screenScoreboard {
		t.Fatalf("tab should open the scoreboard, screen = %d", m.current)
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard view missing title")
	}

	update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.current != screenMenu {
		t.Fatalf("esc should return to the menu, screen = %d", m.current)
	}

	update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.current != screenGame || m.gameModel == nil {
		t.Fatalf("enter should start the first mode, screen = %d", m.current)
	}
	if !strings.Contains(m.View(), "Score:") {
		t.Error("game view should show the score")
	}

	update(runeKey('p'))
	update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.current != screenMenu {
		t.Errorf("esc while paused should return to the menu, screen = %d", m.current)
	}

	next, cmd := m.Update(runeKey('q'))
	m = next.(SessionModel)
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should quit the session")
	}
}

func TestMenuLists(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	view := m.View()

	for _, want := range []string{"2048", "Endless", "High Scores", "Quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sel := next.(MenuModel).Selected()
	if sel == nil || sel.Mode != game.ModeEndless {
		t.Errorf("second entry should select endless, got %+v", sel)
	}
}

func TestSessionModelKeepsBestAcrossGames(t *testing.T) {
	gameCfg := config.Default().Game
	gameCfg.NoMergeLimit = 0
	m := NewSessionModel(nil, testConfig(), gameCfg, "tester", nil)

	update := func(msg tea.Msg) {
		next, _ := m.Update(msg)
		m = next.(SessionModel)
	}

	update(tea.KeyMsg{Type: tea.KeyEnter})
	moves := []rune{'a', 's', 'd', 'w'}
	for i := 0; i < 500 && m.gameModel.State().Best == 0; i++ {
		update(runeKey(moves[i%4]))
	}
	best := m.gameModel.State().Best
	if best == 0 {
		t.Fatal("game never scored")
	}

	if !m.gameModel.State().GameOver {
		update(runeKey('p'))
	}
	update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.current != screenMenu {
		t.Fatalf("esc should return to the menu, screen = %d", m.current)
	}
	if !strings.Contains(m.View(), fmt.Sprintf("(best %d)", best)) {
		t.Errorf("menu should show best %d", best)
	}

	update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.gameModel.State(); got.Score != 0 || got.Best != best {
		t.Errorf("new game: score %d best %d, want 0 and %d", got.Score, got.Best, best)
	}
}
