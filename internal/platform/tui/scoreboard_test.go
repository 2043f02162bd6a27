package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

func TestScoreboardShowsModesAndStats(t *testing.T) {
	store := openStore(t)
	//nolint:errcheck
	store.SaveScore(storage.Record{GameID: "2048", Score: 1234, MaxTile: 128, Moves: 200})
	//nolint:errcheck
	store.SaveScore(storage.Record{GameID: "2048", Score: 20480, MaxTile: 2048, Moves: 900, Won: true})
	//nolint:errcheck
	store.SaveScore(storage.Record{GameID: "2048_endless", Score: 777, MaxTile: 64, Moves: 90})

	m := NewScoreboardModel(store, 100, 30)
	view := m.View()

	for _, want := range []string{"HIGH SCORES", "2048 (Endless)", "20480", "1234", "2048*", "Wins      1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "777") {
		t.Error("endless scores should not be shown for classic")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	view = m.View()
	if !strings.Contains(view, "777") || strings.Contains(view, "20480") {
		t.Error("tab should switch to the endless scores")
	}

	// Cycling wraps around.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	m = next.(ScoreboardModel)
	if !strings.Contains(m.View(), "20480") {
		t.Error("next mode should wrap back to classic")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	view := m.View()
	if !strings.Contains(view, "No scores recorded yet") {
		t.Error("empty scoreboard should show a hint")
	}
	if !strings.Contains(view, "No games yet") {
		t.Error("empty scoreboard should show empty stats")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	sb := next.(ScoreboardModel)
	if !sb.IsGoingBack() || sb.IsQuitting() || cmd == nil {
		t.Error("esc should go back")
	}

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	sb = next.(ScoreboardModel)
	if !sb.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}
