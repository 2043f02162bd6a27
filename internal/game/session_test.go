package game

import (
	"encoding/json"
	"testing"
)

func countTiles(g Grid) int {
	n := 0
	for r := range Size {
		for c := range Size {
			if g[r][c] != 0 {
				n++
			}
		}
	}
	return n
}

func TestNewSession(t *testing.T) {
	s := NewSession(DefaultRules(), 42)

	if got := countTiles(s.Grid()); got != 2 {
		t.Errorf("new session should have 2 tiles, got %d", got)
	}
	for _, v := range s.Grid().Cells() {
		if v != 0 && v != 2 {
			t.Errorf("initial tile = %d, want 2", v)
		}
	}
	if s.Score() != 0 || s.Status() != StatusPlaying || s.Moves() != 0 {
		t.Errorf("new session state: score=%d status=%s moves=%d", s.Score(), s.Status(), s.Moves())
	}
}

func TestNewSessionDefaultsInitialTiles(t *testing.T) {
	rules := DefaultRules()
	rules.InitialTiles = 0
	s := NewSession(rules, 1)
	if got := countTiles(s.Grid()); got != 2 {
		t.Errorf("InitialTiles 0 should fall back to 2, got %d tiles", got)
	}
}

func TestSpawnFourProbability(t *testing.T) {
	rules := DefaultRules()
	rules.SpawnFourProb = 1
	rules.InitialTiles = 5
	s := NewSession(rules, 7)

	for _, v := range s.Grid().Cells() {
		if v != 0 && v != 4 {
			t.Errorf("spawn probability 1 should always give 4, got %d", v)
		}
	}
}

func TestSessionMoveSpawnsOnChange(t *testing.T) {
	s := NewSession(DefaultRules(), 1)
	s.grid = Grid{{2, 2, 0, 0}}

	out := s.Move(DirLeft)
	if !out.Changed || !out.Merged || out.Gained != 4 {
		t.Fatalf("Move(left) outcome = %+v", out)
	}
	if !out.HasSpawn {
		t.Fatal("an effective move should spawn a tile")
	}
	if s.Score() != 4 || s.Best() != 4 {
		t.Errorf("score=%d best=%d, want 4 and 4", s.Score(), s.Best())
	}
	if got := countTiles(s.Grid()); got != 2 {
		t.Errorf("tiles after merge+spawn = %d, want 2", got)
	}
	if v := s.Grid()[out.Spawned.Row][out.Spawned.Col]; v != 2 {
		t.Errorf("spawned tile = %d, want 2", v)
	}
	if p, ok := s.LastSpawn(); !ok || p != out.Spawned {
		t.Errorf("LastSpawn() = %+v, %v", p, ok)
	}
}

func TestSessionNoOpMove(t *testing.T) {
	s := NewSession(DefaultRules(), 1)
	s.grid = Grid{{4, 2, 0, 0}}
	before := s.Grid()

	out := s.Move(DirLeft)
	if out.Changed || out.HasSpawn {
		t.Errorf("no-op move should not change or spawn: %+v", out)
	}
	if s.Grid() != before {
		t.Errorf("grid changed on no-op move: %v", s.Grid())
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, want 0", s.Score())
	}
	if s.NoMergeCount() != 1 {
		t.Errorf("no-op moves count toward the no-merge streak, got %d", s.NoMergeCount())
	}
}

func TestSessionNoMergeLimit(t *testing.T) {
	s := NewSession(DefaultRules(), 1)
	s.grid = Grid{{2, 4, 0, 0}}

	for i := range 3 {
		s.Move(DirLeft)
		if s.Status() != StatusPlaying {
			t.Fatalf("lost too early after %d moves", i+1)
		}
	}

	out := s.Move(DirLeft)
	if out.Status != StatusLost {
		t.Fatalf("status after 4 non-merging moves = %s, want lost", out.Status)
	}
	if s.LossReason() != LossNoMerge {
		t.Errorf("loss reason = %q, want %q", s.LossReason(), LossNoMerge)
	}
}

func TestSessionNoMergeLimitDisabled(t *testing.T) {
	rules := DefaultRules()
	rules.NoMergeLimit = 0
	s := NewSession(rules, 1)
	s.grid = Grid{{2, 4, 0, 0}}

	for range 10 {
		s.Move(DirLeft)
	}
	if s.Status() != StatusPlaying {
		t.Errorf("limit 0 should never lose by streak, status = %s", s.Status())
	}
}

func TestSessionMergeResetsStreak(t *testing.T) {
	s := NewSession(DefaultRules(), 1)
	s.grid = Grid{{2, 2, 0, 0}}
	s.noMerge = 3

	s.Move(DirLeft)
	if s.NoMergeCount() != 0 {
		t.Errorf("merge should reset the streak, got %d", s.NoMergeCount())
	}
	if s.Status() != StatusPlaying {
		t.Errorf("status = %s, want playing", s.Status())
	}
}

func TestSessionGameOver(t *testing.T) {
	s := NewSession(DefaultRules(), 1)
	s.grid = Grid{
		{0, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 4, 8},
		{16, 32, 64, 128},
	}

	out := s.Move(DirLeft)
	if !out.HasSpawn || out.Spawned != (Point{Row: 0, Col: 3}) {
		t.Fatalf("expected spawn in the only empty cell, got %+v", out)
	}
	if s.Status() != StatusLost || s.LossReason() != LossNoMoves {
		t.Errorf("status=%s reason=%q, want lost/no_moves", s.Status(), s.LossReason())
	}

	moves := s.Moves()
	s.Move(DirRight)
	if s.Moves() != moves {
		t.Error("moves on a finished session should be ignored")
	}
}

func TestSessionWinAndContinue(t *testing.T) {
	s := NewSession(DefaultRules(), 1)
	s.grid = Grid{{1024, 1024, 0, 0}}

	out := s.Move(DirLeft)
	if out.Status != StatusWon {
		t.Fatalf("status = %s, want won", out.Status)
	}
	if s.Score() != 2048 {
		t.Errorf("score = %d, want 2048", s.Score())
	}

	grid := s.Grid()
	s.Move(DirRight)
	if s.Grid() != grid {
		t.Error("moves after a win should be ignored until Continue")
	}

	if !s.Continue() {
		t.Fatal("Continue() should succeed on a won session")
	}
	if s.Status() != StatusPlaying {
		t.Errorf("status after Continue = %s, want playing", s.Status())
	}

	s.Move(DirRight)
	if s.Status() == StatusWon {
		t.Error("win should not re-trigger after Continue")
	}
	if s.Continue() {
		t.Error("Continue() on a non-won session should return false")
	}
}

func TestSessionEndlessNeverWins(t *testing.T) {
	rules := DefaultRules()
	rules.Target = 0
	s := NewSession(rules, 1)
	s.grid = Grid{{1024, 1024, 0, 0}}

	s.Move(DirLeft)
	if s.Status() != StatusPlaying {
		t.Errorf("target 0 should not win, status = %s", s.Status())
	}
}

func TestSessionDeterministic(t *testing.T) {
	rules := DefaultRules()
	rules.NoMergeLimit = 0

	a := NewSession(rules, 12345)
	b := NewSession(rules, 12345)

	if a.Grid() != b.Grid() {
		t.Fatal("same seed should produce the same starting grid")
	}

	seq := []Direction{DirLeft, DirUp, DirRight, DirDown, DirLeft, DirLeft, DirUp, DirRight}
	for i, d := range seq {
		a.Move(d)
		b.Move(d)
		if a.Grid() != b.Grid() {
			t.Fatalf("grids diverged at move %d", i)
		}
		if a.Score() != b.Score() {
			t.Fatalf("scores diverged at move %d", i)
		}
	}
}

func TestSessionBestScoreNeverDecreases(t *testing.T) {
	s := NewSession(DefaultRules(), 1)
	s.grid = Grid{{2, 2, 0, 0}}
	s.Move(DirLeft)

	s.NewGame()
	if s.Score() != 0 {
		t.Errorf("NewGame should reset score, got %d", s.Score())
	}
	if s.Best() != 4 {
		t.Errorf("NewGame should keep best, got %d", s.Best())
	}

	s.SetBestScore(2)
	if s.Best() != 4 {
		t.Errorf("SetBestScore should not lower best, got %d", s.Best())
	}

	s.SetBestScore(50)
	if s.Best() != 50 {
		t.Errorf("SetBestScore(50) best = %d", s.Best())
	}
}

func TestSessionIgnoresInvalidDirection(t *testing.T) {
	s := NewSession(DefaultRules(), 1)
	before := s.Grid()

	s.Move(Direction(-1))
	if s.Moves() != 0 || s.Grid() != before {
		t.Error("invalid direction should be ignored")
	}
}

func TestSessionSnapshot(t *testing.T) {
	s := NewSession(DefaultRules(), 3)
	s.grid = Grid{{2, 2, 0, 0}}
	s.Move(DirLeft)

	snap := s.Snapshot(ModeClassic)
	if snap.Score != 4 || snap.Moves != 1 || snap.Status != StatusPlaying {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.Target != 2048 || snap.NoMergeLimit != 4 {
		t.Errorf("snapshot rules: target=%d limit=%d", snap.Target, snap.NoMergeLimit)
	}
	if snap.Spawned == nil {
		t.Fatal("snapshot should carry the spawned cell")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("json.Marshal() failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v", err)
	}
	if decoded["mode"] != "classic" || decoded["status"] != "playing" {
		t.Errorf("json fields: mode=%v status=%v", decoded["mode"], decoded["status"])
	}
	if _, ok := decoded["loss_reason"]; ok {
		t.Error("loss_reason should be omitted while playing")
	}
	if rows, ok := decoded["grid"].([]any); !ok || len(rows) != Size {
		t.Errorf("grid should encode as %d rows, got %v", Size, decoded["grid"])
	}
}
