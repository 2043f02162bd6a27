package game

import (
	"math/rand"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// LossReason explains why a session was lost.
type LossReason string

const (
	LossNone    LossReason = ""
	LossNoMoves LossReason = "no_moves"
	LossNoMerge LossReason = "no_merge_limit"
)

// Rules are the tunable parameters of a session.
type Rules struct {
	Target        int     // Tile value that wins; 0 disables winning
	SpawnFourProb float64 // Probability that a spawned tile is 4 instead of 2
	NoMergeLimit  int     // Consecutive moves without a merge that lose; 0 disables
	InitialTiles  int     // Tiles placed on a fresh board
}

// DefaultRules returns the classic rules: win at 2048, always spawn 2,
// lose after four consecutive moves without a merge.
func DefaultRules() Rules {
	return Rules{
		Target:        2048,
		SpawnFourProb: 0,
		NoMergeLimit:  4,
		InitialTiles:  2,
	}
}

// MoveOutcome reports what a single move did.
type MoveOutcome struct {
	Changed  bool
	Merged   bool
	Gained   int
	Spawned  Point
	HasSpawn bool
	Status   Status
}

// Session owns one game: the grid, the score, the best score and the RNG.
// A session is not safe for concurrent use.
type Session struct {
	rules Rules
	rng   *rand.Rand

	grid    Grid
	score   int
	best    int
	noMerge int
	moves   int

	status    Status
	reason    LossReason
	continued bool // Player chose to keep going after a win
	lastSpawn *Point
}

// NewSession creates a session and starts its first game.
func NewSession(rules Rules, seed int64) *Session {
	if rules.InitialTiles <= 0 {
		rules.InitialTiles = 2
	}
	s := &Session{
		rules: rules,
		rng:   rand.New(rand.NewSource(seed)),
	}
	s.NewGame()
	return s
}

// Reseed replaces the spawn RNG. The current grid is untouched.
func (s *Session) Reseed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// NewGame clears the board and score and spawns the initial tiles.
// The best score is kept.
func (s *Session) NewGame() {
	s.grid = Grid{}
	s.score = 0
	s.noMerge = 0
	s.moves = 0
	s.status = StatusPlaying
	s.reason = LossNone
	s.continued = false
	s.lastSpawn = nil

	for range s.rules.InitialTiles {
		s.spawnTile()
	}
}

// spawnTile places a new tile in a random empty cell.
// Returns false when the board is full.
func (s *Session) spawnTile() (Point, bool) {
	empty := s.grid.EmptyCells()
	if len(empty) == 0 {
		return Point{}, false
	}

	cell := empty[s.rng.Intn(len(empty))]

	value := 2
	if s.rules.SpawnFourProb > 0 && s.rng.Float64() < s.rules.SpawnFourProb {
		value = 4
	}

	s.grid[cell.Row][cell.Col] = value
	s.lastSpawn = &cell
	return cell, true
}

// Move slides the board toward dir. A new tile is spawned only when the
// board changed. Moves on a finished session are ignored.
func (s *Session) Move(dir Direction) MoveOutcome {
	if s.status != StatusPlaying || !dir.Valid() {
		return MoveOutcome{Status: s.status}
	}

	res := s.grid.Move(dir)
	s.moves++

	if res.Merged {
		s.noMerge = 0
	} else {
		s.noMerge++
	}

	out := MoveOutcome{
		Changed: res.Changed,
		Merged:  res.Merged,
		Gained:  res.Gained,
	}

	if res.Changed {
		s.grid = res.Grid
		s.score += res.Gained
		if s.score > s.best {
			s.best = s.score
		}
		out.Spawned, out.HasSpawn = s.spawnTile()
	}

	s.updateStatus()
	out.Status = s.status
	return out
}

// updateStatus applies the terminal-state checks in order: win, no moves,
// no-merge limit.
func (s *Session) updateStatus() {
	switch {
	case !s.continued && IsWin(s.grid, s.rules.Target):
		s.status = StatusWon
	case IsGameOver(s.grid):
		s.status = StatusLost
		s.reason = LossNoMoves
	case s.rules.NoMergeLimit > 0 && s.noMerge >= s.rules.NoMergeLimit:
		s.status = StatusLost
		s.reason = LossNoMerge
	}
}

// Continue resumes play after a win. Returns false if the session was not won.
func (s *Session) Continue() bool {
	if s.status != StatusWon {
		return false
	}
	s.continued = true
	s.status = StatusPlaying
	s.updateStatus()
	return true
}

// SetBestScore raises the best score to n. Lower values are ignored.
func (s *Session) SetBestScore(n int) {
	if n > s.best {
		s.best = n
	}
}

// Grid returns a copy of the current board.
func (s *Session) Grid() Grid { return s.grid }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Best returns the best score seen by this session.
func (s *Session) Best() int { return s.best }

// NoMergeCount returns the number of consecutive moves without a merge.
func (s *Session) NoMergeCount() int { return s.noMerge }

// Moves returns the number of moves attempted in the current game.
func (s *Session) Moves() int { return s.moves }

// Status returns the session status.
func (s *Session) Status() Status { return s.status }

// LossReason returns why the game was lost, or LossNone.
func (s *Session) LossReason() LossReason { return s.reason }

// Rules returns the rules the session plays by.
func (s *Session) Rules() Rules { return s.rules }

// Finished reports whether the game has ended.
func (s *Session) Finished() bool { return s.status != StatusPlaying }

// LastSpawn returns the cell of the most recently spawned tile.
func (s *Session) LastSpawn() (Point, bool) {
	if s.lastSpawn == nil {
		return Point{}, false
	}
	return *s.lastSpawn, true
}
