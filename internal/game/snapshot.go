package game

// Snapshot captures the complete session state for transport and tests.
type Snapshot struct {
	Mode         Mode       `json:"mode"`
	Grid         Grid       `json:"grid"`
	Score        int        `json:"score"`
	Best         int        `json:"best"`
	MaxTile      int        `json:"max_tile"`
	Target       int        `json:"target"`
	Moves        int        `json:"moves"`
	NoMergeCount int        `json:"no_merge_count"`
	NoMergeLimit int        `json:"no_merge_limit"`
	Status       Status     `json:"status"`
	LossReason   LossReason `json:"loss_reason,omitempty"`
	Spawned      *Point     `json:"spawned,omitempty"`
}

// Snapshot returns the session state labelled with the given mode.
func (s *Session) Snapshot(mode Mode) Snapshot {
	snap := Snapshot{
		Mode:         mode,
		Grid:         s.grid,
		Score:        s.score,
		Best:         s.best,
		MaxTile:      s.grid.MaxTile(),
		Target:       s.rules.Target,
		Moves:        s.moves,
		NoMergeCount: s.noMerge,
		NoMergeLimit: s.rules.NoMergeLimit,
		Status:       s.status,
		LossReason:   s.reason,
	}
	if p, ok := s.LastSpawn(); ok {
		snap.Spawned = &p
	}
	return snap
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{Mode: g.mode, Best: g.best, Status: StatusPlaying}
	}
	return g.session.Snapshot(g.mode)
}
