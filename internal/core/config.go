package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic spawning.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig sized for a classic 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Best     int  // Best score seen by this session
	GameOver bool // Whether the game has ended (won or lost)
	Won      bool // Whether the game ended by reaching the target tile
	Paused   bool // Whether input is currently ignored
}

// StepResult is returned by Game.Step() after each input event.
type StepResult struct {
	State GameState
	Moved bool // Whether the grid changed
}
