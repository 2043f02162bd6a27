package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "classic" // Reaching the win tile ends the game
	ModeEndless Mode = "endless" // No win; play until the game is lost
)

// Modes lists every mode in menu order.
func Modes() []Mode {
	return []Mode{ModeClassic, ModeEndless}
}

// ID returns the registry and score storage key for the mode.
func (m Mode) ID() string {
	if m == ModeEndless {
		return "2048_endless"
	}
	return "2048"
}

// Title returns the display name.
func (m Mode) Title() string {
	if m == ModeEndless {
		return "2048 (Endless)"
	}
	return "2048"
}

// ParseMode accepts a mode name ("classic", "endless") or a mode ID.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "classic", "2048":
		return ModeClassic, nil
	case "endless", "2048_endless":
		return ModeEndless, nil
	}
	return "", fmt.Errorf("game: unknown mode %q (want classic or endless)", s)
}

// RulesFor derives session rules for a mode from the game configuration.
func RulesFor(mode Mode, cfg config.GameConfig) Rules {
	rules := Rules{
		Target:        cfg.WinTile,
		SpawnFourProb: cfg.SpawnFourProb,
		NoMergeLimit:  cfg.NoMergeLimit,
		InitialTiles:  cfg.InitialTiles,
	}
	if mode == ModeEndless {
		rules.Target = 0
	}
	return rules
}

func init() {
	for _, mode := range Modes() {
		registry.Register(mode.ID(), func(cfg config.GameConfig) registry.Game {
			return New(mode, cfg)
		})
	}
}
