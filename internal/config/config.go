// Package config provides YAML-based configuration loading and difficulty
// presets for the 2048 game and its servers.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the top-level configuration file.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
}

// GameConfig holds the rules of a game session.
type GameConfig struct {
	WinTile        int     `yaml:"win_tile"`
	SpawnFourProb  float64 `yaml:"spawn_four_prob"`
	NoMergeLimit   int     `yaml:"no_merge_limit"`
	InitialTiles   int     `yaml:"initial_tiles"`
	SwipeThreshold float64 `yaml:"swipe_threshold"`
}

// ServerConfig holds the SSH and HTTP server settings.
type ServerConfig struct {
	SSHAddr            string `yaml:"ssh_addr"`
	HostKeyPath        string `yaml:"host_key_path"` // Empty means ~/.t2048/host_key
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
	HTTPAddr           string `yaml:"http_addr"`
}

// IdleTimeout returns the SSH idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// StorageConfig holds the score database location.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// Default returns the built-in configuration. It matches defaults/t2048.yaml.
func Default() Config {
	return Config{
		Game: GameConfig{
			WinTile:        2048,
			SpawnFourProb:  0,
			NoMergeLimit:   4,
			InitialTiles:   2,
			SwipeThreshold: 1,
		},
		Server: ServerConfig{
			SSHAddr:            ":23234",
			IdleTimeoutMinutes: 30,
			HTTPAddr:           ":8080",
		},
		Storage: StorageConfig{
			DBPath: "~/.t2048/scores.db",
		},
	}
}

// Validate checks value ranges. All problems are reported together.
func (c Config) Validate() error {
	var errs []error

	g := c.Game
	if g.WinTile < 4 || g.WinTile&(g.WinTile-1) != 0 {
		errs = append(errs, fmt.Errorf("game.win_tile must be a power of two >= 4, got %d", g.WinTile))
	}
	if g.SpawnFourProb < 0 || g.SpawnFourProb > 1 {
		errs = append(errs, fmt.Errorf("game.spawn_four_prob must be within [0, 1], got %g", g.SpawnFourProb))
	}
	if g.NoMergeLimit < 0 {
		errs = append(errs, fmt.Errorf("game.no_merge_limit must not be negative, got %d", g.NoMergeLimit))
	}
	if g.InitialTiles < 1 || g.InitialTiles > 16 {
		errs = append(errs, fmt.Errorf("game.initial_tiles must be within [1, 16], got %d", g.InitialTiles))
	}
	if g.SwipeThreshold < 0 {
		errs = append(errs, fmt.Errorf("game.swipe_threshold must not be negative, got %g", g.SwipeThreshold))
	}
	if c.Server.IdleTimeoutMinutes < 0 {
		errs = append(errs, fmt.Errorf("server.idle_timeout_minutes must not be negative, got %d", c.Server.IdleTimeoutMinutes))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
