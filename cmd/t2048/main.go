// t2048 plays 2048 in the terminal, over SSH, or in a browser.
//
// Usage:
//
//	t2048 play               - Play locally, picking a mode from the menu
//	t2048 play --mode endless - Play a mode directly
//	t2048 serve              - Start SSH server for remote play
//	t2048 web                - Start the browser front end
//	t2048 scores [mode]      - Show high scores for a mode
//	t2048 list               - List available modes
//	t2048 config             - Print the effective configuration
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible tile spawns
//	--db <path>          - Set database path (default: ~/.t2048/scores.db)
//	--config <path>      - Load configuration from a YAML file
//	--difficulty <name>  - Rule preset: easy, normal, hard
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/storage"

	// Import the game package to register its modes
	_ "github.com/vovakirdan/tui-2048/internal/game"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

var (
	// cfg is the loaded configuration with flags and presets applied.
	cfg config.Config

	// logger writes to stderr; the local TUI does not use it.
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - Join the numbers in your terminal",
	Long: `t2048 is the 2048 sliding puzzle for the terminal.

Slide the board with the arrow keys, WASD, hjkl or a mouse swipe.
Equal tiles merge; reach 2048 to win, or play endless mode until stuck.

Available commands:
  play     - Play locally
  serve    - Start SSH server for remote play
  web      - Start the browser front end
  scores   - View high scores
  list     - Show available modes
  config   - Print the effective configuration

Examples:
  t2048 play
  t2048 play --mode endless --difficulty hard
  t2048 serve --ssh :2222
  t2048 web --http :8080
  t2048 scores classic`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config: ~/.t2048/scores.db)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the configuration and builds the logger before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
		Level:           level,
	})

	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplyPreset(&loaded.Game, preset)

	if flagDBPath != "" {
		loaded.Storage.DBPath = flagDBPath
	}

	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	logger.Debug("configuration loaded", "difficulty", preset, "db", cfg.Storage.DBPath)
	return nil
}

// openStore opens the scores database. Play continues without one.
func openStore() *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "error", err)
		return nil
	}
	return store
}
