package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var flagMode string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048 in this terminal",
	Long: `Start a local game.

Without --mode a menu lets you pick a mode or browse the high scores.
After a game you return to the menu to play again.

Controls:
  Arrows/WASD/hjkl - Slide the board
  Mouse drag       - Swipe
  P                - Pause
  R                - Restart
  C                - Keep going after reaching 2048
  B/Esc            - Back to menu (paused or game over)
  Ctrl+S           - Save a screenshot
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - No no-merge limit
  normal - Configured rules
  hard   - Tighter no-merge limit, 4s spawn a quarter of the time

Examples:
  t2048 play
  t2048 play --mode endless
  t2048 play --difficulty easy --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Mode to play directly: classic, endless")
}

func runPlay(cmd *cobra.Command, _ []string) {
	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
	}

	store := openStore()

	// The local TUI owns the terminal; nothing is logged while it runs.
	var runErr error
	if cmd.Flags().Changed("mode") {
		mode, err := game.ParseMode(flagMode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available modes.")
			os.Exit(1)
		}

		g, err := registry.Create(mode.ID(), cfg.Game)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			os.Exit(1)
		}
		runErr = tui.Run(g, store, rc, cfg.Game.SwipeThreshold, nil)
	} else {
		runErr = tui.RunSession(store, rc, cfg.Game, nil)
	}

	// Close store before potential exit
	if store != nil {
		//nolint:errcheck // Best-effort close
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
