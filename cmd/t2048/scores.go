package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 high scores and statistics for a mode.
The mode defaults to classic.

Examples:
  t2048 scores
  t2048 scores endless
  t2048 scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the mode")
}

func runScores(_ *cobra.Command, args []string) {
	var name string
	if len(args) > 0 {
		name = args[0]
	}

	mode, err := game.ParseMode(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available modes.")
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(mode.ID()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s\n", mode.Title())
		return
	}

	scores, err := store.TopScores(mode.ID(), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", mode.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play --mode %s' to set the first high score!\n", mode)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "Rank", "Score", "Tile", "Moves", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "----", "-----", "----", "-----", "----")

	for i, entry := range scores {
		tile := fmt.Sprintf("%d", entry.MaxTile)
		if entry.Won {
			tile += "*"
		}
		fmt.Printf("  %-4d  %-8d  %-6s  %-6d  %s\n",
			i+1, entry.Score, tile, entry.Moves, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	// Show aggregated stats
	stats, err := store.GetGameStats(mode.ID())
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Games: %d  Wins: %d  Best: %d  Best tile: %d  Avg: %.0f\n",
		stats.GamesCount, stats.Wins, stats.HighScore, stats.BestTile, stats.AvgScore)
}
