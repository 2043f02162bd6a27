package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows every registered game mode and the ID its scores are stored under.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	modes := game.Modes()

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := len("Mode")
	for _, m := range modes {
		maxNameLen = max(maxNameLen, len(m))
	}

	// Print header
	fmt.Printf("  %-*s  %-14s  %s\n", maxNameLen, "Mode", "Score ID", "Title")
	fmt.Printf("  %-*s  %-14s  %s\n", maxNameLen, "----", "--------", "-----")

	for _, m := range modes {
		if !registry.Exists(m.ID()) {
			continue
		}
		fmt.Printf("  %-*s  %-14s  %s\n", maxNameLen, m, m.ID(), registry.Title(m.ID()))
	}

	fmt.Println()
	fmt.Println("Run 't2048 play --mode <mode>' to play a mode.")
}
