package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/web"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the browser front end",
	Long: `Serve 2048 in the browser.

The page plays over a WebSocket at /ws; every tab gets its own game.
Scores share the same database as the terminal and SSH games.

Endpoints:
  /             - The game page
  /ws?mode=     - WebSocket session (classic or endless)
  /api/scores   - Top scores as JSON (?mode=classic|endless)
  /api/modes    - Available modes as JSON

Examples:
  t2048 web
  t2048 web --http :9000 --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP server address (default from config: :8080)")
}

func runWeb(_ *cobra.Command, _ []string) {
	if flagHTTPAddr != "" {
		cfg.Server.HTTPAddr = flagHTTPAddr
	}

	store := openStore()

	srv := web.New(web.Config{
		Addr: cfg.Server.HTTPAddr,
		Game: cfg.Game,
		Seed: flagSeed,
	}, store, logger.WithPrefix("t2048-web"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := srv.ListenAndServe(ctx)

	if store != nil {
		//nolint:errcheck // Best-effort close on shutdown
		store.Close()
	}

	if runErr != nil {
		logger.Error("server error", "error", runErr)
		os.Exit(1)
	}
}
