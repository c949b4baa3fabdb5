package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions [id]",
	Short: "Show recently played sessions",
	Long: `Display the most recent rows of the session journal, or a single
session when its id is given.

Examples:
  breakout sessions
  breakout sessions --limit 50 --db ./sessions.db
  breakout sessions 0b7e6c1a-5f3d-4c55-9d5e-2f7c1b8a9e10
  breakout sessions --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to show")
	sessionsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded session")
}

func runSessions(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	exitOnErr("opening session journal", err)
	defer store.Close()

	if flagClear {
		exitOnErr("clearing sessions", store.ClearSessions())
		fmt.Println("Session journal cleared.")
		return
	}

	if len(args) == 1 {
		sess, err := store.SessionByID(args[0])
		exitOnErr("retrieving session", err)
		if sess == nil {
			fmt.Fprintf(os.Stderr, "No session with id %s\n", args[0])
			os.Exit(1)
		}
		fmt.Print(tui.SessionsTable([]storage.Session{*sess}, nil))
		return
	}

	sessions, err := store.RecentSessions(flagLimit)
	exitOnErr("retrieving sessions", err)
	stats, err := store.Stats()
	exitOnErr("retrieving stats", err)

	fmt.Print(tui.SessionsTable(sessions, stats))
}
