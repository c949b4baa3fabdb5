package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play breakout in this terminal",
	Long: `Start the game in this terminal.

Controls (default bindings, see the bindings section of breakout.yaml):
  Left/A/H, Right/D/L  - Move the paddle
  Up/W/K, Down/S/J     - Move the menu highlight
  Enter                - Select
  Space                - Pause / resume
  Esc/Q/Ctrl+C         - Quit

Difficulty options (initial ball speed):
  easy   - 0.75x
  normal - as configured
  hard   - 1.5x

Examples:
  breakout play
  breakout play --difficulty easy
  breakout play --config ./my-breakout.yaml --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	a, err := newApp()
	exitOnErr("loading config", err)
	defer a.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sounds, closeSounds := a.sounds()
	machine := a.newMachine(ctx, sounds, a.logger)

	res, runErr := tui.Run(ctx, machine, a.tuiOptions(width, height))
	closeSounds()
	a.logger.Info("session finished", "frames", res.Frames, "bricks_left", res.BricksLeft, "reason", res.EndReason())

	journal(a, res)

	if runErr != nil {
		a.Close()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// journal records the session. Failures only warn; the game already ran.
func journal(a *app, res tui.Result) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		a.logger.Warn("could not open session journal", "err", err)
		return
	}
	defer store.Close()

	if _, err := store.SaveSession(res.Session()); err != nil {
		a.logger.Warn("could not journal session", "err", err)
	}
}
