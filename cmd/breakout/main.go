// breakout is a paddle-and-ball arcade game for the terminal.
//
// Usage:
//
//	breakout play            - Play in this terminal
//	breakout serve           - Start SSH server for remote play
//	breakout sessions        - Show recently played sessions
//	breakout assets          - Check that all assets load
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--config <path>       - Custom breakout.yaml
//	--difficulty <name>   - easy, normal or hard
//	--assets <dir>        - Asset directory (default: embedded)
//	--db <path>           - Session journal (default: ~/.breakout/sessions.db)
//	--mute                - Disable audio
//	--strict              - Panic on simulation logic faults
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Log destination (default: ~/.breakout/breakout.log)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagConfig     string
	flagDifficulty string
	flagAssets     string
	flagDBPath     string
	flagMute       bool
	flagStrict     bool
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - bounce a ball into bricks in your terminal",
	Long: `Breakout is a terminal paddle-and-ball game.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  sessions  - Show the session journal
  assets    - Load every asset once and report problems

Examples:
  breakout play
  breakout play --difficulty hard --mute
  breakout serve --ssh :2222
  breakout sessions --limit 5
  breakout assets --assets ./my-assets`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom breakout.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Asset directory (empty = embedded assets)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.breakout/sessions.db", "Path to session journal database")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable audio")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "Panic on simulation logic faults")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default ~/.breakout/breakout.log, - for stderr)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(assetsCmd)
}
