package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/assets"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Load every asset once and report problems",
	Long: `Load the sprite sheets, sounds and UI texts synchronously.

Exits with status 1 when a sprite sheet is missing. Sounds that cannot be
loaded are reported in the log and skipped, as they are in the game.

Examples:
  breakout assets
  breakout assets --assets ./my-assets --log-file -`,
	Args: cobra.NoArgs,
	Run:  runAssets,
}

func runAssets(_ *cobra.Command, _ []string) {
	a, err := newApp()
	exitOnErr("loading config", err)
	defer a.Close()

	loader := a.loader()
	reg, err := loader.Load(context.Background(), assets.AllKinds, core.AllSounds)
	if err != nil {
		var assetErr *core.AssetError
		if errors.As(err, &assetErr) {
			fmt.Fprintf(os.Stderr, "Missing %s %q at %s\n", assetErr.Kind, assetErr.ID, assetErr.Path)
		}
		a.Close()
		exitOnErr("loading assets", err)
	}

	source := a.cfg.Assets.Dir
	if source == "" {
		source = "embedded"
	}
	fmt.Printf("Assets from %s\n\n", source)

	fmt.Printf("  %-14s  %-22s  %5s  %-9s  %s\n", "Sprite", "Sheet", "Index", "Size", "Glyph")
	for _, kind := range assets.AllKinds {
		info, err := reg.Sprite(kind)
		if err != nil {
			continue
		}
		fmt.Printf("  %-14s  %-22s  %5d  %-9s  %c\n",
			kind, info.Sheet, info.Index, fmt.Sprintf("%gx%g", info.Width, info.Height), info.Glyph)
	}

	fmt.Println()
	fmt.Printf("  %-14s  %s\n", "Sound", "Length")
	for _, id := range core.AllSounds {
		clip, ok := reg.Clip(id)
		if !ok {
			fmt.Printf("  %-14s  missing\n", id)
			continue
		}
		fmt.Printf("  %-14s  %s\n", id, clip.Duration())
	}

	texts, err := loader.Texts()
	exitOnErr("loading texts", err)
	fmt.Println()
	fmt.Printf("  %d UI texts\n", len(texts))
}
