package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-breakout/internal/assets"
	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/audio/device"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/ecs"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/mode"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
)

// app holds what every command builds from the global flags.
type app struct {
	cfg     config.BreakoutConfig
	params  breakout.Params
	logger  *log.Logger
	logFile io.Closer
}

func newApp() (*app, error) {
	cfg, err := config.LoadBreakout(flagConfig)
	if err != nil {
		return nil, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return nil, err
	}
	config.ApplyPreset(&cfg, preset)
	if flagAssets != "" {
		cfg.Assets.Dir = flagAssets
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, params: breakout.ParamsFromConfig(cfg)}
	if err := a.openLog(); err != nil {
		return nil, err
	}
	a.logger.Debug("config loaded", "difficulty", preset, "assets", cfg.Assets.Dir, "audio", cfg.Audio.Enabled)
	return a, nil
}

// openLog sends logs to a file so they do not corrupt the TUI.
func (a *app) openLog() error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	if flagLogFile != "-" {
		path := flagLogFile
		if path == "" {
			path = filepath.Join(config.UserDir(), "breakout.log")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		w, a.logFile = f, f
	}

	a.logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "breakout",
		Level:           level,
	})
	return nil
}

func (a *app) Close() {
	if a.logFile != nil {
		a.logFile.Close()
	}
}

func (a *app) sampleRate() beep.SampleRate {
	if a.cfg.Audio.SampleRate > 0 {
		return beep.SampleRate(a.cfg.Audio.SampleRate)
	}
	return audio.DefaultSampleRate
}

func (a *app) loader() *assets.Loader {
	return assets.NewLoader(assets.Open(a.cfg.Assets.Dir), a.sampleRate(), a.logger)
}

// sounds opens the speaker when audio is enabled. The board stays silent
// without a device; close releases the device.
func (a *app) sounds() (sink core.SoundSink, closeFn func()) {
	if !a.cfg.Audio.Enabled {
		return core.Mute, func() {}
	}

	var out audio.Output
	spk, err := device.NewSpeaker(a.sampleRate())
	if err != nil {
		a.logger.Warn("audio disabled", "err", err)
	} else {
		out = spk
	}

	board := audio.NewBoard(out, a.cfg.Audio.Volume, a.logger)
	return board, func() {
		if spk != nil {
			spk.Close()
		}
	}
}

func (a *app) newMachine(ctx context.Context, sounds core.SoundSink, logger *log.Logger) *mode.Machine {
	return mode.NewMachine(ctx, mode.Deps{
		World:    ecs.NewWorld(),
		Assets:   a.loader(),
		Sounds:   sounds,
		Params:   a.params,
		Debounce: a.cfg.Physics.Debounce,
		Strict:   flagStrict,
		Logger:   logger,
	})
}

func (a *app) tuiOptions(width, height int) tui.Options {
	return tui.Options{
		Config: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
		},
		FieldW: a.params.FieldWidth,
		FieldH: a.params.FieldHeight,
		Keys:   tui.NewKeyMap(a.cfg.Bindings),
		Logger: a.logger,
	}
}

func exitOnErr(prefix string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", prefix, err)
	os.Exit(1)
}
