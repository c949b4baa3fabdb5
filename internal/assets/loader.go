// Package assets loads sprite sheet, sound and UI manifests.
//
// Sprite sheets are required: a missing sheet fails the whole preload with a
// *core.AssetError naming the path. Sounds are optional: a sound that cannot
// be decoded or synthesized is logged and left out of the registry.
package assets

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

//go:embed data
var dataFS embed.FS

// Embedded returns the asset set compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		panic(err) // the directory is embedded above
	}
	return sub
}

// Open returns the asset filesystem rooted at dir, or the embedded set when dir is empty.
func Open(dir string) fs.FS {
	if dir == "" {
		return Embedded()
	}
	return os.DirFS(dir)
}

// Loader reads assets from a filesystem.
type Loader struct {
	fsys   fs.FS
	rate   beep.SampleRate
	logger *log.Logger
}

// NewLoader creates a loader. A nil fsys uses the embedded assets; clips are
// rendered at rate.
func NewLoader(fsys fs.FS, rate beep.SampleRate, logger *log.Logger) *Loader {
	if fsys == nil {
		fsys = Embedded()
	}
	if rate <= 0 {
		rate = audio.DefaultSampleRate
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{fsys: fsys, rate: rate, logger: logger}
}

// Preload starts loading the given sprites and sounds in the background and
// returns immediately. Poll the returned token from the frame loop.
func (l *Loader) Preload(ctx context.Context, kinds []Kind, sounds []core.SoundID) *Progress {
	sheets := make([]string, 0, 2)
	seen := make(map[string]bool)
	for _, k := range kinds {
		if !seen[k.Sheet()] {
			seen[k.Sheet()] = true
			sheets = append(sheets, k.Sheet())
		}
	}

	if len(sheets) == 0 && len(sounds) == 0 {
		return Ready(NewRegistry(), nil)
	}

	p, step, finish := Pending(len(sheets) + len(sounds))
	reg := NewRegistry()
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)

	loadedSheets := make(map[string]*SheetManifest, len(sheets))
	for _, sheet := range sheets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := readSheet(l.fsys, sheet)
			if err != nil {
				return err
			}
			mu.Lock()
			loadedSheets[sheet] = m
			mu.Unlock()
			step()
			l.logger.Debug("sprite sheet loaded", "path", sheet, "sprites", len(m.Sprites))
			return nil
		})
	}

	if len(sounds) > 0 {
		g.Go(func() error {
			l.loadSounds(gctx, sounds, reg, &mu, step)
			return nil
		})
	}

	go func() {
		err := g.Wait()
		if err == nil {
			err = resolveSprites(kinds, loadedSheets, reg)
		}
		if err != nil {
			l.logger.Error("asset preload failed", "err", err)
			finish(nil, err)
			return
		}
		l.logger.Info("assets loaded", "sprites", reg.Sprites(), "sounds", reg.Clips())
		finish(reg, nil)
	}()

	return p
}

// Load loads synchronously.
func (l *Loader) Load(ctx context.Context, kinds []Kind, sounds []core.SoundID) (*Registry, error) {
	return l.Preload(ctx, kinds, sounds).Wait(ctx)
}

// Texts reads the menu label manifest.
func (l *Loader) Texts() ([]TextDef, error) {
	var m TextManifestFile
	if err := readYAML(l.fsys, TextManifest, &m); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &core.AssetError{Kind: "ui text", ID: "texts", Path: TextManifest, Err: err}
		}
		return nil, fmt.Errorf("assets: %w", err)
	}
	return m.Texts, nil
}

func resolveSprites(kinds []Kind, sheets map[string]*SheetManifest, reg *Registry) error {
	for _, k := range kinds {
		m := sheets[k.Sheet()]
		if k.Index() >= len(m.Sprites) {
			return &core.AssetError{
				Kind: "sprite",
				ID:   k.String(),
				Path: k.Sheet(),
				Err:  fmt.Errorf("sheet has %d sprites, need index %d", len(m.Sprites), k.Index()),
			}
		}
		def := m.Sprites[k.Index()]
		color, _ := core.ParseColor(def.Color) // validated by readSheet
		reg.PutSprite(SpriteInfo{
			Kind:   k,
			Sheet:  k.Sheet(),
			Index:  k.Index(),
			Width:  def.Width,
			Height: def.Height,
			Glyph:  def.glyph(),
			Color:  color,
		})
	}
	return nil
}

func (l *Loader) loadSounds(ctx context.Context, ids []core.SoundID, reg *Registry, mu *sync.Mutex, step func()) {
	var manifest SoundManifestFile
	if err := readYAML(l.fsys, SoundManifest, &manifest); err != nil {
		l.logger.Warn("sound manifest unavailable, running silent", "path", SoundManifest, "err", err)
		for range ids {
			step()
		}
		return
	}

	defs := make(map[string]SoundDef, len(manifest.Sounds))
	for _, d := range manifest.Sounds {
		defs[d.ID] = d
	}

	var g errgroup.Group
	g.SetLimit(4)
	for _, id := range ids {
		g.Go(func() error {
			defer step()
			if ctx.Err() != nil {
				return nil
			}
			def, ok := defs[id.String()]
			if !ok {
				l.logger.Warn("sound not in manifest", "sound", id)
				return nil
			}
			clip, err := l.loadClip(def)
			if err != nil {
				l.logger.Warn("sound unavailable", "sound", id, "err", err)
				return nil
			}
			mu.Lock()
			reg.PutClip(id, clip)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
}

func (l *Loader) loadClip(def SoundDef) (*audio.Clip, error) {
	p := path.Join(SoundDir, def.File)
	if def.File != "" {
		f, err := l.fsys.Open(p)
		switch {
		case err == nil:
			clip, derr := audio.Decode(f, l.rate)
			f.Close()
			if derr == nil {
				return clip, nil
			}
			l.logger.Warn("sound decode failed", "sound", def.ID, "path", p, "err", derr)
		case !errors.Is(err, fs.ErrNotExist):
			l.logger.Warn("sound open failed", "sound", def.ID, "path", p, "err", err)
		}
	}
	if def.Synth != nil {
		return audio.Synthesize(*def.Synth, l.rate)
	}
	return nil, &core.AssetError{Kind: "sound", ID: def.ID, Path: p}
}
