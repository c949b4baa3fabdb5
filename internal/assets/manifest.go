package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Manifest paths for sounds and UI labels.
const (
	SoundManifest = "sounds/sounds.yaml"
	SoundDir      = "sounds"
	TextManifest  = "ui/text.yaml"
)

// SheetManifest is the YAML form of a sprite sheet.
type SheetManifest struct {
	Texture string      `yaml:"texture"`
	Sprites []SpriteDef `yaml:"sprites"`
}

// SpriteDef describes one sprite in a sheet.
type SpriteDef struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Glyph  string  `yaml:"glyph"`
	Color  string  `yaml:"color"`
}

// SoundManifestFile is the YAML form of the sound list.
type SoundManifestFile struct {
	Sounds []SoundDef `yaml:"sounds"`
}

// SoundDef describes one sound effect.
type SoundDef struct {
	ID    string           `yaml:"id"`
	File  string           `yaml:"file"`
	Synth *audio.SynthSpec `yaml:"synth"`
}

// TextManifestFile is the YAML form of the menu labels.
type TextManifestFile struct {
	Texts []TextDef `yaml:"texts"`
}

// TextDef is a UI label as authored.
type TextDef struct {
	ID    string    `yaml:"id"`
	Text  string    `yaml:"text"`
	X     float64   `yaml:"x"`
	Y     float64   `yaml:"y"`
	Color core.RGBA `yaml:"color"`
}

func readYAML(fsys fs.FS, path string, out any) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// readSheet loads and validates a sprite sheet manifest.
func readSheet(fsys fs.FS, path string) (*SheetManifest, error) {
	var m SheetManifest
	if err := readYAML(fsys, path, &m); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &core.AssetError{Kind: "sprite sheet", ID: path, Path: path, Err: err}
		}
		return nil, fmt.Errorf("assets: %w", err)
	}
	for i, s := range m.Sprites {
		if s.Width <= 0 || s.Height <= 0 {
			return nil, fmt.Errorf("assets: %s sprite %d (%s): size must be positive", path, i, s.Name)
		}
		if _, err := core.ParseColor(s.Color); err != nil {
			return nil, fmt.Errorf("assets: %s sprite %d (%s): %w", path, i, s.Name, err)
		}
	}
	return &m, nil
}

func (d SpriteDef) glyph() rune {
	if d.Glyph == "" {
		return '#'
	}
	r, _ := utf8.DecodeRuneInString(d.Glyph)
	return r
}
