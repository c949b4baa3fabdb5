package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// AxisHold is how long a left/right press keeps the axis deflected.
// Terminals report key repeats but never key releases.
const AxisHold = 120 * time.Millisecond

// KeyMap defines the key bindings of the game.
type KeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Return key.Binding
	Space  key.Binding
	Escape key.Binding
	Help   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Return, k.Space, k.Escape, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Space},
		{k.Up, k.Down, k.Return},
		{k.Escape, k.Help},
	}
}

// NewKeyMap builds the bindings from the config key lists.
func NewKeyMap(b config.BindingsConfig) KeyMap {
	return KeyMap{
		Left:   binding(b.Left, "move left"),
		Right:  binding(b.Right, "move right"),
		Up:     binding(b.Up, "menu up"),
		Down:   binding(b.Down, "menu down"),
		Return: binding(b.Return, "select"),
		Space:  binding(b.Space, "pause"),
		Escape: binding(b.Escape, "quit"),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

// DefaultKeyMap returns the bindings of the default config.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.DefaultBreakoutConfig().Bindings)
}

func binding(keys []string, desc string) key.Binding {
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKeys(keys), desc),
	)
}

func helpKeys(keys []string) string {
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		switch k {
		case " ":
			k = "space"
		case "left":
			k = "←"
		case "right":
			k = "→"
		case "up":
			k = "↑"
		case "down":
			k = "↓"
		}
		names = append(names, k)
	}
	return strings.Join(names, "/")
}

// Event translates a key to a discrete event, EventNone if unbound.
func (k KeyMap) Event(msg tea.KeyMsg) core.Event {
	switch {
	case key.Matches(msg, k.Escape):
		return core.EventEscape
	case key.Matches(msg, k.Up):
		return core.EventUp
	case key.Matches(msg, k.Down):
		return core.EventDown
	case key.Matches(msg, k.Return):
		return core.EventReturn
	case key.Matches(msg, k.Space):
		return core.EventSpace
	}
	return core.EventNone
}

// Axis translates a key to a horizontal direction, 0 if unbound.
func (k KeyMap) Axis(msg tea.KeyMsg) float64 {
	switch {
	case key.Matches(msg, k.Left):
		return -1
	case key.Matches(msg, k.Right):
		return 1
	}
	return 0
}

// Axis tracks the held direction between key repeats.
type Axis struct {
	dir   float64
	until time.Time
}

// Press deflects the axis toward dir until now+AxisHold.
func (a *Axis) Press(dir float64, now time.Time) {
	a.dir = dir
	a.until = now.Add(AxisHold)
}

// Value returns the current axis value.
func (a *Axis) Value(now time.Time) float64 {
	if now.After(a.until) {
		return 0
	}
	return a.dir
}

// Release returns the axis to rest.
func (a *Axis) Release() {
	a.dir = 0
	a.until = time.Time{}
}
