// Package mode is the game's state machine: a stack of modes (Start, Play,
// Paused) driven by discrete input events and a per-frame update.
//
// Handlers return a Trans value describing what the stack should do next.
// Modes are plain data; the machine switches on Kind to dispatch.
package mode

import (
	"github.com/vovakirdan/tui-breakout/internal/assets"
	"github.com/vovakirdan/tui-breakout/internal/ecs"
)

// Kind identifies a mode.
type Kind int

const (
	KindNone Kind = iota
	KindStart
	KindPlay
	KindPaused
)

// String returns the mode name.
func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindPlay:
		return "play"
	case KindPaused:
		return "paused"
	default:
		return "none"
	}
}

// TransKind enumerates stack operations.
type TransKind int

const (
	TransContinue TransKind = iota
	TransPush
	TransPop
	TransSwitch
	TransQuit
)

// String returns the transition name.
func (k TransKind) String() string {
	switch k {
	case TransPush:
		return "push"
	case TransPop:
		return "pop"
	case TransSwitch:
		return "switch"
	case TransQuit:
		return "quit"
	default:
		return "continue"
	}
}

// Trans is the result of an event or update handler.
type Trans struct {
	Kind TransKind
	Next *Mode // Set for Push and Switch
}

// Continue keeps the current mode.
func Continue() Trans { return Trans{} }

// Push suspends the current mode under next.
func Push(next *Mode) Trans { return Trans{Kind: TransPush, Next: next} }

// Pop ends the current mode and resumes the one below.
func Pop() Trans { return Trans{Kind: TransPop} }

// Switch replaces the current mode with next.
func Switch(next *Mode) Trans { return Trans{Kind: TransSwitch, Next: next} }

// Quit ends the whole machine.
func Quit() Trans { return Trans{Kind: TransQuit} }

// Selection is the highlighted entry of the start menu.
type Selection int

const (
	SelectStart Selection = iota
	SelectHighScore
)

// String returns the selection name.
func (s Selection) String() string {
	if s == SelectHighScore {
		return "highscore"
	}
	return "start"
}

// Mode is one entry of the stack. Only the fields of its Kind are used.
type Mode struct {
	Kind Kind

	start startState
	play  playState
}

type startState struct {
	title, start, highscore ecs.Entity
	progress                *assets.Progress
	selected                Selection
	background              ecs.Entity
}

type playState struct {
	title      ecs.Entity
	debounce   float64
	debouncing bool
}

// NewStart returns the initial mode.
func NewStart() *Mode {
	return &Mode{Kind: KindStart}
}

func newPlay(title ecs.Entity) *Mode {
	return &Mode{Kind: KindPlay, play: playState{title: title}}
}

func newPaused() *Mode {
	return &Mode{Kind: KindPaused}
}
