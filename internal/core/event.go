package core

// Event is a discrete key or window event delivered once per occurrence.
type Event int

const (
	EventNone Event = iota
	EventUp          // Move menu highlight up
	EventDown        // Move menu highlight down
	EventReturn      // Confirm menu selection
	EventSpace       // Pause / resume
	EventEscape      // Leave the game
	EventClose       // Window close request
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventNone:
		return "None"
	case EventUp:
		return "Up"
	case EventDown:
		return "Down"
	case EventReturn:
		return "Return"
	case EventSpace:
		return "Space"
	case EventEscape:
		return "Escape"
	case EventClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// IsQuit reports whether the event terminates the whole machine.
func (e Event) IsQuit() bool {
	return e == EventEscape || e == EventClose
}

// InputFrame is everything the host collected for one simulation tick.
type InputFrame struct {
	// Axis is the horizontal axis in [-1, 1]; 0 when idle.
	Axis float64

	// Events holds discrete events in arrival order.
	Events []Event
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Events: make([]Event, 0, 4)}
}

// Push appends an event to the frame.
func (f *InputFrame) Push(e Event) {
	if e == EventNone {
		return
	}
	f.Events = append(f.Events, e)
}

// SetAxis stores the axis value clamped to [-1, 1].
func (f *InputFrame) SetAxis(v float64) {
	f.Axis = ClampF(v, -1, 1)
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	f.Axis = 0
	f.Events = f.Events[:0]
}
