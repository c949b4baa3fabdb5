package core

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the simulation and its collaborators.
var (
	// ErrNotFound is returned for stale entity handles.
	ErrNotFound = errors.New("entity not found")

	// ErrAssetMissing is returned when a sprite or sound identifier has no loaded handle.
	ErrAssetMissing = errors.New("asset missing")

	// ErrDeviceUnavailable is returned when no audio output is present.
	ErrDeviceUnavailable = errors.New("audio device unavailable")
)

// AssetError describes a failed asset lookup or load.
// It always unwraps to ErrAssetMissing so callers can use errors.Is.
type AssetError struct {
	Kind string // "sprite sheet", "sound", ...
	ID   string // Logical identifier
	Path string // Path inside the asset filesystem
	Err  error  // Underlying cause, may be nil
}

func (e *AssetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %q missing at %s: %v", e.Kind, e.ID, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %q missing at %s", e.Kind, e.ID, e.Path)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *AssetError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrAssetMissing, e.Err}
	}
	return []error{ErrAssetMissing}
}
