package core

import (
	"errors"
	"strings"
	"testing"
)

func TestAssetErrorIsAssetMissing(t *testing.T) {
	cause := errors.New("open textures/breakout.yaml: file does not exist")
	err := error(&AssetError{Kind: "sprite sheet", ID: "breakout", Path: "textures/breakout.yaml", Err: cause})

	if !errors.Is(err, ErrAssetMissing) {
		t.Error("AssetError should match ErrAssetMissing")
	}
	if !errors.Is(err, cause) {
		t.Error("AssetError should match its cause")
	}
	if got := err.Error(); !strings.Contains(got, "textures/breakout.yaml") {
		t.Errorf("diagnostic should name the path, got %q", got)
	}
}
