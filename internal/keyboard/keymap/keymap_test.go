package keymap

import (
	"testing"

	"github.com/ergodox/ergodox-go/internal/keyboard/keycode"
)

func TestValidateDefault(t *testing.T) {
	if err := Validate(Default); err != nil {
		t.Errorf("Validate(Default) = %v, want nil", err)
	}
}

func TestValidateRejectsLayerHoldOffBase(t *testing.T) {
	km := Keymap{
		{},
		{},
	}
	km[1][0][0] = layerHold(0)
	if err := Validate(km); err == nil {
		t.Errorf("Validate() = nil, want error for layer-hold outside layer 0")
	}
}

func TestValidateRejectsTooFewLayers(t *testing.T) {
	km := Keymap{{}}
	if err := Validate(km); err == nil {
		t.Errorf("Validate() = nil, want error for single-layer keymap")
	}
}

func TestResolveLayerNoneHeld(t *testing.T) {
	var snapshot [Rows][Cols]bool
	if got := ResolveLayer(Default, snapshot); got != 0 {
		t.Errorf("ResolveLayer() = %v, want 0", got)
	}
}

func TestResolveLayerHoldPressed(t *testing.T) {
	var snapshot [Rows][Cols]bool
	// (row 4, col 5) holds layerHold(1) in the default keymap.
	snapshot[4][5] = true
	if got := ResolveLayer(Default, snapshot); got != 1 {
		t.Errorf("ResolveLayer() = %v, want 1", got)
	}
}

func TestResolveLayerTiesPickHighest(t *testing.T) {
	km := Keymap{
		{}, {}, {},
	}
	km[0][0][0] = layerHold(1)
	km[0][1][1] = layerHold(2)
	var snapshot [Rows][Cols]bool
	snapshot[0][0] = true
	snapshot[1][1] = true
	if got := ResolveLayer(km, snapshot); got != 2 {
		t.Errorf("ResolveLayer() = %v, want 2", got)
	}
}

func TestLookupFallsThroughToBase(t *testing.T) {
	km := Keymap{{}, {}, {}}
	km[0][2][3] = keycode.Code(0x04)
	// layers 1 and 2 are transparent at (2,3) by zero value.
	if got := Lookup(km, 2, 2, 3); got != keycode.Code(0x04) {
		t.Errorf("Lookup() = %#02x, want 0x04", got)
	}
}

func TestLookupStopsAtFirstNonTransparentLayer(t *testing.T) {
	km := Keymap{{}, {}, {}}
	km[0][0][0] = keycode.Code(0x04)
	km[1][0][0] = keycode.Code(0x05)
	if got := Lookup(km, 2, 0, 0); got != keycode.Code(0x05) {
		t.Errorf("Lookup() = %#02x, want 0x05", got)
	}
}
