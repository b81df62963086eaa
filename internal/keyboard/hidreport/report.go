// Package hidreport builds the 8-byte USB HID boot-keyboard report from a
// debounced matrix snapshot and the resolved active layer (spec §4.5).
package hidreport

import (
	"github.com/ergodox/ergodox-go/internal/keyboard/keycode"
	"github.com/ergodox/ergodox-go/internal/keyboard/keymap"
	"github.com/ergodox/ergodox-go/internal/keyboard/matrix"
)

// MaxKeys is the number of simultaneous non-modifier keycodes a boot
// keyboard report can carry (spec: 6KRO).
const MaxKeys = 6

// Report is the boot-protocol keyboard HID report: modifier bitmask,
// reserved byte, six keycode slots (spec §3).
type Report struct {
	Modifiers byte
	reserved  byte
	Keys      [MaxKeys]keycode.Code
}

// Bytes serializes Report into the 8-byte wire format.
func (r Report) Bytes() [8]byte {
	var out [8]byte
	out[0] = r.Modifiers
	out[1] = 0
	for i, k := range r.Keys {
		out[2+i] = byte(k)
	}
	return out
}

// Build iterates snapshot row-major, resolving each pressed cell's
// keycode via keymap.Lookup for the given layer. Transparent, layer-hold,
// and error-rollover codes never appear in the result (spec §4.5, §8):
// modifiers OR into the modifier byte, ordinary keys fill the six-slot
// array left to right, and the seventh and later simultaneous keys are
// silently dropped (the spec's deliberate no-ghost, no-rollover
// simplification).
func Build(km keymap.Keymap, snapshot matrix.Snapshot, layer int) Report {
	var r Report
	slot := 0
	for row := 0; row < matrix.Rows; row++ {
		for col := 0; col < matrix.Cols; col++ {
			if !snapshot[row][col] {
				continue
			}
			code := keymap.Lookup(km, layer, row, col)
			switch {
			case keycode.IsTransparent(code):
			case keycode.IsLayer(code):
			case code == keycode.ErrorRollOver:
			case keycode.IsModifier(code):
				r.Modifiers |= keycode.ModifierBit(code)
			default:
				if slot < MaxKeys {
					r.Keys[slot] = code
					slot++
				}
			}
		}
	}
	return r
}
