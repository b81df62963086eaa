// Package keymap holds the compile-time keymap table and the layer
// resolution logic that turns a debounced matrix snapshot into an active
// layer number and, per cell, a concrete keycode.
package keymap

import "github.com/ergodox/ergodox-go/internal/keyboard/keycode"

const (
	// Rows is the fixed matrix row count (spec: 6x14 key matrix).
	Rows = 6
	// Cols is the fixed matrix column count.
	Cols = 14
	// MinLayers is the minimum layer count a valid Keymap must declare.
	MinLayers = 2
)

// Keymap is the [layer][row][col] keycode table. Layer 0 is the base layer;
// any synthetic layer-hold code must live on layer 0 only (invariant
// enforced by Validate, not by the type itself, mirroring how the teacher's
// mapper table trusts its header-derived inputs but validates them before
// use).
type Keymap [][Rows][Cols]keycode.Code

// Validate checks the invariants spec.md §3 places on a Keymap: at least
// MinLayers layers, and every layer-hold code appears only on layer 0.
func Validate(km Keymap) error {
	if len(km) < MinLayers {
		return errInvalidLayerCount
	}
	for layer := 1; layer < len(km); layer++ {
		for r := 0; r < Rows; r++ {
			for c := 0; c < Cols; c++ {
				if keycode.IsLayer(km[layer][r][c]) {
					return errLayerHoldNotOnBase
				}
			}
		}
	}
	return nil
}

// ResolveLayer scans every pressed cell in snapshot, looks up its layer-0
// keycode (layer-hold keys always live on layer 0 per the Keymap
// invariant), and returns the highest layer number among the layer-hold
// keys currently held. Returns 0 when none are held, and never returns a
// layer at or beyond len(km) (bounded by the compile-time layer count).
func ResolveLayer(km Keymap, snapshot [Rows][Cols]bool) int {
	active := 0
	maxLayer := len(km) - 1
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if !snapshot[r][c] {
				continue
			}
			code := km[0][r][c]
			if !keycode.IsLayer(code) {
				continue
			}
			l := keycode.LayerIndex(code)
			if l > maxLayer {
				l = maxLayer
			}
			if l > active {
				active = l
			}
		}
	}
	return active
}

// Lookup returns the effective keycode at (layer, row, col). If the cell is
// Transparent and layer is non-zero, it steps one layer down and retries,
// terminating at layer 0 unconditionally (layer 0's value is always
// returned as-is, transparent or not).
func Lookup(km Keymap, layer, row, col int) keycode.Code {
	for layer > 0 {
		code := km[layer][row][col]
		if !keycode.IsTransparent(code) {
			return code
		}
		layer--
	}
	return km[0][row][col]
}
