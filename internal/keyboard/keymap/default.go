package keymap

import "github.com/ergodox/ergodox-go/internal/keyboard/keycode"

// kc is a terse local alias so the default table below reads as a grid
// instead of a wall of keycode.Code(...) conversions.
func kc(v uint8) keycode.Code { return keycode.Code(v) }

// layerHold builds the synthetic momentary-layer-hold code for target
// layer n (spec §3: 0xF0..0xFF, low nibble is the layer index).
func layerHold(n uint8) keycode.Code { return keycode.Code(0xF0 | n) }

// Default is the keyboard's compiled-in two-layer keymap: a base QWERTY-ish
// layer and a function-key (F1..F12) layer reached by holding either
// layer-hold key at row 4, column 5 or column 8. Unused cells are Transparent on
// layer 0 (meaning "no key here") and Transparent on layer 1 (falling
// through to the base layer's binding).
var Default = Keymap{
	// Layer 0: base layer.
	{
		{kc(0x35), kc(0x1E), kc(0x1F), kc(0x20), kc(0x21), kc(0x22), keycode.Transparent, keycode.Transparent, kc(0x23), kc(0x24), kc(0x25), kc(0x26), kc(0x27), kc(0x2D)},
		{kc(0x2B), kc(0x14), kc(0x1A), kc(0x08), kc(0x15), kc(0x17), keycode.Transparent, keycode.Transparent, kc(0x1C), kc(0x18), kc(0x0C), kc(0x12), kc(0x13), kc(0x2F)},
		{keycode.Transparent, kc(0x04), kc(0x16), kc(0x07), kc(0x09), kc(0x0A), keycode.Transparent, keycode.Transparent, kc(0x0B), kc(0x0D), kc(0x0E), kc(0x0F), kc(0x10), keycode.Transparent},
		{kc(0xE1), kc(0x1D), kc(0x1B), kc(0x06), kc(0x19), kc(0x05), keycode.Transparent, keycode.Transparent, kc(0x11), kc(0x17), kc(0x1C), kc(0x1A), kc(0xE5), keycode.Transparent},
		{keycode.Transparent, keycode.Transparent, keycode.Transparent, kc(0xE0), kc(0xE2), layerHold(1), keycode.Transparent, keycode.Transparent, layerHold(1), kc(0xE6), kc(0xE2), keycode.Transparent, keycode.Transparent, keycode.Transparent},
		{keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, kc(0x2C), kc(0x28), keycode.Transparent, keycode.Transparent, kc(0x2A), kc(0x2C), keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent},
	},
	// Layer 1: function-key row, transparent everywhere else.
	{
		{kc(0x3A), kc(0x3B), kc(0x3C), kc(0x3D), kc(0x3E), kc(0x3F), keycode.Transparent, keycode.Transparent, kc(0x40), kc(0x41), kc(0x42), kc(0x43), kc(0x44), kc(0x45)},
		{keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent},
		{keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent},
		{keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent},
		{keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent},
		{keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent, keycode.Transparent},
	},
}
