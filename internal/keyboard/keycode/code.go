// Package keycode defines the tagged-byte keycode encoding shared by the
// keymap, the debouncer's consumer (the HID report builder), and the
// firmware's USB HID report descriptor.
//
// The numeric encoding intentionally aligns with USB HID Keyboard/Keypad
// usage page 0x07 so that an ordinary key's Code is also its wire value;
// synthetic values (transparent, layer-hold) squat in ranges the usage page
// leaves unused. Every predicate here must stay byte-exact to that mapping.
package keycode

// Code is a single keymap cell value.
type Code uint8

const (
	// Transparent falls through to the next-lower layer (see keymap.Lookup).
	Transparent Code = 0x00
	// ErrorRollOver is the HID "too many keys" usage; the firmware never
	// emits it (spec's deliberate 6KRO simplification) but a keymap cell
	// may still be programmed with it.
	ErrorRollOver Code = 0x01

	modifierLo Code = 0xE0
	modifierHi Code = 0xE7

	layerLo Code = 0xF0
	layerHi Code = 0xFF
)

// IsTransparent reports whether c is the fall-through-to-lower-layer code.
func IsTransparent(c Code) bool {
	return c == Transparent
}

// IsModifier reports whether c is one of the eight HID modifier usages
// (0xE0..0xE7: left/right ctrl, shift, alt, gui).
func IsModifier(c Code) bool {
	return c >= modifierLo && c <= modifierHi
}

// ModifierBit returns the single bit this modifier contributes to a HID
// boot-keyboard report's modifier byte. Only valid when IsModifier(c).
func ModifierBit(c Code) uint8 {
	return 1 << uint8(c-modifierLo)
}

// IsLayer reports whether c is a synthetic momentary-layer-hold keycode
// (0xF0..0xFF).
func IsLayer(c Code) bool {
	return c >= layerLo
}

// LayerIndex returns the target layer encoded in c's low nibble. Only valid
// when IsLayer(c).
func LayerIndex(c Code) int {
	return int(c - layerLo)
}
