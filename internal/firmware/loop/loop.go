// Package loop wires together the matrix scanner, debouncer, keymap, HID
// report builder, USB device stack, and bootloader jump into the
// firmware's single non-terminating main loop (spec §2, §4).
package loop

import (
	"github.com/ergodox/ergodox-go/internal/firmlog"
	"github.com/ergodox/ergodox-go/internal/firmware/bootjump"
	"github.com/ergodox/ergodox-go/internal/hal/mcp23018"
	"github.com/ergodox/ergodox-go/internal/hal/usbdev"
	"github.com/ergodox/ergodox-go/internal/keyboard/hidreport"
	"github.com/ergodox/ergodox-go/internal/keyboard/keymap"
	"github.com/ergodox/ergodox-go/internal/keyboard/matrix"
)

// reinitInterval is how many scan cycles elapse between attempts to bring
// an offline secondary half back online (spec §4.6: cheap enough to retry
// every cycle, but batched here so a dead bus doesn't dominate the loop's
// time budget).
const reinitInterval = 200

// Runtime owns every piece of state one firmware instance needs across its
// lifetime: the scan/debounce/HID pipeline plus the USB device it feeds and
// the secondary-half driver it periodically tries to resurrect.
type Runtime struct {
	scanner   *matrix.Scanner
	debouncer *matrix.Debouncer
	secondary *mcp23018.Driver
	keymap    keymap.Keymap
	usb       *usbdev.Device

	cyclesSinceReinit int
}

// New validates km and returns a Runtime ready to Tick. gpio drives the
// primary half, secondary drives the MCP23018 half, peripheral backs the
// USB device stack, and bootFn is invoked when the host requests the
// vendor bootloader-jump request (normally bootjump.Jump bound to a
// concrete bootjump.Peripherals).
func New(gpio matrix.GPIO, secondary *mcp23018.Driver, peripheral usbdev.Peripheral, km keymap.Keymap, bootFn func()) (*Runtime, error) {
	if err := keymap.Validate(km); err != nil {
		return nil, err
	}
	rt := &Runtime{
		scanner:   matrix.NewScanner(gpio, secondary),
		debouncer: matrix.NewDebouncer(),
		secondary: secondary,
		keymap:    km,
		usb:       usbdev.New(peripheral, bootFn),
	}
	rt.usb.Init()
	return rt, nil
}

// Tick runs one iteration of the main loop: service pending USB requests,
// scan and debounce the matrix, resolve the active layer, build the HID
// report, and send it if it changed (spec §2's leaves-first sequencing:
// USB housekeeping first so a pending SETUP is never starved by matrix
// work, then the key pipeline, then the outgoing report).
func (rt *Runtime) Tick() {
	rt.usb.Poll()

	raw := rt.scanner.Scan()
	snapshot := rt.debouncer.Update(raw)

	layer := keymap.ResolveLayer(rt.keymap, snapshot)
	report := hidreport.Build(rt.keymap, snapshot, layer)
	rt.usb.SendReport(report.Bytes())

	rt.cyclesSinceReinit++
	if !rt.secondary.Initialized() && rt.cyclesSinceReinit >= reinitInterval {
		rt.cyclesSinceReinit = 0
		if rt.secondary.TryReinit() {
			firmlog.Log("loop: secondary half came back online")
		}
	}
}

// Configured reports whether the host has enumerated and configured the
// USB device yet.
func (rt *Runtime) Configured() bool {
	return rt.usb.Configured()
}

// BootjumpHandler adapts bootjump.Jump into the bootFn New expects.
func BootjumpHandler(p bootjump.Peripherals) func() {
	return func() {
		bootjump.Jump(p)
	}
}
