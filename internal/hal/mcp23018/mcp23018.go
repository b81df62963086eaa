// Package mcp23018 drives the secondary half's I2C GPIO expander (spec
// §4.6): port A is configured as outputs driving matrix columns, port B as
// pulled-up inputs reading matrix rows.
package mcp23018

import (
	"github.com/ergodox/ergodox-go/internal/firmlog"
	"github.com/ergodox/ergodox-go/internal/hal/twi"
)

// MCP23018 register addresses (IOCON.BANK = 0, the chip's power-on
// default).
const (
	regIODIRA = 0x00
	regIODIRB = 0x01
	regGPPUB  = 0x0D
	regGPIOA  = 0x12
	regGPIOB  = 0x13
	regOLATA  = 0x14
)

const (
	probeAddrLo = 0x20
	probeAddrHi = 0x27

	// ErrorBudget is the number of consecutive I2C transaction failures
	// after which the driver marks itself uninitialized (spec §4.6).
	ErrorBudget = 10
)

// Driver owns the secondary half's MCP23018 over a twi.Controller.
type Driver struct {
	ctrl        *twi.Controller
	addr        uint8
	initialized bool
	errorCount  int
}

// New returns a Driver bound to ctrl. Init must be called (and can be
// retried via TryReinit) before ScanColumn returns real data.
func New(ctrl *twi.Controller) *Driver {
	return &Driver{ctrl: ctrl}
}

// Init probes addresses 0x20..0x27 for an MCP23018 and, on the first ACK,
// configures port A as outputs (idle high) and port B as pulled-up inputs
// (spec §4.6). Returns whether a chip was found and configured.
func (d *Driver) Init() bool {
	for addr := uint8(probeAddrLo); addr <= probeAddrHi; addr++ {
		if !d.ctrl.ProbeAck(addr) {
			continue
		}
		d.addr = addr
		if d.configure() {
			d.initialized = true
			d.errorCount = 0
			firmlog.Log("mcp23018: initialized")
			return true
		}
	}
	d.initialized = false
	return false
}

// TryReinit is Init's re-entrant twin for the main loop to call
// periodically so the secondary half can be connected after boot (spec
// §4.6).
func (d *Driver) TryReinit() bool {
	return d.Init()
}

func (d *Driver) configure() bool {
	ok := d.ctrl.Write(d.addr, []byte{regIODIRA, 0x00}) // port A: all output
	ok = ok && d.ctrl.Write(d.addr, []byte{regIODIRB, 0xFF})
	ok = ok && d.ctrl.Write(d.addr, []byte{regGPPUB, 0xFF}) // port B pull-ups
	ok = ok && d.ctrl.Write(d.addr, []byte{regOLATA, 0xFF}) // port A idle high
	return ok
}

// ScanColumn drives column col's port-A pin low (every other pin stays
// high) and reads port B in the next transaction, with no settle delay in
// between. Returns 0xFF (no keys pressed) if the driver is not
// initialized. On a transaction error it increments the error counter and,
// on reaching ErrorBudget consecutive errors, marks itself
// uninitialized so phantom presses stop (spec §4.6, §7).
func (d *Driver) ScanColumn(col uint8) uint8 {
	if !d.initialized {
		return 0xFF
	}

	outA := ^(uint8(1) << col) // every pin high except col
	if !d.ctrl.Write(d.addr, []byte{regOLATA, outA}) {
		d.recordError()
		return 0xFF
	}

	row, ok := d.ctrl.WriteThenRead(d.addr, []byte{regGPIOB})
	// restore idle-high immediately; a stuck column would otherwise ghost
	// every subsequent scan.
	d.ctrl.Write(d.addr, []byte{regOLATA, 0xFF})

	if !ok {
		d.recordError()
		return 0xFF
	}

	d.errorCount = 0
	return row
}

func (d *Driver) recordError() {
	d.errorCount++
	if d.errorCount >= ErrorBudget {
		d.initialized = false
		firmlog.Log("mcp23018: error budget exhausted, taking secondary half offline")
	}
}

// Initialized reports whether the driver currently believes a chip is
// configured and answering.
func (d *Driver) Initialized() bool {
	return d.initialized
}
