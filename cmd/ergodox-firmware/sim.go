package main

import (
	"github.com/ergodox/ergodox-go/internal/hal/twi"
	"github.com/ergodox/ergodox-go/internal/hal/usbdev"
	"github.com/ergodox/ergodox-go/internal/keyboard/matrix"
)

// simGPIO implements matrix.GPIO over an in-memory pressed[row][col] grid
// the REPL commands mutate directly; it only models the primary half's
// PrimaryCols columns, same as the real primary-half wiring (spec §6).
type simGPIO struct {
	pressed [matrix.Rows][matrix.Cols]bool
}

func newSimGPIO() *simGPIO { return &simGPIO{} }

func (g *simGPIO) setPressed(row, col int, pressed bool) {
	g.pressed[row][col] = pressed
}

func (g *simGPIO) DriveColumnLow(col int) [matrix.Rows]bool {
	var rows [matrix.Rows]bool
	for r := 0; r < matrix.Rows; r++ {
		rows[r] = !g.pressed[r][col] // active-low
	}
	return rows
}

func (g *simGPIO) Idle() {}

// simSecondaryBus is a twi.Bus that never ACKs, so the secondary half
// always reports offline in this harness — there is no second MCU to
// simulate without a second process and a wire between them, which is out
// of scope for a single-binary harness.
type simSecondaryBus struct{}

func newSimSecondaryBus() simSecondaryBus { return simSecondaryBus{} }

func (simSecondaryBus) Start() (uint8, bool)          { return 0, true }
func (simSecondaryBus) WriteByte(byte) (uint8, bool)  { return 0x20, true }
func (simSecondaryBus) ReadByte() (byte, uint8, bool) { return 0, 0, true }
func (simSecondaryBus) Stop()                         {}

var _ twi.Bus = simSecondaryBus{}

// simPeripheral implements usbdev.Peripheral well enough to exercise
// enumeration: it auto-completes SET_CONFIGURATION the moment
// Poll is first called (there is no real host controller issuing SETUP
// packets against this process), then accepts every EP1 write so the
// harness can print the reports the loop produces.
type simPeripheral struct {
	configured bool
	sentSetup  bool
	last       [8]byte
	haveLast   bool
}

func newSimPeripheral() *simPeripheral { return &simPeripheral{} }

func (p *simPeripheral) EnableRegulatorAndClock() {}
func (p *simPeripheral) Attach()                  {}
func (p *simPeripheral) EndOfReset() bool         { return false }
func (p *simPeripheral) ConfigureEP0()            {}
func (p *simPeripheral) ConfigureEP1()            {}
func (p *simPeripheral) SelectEP0()               {}
func (p *simPeripheral) SelectEP1()               {}

func (p *simPeripheral) SetupReceived() bool {
	if p.sentSetup {
		return false
	}
	p.sentSetup = true
	return true
}

// ReadSetup always hands back a SET_CONFIGURATION(1) the first (and only)
// time SetupReceived reports true, standing in for the enumeration
// handshake a real host performs.
func (p *simPeripheral) ReadSetup() usbdev.SetupPacket {
	return usbdev.SetupPacket{BmRequestType: 0x00, BRequest: 0x09, WValue: 1}
}

func (p *simPeripheral) WriteEP0Chunk(data []byte)          {}
func (p *simPeripheral) SendZLP()                           {}
func (p *simPeripheral) WaitStatusOut()                     {}
func (p *simPeripheral) Stall()                             {}
func (p *simPeripheral) SetAddress(addr uint8, enable bool) {}

func (p *simPeripheral) EP1Writable() bool { return true }
func (p *simPeripheral) WriteEP1(data []byte) {
	copy(p.last[:], data)
	p.haveLast = true
}

func (p *simPeripheral) lastReport() ([8]byte, bool) { return p.last, p.haveLast }

var _ usbdev.Peripheral = (*simPeripheral)(nil)
