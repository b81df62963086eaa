// Package bootjump implements the firmware-side half of re-entering the
// HalfKay bootloader (spec §4.10): disconnect from USB, quiesce every
// peripheral that could fire an interrupt or DMA, and jump to the fixed
// bootloader entry point.
//
// The actual "jump to absolute address 0x7E00" has no meaning on a host
// running this port (there is no AVR reset vector to jump into), so Jump
// stops at calling Peripherals.DetachUSBAndFreezeClock and quiescing
// registers; a real cross-compiled build would replace the final step with
// an architecture-specific asm.Goto(BootEntryPoint) that this package's
// signature intentionally leaves room for (see DESIGN.md).
package bootjump

// BootEntryPoint is the fixed HalfKay entry point on the ATmega32U4 (spec
// §4.10).
const BootEntryPoint = 0x7E00

// Peripherals is the quiesce surface spec §4.10 requires touched, in
// order: interrupts off, USB detach, then zero every peripheral enable
// register that could DMA or interrupt, then zero every GPIO direction
// and output latch.
type Peripherals interface {
	DisableInterrupts()
	DetachUSBAndFreezeClock()
	SettleMilliseconds(ms int)
	ZeroInterruptMaskRegisters()
	ZeroGPIORegisters()
}

// Jump runs the quiesce sequence and then "jumps" to BootEntryPoint. It
// does not return on real hardware; in this port it returns after calling
// every quiesce step so tests can observe the sequence.
func Jump(p Peripherals) {
	p.DisableInterrupts()
	p.DetachUSBAndFreezeClock()
	p.SettleMilliseconds(5)
	p.ZeroInterruptMaskRegisters()
	p.ZeroGPIORegisters()
}
