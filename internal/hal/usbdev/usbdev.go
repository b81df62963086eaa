// Package usbdev implements a polled, interrupt-free USB 2.0 full-speed
// device stack against the on-chip controller (spec §4.9): enumeration,
// a boot-protocol HID keyboard interface, and a vendor request that jumps
// back to the bootloader.
//
// As with package twi, the real hardware register set (UDCON, UDINT,
// UEINTX, UEDATX, ...) has no Go-visible volatile equivalent, so the
// register-level behavior is expressed through the Peripheral interface;
// a real build backs it with direct register access, tests back it with
// an in-memory fake, and the SETUP dispatch logic in this file — the part
// spec §4.9 actually specifies — is identical either way.
package usbdev

// SetupPacket is the 8-byte USB control SETUP packet.
type SetupPacket struct {
	BmRequestType uint8
	BRequest      uint8
	WValue        uint16
	WIndex        uint16
	WLength       uint16
}

// Peripheral is the hardware surface Device drives.
type Peripheral interface {
	// EnableRegulatorAndClock enables the USB pad regulator, the USB
	// controller, the VBUS pad, and configures/locks the 48MHz PLL derived
	// from the 16MHz crystal (spec §4.9's init sequence up through PLL
	// lock).
	EnableRegulatorAndClock()
	// Attach unfreezes the USB clock, clears the detach bit, and enables
	// the end-of-reset interrupt so the device appears on the bus.
	Attach()

	// EndOfReset reports (and clears) whether a bus reset completed since
	// the last poll.
	EndOfReset() bool
	// ConfigureEP0 (re-)configures the control endpoint after a reset.
	ConfigureEP0()
	// ConfigureEP1 configures the interrupt IN endpoint once the host has
	// issued SET_CONFIGURATION.
	ConfigureEP1()

	// SelectEP0 / SelectEP1 select the named endpoint for the operations
	// below, mirroring the hardware's single shared endpoint register
	// window (UENUM).
	SelectEP0()
	SelectEP1()

	// SetupReceived reports whether a SETUP packet is waiting on EP0.
	SetupReceived() bool
	ReadSetup() SetupPacket

	// WriteEP0Chunk writes up to 64 bytes to EP0 IN and busy-waits
	// (bounded) for TXINI.
	WriteEP0Chunk(data []byte)
	// SendZLP sends a zero-length IN packet (status stage ack / idle
	// ack) and busy-waits (bounded) for TXINI.
	SendZLP()
	// WaitStatusOut busy-waits (bounded) for the host's status-stage OUT
	// ZLP and acknowledges it.
	WaitStatusOut()
	// Stall STALLs the current control transfer.
	Stall()
	// SetAddress programs addr and, if enable, activates it. Spec §4.9
	// requires the ZLP to be sent and fully transmitted before this call.
	SetAddress(addr uint8, enable bool)

	// EP1Writable reports whether EP1's bank is free for a new packet
	// (RWAL), having busy-waited (bounded) for it.
	EP1Writable() bool
	// WriteEP1 writes data (<=8 bytes) and releases the packet (FIFOCON,
	// TXINI).
	WriteEP1(data []byte)
}

// Device is the USB device state machine: unconfigured until
// SET_CONFIGURATION succeeds, tracks the configuration value the host last
// set, and caches the last HID report transmitted so SendReport can
// suppress duplicate bus traffic (spec §4.9, §5).
type Device struct {
	p            Peripheral
	configured   bool
	configValue  uint8
	lastReport   [8]byte
	haveSent     bool
	bootloaderFn func()
}

// New returns a Device driving p. bootloaderFn is invoked when the host
// sends the vendor "enter bootloader" request (spec §4.9, §4.10); it never
// returns on real hardware.
func New(p Peripheral, bootloaderFn func()) *Device {
	return &Device{p: p, bootloaderFn: bootloaderFn}
}

// Init runs the fixed power-on sequence spec §4.9 requires in order:
// regulator/controller/VBUS/PLL, then attach and enable the end-of-reset
// interrupt.
func (d *Device) Init() {
	d.p.EnableRegulatorAndClock()
	d.p.Attach()
}

// Poll is the main-loop entry point (spec §4.9): it must be called at
// least every millisecond. It reconfigures EP0 and resets configuration
// state on end-of-reset, then services one pending SETUP packet if any.
func (d *Device) Poll() {
	if d.p.EndOfReset() {
		d.p.ConfigureEP0()
		d.configured = false
		d.configValue = 0
	}

	d.p.SelectEP0()
	if !d.p.SetupReceived() {
		return
	}
	d.handleSetup(d.p.ReadSetup())
}

const (
	reqGetDescriptor  = 0x06
	reqSetAddress     = 0x05
	reqSetConfig      = 0x09
	reqGetConfig      = 0x08
	reqHIDGetIdle     = 0x0A
	reqHIDSetProtocol = 0x0B
	reqVendorBootload = 0xFF

	descTypeDevice = 1
	descTypeConfig = 2
	descTypeString = 3
	descTypeHIDRpt = 0x22
)

func (d *Device) handleSetup(s SetupPacket) {
	switch {
	case s.BmRequestType == 0x80 && s.BRequest == reqGetDescriptor:
		d.getDescriptor(s)
	case s.BmRequestType == 0x00 && s.BRequest == reqSetAddress:
		d.p.SendZLP()
		d.p.SetAddress(uint8(s.WValue), true)
	case s.BmRequestType == 0x00 && s.BRequest == reqSetConfig:
		d.p.SendZLP()
		d.p.ConfigureEP1()
		d.configured = true
		d.configValue = uint8(s.WValue)
	case s.BmRequestType == 0x80 && s.BRequest == reqGetConfig:
		v := uint8(0)
		if d.configured {
			v = d.configValue
		}
		d.sendDescriptorBytes([]byte{v}, s.WLength)
	case s.BmRequestType == 0x81 && s.BRequest == reqGetDescriptor:
		if descType := uint8(s.WValue >> 8); descType == descTypeHIDRpt {
			d.sendDescriptorBytes(ReportDescriptor[:], s.WLength)
		} else {
			d.p.Stall()
		}
	case s.BmRequestType == 0x21 && s.BRequest == reqHIDGetIdle:
		d.p.SendZLP()
	case s.BmRequestType == 0x21 && s.BRequest == reqHIDSetProtocol:
		d.p.SendZLP()
	case s.BmRequestType == 0x40 && s.BRequest == reqVendorBootload:
		d.p.SendZLP()
		if d.bootloaderFn != nil {
			d.bootloaderFn()
		}
	default:
		d.p.Stall()
	}
}

func (d *Device) getDescriptor(s SetupPacket) {
	descType := uint8(s.WValue >> 8)
	index := uint8(s.WValue)
	switch descType {
	case descTypeDevice:
		d.sendDescriptorBytes(DeviceDescriptor[:], s.WLength)
	case descTypeConfig:
		d.sendDescriptorBytes(ConfigDescriptor[:], s.WLength)
	case descTypeString:
		b := StringDescriptor(index)
		if b == nil {
			d.p.Stall()
			return
		}
		d.sendDescriptorBytes(b, s.WLength)
	default:
		d.p.Stall()
	}
}

// sendDescriptorBytes chunks data into EP0-sized packets (spec §4.9),
// truncated to the host's requested wLength, then waits for the
// status-stage OUT ZLP.
func (d *Device) sendDescriptorBytes(data []byte, wLength uint16) {
	if int(wLength) < len(data) {
		data = data[:wLength]
	}
	total := len(data)
	const maxPacket = 64
	for len(data) > 0 {
		n := len(data)
		if n > maxPacket {
			n = maxPacket
		}
		d.p.WriteEP0Chunk(data[:n])
		data = data[n:]
	}
	// A transfer shorter than wLength whose length is an exact multiple of
	// maxPacket (the 64-byte report descriptor, for one) needs a ZLP to
	// terminate it.
	if total%maxPacket == 0 && total < int(wLength) {
		d.p.SendZLP()
	}
	d.p.WaitStatusOut()
}

// SendReport transmits report over EP1 if the device is configured and the
// report differs from the last one sent (spec §4.5, §5: no bus traffic for
// repeated identical reports).
func (d *Device) SendReport(report [8]byte) {
	if !d.configured {
		return
	}
	if d.haveSent && report == d.lastReport {
		return
	}
	d.p.SelectEP1()
	if !d.p.EP1Writable() {
		return
	}
	d.p.WriteEP1(report[:])
	d.lastReport = report
	d.haveSent = true
}

// Configured reports whether the host has issued SET_CONFIGURATION.
func (d *Device) Configured() bool {
	return d.configured
}
