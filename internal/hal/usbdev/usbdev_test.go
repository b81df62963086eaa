package usbdev

import "testing"

type fakePeripheral struct {
	setup        *SetupPacket
	stalled      bool
	zlps         int
	ep1Writes    [][]byte
	configuredEP1 bool
	addr         uint8
	addrEnabled  bool
	ep1Writable  bool
}

func (f *fakePeripheral) EnableRegulatorAndClock() {}
func (f *fakePeripheral) Attach()                  {}
func (f *fakePeripheral) EndOfReset() bool         { return false }
func (f *fakePeripheral) ConfigureEP0()            {}
func (f *fakePeripheral) ConfigureEP1()            { f.configuredEP1 = true }
func (f *fakePeripheral) SelectEP0()               {}
func (f *fakePeripheral) SelectEP1()               {}

func (f *fakePeripheral) SetupReceived() bool { return f.setup != nil }
func (f *fakePeripheral) ReadSetup() SetupPacket {
	s := *f.setup
	f.setup = nil
	return s
}

func (f *fakePeripheral) WriteEP0Chunk(data []byte) {}
func (f *fakePeripheral) SendZLP()                  { f.zlps++ }
func (f *fakePeripheral) WaitStatusOut()             {}
func (f *fakePeripheral) Stall()                    { f.stalled = true }
func (f *fakePeripheral) SetAddress(addr uint8, enable bool) {
	f.addr = addr
	f.addrEnabled = enable
}

func (f *fakePeripheral) EP1Writable() bool { return f.ep1Writable }
func (f *fakePeripheral) WriteEP1(data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	f.ep1Writes = append(f.ep1Writes, cp)
}

func TestSetAddressSequence(t *testing.T) {
	f := &fakePeripheral{setup: &SetupPacket{BmRequestType: 0x00, BRequest: 0x05, WValue: 5}}
	d := New(f, nil)
	d.Poll()
	if f.zlps != 1 {
		t.Errorf("zlps = %d, want 1", f.zlps)
	}
	if f.addr != 5 || !f.addrEnabled {
		t.Errorf("SetAddress(%d, %v), want (5, true)", f.addr, f.addrEnabled)
	}
}

func TestSetConfigurationMarksConfigured(t *testing.T) {
	f := &fakePeripheral{setup: &SetupPacket{BmRequestType: 0x00, BRequest: 0x09, WValue: 1}}
	d := New(f, nil)
	d.Poll()
	if !d.Configured() {
		t.Errorf("Configured() = false, want true")
	}
	if !f.configuredEP1 {
		t.Errorf("ConfigureEP1 was not called")
	}
}

func TestUnknownRequestStalls(t *testing.T) {
	f := &fakePeripheral{setup: &SetupPacket{BmRequestType: 0x02, BRequest: 0x99}}
	d := New(f, nil)
	d.Poll()
	if !f.stalled {
		t.Errorf("Stall() was not called for an unrecognized request")
	}
}

func TestVendorBootloaderRequestInvokesHook(t *testing.T) {
	called := false
	f := &fakePeripheral{setup: &SetupPacket{BmRequestType: 0x40, BRequest: 0xFF}}
	d := New(f, func() { called = true })
	d.Poll()
	if f.zlps != 1 {
		t.Errorf("zlps = %d, want 1", f.zlps)
	}
	if !called {
		t.Errorf("bootloader hook was not invoked")
	}
}

func TestSendReportSkipsUnconfigured(t *testing.T) {
	f := &fakePeripheral{ep1Writable: true}
	d := New(f, nil)
	d.SendReport([8]byte{1})
	if len(f.ep1Writes) != 0 {
		t.Errorf("WriteEP1 called while unconfigured, want no-op")
	}
}

func TestSendReportSuppressesDuplicate(t *testing.T) {
	f := &fakePeripheral{setup: &SetupPacket{BmRequestType: 0x00, BRequest: 0x09}, ep1Writable: true}
	d := New(f, nil)
	d.Poll() // SET_CONFIGURATION

	d.SendReport([8]byte{1, 0, 4})
	d.SendReport([8]byte{1, 0, 4})
	d.SendReport([8]byte{2, 0, 4})

	if len(f.ep1Writes) != 2 {
		t.Errorf("WriteEP1 called %d times, want 2 (duplicate suppressed)", len(f.ep1Writes))
	}
}

func TestGetStringDescriptorUnknownIndexStalls(t *testing.T) {
	f := &fakePeripheral{setup: &SetupPacket{BmRequestType: 0x80, BRequest: 0x06, WValue: 0x0309, WLength: 255}}
	d := New(f, nil)
	d.Poll()
	if !f.stalled {
		t.Errorf("Stall() was not called for an unrecognized string index")
	}
}
