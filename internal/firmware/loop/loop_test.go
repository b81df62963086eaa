package loop

import (
	"testing"

	"github.com/ergodox/ergodox-go/internal/hal/mcp23018"
	"github.com/ergodox/ergodox-go/internal/hal/twi"
	"github.com/ergodox/ergodox-go/internal/hal/usbdev"
	"github.com/ergodox/ergodox-go/internal/keyboard/keycode"
	"github.com/ergodox/ergodox-go/internal/keyboard/keymap"
	"github.com/ergodox/ergodox-go/internal/keyboard/matrix"
)

type fakeGPIO struct {
	pressed [matrix.PrimaryCols][matrix.Rows]bool
}

func (g *fakeGPIO) DriveColumnLow(col int) [matrix.Rows]bool {
	var rows [matrix.Rows]bool
	for r := 0; r < matrix.Rows; r++ {
		rows[r] = !g.pressed[col][r]
	}
	return rows
}

func (g *fakeGPIO) Idle() {}

type deadBus struct{}

func (deadBus) Start() (uint8, bool)          { return 0, true }
func (deadBus) WriteByte(byte) (uint8, bool)  { return 0x20, true }
func (deadBus) ReadByte() (byte, uint8, bool) { return 0, 0, true }
func (deadBus) Stop()                         {}

type fakePeripheral struct {
	setup       *usbdev.SetupPacket
	ep1Writes   [][]byte
	ep1Writable bool
}

func (f *fakePeripheral) EnableRegulatorAndClock() {}
func (f *fakePeripheral) Attach()                  {}
func (f *fakePeripheral) EndOfReset() bool         { return false }
func (f *fakePeripheral) ConfigureEP0()            {}
func (f *fakePeripheral) ConfigureEP1()            {}
func (f *fakePeripheral) SelectEP0()               {}
func (f *fakePeripheral) SelectEP1()               {}

func (f *fakePeripheral) SetupReceived() bool { return f.setup != nil }
func (f *fakePeripheral) ReadSetup() usbdev.SetupPacket {
	s := *f.setup
	f.setup = nil
	return s
}

func (f *fakePeripheral) WriteEP0Chunk(data []byte)          {}
func (f *fakePeripheral) SendZLP()                           {}
func (f *fakePeripheral) WaitStatusOut()                     {}
func (f *fakePeripheral) Stall()                             {}
func (f *fakePeripheral) SetAddress(addr uint8, enable bool) {}

func (f *fakePeripheral) EP1Writable() bool { return f.ep1Writable }
func (f *fakePeripheral) WriteEP1(data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	f.ep1Writes = append(f.ep1Writes, cp)
}

func testKeymap() keymap.Keymap {
	km := keymap.Keymap{{}, {}}
	km[0][0][0] = keycode.Code(0x04) // 'a'
	return km
}

func TestNewRejectsInvalidKeymap(t *testing.T) {
	_, err := New(&fakeGPIO{}, mcp23018.New(twi.NewController(deadBus{})), &fakePeripheral{}, keymap.Keymap{{}}, nil)
	if err == nil {
		t.Fatalf("New() error = nil, want validation failure for a single-layer keymap")
	}
}

func TestTickSendsReportForPressedKey(t *testing.T) {
	gpio := &fakeGPIO{}
	gpio.pressed[0][0] = true
	peripheral := &fakePeripheral{
		setup:       &usbdev.SetupPacket{BmRequestType: 0x00, BRequest: 0x09, WValue: 1},
		ep1Writable: true,
	}
	sec := mcp23018.New(twi.NewController(deadBus{}))

	rt, err := New(gpio, sec, peripheral, testKeymap(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	rt.Tick() // services SET_CONFIGURATION
	if !rt.Configured() {
		t.Fatalf("Configured() = false after SET_CONFIGURATION")
	}

	rt.Tick() // scans, debounces, and (eventually, once debounce settles) sends
	for i := 0; i < matrix.Rows*matrix.Cols; i++ {
		rt.Tick()
	}

	if len(peripheral.ep1Writes) == 0 {
		t.Fatalf("no HID reports sent after holding a mapped key across the debounce threshold")
	}
	last := peripheral.ep1Writes[len(peripheral.ep1Writes)-1]
	if last[2] != 0x04 {
		t.Errorf("report.Keys[0] = %#02x, want 0x04", last[2])
	}
}

func TestBootjumpHandlerInvokesQuiesceSequence(t *testing.T) {
	called := false
	fn := BootjumpHandler(fakePeripherals{onDetach: func() { called = true }})
	fn()
	if !called {
		t.Errorf("BootjumpHandler's returned func did not invoke the quiesce sequence")
	}
}

type fakePeripherals struct {
	onDetach func()
}

func (f fakePeripherals) DisableInterrupts()         {}
func (f fakePeripherals) DetachUSBAndFreezeClock()   { f.onDetach() }
func (f fakePeripherals) SettleMilliseconds(ms int)  {}
func (f fakePeripherals) ZeroInterruptMaskRegisters() {}
func (f fakePeripherals) ZeroGPIORegisters()          {}
