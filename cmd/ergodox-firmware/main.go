// Command ergodox-firmware is a host-side simulation harness for the
// firmware's main loop (spec §2, §4, §9). It is NOT the firmware: there is
// no AVR reset vector, no DDR/PORT/PIN registers, and no on-chip USB
// controller to run against. What it exercises is the exact same
// internal/firmware/loop state machine a real build's main() would drive,
// against in-process fakes for every hardware seam, so the control-flow
// half of the firmware is a buildable, testable Go binary instead of
// something only observable on real silicon.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ergodox/ergodox-go/internal/firmlog"
	"github.com/ergodox/ergodox-go/internal/firmware/bootjump"
	"github.com/ergodox/ergodox-go/internal/firmware/loop"
	"github.com/ergodox/ergodox-go/internal/hal/mcp23018"
	"github.com/ergodox/ergodox-go/internal/hal/twi"
	"github.com/ergodox/ergodox-go/internal/hal/usbdev"
	"github.com/ergodox/ergodox-go/internal/keyboard/keymap"
	"github.com/ergodox/ergodox-go/internal/keyboard/matrix"
)

func main() {
	verbose := flag.Bool("verbose", false, "log firmware trace lines to stderr")
	flag.Parse()

	if *verbose {
		firmlog.SetLogger(stderrLogger{})
		firmlog.SetEnabled(true)
	}

	gpio := newSimGPIO()
	secondary := mcp23018.New(twi.NewController(newSimSecondaryBus()))
	peripheral := newSimPeripheral()

	rt, err := loop.New(gpio, secondary, peripheral, keymap.Default, loop.BootjumpHandler(bootPeripherals{}))
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid keymap:", err)
		os.Exit(1)
	}

	fmt.Println("ergodox-firmware simulation harness")
	fmt.Println("commands: press R C | release R C | tick [N] | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "press", "release":
			if len(fields) != 3 {
				fmt.Println("usage: press R C | release R C")
				continue
			}
			r, errR := strconv.Atoi(fields[1])
			c, errC := strconv.Atoi(fields[2])
			if errR != nil || errC != nil || r < 0 || r >= matrix.Rows || c < 0 || c >= matrix.Cols {
				fmt.Printf("row/col out of range (0..%d, 0..%d)\n", matrix.Rows-1, matrix.Cols-1)
				continue
			}
			gpio.setPressed(r, c, fields[0] == "press")
		case "tick":
			n := 1
			if len(fields) == 2 {
				if v, err := strconv.Atoi(fields[1]); err == nil {
					n = v
				}
			}
			for i := 0; i < n; i++ {
				rt.Tick()
			}
			if report, ok := peripheral.lastReport(); ok {
				fmt.Printf("configured=%v report=% 02x\n", rt.Configured(), report)
			}
		case "quit":
			return
		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

type stderrLogger struct{}

func (stderrLogger) Log(msg string) { fmt.Fprintln(os.Stderr, msg) }

// bootPeripherals implements bootjump.Peripherals by printing what a real
// quiesce sequence would do; there is nothing underneath it to actually
// detach or zero on a host process.
type bootPeripherals struct{}

func (bootPeripherals) DisableInterrupts()        { fmt.Println("[bootjump] interrupts disabled") }
func (bootPeripherals) DetachUSBAndFreezeClock()  { fmt.Println("[bootjump] USB detached, clock frozen") }
func (bootPeripherals) SettleMilliseconds(ms int) {}
func (bootPeripherals) ZeroInterruptMaskRegisters() {
	fmt.Println("[bootjump] interrupt masks cleared")
}
func (bootPeripherals) ZeroGPIORegisters() {
	fmt.Println("[bootjump] GPIO registers cleared; would jump to bootloader now")
}

var _ bootjump.Peripherals = bootPeripherals{}
