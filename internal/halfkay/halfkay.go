// Package halfkay implements the HalfKay page-flasher and the vendor
// reboot-to-bootloader request, the host side of the cross-program
// contract described in spec §4.3, §6.
package halfkay

import (
	"context"
	"time"

	"github.com/btcsuite/goleveldb/leveldb/errors"
	"github.com/ergodox/ergodox-go/internal/firmlog"
)

// USB identities (spec §6).
const (
	VendorID            = 0x16C0
	BootloaderProductID = 0x0478 // HalfKay
	KeyboardProductID    = 0x047E // running firmware
)

const (
	// PageSize is the HalfKay page payload's data portion (spec §4.3).
	PageSize = 128
	// AddressSize is the little-endian address prefix.
	AddressSize = 2
	// PayloadSize is the full HalfKay page write payload.
	PayloadSize = AddressSize + PageSize

	// RebootAddress, written as a page payload, instructs the bootloader
	// to jump to application code (spec §3, §4.3).
	RebootAddress = 0xFFFF

	// FlashCapacity is the ATmega32U4's flash size; flashing beyond it
	// fails (spec §4.3).
	FlashCapacity = 32768

	// ControlTimeout bounds every control transfer (spec §4.3).
	ControlTimeout = 2 * time.Second

	// pageWriteSettle is the delay after each page write to let the
	// on-chip flash controller finish (spec §4.3, §5: load-bearing).
	pageWriteSettle = 5 * time.Millisecond

	// rebootPollInterval/rebootPollAttempts bound how long FlashWithDiscovery waits
	// for HalfKay to appear after requesting a reboot (spec §4.3: up to
	// 5 seconds, 50 x 100ms).
	rebootPollInterval = 100 * time.Millisecond
	rebootPollAttempts = 50
)

var (
	ErrImageTooLarge     = errors.New("halfkay: image exceeds flash capacity")
	ErrHalfKayNotPresent = errors.New("halfkay: no HalfKay device found, and the running keyboard did not respond")
)

// USBDevice is the control-transfer surface Flash needs. A *gousbDevice
// (gousbdevice.go) backs this against real hardware; tests back it
// with an in-memory fake.
type USBDevice interface {
	// ControlTransfer issues a control transfer with the given
	// bmRequestType/bRequest/wValue/wIndex and payload, bounded by
	// ControlTimeout. Errors on the reboot-sentinel transfer are expected
	// (the device disconnects) and are the caller's responsibility to
	// swallow, not this interface's.
	ControlTransfer(ctx context.Context, bmRequestType, bRequest uint8, wValue, wIndex uint16, data []byte) error
}

// Opener finds and opens a USB device by vendor/product ID, returning nil
// (not an error) if none is present.
type Opener interface {
	Open(ctx context.Context, vendorID, productID uint16) (USBDevice, func(), error)
}

// BuildPageBuffer assembles a 130-byte HalfKay payload: little-endian
// address, then data, 0xFF-padded to PayloadSize regardless of len(data)
// (spec §3, §4.3).
func BuildPageBuffer(address uint16, data []byte) [PayloadSize]byte {
	var buf [PayloadSize]byte
	buf[0] = byte(address)
	buf[1] = byte(address >> 8)
	for i := range buf[AddressSize:] {
		buf[AddressSize+i] = 0xFF
	}
	copy(buf[AddressSize:], data)
	return buf
}

func isErasedPage(page []byte) bool {
	for _, b := range page {
		if b != 0xFF {
			return false
		}
	}
	return true
}

// Flash writes bytes to device flash starting at base, one 128-byte page
// at a time, skipping already-erased pages, then sends the reboot
// sentinel (spec §4.3).
func Flash(ctx context.Context, dev USBDevice, base uint32, bytes []byte) error {
	if base+uint32(len(bytes)) > FlashCapacity {
		return ErrImageTooLarge
	}

	for offset := 0; offset < len(bytes); offset += PageSize {
		end := offset + PageSize
		if end > len(bytes) {
			end = len(bytes)
		}
		page := bytes[offset:end]
		if isErasedPage(page) {
			continue
		}

		addr := uint16(base) + uint16(offset)
		payload := BuildPageBuffer(addr, page)

		tctx, cancel := context.WithTimeout(ctx, ControlTimeout)
		err := dev.ControlTransfer(tctx, 0x21, 0x09, 0x0200, 0x0000, payload[:])
		cancel()
		if err != nil {
			return err
		}
		firmlog.Log("halfkay: wrote page")
		time.Sleep(pageWriteSettle)
	}

	return sendRebootSentinel(ctx, dev)
}

// sendRebootSentinel writes the RebootAddress page; USB errors here are
// expected (the device disconnects mid-transfer) and are swallowed by
// design (spec §4.3, §7).
func sendRebootSentinel(ctx context.Context, dev USBDevice) error {
	payload := BuildPageBuffer(RebootAddress, nil)
	tctx, cancel := context.WithTimeout(ctx, ControlTimeout)
	defer cancel()
	if err := dev.ControlTransfer(tctx, 0x21, 0x09, 0x0200, 0x0000, payload[:]); err != nil {
		firmlog.Log("halfkay: reboot sentinel transfer errored (expected): " + err.Error())
	}
	return nil
}

// Detect reports whether a HalfKay-mode device (spec §6's bootloader
// VID/PID) is present.
func Detect(ctx context.Context, opener Opener) (bool, error) {
	dev, closeFn, err := opener.Open(ctx, VendorID, BootloaderProductID)
	if err != nil {
		return false, err
	}
	if dev == nil {
		return false, nil
	}
	closeFn()
	return true, nil
}

// RebootToBootloader asks a running keyboard (spec §6's keyboard VID/PID)
// to jump into HalfKay via the vendor control request, and reports whether
// such a device was found.
func RebootToBootloader(ctx context.Context, opener Opener) (bool, error) {
	dev, closeFn, err := opener.Open(ctx, VendorID, KeyboardProductID)
	if err != nil {
		return false, err
	}
	if dev == nil {
		return false, nil
	}
	defer closeFn()

	tctx, cancel := context.WithTimeout(ctx, ControlTimeout)
	defer cancel()
	if err := dev.ControlTransfer(tctx, 0x40, 0xFF, 0, 0, nil); err != nil {
		return true, err
	}
	return true, nil
}

// FlashWithDiscovery orchestrates device discovery around Flash (spec
// §4.3): if HalfKay is not already present, it asks a running keyboard to
// reboot into it and polls for up to 5 seconds before giving up.
func FlashWithDiscovery(ctx context.Context, opener Opener, base uint32, bytes []byte) error {
	present, err := Detect(ctx, opener)
	if err != nil {
		return err
	}
	if !present {
		found, err := RebootToBootloader(ctx, opener)
		if err != nil {
			return err
		}
		if !found {
			return ErrHalfKayNotPresent
		}
		present, err = pollForHalfKay(ctx, opener)
		if err != nil {
			return err
		}
		if !present {
			return ErrHalfKayNotPresent
		}
	}

	dev, closeFn, err := opener.Open(ctx, VendorID, BootloaderProductID)
	if err != nil {
		return err
	}
	if dev == nil {
		return ErrHalfKayNotPresent
	}
	defer closeFn()

	return Flash(ctx, dev, base, bytes)
}

func pollForHalfKay(ctx context.Context, opener Opener) (bool, error) {
	for i := 0; i < rebootPollAttempts; i++ {
		present, err := Detect(ctx, opener)
		if err != nil {
			return false, err
		}
		if present {
			return true, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(rebootPollInterval):
		}
	}
	return false, nil
}
