package halfkay

import (
	"context"

	"github.com/google/gousb"
)

// GousbOpener implements Opener against a real USB bus via
// github.com/google/gousb, the same enumerate-by-VID/PID-then-claim
// pattern the HASHER example uses for its Bitmain ASIC (ctx.OpenDeviceWithVIDPID,
// dev.SetAutoDetach, dev.DefaultInterface).
type GousbOpener struct {
	Ctx *gousb.Context
}

// NewGousbOpener returns an Opener backed by a fresh gousb context. Callers
// own the returned context's lifetime and should Close it on shutdown.
func NewGousbOpener() *GousbOpener {
	return &GousbOpener{Ctx: gousb.NewContext()}
}

// Open opens the first device matching vendorID/productID, enables
// kernel-driver auto-detach, bounds its control transfers by
// ControlTimeout, and returns a USBDevice plus a cleanup function. No
// interface is claimed; control transfers go to the default endpoint.
// Returns (nil, nil, nil) — not an error — if no matching device is
// connected, matching Detect/RebootToBootloader's "not present" contract.
func (o *GousbOpener) Open(ctx context.Context, vendorID, productID uint16) (USBDevice, func(), error) {
	dev, err := o.Ctx.OpenDeviceWithVIDPID(gousb.ID(vendorID), gousb.ID(productID))
	if err != nil {
		return nil, nil, err
	}
	if dev == nil {
		return nil, nil, nil
	}

	_ = dev.SetAutoDetach(true)
	dev.ControlTimeout = ControlTimeout

	return &gousbDevice{dev: dev}, func() { dev.Close() }, nil
}

type gousbDevice struct {
	dev *gousb.Device
}

// ControlTransfer issues a USB control transfer. gousb's Control signature
// takes the transfer in this same shape (rType, request, val, idx, data).
func (d *gousbDevice) ControlTransfer(ctx context.Context, bmRequestType, bRequest uint8, wValue, wIndex uint16, data []byte) error {
	_, err := d.dev.Control(bmRequestType, bRequest, wValue, wIndex, data)
	return err
}
