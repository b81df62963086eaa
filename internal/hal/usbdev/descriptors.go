package usbdev

// USB identities (spec §6).
const (
	VendorID  = 0x16C0
	ProductID = 0x047E // running keyboard; HalfKay's 0x0478 lives in package halfkay
)

// DeviceDescriptor is the 18-byte USB device descriptor (spec §6): USB 2.0,
// class 0 at the device level, 64-byte EP0 max packet, one configuration.
var DeviceDescriptor = [18]byte{
	18,         // bLength
	0x01,       // bDescriptorType: DEVICE
	0x00, 0x02, // bcdUSB 2.00 (LE)
	0x00, // bDeviceClass
	0x00, // bDeviceSubClass
	0x00, // bDeviceProtocol
	64,   // bMaxPacketSize0
	0xC0, 0x16, // idVendor (LE)
	0x7E, 0x04, // idProduct (LE)
	0x00, 0x01, // bcdDevice 1.00 (LE)
	1, // iManufacturer
	2, // iProduct
	0, // iSerialNumber
	1, // bNumConfigurations
}

// ConfigDescriptor is the 34-byte configuration + interface + HID +
// endpoint block (spec §6): one configuration, bus-powered, 100mA; one HID
// boot-keyboard interface; one interrupt IN endpoint, 8-byte max packet,
// 10ms bInterval.
var ConfigDescriptor = [34]byte{
	// Configuration descriptor (9 bytes)
	9, 0x02,
	34, 0x00, // wTotalLength (LE)
	1,    // bNumInterfaces
	1,    // bConfigurationValue
	0,    // iConfiguration
	0x80, // bmAttributes: bus-powered
	50,   // bMaxPower: 100mA in 2mA units

	// Interface descriptor (9 bytes)
	9, 0x04,
	0, // bInterfaceNumber
	0, // bAlternateSetting
	1, // bNumEndpoints
	0x03, 0x01, 0x01, // HID class, boot subclass, keyboard protocol
	0, // iInterface

	// HID descriptor (9 bytes)
	9, 0x21,
	0x11, 0x01, // bcdHID 1.11 (LE)
	0,          // bCountryCode
	1,          // bNumDescriptors
	0x22,       // bDescriptorType: report
	64, 0x00, // wDescriptorLength (LE)

	// Endpoint descriptor (7 bytes)
	7, 0x05,
	0x81,       // bEndpointAddress: EP1 IN
	0x03,       // bmAttributes: interrupt
	8, 0x00, // wMaxPacketSize (LE)
	10, // bInterval
}

// ReportDescriptor is the 64-byte standard boot-keyboard HID report
// descriptor (spec §6): 8 modifier bits, 1 constant byte, 5 LED output
// bits, 3 LED padding bits, 6 bytes of array keycodes.
var ReportDescriptor = [64]byte{
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x06, // Usage (Keyboard)
	0xA1, 0x01, // Collection (Application)
	0x05, 0x07, //   Usage Page (Key Codes)
	0x19, 0xE0, //   Usage Minimum (224)
	0x29, 0xE7, //   Usage Maximum (231)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x01, //   Logical Maximum (1)
	0x75, 0x01, //   Report Size (1)
	0x95, 0x08, //   Report Count (8)
	0x81, 0x02, //   Input (Data, Variable, Absolute) -- modifier byte
	0x95, 0x01, //   Report Count (1)
	0x75, 0x08, //   Report Size (8)
	0x81, 0x01, //   Input (Constant) -- reserved byte
	0x95, 0x05, //   Report Count (5)
	0x75, 0x01, //   Report Size (1)
	0x05, 0x08, //   Usage Page (LEDs)
	0x19, 0x01, //   Usage Minimum (1)
	0x29, 0x05, //   Usage Maximum (5)
	0x91, 0x02, //   Output (Data, Variable, Absolute) -- LED report
	0x95, 0x01, //   Report Count (1)
	0x75, 0x03, //   Report Size (3)
	0x91, 0x01, //   Output (Constant) -- LED padding
	0x95, 0x06, //   Report Count (6)
	0x75, 0x08, //   Report Size (8)
	0x15, 0x00, //   Logical Minimum (0)
	0x26, 0xFF, 0x00, //   Logical Maximum (255)
	0x05, 0x07, //   Usage Page (Key Codes)
	0x19, 0x00, //   Usage Minimum (0)
	0x29, 0xFF, //   Usage Maximum (255)
	0x81, 0x00, //   Input (Data, Array) -- keycode array
	0xC0, // End Collection
}

// StringLangID, StringManufacturer, StringProduct are the indices the
// GET_DESCRIPTOR(string) request recognizes (spec §4.9); any other index
// STALLs.
const (
	StringLangID       = 0
	StringManufacturer = 1
	StringProduct      = 2
)

var stringDescriptors = map[uint8]string{
	StringManufacturer: "ErgoDox",
	StringProduct:      "Keyboard",
}

// LangIDDescriptor is string descriptor 0: a bLength/bDescriptorType header
// followed by one LangID (0x0409, US English).
var LangIDDescriptor = [4]byte{4, 0x03, 0x09, 0x04}

// StringDescriptor returns the UTF-16LE string descriptor bytes for index,
// or nil if index is not recognized (caller STALLs).
func StringDescriptor(index uint8) []byte {
	if index == StringLangID {
		return LangIDDescriptor[:]
	}
	s, ok := stringDescriptors[index]
	if !ok {
		return nil
	}
	out := make([]byte, 2+2*len(s))
	out[0] = byte(len(out))
	out[1] = 0x03
	for i, r := range s {
		out[2+2*i] = byte(r)
		out[2+2*i+1] = 0
	}
	return out
}
