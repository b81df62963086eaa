// Package hexfile parses Intel HEX into address-data segments and
// flattens them into a single flash image (spec §4.1, §4.2).
package hexfile

// Segment is a contiguous run of data bytes starting at an absolute
// address.
type Segment struct {
	Address uint32
	Data    []byte
}

// end returns the address one past this segment's last byte.
func (s Segment) end() uint32 {
	return s.Address + uint32(len(s.Data))
}
