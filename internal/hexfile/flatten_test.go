package hexfile

import "testing"

func TestFlattenFillsGapsWithFF(t *testing.T) {
	segs := []Segment{
		{Address: 0x100, Data: []byte{0xAA, 0xBB}},
		{Address: 0x110, Data: []byte{0xCC, 0xDD}},
	}
	base, bytes, err := Flatten(segs)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	if base != 0x100 {
		t.Errorf("base = %#x, want 0x100", base)
	}
	if len(bytes) != 0x12 {
		t.Fatalf("len(bytes) = %#x, want 0x12", len(bytes))
	}
	if bytes[0] != 0xAA || bytes[1] != 0xBB {
		t.Errorf("bytes[0:2] = %x, want AABB", bytes[0:2])
	}
	for i := 2; i <= 0x0F; i++ {
		if bytes[i] != 0xFF {
			t.Errorf("bytes[%#x] = %#02x, want 0xFF (gap)", i, bytes[i])
		}
	}
	if bytes[0x10] != 0xCC || bytes[0x11] != 0xDD {
		t.Errorf("bytes[0x10:0x12] = %x, want CCDD", bytes[0x10:0x12])
	}
}

func TestFlattenEmptySegmentsFails(t *testing.T) {
	_, _, err := Flatten(nil)
	if err == nil {
		t.Fatalf("Flatten(nil) error = nil, want errEmptySegments")
	}
}

func TestFlattenRejectsOverlap(t *testing.T) {
	segs := []Segment{
		{Address: 0x000, Data: []byte{0x01, 0x02, 0x03}},
		{Address: 0x002, Data: []byte{0x04, 0x05}},
	}
	_, _, err := Flatten(segs)
	if err == nil {
		t.Fatalf("Flatten() error = nil, want overlap failure")
	}
}

func TestFlattenRoundTripPreservesLiteralBytes(t *testing.T) {
	segs := []Segment{
		{Address: 0, Data: []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F}},
	}
	base, bytes, err := Flatten(segs)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	if base != 0 {
		t.Errorf("base = %#x, want 0", base)
	}
	for i, b := range segs[0].Data {
		if bytes[i] != b {
			t.Errorf("bytes[%d] = %#02x, want %#02x", i, bytes[i], b)
		}
	}
}
