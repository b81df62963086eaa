package hexfile

// Flatten collapses segments into a single (baseAddress, bytes) image
// spanning [min, max) across every segment, 0xFF-filled where no segment
// provides data (spec §4.2). Fails if segments is empty, or if any two
// segments overlap (the source format guarantees disjointness; this
// implementation rejects overlaps defensively rather than silently
// picking a last-writer-wins byte, per spec §4.2's open question).
func Flatten(segments []Segment) (base uint32, bytes []byte, err error) {
	if len(segments) == 0 {
		return 0, nil, errEmptySegments
	}

	minAddr := segments[0].Address
	maxAddr := segments[0].end()
	for _, s := range segments[1:] {
		if s.Address < minAddr {
			minAddr = s.Address
		}
		if s.end() > maxAddr {
			maxAddr = s.end()
		}
	}

	out := make([]byte, maxAddr-minAddr)
	for i := range out {
		out[i] = 0xFF
	}
	written := make([]bool, len(out))

	for _, s := range segments {
		offset := s.Address - minAddr
		for i, b := range s.Data {
			idx := int(offset) + i
			if written[idx] {
				return 0, nil, errOverlappingSegs
			}
			written[idx] = true
			out[idx] = b
		}
	}

	return minAddr, out, nil
}
