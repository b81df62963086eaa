package hexfile

import (
	"fmt"

	"github.com/btcsuite/goleveldb/leveldb/errors"
)

// Sentinel errors, following the teacher's pattern of wrapping a
// goleveldb errors.New value (dumper/extract.go) rather than hand-rolling
// fmt.Errorf everywhere. ParseError additionally carries the offending
// 1-based line number (spec §4.1).
var (
	errMissingColon    = errors.New("hexfile: record does not start with ':'")
	errOddHexDigits    = errors.New("hexfile: odd number of hex digits")
	errInvalidHex      = errors.New("hexfile: invalid hex digit")
	errShortRecord     = errors.New("hexfile: record length does not match byte count field")
	errBadChecksum     = errors.New("hexfile: checksum does not sum to zero")
	errUnknownRecord   = errors.New("hexfile: unrecognized record type")
	errEmptySegments   = errors.New("hexfile: empty segment list")
	errOverlappingSegs = errors.New("hexfile: overlapping segments")
)

// ParseError reports a HEX syntax or structure violation at a specific
// 1-based source line (spec §4.1: "a failure indicating the offending
// 1-based line number and reason").
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
