package matrix

import "github.com/ergodox/ergodox-go/internal/hal/mcp23018"

// PrimaryCols is the number of columns driven directly by the primary
// half's GPIO pins (spec §6: PB0..PB3, PD2, PD3, and optionally PC6 for a
// seven-column primary half). This is the seven-column split: Scan drives
// columns 0..6 through GPIO, PC6 included, and the remaining Cols -
// PrimaryCols columns through the secondary half.
const PrimaryCols = 7

// GPIO is the primary half's direct column-drive/row-read surface. A real
// build backs this with DDR/PORT/PIN register writes; it is a small enough
// interface that tests back it with an in-memory fake matrix.
type GPIO interface {
	// DriveColumnLow pulls column col low and leaves every other primary
	// column pin high, settles, and returns the row pins' raw (active-low)
	// reading.
	DriveColumnLow(col int) [Rows]bool
	// Idle returns every column drive pin to its resting high state.
	Idle()
}

// Scanner drives a full matrix scan across the primary half's direct GPIO
// and the secondary half's MCP23018 (spec §4.7). Scanning is stateless and
// re-entrant with respect to the RawSnapshot it produces; all state that
// persists across cycles lives in the Debouncer, not here.
type Scanner struct {
	gpio      GPIO
	secondary *mcp23018.Driver
}

// NewScanner returns a Scanner driving primary through gpio and the
// secondary half through secondary.
func NewScanner(gpio GPIO, secondary *mcp23018.Driver) *Scanner {
	return &Scanner{gpio: gpio, secondary: secondary}
}

// Scan performs one full matrix scan and returns the raw (active-low)
// snapshot. The secondary half degrades to AllReleased() for its columns
// when its driver is not initialized (spec §4.6, §7) — a transient I2C
// outage never blocks the primary half's scan.
func (s *Scanner) Scan() RawSnapshot {
	var raw RawSnapshot
	for col := 0; col < PrimaryCols && col < Cols; col++ {
		rows := s.gpio.DriveColumnLow(col)
		for r := 0; r < Rows; r++ {
			raw[r][col] = rows[r]
		}
	}
	s.gpio.Idle()

	for col := PrimaryCols; col < Cols; col++ {
		secCol := uint8(col - PrimaryCols)
		rowBits := s.secondary.ScanColumn(secCol)
		for r := 0; r < Rows; r++ {
			raw[r][col] = rowBits&(1<<uint(r)) != 0
		}
	}
	return raw
}
