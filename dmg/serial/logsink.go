// Package serial provides a stand-in serial device. There is no link-cable
// peer; outgoing bytes are logged, which is enough for test roms that print
// their results over the serial port.
package serial

import (
	"log/slog"

	"github.com/mvella/go-dmg/dmg/addr"
	"github.com/mvella/go-dmg/dmg/bit"
	"github.com/mvella/go-dmg/dmg/interrupt"
)

// LogSink implements the SB/SC registers against a logging "peer".
// Completed transfers raise the serial interrupt and shift in 0xFF, as if
// no cable were connected.
type LogSink struct {
	ic     *interrupt.Controller
	logger *slog.Logger

	sb, sc         byte
	transferActive bool
	countdown      int

	line []byte
}

// transferCycles is the cost of shifting one byte with the internal clock.
const transferCycles = 4096

func NewLogSink(ic *interrupt.Controller) *LogSink {
	return &LogSink{
		ic:     ic,
		logger: slog.Default(),
	}
}

func (s *LogSink) Read(address uint16) byte {
	switch address {
	case addr.SB:
		return s.sb
	case addr.SC:
		return s.sc | 0x7E
	default:
		panic("serial: invalid read address")
	}
}

func (s *LogSink) Write(address uint16, value byte) {
	switch address {
	case addr.SB:
		s.sb = value
	case addr.SC:
		s.sc = value & 0x81
		s.maybeStartTransfer()
	default:
		panic("serial: invalid write address")
	}
}

func (s *LogSink) Tick(cycles int) {
	if !s.transferActive {
		return
	}
	s.countdown -= cycles
	if s.countdown <= 0 {
		s.completeTransfer()
	}
}

func (s *LogSink) Reset() {
	s.sb = 0
	s.sc = 0
	s.transferActive = false
	s.countdown = 0
	s.line = s.line[:0]
}

func (s *LogSink) maybeStartTransfer() {
	if s.transferActive {
		return
	}
	// a transfer starts when both the start bit (7) and the internal
	// clock bit (0) of SC are set.
	if !bit.IsSet(7, s.sc) || !bit.IsSet(0, s.sc) {
		return
	}

	// buffer printable output until newline for readable logs
	b := s.sb
	if b == 0 || b == '\n' || b == '\r' {
		if len(s.line) > 0 {
			s.logger.Info("serial", "line", string(s.line))
			s.line = s.line[:0]
		}
	} else {
		s.line = append(s.line, b)
	}

	s.transferActive = true
	s.countdown = transferCycles
}

func (s *LogSink) completeTransfer() {
	s.sb = 0xFF
	s.sc = bit.Clear(7, s.sc)
	s.transferActive = false
	s.countdown = 0
	s.ic.Request(interrupt.Serial)
}
