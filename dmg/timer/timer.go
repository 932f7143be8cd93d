// Package timer implements the DIV/TIMA/TMA/TAC timer circuit.
package timer

import (
	"github.com/mvella/go-dmg/dmg/addr"
	"github.com/mvella/go-dmg/dmg/bit"
	"github.com/mvella/go-dmg/dmg/interrupt"
)

// tacLookup maps TAC input clock select (bits 1-0) to the bit position of
// the 16-bit internal divider used as the timer's clock source. TIMA
// increments on falling edges of this bit while the timer is enabled.
//
//	00 -> bit 9  (4096 Hz)
//	01 -> bit 3  (262144 Hz)
//	10 -> bit 5  (65536 Hz)
//	11 -> bit 7  (16384 Hz)
var tacLookup = [4]uint8{9, 3, 5, 7}

// Timer holds the divider and timer registers. DIV is the top byte of the
// internal 16-bit counter; writing DIV resets the whole counter.
type Timer struct {
	counter     uint16
	lastTimaBit bool
	overflow    int // cycles left until the delayed TMA reload

	tima byte
	tma  byte
	tac  byte

	ic *interrupt.Controller
}

func New(ic *interrupt.Controller) *Timer {
	return &Timer{ic: ic}
}

// Tick advances the timer by the given number of clock cycles.
func (t *Timer) Tick(cycles int) {
	for i := 0; i < cycles; i++ {
		t.counter++

		if t.overflow > 0 {
			// TIMA holds 0x00 during the overflow gap, then reloads from
			// TMA and raises the interrupt one machine cycle after the wrap.
			t.overflow--
			if t.overflow == 0 {
				t.tima = t.tma
				t.ic.Request(interrupt.Timer)
			}
			continue
		}

		if !bit.IsSet(2, t.tac) {
			t.lastTimaBit = false
			continue
		}

		timaBit := bit.IsSet16(tacLookup[t.tac&0x03], t.counter)
		if t.lastTimaBit && !timaBit {
			t.incrementTIMA()
		}
		t.lastTimaBit = timaBit
	}
}

func (t *Timer) incrementTIMA() {
	if t.tima == 0xFF {
		t.overflow = 4
	}
	t.tima++
}

func (t *Timer) Read(address uint16) byte {
	switch address {
	case addr.DIV:
		return byte(t.counter >> 8)
	case addr.TIMA:
		return t.tima
	case addr.TMA:
		return t.tma
	case addr.TAC:
		return t.tac | 0xF8
	default:
		return 0xFF
	}
}

func (t *Timer) Write(address uint16, value byte) {
	switch address {
	case addr.DIV:
		t.counter = 0
	case addr.TIMA:
		t.tima = value
		t.overflow = 0
	case addr.TMA:
		t.tma = value
	case addr.TAC:
		t.tac = value & 0x07
	}
}

// Reset returns the timer to its power-on state.
func (t *Timer) Reset() {
	t.counter = 0
	t.lastTimaBit = false
	t.overflow = 0
	t.tima = 0
	t.tma = 0
	t.tac = 0
}
