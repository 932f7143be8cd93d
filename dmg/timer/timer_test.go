package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvella/go-dmg/dmg/addr"
	"github.com/mvella/go-dmg/dmg/interrupt"
)

func newTestTimer() (*Timer, *interrupt.Controller) {
	ic := interrupt.NewController()
	ic.WriteIE(0x1F)
	return New(ic), ic
}

func timerIRQ(ic *interrupt.Controller) bool {
	return ic.ReadIF()&(1<<interrupt.Timer) != 0
}

func TestDIV(t *testing.T) {
	t.Run("increments every 256 cycles", func(t *testing.T) {
		tm, _ := newTestTimer()

		tm.Tick(255)
		assert.Equal(t, byte(0), tm.Read(addr.DIV))
		tm.Tick(1)
		assert.Equal(t, byte(1), tm.Read(addr.DIV))
		tm.Tick(256 * 3)
		assert.Equal(t, byte(4), tm.Read(addr.DIV))
	})

	t.Run("write resets the internal counter", func(t *testing.T) {
		tm, _ := newTestTimer()

		tm.Tick(1000)
		assert.NotEqual(t, byte(0), tm.Read(addr.DIV))
		tm.Write(addr.DIV, 0x5A)
		assert.Equal(t, byte(0), tm.Read(addr.DIV))
	})
}

func TestTIMAClocking(t *testing.T) {
	freqs := []struct {
		desc   string
		tac    byte
		period int
	}{
		{"4096 Hz", 0x04, 1024},
		{"262144 Hz", 0x05, 16},
		{"65536 Hz", 0x06, 64},
		{"16384 Hz", 0x07, 256},
	}

	for _, f := range freqs {
		t.Run(f.desc, func(t *testing.T) {
			tm, _ := newTestTimer()
			tm.Write(addr.TAC, f.tac)

			tm.Tick(f.period * 3)
			assert.Equal(t, byte(3), tm.Read(addr.TIMA))
		})
	}

	t.Run("disabled timer does not count", func(t *testing.T) {
		tm, _ := newTestTimer()
		tm.Write(addr.TAC, 0x00)

		tm.Tick(4096)
		assert.Equal(t, byte(0), tm.Read(addr.TIMA))
	})
}

func TestTIMAOverflow(t *testing.T) {
	t.Run("reload and interrupt one machine cycle after the wrap", func(t *testing.T) {
		tm, ic := newTestTimer()
		tm.Write(addr.TAC, 0x05) // fastest clock, period 16
		tm.Write(addr.TMA, 0xAB)
		tm.Write(addr.TIMA, 0xFF)

		// run up to (but not past) the overflowing edge
		for tm.Read(addr.TIMA) == 0xFF {
			tm.Tick(1)
		}

		// during the gap TIMA reads 0 and no interrupt is raised yet
		assert.Equal(t, byte(0x00), tm.Read(addr.TIMA))
		assert.False(t, timerIRQ(ic))

		tm.Tick(3)
		assert.Equal(t, byte(0x00), tm.Read(addr.TIMA))
		assert.False(t, timerIRQ(ic))

		tm.Tick(1)
		assert.Equal(t, byte(0xAB), tm.Read(addr.TIMA))
		assert.True(t, timerIRQ(ic))
	})

	t.Run("TIMA write during the gap cancels the reload", func(t *testing.T) {
		tm, ic := newTestTimer()
		tm.Write(addr.TAC, 0x05)
		tm.Write(addr.TMA, 0xAB)
		tm.Write(addr.TIMA, 0xFF)

		for tm.Read(addr.TIMA) == 0xFF {
			tm.Tick(1)
		}
		tm.Write(addr.TIMA, 0x42)

		tm.Tick(8)
		assert.Equal(t, byte(0x42), tm.Read(addr.TIMA))
		assert.False(t, timerIRQ(ic))
	})
}

func TestTimerRegisters(t *testing.T) {
	tm, _ := newTestTimer()

	tm.Write(addr.TAC, 0xFF)
	assert.Equal(t, byte(0xFF), tm.Read(addr.TAC), "unused TAC bits read as 1")

	tm.Write(addr.TMA, 0x7F)
	assert.Equal(t, byte(0x7F), tm.Read(addr.TMA))
}
