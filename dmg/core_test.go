package dmg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvella/go-dmg/dmg/addr"
	"github.com/mvella/go-dmg/dmg/cart"
	"github.com/mvella/go-dmg/dmg/cpu"
	"github.com/mvella/go-dmg/dmg/memory"
)

// buildROM assembles a 32KiB image with the given code at the entry point
// and a valid header.
func buildROM(t *testing.T, mbcType, ramCode byte, code ...byte) []byte {
	t.Helper()

	rom := make([]byte, 0x8000)
	copy(rom[0x134:], "INTEGRATION")
	rom[0x147] = mbcType
	rom[0x149] = ramCode
	copy(rom[0x100:], code)

	var sum byte
	for i := 0x134; i <= 0x14C; i++ {
		sum = sum - rom[i] - 1
	}
	rom[0x14D] = sum
	return rom
}

func TestLoadCartridge(t *testing.T) {
	t.Run("valid image", func(t *testing.T) {
		d, err := NewWithROM(buildROM(t, 0x00, 0x00, 0x76))
		require.NoError(t, err)
		assert.Equal(t, "INTEGRATION", d.Title())
	})

	t.Run("invalid image reports a format error", func(t *testing.T) {
		_, err := NewWithROM(make([]byte, 0x20))

		var fe *cart.FormatError
		assert.True(t, errors.As(err, &fe))
	})

	t.Run("failed load leaves the running machine untouched", func(t *testing.T) {
		d, err := NewWithROM(buildROM(t, 0x00, 0x00, 0x00, 0x00, 0x76))
		require.NoError(t, err)

		_, err = d.StepInstruction()
		require.NoError(t, err)
		before := d.InstructionCount()
		title := d.Title()

		require.Error(t, d.LoadCartridge([]byte{0x01, 0x02}))
		assert.Equal(t, before, d.InstructionCount())
		assert.Equal(t, title, d.Title())

		_, err = d.StepInstruction()
		assert.NoError(t, err, "machine still runs")
	})
}

func TestRunUntilFrame(t *testing.T) {
	t.Run("HALT-only ROM still produces frames", func(t *testing.T) {
		d, err := NewWithROM(buildROM(t, 0x00, 0x00, 0x76)) // HALT
		require.NoError(t, err)

		require.NoError(t, d.RunUntilFrame())
		assert.Equal(t, uint64(1), d.FrameCount())

		// frame completion lands on entering VBlank, 144 lines in
		assert.Equal(t, uint64(144*456), d.Cycles())

		require.NoError(t, d.RunUntilFrame())
		assert.Equal(t, uint64(2), d.FrameCount())
		assert.Equal(t, uint64(144*456+154*456), d.Cycles())
	})

	t.Run("framebuffer has the right dimensions", func(t *testing.T) {
		d, err := NewWithROM(buildROM(t, 0x00, 0x00, 0x76))
		require.NoError(t, err)
		require.NoError(t, d.RunUntilFrame())

		assert.Len(t, d.Framebuffer().ToSlice(), 160*144)
	})
}

func TestFaultLatching(t *testing.T) {
	d, err := NewWithROM(buildROM(t, 0x00, 0x00, 0xD3)) // illegal opcode
	require.NoError(t, err)

	_, err = d.StepInstruction()
	var fault *cpu.Fault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, uint8(0xD3), fault.Opcode)
	assert.Equal(t, uint16(0x100), fault.Addr)

	_, again := d.StepInstruction()
	assert.Equal(t, err, again)
	assert.Equal(t, err, d.RunUntilFrame())

	// Reset clears the fault
	d.Reset()
	_, err = d.StepInstruction()
	require.Error(t, err, "same ROM faults again")
}

func TestSaveRAM(t *testing.T) {
	// enable RAM, store 0x42 at 0xA000, halt
	code := []byte{
		0x3E, 0x0A, // LD A,0x0A
		0xEA, 0x00, 0x00, // LD (0x0000),A
		0x3E, 0x42, // LD A,0x42
		0xEA, 0x00, 0xA0, // LD (0xA000),A
		0x76, // HALT
	}
	d, err := NewWithROM(buildROM(t, 0x03, 0x02, code...)) // MBC1+RAM+battery, 8KiB
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := d.StepInstruction()
		require.NoError(t, err)
	}

	snap := d.CartridgeRAM()
	require.Len(t, snap, 0x2000)
	assert.Equal(t, byte(0x42), snap[0])

	// restore into a fresh machine
	fresh, err := NewWithROM(buildROM(t, 0x03, 0x02, 0x76))
	require.NoError(t, err)
	require.NoError(t, fresh.LoadCartridgeRAM(snap))
	assert.Equal(t, snap, fresh.CartridgeRAM())
}

func TestSaveRAMWithoutCartridge(t *testing.T) {
	d := New()
	assert.Nil(t, d.CartridgeRAM())
	assert.Error(t, d.LoadCartridgeRAM(make([]byte, 0x2000)))
}

func TestJoypadSurface(t *testing.T) {
	d, err := NewWithROM(buildROM(t, 0x00, 0x00, 0x76))
	require.NoError(t, err)

	d.bus.Write(addr.P1, 0x20) // select dpad
	d.SetButton(memory.JoypadUp, true)
	assert.Equal(t, byte(0xEB), d.bus.Read(addr.P1))

	d.SetJoypadState(0)
	assert.Equal(t, byte(0xEF), d.bus.Read(addr.P1))

	d.SetJoypadState(1 << memory.JoypadRight)
	assert.Equal(t, byte(0xEE), d.bus.Read(addr.P1))
}

func TestIndependentInstances(t *testing.T) {
	first, err := NewWithROM(buildROM(t, 0x00, 0x00, 0x00, 0x00, 0x76))
	require.NoError(t, err)
	second, err := NewWithROM(buildROM(t, 0x00, 0x00, 0x76))
	require.NoError(t, err)

	_, err = first.StepInstruction()
	require.NoError(t, err)

	assert.Equal(t, uint64(1), first.InstructionCount())
	assert.Zero(t, second.InstructionCount())
	assert.Zero(t, second.Cycles())
}
