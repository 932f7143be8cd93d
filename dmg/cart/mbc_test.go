package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bankedROM returns an image where the first two bytes of every 16KiB bank
// hold the bank number (little endian), so reads reveal which bank is mapped.
func bankedROM(banks int) []byte {
	rom := make([]byte, banks*romBankSize)
	for b := 0; b < banks; b++ {
		rom[b*romBankSize] = byte(b)
		rom[b*romBankSize+1] = byte(b >> 8)
	}
	return rom
}

func TestMBC1(t *testing.T) {
	t.Run("bank 0 register selects bank 1", func(t *testing.T) {
		m := newMBC1(bankedROM(4), 0)

		m.Write(0x2000, 0x00)
		assert.Equal(t, byte(1), m.Read(0x4000))
	})

	t.Run("switches ROM banks", func(t *testing.T) {
		m := newMBC1(bankedROM(8), 0)

		m.Write(0x2000, 0x03)
		assert.Equal(t, byte(3), m.Read(0x4000))
		assert.Equal(t, byte(0), m.Read(0x0000), "low window stays on bank 0")
	})

	t.Run("secondary register extends the bank number", func(t *testing.T) {
		m := newMBC1(bankedROM(64), 0)

		m.Write(0x2000, 0x01)
		m.Write(0x4000, 0x01) // bank = 1<<5 | 1 = 33
		assert.Equal(t, byte(33), m.Read(0x4000))
	})

	t.Run("bank numbers wrap on small ROMs", func(t *testing.T) {
		m := newMBC1(bankedROM(4), 0)

		m.Write(0x2000, 0x1F) // bank 31 on a 4-bank image
		assert.Equal(t, byte(31%4), m.Read(0x4000))
	})

	t.Run("RAM is gated by the enable register", func(t *testing.T) {
		m := newMBC1(bankedROM(2), 0x2000)

		m.Write(0xA000, 0x42)
		assert.Equal(t, byte(0xFF), m.Read(0xA000), "disabled RAM reads 0xFF")

		m.Write(0x0000, 0x0A)
		m.Write(0xA000, 0x42)
		assert.Equal(t, byte(0x42), m.Read(0xA000))

		m.Write(0x0000, 0x00)
		assert.Equal(t, byte(0xFF), m.Read(0xA000))
	})

	t.Run("mode 1 banks RAM", func(t *testing.T) {
		m := newMBC1(bankedROM(2), 0x8000)
		m.Write(0x0000, 0x0A)
		m.Write(0x6000, 0x01)

		m.Write(0x4000, 0x00)
		m.Write(0xA000, 0x11)
		m.Write(0x4000, 0x02)
		m.Write(0xA000, 0x22)

		m.Write(0x4000, 0x00)
		assert.Equal(t, byte(0x11), m.Read(0xA000))
		m.Write(0x4000, 0x02)
		assert.Equal(t, byte(0x22), m.Read(0xA000))
	})
}

func TestMBC2(t *testing.T) {
	t.Run("address bit 8 picks the register", func(t *testing.T) {
		m := newMBC2(bankedROM(8))

		m.Write(0x2100, 0x03) // bit 8 set: ROM bank
		assert.Equal(t, byte(3), m.Read(0x4000))

		m.Write(0x2000, 0x0A) // bit 8 clear: RAM enable
		m.Write(0xA000, 0x05)
		assert.Equal(t, byte(0xF5), m.Read(0xA000), "upper nibble reads as 1")
	})

	t.Run("RAM echoes every 512 bytes", func(t *testing.T) {
		m := newMBC2(bankedROM(2))
		m.Write(0x2000, 0x0A)

		m.Write(0xA000, 0x07)
		assert.Equal(t, byte(0xF7), m.Read(0xA200))
	})
}

func TestMBC3(t *testing.T) {
	t.Run("7-bit ROM bank", func(t *testing.T) {
		m := newMBC3(bankedROM(128), 0)

		m.Write(0x2000, 0x7F)
		assert.Equal(t, byte(127), m.Read(0x4000))

		m.Write(0x2000, 0x00)
		assert.Equal(t, byte(1), m.Read(0x4000))
	})

	t.Run("RTC selects read 0xFF", func(t *testing.T) {
		m := newMBC3(bankedROM(2), 0x8000)
		m.Write(0x0000, 0x0A)

		m.Write(0x4000, 0x00)
		m.Write(0xA000, 0x99)
		assert.Equal(t, byte(0x99), m.Read(0xA000))

		m.Write(0x4000, 0x08) // RTC seconds register
		assert.Equal(t, byte(0xFF), m.Read(0xA000))
		m.Write(0xA000, 0x11) // dropped

		m.Write(0x4000, 0x00)
		assert.Equal(t, byte(0x99), m.Read(0xA000))
	})
}

func TestMBC5(t *testing.T) {
	t.Run("9-bit ROM bank", func(t *testing.T) {
		m := newMBC5(bankedROM(512), 0)

		m.Write(0x2000, 0x34)
		m.Write(0x3000, 0x01) // bank 0x134
		assert.Equal(t, byte(0x34), m.Read(0x4000))
		assert.Equal(t, byte(0x01), m.Read(0x4001))

		m.Write(0x3000, 0x00) // bank 0x034
		assert.Equal(t, byte(0x34), m.Read(0x4000))
		assert.Equal(t, byte(0x00), m.Read(0x4001))
	})

	t.Run("bank 0 is mappable in the high window", func(t *testing.T) {
		m := newMBC5(bankedROM(4), 0)

		m.Write(0x2000, 0x00)
		assert.Equal(t, byte(0), m.Read(0x4000))
	})

	t.Run("banked RAM", func(t *testing.T) {
		m := newMBC5(bankedROM(2), 0x8000)
		m.Write(0x0000, 0x0A)

		m.Write(0x4000, 0x03)
		m.Write(0xA000, 0x33)
		m.Write(0x4000, 0x00)
		assert.NotEqual(t, byte(0x33), m.Read(0xA000))
		m.Write(0x4000, 0x03)
		assert.Equal(t, byte(0x33), m.Read(0xA000))
	})
}

func TestSaveRAMRoundTrip(t *testing.T) {
	rom := buildROM(t, 0x03, 0x01, 0x03) // MBC1 + RAM + battery, 32KiB RAM
	c, err := New(rom)
	require.NoError(t, err)

	c.Write(0x0000, 0x0A)
	c.Write(0x6000, 0x01)
	for bank := byte(0); bank < 4; bank++ {
		c.Write(0x4000, bank)
		c.Write(0xA000, 0xD0|bank)
	}

	snap := c.RAM()
	require.Len(t, snap, 0x8000)

	fresh, err := New(rom)
	require.NoError(t, err)
	require.NoError(t, fresh.LoadRAM(snap))
	assert.Equal(t, snap, fresh.RAM(), "round trip is byte identical")

	fresh.Write(0x0000, 0x0A)
	fresh.Write(0x6000, 0x01)
	fresh.Write(0x4000, 0x02)
	assert.Equal(t, byte(0xD2), fresh.Read(0xA000))
}

func TestLoadRAMSizeMismatch(t *testing.T) {
	c, err := New(buildROM(t, 0x03, 0x01, 0x02))
	require.NoError(t, err)

	assert.Error(t, c.LoadRAM(make([]byte, 0x1234)))
	assert.NoError(t, c.LoadRAM(make([]byte, 0x2000)))
}

func TestNoMBC(t *testing.T) {
	rom := bankedROM(2)
	rom[0x5678] = 0xAA
	m := newNoMBC(rom, 0)

	assert.Equal(t, byte(0xAA), m.Read(0x5678))
	assert.Equal(t, byte(0xFF), m.Read(0xA000), "no RAM fitted")
	m.Write(0x2000, 0x05) // bank writes are ignored
	assert.Equal(t, byte(1), m.Read(0x4000))
}
