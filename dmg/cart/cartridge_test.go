package cart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildROM assembles a minimal valid image: title, type/size codes and a
// correct header checksum. The image is sized to match the ROM size code.
func buildROM(t *testing.T, mbcType, romCode, ramCode byte) []byte {
	t.Helper()

	rom := make([]byte, 0x8000<<romCode)
	copy(rom[titleAddress:], "TESTCART")
	rom[typeAddress] = mbcType
	rom[romSizeAddress] = romCode
	rom[ramSizeAddress] = ramCode
	rom[checksumAddress] = headerChecksum(rom)
	return rom
}

func TestNewCartridge(t *testing.T) {
	t.Run("parses a valid header", func(t *testing.T) {
		c, err := New(buildROM(t, 0x00, 0x00, 0x00))
		require.NoError(t, err)

		assert.Equal(t, "TESTCART", c.Title)
		assert.Equal(t, byte(0x00), c.Type())
		assert.Equal(t, 0x8000, c.ROMSize())
		assert.Equal(t, 0, c.RAMSize())
		assert.False(t, c.HasBattery())
	})

	t.Run("battery flag from type byte", func(t *testing.T) {
		c, err := New(buildROM(t, 0x03, 0x01, 0x02))
		require.NoError(t, err)
		assert.True(t, c.HasBattery())
		assert.Equal(t, 0x2000, c.RAMSize())
	})

	t.Run("rejects undersized images", func(t *testing.T) {
		_, err := New(make([]byte, 0x100))

		var fe *FormatError
		require.True(t, errors.As(err, &fe))
		assert.Contains(t, fe.Error(), "header")
	})

	t.Run("rejects a bad checksum", func(t *testing.T) {
		rom := buildROM(t, 0x00, 0x00, 0x00)
		rom[checksumAddress] ^= 0xFF

		_, err := New(rom)
		var fe *FormatError
		require.True(t, errors.As(err, &fe))
		assert.Contains(t, fe.Error(), "checksum")
	})

	t.Run("rejects unknown cartridge types", func(t *testing.T) {
		_, err := New(buildROM(t, 0x20, 0x00, 0x00))

		var fe *FormatError
		require.True(t, errors.As(err, &fe))
		assert.Contains(t, fe.Error(), "0x20")
	})

	t.Run("rejects unknown size codes", func(t *testing.T) {
		rom := buildROM(t, 0x00, 0x00, 0x00)
		rom[romSizeAddress] = 0x54
		rom[checksumAddress] = headerChecksum(rom)
		_, err := New(rom)
		var fe *FormatError
		require.True(t, errors.As(err, &fe))

		rom = buildROM(t, 0x00, 0x00, 0x00)
		rom[ramSizeAddress] = 0x09
		rom[checksumAddress] = headerChecksum(rom)
		_, err = New(rom)
		require.True(t, errors.As(err, &fe))
	})
}

func TestHeaderChecksum(t *testing.T) {
	// all-zero header region folds to the known constant
	rom := make([]byte, headerSize)
	want := byte(0)
	for i := checksumStart; i <= checksumEnd; i++ {
		want = want - 0 - 1
	}
	assert.Equal(t, want, headerChecksum(rom))
}

func TestCleanTitle(t *testing.T) {
	cases := []struct {
		desc string
		raw  []byte
		want string
	}{
		{"zero padded", append([]byte("POKEMON"), make([]byte, 9)...), "POKEMON"},
		{"trailing spaces", []byte("TETRIS          "), "TETRIS"},
		{"non printable stripped", []byte{'A', 0x01, 'B', 0x80, 'C'}, "ABC"},
		{"empty", make([]byte, 16), ""},
	}

	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			assert.Equal(t, c.want, cleanTitle(c.raw))
		})
	}
}
