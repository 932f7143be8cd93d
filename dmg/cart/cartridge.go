// Package cart implements cartridge images: header parsing and validation,
// and the memory bank controllers that sit between the bus and ROM/RAM.
package cart

import (
	"fmt"
	"strings"
)

// Header layout offsets.
const (
	headerSize      = 0x150
	titleAddress    = 0x134
	titleEnd        = 0x144
	typeAddress     = 0x147
	romSizeAddress  = 0x148
	ramSizeAddress  = 0x149
	checksumAddress = 0x14D
	checksumStart   = 0x134
	checksumEnd     = 0x14C
	romBankSize     = 0x4000
	ramBankSize     = 0x2000
)

// ramSizeTable maps the RAM size code at 0x149 to a size in bytes.
var ramSizeTable = [6]int{0, 0x800, 0x2000, 0x8000, 0x20000, 0x10000}

// FormatError reports a ROM image that cannot be parsed as a cartridge.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "invalid cartridge image: " + e.Reason
}

func formatErrorf(format string, args ...any) *FormatError {
	return &FormatError{Reason: fmt.Sprintf(format, args...)}
}

// Cartridge is a parsed ROM image together with its bank controller state.
type Cartridge struct {
	Title string

	mbc        MBC
	mbcType    byte
	hasBattery bool
	romSize    int
	ramSize    int
}

// New parses and validates a ROM image. The slice is retained.
func New(rom []byte) (*Cartridge, error) {
	if len(rom) < headerSize {
		return nil, formatErrorf("image is %d bytes, smaller than the %d byte header", len(rom), headerSize)
	}

	if sum := headerChecksum(rom); sum != rom[checksumAddress] {
		return nil, formatErrorf("header checksum mismatch: computed 0x%02X, header says 0x%02X", sum, rom[checksumAddress])
	}

	romCode := rom[romSizeAddress]
	if romCode > 0x08 {
		return nil, formatErrorf("unknown ROM size code 0x%02X", romCode)
	}
	romSize := 0x8000 << romCode

	ramCode := rom[ramSizeAddress]
	if int(ramCode) >= len(ramSizeTable) {
		return nil, formatErrorf("unknown RAM size code 0x%02X", ramCode)
	}
	ramSize := ramSizeTable[ramCode]

	c := &Cartridge{
		Title:   cleanTitle(rom[titleAddress:titleEnd]),
		mbcType: rom[typeAddress],
		romSize: romSize,
		ramSize: ramSize,
	}

	switch c.mbcType {
	case 0x00:
		c.mbc = newNoMBC(rom, ramSize)
	case 0x01, 0x02, 0x03:
		c.mbc = newMBC1(rom, ramSize)
		c.hasBattery = c.mbcType == 0x03
	case 0x05, 0x06:
		c.mbc = newMBC2(rom)
		c.hasBattery = c.mbcType == 0x06
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		c.mbc = newMBC3(rom, ramSize)
		c.hasBattery = c.mbcType == 0x0F || c.mbcType == 0x10 || c.mbcType == 0x13
	case 0x19, 0x1A, 0x1B:
		c.mbc = newMBC5(rom, ramSize)
		c.hasBattery = c.mbcType == 0x1B
	default:
		return nil, formatErrorf("unsupported cartridge type 0x%02X", c.mbcType)
	}

	return c, nil
}

// headerChecksum computes the 8-bit checksum over 0x134..0x14C.
func headerChecksum(rom []byte) byte {
	var x byte
	for i := checksumStart; i <= checksumEnd; i++ {
		x = x - rom[i] - 1
	}
	return x
}

// cleanTitle strips padding and non-printable bytes from the title field.
func cleanTitle(raw []byte) string {
	var b strings.Builder
	for _, c := range raw {
		if c == 0 {
			break
		}
		if c >= 0x20 && c < 0x7F {
			b.WriteByte(c)
		}
	}
	return strings.TrimSpace(b.String())
}

// Read returns the byte visible at a ROM (0x0000-0x7FFF) or external RAM
// (0xA000-0xBFFF) address under the current banking state.
func (c *Cartridge) Read(address uint16) byte {
	return c.mbc.Read(address)
}

// Write feeds a bus write into the bank controller registers or banked RAM.
func (c *Cartridge) Write(address uint16, value byte) {
	c.mbc.Write(address, value)
}

// RAM returns a copy of the external RAM contents, banks concatenated in
// index order. Nil when the cartridge has no RAM.
func (c *Cartridge) RAM() []byte {
	return c.mbc.RAM()
}

// LoadRAM restores external RAM from a previous RAM() snapshot.
func (c *Cartridge) LoadRAM(data []byte) error {
	return c.mbc.LoadRAM(data)
}

// HasBattery reports whether the cartridge type declares battery-backed RAM,
// meaning RAM contents are worth persisting.
func (c *Cartridge) HasBattery() bool {
	return c.hasBattery
}

// Type returns the raw cartridge type byte from the header.
func (c *Cartridge) Type() byte {
	return c.mbcType
}

// ROMSize returns the ROM size declared by the header, in bytes.
func (c *Cartridge) ROMSize() int {
	return c.romSize
}

// RAMSize returns the external RAM size declared by the header, in bytes.
func (c *Cartridge) RAMSize() int {
	return c.ramSize
}
