package cart

import "fmt"

// MBC is the interface between the bus and a cartridge's bank controller.
// Read/Write cover the ROM window (0x0000-0x7FFF) and the external RAM
// window (0xA000-0xBFFF); everything else never reaches the cartridge.
type MBC interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
	RAM() []byte
	LoadRAM(data []byte) error
}

// romRead indexes the raw image with wraparound, so bank numbers beyond the
// physical ROM alias back onto it instead of panicking.
func romRead(rom []byte, offset int) byte {
	return rom[offset%len(rom)]
}

func copyRAM(ram []byte) []byte {
	if len(ram) == 0 {
		return nil
	}
	out := make([]byte, len(ram))
	copy(out, ram)
	return out
}

func loadRAM(ram, data []byte) error {
	if len(data) != len(ram) {
		return fmt.Errorf("save data is %d bytes, cartridge RAM is %d bytes", len(data), len(ram))
	}
	copy(ram, data)
	return nil
}

// noMBC is a plain 32KiB ROM, optionally with unbanked RAM.
type noMBC struct {
	rom []byte
	ram []byte
}

func newNoMBC(rom []byte, ramSize int) *noMBC {
	return &noMBC{rom: rom, ram: make([]byte, ramSize)}
}

func (m *noMBC) Read(address uint16) byte {
	if address <= 0x7FFF {
		return romRead(m.rom, int(address))
	}
	if len(m.ram) == 0 {
		return 0xFF
	}
	return m.ram[int(address-0xA000)%len(m.ram)]
}

func (m *noMBC) Write(address uint16, value byte) {
	if address >= 0xA000 && address <= 0xBFFF && len(m.ram) > 0 {
		m.ram[int(address-0xA000)%len(m.ram)] = value
	}
}

func (m *noMBC) RAM() []byte            { return copyRAM(m.ram) }
func (m *noMBC) LoadRAM(d []byte) error { return loadRAM(m.ram, d) }

// mbc1 implements the MBC1 controller: a 5-bit ROM bank register, a 2-bit
// secondary register and a mode flag that routes the secondary register to
// either ROM bank high bits or the RAM bank.
type mbc1 struct {
	rom []byte
	ram []byte

	ramEnabled bool
	bankLow    byte // 5-bit ROM bank register, 0 behaves as 1
	bankHigh   byte // 2-bit secondary register
	mode       byte // 0 = ROM banking, 1 = RAM banking
}

func newMBC1(rom []byte, ramSize int) *mbc1 {
	return &mbc1{rom: rom, ram: make([]byte, ramSize), bankLow: 1}
}

func (m *mbc1) Read(address uint16) byte {
	switch {
	case address <= 0x3FFF:
		bank := 0
		if m.mode == 1 {
			bank = int(m.bankHigh) << 5
		}
		return romRead(m.rom, bank*romBankSize+int(address))
	case address <= 0x7FFF:
		bank := int(m.bankHigh)<<5 | int(m.bankLow)
		return romRead(m.rom, bank*romBankSize+int(address-0x4000))
	default:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		return m.ram[m.ramOffset(address)]
	}
}

func (m *mbc1) Write(address uint16, value byte) {
	switch {
	case address <= 0x1FFF:
		m.ramEnabled = value&0x0F == 0x0A
	case address <= 0x3FFF:
		m.bankLow = value & 0x1F
		if m.bankLow == 0 {
			m.bankLow = 1
		}
	case address <= 0x5FFF:
		m.bankHigh = value & 0x03
	case address <= 0x7FFF:
		m.mode = value & 0x01
	case address >= 0xA000 && address <= 0xBFFF:
		if m.ramEnabled && len(m.ram) > 0 {
			m.ram[m.ramOffset(address)] = value
		}
	}
}

func (m *mbc1) ramOffset(address uint16) int {
	bank := 0
	if m.mode == 1 {
		bank = int(m.bankHigh)
	}
	return (bank*ramBankSize + int(address-0xA000)) % len(m.ram)
}

func (m *mbc1) RAM() []byte            { return copyRAM(m.ram) }
func (m *mbc1) LoadRAM(d []byte) error { return loadRAM(m.ram, d) }

// mbc2 implements the MBC2 controller with its built-in 512x4 bit RAM.
// Address bit 8 selects between the RAM enable and ROM bank registers.
type mbc2 struct {
	rom []byte
	ram []byte // 512 nibbles, upper bits read back as 1

	ramEnabled bool
	romBank    byte
}

func newMBC2(rom []byte) *mbc2 {
	return &mbc2{rom: rom, ram: make([]byte, 512), romBank: 1}
}

func (m *mbc2) Read(address uint16) byte {
	switch {
	case address <= 0x3FFF:
		return romRead(m.rom, int(address))
	case address <= 0x7FFF:
		return romRead(m.rom, int(m.romBank)*romBankSize+int(address-0x4000))
	default:
		if !m.ramEnabled {
			return 0xFF
		}
		// only 512 nibbles exist, echoed through the rest of the window
		return m.ram[address&0x1FF] | 0xF0
	}
}

func (m *mbc2) Write(address uint16, value byte) {
	switch {
	case address <= 0x3FFF:
		if address&0x0100 != 0 {
			m.romBank = value & 0x0F
			if m.romBank == 0 {
				m.romBank = 1
			}
		} else {
			m.ramEnabled = value&0x0F == 0x0A
		}
	case address >= 0xA000 && address <= 0xBFFF:
		if m.ramEnabled {
			m.ram[address&0x1FF] = value & 0x0F
		}
	}
}

func (m *mbc2) RAM() []byte            { return copyRAM(m.ram) }
func (m *mbc2) LoadRAM(d []byte) error { return loadRAM(m.ram, d) }

// mbc3 implements the MBC3 controller without the real-time clock. Latch
// and RTC register selects are accepted and ignored; RTC reads return 0xFF.
type mbc3 struct {
	rom []byte
	ram []byte

	ramEnabled bool
	romBank    byte
	ramBank    byte // values above 0x03 select an RTC register
}

func newMBC3(rom []byte, ramSize int) *mbc3 {
	return &mbc3{rom: rom, ram: make([]byte, ramSize), romBank: 1}
}

func (m *mbc3) Read(address uint16) byte {
	switch {
	case address <= 0x3FFF:
		return romRead(m.rom, int(address))
	case address <= 0x7FFF:
		return romRead(m.rom, int(m.romBank)*romBankSize+int(address-0x4000))
	default:
		if !m.ramEnabled || m.ramBank > 0x03 || len(m.ram) == 0 {
			return 0xFF
		}
		return m.ram[m.ramOffset(address)]
	}
}

func (m *mbc3) Write(address uint16, value byte) {
	switch {
	case address <= 0x1FFF:
		m.ramEnabled = value&0x0F == 0x0A
	case address <= 0x3FFF:
		m.romBank = value & 0x7F
		if m.romBank == 0 {
			m.romBank = 1
		}
	case address <= 0x5FFF:
		m.ramBank = value & 0x0F
	case address <= 0x7FFF:
		// clock latch, no RTC emulated
	case address >= 0xA000 && address <= 0xBFFF:
		if m.ramEnabled && m.ramBank <= 0x03 && len(m.ram) > 0 {
			m.ram[m.ramOffset(address)] = value
		}
	}
}

func (m *mbc3) ramOffset(address uint16) int {
	return (int(m.ramBank)*ramBankSize + int(address-0xA000)) % len(m.ram)
}

func (m *mbc3) RAM() []byte            { return copyRAM(m.ram) }
func (m *mbc3) LoadRAM(d []byte) error { return loadRAM(m.ram, d) }

// mbc5 implements the MBC5 controller: a 9-bit ROM bank (bank 0 mappable)
// and a 4-bit RAM bank.
type mbc5 struct {
	rom []byte
	ram []byte

	ramEnabled bool
	romBank    uint16
	ramBank    byte
}

func newMBC5(rom []byte, ramSize int) *mbc5 {
	return &mbc5{rom: rom, ram: make([]byte, ramSize), romBank: 1}
}

func (m *mbc5) Read(address uint16) byte {
	switch {
	case address <= 0x3FFF:
		return romRead(m.rom, int(address))
	case address <= 0x7FFF:
		return romRead(m.rom, int(m.romBank)*romBankSize+int(address-0x4000))
	default:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		return m.ram[m.ramOffset(address)]
	}
}

func (m *mbc5) Write(address uint16, value byte) {
	switch {
	case address <= 0x1FFF:
		m.ramEnabled = value&0x0F == 0x0A
	case address <= 0x2FFF:
		m.romBank = m.romBank&0x100 | uint16(value)
	case address <= 0x3FFF:
		m.romBank = m.romBank&0x0FF | uint16(value&0x01)<<8
	case address <= 0x5FFF:
		m.ramBank = value & 0x0F
	case address >= 0xA000 && address <= 0xBFFF:
		if m.ramEnabled && len(m.ram) > 0 {
			m.ram[m.ramOffset(address)] = value
		}
	}
}

func (m *mbc5) ramOffset(address uint16) int {
	return (int(m.ramBank)*ramBankSize + int(address-0xA000)) % len(m.ram)
}

func (m *mbc5) RAM() []byte            { return copyRAM(m.ram) }
func (m *mbc5) LoadRAM(d []byte) error { return loadRAM(m.ram, d) }
