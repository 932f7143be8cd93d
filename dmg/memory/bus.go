// Package memory implements the bus: the 16-bit address space decoder that
// routes CPU accesses to the cartridge, RAM and the memory-mapped devices.
package memory

import (
	"log/slog"

	"github.com/mvella/go-dmg/dmg/addr"
	"github.com/mvella/go-dmg/dmg/cart"
	"github.com/mvella/go-dmg/dmg/interrupt"
	"github.com/mvella/go-dmg/dmg/serial"
	"github.com/mvella/go-dmg/dmg/timer"
	"github.com/mvella/go-dmg/dmg/video"
)

type region uint8

const (
	regionROM region = iota
	regionVRAM
	regionExtRAM
	regionWRAM
	regionEcho
	regionOAMPage // page 0xFE: OAM plus the prohibited area
	regionIO      // page 0xFF: IO registers, HRAM, IE
)

// regionMap resolves the top address byte to a memory region in one lookup.
var regionMap = buildRegionMap()

func buildRegionMap() [256]region {
	var m [256]region
	for page := 0; page < 256; page++ {
		switch {
		case page <= 0x7F:
			m[page] = regionROM
		case page <= 0x9F:
			m[page] = regionVRAM
		case page <= 0xBF:
			m[page] = regionExtRAM
		case page <= 0xDF:
			m[page] = regionWRAM
		case page <= 0xFD:
			m[page] = regionEcho
		case page == 0xFE:
			m[page] = regionOAMPage
		default:
			m[page] = regionIO
		}
	}
	return m
}

// Bus owns system RAM and the memory-mapped devices, and decodes every CPU
// access. VRAM and OAM are shared with the PPU as slice views.
type Bus struct {
	cart   *cart.Cartridge
	ic     *interrupt.Controller
	timer  *timer.Timer
	ppu    *video.PPU
	serial *serial.LogSink

	vram []byte
	wram []byte
	oam  []byte
	hram []byte
	io   []byte // plain storage for registers with no device behind them

	joypadSelect uint8
	buttons      uint8 // bit set = pressed: A, B, Select, Start
	dpad         uint8 // bit set = pressed: Right, Left, Up, Down
}

// New builds a bus with no cartridge attached; ROM and external RAM reads
// return 0xFF until one is attached.
func New(ic *interrupt.Controller) *Bus {
	b := &Bus{
		ic:   ic,
		vram: make([]byte, 0x2000),
		wram: make([]byte, 0x2000),
		oam:  make([]byte, 0xA0),
		hram: make([]byte, 0x7F),
		io:   make([]byte, 0x80),
	}
	b.timer = timer.New(ic)
	b.ppu = video.New(ic, b.vram, b.oam)
	b.serial = serial.NewLogSink(ic)
	b.initIO()
	return b
}

// AttachCartridge maps a cartridge into the ROM and external RAM windows.
func (b *Bus) AttachCartridge(c *cart.Cartridge) {
	b.cart = c
}

// Cartridge returns the attached cartridge, nil when none is mapped.
func (b *Bus) Cartridge() *cart.Cartridge {
	return b.cart
}

// PPU returns the bus-owned picture processing unit.
func (b *Bus) PPU() *video.PPU {
	return b.ppu
}

// Timer returns the bus-owned timer circuit.
func (b *Bus) Timer() *timer.Timer {
	return b.timer
}

// Interrupts returns the interrupt controller the devices raise lines on.
func (b *Bus) Interrupts() *interrupt.Controller {
	return b.ic
}

// Tick forwards elapsed clock cycles to every cycle-driven device.
func (b *Bus) Tick(cycles int) {
	b.timer.Tick(cycles)
	b.ppu.Tick(cycles)
	b.serial.Tick(cycles)
}

// Reset restores power-on state for RAM and all devices. The cartridge
// stays attached; its banking state is not touched.
func (b *Bus) Reset() {
	clear(b.vram)
	clear(b.wram)
	clear(b.oam)
	clear(b.hram)
	clear(b.io)
	b.timer.Reset()
	b.ppu.Reset()
	b.serial.Reset()
	b.ic.Reset()
	b.joypadSelect = 0x30
	b.buttons = 0
	b.dpad = 0
	b.initIO()
}

// powerOnIO holds post-boot values for registers backed by plain storage.
var powerOnIO = map[uint16]byte{
	0xFF10: 0x80, 0xFF11: 0xBF, 0xFF12: 0xF3, 0xFF14: 0xBF,
	0xFF16: 0x3F, 0xFF19: 0xBF, 0xFF1A: 0x7F, 0xFF1B: 0xFF,
	0xFF1C: 0x9F, 0xFF1E: 0xBF, 0xFF20: 0xFF, 0xFF23: 0xBF,
	0xFF24: 0x77, 0xFF25: 0xF3, 0xFF26: 0xF1,
}

func (b *Bus) initIO() {
	for address, value := range powerOnIO {
		b.io[address-addr.IOStart] = value
	}
	b.joypadSelect = 0x30
}

func (b *Bus) Read(address uint16) byte {
	switch regionMap[address>>8] {
	case regionROM, regionExtRAM:
		if b.cart == nil {
			slog.Warn("cartridge read with none attached", "address", address)
			return 0xFF
		}
		return b.cart.Read(address)
	case regionVRAM:
		return b.vram[address-addr.VRAMStart]
	case regionWRAM:
		return b.wram[address-addr.WRAMStart]
	case regionEcho:
		return b.wram[address-addr.EchoStart]
	case regionOAMPage:
		if address <= addr.OAMEnd {
			return b.oam[address-addr.OAMStart]
		}
		return 0xFF
	default:
		return b.readIO(address)
	}
}

func (b *Bus) Write(address uint16, value byte) {
	switch regionMap[address>>8] {
	case regionROM, regionExtRAM:
		if b.cart == nil {
			slog.Warn("cartridge write with none attached", "address", address)
			return
		}
		b.cart.Write(address, value)
	case regionVRAM:
		b.vram[address-addr.VRAMStart] = value
	case regionWRAM:
		b.wram[address-addr.WRAMStart] = value
	case regionEcho:
		b.wram[address-addr.EchoStart] = value
	case regionOAMPage:
		if address <= addr.OAMEnd {
			b.oam[address-addr.OAMStart] = value
		}
	default:
		b.writeIO(address, value)
	}
}

func (b *Bus) readIO(address uint16) byte {
	switch {
	case address == addr.IE:
		return b.ic.ReadIE()
	case address >= addr.HRAMStart:
		return b.hram[address-addr.HRAMStart]
	case address == addr.P1:
		return b.readJoypad()
	case address == addr.SB || address == addr.SC:
		return b.serial.Read(address)
	case address >= addr.DIV && address <= addr.TAC:
		return b.timer.Read(address)
	case address == addr.IF:
		return b.ic.ReadIF()
	case address >= addr.LCDC && address <= addr.WX && address != addr.DMA:
		return b.ppu.ReadRegister(address)
	default:
		return b.io[address-addr.IOStart]
	}
}

func (b *Bus) writeIO(address uint16, value byte) {
	switch {
	case address == addr.IE:
		b.ic.WriteIE(value)
	case address >= addr.HRAMStart:
		b.hram[address-addr.HRAMStart] = value
	case address == addr.P1:
		b.joypadSelect = value & 0x30
	case address == addr.SB || address == addr.SC:
		b.serial.Write(address, value)
	case address >= addr.DIV && address <= addr.TAC:
		b.timer.Write(address, value)
	case address == addr.IF:
		b.ic.WriteIF(value)
	case address == addr.DMA:
		b.io[address-addr.IOStart] = value
		b.runDMA(value)
	case address >= addr.LCDC && address <= addr.WX:
		b.ppu.WriteRegister(address, value)
	default:
		b.io[address-addr.IOStart] = value
	}
}

// runDMA copies 160 bytes from source page<<8 into OAM. The copy happens
// at once; the 160-cycle bus lockout of real hardware is not modeled.
func (b *Bus) runDMA(page byte) {
	source := uint16(page) << 8
	for i := uint16(0); i < 0xA0; i++ {
		b.oam[i] = b.Read(source + i)
	}
}
