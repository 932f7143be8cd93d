// Package video implements the DMG picture processing unit: the per-dot
// mode state machine, the LCD registers and the scanline renderer.
package video

import (
	"github.com/mvella/go-dmg/dmg/addr"
	"github.com/mvella/go-dmg/dmg/bit"
	"github.com/mvella/go-dmg/dmg/interrupt"
)

// Mode is the PPU mode as exposed in STAT bits 1-0.
type Mode uint8

const (
	ModeHBlank Mode = iota
	ModeVBlank
	ModeOAMScan
	ModePixelTransfer
)

// Scanline timing in dots (4 dots per machine cycle).
const (
	oamScanDots       = 80
	pixelTransferDots = 252
	LineDots          = 456

	visibleLines = 144
	totalLines   = 154

	// FrameDots is the length of a full frame.
	FrameDots = LineDots * totalLines
)

// LCDC bits.
const (
	lcdcBGEnable      = 0
	lcdcSpriteEnable  = 1
	lcdcSpriteSize    = 2
	lcdcBGTileMap     = 3
	lcdcTileData      = 4
	lcdcWindowEnable  = 5
	lcdcWindowTileMap = 6
	lcdcLCDEnable     = 7
)

// STAT bits.
const (
	statModeHBlankInt = 3
	statModeVBlankInt = 4
	statModeOAMInt    = 5
	statLYCInt        = 6
	statCoincidence   = 2
)

// PPU drives the LCD. It owns no memory: VRAM and OAM are views into the
// bus-owned byte slices, shared so OAM DMA writes land where the renderer
// reads.
type PPU struct {
	ic   *interrupt.Controller
	vram []byte
	oam  []byte

	fb *FrameBuffer

	mode Mode
	dots int
	ly   uint8
	lyc  uint8

	lcdc uint8
	stat uint8 // interrupt source and coincidence bits only
	scy  uint8
	scx  uint8
	bgp  uint8
	obp0 uint8
	obp1 uint8
	wy   uint8
	wx   uint8

	// windowLine is the internal window line counter, advanced only on
	// lines where the window was actually drawn.
	windowLine uint8

	// lineColors holds the raw 2-bit background color index per pixel of
	// the line being rendered, consulted by sprite priority.
	lineColors [FramebufferWidth]uint8

	frameReady bool
	blankDots  int
}

// New creates a PPU over the given VRAM (8KiB) and OAM (160 bytes) views.
func New(ic *interrupt.Controller, vram, oam []byte) *PPU {
	p := &PPU{
		ic:   ic,
		vram: vram,
		oam:  oam,
		fb:   NewFrameBuffer(FramebufferWidth, FramebufferHeight),
	}
	p.Reset()
	return p
}

// Reset returns the PPU to its power-on register state, LCD enabled.
func (p *PPU) Reset() {
	p.mode = ModeOAMScan
	p.dots = 0
	p.ly = 0
	p.lyc = 0
	p.lcdc = 0x91
	p.stat = 0
	p.scy = 0
	p.scx = 0
	p.bgp = 0xFC
	p.obp0 = 0xFF
	p.obp1 = 0xFF
	p.wy = 0
	p.wx = 0
	p.windowLine = 0
	p.frameReady = false
	p.blankDots = 0
	p.fb.Clear(WhiteColor)
}

// Tick advances the PPU by the given number of dots.
func (p *PPU) Tick(cycles int) {
	if !bit.IsSet(lcdcLCDEnable, p.lcdc) {
		// the LCD is off but frame pacing continues, so callers waiting
		// on frame boundaries are not stalled forever
		p.blankDots += cycles
		for p.blankDots >= FrameDots {
			p.blankDots -= FrameDots
			p.frameReady = true
		}
		return
	}

	for i := 0; i < cycles; i++ {
		p.dots++

		switch p.mode {
		case ModeOAMScan:
			if p.dots == oamScanDots {
				p.setMode(ModePixelTransfer)
			}
		case ModePixelTransfer:
			if p.dots == pixelTransferDots {
				p.renderScanline()
				p.setMode(ModeHBlank)
			}
		case ModeHBlank:
			if p.dots == LineDots {
				p.dots = 0
				p.ly++
				p.compareLYC()
				if p.ly == visibleLines {
					p.setMode(ModeVBlank)
				} else {
					p.setMode(ModeOAMScan)
				}
			}
		case ModeVBlank:
			if p.dots == LineDots {
				p.dots = 0
				p.ly++
				if p.ly == totalLines {
					p.ly = 0
					p.windowLine = 0
					p.setMode(ModeOAMScan)
				}
				p.compareLYC()
			}
		}
	}
}

func (p *PPU) setMode(mode Mode) {
	p.mode = mode

	switch mode {
	case ModeHBlank:
		if bit.IsSet(statModeHBlankInt, p.stat) {
			p.ic.Request(interrupt.Stat)
		}
	case ModeVBlank:
		p.ic.Request(interrupt.VBlank)
		p.frameReady = true
		if bit.IsSet(statModeVBlankInt, p.stat) {
			p.ic.Request(interrupt.Stat)
		}
	case ModeOAMScan:
		if bit.IsSet(statModeOAMInt, p.stat) {
			p.ic.Request(interrupt.Stat)
		}
	}
}

func (p *PPU) compareLYC() {
	// the coincidence bit itself is derived on STAT reads
	if p.ly == p.lyc && bit.IsSet(statLYCInt, p.stat) {
		p.ic.Request(interrupt.Stat)
	}
}

// ConsumeFrame reports whether a frame completed since the last call and
// clears the flag.
func (p *PPU) ConsumeFrame() bool {
	ready := p.frameReady
	p.frameReady = false
	return ready
}

// Framebuffer returns the frame being displayed. Contents are stable
// between VBlank entries.
func (p *PPU) Framebuffer() *FrameBuffer {
	return p.fb
}

// Mode returns the current PPU mode.
func (p *PPU) Mode() Mode {
	return p.mode
}

// ReadRegister reads an LCD register (0xFF40-0xFF4B).
func (p *PPU) ReadRegister(address uint16) byte {
	switch address {
	case addr.LCDC:
		return p.lcdc
	case addr.STAT:
		return 0x80 | p.stat&0x78 | p.coincidenceBit() | uint8(p.mode)
	case addr.SCY:
		return p.scy
	case addr.SCX:
		return p.scx
	case addr.LY:
		return p.ly
	case addr.LYC:
		return p.lyc
	case addr.BGP:
		return p.bgp
	case addr.OBP0:
		return p.obp0
	case addr.OBP1:
		return p.obp1
	case addr.WY:
		return p.wy
	case addr.WX:
		return p.wx
	default:
		return 0xFF
	}
}

func (p *PPU) coincidenceBit() uint8 {
	if p.ly == p.lyc {
		return 1 << statCoincidence
	}
	return 0
}

// WriteRegister writes an LCD register. LY is read-only; the STAT mode and
// coincidence bits are not writable.
func (p *PPU) WriteRegister(address uint16, value byte) {
	switch address {
	case addr.LCDC:
		wasEnabled := bit.IsSet(lcdcLCDEnable, p.lcdc)
		p.lcdc = value
		enabled := bit.IsSet(lcdcLCDEnable, p.lcdc)
		if wasEnabled && !enabled {
			// turning the LCD off resets the scan position
			p.ly = 0
			p.dots = 0
			p.mode = ModeHBlank
			p.fb.Clear(WhiteColor)
		} else if !wasEnabled && enabled {
			p.dots = 0
			p.mode = ModeOAMScan
			p.blankDots = 0
			p.compareLYC()
		}
	case addr.STAT:
		p.stat = value & 0x78
	case addr.SCY:
		p.scy = value
	case addr.SCX:
		p.scx = value
	case addr.LY:
		// read-only
	case addr.LYC:
		p.lyc = value
		if bit.IsSet(lcdcLCDEnable, p.lcdc) {
			p.compareLYC()
		}
	case addr.BGP:
		p.bgp = value
	case addr.OBP0:
		p.obp0 = value
	case addr.OBP1:
		p.obp1 = value
	case addr.WY:
		p.wy = value
	case addr.WX:
		p.wx = value
	}
}
