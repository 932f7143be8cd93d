package video

import (
	"sort"

	"github.com/mvella/go-dmg/dmg/bit"
)

// Sprite attribute bits (OAM byte 3).
const (
	attrPalette  = 4
	attrFlipX    = 5
	attrFlipY    = 6
	attrPriority = 7
)

const maxSpritesPerLine = 10

type sprite struct {
	x, y  int
	tile  uint8
	attrs uint8
	index int
}

// renderScanline draws line LY into the framebuffer. It runs once per
// visible line, at the end of pixel transfer.
func (p *PPU) renderScanline() {
	y := int(p.ly)

	if bit.IsSet(lcdcBGEnable, p.lcdc) {
		p.renderBackground(y)
		if bit.IsSet(lcdcWindowEnable, p.lcdc) && p.wy <= p.ly {
			if p.renderWindow(y) {
				p.windowLine++
			}
		}
	} else {
		for x := 0; x < FramebufferWidth; x++ {
			p.lineColors[x] = 0
			p.fb.SetPixel(x, y, WhiteColor)
		}
	}

	if bit.IsSet(lcdcSpriteEnable, p.lcdc) {
		p.renderSprites(y)
	}
}

func (p *PPU) renderBackground(y int) {
	mapBase := 0x1800
	if bit.IsSet(lcdcBGTileMap, p.lcdc) {
		mapBase = 0x1C00
	}

	bgY := (y + int(p.scy)) & 0xFF
	for x := 0; x < FramebufferWidth; x++ {
		bgX := (x + int(p.scx)) & 0xFF

		tileIndex := p.vram[mapBase+(bgY/8)*32+bgX/8]
		lo, hi := p.tileRow(tileIndex, bgY%8)

		color := tilePixel(lo, hi, bgX%8)
		p.lineColors[x] = color
		p.fb.SetPixel(x, y, shadeToColor[paletteShade(p.bgp, color)])
	}
}

// renderWindow overlays the window on line y and reports whether any window
// pixel was drawn, which advances the internal window line counter.
func (p *PPU) renderWindow(y int) bool {
	if p.wx >= 167 {
		return false
	}

	mapBase := 0x1800
	if bit.IsSet(lcdcWindowTileMap, p.lcdc) {
		mapBase = 0x1C00
	}

	startX := int(p.wx) - 7
	drawn := false
	winY := int(p.windowLine)

	for x := max(startX, 0); x < FramebufferWidth; x++ {
		winX := x - startX

		tileIndex := p.vram[mapBase+(winY/8)*32+winX/8]
		lo, hi := p.tileRow(tileIndex, winY%8)

		color := tilePixel(lo, hi, winX%8)
		p.lineColors[x] = color
		p.fb.SetPixel(x, y, shadeToColor[paletteShade(p.bgp, color)])
		drawn = true
	}
	return drawn
}

func (p *PPU) renderSprites(y int) {
	height := 8
	if bit.IsSet(lcdcSpriteSize, p.lcdc) {
		height = 16
	}

	// up to 10 sprites per line, selected in OAM order
	selected := make([]sprite, 0, maxSpritesPerLine)
	for i := 0; i < 40 && len(selected) < maxSpritesPerLine; i++ {
		sy := int(p.oam[i*4]) - 16
		if y < sy || y >= sy+height {
			continue
		}
		selected = append(selected, sprite{
			x:     int(p.oam[i*4+1]) - 8,
			y:     sy,
			tile:  p.oam[i*4+2],
			attrs: p.oam[i*4+3],
			index: i,
		})
	}

	// smaller X wins, ties by OAM order; draw lowest priority first so
	// the winner lands on top
	sort.SliceStable(selected, func(a, b int) bool {
		return selected[a].x < selected[b].x
	})

	for i := len(selected) - 1; i >= 0; i-- {
		p.renderSprite(y, selected[i], height)
	}
}

func (p *PPU) renderSprite(y int, s sprite, height int) {
	row := y - s.y
	if bit.IsSet(attrFlipY, s.attrs) {
		row = height - 1 - row
	}

	tile := s.tile
	if height == 16 {
		tile &= 0xFE
	}

	// sprites always use unsigned tile addressing
	base := int(tile)*16 + row*2
	lo, hi := p.vram[base], p.vram[base+1]

	palette := p.obp0
	if bit.IsSet(attrPalette, s.attrs) {
		palette = p.obp1
	}

	for px := 0; px < 8; px++ {
		x := s.x + px
		if x < 0 || x >= FramebufferWidth {
			continue
		}

		col := px
		if bit.IsSet(attrFlipX, s.attrs) {
			col = 7 - px
		}

		color := tilePixel(lo, hi, col)
		if color == 0 {
			continue
		}
		if bit.IsSet(attrPriority, s.attrs) && p.lineColors[x] != 0 {
			continue
		}
		p.fb.SetPixel(x, y, shadeToColor[paletteShade(palette, color)])
	}
}

// tileRow returns the two bitplane bytes for one row of a background or
// window tile, honoring the LCDC tile data addressing mode.
func (p *PPU) tileRow(tileIndex uint8, row int) (lo, hi byte) {
	var base int
	if bit.IsSet(lcdcTileData, p.lcdc) {
		base = int(tileIndex) * 16
	} else {
		base = 0x1000 + int(int8(tileIndex))*16
	}
	return p.vram[base+row*2], p.vram[base+row*2+1]
}

// tilePixel extracts the 2-bit color index for pixel col (0 = leftmost)
// from a pair of bitplane bytes.
func tilePixel(lo, hi byte, col int) uint8 {
	shift := 7 - col
	return (hi>>shift)&1<<1 | (lo>>shift)&1
}

// paletteShade resolves a 2-bit color index through a palette register.
func paletteShade(palette, color uint8) uint8 {
	return (palette >> (color * 2)) & 0x03
}
