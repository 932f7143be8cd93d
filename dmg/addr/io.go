// Package addr holds memory-mapped register addresses and region bounds
// for the DMG memory map.
package addr

// Joypad
const (
	P1 uint16 = 0xFF00
)

// Serial transfer
const (
	SB uint16 = 0xFF01
	SC uint16 = 0xFF02
)

// Timer and divider
const (
	DIV  uint16 = 0xFF04
	TIMA uint16 = 0xFF05
	TMA  uint16 = 0xFF06
	TAC  uint16 = 0xFF07
)

// Interrupts
const (
	IF uint16 = 0xFF0F
	IE uint16 = 0xFFFF
)

// Sound registers occupy 0xFF10..0xFF3F (including wave RAM).
const (
	AudioStart uint16 = 0xFF10
	AudioEnd   uint16 = 0xFF3F
)

// LCD registers
const (
	LCDC uint16 = 0xFF40
	STAT uint16 = 0xFF41
	SCY  uint16 = 0xFF42
	SCX  uint16 = 0xFF43
	LY   uint16 = 0xFF44
	LYC  uint16 = 0xFF45
	DMA  uint16 = 0xFF46
	BGP  uint16 = 0xFF47
	OBP0 uint16 = 0xFF48
	OBP1 uint16 = 0xFF49
	WY   uint16 = 0xFF4A
	WX   uint16 = 0xFF4B
)

// Memory region bounds
const (
	ROMStart    uint16 = 0x0000
	ROMEnd      uint16 = 0x7FFF
	VRAMStart   uint16 = 0x8000
	VRAMEnd     uint16 = 0x9FFF
	ExtRAMStart uint16 = 0xA000
	ExtRAMEnd   uint16 = 0xBFFF
	WRAMStart   uint16 = 0xC000
	WRAMEnd     uint16 = 0xDFFF
	EchoStart   uint16 = 0xE000
	EchoEnd     uint16 = 0xFDFF
	OAMStart    uint16 = 0xFE00
	OAMEnd      uint16 = 0xFE9F
	UnusedStart uint16 = 0xFEA0
	UnusedEnd   uint16 = 0xFEFF
	IOStart     uint16 = 0xFF00
	HRAMStart   uint16 = 0xFF80
	HRAMEnd     uint16 = 0xFFFE
)

// Tile data and tile map regions inside VRAM.
const (
	TileData0 uint16 = 0x8000 // unsigned addressing base
	TileData1 uint16 = 0x8800
	TileData2 uint16 = 0x9000 // signed addressing base
	TileMap0  uint16 = 0x9800
	TileMap1  uint16 = 0x9C00
)
