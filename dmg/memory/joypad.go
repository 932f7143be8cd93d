package memory

import "github.com/mvella/go-dmg/dmg/interrupt"

// JoypadKey identifies one of the eight buttons. The value doubles as the
// bit index used by SetJoypadState masks.
type JoypadKey uint8

const (
	JoypadA JoypadKey = iota
	JoypadB
	JoypadSelect
	JoypadStart
	JoypadRight
	JoypadLeft
	JoypadUp
	JoypadDown
)

// P1 select bits: 0 = group selected.
const (
	selectDpad    = 1 << 4
	selectButtons = 1 << 5
)

// SetKey updates the pressed state of one button. A new press raises the
// joypad interrupt.
func (b *Bus) SetKey(key JoypadKey, pressed bool) {
	group := &b.buttons
	bitIndex := uint8(key)
	if key >= JoypadRight {
		group = &b.dpad
		bitIndex -= 4
	}

	mask := uint8(1) << bitIndex
	wasPressed := *group&mask != 0
	if pressed {
		*group |= mask
	} else {
		*group &^= mask
	}

	if pressed && !wasPressed {
		b.ic.Request(interrupt.Joypad)
	}
}

// readJoypad builds the P1 register value: select bits as written, button
// lines low when pressed and their group is selected.
func (b *Bus) readJoypad() byte {
	value := 0xC0 | b.joypadSelect | 0x0F

	if b.joypadSelect&selectDpad == 0 {
		value &^= b.dpad & 0x0F
	}
	if b.joypadSelect&selectButtons == 0 {
		value &^= b.buttons & 0x0F
	}
	return value
}
