// Package interrupt implements the DMG interrupt controller: the IE and IF
// registers plus the priority logic that picks the next interrupt to service.
package interrupt

// Source identifies one of the five interrupt lines. The numeric value is
// the bit index inside IE/IF and determines priority (lower wins).
type Source uint8

const (
	VBlank Source = iota
	Stat
	Timer
	Serial
	Joypad

	numSources = 5
)

func (s Source) String() string {
	switch s {
	case VBlank:
		return "vblank"
	case Stat:
		return "stat"
	case Timer:
		return "timer"
	case Serial:
		return "serial"
	case Joypad:
		return "joypad"
	}
	return "unknown"
}

// Vector returns the address the CPU jumps to when servicing this source.
func (s Source) Vector() uint16 {
	return 0x0040 + uint16(s)*8
}

// Controller holds interrupt enable and request state. Components raise
// their lines through Request; the CPU consumes them via Next/Acknowledge.
type Controller struct {
	enable  uint8
	request uint8
}

func NewController() *Controller {
	return &Controller{}
}

// Request sets the IF bit for the given source.
func (c *Controller) Request(s Source) {
	c.request |= 1 << s
}

// Pending reports whether any enabled interrupt is requested. This is
// independent of the CPU's IME flag.
func (c *Controller) Pending() bool {
	return c.enable&c.request&0x1F != 0
}

// Next returns the highest-priority enabled and requested source.
// ok is false when nothing is pending.
func (c *Controller) Next() (s Source, ok bool) {
	masked := c.enable & c.request & 0x1F
	if masked == 0 {
		return 0, false
	}
	for i := Source(0); i < numSources; i++ {
		if masked&(1<<i) != 0 {
			return i, true
		}
	}
	return 0, false
}

// Acknowledge clears the request bit for a source being serviced.
func (c *Controller) Acknowledge(s Source) {
	c.request &^= 1 << s
}

// ReadIF returns the IF register; the unused upper 3 bits read as 1.
func (c *Controller) ReadIF() uint8 {
	return c.request | 0xE0
}

func (c *Controller) WriteIF(value uint8) {
	c.request = value & 0x1F
}

func (c *Controller) ReadIE() uint8 {
	return c.enable
}

func (c *Controller) WriteIE(value uint8) {
	c.enable = value
}

// Reset clears all enable and request state.
func (c *Controller) Reset() {
	c.enable = 0
	c.request = 0
}
