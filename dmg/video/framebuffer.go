package video

// GBColor is a 32-bit ARGB color for one of the four DMG shades.
type GBColor uint32

const (
	WhiteColor     GBColor = 0xFFFFFFFF
	LightGreyColor GBColor = 0xFF989898
	DarkGreyColor  GBColor = 0xFF4C4C4C
	BlackColor     GBColor = 0xFF000000
)

const (
	FramebufferWidth  = 160
	FramebufferHeight = 144
)

// shadeToColor maps a 2-bit palette shade to its display color.
var shadeToColor = [4]GBColor{WhiteColor, LightGreyColor, DarkGreyColor, BlackColor}

// FrameBuffer holds one rendered frame as packed ARGB pixels.
type FrameBuffer struct {
	width  int
	height int
	buffer []uint32
}

func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		buffer: make([]uint32, width*height),
	}
}

func (fb *FrameBuffer) GetPixel(x, y int) uint32 {
	return fb.buffer[y*fb.width+x]
}

func (fb *FrameBuffer) SetPixel(x, y int, color GBColor) {
	fb.buffer[y*fb.width+x] = uint32(color)
}

// ToSlice returns the underlying pixel slice in row-major order.
func (fb *FrameBuffer) ToSlice() []uint32 {
	return fb.buffer
}

// Clear fills the whole buffer with a single color.
func (fb *FrameBuffer) Clear(color GBColor) {
	for i := range fb.buffer {
		fb.buffer[i] = uint32(color)
	}
}
