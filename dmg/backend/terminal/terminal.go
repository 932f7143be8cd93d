// Package terminal renders the emulated screen into a terminal using
// tcell, two pixels per character cell via half blocks.
package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mvella/go-dmg/dmg"
	"github.com/mvella/go-dmg/dmg/memory"
	"github.com/mvella/go-dmg/dmg/video"
)

const (
	width  = video.FramebufferWidth
	height = video.FramebufferHeight

	frameTime = time.Second / 60

	// Terminals report key repeats, not releases. A key counts as held
	// while repeats keep arriving and is released once they stop.
	keyTimeout = 100 * time.Millisecond

	minTermWidth  = width
	minTermHeight = height/2 + 2
)

// Backend renders frames with tcell and feeds keyboard input back into
// the machine.
type Backend struct {
	screen  tcell.Screen
	running bool

	keyStates  map[memory.JoypadKey]time.Time
	activeKeys map[memory.JoypadKey]bool
}

func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %v", err)
	}

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	return &Backend{
		screen:     screen,
		running:    true,
		keyStates:  make(map[memory.JoypadKey]time.Time),
		activeKeys: make(map[memory.JoypadKey]bool),
	}, nil
}

// Run paces the machine at 60 frames per second until the user quits or
// the machine faults.
func (b *Backend) Run(machine *dmg.DMG) error {
	defer b.cleanup()

	go b.handleSignals()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for b.running {
		<-ticker.C
		now := time.Now()

		for b.screen.HasPendingEvent() {
			switch ev := b.screen.PollEvent().(type) {
			case *tcell.EventKey:
				b.processKeyEvent(ev, now)
			case *tcell.EventResize:
				b.screen.Sync()
			}
		}

		b.applyKeys(machine, now)

		if err := machine.RunUntilFrame(); err != nil {
			return err
		}

		b.render(machine)
		b.screen.Show()
	}

	return nil
}

func (b *Backend) cleanup() {
	if b.screen != nil {
		slog.Info("cleaning up terminal backend")
		b.screen.Fini()
	}
}

func (b *Backend) handleSignals() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	<-signals
	b.running = false
}

func (b *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		b.running = false
	case tcell.KeyUp:
		b.pressDpad(memory.JoypadUp, now)
	case tcell.KeyDown:
		b.pressDpad(memory.JoypadDown, now)
	case tcell.KeyLeft:
		b.pressDpad(memory.JoypadLeft, now)
	case tcell.KeyRight:
		b.pressDpad(memory.JoypadRight, now)
	case tcell.KeyEnter:
		b.keyStates[memory.JoypadStart] = now
	case tcell.KeyRune:
		b.processRuneKey(ev.Rune(), now)
	}
}

func (b *Backend) processRuneKey(r rune, now time.Time) {
	switch r {
	case 'q':
		b.running = false
	case 'z':
		b.keyStates[memory.JoypadA] = now
	case 'x':
		b.keyStates[memory.JoypadB] = now
	case ' ':
		b.keyStates[memory.JoypadSelect] = now
	case 'w':
		b.pressDpad(memory.JoypadUp, now)
	case 's':
		b.pressDpad(memory.JoypadDown, now)
	case 'a':
		b.pressDpad(memory.JoypadLeft, now)
	case 'd':
		b.pressDpad(memory.JoypadRight, now)
	}
}

// pressDpad records a direction press, dropping the other three so
// directions stay exclusive.
func (b *Backend) pressDpad(key memory.JoypadKey, now time.Time) {
	for dir := memory.JoypadRight; dir <= memory.JoypadDown; dir++ {
		delete(b.keyStates, dir)
	}
	b.keyStates[key] = now
}

// applyKeys turns the tracked key timestamps into press and release
// transitions on the machine.
func (b *Backend) applyKeys(machine *dmg.DMG, now time.Time) {
	currentlyActive := make(map[memory.JoypadKey]bool)

	for key, lastPressed := range b.keyStates {
		if now.Sub(lastPressed) < keyTimeout {
			currentlyActive[key] = true
			if !b.activeKeys[key] {
				machine.SetButton(key, true)
			}
		} else {
			delete(b.keyStates, key)
		}
	}

	for key := range b.activeKeys {
		if !currentlyActive[key] {
			machine.SetButton(key, false)
		}
	}

	b.activeKeys = currentlyActive
}

func (b *Backend) render(machine *dmg.DMG) {
	termWidth, termHeight := b.screen.Size()
	if termWidth < minTermWidth || termHeight < minTermHeight {
		b.screen.Clear()
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		for i, ch := range msg {
			b.screen.SetContent(i, termHeight/2, ch, nil, style)
		}
		return
	}

	b.screen.Clear()

	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	title := fmt.Sprintf(" %s ", machine.Title())
	for i, ch := range title {
		b.screen.SetContent(i, 0, ch, nil, titleStyle)
	}

	b.drawFrame(machine.Framebuffer())

	help := " Arrows/WASD=d-pad Z=A X=B Enter=Start Space=Select Q/ESC=quit "
	helpStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range help {
		if i < termWidth {
			b.screen.SetContent(i, termHeight-1, ch, nil, helpStyle)
		}
	}
}

// drawFrame paints two pixel rows per terminal row using the upper half
// block, foreground on top and background below.
func (b *Backend) drawFrame(frame *video.FrameBuffer) {
	pixels := frame.ToSlice()
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top := pixelColor(pixels[y*width+x])
			bottom := pixelColor(pixels[(y+1)*width+x])
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			b.screen.SetContent(x, y/2+1, '▀', nil, style)
		}
	}
}

func pixelColor(pixel uint32) tcell.Color {
	r := int32((pixel >> 16) & 0xFF)
	g := int32((pixel >> 8) & 0xFF)
	bl := int32(pixel & 0xFF)
	return tcell.NewRGBColor(r, g, bl)
}
