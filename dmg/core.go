// Package dmg wires the CPU, bus, PPU and timer into a complete machine
// and exposes the surface front ends drive: load a cartridge, step, run
// frames, feed input, move save RAM in and out.
package dmg

import (
	"errors"
	"log/slog"

	"github.com/mvella/go-dmg/dmg/cart"
	"github.com/mvella/go-dmg/dmg/cpu"
	"github.com/mvella/go-dmg/dmg/interrupt"
	"github.com/mvella/go-dmg/dmg/memory"
	"github.com/mvella/go-dmg/dmg/video"
)

// DMG is one emulated machine. Instances are fully independent and safe
// to run side by side; none of the state is shared or global.
type DMG struct {
	cpu *cpu.CPU
	bus *memory.Bus
	ic  *interrupt.Controller

	fault        error
	frames       uint64
	instructions uint64
}

// New builds a powered-on machine with no cartridge attached.
func New() *DMG {
	ic := interrupt.NewController()
	bus := memory.New(ic)
	return &DMG{
		cpu: cpu.New(bus, ic),
		bus: bus,
		ic:  ic,
	}
}

// NewWithROM builds a machine with the given ROM image loaded.
func NewWithROM(rom []byte) (*DMG, error) {
	d := New()
	if err := d.LoadCartridge(rom); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadCartridge validates and attaches a ROM image, then resets the
// machine. A rejected image leaves the running state untouched.
func (d *DMG) LoadCartridge(rom []byte) error {
	c, err := cart.New(rom)
	if err != nil {
		return err
	}

	d.bus.AttachCartridge(c)
	d.Reset()
	slog.Info("cartridge loaded",
		"title", c.Title,
		"type", c.Type(),
		"rom_size", c.ROMSize(),
		"ram_size", c.RAMSize(),
		"battery", c.HasBattery())
	return nil
}

// Reset returns the machine to power-on state. The cartridge stays
// attached with its RAM contents intact.
func (d *DMG) Reset() {
	d.bus.Reset()
	d.cpu.Reset()
	d.fault = nil
	d.frames = 0
	d.instructions = 0
}

// StepInstruction executes one instruction (or services one interrupt)
// and returns its cycle cost. A CPU fault is latched: every later call
// returns the same error until Reset.
func (d *DMG) StepInstruction() (int, error) {
	if d.fault != nil {
		return 0, d.fault
	}

	cycles, err := d.cpu.Step()
	if err != nil {
		d.fault = err
		var f *cpu.Fault
		if errors.As(err, &f) {
			slog.Error("cpu fault", "opcode", cpu.OpcodeName(uint16(f.Opcode)), "addr", f.Addr)
		}
		return 0, err
	}

	d.instructions++
	return cycles, nil
}

// RunUntilFrame steps until the PPU completes a frame. The framebuffer is
// stable until the next call.
func (d *DMG) RunUntilFrame() error {
	for {
		if _, err := d.StepInstruction(); err != nil {
			return err
		}
		if d.bus.PPU().ConsumeFrame() {
			d.frames++
			return nil
		}
	}
}

// Framebuffer returns the most recently completed frame.
func (d *DMG) Framebuffer() *video.FrameBuffer {
	return d.bus.PPU().Framebuffer()
}

// SetButton updates one button's pressed state.
func (d *DMG) SetButton(key memory.JoypadKey, pressed bool) {
	d.bus.SetKey(key, pressed)
}

// SetJoypadState sets all eight buttons at once; bit i of mask is the
// pressed state of button i in JoypadKey order.
func (d *DMG) SetJoypadState(mask uint8) {
	for key := memory.JoypadA; key <= memory.JoypadDown; key++ {
		d.bus.SetKey(key, mask&(1<<key) != 0)
	}
}

// CartridgeRAM snapshots external RAM for battery saves. Nil without a
// cartridge or when the cartridge has none.
func (d *DMG) CartridgeRAM() []byte {
	c := d.bus.Cartridge()
	if c == nil {
		return nil
	}
	return c.RAM()
}

// LoadCartridgeRAM restores a CartridgeRAM snapshot.
func (d *DMG) LoadCartridgeRAM(data []byte) error {
	c := d.bus.Cartridge()
	if c == nil {
		return errors.New("no cartridge loaded")
	}
	return c.LoadRAM(data)
}

// HasBattery reports whether the loaded cartridge persists its RAM.
func (d *DMG) HasBattery() bool {
	if c := d.bus.Cartridge(); c != nil {
		return c.HasBattery()
	}
	return false
}

// Title returns the loaded cartridge title, empty without one.
func (d *DMG) Title() string {
	if c := d.bus.Cartridge(); c != nil {
		return c.Title
	}
	return ""
}

// FrameCount returns the number of frames completed since reset.
func (d *DMG) FrameCount() uint64 {
	return d.frames
}

// InstructionCount returns the number of instructions retired since reset.
func (d *DMG) InstructionCount() uint64 {
	return d.instructions
}

// Cycles returns the clock cycles elapsed since reset.
func (d *DMG) Cycles() uint64 {
	return d.cpu.Cycles()
}
