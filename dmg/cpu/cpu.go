// Package cpu implements the SM83 interpreter.
package cpu

import (
	"fmt"

	"github.com/mvella/go-dmg/dmg/bit"
	"github.com/mvella/go-dmg/dmg/interrupt"
)

// Bus is the CPU's view of the memory system. Tick advances the rest of
// the machine; the CPU calls it once per machine cycle as memory accesses
// happen, so devices observe mid-instruction time.
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
	Tick(cycles int)
}

type flag uint8

const (
	zeroFlag      flag = 0x80
	subFlag       flag = 0x40
	halfCarryFlag flag = 0x20
	carryFlag     flag = 0x10
)

// interruptDispatchCycles is the cost of servicing an interrupt: two idle
// machine cycles, the PC push and the vector jump.
const interruptDispatchCycles = 20

// Fault reports execution of an opcode the SM83 does not implement.
// Once raised, the CPU refuses to step further.
type Fault struct {
	Opcode uint8
	Addr   uint16
}

func (f *Fault) Error() string {
	return fmt.Sprintf("illegal opcode 0x%02X at 0x%04X", f.Opcode, f.Addr)
}

// CPU holds the SM83 register file and interrupt state.
type CPU struct {
	bus Bus
	ic  *interrupt.Controller

	a, f uint8
	b, c uint8
	d, e uint8
	h, l uint8
	sp   uint16
	pc   uint16

	ime         bool
	eiCountdown int
	halted      bool
	stopped     bool
	haltBug     bool

	currentOpcode uint16
	ticked        int
	cycles        uint64
	fault         *Fault
}

func New(bus Bus, ic *interrupt.Controller) *CPU {
	c := &CPU{bus: bus, ic: ic}
	c.Reset()
	return c
}

// Reset restores the post-boot register state.
func (c *CPU) Reset() {
	c.a, c.f = 0x01, 0xB0
	c.b, c.c = 0x00, 0x13
	c.d, c.e = 0x00, 0xD8
	c.h, c.l = 0x01, 0x4D
	c.sp = 0xFFFE
	c.pc = 0x0100
	c.ime = false
	c.eiCountdown = 0
	c.halted = false
	c.stopped = false
	c.haltBug = false
	c.currentOpcode = 0
	c.cycles = 0
	c.fault = nil
}

// Step services pending interrupts or executes one instruction, returning
// the elapsed clock cycles (always a multiple of 4). The bus has already
// been ticked for the full amount when Step returns.
func (c *CPU) Step() (int, error) {
	if c.fault != nil {
		return 0, c.fault
	}
	c.ticked = 0

	// EI takes effect after the instruction that follows it
	if c.eiCountdown > 0 {
		c.eiCountdown--
		if c.eiCountdown == 0 {
			c.ime = true
		}
	}

	if c.ime && c.ic.Pending() {
		return c.dispatchInterrupt(), nil
	}

	if c.halted {
		if !c.ic.Pending() {
			c.bus.Tick(4)
			c.cycles += 4
			return 4, nil
		}
		// pending interrupt with IME=0 resumes execution without service
		c.halted = false
	}

	instruction := Decode(c)
	taken := instruction(c)
	if c.fault != nil {
		return 0, c.fault
	}
	if rem := taken - c.ticked; rem > 0 {
		c.bus.Tick(rem)
	}
	c.cycles += uint64(taken)
	return taken, nil
}

func (c *CPU) dispatchInterrupt() int {
	source, _ := c.ic.Next()
	c.ic.Acknowledge(source)
	c.ime = false
	c.halted = false

	c.pushStack(c.pc)
	c.pc = source.Vector()

	c.bus.Tick(interruptDispatchCycles - c.ticked)
	c.cycles += interruptDispatchCycles
	return interruptDispatchCycles
}

// Cycles returns the total clock cycles elapsed since reset.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// PC returns the current program counter.
func (c *CPU) PC() uint16 {
	return c.pc
}

// Halted reports whether the CPU is waiting in low-power state.
func (c *CPU) Halted() bool {
	return c.halted
}

// tickM forwards one machine cycle to the bus.
func (c *CPU) tickM() {
	c.bus.Tick(4)
	c.ticked += 4
}

// peek reads without consuming bus time; used by Decode for the fetch,
// which is ticked separately.
func (c *CPU) peek(address uint16) byte {
	return c.bus.Read(address)
}

func (c *CPU) read(address uint16) byte {
	value := c.bus.Read(address)
	c.tickM()
	return value
}

func (c *CPU) write(address uint16, value byte) {
	c.bus.Write(address, value)
	c.tickM()
}

// advancePC increments PC unless the halt bug swallows the increment.
func (c *CPU) advancePC() {
	if c.haltBug {
		c.haltBug = false
		return
	}
	c.pc++
}

func (c *CPU) readImmediate() uint8 {
	value := c.read(c.pc)
	c.pc++
	return value
}

func (c *CPU) readImmediateWord() uint16 {
	low := c.readImmediate()
	high := c.readImmediate()
	return bit.Combine(high, low)
}

// Register pair accessors.

func (c *CPU) af() uint16 { return bit.Combine(c.a, c.f) }
func (c *CPU) bc() uint16 { return bit.Combine(c.b, c.c) }
func (c *CPU) de() uint16 { return bit.Combine(c.d, c.e) }
func (c *CPU) hl() uint16 { return bit.Combine(c.h, c.l) }

// setAF keeps the low nibble of F zero; those bits do not exist.
func (c *CPU) setAF(value uint16) {
	c.a = bit.High(value)
	c.f = bit.Low(value) & 0xF0
}

func (c *CPU) setBC(value uint16) { c.b, c.c = bit.High(value), bit.Low(value) }
func (c *CPU) setDE(value uint16) { c.d, c.e = bit.High(value), bit.Low(value) }
func (c *CPU) setHL(value uint16) { c.h, c.l = bit.High(value), bit.Low(value) }

// Flag helpers.

func (c *CPU) setFlag(f flag)   { c.f |= uint8(f) }
func (c *CPU) resetFlag(f flag) { c.f &^= uint8(f) }

func (c *CPU) isSetFlag(f flag) bool { return c.f&uint8(f) != 0 }

func (c *CPU) setFlagTo(f flag, condition bool) {
	if condition {
		c.setFlag(f)
	} else {
		c.resetFlag(f)
	}
}

func (c *CPU) carryValue() uint8 {
	if c.isSetFlag(carryFlag) {
		return 1
	}
	return 0
}
