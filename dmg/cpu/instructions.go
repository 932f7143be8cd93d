package cpu

import "github.com/mvella/go-dmg/dmg/bit"

// 8-bit arithmetic and logic. All of these leave their flags per the SM83
// rules: Z on zero result, N set only by subtraction, H on nibble
// carry/borrow, C on byte carry/borrow.

func (c *CPU) addToA(value uint8) {
	result := uint16(c.a) + uint16(value)
	c.setFlagTo(halfCarryFlag, c.a&0x0F+value&0x0F > 0x0F)
	c.setFlagTo(carryFlag, result > 0xFF)
	c.resetFlag(subFlag)
	c.a = uint8(result)
	c.setFlagTo(zeroFlag, c.a == 0)
}

func (c *CPU) adcToA(value uint8) {
	carry := c.carryValue()
	result := uint16(c.a) + uint16(value) + uint16(carry)
	c.setFlagTo(halfCarryFlag, uint16(c.a&0x0F)+uint16(value&0x0F)+uint16(carry) > 0x0F)
	c.setFlagTo(carryFlag, result > 0xFF)
	c.resetFlag(subFlag)
	c.a = uint8(result)
	c.setFlagTo(zeroFlag, c.a == 0)
}

func (c *CPU) subFromA(value uint8) {
	c.cpToA(value)
	c.a -= value
}

func (c *CPU) sbcFromA(value uint8) {
	carry := c.carryValue()
	result := int16(c.a) - int16(value) - int16(carry)
	c.setFlagTo(halfCarryFlag, int16(c.a&0x0F)-int16(value&0x0F)-int16(carry) < 0)
	c.setFlagTo(carryFlag, result < 0)
	c.setFlag(subFlag)
	c.a = uint8(result)
	c.setFlagTo(zeroFlag, c.a == 0)
}

func (c *CPU) andA(value uint8) {
	c.a &= value
	c.f = uint8(halfCarryFlag)
	c.setFlagTo(zeroFlag, c.a == 0)
}

func (c *CPU) xorA(value uint8) {
	c.a ^= value
	c.f = 0
	c.setFlagTo(zeroFlag, c.a == 0)
}

func (c *CPU) orA(value uint8) {
	c.a |= value
	c.f = 0
	c.setFlagTo(zeroFlag, c.a == 0)
}

// cpToA compares without storing the result.
func (c *CPU) cpToA(value uint8) {
	c.setFlagTo(halfCarryFlag, c.a&0x0F < value&0x0F)
	c.setFlagTo(carryFlag, c.a < value)
	c.setFlag(subFlag)
	c.setFlagTo(zeroFlag, c.a == value)
}

func (c *CPU) inc(r *uint8) {
	*r++
	c.setFlagTo(zeroFlag, *r == 0)
	c.resetFlag(subFlag)
	c.setFlagTo(halfCarryFlag, *r&0x0F == 0)
}

func (c *CPU) dec(r *uint8) {
	*r--
	c.setFlagTo(zeroFlag, *r == 0)
	c.setFlag(subFlag)
	c.setFlagTo(halfCarryFlag, *r&0x0F == 0x0F)
}

// 16-bit arithmetic.

func (c *CPU) addToHL(value uint16) {
	hl := c.hl()
	result := uint32(hl) + uint32(value)
	c.resetFlag(subFlag)
	c.setFlagTo(halfCarryFlag, hl&0x0FFF+value&0x0FFF > 0x0FFF)
	c.setFlagTo(carryFlag, result > 0xFFFF)
	c.setHL(uint16(result))
}

// addSPOffset computes SP plus a signed byte. H and C come from the
// unsigned low-byte addition, Z and N are always cleared.
func (c *CPU) addSPOffset(offset int8) uint16 {
	unsigned := uint16(uint8(offset))
	c.resetFlag(zeroFlag)
	c.resetFlag(subFlag)
	c.setFlagTo(halfCarryFlag, c.sp&0x0F+unsigned&0x0F > 0x0F)
	c.setFlagTo(carryFlag, c.sp&0xFF+unsigned&0xFF > 0xFF)
	return c.sp + uint16(int16(offset))
}

// Rotates and shifts. These set Z on a zero result; the one-byte A forms
// (RLCA and friends) clear Z at the call site instead.

func (c *CPU) rlc(value uint8) uint8 {
	carry := value >> 7
	result := value<<1 | carry
	c.f = 0
	c.setFlagTo(carryFlag, carry == 1)
	c.setFlagTo(zeroFlag, result == 0)
	return result
}

func (c *CPU) rl(value uint8) uint8 {
	result := value<<1 | c.carryValue()
	c.f = 0
	c.setFlagTo(carryFlag, value>>7 == 1)
	c.setFlagTo(zeroFlag, result == 0)
	return result
}

func (c *CPU) rrc(value uint8) uint8 {
	carry := value & 1
	result := value>>1 | carry<<7
	c.f = 0
	c.setFlagTo(carryFlag, carry == 1)
	c.setFlagTo(zeroFlag, result == 0)
	return result
}

func (c *CPU) rr(value uint8) uint8 {
	result := value>>1 | c.carryValue()<<7
	c.f = 0
	c.setFlagTo(carryFlag, value&1 == 1)
	c.setFlagTo(zeroFlag, result == 0)
	return result
}

func (c *CPU) sla(value uint8) uint8 {
	result := value << 1
	c.f = 0
	c.setFlagTo(carryFlag, value>>7 == 1)
	c.setFlagTo(zeroFlag, result == 0)
	return result
}

func (c *CPU) sra(value uint8) uint8 {
	result := value>>1 | value&0x80
	c.f = 0
	c.setFlagTo(carryFlag, value&1 == 1)
	c.setFlagTo(zeroFlag, result == 0)
	return result
}

func (c *CPU) srl(value uint8) uint8 {
	result := value >> 1
	c.f = 0
	c.setFlagTo(carryFlag, value&1 == 1)
	c.setFlagTo(zeroFlag, result == 0)
	return result
}

func (c *CPU) swap(value uint8) uint8 {
	result := value<<4 | value>>4
	c.f = 0
	c.setFlagTo(zeroFlag, result == 0)
	return result
}

func (c *CPU) bitTest(index, value uint8) {
	c.setFlagTo(zeroFlag, !bit.IsSet(index, value))
	c.resetFlag(subFlag)
	c.setFlag(halfCarryFlag)
}

// daa adjusts A into packed BCD after an addition or subtraction.
func (c *CPU) daa() {
	a := c.a
	adjust := uint8(0)
	carry := c.isSetFlag(carryFlag)

	if c.isSetFlag(halfCarryFlag) || (!c.isSetFlag(subFlag) && a&0x0F > 0x09) {
		adjust = 0x06
	}
	if carry || (!c.isSetFlag(subFlag) && a > 0x99) {
		adjust |= 0x60
		carry = true
	}

	if c.isSetFlag(subFlag) {
		a -= adjust
	} else {
		a += adjust
	}

	c.a = a
	c.setFlagTo(zeroFlag, a == 0)
	c.resetFlag(halfCarryFlag)
	c.setFlagTo(carryFlag, carry)
}

// Stack traffic.

func (c *CPU) pushStack(value uint16) {
	c.sp--
	c.write(c.sp, bit.High(value))
	c.sp--
	c.write(c.sp, bit.Low(value))
}

func (c *CPU) popStack() uint16 {
	low := c.read(c.sp)
	c.sp++
	high := c.read(c.sp)
	c.sp++
	return bit.Combine(high, low)
}

// Control flow. Conditional forms read their operand before deciding, as
// the hardware does, so PC always ends up past the full instruction.

func (c *CPU) jr(condition bool) int {
	offset := int8(c.readImmediate())
	if !condition {
		return 8
	}
	c.pc = uint16(int32(c.pc) + int32(offset))
	return 12
}

func (c *CPU) jp(condition bool) int {
	target := c.readImmediateWord()
	if !condition {
		return 12
	}
	c.pc = target
	return 16
}

func (c *CPU) call(condition bool) int {
	target := c.readImmediateWord()
	if !condition {
		return 12
	}
	c.pushStack(c.pc)
	c.pc = target
	return 24
}

func (c *CPU) retIf(condition bool) int {
	if !condition {
		return 8
	}
	c.pc = c.popStack()
	return 20
}

func (c *CPU) rst(vector uint16) int {
	c.pushStack(c.pc)
	c.pc = vector
	return 16
}

// illegal latches a fault for an opcode with no implementation. PC has
// already moved past the opcode byte when this runs.
func (c *CPU) illegal() int {
	c.fault = &Fault{Opcode: uint8(c.currentOpcode), Addr: c.pc - 1}
	return 4
}
