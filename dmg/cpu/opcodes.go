package cpu

import "github.com/mvella/go-dmg/dmg/bit"

// Opcode executes one decoded instruction and returns its cycle cost.
type Opcode func(c *CPU) int

// 0x00 NOP
func opcode0x00(_ *CPU) int { return 4 }

// 0x01 LD BC,d16
func opcode0x01(c *CPU) int { c.setBC(c.readImmediateWord()); return 12 }

// 0x02 LD (BC),A
func opcode0x02(c *CPU) int { c.write(c.bc(), c.a); return 8 }

// 0x03 INC BC
func opcode0x03(c *CPU) int { c.setBC(c.bc() + 1); return 8 }

// 0x04 INC B
func opcode0x04(c *CPU) int { c.inc(&c.b); return 4 }

// 0x05 DEC B
func opcode0x05(c *CPU) int { c.dec(&c.b); return 4 }

// 0x06 LD B,d8
func opcode0x06(c *CPU) int { c.b = c.readImmediate(); return 8 }

// 0x07 RLCA
func opcode0x07(c *CPU) int { c.a = c.rlc(c.a); c.resetFlag(zeroFlag); return 4 }

// 0x08 LD (a16),SP
func opcode0x08(c *CPU) int {
	target := c.readImmediateWord()
	c.write(target, bit.Low(c.sp))
	c.write(target+1, bit.High(c.sp))
	return 20
}

// 0x09 ADD HL,BC
func opcode0x09(c *CPU) int { c.addToHL(c.bc()); return 8 }

// 0x0A LD A,(BC)
func opcode0x0A(c *CPU) int { c.a = c.read(c.bc()); return 8 }

// 0x0B DEC BC
func opcode0x0B(c *CPU) int { c.setBC(c.bc() - 1); return 8 }

// 0x0C INC C
func opcode0x0C(c *CPU) int { c.inc(&c.c); return 4 }

// 0x0D DEC C
func opcode0x0D(c *CPU) int { c.dec(&c.c); return 4 }

// 0x0E LD C,d8
func opcode0x0E(c *CPU) int { c.c = c.readImmediate(); return 8 }

// 0x0F RRCA
func opcode0x0F(c *CPU) int { c.a = c.rrc(c.a); c.resetFlag(zeroFlag); return 4 }

// 0x10 STOP. The operand byte is skipped; low-power mode is latched but
// otherwise inert.
func opcode0x10(c *CPU) int { c.pc++; c.stopped = true; return 4 }

// 0x11 LD DE,d16
func opcode0x11(c *CPU) int { c.setDE(c.readImmediateWord()); return 12 }

// 0x12 LD (DE),A
func opcode0x12(c *CPU) int { c.write(c.de(), c.a); return 8 }

// 0x13 INC DE
func opcode0x13(c *CPU) int { c.setDE(c.de() + 1); return 8 }

// 0x14 INC D
func opcode0x14(c *CPU) int { c.inc(&c.d); return 4 }

// 0x15 DEC D
func opcode0x15(c *CPU) int { c.dec(&c.d); return 4 }

// 0x16 LD D,d8
func opcode0x16(c *CPU) int { c.d = c.readImmediate(); return 8 }

// 0x17 RLA
func opcode0x17(c *CPU) int { c.a = c.rl(c.a); c.resetFlag(zeroFlag); return 4 }

// 0x18 JR r8
func opcode0x18(c *CPU) int { return c.jr(true) }

// 0x19 ADD HL,DE
func opcode0x19(c *CPU) int { c.addToHL(c.de()); return 8 }

// 0x1A LD A,(DE)
func opcode0x1A(c *CPU) int { c.a = c.read(c.de()); return 8 }

// 0x1B DEC DE
func opcode0x1B(c *CPU) int { c.setDE(c.de() - 1); return 8 }

// 0x1C INC E
func opcode0x1C(c *CPU) int { c.inc(&c.e); return 4 }

// 0x1D DEC E
func opcode0x1D(c *CPU) int { c.dec(&c.e); return 4 }

// 0x1E LD E,d8
func opcode0x1E(c *CPU) int { c.e = c.readImmediate(); return 8 }

// 0x1F RRA
func opcode0x1F(c *CPU) int { c.a = c.rr(c.a); c.resetFlag(zeroFlag); return 4 }

// 0x20 JR NZ,r8
func opcode0x20(c *CPU) int { return c.jr(!c.isSetFlag(zeroFlag)) }

// 0x21 LD HL,d16
func opcode0x21(c *CPU) int { c.setHL(c.readImmediateWord()); return 12 }

// 0x22 LD (HL+),A
func opcode0x22(c *CPU) int { c.write(c.hl(), c.a); c.setHL(c.hl() + 1); return 8 }

// 0x23 INC HL
func opcode0x23(c *CPU) int { c.setHL(c.hl() + 1); return 8 }

// 0x24 INC H
func opcode0x24(c *CPU) int { c.inc(&c.h); return 4 }

// 0x25 DEC H
func opcode0x25(c *CPU) int { c.dec(&c.h); return 4 }

// 0x26 LD H,d8
func opcode0x26(c *CPU) int { c.h = c.readImmediate(); return 8 }

// 0x27 DAA
func opcode0x27(c *CPU) int { c.daa(); return 4 }

// 0x28 JR Z,r8
func opcode0x28(c *CPU) int { return c.jr(c.isSetFlag(zeroFlag)) }

// 0x29 ADD HL,HL
func opcode0x29(c *CPU) int { c.addToHL(c.hl()); return 8 }

// 0x2A LD A,(HL+)
func opcode0x2A(c *CPU) int { c.a = c.read(c.hl()); c.setHL(c.hl() + 1); return 8 }

// 0x2B DEC HL
func opcode0x2B(c *CPU) int { c.setHL(c.hl() - 1); return 8 }

// 0x2C INC L
func opcode0x2C(c *CPU) int { c.inc(&c.l); return 4 }

// 0x2D DEC L
func opcode0x2D(c *CPU) int { c.dec(&c.l); return 4 }

// 0x2E LD L,d8
func opcode0x2E(c *CPU) int { c.l = c.readImmediate(); return 8 }

// 0x2F CPL
func opcode0x2F(c *CPU) int {
	c.a = ^c.a
	c.setFlag(subFlag)
	c.setFlag(halfCarryFlag)
	return 4
}

// 0x30 JR NC,r8
func opcode0x30(c *CPU) int { return c.jr(!c.isSetFlag(carryFlag)) }

// 0x31 LD SP,d16
func opcode0x31(c *CPU) int { c.sp = c.readImmediateWord(); return 12 }

// 0x32 LD (HL-),A
func opcode0x32(c *CPU) int { c.write(c.hl(), c.a); c.setHL(c.hl() - 1); return 8 }

// 0x33 INC SP
func opcode0x33(c *CPU) int { c.sp++; return 8 }

// 0x34 INC (HL)
func opcode0x34(c *CPU) int {
	value := c.read(c.hl())
	c.inc(&value)
	c.write(c.hl(), value)
	return 12
}

// 0x35 DEC (HL)
func opcode0x35(c *CPU) int {
	value := c.read(c.hl())
	c.dec(&value)
	c.write(c.hl(), value)
	return 12
}

// 0x36 LD (HL),d8
func opcode0x36(c *CPU) int { c.write(c.hl(), c.readImmediate()); return 12 }

// 0x37 SCF
func opcode0x37(c *CPU) int {
	c.setFlag(carryFlag)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	return 4
}

// 0x38 JR C,r8
func opcode0x38(c *CPU) int { return c.jr(c.isSetFlag(carryFlag)) }

// 0x39 ADD HL,SP
func opcode0x39(c *CPU) int { c.addToHL(c.sp); return 8 }

// 0x3A LD A,(HL-)
func opcode0x3A(c *CPU) int { c.a = c.read(c.hl()); c.setHL(c.hl() - 1); return 8 }

// 0x3B DEC SP
func opcode0x3B(c *CPU) int { c.sp--; return 8 }

// 0x3C INC A
func opcode0x3C(c *CPU) int { c.inc(&c.a); return 4 }

// 0x3D DEC A
func opcode0x3D(c *CPU) int { c.dec(&c.a); return 4 }

// 0x3E LD A,d8
func opcode0x3E(c *CPU) int { c.a = c.readImmediate(); return 8 }

// 0x3F CCF
func opcode0x3F(c *CPU) int {
	c.setFlagTo(carryFlag, !c.isSetFlag(carryFlag))
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	return 4
}

// 0x40..0x7F LD r,r' block (0x76 is HALT).

func opcode0x40(c *CPU) int { return 4 } // LD B,B
func opcode0x41(c *CPU) int { c.b = c.c; return 4 }
func opcode0x42(c *CPU) int { c.b = c.d; return 4 }
func opcode0x43(c *CPU) int { c.b = c.e; return 4 }
func opcode0x44(c *CPU) int { c.b = c.h; return 4 }
func opcode0x45(c *CPU) int { c.b = c.l; return 4 }
func opcode0x46(c *CPU) int { c.b = c.read(c.hl()); return 8 }
func opcode0x47(c *CPU) int { c.b = c.a; return 4 }

func opcode0x48(c *CPU) int { c.c = c.b; return 4 }
func opcode0x49(c *CPU) int { return 4 } // LD C,C
func opcode0x4A(c *CPU) int { c.c = c.d; return 4 }
func opcode0x4B(c *CPU) int { c.c = c.e; return 4 }
func opcode0x4C(c *CPU) int { c.c = c.h; return 4 }
func opcode0x4D(c *CPU) int { c.c = c.l; return 4 }
func opcode0x4E(c *CPU) int { c.c = c.read(c.hl()); return 8 }
func opcode0x4F(c *CPU) int { c.c = c.a; return 4 }

func opcode0x50(c *CPU) int { c.d = c.b; return 4 }
func opcode0x51(c *CPU) int { c.d = c.c; return 4 }
func opcode0x52(c *CPU) int { return 4 } // LD D,D
func opcode0x53(c *CPU) int { c.d = c.e; return 4 }
func opcode0x54(c *CPU) int { c.d = c.h; return 4 }
func opcode0x55(c *CPU) int { c.d = c.l; return 4 }
func opcode0x56(c *CPU) int { c.d = c.read(c.hl()); return 8 }
func opcode0x57(c *CPU) int { c.d = c.a; return 4 }

func opcode0x58(c *CPU) int { c.e = c.b; return 4 }
func opcode0x59(c *CPU) int { c.e = c.c; return 4 }
func opcode0x5A(c *CPU) int { c.e = c.d; return 4 }
func opcode0x5B(c *CPU) int { return 4 } // LD E,E
func opcode0x5C(c *CPU) int { c.e = c.h; return 4 }
func opcode0x5D(c *CPU) int { c.e = c.l; return 4 }
func opcode0x5E(c *CPU) int { c.e = c.read(c.hl()); return 8 }
func opcode0x5F(c *CPU) int { c.e = c.a; return 4 }

func opcode0x60(c *CPU) int { c.h = c.b; return 4 }
func opcode0x61(c *CPU) int { c.h = c.c; return 4 }
func opcode0x62(c *CPU) int { c.h = c.d; return 4 }
func opcode0x63(c *CPU) int { c.h = c.e; return 4 }
func opcode0x64(c *CPU) int { return 4 } // LD H,H
func opcode0x65(c *CPU) int { c.h = c.l; return 4 }
func opcode0x66(c *CPU) int { c.h = c.read(c.hl()); return 8 }
func opcode0x67(c *CPU) int { c.h = c.a; return 4 }

func opcode0x68(c *CPU) int { c.l = c.b; return 4 }
func opcode0x69(c *CPU) int { c.l = c.c; return 4 }
func opcode0x6A(c *CPU) int { c.l = c.d; return 4 }
func opcode0x6B(c *CPU) int { c.l = c.e; return 4 }
func opcode0x6C(c *CPU) int { c.l = c.h; return 4 }
func opcode0x6D(c *CPU) int { return 4 } // LD L,L
func opcode0x6E(c *CPU) int { c.l = c.read(c.hl()); return 8 }
func opcode0x6F(c *CPU) int { c.l = c.a; return 4 }

func opcode0x70(c *CPU) int { c.write(c.hl(), c.b); return 8 }
func opcode0x71(c *CPU) int { c.write(c.hl(), c.c); return 8 }
func opcode0x72(c *CPU) int { c.write(c.hl(), c.d); return 8 }
func opcode0x73(c *CPU) int { c.write(c.hl(), c.e); return 8 }
func opcode0x74(c *CPU) int { c.write(c.hl(), c.h); return 8 }
func opcode0x75(c *CPU) int { c.write(c.hl(), c.l); return 8 }

// 0x76 HALT. With IME=0 and an interrupt already pending the CPU does not
// halt; instead the next opcode fetch fails to advance PC (the halt bug).
func opcode0x76(c *CPU) int {
	if !c.ime && c.ic.Pending() {
		c.haltBug = true
	} else {
		c.halted = true
	}
	return 4
}

func opcode0x77(c *CPU) int { c.write(c.hl(), c.a); return 8 }

func opcode0x78(c *CPU) int { c.a = c.b; return 4 }
func opcode0x79(c *CPU) int { c.a = c.c; return 4 }
func opcode0x7A(c *CPU) int { c.a = c.d; return 4 }
func opcode0x7B(c *CPU) int { c.a = c.e; return 4 }
func opcode0x7C(c *CPU) int { c.a = c.h; return 4 }
func opcode0x7D(c *CPU) int { c.a = c.l; return 4 }
func opcode0x7E(c *CPU) int { c.a = c.read(c.hl()); return 8 }
func opcode0x7F(c *CPU) int { return 4 } // LD A,A

// 0x80..0xBF arithmetic/logic block.

func opcode0x80(c *CPU) int { c.addToA(c.b); return 4 }
func opcode0x81(c *CPU) int { c.addToA(c.c); return 4 }
func opcode0x82(c *CPU) int { c.addToA(c.d); return 4 }
func opcode0x83(c *CPU) int { c.addToA(c.e); return 4 }
func opcode0x84(c *CPU) int { c.addToA(c.h); return 4 }
func opcode0x85(c *CPU) int { c.addToA(c.l); return 4 }
func opcode0x86(c *CPU) int { c.addToA(c.read(c.hl())); return 8 }
func opcode0x87(c *CPU) int { c.addToA(c.a); return 4 }

func opcode0x88(c *CPU) int { c.adcToA(c.b); return 4 }
func opcode0x89(c *CPU) int { c.adcToA(c.c); return 4 }
func opcode0x8A(c *CPU) int { c.adcToA(c.d); return 4 }
func opcode0x8B(c *CPU) int { c.adcToA(c.e); return 4 }
func opcode0x8C(c *CPU) int { c.adcToA(c.h); return 4 }
func opcode0x8D(c *CPU) int { c.adcToA(c.l); return 4 }
func opcode0x8E(c *CPU) int { c.adcToA(c.read(c.hl())); return 8 }
func opcode0x8F(c *CPU) int { c.adcToA(c.a); return 4 }

func opcode0x90(c *CPU) int { c.subFromA(c.b); return 4 }
func opcode0x91(c *CPU) int { c.subFromA(c.c); return 4 }
func opcode0x92(c *CPU) int { c.subFromA(c.d); return 4 }
func opcode0x93(c *CPU) int { c.subFromA(c.e); return 4 }
func opcode0x94(c *CPU) int { c.subFromA(c.h); return 4 }
func opcode0x95(c *CPU) int { c.subFromA(c.l); return 4 }
func opcode0x96(c *CPU) int { c.subFromA(c.read(c.hl())); return 8 }
func opcode0x97(c *CPU) int { c.subFromA(c.a); return 4 }

func opcode0x98(c *CPU) int { c.sbcFromA(c.b); return 4 }
func opcode0x99(c *CPU) int { c.sbcFromA(c.c); return 4 }
func opcode0x9A(c *CPU) int { c.sbcFromA(c.d); return 4 }
func opcode0x9B(c *CPU) int { c.sbcFromA(c.e); return 4 }
func opcode0x9C(c *CPU) int { c.sbcFromA(c.h); return 4 }
func opcode0x9D(c *CPU) int { c.sbcFromA(c.l); return 4 }
func opcode0x9E(c *CPU) int { c.sbcFromA(c.read(c.hl())); return 8 }
func opcode0x9F(c *CPU) int { c.sbcFromA(c.a); return 4 }

func opcode0xA0(c *CPU) int { c.andA(c.b); return 4 }
func opcode0xA1(c *CPU) int { c.andA(c.c); return 4 }
func opcode0xA2(c *CPU) int { c.andA(c.d); return 4 }
func opcode0xA3(c *CPU) int { c.andA(c.e); return 4 }
func opcode0xA4(c *CPU) int { c.andA(c.h); return 4 }
func opcode0xA5(c *CPU) int { c.andA(c.l); return 4 }
func opcode0xA6(c *CPU) int { c.andA(c.read(c.hl())); return 8 }
func opcode0xA7(c *CPU) int { c.andA(c.a); return 4 }

func opcode0xA8(c *CPU) int { c.xorA(c.b); return 4 }
func opcode0xA9(c *CPU) int { c.xorA(c.c); return 4 }
func opcode0xAA(c *CPU) int { c.xorA(c.d); return 4 }
func opcode0xAB(c *CPU) int { c.xorA(c.e); return 4 }
func opcode0xAC(c *CPU) int { c.xorA(c.h); return 4 }
func opcode0xAD(c *CPU) int { c.xorA(c.l); return 4 }
func opcode0xAE(c *CPU) int { c.xorA(c.read(c.hl())); return 8 }
func opcode0xAF(c *CPU) int { c.xorA(c.a); return 4 }

func opcode0xB0(c *CPU) int { c.orA(c.b); return 4 }
func opcode0xB1(c *CPU) int { c.orA(c.c); return 4 }
func opcode0xB2(c *CPU) int { c.orA(c.d); return 4 }
func opcode0xB3(c *CPU) int { c.orA(c.e); return 4 }
func opcode0xB4(c *CPU) int { c.orA(c.h); return 4 }
func opcode0xB5(c *CPU) int { c.orA(c.l); return 4 }
func opcode0xB6(c *CPU) int { c.orA(c.read(c.hl())); return 8 }
func opcode0xB7(c *CPU) int { c.orA(c.a); return 4 }

func opcode0xB8(c *CPU) int { c.cpToA(c.b); return 4 }
func opcode0xB9(c *CPU) int { c.cpToA(c.c); return 4 }
func opcode0xBA(c *CPU) int { c.cpToA(c.d); return 4 }
func opcode0xBB(c *CPU) int { c.cpToA(c.e); return 4 }
func opcode0xBC(c *CPU) int { c.cpToA(c.h); return 4 }
func opcode0xBD(c *CPU) int { c.cpToA(c.l); return 4 }
func opcode0xBE(c *CPU) int { c.cpToA(c.read(c.hl())); return 8 }
func opcode0xBF(c *CPU) int { c.cpToA(c.a); return 4 }

// 0xC0 RET NZ
func opcode0xC0(c *CPU) int { return c.retIf(!c.isSetFlag(zeroFlag)) }

// 0xC1 POP BC
func opcode0xC1(c *CPU) int { c.setBC(c.popStack()); return 12 }

// 0xC2 JP NZ,a16
func opcode0xC2(c *CPU) int { return c.jp(!c.isSetFlag(zeroFlag)) }

// 0xC3 JP a16
func opcode0xC3(c *CPU) int { return c.jp(true) }

// 0xC4 CALL NZ,a16
func opcode0xC4(c *CPU) int { return c.call(!c.isSetFlag(zeroFlag)) }

// 0xC5 PUSH BC
func opcode0xC5(c *CPU) int { c.pushStack(c.bc()); return 16 }

// 0xC6 ADD A,d8
func opcode0xC6(c *CPU) int { c.addToA(c.readImmediate()); return 8 }

// 0xC7 RST 00H
func opcode0xC7(c *CPU) int { return c.rst(0x0000) }

// 0xC8 RET Z
func opcode0xC8(c *CPU) int { return c.retIf(c.isSetFlag(zeroFlag)) }

// 0xC9 RET
func opcode0xC9(c *CPU) int { c.pc = c.popStack(); return 16 }

// 0xCA JP Z,a16
func opcode0xCA(c *CPU) int { return c.jp(c.isSetFlag(zeroFlag)) }

// 0xCB is the prefix byte; Decode resolves it against the second table.
func opcode0xCB(_ *CPU) int { panic("cpu: CB prefix reached the base table") }

// 0xCC CALL Z,a16
func opcode0xCC(c *CPU) int { return c.call(c.isSetFlag(zeroFlag)) }

// 0xCD CALL a16
func opcode0xCD(c *CPU) int { return c.call(true) }

// 0xCE ADC A,d8
func opcode0xCE(c *CPU) int { c.adcToA(c.readImmediate()); return 8 }

// 0xCF RST 08H
func opcode0xCF(c *CPU) int { return c.rst(0x0008) }

// 0xD0 RET NC
func opcode0xD0(c *CPU) int { return c.retIf(!c.isSetFlag(carryFlag)) }

// 0xD1 POP DE
func opcode0xD1(c *CPU) int { c.setDE(c.popStack()); return 12 }

// 0xD2 JP NC,a16
func opcode0xD2(c *CPU) int { return c.jp(!c.isSetFlag(carryFlag)) }

// 0xD3 unused
func opcode0xD3(c *CPU) int { return c.illegal() }

// 0xD4 CALL NC,a16
func opcode0xD4(c *CPU) int { return c.call(!c.isSetFlag(carryFlag)) }

// 0xD5 PUSH DE
func opcode0xD5(c *CPU) int { c.pushStack(c.de()); return 16 }

// 0xD6 SUB d8
func opcode0xD6(c *CPU) int { c.subFromA(c.readImmediate()); return 8 }

// 0xD7 RST 10H
func opcode0xD7(c *CPU) int { return c.rst(0x0010) }

// 0xD8 RET C
func opcode0xD8(c *CPU) int { return c.retIf(c.isSetFlag(carryFlag)) }

// 0xD9 RETI. Unlike EI the enable is immediate.
func opcode0xD9(c *CPU) int {
	c.pc = c.popStack()
	c.ime = true
	return 16
}

// 0xDA JP C,a16
func opcode0xDA(c *CPU) int { return c.jp(c.isSetFlag(carryFlag)) }

// 0xDB unused
func opcode0xDB(c *CPU) int { return c.illegal() }

// 0xDC CALL C,a16
func opcode0xDC(c *CPU) int { return c.call(c.isSetFlag(carryFlag)) }

// 0xDD unused
func opcode0xDD(c *CPU) int { return c.illegal() }

// 0xDE SBC A,d8
func opcode0xDE(c *CPU) int { c.sbcFromA(c.readImmediate()); return 8 }

// 0xDF RST 18H
func opcode0xDF(c *CPU) int { return c.rst(0x0018) }

// 0xE0 LDH (a8),A
func opcode0xE0(c *CPU) int {
	c.write(0xFF00+uint16(c.readImmediate()), c.a)
	return 12
}

// 0xE1 POP HL
func opcode0xE1(c *CPU) int { c.setHL(c.popStack()); return 12 }

// 0xE2 LD (C),A
func opcode0xE2(c *CPU) int { c.write(0xFF00+uint16(c.c), c.a); return 8 }

// 0xE3, 0xE4 unused
func opcode0xE3(c *CPU) int { return c.illegal() }
func opcode0xE4(c *CPU) int { return c.illegal() }

// 0xE5 PUSH HL
func opcode0xE5(c *CPU) int { c.pushStack(c.hl()); return 16 }

// 0xE6 AND d8
func opcode0xE6(c *CPU) int { c.andA(c.readImmediate()); return 8 }

// 0xE7 RST 20H
func opcode0xE7(c *CPU) int { return c.rst(0x0020) }

// 0xE8 ADD SP,r8
func opcode0xE8(c *CPU) int {
	c.sp = c.addSPOffset(int8(c.readImmediate()))
	return 16
}

// 0xE9 JP HL
func opcode0xE9(c *CPU) int { c.pc = c.hl(); return 4 }

// 0xEA LD (a16),A
func opcode0xEA(c *CPU) int { c.write(c.readImmediateWord(), c.a); return 16 }

// 0xEB, 0xEC, 0xED unused
func opcode0xEB(c *CPU) int { return c.illegal() }
func opcode0xEC(c *CPU) int { return c.illegal() }
func opcode0xED(c *CPU) int { return c.illegal() }

// 0xEE XOR d8
func opcode0xEE(c *CPU) int { c.xorA(c.readImmediate()); return 8 }

// 0xEF RST 28H
func opcode0xEF(c *CPU) int { return c.rst(0x0028) }

// 0xF0 LDH A,(a8)
func opcode0xF0(c *CPU) int {
	c.a = c.read(0xFF00 + uint16(c.readImmediate()))
	return 12
}

// 0xF1 POP AF
func opcode0xF1(c *CPU) int { c.setAF(c.popStack()); return 12 }

// 0xF2 LD A,(C)
func opcode0xF2(c *CPU) int { c.a = c.read(0xFF00 + uint16(c.c)); return 8 }

// 0xF3 DI
func opcode0xF3(c *CPU) int {
	c.ime = false
	c.eiCountdown = 0
	return 4
}

// 0xF4 unused
func opcode0xF4(c *CPU) int { return c.illegal() }

// 0xF5 PUSH AF
func opcode0xF5(c *CPU) int { c.pushStack(c.af()); return 16 }

// 0xF6 OR d8
func opcode0xF6(c *CPU) int { c.orA(c.readImmediate()); return 8 }

// 0xF7 RST 30H
func opcode0xF7(c *CPU) int { return c.rst(0x0030) }

// 0xF8 LD HL,SP+r8
func opcode0xF8(c *CPU) int {
	c.setHL(c.addSPOffset(int8(c.readImmediate())))
	return 12
}

// 0xF9 LD SP,HL
func opcode0xF9(c *CPU) int { c.sp = c.hl(); return 8 }

// 0xFA LD A,(a16)
func opcode0xFA(c *CPU) int { c.a = c.read(c.readImmediateWord()); return 16 }

// 0xFB EI, delayed by one instruction
func opcode0xFB(c *CPU) int {
	if !c.ime && c.eiCountdown == 0 {
		c.eiCountdown = 2
	}
	return 4
}

// 0xFC, 0xFD unused
func opcode0xFC(c *CPU) int { return c.illegal() }
func opcode0xFD(c *CPU) int { return c.illegal() }

// 0xFE CP d8
func opcode0xFE(c *CPU) int { c.cpToA(c.readImmediate()); return 8 }

// 0xFF RST 38H
func opcode0xFF(c *CPU) int { return c.rst(0x0038) }
