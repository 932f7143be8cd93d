package cpu

import "github.com/mvella/go-dmg/dmg/bit"

// The CB-prefixed opcodes follow a strict encoding: bits 2-0 select the
// operand (B,C,D,E,H,L,(HL),A), bits 5-3 the rotate/shift variant or bit
// index, bits 7-6 the operation group. The table is built from that
// encoding instead of 256 hand-written functions.

var opcodesCB = buildCBTable()

const cbOperandHL = 6

// cbGet reads the operand selected by the low 3 bits of a CB opcode.
func cbGet(c *CPU, operand uint8) uint8 {
	switch operand {
	case 0:
		return c.b
	case 1:
		return c.c
	case 2:
		return c.d
	case 3:
		return c.e
	case 4:
		return c.h
	case 5:
		return c.l
	case cbOperandHL:
		return c.read(c.hl())
	default:
		return c.a
	}
}

func cbSet(c *CPU, operand, value uint8) {
	switch operand {
	case 0:
		c.b = value
	case 1:
		c.c = value
	case 2:
		c.d = value
	case 3:
		c.e = value
	case 4:
		c.h = value
	case 5:
		c.l = value
	case cbOperandHL:
		c.write(c.hl(), value)
	default:
		c.a = value
	}
}

// cbMutators are the eight rotate/shift/swap variants of the 0x00-0x3F
// range, in encoding order.
var cbMutators = [8]func(*CPU, uint8) uint8{
	(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
	(*CPU).sla, (*CPU).sra, (*CPU).swap, (*CPU).srl,
}

func buildCBTable() [256]Opcode {
	var table [256]Opcode

	for i := range table {
		op := uint8(i)
		operand := op & 0x07
		selector := op >> 3 & 0x07

		// read-modify-write forms pay for the (HL) read and write,
		// BIT only for the read
		cost := 8
		if operand == cbOperandHL {
			cost = 16
		}

		switch op >> 6 {
		case 0: // rotates and shifts
			mutate := cbMutators[selector]
			table[i] = func(c *CPU) int {
				cbSet(c, operand, mutate(c, cbGet(c, operand)))
				return cost
			}
		case 1: // BIT b,r
			if operand == cbOperandHL {
				cost = 12
			}
			table[i] = func(c *CPU) int {
				c.bitTest(selector, cbGet(c, operand))
				return cost
			}
		case 2: // RES b,r
			table[i] = func(c *CPU) int {
				cbSet(c, operand, bit.Clear(selector, cbGet(c, operand)))
				return cost
			}
		default: // SET b,r
			table[i] = func(c *CPU) int {
				cbSet(c, operand, bit.Set(selector, cbGet(c, operand)))
				return cost
			}
		}
	}

	return table
}

var cbNames = buildCBNames()

func buildCBNames() [256]string {
	mutators := [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}
	operands := [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	groups := [4]string{"", "BIT", "RES", "SET"}

	var names [256]string
	for i := range names {
		op := uint8(i)
		operand := operands[op&0x07]
		selector := op >> 3 & 0x07

		if op>>6 == 0 {
			names[i] = mutators[selector] + " " + operand
		} else {
			names[i] = groups[op>>6] + " " + string(rune('0'+selector)) + "," + operand
		}
	}
	return names
}
