package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncDecFlags(t *testing.T) {
	t.Run("INC", func(t *testing.T) {
		cases := []struct {
			desc  string
			start uint8
			want  uint8
			zero  bool
			half  bool
		}{
			{"plain", 0x01, 0x02, false, false},
			{"nibble carry", 0x0F, 0x10, false, true},
			{"wrap to zero", 0xFF, 0x00, true, true},
		}

		for _, tc := range cases {
			t.Run(tc.desc, func(t *testing.T) {
				cpu, _, _ := newTestCPU()
				cpu.setFlag(carryFlag)
				value := tc.start
				cpu.inc(&value)

				assert.Equal(t, tc.want, value)
				assert.Equal(t, tc.zero, cpu.isSetFlag(zeroFlag))
				assert.Equal(t, tc.half, cpu.isSetFlag(halfCarryFlag))
				assert.False(t, cpu.isSetFlag(subFlag))
				assert.True(t, cpu.isSetFlag(carryFlag), "carry is untouched")
			})
		}
	})

	t.Run("DEC", func(t *testing.T) {
		cases := []struct {
			desc  string
			start uint8
			want  uint8
			zero  bool
			half  bool
		}{
			{"plain", 0x02, 0x01, false, false},
			{"nibble borrow", 0x10, 0x0F, false, true},
			{"to zero", 0x01, 0x00, true, false},
			{"wrap", 0x00, 0xFF, false, true},
		}

		for _, tc := range cases {
			t.Run(tc.desc, func(t *testing.T) {
				cpu, _, _ := newTestCPU()
				value := tc.start
				cpu.dec(&value)

				assert.Equal(t, tc.want, value)
				assert.Equal(t, tc.zero, cpu.isSetFlag(zeroFlag))
				assert.Equal(t, tc.half, cpu.isSetFlag(halfCarryFlag))
				assert.True(t, cpu.isSetFlag(subFlag))
			})
		}
	})
}

func TestArithmetic(t *testing.T) {
	t.Run("ADC includes the carry", func(t *testing.T) {
		cpu, _, _ := newTestCPU()
		cpu.a = 0x0F
		cpu.setFlag(carryFlag)
		cpu.adcToA(0x00)

		assert.Equal(t, uint8(0x10), cpu.a)
		assert.True(t, cpu.isSetFlag(halfCarryFlag))
		assert.False(t, cpu.isSetFlag(carryFlag))
	})

	t.Run("SBC borrows through", func(t *testing.T) {
		cpu, _, _ := newTestCPU()
		cpu.a = 0x00
		cpu.setFlag(carryFlag)
		cpu.sbcFromA(0x00)

		assert.Equal(t, uint8(0xFF), cpu.a)
		assert.True(t, cpu.isSetFlag(carryFlag))
		assert.True(t, cpu.isSetFlag(halfCarryFlag))
		assert.True(t, cpu.isSetFlag(subFlag))
	})

	t.Run("CP leaves A alone", func(t *testing.T) {
		cpu, _, _ := newTestCPU()
		cpu.a = 0x42
		cpu.cpToA(0x42)

		assert.Equal(t, uint8(0x42), cpu.a)
		assert.True(t, cpu.isSetFlag(zeroFlag))
		assert.True(t, cpu.isSetFlag(subFlag))
	})

	t.Run("AND sets H only", func(t *testing.T) {
		cpu, _, _ := newTestCPU()
		cpu.a = 0xF0
		cpu.andA(0x0F)

		assert.Equal(t, uint8(0x00), cpu.a)
		assert.Equal(t, uint8(0xA0), cpu.f, "Z and H")
	})

	t.Run("ADD HL,rr keeps Z", func(t *testing.T) {
		cpu, _, _ := newTestCPU()
		cpu.setFlag(zeroFlag)
		cpu.setHL(0x0FFF)
		cpu.addToHL(0x0001)

		assert.Equal(t, uint16(0x1000), cpu.hl())
		assert.True(t, cpu.isSetFlag(zeroFlag))
		assert.True(t, cpu.isSetFlag(halfCarryFlag))
		assert.False(t, cpu.isSetFlag(carryFlag))
	})

	t.Run("ADD SP offset flags come from the low byte", func(t *testing.T) {
		cpu, _, _ := newTestCPU()
		cpu.sp = 0x00FF
		result := cpu.addSPOffset(0x01)

		assert.Equal(t, uint16(0x0100), result)
		assert.True(t, cpu.isSetFlag(halfCarryFlag))
		assert.True(t, cpu.isSetFlag(carryFlag))
		assert.False(t, cpu.isSetFlag(zeroFlag))

		cpu.sp = 0x0100
		result = cpu.addSPOffset(-1)
		assert.Equal(t, uint16(0x00FF), result)
		assert.False(t, cpu.isSetFlag(halfCarryFlag))
		assert.False(t, cpu.isSetFlag(carryFlag))
	})
}

func TestRotates(t *testing.T) {
	cases := []struct {
		desc     string
		op       func(*CPU, uint8) uint8
		input    uint8
		carryIn  bool
		want     uint8
		carryOut bool
	}{
		{"RLC wraps bit 7", (*CPU).rlc, 0x80, false, 0x01, true},
		{"RL shifts carry in", (*CPU).rl, 0x80, true, 0x01, true},
		{"RL without carry", (*CPU).rl, 0x80, false, 0x00, true},
		{"RRC wraps bit 0", (*CPU).rrc, 0x01, false, 0x80, true},
		{"RR shifts carry in", (*CPU).rr, 0x01, true, 0x80, true},
		{"SLA drops bit 0", (*CPU).sla, 0xC1, false, 0x82, true},
		{"SRA keeps the sign", (*CPU).sra, 0x81, false, 0xC0, true},
		{"SRL clears the sign", (*CPU).srl, 0x81, false, 0x40, true},
		{"SWAP", (*CPU).swap, 0xAB, false, 0xBA, false},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			cpu, _, _ := newTestCPU()
			cpu.setFlagTo(carryFlag, tc.carryIn)

			got := tc.op(cpu, tc.input)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.carryOut, cpu.isSetFlag(carryFlag))
			assert.Equal(t, got == 0, cpu.isSetFlag(zeroFlag))
		})
	}
}

func TestBitTest(t *testing.T) {
	cpu, _, _ := newTestCPU()
	cpu.setFlag(carryFlag)

	cpu.bitTest(3, 0x08)
	assert.False(t, cpu.isSetFlag(zeroFlag))
	assert.True(t, cpu.isSetFlag(halfCarryFlag))
	assert.False(t, cpu.isSetFlag(subFlag))
	assert.True(t, cpu.isSetFlag(carryFlag), "carry untouched")

	cpu.bitTest(3, 0xF7)
	assert.True(t, cpu.isSetFlag(zeroFlag))
}

func TestDAA(t *testing.T) {
	cases := []struct {
		desc      string
		a         uint8
		flags     uint8
		want      uint8
		wantCarry bool
	}{
		{"no adjust", 0x42, 0, 0x42, false},
		{"low nibble overflow", 0x0A, 0, 0x10, false},
		{"high nibble overflow", 0xA0, 0, 0x00, true},
		{"half carry set", 0x03, uint8(halfCarryFlag), 0x09, false},
		{"after 0x99+0x01", 0x9A, 0, 0x00, true},
		{"subtraction with half borrow", 0x0F, uint8(subFlag) | uint8(halfCarryFlag), 0x09, false},
		{"subtraction with borrow", 0xFF, uint8(subFlag) | uint8(carryFlag), 0x9F, true},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			cpu, _, _ := newTestCPU()
			cpu.a = tc.a
			cpu.f = tc.flags
			cpu.daa()

			assert.Equal(t, tc.want, cpu.a)
			assert.Equal(t, tc.wantCarry, cpu.isSetFlag(carryFlag))
			assert.Equal(t, cpu.a == 0, cpu.isSetFlag(zeroFlag))
			assert.False(t, cpu.isSetFlag(halfCarryFlag))
		})
	}
}

func TestCBTable(t *testing.T) {
	t.Run("RES and SET round trip", func(t *testing.T) {
		cpu, bus, _ := newTestCPU()
		cpu.b = 0xFF
		load(bus, 0xCB, 0x80, 0xCB, 0xC0) // RES 0,B; SET 0,B

		cpu.Step()
		assert.Equal(t, uint8(0xFE), cpu.b)
		cpu.Step()
		assert.Equal(t, uint8(0xFF), cpu.b)
	})

	t.Run("(HL) operand costs more", func(t *testing.T) {
		cpu, bus, _ := newTestCPU()
		cpu.setHL(0xC000)
		bus.mem[0xC000] = 0x01
		load(bus, 0xCB, 0x46, 0xCB, 0x06) // BIT 0,(HL); RLC (HL)

		cycles, _ := cpu.Step()
		assert.Equal(t, 12, cycles)
		assert.False(t, cpu.isSetFlag(zeroFlag))

		bus.ticked = 0
		cycles, _ = cpu.Step()
		assert.Equal(t, 16, cycles)
		assert.Equal(t, 16, bus.ticked)
		assert.Equal(t, byte(0x02), bus.mem[0xC000])
	})

	t.Run("names follow the encoding", func(t *testing.T) {
		assert.Equal(t, "SWAP A", OpcodeName(0xCB37))
		assert.Equal(t, "BIT 7,(HL)", OpcodeName(0xCB7E))
		assert.Equal(t, "SET 0,B", OpcodeName(0xCBC0))
	})
}
