package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstruction_LoadRegisterToRegister(t *testing.T) {
	for target := uint8(0); target < 8; target++ {
		for source := uint8(0); source < 8; source++ {
			if target == hlIndex || source == hlIndex {
				continue
			}
			opcode := 0x40 + target<<3 + source
			c := newTestCPU(t, opcode)
			*c.registerPointer(source) = 0x42 + source

			if cycles := step(t, c); cycles != 4 {
				t.Errorf("0x%02X: expected 4 cycles, got %d", opcode, cycles)
			}
			if v := *c.registerPointer(target); v != 0x42+source {
				t.Errorf("%s: expected 0x%02X, got 0x%02X", InstructionSet[opcode].Name(), 0x42+source, v)
			}
		}
	}
}

func TestInstruction_LoadMemory(t *testing.T) {
	c := newTestCPU(t,
		0x21, 0x00, 0xC0, // LD HL,0xC000
		0x36, 0x99, // LD (HL),0x99
		0x7E,       // LD A,(HL)
		0x22,       // LD (HL+),A
		0x3A,       // LD A,(HL-)
		0x70,       // LD (HL),B
	)
	c.B = 0x11
	write(t, c, 0xC001, 0x55)

	assert.Equal(t, 12, step(t, c))
	assert.Equal(t, uint16(0xC000), c.HL.Uint16())
	assert.Equal(t, 12, step(t, c))
	assert.Equal(t, uint8(0x99), read(t, c, 0xC000))
	assert.Equal(t, 8, step(t, c))
	assert.Equal(t, uint8(0x99), c.A)

	step(t, c)
	assert.Equal(t, uint16(0xC001), c.HL.Uint16())
	step(t, c)
	assert.Equal(t, uint8(0x55), c.A)
	assert.Equal(t, uint16(0xC000), c.HL.Uint16())
	step(t, c)
	assert.Equal(t, uint8(0x11), read(t, c, 0xC000))
}

func TestInstruction_LoadHigh(t *testing.T) {
	c := newTestCPU(t,
		0xE0, 0x80, // LDH (0x80),A
		0xF0, 0x81, // LDH A,(0x81)
		0xE2, // LD (C),A
		0xEA, 0x34, 0xC2, // LD (0xC234),A
		0xFA, 0x80, 0xFF, // LD A,(0xFF80)
	)
	c.A = 0x12
	c.C = 0x82
	write(t, c, 0xFF81, 0x34)

	assert.Equal(t, 12, step(t, c))
	assert.Equal(t, uint8(0x12), read(t, c, 0xFF80))
	step(t, c)
	assert.Equal(t, uint8(0x34), c.A)
	assert.Equal(t, 8, step(t, c))
	assert.Equal(t, uint8(0x34), read(t, c, 0xFF82))
	assert.Equal(t, 16, step(t, c))
	assert.Equal(t, uint8(0x34), read(t, c, 0xC234))
	step(t, c)
	assert.Equal(t, uint8(0x12), c.A)
}

func TestInstruction_LoadSP(t *testing.T) {
	c := newTestCPU(t,
		0x31, 0x34, 0x12, // LD SP,0x1234
		0x08, 0x00, 0xC0, // LD (0xC000),SP
		0x21, 0xF0, 0xDF, // LD HL,0xDFF0
		0xF9, // LD SP,HL
	)

	step(t, c)
	assert.Equal(t, uint16(0x1234), c.SP)
	assert.Equal(t, 20, step(t, c))
	assert.Equal(t, uint8(0x34), read(t, c, 0xC000))
	assert.Equal(t, uint8(0x12), read(t, c, 0xC001))
	step(t, c)
	assert.Equal(t, 8, step(t, c))
	assert.Equal(t, uint16(0xDFF0), c.SP)
}

func TestInstruction_Stack(t *testing.T) {
	c := newTestCPU(t,
		0xC5, // PUSH BC
		0xD1, // POP DE
		0xD5, // PUSH DE
		0xF1, // POP AF
	)
	c.SP = 0xD000
	c.BC.SetUint16(0x12FF)

	assert.Equal(t, 16, step(t, c))
	assert.Equal(t, uint16(0xCFFE), c.SP)
	// the high byte is pushed first
	assert.Equal(t, uint8(0x12), read(t, c, 0xCFFF))
	assert.Equal(t, uint8(0xFF), read(t, c, 0xCFFE))

	assert.Equal(t, 12, step(t, c))
	assert.Equal(t, uint16(0x12FF), c.DE.Uint16())
	assert.Equal(t, uint16(0xD000), c.SP)

	step(t, c)
	step(t, c)
	// the lower nibble of F can not be set
	assert.Equal(t, uint16(0x12F0), c.AF.Uint16())
	assert.Equal(t, uint16(0xD000), c.SP)
}

func TestStack_RoundTrip(t *testing.T) {
	c := newTestCPU(t)
	for _, sp := range []uint16{0xD000, 0xC002, 0xFFFE} {
		for _, v := range []uint16{0x0000, 0x1234, 0xFFFF, 0x8001} {
			c.SP = sp
			c.pushStack(v)
			assert.Equal(t, sp-2, c.SP)
			assert.Equal(t, v, c.popStack())
			assert.Equal(t, sp, c.SP)
		}
	}
}
