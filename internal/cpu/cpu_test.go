package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/mmu"
	"github.com/thelolagemann/gomeboy-core/internal/ram"
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// newTestCPU returns a CPU with the program loaded at the power-on PC.
// The lower 32kB are writable so that tests can patch memory, and OAM
// is left unmapped.
func newTestCPU(t *testing.T, program ...uint8) *CPU {
	t.Helper()
	m := mmu.NewMMU(nil)
	rom := ram.NewRegion(types.ROMStart, types.ROMSize)
	require.NoError(t, m.AddRegion("rom", rom))
	require.NoError(t, m.AddRegion("wram", ram.NewRegion(types.WRAMStart, types.WRAMSize)))
	require.NoError(t, m.AddRegion("hram", ram.NewRegion(types.HRAMStart, types.HRAMSize)))
	require.NoError(t, m.EnableIO(false))

	c := NewCPU(m, interrupts.NewService(m))
	for i, b := range program {
		require.NoError(t, m.Write(c.PC+uint16(i), b))
	}
	return c
}

// step executes a single step, failing the test on error.
func step(t *testing.T, c *CPU) int {
	t.Helper()
	cycles, err := c.Step()
	require.NoError(t, err)
	return cycles
}

func read(t *testing.T, c *CPU, address uint16) uint8 {
	t.Helper()
	v, err := c.b.Read(address)
	require.NoError(t, err)
	return v
}

func write(t *testing.T, c *CPU, address uint16, value uint8) {
	t.Helper()
	require.NoError(t, c.b.Write(address, value))
}

func TestCPU_PowerOn(t *testing.T) {
	c := newTestCPU(t)

	assert.Equal(t, uint16(0x0100), c.PC)
	assert.Equal(t, uint16(0xFFFE), c.SP)
	assert.Equal(t, uint16(0x01B0), c.AF.Uint16())
	assert.Equal(t, uint16(0x0013), c.BC.Uint16())
	assert.Equal(t, uint16(0x00D8), c.DE.Uint16())
	assert.Equal(t, uint16(0x014D), c.HL.Uint16())
	assert.Equal(t, ModeNormal, c.Mode())
	assert.False(t, c.irq.IME)
}

func TestCPU_RegisterPairs(t *testing.T) {
	c := newTestCPU(t)

	c.B, c.C = 0x12, 0x34
	assert.Equal(t, uint16(0x1234), c.BC.Uint16())

	c.HL.SetUint16(0xBEEF)
	assert.Equal(t, uint8(0xBE), c.H)
	assert.Equal(t, uint8(0xEF), c.L)

	// the lower nibble of F is always clear
	c.AF.SetUint16(0x12FF)
	assert.Equal(t, uint8(0xF0), c.F)
	assert.Equal(t, uint16(0x12F0), c.AF.Uint16())
}

func TestCPU_Step(t *testing.T) {
	c := newTestCPU(t, 0x00, 0x3C)
	c.A = 0x41

	assert.Equal(t, 4, step(t, c))
	assert.Equal(t, uint16(0x0101), c.PC)

	assert.Equal(t, 4, step(t, c))
	assert.Equal(t, uint8(0x42), c.A)
	assert.Equal(t, uint16(0x0102), c.PC)
}

func TestCPU_UnimplementedOpcode(t *testing.T) {
	for _, opcode := range []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD} {
		c := newTestCPU(t, opcode)

		_, err := c.Step()
		require.Error(t, err, "opcode 0x%02X", opcode)
		assert.True(t, errors.Is(err, ErrUnimplementedOpcode))

		var unimplemented *UnimplementedOpcodeError
		require.True(t, errors.As(err, &unimplemented))
		assert.Equal(t, opcode, unimplemented.Opcode)
		assert.False(t, unimplemented.Prefixed)
		assert.Equal(t, uint16(0x0100), unimplemented.PC)
	}
}

func TestCPU_Coverage(t *testing.T) {
	primary, prefixed := Coverage()
	assert.Equal(t, []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}, primary)
	assert.Empty(t, prefixed)
}

func TestCPU_BusFault(t *testing.T) {
	// LD A, (0xFEA1)
	c := newTestCPU(t, 0xFA, 0xA1, 0xFE)

	_, err := c.Step()
	require.Error(t, err)
	assert.ErrorIs(t, err, mmu.ErrUnmappedAddress)

	var unmapped *mmu.UnmappedAddressError
	require.True(t, errors.As(err, &unmapped))
	assert.Equal(t, uint16(0xFEA1), unmapped.Address)
	assert.False(t, unmapped.Write)

	// the operand fetch happened before the fault
	assert.Equal(t, uint16(0x0103), c.PC)
}

func TestCPU_BusFaultWrite(t *testing.T) {
	// PUSH BC with SP pointing into the unmapped region
	c := newTestCPU(t, 0xC5)
	c.SP = 0xFEA2

	_, err := c.Step()
	var unmapped *mmu.UnmappedAddressError
	require.True(t, errors.As(err, &unmapped))
	assert.True(t, unmapped.Write)
	assert.Equal(t, uint16(0xFEA1), unmapped.Address)
}

// timings holds the base cost of every unprefixed instruction in
// machine cycles, conditional branches not taken. Unimplemented opcodes
// and the prefix are 0.
var timings = [256]uint8{
	1, 3, 2, 2, 1, 1, 2, 1, 5, 2, 2, 2, 1, 1, 2, 1, // 0x00
	1, 3, 2, 2, 1, 1, 2, 1, 3, 2, 2, 2, 1, 1, 2, 1, // 0x10
	2, 3, 2, 2, 1, 1, 2, 1, 2, 2, 2, 2, 1, 1, 2, 1, // 0x20
	2, 3, 2, 2, 3, 3, 3, 1, 2, 2, 2, 2, 1, 1, 2, 1, // 0x30
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x40
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x50
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x60
	2, 2, 2, 2, 2, 2, 1, 2, 1, 1, 1, 1, 1, 1, 2, 1, // 0x70
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x80
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x90
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0xA0
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0xB0
	2, 3, 3, 4, 3, 4, 2, 4, 2, 4, 3, 0, 3, 6, 2, 4, // 0xC0
	2, 3, 3, 0, 3, 4, 2, 4, 2, 4, 3, 0, 3, 0, 2, 4, // 0xD0
	3, 3, 2, 0, 0, 4, 2, 4, 4, 1, 4, 0, 0, 0, 2, 4, // 0xE0
	3, 3, 2, 1, 0, 4, 2, 4, 3, 2, 4, 1, 0, 0, 2, 4, // 0xF0
}

func TestInstruction_Timing(t *testing.T) {
	for i, instruction := range InstructionSet {
		if instruction.Cycles() != int(timings[i])*4 {
			t.Errorf("0x%02X %s: expected %d cycles, got %d", i, instruction.Name(), timings[i]*4, instruction.Cycles())
		}
	}
}

func TestInstructionCB_Timing(t *testing.T) {
	for i, instruction := range InstructionSetCB {
		expected := 8
		if i&0x07 == hlIndex {
			expected = 16
			if i >= 0x40 && i < 0x80 {
				expected = 12
			}
		}
		if instruction.Cycles() != expected {
			t.Errorf("0xCB 0x%02X %s: expected %d cycles, got %d", i, instruction.Name(), expected, instruction.Cycles())
		}
	}
}

func TestInstruction_Names(t *testing.T) {
	assert.Equal(t, "NOP", InstructionSet[0x00].Name())
	assert.Equal(t, "LD B,C", InstructionSet[0x41].Name())
	assert.Equal(t, "LD (HL),A", InstructionSet[0x77].Name())
	assert.Equal(t, "XOR A", InstructionSet[0xAF].Name())
	assert.Equal(t, "RST 38H", InstructionSet[0xFF].Name())
	assert.Equal(t, "JP NZ,a16", InstructionSet[0xC2].Name())
	assert.Equal(t, "BIT 7,H", InstructionSetCB[0x7C].Name())
	assert.Equal(t, "SWAP (HL)", InstructionSetCB[0x36].Name())
}

func TestCPU_Independent(t *testing.T) {
	a := newTestCPU(t, 0x3C)
	b := newTestCPU(t, 0x3D)
	a.A, b.A = 0x10, 0x10

	step(t, a)
	step(t, b)
	assert.Equal(t, uint8(0x11), a.A)
	assert.Equal(t, uint8(0x0F), b.A)
}
