package cpu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-core/pkg/bits"
)

// testBit tests the bit at the given position in the given value.
//
//	BIT n, r
//	n = 0-7
//	r = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if bit n of register r is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(value uint8, position uint8) {
	c.setFlags(!bits.Test(value, position), false, true, c.isFlagSet(FlagCarry))
}

func generateBitInstructions() {
	for bit := uint8(0); bit < 8; bit++ {
		position := bit
		for i := uint8(0); i < 8; i++ {
			index := i
			name := fmt.Sprintf("%d,%s", position, registerNames[index])
			testCycles, writeCycles := uint8(8), uint8(8)
			if index == hlIndex {
				testCycles, writeCycles = 12, 16
			}

			// 0xCB 0x40 - 0x7F - BIT n, r
			DefineInstructionCB(0x40+position<<3+index, "BIT "+name, testCycles, func(c *CPU) {
				c.testBit(c.getOperand(index), position)
			})
			// 0xCB 0x80 - 0xBF - RES n, r
			DefineInstructionCB(0x80+position<<3+index, "RES "+name, writeCycles, func(c *CPU) {
				c.setOperand(index, bits.Reset(c.getOperand(index), position))
			})
			// 0xCB 0xC0 - 0xFF - SET n, r
			DefineInstructionCB(0xC0+position<<3+index, "SET "+name, writeCycles, func(c *CPU) {
				c.setOperand(index, bits.Set(c.getOperand(index), position))
			})
		}
	}
}
