package cpu

import "github.com/thelolagemann/gomeboy-core/pkg/bits"

// shiftLeftArithmetic shifts n left into the carry flag, bit 0 becomes 0.
//
//	SLA n
//
// Flags affected: Z if the result is zero, N and H reset, C old bit 7.
func (c *CPU) shiftLeftArithmetic(n uint8) uint8 {
	computed := n << 1
	c.setFlags(computed == 0, false, false, bits.Test(n, 7))
	return computed
}

// shiftRightArithmetic shifts n right into the carry flag, keeping the
// sign in bit 7.
//
//	SRA n
//
// Flags affected: Z if the result is zero, N and H reset, C old bit 0.
func (c *CPU) shiftRightArithmetic(n uint8) uint8 {
	computed := uint8(int8(n) >> 1)
	c.setFlags(computed == 0, false, false, bits.Test(n, 0))
	return computed
}

// shiftRightLogical shifts n right into the carry flag, bit 7 becomes 0.
//
//	SRL n
func (c *CPU) shiftRightLogical(n uint8) uint8 {
	computed := n >> 1
	c.setFlags(computed == 0, false, false, bits.Test(n, 0))
	return computed
}

// swap exchanges the nibbles of n. Only Z can be set.
func (c *CPU) swap(n uint8) uint8 {
	computed := n<<4 | n>>4
	c.setFlags(computed == 0, false, false, false)
	return computed
}

func generateShiftInstructions() {
	// 0xCB 0x20 - 0x3F
	generateReadModifyWrite(0x20, "SLA", (*CPU).shiftLeftArithmetic)
	generateReadModifyWrite(0x28, "SRA", (*CPU).shiftRightArithmetic)
	generateReadModifyWrite(0x30, "SWAP", (*CPU).swap)
	generateReadModifyWrite(0x38, "SRL", (*CPU).shiftRightLogical)
}
