package cpu

import "github.com/thelolagemann/gomeboy-core/pkg/bits"

// The rotations below share their flag behaviour: Z is set when the
// result is zero, N and H are reset, and C receives the bit rotated
// out of n.
//
//	RLC n, RRC n, RL n, RR n
//	n = B, C, D, E, H, L, (HL), A

// rotateLeftCarry copies bit 7 of n into both the carry flag and bit 0.
func (c *CPU) rotateLeftCarry(n uint8) uint8 {
	out := bits.Val(n, 7)
	computed := n<<1 | out
	c.setFlags(computed == 0, false, false, out == 1)
	return computed
}

// rotateRightCarry copies bit 0 of n into both the carry flag and bit 7.
func (c *CPU) rotateRightCarry(n uint8) uint8 {
	out := bits.Val(n, 0)
	computed := n>>1 | out<<7
	c.setFlags(computed == 0, false, false, out == 1)
	return computed
}

// rotateLeftThroughCarry treats the carry flag as a ninth bit above n.
func (c *CPU) rotateLeftThroughCarry(n uint8) uint8 {
	computed := n<<1 | c.carry()
	c.setFlags(computed == 0, false, false, bits.Test(n, 7))
	return computed
}

// rotateRightThroughCarry treats the carry flag as a ninth bit below n.
func (c *CPU) rotateRightThroughCarry(n uint8) uint8 {
	computed := n>>1 | c.carry()<<7
	c.setFlags(computed == 0, false, false, bits.Test(n, 0))
	return computed
}

// rotateAccumulator applies rotate to A. Unlike their prefixed
// counterparts, RLCA, RRCA, RLA and RRA always reset Z.
func (c *CPU) rotateAccumulator(rotate func(*CPU, uint8) uint8) {
	c.A = rotate(c, c.A)
	c.setFlag(FlagZero, false)
}

func generateRotateInstructions() {
	accumulator := []struct {
		opcode uint8
		name   string
		fn     func(*CPU, uint8) uint8
	}{
		{0x07, "RLCA", (*CPU).rotateLeftCarry},
		{0x0F, "RRCA", (*CPU).rotateRightCarry},
		{0x17, "RLA", (*CPU).rotateLeftThroughCarry},
		{0x1F, "RRA", (*CPU).rotateRightThroughCarry},
	}
	for _, r := range accumulator {
		rotate := r.fn
		DefineInstruction(r.opcode, r.name, 4, func(c *CPU) {
			c.rotateAccumulator(rotate)
		})
	}

	// 0xCB 0x00 - 0x1F
	generateReadModifyWrite(0x00, "RLC", (*CPU).rotateLeftCarry)
	generateReadModifyWrite(0x08, "RRC", (*CPU).rotateRightCarry)
	generateReadModifyWrite(0x10, "RL", (*CPU).rotateLeftThroughCarry)
	generateReadModifyWrite(0x18, "RR", (*CPU).rotateRightThroughCarry)
}
