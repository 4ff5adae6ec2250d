package cpu

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(value uint8) {
	c.A &= value
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//	n = d8, A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(value uint8) {
	c.A |= value
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
//	XOR n
//	n = d8, A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(value uint8) {
	c.A ^= value
	c.setFlags(c.A == 0, false, false, false)
}

// compare compares n to the A Register, as a subtraction whose
// result is thrown away.
//
//	CP n
//	n = d8, A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero. (Set if A = n)
//	N - Set.
//	H - Set if no borrow from bit 4.
//	C - Set for no borrow. (Set if A < n)
func (c *CPU) compare(value uint8) {
	c.subtract(value, 0)
}

// complement flips every bit of the A Register.
//
//	CPL
//
// Flags affected:
//
//	Z - Not affected.
//	N - Set.
//	H - Set.
//	C - Not affected.
func (c *CPU) complement() {
	c.A = ^c.A
	c.setFlag(FlagSubtract, true)
	c.setFlag(FlagHalfCarry, true)
}

// setCarryFlag sets the carry flag.
//
//	SCF
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Reset.
//	C - Set.
func (c *CPU) setCarryFlag() {
	c.setFlags(c.isFlagSet(FlagZero), false, false, true)
}

// complementCarryFlag flips the carry flag.
//
//	CCF
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Reset.
//	C - Complemented.
func (c *CPU) complementCarryFlag() {
	c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))
}

func generateLogicInstructions() {
	// 0x2F - CPL
	DefineInstruction(0x2F, "CPL", 4, (*CPU).complement)
	// 0x37 - SCF
	DefineInstruction(0x37, "SCF", 4, (*CPU).setCarryFlag)
	// 0x3F - CCF
	DefineInstruction(0x3F, "CCF", 4, (*CPU).complementCarryFlag)
}
