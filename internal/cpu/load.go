package cpu

// loadRegisterToMemory stores the value of the given register at the
// given address.
//
//	LD (nn), n
//	nn = 16-bit address
//	n = A, B, C, D, E, H, L
func (c *CPU) loadRegisterToMemory(reg Register, address uint16) {
	c.writeByte(address, reg)
}

// loadMemoryToRegister loads the value at the given address into the
// given register.
//
//	LD n, (nn)
//	n = A, B, C, D, E, H, L
//	nn = 16-bit address
func (c *CPU) loadMemoryToRegister(reg *Register, address uint16) {
	*reg = c.readByte(address)
}

// loadSPToMemory stores SP at the given address, low byte first.
//
//	LD (nn), SP
//	nn = 16-bit address
func (c *CPU) loadSPToMemory(address uint16) {
	c.writeByte(address, uint8(c.SP))
	c.writeByte(address+1, uint8(c.SP>>8))
}

// loadHLSigned loads SP plus the signed offset into HL.
//
//	LD HL, SP+e
//	e = 8-bit signed value
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) loadHLSigned(offset uint8) {
	c.HL.SetUint16(c.addSPSigned(offset))
}

// pushStack pushes a 16 bit value onto the stack, the high byte first.
func (c *CPU) pushStack(value uint16) {
	c.SP--
	c.writeByte(c.SP, uint8(value>>8))
	c.SP--
	c.writeByte(c.SP, uint8(value))
}

// popStack pops a 16 bit value off the stack.
func (c *CPU) popStack() uint16 {
	low := uint16(c.readByte(c.SP))
	c.SP++
	high := uint16(c.readByte(c.SP)) << 8
	c.SP++
	return high | low
}

// stackPairs are the operands of PUSH and POP, in encoding order.
var stackPairs = [4]string{"BC", "DE", "HL", "AF"}

func (c *CPU) stackPair(index uint8) *RegisterPair {
	switch index {
	case 0:
		return c.BC
	case 1:
		return c.DE
	case 2:
		return c.HL
	}
	return c.AF
}

func generateLoadInstructions() {
	// 0x40 - 0x7F - LD n, n (except 0x76 HALT)
	for i := uint8(0); i < 8; i++ {
		for j := uint8(0); j < 8; j++ {
			if i == hlIndex && j == hlIndex {
				continue
			}
			target, source := i, j
			cycles := uint8(4)
			if target == hlIndex || source == hlIndex {
				cycles = 8
			}
			DefineInstruction(0x40+target<<3+source, "LD "+registerNames[target]+","+registerNames[source], cycles, func(c *CPU) {
				c.setOperand(target, c.getOperand(source))
			})
		}

		// 0x06, 0x0E, ... 0x3E - LD n, d8
		index := i
		cycles := uint8(8)
		if index == hlIndex {
			cycles = 12
		}
		DefineInstruction(0x06+index<<3, "LD "+registerNames[index]+",d8", cycles, func(c *CPU) {
			c.setOperand(index, c.readOperand())
		})
	}

	for i := uint8(0); i < 4; i++ {
		index := i
		// 0x01, 0x11, 0x21, 0x31 - LD nn, d16
		DefineInstruction(0x01+index<<4, "LD "+pairNames[index]+",d16", 12, func(c *CPU) {
			c.setPair(index, c.readOperand16())
		})
		// 0xC1, 0xD1, 0xE1, 0xF1 - POP nn
		DefineInstruction(0xC1+index<<4, "POP "+stackPairs[index], 12, func(c *CPU) {
			c.stackPair(index).SetUint16(c.popStack())
		})
		// 0xC5, 0xD5, 0xE5, 0xF5 - PUSH nn
		DefineInstruction(0xC5+index<<4, "PUSH "+stackPairs[index], 16, func(c *CPU) {
			c.pushStack(c.stackPair(index).Uint16())
		})
	}

	// 0x02 - LD (BC), A
	DefineInstruction(0x02, "LD (BC),A", 8, func(c *CPU) {
		c.loadRegisterToMemory(c.A, c.BC.Uint16())
	})
	// 0x12 - LD (DE), A
	DefineInstruction(0x12, "LD (DE),A", 8, func(c *CPU) {
		c.loadRegisterToMemory(c.A, c.DE.Uint16())
	})
	// 0x22 - LD (HL+), A
	DefineInstruction(0x22, "LD (HL+),A", 8, func(c *CPU) {
		c.loadRegisterToMemory(c.A, c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	// 0x32 - LD (HL-), A
	DefineInstruction(0x32, "LD (HL-),A", 8, func(c *CPU) {
		c.loadRegisterToMemory(c.A, c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})
	// 0x0A - LD A, (BC)
	DefineInstruction(0x0A, "LD A,(BC)", 8, func(c *CPU) {
		c.loadMemoryToRegister(&c.A, c.BC.Uint16())
	})
	// 0x1A - LD A, (DE)
	DefineInstruction(0x1A, "LD A,(DE)", 8, func(c *CPU) {
		c.loadMemoryToRegister(&c.A, c.DE.Uint16())
	})
	// 0x2A - LD A, (HL+)
	DefineInstruction(0x2A, "LD A,(HL+)", 8, func(c *CPU) {
		c.loadMemoryToRegister(&c.A, c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	// 0x3A - LD A, (HL-)
	DefineInstruction(0x3A, "LD A,(HL-)", 8, func(c *CPU) {
		c.loadMemoryToRegister(&c.A, c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})
	// 0x08 - LD (a16), SP
	DefineInstruction(0x08, "LD (a16),SP", 20, func(c *CPU) {
		c.loadSPToMemory(c.readOperand16())
	})
	// 0xE0 - LDH (a8), A
	DefineInstruction(0xE0, "LDH (a8),A", 12, func(c *CPU) {
		c.loadRegisterToMemory(c.A, 0xFF00+uint16(c.readOperand()))
	})
	// 0xF0 - LDH A, (a8)
	DefineInstruction(0xF0, "LDH A,(a8)", 12, func(c *CPU) {
		c.loadMemoryToRegister(&c.A, 0xFF00+uint16(c.readOperand()))
	})
	// 0xE2 - LD (C), A
	DefineInstruction(0xE2, "LD (C),A", 8, func(c *CPU) {
		c.loadRegisterToMemory(c.A, 0xFF00+uint16(c.C))
	})
	// 0xF2 - LD A, (C)
	DefineInstruction(0xF2, "LD A,(C)", 8, func(c *CPU) {
		c.loadMemoryToRegister(&c.A, 0xFF00+uint16(c.C))
	})
	// 0xEA - LD (a16), A
	DefineInstruction(0xEA, "LD (a16),A", 16, func(c *CPU) {
		c.loadRegisterToMemory(c.A, c.readOperand16())
	})
	// 0xFA - LD A, (a16)
	DefineInstruction(0xFA, "LD A,(a16)", 16, func(c *CPU) {
		c.loadMemoryToRegister(&c.A, c.readOperand16())
	})
	// 0xF8 - LD HL, SP+r8
	DefineInstruction(0xF8, "LD HL,SP+r8", 12, func(c *CPU) {
		c.loadHLSigned(c.readOperand())
	})
	// 0xF9 - LD SP, HL
	DefineInstruction(0xF9, "LD SP,HL", 8, func(c *CPU) {
		c.SP = c.HL.Uint16()
	})
}
