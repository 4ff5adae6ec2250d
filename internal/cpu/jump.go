package cpu

import "fmt"

// conditions are the branch conditions encoded by bits 3-4 of the
// conditional jumps, calls and returns.
var conditions = [4]struct {
	name string
	test func(c *CPU) bool
}{
	{"NZ", func(c *CPU) bool { return !c.isFlagSet(FlagZero) }},
	{"Z", func(c *CPU) bool { return c.isFlagSet(FlagZero) }},
	{"NC", func(c *CPU) bool { return !c.isFlagSet(FlagCarry) }},
	{"C", func(c *CPU) bool { return c.isFlagSet(FlagCarry) }},
}

// jumpAbsolute jumps to the given address.
//
//	JP nn
//	nn = 16-bit immediate value
func (c *CPU) jumpAbsolute(address uint16) {
	c.PC = address
}

// jumpRelative jumps to the address relative to the address of the
// next instruction.
//
//	JR e
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(offset uint8) {
	c.jumpAbsolute(uint16(int32(c.PC) + int32(int8(offset))))
}

// call pushes the address of the next instruction onto the stack and jumps to
// the given address.
//
//	CALL nn
//	nn = 16-bit immediate value
func (c *CPU) call(address uint16) {
	c.pushStack(c.PC)
	c.PC = address
}

// ret pops the return address off the stack and jumps to it.
//
//	RET
func (c *CPU) ret() {
	c.PC = c.popStack()
}

func generateJumpInstructions() {
	// 0xC3 - JP nn
	DefineInstruction(0xC3, "JP a16", 16, func(c *CPU) {
		c.jumpAbsolute(c.readOperand16())
	})
	// 0xE9 - JP HL
	DefineInstruction(0xE9, "JP HL", 4, func(c *CPU) {
		c.jumpAbsolute(c.HL.Uint16())
	})
	// 0x18 - JR e
	DefineInstruction(0x18, "JR r8", 12, func(c *CPU) {
		c.jumpRelative(c.readOperand())
	})
	// 0xCD - CALL nn
	DefineInstruction(0xCD, "CALL a16", 24, func(c *CPU) {
		c.call(c.readOperand16())
	})
	// 0xC9 - RET
	DefineInstruction(0xC9, "RET", 16, (*CPU).ret)
	// 0xD9 - RETI
	DefineInstruction(0xD9, "RETI", 16, func(c *CPU) {
		c.ret()
		c.irq.IME = true
	})

	for i := uint8(0); i < 4; i++ {
		condition := conditions[i]

		// 0xC2, 0xCA, 0xD2, 0xDA - JP cc, nn
		DefineInstruction(0xC2+i<<3, "JP "+condition.name+",a16", 12, func(c *CPU) {
			address := c.readOperand16()
			if condition.test(c) {
				c.jumpAbsolute(address)
				c.tick(4)
			}
		})
		// 0x20, 0x28, 0x30, 0x38 - JR cc, e
		DefineInstruction(0x20+i<<3, "JR "+condition.name+",r8", 8, func(c *CPU) {
			offset := c.readOperand()
			if condition.test(c) {
				c.jumpRelative(offset)
				c.tick(4)
			}
		})
		// 0xC4, 0xCC, 0xD4, 0xDC - CALL cc, nn
		DefineInstruction(0xC4+i<<3, "CALL "+condition.name+",a16", 12, func(c *CPU) {
			address := c.readOperand16()
			if condition.test(c) {
				c.call(address)
				c.tick(12)
			}
		})
		// 0xC0, 0xC8, 0xD0, 0xD8 - RET cc
		DefineInstruction(0xC0+i<<3, "RET "+condition.name, 8, func(c *CPU) {
			if condition.test(c) {
				c.ret()
				c.tick(12)
			}
		})
	}

	// 0xC7, 0xCF, ... 0xFF - RST n
	for opcode := 0xC7; opcode <= 0xFF; opcode += 8 {
		vector := uint16(opcode - 0xC7)
		DefineInstruction(uint8(opcode), fmt.Sprintf("RST %02XH", vector), 16, func(c *CPU) {
			c.call(vector)
		})
	}
}
