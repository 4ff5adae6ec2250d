package cpu

import "github.com/thelolagemann/gomeboy-core/pkg/bits"

// increment the given value and set the flags accordingly.
//
//	INC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(value uint8) uint8 {
	incremented := value + 0x01
	c.setFlags(incremented == 0, false, value&0xF == 0xF, c.isFlagSet(FlagCarry))
	return incremented
}

// decrement the given value and set the flags accordingly.
//
//	DEC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(value uint8) uint8 {
	decremented := value - 0x01
	c.setFlags(decremented == 0, true, value&0xF == 0x0, c.isFlagSet(FlagCarry))
	return decremented
}

// addN adds the given value, and the carry flag when
// useCarry is true, to the A register.
//
//	ADD A, n
//	ADC A, n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addN(value uint8, useCarry bool) {
	var carry uint8
	if useCarry {
		carry = c.carry()
	}
	sum := uint16(c.A) + uint16(value) + uint16(carry)
	c.setFlags(uint8(sum) == 0, false, bits.HalfCarryAdd(c.A, value, carry), sum > 0xFF)
	c.A = uint8(sum)
}

// subtract returns A minus the given value and the borrow,
// setting the flags without storing the result.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) subtract(value uint8, borrow uint8) uint8 {
	diff := int(c.A) - int(value) - int(borrow)
	c.setFlags(uint8(diff) == 0, true, bits.HalfCarrySub(c.A, value, borrow), diff < 0)
	return uint8(diff)
}

// subN subtracts the given value, and the carry flag when
// useCarry is true, from the A register.
//
//	SUB n
//	SBC A, n
//	n = 8-bit value
func (c *CPU) subN(value uint8, useCarry bool) {
	var borrow uint8
	if useCarry {
		borrow = c.carry()
	}
	c.A = c.subtract(value, borrow)
}

// addHLRR adds the given value to the HL register pair.
//
//	ADD HL, nn
//	nn = 16-bit value
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHLRR(value uint16) {
	hl := c.HL.Uint16()
	sum := uint32(hl) + uint32(value)
	c.setFlags(c.isFlagSet(FlagZero), false, (hl&0xFFF)+(value&0xFFF) > 0xFFF, sum > 0xFFFF)
	c.HL.SetUint16(uint16(sum))
}

// addSPSigned returns SP plus the signed offset. The flags are
// computed from the unsigned addition of the low byte of SP and
// the offset.
//
//	ADD SP, e
//	LD HL, SP+e
//	e = 8-bit signed value
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned(offset uint8) uint16 {
	result := uint16(int32(c.SP) + int32(int8(offset)))
	c.setFlags(false, false, bits.HalfCarryAdd(uint8(c.SP), offset, 0), uint16(uint8(c.SP))+uint16(offset) > 0xFF)
	return result
}

// daa adjusts the A register to hold the binary coded decimal result
// of the previous addition or subtraction.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) daa() {
	carry := c.isFlagSet(FlagCarry)
	if !c.isFlagSet(FlagSubtract) {
		if carry || c.A > 0x99 {
			c.A += 0x60
			carry = true
		}
		if c.isFlagSet(FlagHalfCarry) || c.A&0xF > 0x9 {
			c.A += 0x06
		}
	} else {
		if carry {
			c.A -= 0x60
		}
		if c.isFlagSet(FlagHalfCarry) {
			c.A -= 0x06
		}
	}
	c.setFlags(c.A == 0, c.isFlagSet(FlagSubtract), false, carry)
}

// aluOperations are the operations on A encoded by bits 3-5 of
// 0x80 - 0xBF and of the immediate forms 0xC6 - 0xFE.
var aluOperations = [8]struct {
	name string
	fn   func(c *CPU, value uint8)
}{
	{"ADD A,", func(c *CPU, v uint8) { c.addN(v, false) }},
	{"ADC A,", func(c *CPU, v uint8) { c.addN(v, true) }},
	{"SUB ", func(c *CPU, v uint8) { c.subN(v, false) }},
	{"SBC A,", func(c *CPU, v uint8) { c.subN(v, true) }},
	{"AND ", (*CPU).and},
	{"XOR ", (*CPU).xor},
	{"OR ", (*CPU).or},
	{"CP ", (*CPU).compare},
}

func generateArithmeticInstructions() {
	for i := uint8(0); i < 8; i++ {
		index := i
		name := registerNames[index]
		cycles := uint8(4)
		if index == hlIndex {
			cycles = 12
		}

		// 0x04, 0x0C, ... 0x3C - INC n
		DefineInstruction(0x04+index<<3, "INC "+name, cycles, func(c *CPU) {
			c.setOperand(index, c.increment(c.getOperand(index)))
		})
		// 0x05, 0x0D, ... 0x3D - DEC n
		DefineInstruction(0x05+index<<3, "DEC "+name, cycles, func(c *CPU) {
			c.setOperand(index, c.decrement(c.getOperand(index)))
		})
	}

	for i := uint8(0); i < 4; i++ {
		index := i
		name := pairNames[index]

		// 0x03, 0x13, 0x23, 0x33 - INC nn
		DefineInstruction(0x03+index<<4, "INC "+name, 8, func(c *CPU) {
			c.setPair(index, c.getPair(index)+1)
		})
		// 0x0B, 0x1B, 0x2B, 0x3B - DEC nn
		DefineInstruction(0x0B+index<<4, "DEC "+name, 8, func(c *CPU) {
			c.setPair(index, c.getPair(index)-1)
		})
		// 0x09, 0x19, 0x29, 0x39 - ADD HL, nn
		DefineInstruction(0x09+index<<4, "ADD HL,"+name, 8, func(c *CPU) {
			c.addHLRR(c.getPair(index))
		})
	}

	// 0x80 - 0xBF - ALU A, n
	for op := uint8(0); op < 8; op++ {
		operation := aluOperations[op]
		for i := uint8(0); i < 8; i++ {
			index := i
			cycles := uint8(4)
			if index == hlIndex {
				cycles = 8
			}
			DefineInstruction(0x80+op<<3+index, operation.name+registerNames[index], cycles, func(c *CPU) {
				operation.fn(c, c.getOperand(index))
			})
		}

		// 0xC6, 0xCE, ... 0xFE - ALU A, d8
		DefineInstruction(0xC6+op<<3, operation.name+"d8", 8, func(c *CPU) {
			operation.fn(c, c.readOperand())
		})
	}

	// 0x27 - DAA
	DefineInstruction(0x27, "DAA", 4, (*CPU).daa)
	// 0xE8 - ADD SP, r8
	DefineInstruction(0xE8, "ADD SP,r8", 16, func(c *CPU) {
		c.SP = c.addSPSigned(c.readOperand())
	})
}
