package cpu

// Instruction is a single entry of the dispatch tables.
type Instruction struct {
	name string
	// cycles is the cost in clock cycles. For conditional branches it
	// is the cost of the branch not taken, the handler adds the rest.
	cycles uint8
	fn     func(*CPU)
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

// Cycles returns the base cost of the instruction in clock cycles.
func (i Instruction) Cycles() int {
	return int(i.cycles)
}

// Implemented returns true if the instruction can be executed.
func (i Instruction) Implemented() bool {
	return i.fn != nil
}

var (
	// InstructionSet holds the unprefixed instructions, indexed by opcode.
	InstructionSet = [256]Instruction{}
	// InstructionSetCB holds the instructions following the 0xCB prefix.
	InstructionSetCB = [256]Instruction{}
)

// DefineInstruction defines the instruction in the InstructionSet, with
// the provided opcode.
func DefineInstruction(opcode uint8, name string, cycles uint8, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{name: name, cycles: cycles, fn: fn}
}

// DefineInstructionCB defines the instruction in the InstructionSetCB,
// with the provided opcode.
func DefineInstructionCB(opcode uint8, name string, cycles uint8, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{name: name, cycles: cycles, fn: fn}
}

// Coverage returns the opcodes of the primary and the prefixed tables
// that have no instruction defined.
func Coverage() (primary, prefixed []uint8) {
	for i := 0; i < 256; i++ {
		if !InstructionSet[i].Implemented() {
			primary = append(primary, uint8(i))
		}
		if !InstructionSetCB[i].Implemented() {
			prefixed = append(prefixed, uint8(i))
		}
	}
	return primary, prefixed
}

// registerNames are the operands encoded in the low 3 bits of most
// opcodes, in encoding order.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// hlIndex is the operand index that addresses memory at HL.
const hlIndex = 6

// registerPointer returns a Register pointer for the given index. The
// (HL) index is not a register and returns nil.
func (c *CPU) registerPointer(index uint8) *Register {
	switch index {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	return nil
}

// getOperand returns the value of the operand at index, reading memory
// for (HL).
func (c *CPU) getOperand(index uint8) uint8 {
	if index == hlIndex {
		return c.readByte(c.HL.Uint16())
	}
	return *c.registerPointer(index)
}

// setOperand stores value to the operand at index, writing memory
// for (HL).
func (c *CPU) setOperand(index uint8, value uint8) {
	if index == hlIndex {
		c.writeByte(c.HL.Uint16(), value)
		return
	}
	*c.registerPointer(index) = value
}

// pairNames are the 16-bit operands of LD rr,d16, INC rr, DEC rr and
// ADD HL,rr, in encoding order.
var pairNames = [4]string{"BC", "DE", "HL", "SP"}

// getPair returns the 16-bit operand at index, 3 being SP.
func (c *CPU) getPair(index uint8) uint16 {
	switch index {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		return c.HL.Uint16()
	}
	return c.SP
}

// setPair stores value to the 16-bit operand at index, 3 being SP.
func (c *CPU) setPair(index uint8, value uint16) {
	switch index {
	case 0:
		c.BC.SetUint16(value)
	case 1:
		c.DE.SetUint16(value)
	case 2:
		c.HL.SetUint16(value)
	default:
		c.SP = value
	}
}

func init() {
	// Step decodes the prefix itself, the cost is held by the
	// prefixed instruction
	DefineInstruction(0xCB, "PREFIX CB", 0, func(*CPU) {})

	generateLoadInstructions()
	generateArithmeticInstructions()
	generateLogicInstructions()
	generateJumpInstructions()
	generateRotateInstructions()
	generateShiftInstructions()
	generateBitInstructions()
	generateControlInstructions()
}
