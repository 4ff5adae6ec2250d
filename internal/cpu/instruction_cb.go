package cpu

// generateReadModifyWrite defines the 8 prefixed instructions starting
// at base, one per operand, that replace the operand with the result of
// fn. The (HL) form reads and writes memory, which doubles the cost.
func generateReadModifyWrite(base uint8, name string, fn func(*CPU, uint8) uint8) {
	for i := uint8(0); i < 8; i++ {
		index := i
		cycles := uint8(8)
		if index == hlIndex {
			cycles = 16
		}
		DefineInstructionCB(base+index, name+" "+registerNames[index], cycles, func(c *CPU) {
			c.setOperand(index, fn(c, c.getOperand(index)))
		})
	}
}
