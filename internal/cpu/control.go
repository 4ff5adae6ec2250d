package cpu

// halt suspends execution until an interrupt is pending. With the IME
// clear and an interrupt already pending, the CPU does not halt and
// instead fails to increment the PC after the next fetch. When EI came
// right before, the interrupt is serviced first and returns to the
// HALT, which then executes again.
//
//	HALT
func (c *CPU) halt() {
	if !c.irq.IME && c.irq.HasInterrupts() {
		if c.eiArmed {
			c.PC--
			return
		}
		c.mode = ModeHaltBug
		return
	}
	c.mode = ModeHalt
}

// stop suspends execution like halt. The byte following the opcode is
// part of the instruction and is skipped.
//
//	STOP 0
func (c *CPU) stop() {
	c.readOperand()
	c.mode = ModeStop
}

// enableInterrupts sets the IME once the following instruction has
// executed, or straight away when configured with WithImmediateEI.
//
//	EI
func (c *CPU) enableInterrupts() {
	if c.immediateEI {
		c.irq.IME = true
		return
	}
	c.eiPending = true
}

// disableInterrupts clears the IME, along with any EI still waiting to
// take effect.
//
//	DI
func (c *CPU) disableInterrupts() {
	c.irq.IME = false
	c.eiPending = false
	c.eiArmed = false
}

func generateControlInstructions() {
	// 0x00 - NOP
	DefineInstruction(0x00, "NOP", 4, func(c *CPU) {})
	// 0x10 - STOP
	DefineInstruction(0x10, "STOP 0", 4, (*CPU).stop)
	// 0x76 - HALT
	DefineInstruction(0x76, "HALT", 4, (*CPU).halt)
	// 0xF3 - DI
	DefineInstruction(0xF3, "DI", 4, (*CPU).disableInterrupts)
	// 0xFB - EI
	DefineInstruction(0xFB, "EI", 4, (*CPU).enableInterrupts)
}
