package cpu

// executeInterrupt services the highest priority pending interrupt. The
// IME is cleared, the PC pushed to the stack and execution continues at
// the vector of the interrupt, which also wakes the CPU from halt.
func (c *CPU) executeInterrupt() {
	vector, ok := c.irq.Vector()
	if !ok {
		return
	}
	c.irq.IME = false
	c.eiPending = false
	c.mode = ModeNormal
	c.cycles = interruptCycles

	c.pushStack(c.PC)
	c.PC = vector

	if c.trace {
		c.log.Debugf("interrupt 0x%04X, SP: 0x%04X", vector, c.SP)
	}
}
