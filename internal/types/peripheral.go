package types

// Peripheral is a peripheral device that is advanced in lockstep with
// the CPU, such as the timer, the serial port or the PPU. The driver
// calls Step with the number of clock cycles returned by each call to
// cpu.CPU.Step, so that every peripheral observes exactly the same
// amount of elapsed time as the CPU.
type Peripheral interface {
	// Step advances the peripheral device by the given number of cycles.
	Step(cycles int)
}
