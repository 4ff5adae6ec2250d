package cpu

import "github.com/thelolagemann/gomeboy-core/pkg/log"

// Opt is a function that configures the CPU.
type Opt func(c *CPU)

// WithLogger sets the logger used for instruction traces.
func WithLogger(l log.Logger) Opt {
	return func(c *CPU) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTrace logs every executed instruction, along with the register
// state after it. Traces are only emitted when the logger is at the
// debug level.
func WithTrace() Opt {
	return func(c *CPU) {
		c.trace = true
	}
}

// WithImmediateEI makes EI enable the IME as soon as it executes,
// rather than after the following instruction.
func WithImmediateEI() Opt {
	return func(c *CPU) {
		c.immediateEI = true
	}
}
