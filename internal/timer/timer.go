// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// bits are the divider bits watched for a falling edge, indexed
// by the clock select of types.TAC.
//
//	00 = 4096 Hz    (bit 9)
//	01 = 262144 Hz  (bit 3)
//	10 = 65536 Hz   (bit 5)
//	11 = 16384 Hz   (bit 7)
var bits = [4]uint16{512, 8, 32, 128}

// Controller is a timer controller. It is used to generate
// interrupts at a specific frequency. The frequency can be
// configured using the types.TAC register.
//
// The controller keeps the 16-bit internal divider, of which
// types.DIV exposes the upper byte. TIMA is incremented every
// time the selected divider bit, ANDed with the enable bit of
// types.TAC, goes from 1 to 0.
type Controller struct {
	div uint16

	tima uint8
	tma  uint8
	tac  uint8

	Enabled    bool
	currentBit uint16
	lastBit    bool

	irq *interrupts.Service
}

// NewController returns a new timer controller, with DIV, TIMA, TMA
// and TAC registered on the bus.
func NewController(b interrupts.HardwareBus, irq *interrupts.Service) *Controller {
	c := &Controller{
		irq:        irq,
		currentBit: bits[0],
	}
	b.RegisterHardware(
		types.DIV,
		func(v uint8) {
			// any write resets the whole divider
			c.div = 0
			c.checkEdge()
		}, func() uint8 {
			return uint8(c.div >> 8)
		},
	)
	b.RegisterHardware(
		types.TIMA,
		func(v uint8) {
			c.tima = v
		}, func() uint8 {
			return c.tima
		},
	)
	b.RegisterHardware(
		types.TMA,
		func(v uint8) {
			c.tma = v
		}, func() uint8 {
			return c.tma
		},
	)
	b.RegisterHardware(
		types.TAC,
		func(v uint8) {
			c.tac = v & 0b111
			c.currentBit = bits[v&0b11]
			c.Enabled = v&0b100 != 0
			// disabling the timer, or selecting a bit that is
			// clear, can be a falling edge of its own
			c.checkEdge()
		}, func() uint8 {
			return c.tac | 0b11111000
		},
	)

	return c
}

// Step advances the timer by the given number of clock cycles.
func (c *Controller) Step(cycles int) {
	for i := 0; i < cycles; i++ {
		c.div++
		c.checkEdge()
	}
}

// checkEdge increments TIMA on a falling edge of the selected
// divider bit.
func (c *Controller) checkEdge() {
	newBit := c.Enabled && c.div&c.currentBit != 0
	if c.lastBit && !newBit {
		c.increment()
	}
	c.lastBit = newBit
}

// increment increments TIMA, reloading it from TMA and
// requesting the timer interrupt when it overflows.
func (c *Controller) increment() {
	c.tima++
	if c.tima == 0 {
		c.tima = c.tma
		c.irq.Request(interrupts.TimerFlag)
	}
}

// Divider returns the internal 16-bit divider.
func (c *Controller) Divider() uint16 {
	return c.div
}

var _ types.Peripheral = (*Controller)(nil)
