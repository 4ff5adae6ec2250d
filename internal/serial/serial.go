// Package serial provides the serial port of the Game Boy, with no
// link cable attached. Bytes sent with the internal clock complete
// straight away and are captured, which is how test ROMs report their
// results.
package serial

import (
	"bytes"

	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// SC bits.
const (
	clockSelect   = 0x01
	transferStart = 0x80
)

// Controller is the serial controller. Before a transfer, data holds
// the next byte to be sent (types.SB). With nothing attached the
// incoming bits all read as 1, so once a transfer completes data is
// 0xFF.
type Controller struct {
	data    uint8
	control uint8

	InternalClock   bool // if true, this controller is the master.
	TransferRequest bool // if true, a transfer has been requested.

	out bytes.Buffer
	irq *interrupts.Service
}

// NewController creates a new Controller, with SB and SC registered on
// the bus.
func NewController(b interrupts.HardwareBus, irq *interrupts.Service) *Controller {
	c := &Controller{irq: irq}
	b.RegisterHardware(
		types.SB,
		func(v uint8) {
			c.data = v
		}, func() uint8 {
			return c.data
		},
	)
	b.RegisterHardware(
		types.SC,
		func(v uint8) {
			c.control = v & (transferStart | clockSelect)
			c.InternalClock = v&clockSelect != 0
			c.TransferRequest = v&transferStart != 0

			// without a clock from the other side, a transfer only
			// progresses when this controller is the master
			if c.TransferRequest && c.InternalClock {
				c.transfer()
			}
		}, func() uint8 {
			return c.control | 0x7E // bits 1-6 are always set
		},
	)
	return c
}

// transfer completes the transfer, capturing the outgoing byte and
// requesting the serial interrupt.
func (c *Controller) transfer() {
	c.out.WriteByte(c.data)
	c.data = 0xFF

	c.TransferRequest = false
	c.control &^= transferStart
	c.irq.Request(interrupts.SerialFlag)
}

// Output returns every byte sent so far.
func (c *Controller) Output() string {
	return c.out.String()
}

// Reset discards the captured output.
func (c *Controller) Reset() {
	c.out.Reset()
}
