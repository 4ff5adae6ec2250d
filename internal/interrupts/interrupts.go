package interrupts

import (
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/bits"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the PPU enters
	// VBlank mode.
	VBlankFlag = 1 << iota
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested by the LCD STAT register when certain
	// conditions are met.
	LCDFlag
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested when the timer overflows,
	// (types.TIMA > 0xFF).
	TimerFlag
	// SerialFlag is the Serial interrupt flag (bit 3),
	// which is requested when a serial transfer is
	// completed.
	SerialFlag
	// JoypadFlag is the Joypad interrupt Flag (bit 4),
	// which is requested when any of types.P1 bits 0-3
	// go from high to low.
	JoypadFlag
)

const (
	// mask covers the 5 interrupt sources.
	mask = 0x1F

	// vectorBase is the address of the VBlank handler, each
	// following source is 8 bytes further along.
	vectorBase = 0x0040
)

// HardwareBus is the part of the bus used to expose
// the IE and IF registers.
type HardwareBus interface {
	RegisterHardware(address types.HardwareAddress, write func(v uint8), read func() uint8)
}

// Service is the interrupt service, used to request
// interrupts and to get the current interrupt vector.
//
// When an interrupt is requested, the corresponding bit
// in the Flag register is set. When an interrupt is
// enabled, the corresponding bit in the Enable register
// is set. When an interrupt is requested and enabled,
// and the IME is set, the CPU will jump to the interrupt
// vector, and the corresponding bit in the Flag register
// will be cleared.
//
// The IME is set by the EI and RETI instructions, and
// cleared by DI and by servicing an interrupt. It is not
// reachable through the bus.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)

	IME bool
}

// NewService returns a new Service, with IE and IF
// registered on the given bus.
func NewService(b HardwareBus) *Service {
	s := &Service{}
	b.RegisterHardware(
		types.IF,
		func(v uint8) {
			s.Flag = v & mask // only the first 5 bits are used
		}, func() uint8 {
			return s.Flag | 0xE0 // the upper 3 bits are always set
		},
	)
	b.RegisterHardware(
		types.IE,
		func(v uint8) {
			s.Enable = v
		}, func() uint8 {
			return s.Enable
		},
	)

	return s
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled, regardless of the IME.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag&mask != 0
}

// CanInterrupt returns true if an interrupt would be
// dispatched before the next instruction.
func (s *Service) CanInterrupt() bool {
	return s.IME && s.HasInterrupts()
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag & mask
}

// Vector returns the vector of the highest priority interrupt
// that is both requested and enabled, clearing its bit (and only
// its bit) in the Flag register. Priority follows the bit order,
// bit 0 (VBlank) being the highest. ok is false if there is no
// interrupt to service.
func (s *Service) Vector() (vector uint16, ok bool) {
	i := bits.Lowest(s.Enable & s.Flag & mask)
	if i < 0 {
		return 0, false
	}
	s.Flag = bits.Reset(s.Flag, uint8(i))
	return uint16(vectorBase + i*8), true
}
