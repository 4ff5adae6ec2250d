package mmu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// HardwareRegister represents a hardware register of the Game
// Boy. The hardware registers are used to control and read the
// state of the hardware, and are owned by the component that
// registered them.
type HardwareRegister struct {
	address types.HardwareAddress
	write   func(v uint8)
	read    func() uint8
}

// Read returns the value of the hardware register. Registers
// without a read function read as 0xFF, as on hardware.
func (h *HardwareRegister) Read() uint8 {
	if h.read == nil {
		return 0xFF
	}
	return h.read()
}

// Write writes the value to the hardware register. Writes to
// registers without a write function are ignored.
func (h *HardwareRegister) Write(value uint8) {
	if h.write != nil {
		h.write(value)
	}
}

// hardwareRegisters is the I/O window of the bus, 0xFF00 - 0xFF7F and
// 0xFFFF. The slice is indexed by the address ANDed with 0x007F, which
// places IE at index 0x7F, an address (0xFF7F) that has no register.
type hardwareRegisters struct {
	registers [0x80]*HardwareRegister

	// backing holds values written to unregistered addresses when the
	// window is lenient. nil when strict.
	backing *[0x80]uint8
}

func hardwareIndex(address uint16) (int, bool) {
	if address == types.IE {
		return 0x7F, true
	}
	if address >= types.IOStart && address < types.IOStart+types.IOSize && address != 0xFF7F {
		return int(address & 0x007F), true
	}
	return 0, false
}

func (h *hardwareRegisters) Read(address uint16) (uint8, error) {
	i, ok := hardwareIndex(address)
	if !ok {
		return 0, &UnmappedAddressError{Address: address}
	}
	if r := h.registers[i]; r != nil {
		return r.Read(), nil
	}
	if h.backing != nil {
		return h.backing[i], nil
	}
	return 0, &UnmappedAddressError{Address: address}
}

func (h *hardwareRegisters) Write(address uint16, value uint8) error {
	i, ok := hardwareIndex(address)
	if !ok {
		return &UnmappedAddressError{Address: address, Write: true}
	}
	if r := h.registers[i]; r != nil {
		r.Write(value)
		return nil
	}
	if h.backing != nil {
		h.backing[i] = value
		return nil
	}
	return &UnmappedAddressError{Address: address, Write: true}
}

// RegisterHardware registers a hardware register at the given address,
// with the given write and read functions. Either function may be nil,
// in which case the register is read-only (writes ignored) or
// write-only (reads as 0xFF) respectively.
//
// Registering the same address twice is a programming error and panics.
func (m *MMU) RegisterHardware(address types.HardwareAddress, write func(v uint8), read func() uint8) {
	i, ok := hardwareIndex(address)
	if !ok {
		panic(fmt.Sprintf("mmu: 0x%04X is not a hardware register address", address))
	}
	if m.hardware.registers[i] != nil {
		panic(fmt.Sprintf("mmu: hardware register 0x%04X has already been registered", address))
	}
	m.hardware.registers[i] = &HardwareRegister{
		address: address,
		write:   write,
		read:    read,
	}
}

// HasHardware returns true if a hardware register has been registered
// at the given address.
func (m *MMU) HasHardware(address types.HardwareAddress) bool {
	i, ok := hardwareIndex(address)
	return ok && m.hardware.registers[i] != nil
}
