// Package mmu provides a memory management unit for the Game Boy. The
// MMU is unaware of the other components, and routes all the memory
// reads and writes to the region that owns the address, or to the
// hardware register registered by a component for the I/O window.
package mmu

import (
	"fmt"
	"sort"

	"github.com/thelolagemann/gomeboy-core/internal/ram"
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
)

// addressSpace is the size of the 16-bit address space.
const addressSpace = 0x10000

// mapping is a contiguous range of the address space owned by a
// single target.
type mapping struct {
	name     string
	start    uint16
	size     int
	target   ram.RAM
	offset   int // subtracted from the bus address before it reaches target
	readOnly bool
}

// RegionInfo describes a mapped range of the address space.
type RegionInfo struct {
	Name     string
	Start    uint16
	End      uint16 // inclusive
	ReadOnly bool
	Alias    bool
}

// RegionOpt configures a region when it is mapped.
type RegionOpt func(*mapping)

// ReadOnly discards writes to the region, as the cartridge ROM does
// without a memory bank controller attached.
func ReadOnly() RegionOpt {
	return func(m *mapping) {
		m.readOnly = true
	}
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory, and
// delegates to the regions and hardware registers mapped to it. Every
// MMU owns its own regions and registers, so multiple instances never
// share state.
type MMU struct {
	// 64kB address space
	raw [addressSpace]*mapping

	mappings []*mapping

	// 0xFF00 - 0xFF7F - I/O Registers
	// (0xFFFF) - interrupt enable register
	hardware hardwareRegisters

	Log log.Logger
}

// NewMMU returns a new MMU with nothing mapped.
func NewMMU(logger log.Logger) *MMU {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &MMU{
		Log: logger,
	}
}

// AddRegion maps the region to the addresses it covers, starting at its
// base address.
func (m *MMU) AddRegion(name string, r *ram.Region, opts ...RegionOpt) error {
	return m.mapRange(&mapping{name: name, start: r.Base(), size: r.Size(), target: r}, opts...)
}

// Alias maps size bytes starting at start onto the target region, so
// that start reads and writes the first byte of target. This is used
// for echo RAM, which mirrors work RAM.
func (m *MMU) Alias(name string, start uint16, size int, target *ram.Region) error {
	return m.mapRange(&mapping{
		name:   name,
		start:  start,
		size:   size,
		target: target,
		offset: int(start) - int(target.Base()),
	})
}

// EnableIO maps the I/O window (0xFF00 - 0xFF7F and 0xFFFF) to the
// hardware registers. When lenient, addresses in the window with no
// registered hardware behave like plain memory instead of failing with
// an UnmappedAddressError.
func (m *MMU) EnableIO(lenient bool) error {
	if lenient {
		m.hardware.backing = new([0x80]uint8)
	}
	if err := m.mapRange(&mapping{name: "io", start: types.IOStart, size: types.IOSize - 1, target: &m.hardware}); err != nil {
		return err
	}
	return m.mapRange(&mapping{name: "ie", start: types.IE, size: 1, target: &m.hardware})
}

func (m *MMU) mapRange(mp *mapping, opts ...RegionOpt) error {
	for _, opt := range opts {
		opt(mp)
	}
	if mp.size <= 0 || int(mp.start)+mp.size > addressSpace {
		return fmt.Errorf("mmu: region %q [0x%04X, +0x%X) does not fit the address space", mp.name, mp.start, mp.size)
	}
	for i := int(mp.start); i < int(mp.start)+mp.size; i++ {
		if existing := m.raw[i]; existing != nil {
			return &OverlapError{Name: mp.name, Existing: existing.name, Address: uint16(i)}
		}
	}
	for i := int(mp.start); i < int(mp.start)+mp.size; i++ {
		m.raw[i] = mp
	}
	m.mappings = append(m.mappings, mp)
	sort.Slice(m.mappings, func(i, j int) bool {
		return m.mappings[i].start < m.mappings[j].start
	})
	return nil
}

// Regions returns the mapped ranges of the address space, in
// ascending address order.
func (m *MMU) Regions() []RegionInfo {
	infos := make([]RegionInfo, 0, len(m.mappings))
	for _, mp := range m.mappings {
		infos = append(infos, RegionInfo{
			Name:     mp.name,
			Start:    mp.start,
			End:      uint16(int(mp.start) + mp.size - 1),
			ReadOnly: mp.readOnly,
			Alias:    mp.offset != 0,
		})
	}
	return infos
}

// Read returns the value at the given address.
func (m *MMU) Read(address uint16) (uint8, error) {
	mp := m.raw[address]
	if mp == nil {
		return 0, &UnmappedAddressError{Address: address}
	}
	return mp.target.Read(uint16(int(address) - mp.offset))
}

// Write writes the value to the given address. Writes to a read-only
// region are discarded.
func (m *MMU) Write(address uint16, value uint8) error {
	mp := m.raw[address]
	if mp == nil {
		return &UnmappedAddressError{Address: address, Write: true}
	}
	if mp.readOnly {
		m.Log.Debugf("mmu: discarded write of 0x%02X to read-only %s at 0x%04X", value, mp.name, address)
		return nil
	}
	return mp.target.Write(uint16(int(address)-mp.offset), value)
}

// Read16 returns the little-endian 16-bit value at address, the low
// byte being at address and the high byte at address+1.
func (m *MMU) Read16(address uint16) (uint16, error) {
	low, err := m.Read(address)
	if err != nil {
		return 0, err
	}
	high, err := m.Read(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}

// Write16 writes value in little-endian order, the low byte to
// address and the high byte to address+1.
func (m *MMU) Write16(address uint16, value uint16) error {
	if err := m.Write(address, uint8(value)); err != nil {
		return err
	}
	return m.Write(address+1, uint8(value>>8))
}

// Mapped returns true if the address belongs to a region, or to a
// hardware register in the I/O window.
func (m *MMU) Mapped(address uint16) bool {
	mp := m.raw[address]
	if mp == nil {
		return false
	}
	if mp.target == &m.hardware {
		i, _ := hardwareIndex(address)
		return m.hardware.registers[i] != nil || m.hardware.backing != nil
	}
	return true
}
