package mmu

import (
	"errors"
	"fmt"
)

// ErrUnmappedAddress is matched by every UnmappedAddressError.
var ErrUnmappedAddress = errors.New("mmu: unmapped address")

// UnmappedAddressError is returned when the bus is accessed at an
// address that no region has been mapped to.
type UnmappedAddressError struct {
	Address uint16
	Write   bool
}

func (e *UnmappedAddressError) Error() string {
	op := "read from"
	if e.Write {
		op = "write to"
	}
	return fmt.Sprintf("mmu: %s unmapped address 0x%04X", op, e.Address)
}

// Is reports whether target is ErrUnmappedAddress.
func (e *UnmappedAddressError) Is(target error) bool {
	return target == ErrUnmappedAddress
}

// OverlapError is returned when a region is mapped over an address
// that already belongs to another region.
type OverlapError struct {
	Name     string
	Existing string
	Address  uint16
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("mmu: region %q overlaps %q at 0x%04X", e.Name, e.Existing, e.Address)
}
