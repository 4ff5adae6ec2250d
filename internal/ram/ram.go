// Package ram provides a basic RAM implementation. A Region is a fixed
// size block of bytes that is addressed with the absolute address of the
// bus it is attached to, rather than an index into the block.
package ram

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is matched by every OutOfBoundsError.
var ErrOutOfBounds = errors.New("ram: address out of bounds")

// OutOfBoundsError is returned when an address is computed within the
// range a Region was mapped to, but falls outside its storage. This can
// only happen when a Region was sized incorrectly for the range it was
// mapped to, and should be treated as a programming error.
type OutOfBoundsError struct {
	Address uint16
	Base    uint16
	Size    int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("ram: address 0x%04X outside region [0x%04X, 0x%04X)", e.Address, e.Base, int(e.Base)+e.Size)
}

// Is reports whether target is ErrOutOfBounds.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// RAM represents a block of RAM.
type RAM interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, value uint8) error
}

// Region is a block of RAM that starts at Base.
type Region struct {
	base uint16
	data []byte
}

var _ RAM = (*Region)(nil)

// NewRegion returns a new Region of the given size, whose first
// byte is addressed by base.
func NewRegion(base uint16, size int) *Region {
	return &Region{
		base: base,
		data: make([]byte, size),
	}
}

// Base returns the address of the first byte of the Region.
func (r *Region) Base() uint16 {
	return r.base
}

// Size returns the capacity of the Region in bytes.
func (r *Region) Size() int {
	return len(r.data)
}

func (r *Region) index(address uint16) (int, error) {
	i := int(address) - int(r.base)
	if i < 0 || i >= len(r.data) {
		return 0, &OutOfBoundsError{Address: address, Base: r.base, Size: len(r.data)}
	}
	return i, nil
}

// Read returns the value at the given address.
func (r *Region) Read(address uint16) (uint8, error) {
	i, err := r.index(address)
	if err != nil {
		return 0, err
	}
	return r.data[i], nil
}

// Write writes the value to the given address.
func (r *Region) Write(address uint16, value uint8) error {
	i, err := r.index(address)
	if err != nil {
		return err
	}
	r.data[i] = value
	return nil
}

// Load copies data into the Region starting at its base. Data that
// does not fit is reported as an OutOfBoundsError and nothing is copied.
func (r *Region) Load(data []byte) error {
	if len(data) > len(r.data) {
		return &OutOfBoundsError{Address: r.base + uint16(len(r.data)), Base: r.base, Size: len(r.data)}
	}
	copy(r.data, data)
	return nil
}

// Bytes returns the underlying storage of the Region. The returned
// slice aliases the Region.
func (r *Region) Bytes() []byte {
	return r.data
}
