// Package bits provides helpers for manipulating individual bits of
// unsigned integers.
package bits

import "golang.org/x/exp/constraints"

// Val returns the value of the bit at the given index.
func Val[T constraints.Unsigned](b T, i uint8) T {
	return (b >> i) & 1
}

// Reset resets the bit at the given index.
func Reset[T constraints.Unsigned](b T, i uint8) T {
	return b &^ (1 << i)
}

// Set sets the bit at the given index.
func Set[T constraints.Unsigned](b T, i uint8) T {
	return b | (1 << i)
}

// Test tests the bit at the given index.
func Test[T constraints.Unsigned](b T, i uint8) bool {
	return (b>>i)&1 != 0
}

// Lowest returns the index of the lowest set bit of b, or -1 if no bit
// is set.
func Lowest[T constraints.Unsigned](b T) int {
	for i := 0; b != 0; i++ {
		if b&1 == 1 {
			return i
		}
		b >>= 1
	}
	return -1
}

// HalfCarryAdd reports whether adding a, b and carry overflows
// the low nibble.
func HalfCarryAdd(a, b, carry uint8) bool {
	return (a&0xF)+(b&0xF)+carry > 0xF
}

// HalfCarrySub reports whether subtracting b and borrow from a
// borrows from bit 4.
func HalfCarrySub(a, b, borrow uint8) bool {
	return int(a&0xF)-int(b&0xF)-int(borrow) < 0
}
