package types

// Register represents a GB Register which is used to hold an 8-bit value.
// The CPU has 8 registers: A, B, C, D, E, H, L, and F. The F register is
// special in that it is used to hold the flags.
type Register = uint8

// RegisterPair represents a pair of GB Registers which is used to hold a 16-bit
// value. The CPU has 4 register pairs: AF, BC, DE, and HL. The pair does not
// own any storage, it is a view over the two registers it points to, so a
// read always reflects the latest write to either half.
type RegisterPair struct {
	High *Register
	Low  *Register

	// mask is applied to the low byte on SetUint16, which allows
	// AF to keep the lower nibble of F clear.
	mask uint8
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value) & r.mask
}

// Registers represents the GB CPU registers.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register

	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
	AF *RegisterPair
}

// Pair creates the 16-bit views over the 8-bit registers. It must be
// called once the Registers have reached their final location in
// memory, as the views hold pointers to the individual registers.
func (r *Registers) Pair() {
	r.BC = &RegisterPair{High: &r.B, Low: &r.C, mask: 0xFF}
	r.DE = &RegisterPair{High: &r.D, Low: &r.E, mask: 0xFF}
	r.HL = &RegisterPair{High: &r.H, Low: &r.L, mask: 0xFF}
	r.AF = &RegisterPair{High: &r.A, Low: &r.F, mask: 0xF0}
}
