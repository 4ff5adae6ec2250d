package cpu

// Flag is the bit index of a flag in the F register.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// setFlags replaces the F register with the given flags, the lower
// nibble is always left clear.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F = 0
	c.setFlag(FlagZero, zero)
	c.setFlag(FlagSubtract, subtract)
	c.setFlag(FlagHalfCarry, halfCarry)
	c.setFlag(FlagCarry, carry)
}

// setFlag sets a flag to the given value.
func (c *CPU) setFlag(flag Flag, value bool) {
	if value {
		c.F |= 1 << flag
	} else {
		c.F &^= 1 << flag
	}
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&(1<<flag) != 0
}

// carry returns the carry flag as 0 or 1.
func (c *CPU) carry() uint8 {
	return c.F >> FlagCarry & 1
}

// Flags is a boolean view of the F register. It holds no state of its
// own, so it always agrees with F.
type Flags struct {
	c *CPU
}

// Flags returns a view over the flags of the CPU.
func (c *CPU) Flags() Flags {
	return Flags{c}
}

func (f Flags) Z() bool { return f.c.isFlagSet(FlagZero) }
func (f Flags) N() bool { return f.c.isFlagSet(FlagSubtract) }
func (f Flags) H() bool { return f.c.isFlagSet(FlagHalfCarry) }
func (f Flags) C() bool { return f.c.isFlagSet(FlagCarry) }

func (f Flags) SetZ(v bool) { f.c.setFlag(FlagZero, v) }
func (f Flags) SetN(v bool) { f.c.setFlag(FlagSubtract, v) }
func (f Flags) SetH(v bool) { f.c.setFlag(FlagHalfCarry, v) }
func (f Flags) SetC(v bool) { f.c.setFlag(FlagCarry, v) }

// String formats the flags in ZNHC order, a cleared flag printed as "-".
func (f Flags) String() string {
	s := []byte("----")
	for i, flag := range []Flag{FlagZero, FlagSubtract, FlagHalfCarry, FlagCarry} {
		if f.c.isFlagSet(flag) {
			s[i] = "ZNHC"[i]
		}
	}
	return string(s)
}
