package cpu

import "testing"

func TestFlags(t *testing.T) {
	c := newTestCPU(t)

	c.setFlags(true, false, true, false)
	if c.F != 0xA0 {
		t.Errorf("Expected F to be 0xA0, got 0x%02X", c.F)
	}

	f := c.Flags()
	if !f.Z() || f.N() || !f.H() || f.C() {
		t.Errorf("Expected flags Z-H-, got %s", f)
	}

	f.SetC(true)
	f.SetZ(false)
	if c.F != 0x30 {
		t.Errorf("Expected F to be 0x30, got 0x%02X", c.F)
	}

	// writes to F are seen by the view
	c.F = 0x40
	if f.String() != "-N--" {
		t.Errorf("Expected flags -N--, got %s", f)
	}
}

func TestFlags_Independent(t *testing.T) {
	c := newTestCPU(t)
	flags := []Flag{FlagZero, FlagSubtract, FlagHalfCarry, FlagCarry}

	for _, flag := range flags {
		c.F = 0
		c.setFlag(flag, true)
		for _, other := range flags {
			if other != flag && c.isFlagSet(other) {
				t.Errorf("setting flag %d also set flag %d", flag, other)
			}
		}
		if c.F&0x0F != 0 {
			t.Errorf("Expected lower nibble of F to be clear, got 0x%02X", c.F)
		}
	}
}
