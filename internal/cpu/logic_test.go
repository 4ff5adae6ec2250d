package cpu

import "testing"

func TestInstruction_Logic(t *testing.T) {
	tests := []struct {
		name     string
		program  []uint8
		a, b     uint8
		expected uint8
		flags    string
	}{
		{"AND B", []uint8{0xA0}, 0x5A, 0x3F, 0x1A, "--H-"},
		{"AND d8 zero", []uint8{0xE6, 0x00}, 0x5A, 0, 0x00, "Z-H-"},
		{"OR B", []uint8{0xB0}, 0x5A, 0x03, 0x5B, "----"},
		{"OR A zero", []uint8{0xB7}, 0x00, 0, 0x00, "Z---"},
		{"XOR A", []uint8{0xAF}, 0xFF, 0, 0x00, "Z---"},
		{"XOR d8", []uint8{0xEE, 0x0F}, 0xFF, 0, 0xF0, "----"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t, tt.program...)
			c.A, c.B = tt.a, tt.b
			// carry is always reset
			c.setFlags(false, true, false, true)

			step(t, c)
			if c.A != tt.expected {
				t.Errorf("Expected A to be 0x%02X, got 0x%02X", tt.expected, c.A)
			}
			if c.Flags().String() != tt.flags {
				t.Errorf("Expected flags %s, got %s", tt.flags, c.Flags())
			}
		})
	}
}

func TestInstruction_LogicMemory(t *testing.T) {
	c := newTestCPU(t, 0xA6) // AND (HL)
	c.HL.SetUint16(0xC000)
	write(t, c, 0xC000, 0xF0)
	c.A = 0x3C

	if cycles := step(t, c); cycles != 8 {
		t.Errorf("Expected 8 cycles, got %d", cycles)
	}
	if c.A != 0x30 {
		t.Errorf("Expected A to be 0x30, got 0x%02X", c.A)
	}
}

func TestInstruction_Control(t *testing.T) {
	c := newTestCPU(t, 0x2F, 0x37, 0x3F, 0x3F) // CPL, SCF, CCF, CCF
	c.A = 0x35
	c.setFlags(true, false, false, false)

	step(t, c)
	if c.A != 0xCA || c.Flags().String() != "ZNH-" {
		t.Errorf("CPL: expected A 0xCA ZNH-, got 0x%02X %s", c.A, c.Flags())
	}
	step(t, c)
	if c.Flags().String() != "Z--C" {
		t.Errorf("SCF: expected Z--C, got %s", c.Flags())
	}
	step(t, c)
	if c.Flags().String() != "Z---" {
		t.Errorf("CCF: expected Z---, got %s", c.Flags())
	}
	step(t, c)
	if c.Flags().String() != "Z--C" {
		t.Errorf("CCF: expected Z--C, got %s", c.Flags())
	}
}
