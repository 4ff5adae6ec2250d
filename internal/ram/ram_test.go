package ram

import (
	"errors"
	"testing"
)

func TestRegion(t *testing.T) {
	r := NewRegion(0xC000, 0x2000)

	t.Run("read write", func(t *testing.T) {
		if err := r.Write(0xC010, 0x42); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		v, err := r.Read(0xC010)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 0x42 {
			t.Errorf("expected 0x42, got 0x%02X", v)
		}
	})
	t.Run("bounds", func(t *testing.T) {
		for _, addr := range []uint16{0xBFFF, 0xE000, 0x0000, 0xFFFF} {
			_, err := r.Read(addr)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("expected out of bounds reading 0x%04X, got %v", addr, err)
			}
			if err := r.Write(addr, 0); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("expected out of bounds writing 0x%04X, got %v", addr, err)
			}
		}
		var oob *OutOfBoundsError
		_, err := r.Read(0xE000)
		if !errors.As(err, &oob) || oob.Address != 0xE000 || oob.Base != 0xC000 || oob.Size != 0x2000 {
			t.Errorf("unexpected error detail: %+v", oob)
		}
	})
	t.Run("edges", func(t *testing.T) {
		if _, err := r.Read(0xC000); err != nil {
			t.Errorf("first byte should be readable: %v", err)
		}
		if _, err := r.Read(0xDFFF); err != nil {
			t.Errorf("last byte should be readable: %v", err)
		}
	})
	t.Run("load", func(t *testing.T) {
		small := NewRegion(0x0000, 4)
		if err := small.Load([]byte{1, 2, 3}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if small.Bytes()[2] != 3 {
			t.Errorf("expected 3, got %d", small.Bytes()[2])
		}
		if err := small.Load([]byte{1, 2, 3, 4, 5}); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("expected oversized load to fail, got %v", err)
		}
	})
}
