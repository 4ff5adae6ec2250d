package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/mmu"
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

func newTestTimer(t *testing.T) (*Controller, *mmu.MMU, *interrupts.Service) {
	t.Helper()
	m := mmu.NewMMU(nil)
	require.NoError(t, m.EnableIO(false))
	irq := interrupts.NewService(m)
	return NewController(m, irq), m, irq
}

func read(t *testing.T, m *mmu.MMU, address uint16) uint8 {
	t.Helper()
	v, err := m.Read(address)
	require.NoError(t, err)
	return v
}

func TestTimer_Divider(t *testing.T) {
	c, m, _ := newTestTimer(t)

	c.Step(255)
	assert.Equal(t, uint8(0), read(t, m, types.DIV))
	c.Step(1)
	assert.Equal(t, uint8(1), read(t, m, types.DIV))
	c.Step(256 * 10)
	assert.Equal(t, uint8(11), read(t, m, types.DIV))

	// writing any value resets the divider
	require.NoError(t, m.Write(types.DIV, 0x42))
	assert.Equal(t, uint8(0), read(t, m, types.DIV))
	assert.Equal(t, uint16(0), c.Divider())
}

func TestTimer_Frequencies(t *testing.T) {
	tests := []struct {
		tac    uint8
		period int
	}{
		{0b100, 1024},
		{0b101, 16},
		{0b110, 64},
		{0b111, 256},
	}
	for _, tt := range tests {
		c, m, _ := newTestTimer(t)
		require.NoError(t, m.Write(types.TAC, tt.tac))

		c.Step(tt.period - 1)
		assert.Equal(t, uint8(0), read(t, m, types.TIMA), "TAC 0b%03b", tt.tac)
		c.Step(1)
		assert.Equal(t, uint8(1), read(t, m, types.TIMA), "TAC 0b%03b", tt.tac)
		c.Step(tt.period * 9)
		assert.Equal(t, uint8(10), read(t, m, types.TIMA), "TAC 0b%03b", tt.tac)
	}
}

func TestTimer_Disabled(t *testing.T) {
	c, m, _ := newTestTimer(t)
	require.NoError(t, m.Write(types.TAC, 0b001))

	c.Step(4096)
	assert.Equal(t, uint8(0), read(t, m, types.TIMA))
	assert.Equal(t, uint8(0xF9), read(t, m, types.TAC))
}

func TestTimer_Overflow(t *testing.T) {
	c, m, irq := newTestTimer(t)
	require.NoError(t, m.Write(types.TMA, 0xAB))
	require.NoError(t, m.Write(types.TIMA, 0xFF))
	require.NoError(t, m.Write(types.TAC, 0b101))

	c.Step(15)
	assert.Zero(t, irq.Flag&interrupts.TimerFlag)
	c.Step(1)
	assert.Equal(t, uint8(0xAB), read(t, m, types.TIMA))
	assert.Equal(t, uint8(interrupts.TimerFlag), irq.Flag&interrupts.TimerFlag)
}

func TestTimer_DividerResetEdge(t *testing.T) {
	c, m, _ := newTestTimer(t)
	require.NoError(t, m.Write(types.TAC, 0b101))

	// bit 3 of the divider is set, resetting it is a falling edge
	c.Step(8)
	assert.Equal(t, uint8(0), read(t, m, types.TIMA))
	require.NoError(t, m.Write(types.DIV, 0))
	assert.Equal(t, uint8(1), read(t, m, types.TIMA))
}
