package cpu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the CPU.
	ClockSpeed = 4194304

	// interruptCycles is the cost of dispatching an interrupt.
	interruptCycles = 20
	// idleCycles is the cost of a step spent halted or stopped.
	idleCycles = 4
)

// Mode is the execution state of the CPU.
type Mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal Mode = iota
	// ModeHalt is the halt CPU mode, left when an interrupt is pending.
	ModeHalt
	// ModeStop is the stop CPU mode, woken in the same way as halt.
	ModeStop
	// ModeHaltBug is entered by HALT when the IME is clear and an
	// interrupt is already pending. The next byte is read twice.
	ModeHaltBug
)

// Bus is the memory the CPU executes from.
type Bus interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, value uint8) error
}

type (
	Register     = types.Register
	RegisterPair = types.RegisterPair
)

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	types.Registers

	b   Bus
	irq *interrupts.Service
	log log.Logger

	mode Mode

	// eiPending is set by EI, and armed at the start of the next
	// instruction, which enables the IME once it has executed.
	eiPending   bool
	eiArmed     bool
	immediateEI bool

	trace bool

	// cycles spent by the current step
	cycles int
}

// NewCPU creates a new CPU instance executing from the given bus, with
// the registers set to their power-on values.
func NewCPU(b Bus, irq *interrupts.Service, opts ...Opt) *CPU {
	c := &CPU{
		b:   b,
		irq: irq,
		log: log.NewNullLogger(),
	}
	c.Registers.Pair()
	for _, opt := range opts {
		opt(c)
	}
	c.trace = c.trace && log.IsDebug(c.log)
	c.Reset()

	return c
}

// Reset sets the registers to the values left by the boot ROM, and
// returns the CPU to normal mode with interrupts disabled.
func (c *CPU) Reset() {
	c.PC = 0x0100
	c.SP = 0xFFFE
	c.AF.SetUint16(0x01B0)
	c.BC.SetUint16(0x0013)
	c.DE.SetUint16(0x00D8)
	c.HL.SetUint16(0x014D)

	c.mode = ModeNormal
	c.eiPending = false
	c.eiArmed = false
	c.irq.IME = false
}

// Mode returns the current execution mode.
func (c *CPU) Mode() Mode {
	return c.mode
}

// Halted returns true if the CPU is waiting for an interrupt, either
// from HALT or STOP.
func (c *CPU) Halted() bool {
	return c.mode == ModeHalt || c.mode == ModeStop
}

// Step executes a single instruction, or services a single interrupt,
// and returns the number of clock cycles it took. A bus fault stops the
// instruction where it occurred and is returned as the error, with the
// side effects up to the fault kept.
func (c *CPU) Step() (cycles int, err error) {
	c.cycles = 0
	pc := c.PC

	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(fault)
			if !ok {
				panic(r)
			}
			cycles, err = c.cycles, fmt.Errorf("cpu: fault executing at 0x%04X: %w", pc, f.err)
		}
	}()

	// interrupts are serviced before the next instruction is fetched,
	// and wake the CPU from halt and stop
	if c.irq.CanInterrupt() {
		c.executeInterrupt()
		return c.cycles, nil
	}

	switch c.mode {
	case ModeHalt, ModeStop:
		if !c.irq.HasInterrupts() {
			c.cycles = idleCycles
			return c.cycles, nil
		}
		// woken without the IME, execution carries on after HALT
		c.mode = ModeNormal
	}

	c.eiArmed, c.eiPending = c.eiPending, false

	opcode := c.readInstruction()
	if c.mode == ModeHaltBug {
		// the PC fails to increment after the fetch
		c.PC--
		c.mode = ModeNormal
	}

	if opcode == 0xCB {
		err = c.runInstruction(&InstructionSetCB[c.readOperand()], pc, true)
	} else {
		err = c.runInstruction(&InstructionSet[opcode], pc, false)
	}
	if err != nil {
		return c.cycles, err
	}

	if c.eiArmed {
		c.irq.IME = true
		c.eiArmed = false
	}

	return c.cycles, nil
}

// runInstruction executes the instruction decoded at pc.
func (c *CPU) runInstruction(instruction *Instruction, pc uint16, prefixed bool) error {
	if instruction.fn == nil {
		opcode, _ := c.b.Read(pc)
		if prefixed {
			opcode, _ = c.b.Read(pc + 1)
		}
		return &UnimplementedOpcodeError{Opcode: opcode, Prefixed: prefixed, PC: pc}
	}

	c.cycles += int(instruction.cycles)
	instruction.fn(c)

	if c.trace {
		c.log.Debugf("%-14s PC: 0x%04X A: 0x%02X F: 0x%02X BC: 0x%04X DE: 0x%04X HL: 0x%04X SP: 0x%04X (%d cycles)",
			instruction.name, pc, c.A, c.F, c.BC.Uint16(), c.DE.Uint16(), c.HL.Uint16(), c.SP, c.cycles)
	}

	return nil
}

// tick adds the extra cycles spent by a taken branch.
func (c *CPU) tick(cycles int) {
	c.cycles += cycles
}

// readInstruction reads the next instruction from memory.
func (c *CPU) readInstruction() uint8 {
	return c.readOperand()
}

// readOperand reads the byte at the PC and increments the PC.
func (c *CPU) readOperand() uint8 {
	value := c.readByte(c.PC)
	c.PC++
	return value
}

// readOperand16 reads a little-endian 16-bit immediate value.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return uint16(high)<<8 | uint16(low)
}

// fault carries a bus error up to Step.
type fault struct {
	err error
}

// readByte reads a byte from memory.
func (c *CPU) readByte(addr uint16) uint8 {
	value, err := c.b.Read(addr)
	if err != nil {
		panic(fault{err})
	}
	return value
}

// writeByte writes the given value to the given address.
func (c *CPU) writeByte(addr uint16, val uint8) {
	if err := c.b.Write(addr, val); err != nil {
		panic(fault{err})
	}
}
