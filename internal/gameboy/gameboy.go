// Package gameboy composes the components of the Game Boy into a
// machine that can be stepped. Every GameBoy owns its own bus, memory
// and registers, so any number of them can run side by side.
package gameboy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"

	"github.com/thelolagemann/gomeboy-core/internal/cartridge"
	"github.com/thelolagemann/gomeboy-core/internal/config"
	"github.com/thelolagemann/gomeboy-core/internal/cpu"
	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/mmu"
	"github.com/thelolagemann/gomeboy-core/internal/ram"
	"github.com/thelolagemann/gomeboy-core/internal/serial"
	"github.com/thelolagemann/gomeboy-core/internal/timer"
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
	"github.com/thelolagemann/gomeboy-core/pkg/utils"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = 70224
)

// ErrHalted is returned by a run when the CPU is halted with no
// interrupt enabled, and can therefore never wake.
var ErrHalted = errors.New("gameboy: halted with no interrupt enabled")

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	Interrupts *interrupts.Service
	Timer      *timer.Controller
	Serial     *serial.Controller

	// Header of the loaded ROM, nil when the ROM is too small to
	// carry one.
	Header *cartridge.Header

	log.Logger

	config      *config.Config
	regions     map[string]*ram.Region
	peripherals []types.Peripheral
	debug       bool

	cycles uint64
}

// NewGameBoy returns a new GameBoy, built from the default
// configuration unless WithConfig is given.
func NewGameBoy(opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Logger:  log.NewNullLogger(),
		config:  config.Default(),
		regions: make(map[string]*ram.Region),
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.config.Validate(); err != nil {
		return nil, err
	}

	g.MMU = mmu.NewMMU(g.Logger)
	if err := g.mapMemory(); err != nil {
		return nil, err
	}

	g.Interrupts = interrupts.NewService(g.MMU)
	g.Timer = timer.NewController(g.MMU, g.Interrupts)
	g.Serial = serial.NewController(g.MMU, g.Interrupts)
	g.peripherals = []types.Peripheral{g.Timer}

	cpuOpts := []cpu.Opt{cpu.WithLogger(g.Logger)}
	if g.config.CPU.Trace || g.debug {
		cpuOpts = append(cpuOpts, cpu.WithTrace())
	}
	if g.config.CPU.ImmediateEI {
		cpuOpts = append(cpuOpts, cpu.WithImmediateEI())
	}
	g.CPU = cpu.NewCPU(g.MMU, g.Interrupts, cpuOpts...)

	return g, nil
}

// mapMemory maps the configured regions, aliases last so that their
// targets exist.
func (g *GameBoy) mapMemory() error {
	regions := g.config.MemoryRegions()
	for _, r := range regions {
		if r.Alias != "" {
			continue
		}
		region := ram.NewRegion(r.Start, r.Size)
		var opts []mmu.RegionOpt
		if r.ReadOnly {
			opts = append(opts, mmu.ReadOnly())
		}
		if err := g.MMU.AddRegion(r.Name, region, opts...); err != nil {
			return err
		}
		g.regions[r.Name] = region
	}
	for _, r := range regions {
		if r.Alias == "" {
			continue
		}
		if err := g.MMU.Alias(r.Name, r.Start, r.Size, g.regions[r.Alias]); err != nil {
			return err
		}
	}
	return g.MMU.EnableIO(g.config.Memory.LenientIO)
}

// Config returns the configuration the GameBoy was built from.
func (g *GameBoy) Config() *config.Config {
	return g.config
}

// LoadROM copies the ROM into the ROM region.
func (g *GameBoy) LoadROM(rom []byte) error {
	if err := g.regions[config.ROM].Load(rom); err != nil {
		return fmt.Errorf("gameboy: loading ROM: %w", err)
	}
	g.Header = nil
	header, err := cartridge.ParseHeader(rom)
	if err != nil {
		g.Debugf("loaded %d byte ROM without a header", len(rom))
		return nil
	}
	g.Header = &header
	g.Infof("loaded %d byte ROM: %s", len(rom), header.String())
	if !header.ChecksumValid() {
		g.Warnf("ROM header checksum 0x%02X does not match", header.HeaderChecksum)
	}
	if header.CartridgeType != cartridge.ROM {
		g.Warnf("cartridge type %s is mapped as a flat ROM", header.CartridgeType)
	}
	return nil
}

// LoadROMFile loads the ROM at path, which may be compressed.
func (g *GameBoy) LoadROMFile(path string) error {
	rom, err := utils.LoadFile(path)
	if err != nil {
		return fmt.Errorf("gameboy: %w", err)
	}
	return g.LoadROM(rom)
}

// Step executes a single CPU step, and advances every peripheral by the
// cycles it took. The cycles are returned even when the step faults, as
// the CPU may have made progress before the fault.
func (g *GameBoy) Step() (int, error) {
	cycles, err := g.CPU.Step()
	for _, p := range g.peripherals {
		p.Step(cycles)
	}
	g.cycles += uint64(cycles)
	return cycles, err
}

// Cycles returns the number of clock cycles executed since power on.
func (g *GameBoy) Cycles() uint64 {
	return g.cycles
}

// RunCycles steps the GameBoy until at least the given number of clock
// cycles have executed, or a step fails.
func (g *GameBoy) RunCycles(cycles uint64) error {
	return g.RunUntil(func(*GameBoy) bool { return false }, cycles)
}

// RunUntil steps the GameBoy until stop returns true, maxCycles have
// executed, or a step fails. A maxCycles of 0 places no limit on the
// run. ErrHalted is returned when the CPU halts with nothing that can
// wake it.
func (g *GameBoy) RunUntil(stop func(*GameBoy) bool, maxCycles uint64) error {
	start := g.cycles
	for maxCycles == 0 || g.cycles-start < maxCycles {
		if stop(g) {
			return nil
		}
		if g.CPU.Halted() && !g.canWake() {
			g.Infof("halted at 0x%04X with no interrupt that can wake it (IE: 0x%02X)", g.CPU.PC, g.Interrupts.Enable)
			return ErrHalted
		}
		if _, err := g.Step(); err != nil {
			g.Errorf("%v", err)
			return err
		}
	}
	return nil
}

// canWake reports whether a halted CPU can ever resume. Only the timer
// raises interrupts on its own: a serial transfer completes as soon as
// SC is written, and nothing drives VBlank, LCD or Joypad.
func (g *GameBoy) canWake() bool {
	if g.Interrupts.HasInterrupts() {
		return true
	}
	return g.Interrupts.Enable&interrupts.TimerFlag != 0 && g.Timer.Enabled
}

// Result is the outcome of Run.
type Result struct {
	Cycles uint64
	Output string
	// Match is the stop string found in the serial output, if any.
	Match string
}

// Run runs the GameBoy until one of the configured stop strings is sent
// over serial, the configured cycle budget is spent, or a step fails.
func (g *GameBoy) Run() (Result, error) {
	var match string
	err := g.RunUntil(func(g *GameBoy) bool {
		output := g.Serial.Output()
		for _, s := range g.config.Run.StopOn {
			if s != "" && strings.Contains(output, s) {
				match = s
				return true
			}
		}
		return false
	}, g.config.Run.MaxCycles)

	return Result{Cycles: g.cycles, Output: g.Serial.Output(), Match: match}, err
}

// Fingerprint returns a hash of the machine state: the CPU registers,
// the interrupt registers and the contents of every memory region. Two
// machines that executed the same program from the same state have the
// same fingerprint.
func (g *GameBoy) Fingerprint() uint64 {
	d := xxhash.New()
	c := g.CPU
	var ime uint8
	if g.Interrupts.IME {
		ime = 1
	}
	d.Write([]byte{
		c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L,
		uint8(c.SP >> 8), uint8(c.SP), uint8(c.PC >> 8), uint8(c.PC),
		ime, g.Interrupts.Flag, g.Interrupts.Enable, c.Mode(),
	})
	for _, r := range g.MMU.Regions() {
		if region, ok := g.regions[r.Name]; ok {
			d.Write(region.Bytes())
		}
	}
	return d.Sum64()
}

// State is a snapshot of the CPU registers.
type State struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
	IME                    bool
	IE, IF                 uint8
	Mode                   cpu.Mode
	Cycles                 uint64
}

// State returns a snapshot of the CPU registers.
func (g *GameBoy) State() State {
	c := g.CPU
	return State{
		A: c.A, F: c.F, B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L,
		SP: c.SP, PC: c.PC,
		IME:    g.Interrupts.IME,
		IE:     g.Interrupts.Enable,
		IF:     g.Interrupts.Flag,
		Mode:   c.Mode(),
		Cycles: g.cycles,
	}
}
