// Package config holds the configuration of the emulator, loaded from
// YAML. Every field has a default, so a file only needs to name what it
// changes.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// Config is the configuration of a GameBoy.
type Config struct {
	CPU    CPU    `yaml:"cpu"`
	Memory Memory `yaml:"memory"`
	Log    Log    `yaml:"log"`
	Run    Run    `yaml:"run"`
}

// CPU configures the instruction engine.
type CPU struct {
	// ImmediateEI makes EI take effect straight away, instead of
	// after the following instruction.
	ImmediateEI bool `yaml:"immediate_ei"`
	// Trace logs every instruction at the debug level.
	Trace bool `yaml:"trace"`
}

// Memory configures the memory map.
type Memory struct {
	// LenientIO backs I/O registers without a component with plain
	// storage, instead of faulting.
	LenientIO bool `yaml:"lenient_io"`
	// ExternalRAM maps 8kB of cartridge RAM at 0xA000.
	ExternalRAM bool     `yaml:"external_ram"`
	Regions     []Region `yaml:"regions"`
}

// Region is a range of the address space backed by memory. A region
// with an Alias mirrors the named region instead of owning memory.
type Region struct {
	Name     string `yaml:"name"`
	Start    uint16 `yaml:"start"`
	Size     int    `yaml:"size"`
	ReadOnly bool   `yaml:"read_only,omitempty"`
	Alias    string `yaml:"alias,omitempty"`
}

// End returns the last address of the region.
func (r Region) End() int {
	return int(r.Start) + r.Size - 1
}

// Log configures logging.
type Log struct {
	Level string `yaml:"level"`
}

// Run configures when the emulator stops.
type Run struct {
	// MaxCycles stops the run after the given number of clock
	// cycles, 0 runs until another condition is met.
	MaxCycles uint64 `yaml:"max_cycles"`
	// StopOn stops the run once the serial output contains any of
	// the given strings.
	StopOn []string `yaml:"stop_on"`
}

// ROM is the name of the region that cartridge ROM is loaded into.
const ROM = "rom"

// ExternalRAM is the cartridge RAM region, mapped when enabled.
var ExternalRAM = Region{Name: "eram", Start: types.ERAMStart, Size: types.ERAMSize}

// Default returns the default configuration, with the DMG memory map.
func Default() *Config {
	return &Config{
		Memory: Memory{
			Regions: []Region{
				{Name: ROM, Start: types.ROMStart, Size: types.ROMSize, ReadOnly: true},
				{Name: "vram", Start: types.VRAMStart, Size: types.VRAMSize},
				{Name: "wram", Start: types.WRAMStart, Size: types.WRAMSize},
				{Name: "echo", Start: types.EchoStart, Size: types.EchoSize, Alias: "wram"},
				{Name: "oam", Start: types.OAMStart, Size: types.OAMSize},
				{Name: "hram", Start: types.HRAMStart, Size: types.HRAMSize},
			},
		},
		Log: Log{Level: "info"},
		Run: Run{
			MaxCycles: 0,
			StopOn:    []string{"Passed", "Failed"},
		},
	}
}

// Load reads the configuration at path over the defaults, and
// validates the result.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MemoryRegions returns the regions to map, including external RAM
// when it is enabled.
func (c *Config) MemoryRegions() []Region {
	regions := append([]Region(nil), c.Memory.Regions...)
	if c.Memory.ExternalRAM {
		regions = append(regions, ExternalRAM)
	}
	return regions
}

// Validate checks the configuration, and returns every problem found.
func (c *Config) Validate() error {
	var result *multierror.Error

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		result = multierror.Append(result, fmt.Errorf("log.level: %w", err))
	}

	regions := c.MemoryRegions()
	byName := make(map[string]Region, len(regions))
	for _, r := range regions {
		if r.Name == "" {
			result = multierror.Append(result, fmt.Errorf("memory: region at 0x%04X has no name", r.Start))
			continue
		}
		if _, ok := byName[r.Name]; ok {
			result = multierror.Append(result, fmt.Errorf("memory: duplicate region %q", r.Name))
			continue
		}
		byName[r.Name] = r

		if r.Size <= 0 {
			result = multierror.Append(result, fmt.Errorf("memory: region %q has size %d", r.Name, r.Size))
			continue
		}
		// the I/O window and IE belong to the hardware registers
		switch {
		case int(r.Start) < int(types.HRAMStart) && r.End() >= int(types.IOStart):
			result = multierror.Append(result, fmt.Errorf("memory: region %q [0x%04X, 0x%04X] overlaps the I/O window", r.Name, r.Start, r.End()))
		case r.End() >= int(types.IE):
			result = multierror.Append(result, fmt.Errorf("memory: region %q [0x%04X, 0x%04X] overlaps IE", r.Name, r.Start, r.End()))
		}
	}

	for _, r := range regions {
		if r.Alias == "" {
			continue
		}
		target, ok := byName[r.Alias]
		switch {
		case !ok:
			result = multierror.Append(result, fmt.Errorf("memory: region %q aliases unknown region %q", r.Name, r.Alias))
		case target.Alias != "":
			result = multierror.Append(result, fmt.Errorf("memory: region %q aliases alias %q", r.Name, r.Alias))
		case r.Size > target.Size:
			result = multierror.Append(result, fmt.Errorf("memory: region %q is larger than %q", r.Name, r.Alias))
		}
	}

	for i, a := range regions {
		for _, b := range regions[i+1:] {
			if a.Size > 0 && b.Size > 0 && int(a.Start) <= b.End() && int(b.Start) <= a.End() {
				result = multierror.Append(result, fmt.Errorf("memory: region %q overlaps %q", a.Name, b.Name))
			}
		}
	}

	if rom, ok := byName[ROM]; !ok || rom.Start != 0 {
		result = multierror.Append(result, fmt.Errorf("memory: a %q region starting at 0x0000 is required", ROM))
	}

	return result.ErrorOrNil()
}
