package gameboy

import (
	"github.com/thelolagemann/gomeboy-core/internal/config"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance before its components are built.
type Opt func(gb *GameBoy)

// WithConfig builds the GameBoy from the given configuration.
func WithConfig(c *config.Config) Opt {
	return func(gb *GameBoy) {
		gb.config = c
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(l log.Logger) Opt {
	return func(gb *GameBoy) {
		if l != nil {
			gb.Logger = l
		}
	}
}

// Debug logs every executed instruction. The logger must be at the
// debug level for the trace to be written.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.debug = true
	}
}
