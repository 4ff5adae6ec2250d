package main

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/thelolagemann/gomeboy-core/internal/config"
	"github.com/thelolagemann/gomeboy-core/internal/cpu"
	"github.com/thelolagemann/gomeboy-core/internal/gameboy"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "gbcore",
		Short:        "Game Boy CPU core, for running test ROMs headless",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newRunCmd(), newOpcodesCmd(), newMapCmd())
	return rootCmd
}

// loadConfig loads the configuration file when one is given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newRunCmd() *cobra.Command {
	var configPath string
	var cycles uint64
	var trace bool
	var dump bool
	var logLevel string

	runCmd := &cobra.Command{
		Use:   "run [rom]",
		Short: "Run a ROM until it reports a result over serial, or the cycle budget is spent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			// flags override the configuration file
			if cmd.Flags().Changed("cycles") {
				cfg.Run.MaxCycles = cycles
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if trace {
				cfg.CPU.Trace = true
				cfg.Log.Level = "debug"
			}

			logger, err := log.New(cmd.ErrOrStderr(), cfg.Log.Level)
			if err != nil {
				return err
			}
			g, err := gameboy.NewGameBoy(gameboy.WithConfig(cfg), gameboy.WithLogger(logger))
			if err != nil {
				return err
			}
			if err := g.LoadROMFile(args[0]); err != nil {
				return err
			}

			result, runErr := g.Run()

			out := cmd.OutOrStdout()
			if g.Header != nil && g.Header.Title != "" {
				fmt.Fprintf(out, "title: %s\n", g.Header.Title)
			}
			if result.Output != "" {
				fmt.Fprintf(out, "serial: %q\n", result.Output)
			}
			fmt.Fprintf(out, "cycles: %d\n", result.Cycles)
			fmt.Fprintf(out, "fingerprint: %016x\n", g.Fingerprint())
			if dump {
				spew.Fdump(out, g.State())
			}

			if runErr != nil {
				return runErr
			}
			if result.Match != "" && result.Match != "Passed" {
				return fmt.Errorf("ROM reported %q", result.Match)
			}
			return nil
		},
	}
	runCmd.Flags().StringVar(&configPath, "config", "", "Configuration file")
	runCmd.Flags().Uint64Var(&cycles, "cycles", 0, "Maximum clock cycles to run (0 = no limit)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "Log every executed instruction")
	runCmd.Flags().BoolVar(&dump, "dump", false, "Dump the CPU state when the run ends")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	return runCmd
}

func newOpcodesCmd() *cobra.Command {
	var prefixed bool

	opcodesCmd := &cobra.Command{
		Use:   "opcodes",
		Short: "Print the instruction table",
		RunE: func(cmd *cobra.Command, args []string) error {
			table := &cpu.InstructionSet
			if prefixed {
				table = &cpu.InstructionSetCB
			}
			writeOpcodes(cmd.OutOrStdout(), table, prefixed)
			return nil
		},
	}
	opcodesCmd.Flags().BoolVar(&prefixed, "cb", false, "Print the 0xCB prefixed table")

	return opcodesCmd
}

func writeOpcodes(w io.Writer, table *[256]cpu.Instruction, prefixed bool) {
	prefix := ""
	if prefixed {
		prefix = "CB "
	}
	for i, instruction := range table {
		if !instruction.Implemented() {
			continue
		}
		fmt.Fprintf(w, "%s%02X  %-14s %2d\n", prefix, i, instruction.Name(), instruction.Cycles())
	}

	primary, cb := cpu.Coverage()
	missing := primary
	if prefixed {
		missing = cb
	}
	fmt.Fprintf(w, "unimplemented: %d\n", len(missing))
	for _, op := range missing {
		fmt.Fprintf(w, "  %s%02X\n", prefix, op)
	}
}

func newMapCmd() *cobra.Command {
	var configPath string

	mapCmd := &cobra.Command{
		Use:   "map",
		Short: "Print the memory map",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			g, err := gameboy.NewGameBoy(gameboy.WithConfig(cfg))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range g.MMU.Regions() {
				var notes string
				if r.ReadOnly {
					notes = " read-only"
				}
				if r.Alias {
					notes += " alias"
				}
				fmt.Fprintf(out, "%04X-%04X  %-5s%s\n", r.Start, r.End, r.Name, notes)
			}
			if cfg.Memory.LenientIO {
				fmt.Fprintln(out, "unregistered I/O registers are backed by memory")
			}
			return nil
		},
	}
	mapCmd.Flags().StringVar(&configPath, "config", "", "Configuration file")

	return mapCmd
}
