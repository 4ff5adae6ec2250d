package gameboy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gomeboy-core/internal/config"
)

// blarggROMPath holds the individual cpu_instrs test ROMs. They are not
// distributed with the repository, so the test is skipped without them.
const blarggROMPath = "testdata/roms/blargg/cpu_instrs/individual"

// blarggCycles is enough for the slowest individual ROM to report.
const blarggCycles = 60 * ClockSpeed

func TestBlargg_CPUInstrs(t *testing.T) {
	files, err := os.ReadDir(blarggROMPath)
	if os.IsNotExist(err) {
		t.Skipf("no test ROMs in %s", blarggROMPath)
	}
	require.NoError(t, err)

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".gb") {
			continue
		}
		path := filepath.Join(blarggROMPath, file.Name())
		t.Run(strings.TrimSuffix(file.Name(), ".gb"), func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			cfg.Memory.LenientIO = true
			cfg.Run.MaxCycles = blarggCycles

			g, err := NewGameBoy(WithConfig(cfg))
			require.NoError(t, err)
			require.NoError(t, g.LoadROMFile(path))

			result, err := g.Run()
			require.NoError(t, err, "serial output: %q", result.Output)
			assert.Equal(t, "Passed", result.Match, "serial output: %q", result.Output)
		})
	}
}
