package cpu

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/opcodes"
)

// sm83State is a CPU state in the SingleStepTests JSON format.
type sm83State struct {
	PC  uint16      `json:"pc"`
	SP  uint16      `json:"sp"`
	A   uint8       `json:"a"`
	B   uint8       `json:"b"`
	C   uint8       `json:"c"`
	D   uint8       `json:"d"`
	E   uint8       `json:"e"`
	F   uint8       `json:"f"`
	H   uint8       `json:"h"`
	L   uint8       `json:"l"`
	IME uint8       `json:"ime"`
	RAM [][2]uint16 `json:"ram"`
}

type sm83Test struct {
	Name    string            `json:"name"`
	Initial sm83State         `json:"initial"`
	Final   sm83State         `json:"final"`
	Cycles  []json.RawMessage `json:"cycles"`
}

func (s sm83State) apply(c *CPU, b *io.Bus, irq *interrupts.Service) {
	c.PC, c.SP = s.PC, s.SP
	c.A, c.B, c.C, c.D, c.E, c.F, c.H, c.L = s.A, s.B, s.C, s.D, s.E, s.F, s.H, s.L
	if s.IME == 1 {
		irq.IME = interrupts.Enabled
	}
	for _, m := range s.RAM {
		b.Set(m[0], uint8(m[1]))
	}
}

// TestSM83 runs the single instruction fixtures in testdata/sm83,
// comparing registers, memory and cycle counts.
func TestSM83(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "sm83", "*.json"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		data, err := os.ReadFile(file)
		require.NoError(t, err)

		var tests []sm83Test
		require.NoError(t, json.Unmarshal(data, &tests), file)

		for _, tt := range tests {
			t.Run(tt.Name, func(t *testing.T) {
				b := io.NewBus()
				irq := interrupts.NewService(b)
				var result *Result
				c := NewCPU(b, irq, nil, opcodes.Default(), WithObserver(func(r Result) error {
					result = &r
					return nil
				}))
				tt.Initial.apply(c, b, irq)

				for i := 0; result == nil && i < 8; i++ {
					require.NoError(t, c.Tick())
				}
				require.NotNil(t, result, "instruction was not executed")

				want, got := tt.Final, c.Snapshot()
				assert.Equal(t, want.PC, got.PC, "PC")
				assert.Equal(t, want.SP, got.SP, "SP")
				assert.Equal(t, [8]uint8{want.A, want.F, want.B, want.C, want.D, want.E, want.H, want.L},
					[8]uint8{got.A, got.F, got.B, got.C, got.D, got.E, got.H, got.L}, "A F B C D E H L")
				assert.Equal(t, want.IME == 1, got.IME, "IME")
				for _, m := range want.RAM {
					assert.Equal(t, uint8(m[1]), b.Get(m[0]), "[%04X]", m[0])
				}
				assert.Equal(t, len(tt.Cycles), result.Cycles, "cycles")
			})
		}
	}
}
