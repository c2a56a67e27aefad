package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/ppu/lcd"
	"github.com/thelolagemann/dmgcore/internal/types"
)

type testPPU struct {
	*PPU
	b   *io.Bus
	irq *interrupts.Service
	fb  *FrameBuffer
}

func newTestPPU() *testPPU {
	b := io.NewBus()
	irq := interrupts.NewService(b)
	fb := NewFrameBuffer(nil)
	return &testPPU{PPU: New(b, irq, fb), b: b, irq: irq, fb: fb}
}

func (p *testPPU) dots(n int) {
	for i := 0; i < n; i++ {
		p.Dot()
	}
}

func (p *testPPU) write(addr uint16, v uint8) {
	p.b.Write(addr, v, io.CPU, false)
}

// poke writes VRAM and OAM regardless of the bus locks.
func (p *testPPU) poke(addr uint16, v ...uint8) {
	for i, b := range v {
		p.b.Write(addr+uint16(i), b, io.PPU, true)
	}
}

// tile fills every row of the tile at addr with the same row.
func (p *testPPU) tile(addr uint16, low, high uint8) {
	for row := uint16(0); row < 8; row++ {
		p.poke(addr+row*2, low, high)
	}
}

func (p *testPPU) frame() *Frame {
	p.dots(DotsPerFrame)
	return p.fb.Frame()
}

func TestPPU_Timing(t *testing.T) {
	p := newTestPPU()

	p.dots(100)
	assert.Equal(t, OamScan, p.State(), "the PPU is frozen while the LCD is off")
	assert.Equal(t, -1, p.Line())

	p.write(types.LCDC, 0x91)
	p.dots(1)
	assert.Equal(t, 0, p.Line())
	assert.Equal(t, OamScan, p.State())
	assert.Equal(t, lcd.OAM, p.Mode())
	assert.True(t, p.b.Locked(io.OAM))
	assert.False(t, p.b.Locked(io.VRAM))

	p.dots(79)
	assert.Equal(t, DrawingPixels, p.State())
	assert.Equal(t, lcd.VRAM, p.Mode())
	assert.Equal(t, uint8(0xFF), p.b.Read(0x8000, io.CPU, false), "VRAM is locked while drawing")

	p.dots(200)
	assert.Equal(t, HorizontalBlank, p.State())
	assert.Equal(t, lcd.HBlank, p.Mode())
	assert.Equal(t, ScreenWidth, p.fb.Pushed())
	assert.False(t, p.b.Locked(io.OAM|io.VRAM))

	p.dots(DotsPerLine - 280)
	assert.Equal(t, OamScan, p.State())
	assert.Equal(t, 1, p.Line())
	assert.Equal(t, uint8(1), p.b.Read(types.LY, io.CPU, false))

	p.dots(DotsPerLine * (ScreenHeight - 1))
	assert.Equal(t, VerticalBlank, p.State())
	assert.Equal(t, ScreenHeight, p.Line())
	assert.Equal(t, lcd.VBlank, p.Mode())
	assert.NotZero(t, p.irq.Flag&interrupts.VBlankFlag)
	assert.Equal(t, ScreenWidth*ScreenHeight, p.fb.Pushed())
	assert.Zero(t, p.fb.Frames())

	p.dots(DotsPerLine*10 - 1)
	assert.Equal(t, 153, p.Line())
	assert.Zero(t, p.fb.Frames())

	p.dots(1)
	assert.Equal(t, OamScan, p.State())
	assert.Equal(t, 0, p.Line())
	assert.Equal(t, uint64(1), p.fb.Frames())

	p.dots(DotsPerFrame)
	assert.Equal(t, uint64(2), p.fb.Frames())
}

func TestPPU_Background(t *testing.T) {
	p := newTestPPU()
	// only the first row of tile 0 is coloured
	p.poke(0x8000, 0x00, 0xFF)
	p.write(types.BGP, 0xE4)
	p.write(types.LCDC, 0x91)

	f := p.frame()
	for x := 0; x < ScreenWidth; x++ {
		require.Equal(t, uint8(1), f[0][x], "x=%d", x)
		require.Equal(t, uint8(0), f[1][x], "x=%d", x)
		require.Equal(t, uint8(1), f[8][x], "x=%d", x)
	}

	// colour 1 mapped to shade 3
	p.write(types.BGP, 0x0C)
	f = p.frame()
	assert.Equal(t, uint8(3), f[0][0])
	assert.Equal(t, uint8(0), f[1][0])
}

func TestPPU_BackgroundDisabled(t *testing.T) {
	p := newTestPPU()
	p.tile(0x8000, 0xFF, 0xFF)
	p.write(types.BGP, 0xE4)
	p.write(types.LCDC, 0x90)

	f := p.frame()
	assert.Equal(t, uint8(0), f[0][0])
	assert.Equal(t, uint8(0), f[100][100])
}

func TestPPU_ScrollX(t *testing.T) {
	p := newTestPPU()
	p.tile(0x8000, 0x00, 0xF0)
	p.write(types.BGP, 0xE4)
	p.write(types.SCX, 2)
	p.write(types.LCDC, 0x91)

	f := p.frame()
	for x := 0; x < ScreenWidth; x++ {
		want := uint8(0)
		if (x+2)%8 < 4 {
			want = 1
		}
		require.Equal(t, want, f[0][x], "x=%d", x)
	}
}

func TestPPU_ScrollY(t *testing.T) {
	p := newTestPPU()
	p.poke(0x8000+3*2, 0x00, 0xFF)
	p.write(types.BGP, 0xE4)
	p.write(types.SCY, 3)
	p.write(types.LCDC, 0x91)

	f := p.frame()
	assert.Equal(t, uint8(1), f[0][0])
	assert.Equal(t, uint8(0), f[3][0])
	assert.Equal(t, uint8(1), f[8][0])
}

func TestPPU_SignedTileData(t *testing.T) {
	p := newTestPPU()
	// tile 0 lives at 0x9000 with signed addressing
	p.poke(0x9000, 0xFF, 0xFF)
	p.write(types.BGP, 0xE4)
	p.write(types.LCDC, 0x81)

	f := p.frame()
	assert.Equal(t, uint8(3), f[0][0])
	assert.Equal(t, uint8(0), f[1][0])
}

func TestPPU_Sprites(t *testing.T) {
	tests := []struct {
		name  string
		bg    [2]uint8 // row of every background tile
		tile  [2]uint8 // row of the sprite tile
		x     uint8
		attr  uint8
		want  [16]uint8
		lcdc  uint8
		obp0  uint8
		obp1  uint8
	}{
		{
			name: "opaque",
			tile: [2]uint8{0xFF, 0xFF},
			x:    8,
			want: [16]uint8{3, 3, 3, 3, 3, 3, 3, 3, 0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name: "transparent",
			bg:   [2]uint8{0x00, 0xFF},
			tile: [2]uint8{0xF0, 0xF0},
			x:    8,
			want: [16]uint8{3, 3, 3, 3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		},
		{
			name: "flip x",
			tile: [2]uint8{0xF0, 0xF0},
			x:    8,
			attr: types.Bit5,
			want: [16]uint8{0, 0, 0, 0, 3, 3, 3, 3},
		},
		{
			name: "behind background",
			bg:   [2]uint8{0x00, 0xF0},
			tile: [2]uint8{0xFF, 0xFF},
			x:    8,
			attr: types.Bit7,
			want: [16]uint8{1, 1, 1, 1, 3, 3, 3, 3, 1, 1, 1, 1},
		},
		{
			name: "partially off screen",
			tile: [2]uint8{0xF0, 0xF0},
			x:    4,
			want: [16]uint8{},
		},
		{
			name: "partially off screen flipped",
			tile: [2]uint8{0xF0, 0xF0},
			x:    4,
			attr: types.Bit5,
			want: [16]uint8{3, 3, 3, 3},
		},
		{
			name: "offset",
			tile: [2]uint8{0xFF, 0xFF},
			x:    12,
			want: [16]uint8{0, 0, 0, 0, 3, 3, 3, 3, 3, 3, 3, 3},
		},
		{
			name: "OBP1",
			tile: [2]uint8{0x00, 0xFF},
			x:    8,
			attr: types.Bit4,
			obp1: 0x08,
			want: [16]uint8{2, 2, 2, 2, 2, 2, 2, 2},
		},
		{
			name: "sprites disabled",
			tile: [2]uint8{0xFF, 0xFF},
			x:    8,
			lcdc: 0x91,
			want: [16]uint8{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPPU()
			p.tile(0x8000, tt.bg[0], tt.bg[1])
			p.poke(0x8010, tt.tile[0], tt.tile[1])
			p.poke(0xFE00, 16, tt.x, 1, tt.attr)

			obp0 := tt.obp0
			if obp0 == 0 {
				obp0 = 0xE4
			}
			lcdc := tt.lcdc
			if lcdc == 0 {
				lcdc = 0x93
			}
			p.write(types.BGP, 0xE4)
			p.write(types.OBP0, obp0)
			p.write(types.OBP1, tt.obp1)
			p.write(types.LCDC, lcdc)

			f := p.frame()
			for x, want := range tt.want {
				assert.Equal(t, want, f[0][x], "x=%d", x)
			}
			// only the first row of the sprite is coloured
			assert.Equal(t, f[2][0], f[1][0])
		})
	}
}

func TestPPU_SpriteLimit(t *testing.T) {
	p := newTestPPU()
	p.poke(0x8010, 0xFF, 0xFF)
	for i := uint16(0); i < 11; i++ {
		p.poke(0xFE00+i*4, 16, uint8(8+i*8), 1, 0)
	}
	p.write(types.OBP0, 0xE4)
	p.write(types.LCDC, 0x93)

	f := p.frame()
	for x := 0; x < 88; x++ {
		want := uint8(3)
		if x >= 80 {
			want = 0
		}
		require.Equal(t, want, f[0][x], "x=%d", x)
	}
}

func TestPPU_SpriteOverlap(t *testing.T) {
	tests := []struct {
		name   string
		x0, x1 uint8
		want   []uint8
	}{
		// the sprite with the smaller X wins
		{"lower X", 12, 8, []uint8{3, 3, 3, 3, 3, 3, 3, 3, 1, 1, 1, 1, 0}},
		// the earlier OAM entry wins with equal X
		{"equal X", 8, 8, []uint8{1, 1, 1, 1, 1, 1, 1, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPPU()
			p.poke(0x8010, 0x00, 0xFF) // colour 1
			p.poke(0x8020, 0xFF, 0xFF) // colour 3
			p.poke(0xFE00, 16, tt.x0, 1, 0)
			p.poke(0xFE04, 16, tt.x1, 2, 0)
			p.write(types.OBP0, 0xE4)
			p.write(types.LCDC, 0x93)

			f := p.frame()
			assert.Equal(t, tt.want, f[0][:len(tt.want)])
		})
	}
}

func TestPPU_TallSprites(t *testing.T) {
	p := newTestPPU()
	// the lower half of an 8x16 sprite comes from the odd tile
	p.poke(0x8020, 0x00, 0xFF)
	p.poke(0x8030, 0xFF, 0xFF)
	p.poke(0xFE00, 16, 8, 3, 0)
	p.write(types.OBP0, 0xE4)
	p.write(types.LCDC, 0x97)

	f := p.frame()
	assert.Equal(t, uint8(1), f[0][0])
	assert.Equal(t, uint8(0), f[1][0])
	assert.Equal(t, uint8(3), f[8][0])
	assert.Equal(t, uint8(0), f[16][0])
}

func TestPPU_Window(t *testing.T) {
	tests := []struct {
		name   string
		wy, wx uint8
		lcdc   uint8
		setup  func(p *testPPU)
		check  func(t *testing.T, f *Frame)
	}{
		{
			name: "right half",
			wy:   0, wx: 87,
			check: func(t *testing.T, f *Frame) {
				for _, y := range []int{0, 10, 143} {
					assert.Equal(t, uint8(0), f[y][79])
					assert.Equal(t, uint8(3), f[y][80])
					assert.Equal(t, uint8(3), f[y][159])
				}
			},
		},
		{
			name: "lower half",
			wy:   72, wx: 7,
			check: func(t *testing.T, f *Frame) {
				assert.Equal(t, uint8(0), f[71][0])
				assert.Equal(t, uint8(3), f[72][0])
				assert.Equal(t, uint8(3), f[143][159])
			},
		},
		{
			name: "off screen",
			wy:   200, wx: 7,
			check: func(t *testing.T, f *Frame) {
				assert.Equal(t, uint8(0), f[143][159])
			},
		},
		{
			name: "WX 167",
			wy:   0, wx: 167,
			check: func(t *testing.T, f *Frame) {
				assert.Equal(t, uint8(0), f[0][159])
			},
		},
		{
			name: "sprite across window start",
			wy:   0, wx: 19,
			lcdc: 0xF3,
			setup: func(p *testPPU) {
				// a blank window, with a sprite covering x 8-15 on line 0
				for i := uint16(0); i < 0x400; i++ {
					p.poke(0x9C00+i, 0)
				}
				p.poke(0x8020, 0xFF, 0xFF)
				p.poke(0xFE00, 16, 16, 2, 0)
				p.write(types.OBP0, 0xE4)
			},
			check: func(t *testing.T, f *Frame) {
				assert.Equal(t, uint8(0), f[0][7])
				for x := 8; x < 16; x++ {
					assert.Equal(t, uint8(3), f[0][x], "x=%d", x)
				}
				assert.Equal(t, uint8(0), f[0][16])
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPPU()
			p.tile(0x8010, 0xFF, 0xFF)
			for i := uint16(0); i < 0x400; i++ {
				p.poke(0x9C00+i, 1)
			}
			if tt.setup != nil {
				tt.setup(p)
			}
			lcdc := tt.lcdc
			if lcdc == 0 {
				lcdc = 0xF1
			}
			p.write(types.BGP, 0xE4)
			p.write(types.WY, tt.wy)
			p.write(types.WX, tt.wx)
			p.write(types.LCDC, lcdc)

			tt.check(t, p.frame())
		})
	}
}

func TestPPU_WindowLine(t *testing.T) {
	p := newTestPPU()
	// window tile 1 is coloured on its first row only
	p.poke(0x8010, 0xFF, 0xFF)
	for i := uint16(0); i < 0x400; i++ {
		p.poke(0x9C00+i, 1)
	}
	p.write(types.BGP, 0xE4)
	p.write(types.WY, 20)
	p.write(types.WX, 7)
	p.write(types.LCDC, 0xF1)

	f := p.frame()
	assert.Equal(t, uint8(0), f[19][0])
	assert.Equal(t, uint8(3), f[20][0], "the window starts at its first line")
	assert.Equal(t, uint8(0), f[21][0])
	assert.Equal(t, uint8(3), f[28][0])
}

func TestPPU_StatInterrupts(t *testing.T) {
	t.Run("HBlank", func(t *testing.T) {
		p := newTestPPU()
		p.write(types.STAT, types.Bit3)
		p.write(types.LCDC, 0x91)
		p.dots(oamScanDots)
		assert.Zero(t, p.irq.Flag&interrupts.LCDFlag)
		p.dots(200)
		assert.NotZero(t, p.irq.Flag&interrupts.LCDFlag)
	})
	t.Run("OAM", func(t *testing.T) {
		p := newTestPPU()
		p.write(types.STAT, types.Bit5)
		p.write(types.LCDC, 0x91)
		p.dots(1)
		assert.NotZero(t, p.irq.Flag&interrupts.LCDFlag)
	})
	t.Run("VBlank", func(t *testing.T) {
		p := newTestPPU()
		p.write(types.STAT, types.Bit4)
		p.write(types.LCDC, 0x91)
		p.dots(DotsPerLine*ScreenHeight - 1)
		assert.Zero(t, p.irq.Flag&interrupts.LCDFlag)
		p.dots(1)
		assert.NotZero(t, p.irq.Flag&interrupts.LCDFlag)
		assert.NotZero(t, p.irq.Flag&interrupts.VBlankFlag)
	})
	t.Run("LYC", func(t *testing.T) {
		p := newTestPPU()
		p.write(types.LYC, 2)
		p.write(types.STAT, types.Bit6)
		p.write(types.LCDC, 0x91)

		p.dots(2*DotsPerLine - 1)
		assert.Zero(t, p.irq.Flag&interrupts.LCDFlag)
		assert.Zero(t, p.b.Read(types.STAT, io.CPU, false)&types.Bit2)

		p.dots(1)
		assert.Equal(t, 2, p.Line())
		assert.NotZero(t, p.irq.Flag&interrupts.LCDFlag)
		assert.NotZero(t, p.b.Read(types.STAT, io.CPU, false)&types.Bit2)

		p.irq.Flag = 0
		p.dots(DotsPerLine - 1)
		assert.Zero(t, p.irq.Flag&interrupts.LCDFlag, "only a rising edge requests an interrupt")
		p.dots(1)
		assert.Zero(t, p.b.Read(types.STAT, io.CPU, false)&types.Bit2)

		// writing LYC compares immediately
		p.write(types.LYC, 3)
		assert.NotZero(t, p.irq.Flag&interrupts.LCDFlag)
	})
}

func TestPPU_Registers(t *testing.T) {
	p := newTestPPU()
	p.write(types.STAT, 0xFF)
	assert.Equal(t, uint8(0xF8), p.b.Read(types.STAT, io.CPU, false), "mode and coincidence are read only")

	p.write(types.LCDC, 0x91)
	p.dots(DotsPerLine * 5)
	p.write(types.LY, 0x50)
	assert.Equal(t, uint8(5), p.b.Read(types.LY, io.CPU, false), "LY is read only")

	for _, addr := range []uint16{types.SCY, types.SCX, types.LYC, types.BGP, types.OBP0, types.OBP1, types.WY, types.WX} {
		p.write(addr, 0x5A)
		assert.Equal(t, uint8(0x5A), p.b.Read(addr, io.CPU, false), "%04X", addr)
	}
}

func TestPPU_LCDOff(t *testing.T) {
	p := newTestPPU()
	p.write(types.LCDC, 0x91)
	p.dots(DotsPerLine + 100)
	require.Equal(t, 1, p.Line())
	require.Equal(t, DrawingPixels, p.State())

	p.write(types.LCDC, 0x11)
	assert.False(t, p.Enabled())
	assert.Equal(t, OamScan, p.State())
	assert.Equal(t, -1, p.Line())
	assert.Equal(t, lcd.HBlank, p.Mode())
	assert.Equal(t, uint8(0), p.b.Read(types.LY, io.CPU, false))
	assert.False(t, p.b.Locked(io.OAM|io.VRAM))

	p.dots(DotsPerFrame)
	assert.Equal(t, -1, p.Line())
	assert.Zero(t, p.fb.Frames())

	p.write(types.LCDC, 0x91)
	p.dots(1)
	assert.Equal(t, 0, p.Line())
	assert.Equal(t, lcd.OAM, p.Mode())
}

func TestDMA(t *testing.T) {
	for _, page := range []uint8{0xC0, 0xE0} {
		b := io.NewBus()
		d := NewDMA(b)
		for i := uint16(0); i < dmaLength; i++ {
			b.Write(0xC000+i, uint8(i)^0x55, io.CPU, false)
		}
		// transfers ignore the bus locks
		b.Lock(io.OAM)

		b.Write(types.DMA, page, io.CPU, false)
		assert.True(t, d.IsTransferring())
		assert.Equal(t, page, b.Read(types.DMA, io.CPU, false))

		for i := 0; i < dmaLength-1; i++ {
			d.Tick()
		}
		assert.True(t, d.IsTransferring())
		d.Tick()
		assert.False(t, d.IsTransferring())

		for i := uint16(0); i < dmaLength; i++ {
			require.Equal(t, uint8(i)^0x55, b.Get(0xFE00+i), "page %02X offset %d", page, i)
		}
	}
}

func TestFrameBuffer(t *testing.T) {
	var got *Frame
	fb := NewFrameBuffer(func(f *Frame) {
		got = f
	})
	for i := 0; i < ScreenWidth*ScreenHeight+10; i++ {
		fb.PushPixel(uint8(i % 4))
	}
	assert.Equal(t, ScreenWidth*ScreenHeight, fb.Pushed())
	assert.Equal(t, uint8(0), fb.Frame()[0][1], "the frame is not visible until complete")

	fb.FrameComplete()
	require.NotNil(t, got)
	assert.Equal(t, uint64(1), fb.Frames())
	assert.Zero(t, fb.Pushed())
	assert.Equal(t, uint8(1), got[0][1])
	assert.Equal(t, uint8(3), got[ScreenHeight-1][ScreenWidth-1])

	fb.PushPixel(2)
	assert.Equal(t, uint8(0), fb.Frame()[0][0], "the next frame is drawn separately")
}
