package display

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
)

type testDriver struct {
	name    string
	palette string
	level   int
}

func (d *testDriver) Start(<-chan *ppu.Frame, chan<- joypad.Button, chan<- joypad.Button) error {
	return nil
}

func (d *testDriver) Stop() error { return nil }

func TestRegisterFlags(t *testing.T) {
	defer func(installed []*InstalledDriver) { InstalledDrivers = installed }(InstalledDrivers)
	InstalledDrivers = nil

	a, b := &testDriver{name: "a"}, &testDriver{name: "b"}
	for _, d := range []*testDriver{a, b} {
		Install(d.name, d, []DriverOption{
			{Name: "palette", Default: "greyscale", Value: &d.palette, Type: "string"},
		})
	}
	c := &testDriver{name: "c"}
	Install(c.name, c, []DriverOption{
		{Name: "level", Default: 3, Value: &c.level, Type: "int"},
	})

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs)

	assert.Equal(t, "greyscale", a.palette, "defaults are applied")
	assert.Equal(t, 3, c.level)
	assert.Nil(t, fs.Lookup("level"), "unique options are prefixed")

	require.NoError(t, fs.Parse([]string{"-palette", "green", "-c-level", "9"}))
	assert.Equal(t, "green", a.palette)
	assert.Equal(t, "green", b.palette)
	assert.Equal(t, 9, c.level)

	assert.Equal(t, a, GetDriver("auto"))
	assert.Equal(t, b, GetDriver("b"))
	assert.Nil(t, GetDriver("missing"))
}

func TestFrameSink(t *testing.T) {
	s := NewFrameSink(1)

	frame := func(shade uint8) {
		for i := 0; i < ppu.ScreenWidth*ppu.ScreenHeight; i++ {
			s.PushPixel(shade)
		}
		s.FrameComplete()
	}
	frame(1)
	frame(2)
	assert.Equal(t, uint64(1), s.Dropped())

	f := <-s.Frames()
	assert.Equal(t, uint8(1), f[143][159])

	frame(3)
	assert.Equal(t, uint8(1), f[0][0], "frames are copied")
	s.Close()

	f, ok := <-s.Frames()
	require.True(t, ok)
	assert.Equal(t, uint8(3), f[0][0])
	_, ok = <-s.Frames()
	assert.False(t, ok)
}

func TestImage(t *testing.T) {
	f := &ppu.Frame{}
	f[0][1] = 3
	img := Image(f, palette.Palettes[palette.Green])

	assert.Equal(t, ppu.ScreenWidth, img.Bounds().Dx())
	assert.Equal(t, palette.Palettes[palette.Green].RGBA(0), img.RGBAAt(0, 0))
	assert.Equal(t, palette.Palettes[palette.Green].RGBA(3), img.RGBAAt(1, 0))

	scaled := Scale(img, 3)
	assert.Equal(t, 3*ppu.ScreenWidth, scaled.Bounds().Dx())
	assert.Equal(t, 3*ppu.ScreenHeight, scaled.Bounds().Dy())
	assert.Equal(t, img.RGBAAt(1, 0), scaled.RGBAAt(3, 2))
	assert.Equal(t, img.RGBAAt(1, 0), scaled.RGBAAt(5, 0))
	assert.Equal(t, img.RGBAAt(0, 0), scaled.RGBAAt(2, 2))

	assert.Same(t, img, Scale(img, 1))
}
