package gameboy

import (
	"io"

	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance before its components are created.
type Opt func(gb *GameBoy)

// WithLogger sets the logger used by the GameBoy and its CPU.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithBootROM sets the boot ROM for the emulator. The boot ROM
// is mapped over 0x0000 - 0x00FF, and the CPU starts at 0x0000
// with every register cleared, instead of in the state left upon
// completion of the boot ROM.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}

// NoBios skips the boot ROM, starting the CPU at 0x0100 with the
// registers set to the values upon completion of the boot ROM.
func NoBios() Opt {
	return func(gb *GameBoy) {
		gb.bootROM = nil
	}
}

// WithRenderer attaches a Renderer, receiving every pixel and
// frame along with the GameBoy's own frame buffer.
func WithRenderer(r ppu.Renderer) Opt {
	return func(gb *GameBoy) {
		gb.renderer = r
	}
}

// WithObserver registers an Observer, called after every
// executed instruction. Returning cpu.ErrStop stops Run.
func WithObserver(o cpu.Observer) Opt {
	return func(gb *GameBoy) {
		gb.observer = o
	}
}

// WithSerialWriter copies every byte sent over the serial port
// to w, which is how most test ROMs report their results.
func WithSerialWriter(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.serialOut = w
	}
}

// Trace logs every executed instruction at debug level.
func Trace() Opt {
	return func(gb *GameBoy) {
		gb.trace = true
	}
}
