// Package gameboy provides an emulation of a Nintendo Game Boy.
//
// The GameBoy drives every component from a single master tick,
// one PPU dot at a time, advancing the remaining components once
// every 4 dots (one machine cycle).
package gameboy

import (
	"errors"
	"fmt"
	io2 "io"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/opcodes"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/serial"
	"github.com/thelolagemann/dmgcore/internal/timer"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = 4194304 // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = ppu.DotsPerFrame // ~59.7 frames per second

	// dotsPerCycle is the number of dots in a machine cycle.
	dotsPerCycle = 4
	// bootROMSize is the size of the DMG boot ROM.
	bootROMSize = 0x100
)

// ErrInvalidBootROM is returned for boot ROMs that are not 256 bytes.
var ErrInvalidBootROM = errors.New("gameboy: boot ROM must be 256 bytes")

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU        *cpu.CPU
	PPU        *ppu.PPU
	DMA        *ppu.DMA
	Joypad     *joypad.State
	Interrupts *interrupts.Service
	Timer      *timer.Controller
	Serial     *serial.Controller
	Cartridge  cartridge.Cartridge

	log.Logger

	b           *io.Bus
	frameBuffer *ppu.FrameBuffer
	renderer    ppu.Renderer

	dot        uint8  // dot within the current machine cycle
	frameDots  int    // dots since the last frame
	frameReady bool   // set when the PPU completes a frame
	frames     uint64 // frames completed

	// options
	bootROM   []byte
	observer  cpu.Observer
	serialOut io2.Writer
	trace     bool
}

// NewGameBoy returns a new GameBoy, running rom.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Logger: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.bootROM != nil && len(g.bootROM) != bootROMSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidBootROM, len(g.bootROM))
	}

	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: loading cartridge: %w", err)
	}
	g.Cartridge = cart
	g.Infof("Cartridge: %s", cart.Header())
	if !cart.Header().ValidChecksum() {
		g.Infof("Cartridge header checksum mismatch")
	}

	g.b = io.NewBus()
	g.b.AttachCartridge(cart)
	g.frameBuffer = ppu.NewFrameBuffer(nil)

	g.Interrupts = interrupts.NewService(g.b)
	g.Timer = timer.NewController(g.b, g.Interrupts)
	g.PPU = ppu.New(g.b, g.Interrupts, frameRenderer{g})
	g.DMA = ppu.NewDMA(g.b)
	g.Joypad = joypad.New(g.b, g.Interrupts)
	g.Serial = serial.NewController(g.b, g.Interrupts, g.serialOut)

	cpuOpts := []cpu.Opt{cpu.WithLogger(g.Logger), cpu.WithObserver(g.observer)}
	if g.trace {
		cpuOpts = append(cpuOpts, cpu.Trace())
	}
	g.CPU = cpu.NewCPU(g.b, g.Interrupts, g.Timer, opcodes.Default(), cpuOpts...)

	// every unclaimed register reads 0xFF
	g.b.MapUnused()

	if g.bootROM != nil {
		g.b.AttachBootROM(g.bootROM)
		g.CPU.PC = 0x0000
	} else {
		g.skipBoot()
	}

	return g, nil
}

// skipBoot leaves the CPU and hardware registers in the state
// left upon completion of the boot ROM.
func (g *GameBoy) skipBoot() {
	g.CPU.Reset()
	g.b.Write(types.BGP, 0xFC, io.CPU, false)
	g.b.Write(types.LCDC, 0x91, io.CPU, false)
	g.b.Write(types.DIV, 0xAB, io.CPU, true)
}

// Tick advances the GameBoy by a single dot. Every 4th dot the
// DMA, serial and CPU are advanced by a machine cycle, with the
// CPU advancing the timer itself.
func (g *GameBoy) Tick() error {
	g.PPU.Dot()
	g.frameDots++

	if g.dot++; g.dot < dotsPerCycle {
		return nil
	}
	g.dot = 0

	g.DMA.Tick()
	g.Serial.Tick()
	if err := g.CPU.Tick(); err != nil {
		var unimplemented *cpu.UnimplementedOpcodeError
		if errors.As(err, &unimplemented) {
			g.Errorf("%s", err)
		}
		return err
	}
	return nil
}

// Frame steps the emulation until the PPU has finished rendering
// the current frame. While the LCD is off, Frame returns once a
// frame's worth of dots has passed.
func (g *GameBoy) Frame() error {
	g.frameReady = false
	g.frameDots = 0
	for !g.frameReady {
		if err := g.Tick(); err != nil {
			return err
		}
		if !g.PPU.Enabled() && g.frameDots >= ppu.DotsPerFrame {
			break
		}
	}
	return nil
}

// RunFrames runs n frames. A cpu.ErrStop returned by the Observer
// ends the run early without error.
func (g *GameBoy) RunFrames(n int) error {
	for i := 0; i < n; i++ {
		if err := g.Frame(); err != nil {
			if errors.Is(err, cpu.ErrStop) {
				return nil
			}
			return err
		}
	}
	g.Debugf("ran %d frames, %d total", n, g.frames)
	return nil
}

// Run runs until the Observer returns cpu.ErrStop, which ends the
// run without error, or until a fault occurs.
func (g *GameBoy) Run() error {
	for {
		if err := g.Tick(); err != nil {
			if errors.Is(err, cpu.ErrStop) {
				g.Debugf("stopped after %d frames", g.frames)
				return nil
			}
			return err
		}
	}
}

// Press presses a button on the joypad.
func (g *GameBoy) Press(button joypad.Button) {
	g.Joypad.Press(button)
}

// Release releases a button on the joypad.
func (g *GameBoy) Release(button joypad.Button) {
	g.Joypad.Release(button)
}

// FrameBuffer returns the last completed frame.
func (g *GameBoy) FrameBuffer() *ppu.Frame {
	return g.frameBuffer.Frame()
}

// Frames returns the number of frames completed.
func (g *GameBoy) Frames() uint64 {
	return g.frames
}

// FrameDigest returns a hash of the last completed frame.
func (g *GameBoy) FrameDigest() uint64 {
	return Digest(g.frameBuffer.Frame())
}

// Digest returns the xxhash of the shades of f.
func Digest(f *ppu.Frame) uint64 {
	d := xxhash.New()
	for y := range f {
		_, _ = d.Write(f[y][:])
	}
	return d.Sum64()
}

// Bus returns the bus shared by every component.
func (g *GameBoy) Bus() *io.Bus {
	return g.b
}

// frameRenderer passes the output of the PPU to the frame buffer
// and any attached Renderer, marking the end of each frame.
type frameRenderer struct {
	g *GameBoy
}

func (r frameRenderer) PushPixel(shade uint8) {
	r.g.frameBuffer.PushPixel(shade)
	if r.g.renderer != nil {
		r.g.renderer.PushPixel(shade)
	}
}

func (r frameRenderer) FrameComplete() {
	r.g.frameBuffer.FrameComplete()
	if r.g.renderer != nil {
		r.g.renderer.FrameComplete()
	}
	r.g.frameReady = true
	r.g.frames++
}
