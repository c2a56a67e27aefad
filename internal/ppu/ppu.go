// Package ppu provides an implementation of the DMG (P)ixel
// (P)rocessing (U)nit. The PPU is advanced one dot at a time,
// and produces one finished pixel per dot while drawing.
package ppu

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/ppu/lcd"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144

	// DotsPerLine is the number of dots taken by every line.
	DotsPerLine = 456
	// LinesPerFrame is the number of lines in a frame, including
	// the vertical blanking period.
	LinesPerFrame = 154
	// DotsPerFrame is the number of dots taken by a frame.
	DotsPerFrame = DotsPerLine * LinesPerFrame

	// oamScanDots is the fixed length of an OAM scan.
	oamScanDots = 80
	// fifoCapacity holds two 8-pixel slices.
	fifoCapacity = 16
)

// State represents the state of the scanline state machine.
//
//	OamScan -> DrawingPixels -> HorizontalBlank -> OamScan ...
//	... HorizontalBlank (line 143) -> VerticalBlank (10 lines) -> OamScan
type State uint8

const (
	// OamScan (Mode 2) searches OAM for the sprites on the line.
	//
	//	Duration: 80 dots (fixed)
	//	- Locks OAM bus
	//	- STAT interrupt available if enabled via STAT.5
	OamScan State = iota

	// DrawingPixels (Mode 3) runs the pixel fetcher and FIFO,
	// emitting one pixel per dot once the FIFO holds more than
	// 8 pixels.
	//
	//	Duration: variable, depending on SCX and the window
	//	- Locks both OAM and VRAM buses
	//	- No STAT interrupts available
	DrawingPixels

	// HorizontalBlank (Mode 0) idles until the end of the line.
	//
	//	Duration: the remainder of the 456 dot line
	//	- Allows CPU access to VRAM/OAM
	//	- STAT interrupt available if enabled via STAT.3
	HorizontalBlank

	// VerticalBlank (Mode 1) idles through lines 144-153.
	//
	//	Duration: 4560 dots (10 lines)
	//	- Allows full CPU access to VRAM/OAM
	//	- VBlank interrupt requested on entry
	//	- STAT interrupt available if enabled via STAT.4
	VerticalBlank
)

var stateNames = [...]string{"OamScan", "DrawingPixels", "HorizontalBlank", "VerticalBlank"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// mode returns the STAT mode reported in a State.
func (s State) mode() lcd.Mode {
	switch s {
	case OamScan:
		return lcd.OAM
	case DrawingPixels:
		return lcd.VRAM
	case VerticalBlank:
		return lcd.VBlank
	}
	return lcd.HBlank
}

// PPU implements the DMG's (P)ixel (P)rocessing (U)nit.
//
// References:
//   - [Pan Docs](https://gbdev.io/pandocs/Graphics.html)
//   - [Hacktix GBEDG](https://hacktix.github.io/GBEDG/ppu/)
type PPU struct {
	lcdc lcd.Controller // LCDC register
	stat lcd.Status     // STAT register

	// Scroll and window registers
	scy, scx uint8 // Background viewport position
	wy, wx   uint8 // Window Position
	lyc      uint8 // LYC register

	// Palette registers
	bgp, obp0, obp1 uint8

	// Rendering state
	state   State
	line    int   // Current line, -1 before the first dot
	ly      uint8 // Value of the LY register
	lineDot int   // Current dot within the line (0-455)

	// Pixel pipeline
	sprites []Sprite     // Sprites selected by the OAM scan
	fifo    *utils.FIFO[Pixel]
	objects [8]Pixel // Sprite pixels of the next 8 emitted columns
	fetcher fetcher
	discard uint8 // Pixels left to discard for SCX alignment
	emitted uint8 // Pixels emitted on the current line

	// Window rendering state
	wly          uint8 // Window line counter
	winTriggerWy bool  // Window Y-position trigger, latched for the frame
	inWindow     bool  // The fetcher has switched to the window on this line

	b        *io.Bus
	irq      *interrupts.Service
	renderer Renderer
}

// New creates and initializes a PPU attached to b. The PPU is
// off until the LCD is enabled through LCDC.
func New(b *io.Bus, irq *interrupts.Service, r Renderer) *PPU {
	p := &PPU{
		b:        b,
		irq:      irq,
		renderer: r,
		line:     -1,
		sprites:  make([]Sprite, 0, maxSpritesPerLine),
		fifo:     utils.NewFIFO[Pixel](fifoCapacity),
	}
	if p.renderer == nil {
		p.renderer = NewFrameBuffer(nil)
	}

	b.ReserveAddress(types.LCDC, func(v byte) byte {
		enabled := p.lcdc.Enabled
		p.lcdc.Write(v)
		if enabled && !p.lcdc.Enabled {
			p.turnOff()
		}
		return v
	})
	b.ReserveAddress(types.STAT, func(v byte) byte {
		p.stat.Write(v)
		return p.stat.Read()
	})
	b.ReserveLazyReader(types.STAT, func() byte {
		return p.stat.Read()
	})
	b.ReserveAddress(types.SCY, func(v byte) byte {
		p.scy = v
		return v
	})
	b.ReserveAddress(types.SCX, func(v byte) byte {
		p.scx = v
		return v
	})
	b.ReserveAddress(types.LY, func(v byte) byte {
		// LY is read only
		return p.ly
	})
	b.ReserveLazyReader(types.LY, func() byte {
		return p.ly
	})
	b.ReserveAddress(types.LYC, func(v byte) byte {
		p.lyc = v
		if p.lcdc.Enabled {
			p.compareLY()
		}
		return v
	})
	b.ReserveAddress(types.BGP, func(v byte) byte {
		p.bgp = v
		return v
	})
	b.ReserveAddress(types.OBP0, func(v byte) byte {
		p.obp0 = v
		return v
	})
	b.ReserveAddress(types.OBP1, func(v byte) byte {
		p.obp1 = v
		return v
	})
	b.ReserveAddress(types.WY, func(v byte) byte {
		p.wy = v
		return v
	})
	b.ReserveAddress(types.WX, func(v byte) byte {
		p.wx = v
		return v
	})

	return p
}

// SetRenderer replaces the Renderer receiving finished pixels.
func (p *PPU) SetRenderer(r Renderer) {
	p.renderer = r
}

// State returns the current state of the scanline state machine.
func (p *PPU) State() State {
	return p.state
}

// Line returns the current line, which is -1 until the first
// dot after the LCD is enabled.
func (p *PPU) Line() int {
	return p.line
}

// Mode returns the mode reported in STAT.
func (p *PPU) Mode() lcd.Mode {
	return p.stat.Mode
}

// Enabled reports whether the LCD is enabled.
func (p *PPU) Enabled() bool {
	return p.lcdc.Enabled
}

// Dot advances the PPU by a single dot. While the LCD is off the
// PPU is frozen.
func (p *PPU) Dot() {
	if !p.lcdc.Enabled {
		return
	}

	if p.line < 0 {
		p.line = 0
		p.setLY(0)
		p.enterOAMScan()
	}

	switch p.state {
	case OamScan:
		if p.lineDot%2 == 0 {
			p.scanOAM(p.lineDot / 2)
		}
		p.lineDot++
		if p.lineDot == oamScanDots {
			p.enterDrawingPixels()
		}
	case DrawingPixels:
		p.drawDot()
		p.lineDot++
		if p.emitted == ScreenWidth {
			p.enterHorizontalBlank()
		}
	case HorizontalBlank:
		p.lineDot++
		if p.lineDot == DotsPerLine {
			p.endLine()
		}
	case VerticalBlank:
		p.lineDot++
		if p.lineDot == DotsPerLine {
			p.endVerticalBlankLine()
		}
	}
}

func (p *PPU) enterOAMScan() {
	p.state = OamScan
	p.sprites = p.sprites[:0]
	p.b.Lock(io.OAM)

	if p.ly == p.wy {
		p.winTriggerWy = true
	}
	p.setMode(lcd.OAM)
}

// scanOAM checks a single OAM entry, selecting it if it covers
// the current line and fewer than 10 sprites have been selected.
func (p *PPU) scanOAM(entry int) {
	if len(p.sprites) == maxSpritesPerLine {
		return
	}

	addr := 0xFE00 + uint16(entry)*4
	s := newSprite(p.read(addr), p.read(addr+1), p.read(addr+2), p.read(addr+3))
	if s.onLine(p.ly, p.lcdc.SpriteSize) {
		p.sprites = append(p.sprites, s)
	}
}

func (p *PPU) enterDrawingPixels() {
	p.state = DrawingPixels
	p.b.Lock(io.OAM | io.VRAM)

	p.fifo.Reset()
	p.objects = [8]Pixel{}
	p.fetcher.reset(false)
	p.discard = p.scx % 8
	p.emitted = 0
	p.inWindow = false
	p.setMode(lcd.VRAM)
}

// drawDot runs the pixel pipeline for a single dot.
func (p *PPU) drawDot() {
	if !p.inWindow && p.windowTriggered() {
		p.startWindow()
	}

	p.stepFetcher()

	if p.fifo.Size() <= 8 {
		return
	}
	if p.discard > 0 {
		_, _ = p.fifo.Pop()
		p.discard--
		return
	}

	p.mixSprites()
	px, _ := p.fifo.Pop()
	px = px.mix(p.objects[0])
	copy(p.objects[:], p.objects[1:])
	p.objects[7] = Pixel{}
	p.renderer.PushPixel(p.shade(px))
	p.emitted++
}

// windowTriggered reports whether the window starts at the next
// emitted pixel. WX holds the window position plus 7.
func (p *PPU) windowTriggered() bool {
	return p.lcdc.WindowEnabled && p.winTriggerWy && p.wx <= 166 &&
		int(p.emitted)+7 >= int(p.wx)
}

// startWindow switches the fetcher to the window, discarding the
// background pixels left in the FIFO. Pending sprite pixels are
// kept, and mixed over the window.
func (p *PPU) startWindow() {
	p.inWindow = true
	p.fifo.Reset()
	p.fetcher.reset(true)
	p.discard = 0
	if p.wx < 7 {
		p.discard = 7 - p.wx
	}
}

// mixSprites merges every sprite starting at or before the next
// emitted pixel into the sprite pixels. A sprite pixel already
// held for a column always wins.
func (p *PPU) mixSprites() {
	if !p.lcdc.SpriteEnabled {
		return
	}

	for i := range p.sprites {
		s := &p.sprites[i]
		if s.mixed || int(s.X) > int(p.emitted)+8 {
			continue
		}
		s.mixed = true

		addr := s.tileAddress(p.ly, p.lcdc.SpriteSize)
		row := decodeRow(p.read(addr), p.read(addr+1))
		if s.flipX {
			row = reverse(row)
		}

		// columns of sprites partially off the left edge are skipped
		offset := int(p.emitted) + 8 - int(s.X)
		for j := 0; j+offset < 8; j++ {
			if p.objects[j].Colour != 0 || row[j+offset] == 0 {
				continue
			}
			p.objects[j] = Pixel{Source: SourceSprite, Colour: row[j+offset], Priority: s.priority, Palette: s.palette}
		}
	}
}

// shade maps a pixel through its palette register.
func (p *PPU) shade(px Pixel) uint8 {
	if px.Source == SourceSprite {
		if px.Palette == 1 {
			return palette.Shade(p.obp1, px.Colour)
		}
		return palette.Shade(p.obp0, px.Colour)
	}
	return palette.Shade(p.bgp, px.Colour)
}

func (p *PPU) enterHorizontalBlank() {
	p.state = HorizontalBlank
	p.b.Unlock(io.OAM | io.VRAM)
	p.fifo.Reset()
	p.setMode(lcd.HBlank)
}

// endLine advances to the next line after a visible line.
func (p *PPU) endLine() {
	p.lineDot = 0
	if p.inWindow {
		p.wly++
	}
	p.inWindow = false

	p.line++
	p.setLY(uint8(p.line))
	if p.line == ScreenHeight {
		p.enterVerticalBlank()
	} else {
		p.enterOAMScan()
	}
}

func (p *PPU) enterVerticalBlank() {
	p.state = VerticalBlank
	p.irq.Request(interrupts.VBlankFlag)
	p.setMode(lcd.VBlank)
}

// endVerticalBlankLine advances to the next line during the
// vertical blanking period, starting a new frame after line 153.
func (p *PPU) endVerticalBlankLine() {
	p.lineDot = 0
	p.line++
	if p.line < LinesPerFrame {
		p.setLY(uint8(p.line))
		return
	}

	p.line = 0
	p.wly = 0
	p.winTriggerWy = false
	p.setLY(0)
	p.enterOAMScan()
	p.renderer.FrameComplete()
}

// turnOff resets the PPU to its initial state when the LCD is
// turned off. LY reads 0, and STAT reports HBlank.
func (p *PPU) turnOff() {
	p.state = OamScan
	p.line = -1
	p.ly = 0
	p.lineDot = 0
	p.stat.Mode = lcd.HBlank

	p.fifo.Reset()
	p.fetcher.reset(false)
	p.sprites = p.sprites[:0]
	p.wly = 0
	p.winTriggerWy = false
	p.inWindow = false

	// OAM & VRAM bus is released
	p.b.Unlock(io.OAM | io.VRAM)
}

// setMode updates the mode bits of STAT, and requests a STAT
// interrupt if it is enabled for mode.
func (p *PPU) setMode(mode lcd.Mode) {
	p.stat.Mode = mode
	if p.stat.InterruptEnabled(mode) {
		p.irq.Request(interrupts.LCDFlag)
	}
}

func (p *PPU) setLY(ly uint8) {
	p.ly = ly
	p.compareLY()
}

// compareLY updates the coincidence flag, requesting a STAT
// interrupt when LY becomes equal to LYC.
func (p *PPU) compareLY() {
	equal := p.ly == p.lyc
	rising := equal && !p.stat.Coincidence
	p.stat.Coincidence = equal
	if rising && p.stat.CoincidenceInterrupt {
		p.irq.Request(interrupts.LCDFlag)
	}
}
