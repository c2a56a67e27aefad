package ppu

import (
	"github.com/thelolagemann/dmgcore/internal/io"
)

// FetcherState represents the steps of the background/window
// pixel slice fetcher. Each step takes 2 dots, apart from
// FetcherPush, which is retried every dot until the FIFO has
// room for 8 more pixels.
type FetcherState uint8

const (
	// FetcherGetTile reads the tile ID from the tile map.
	FetcherGetTile FetcherState = iota
	// FetcherGetTileDataLow reads the low byte of the tile row.
	FetcherGetTileDataLow
	// FetcherGetTileDataHigh reads the high byte of the tile row.
	FetcherGetTileDataHigh
	// FetcherPush pushes the 8 decoded pixels to the FIFO.
	FetcherPush
)

func (s FetcherState) String() string {
	switch s {
	case FetcherGetTile:
		return "GetTile"
	case FetcherGetTileDataLow:
		return "GetTileDataLow"
	case FetcherGetTileDataHigh:
		return "GetTileDataHigh"
	}
	return "Push"
}

// fetcher fetches 8-pixel slices of the background or window.
type fetcher struct {
	state  FetcherState
	ticks  uint8 // dots spent in the current state
	x      uint8 // tile column, relative to the first fetched tile
	window bool

	tileID uint8
	data   [2]uint8
}

// reset restarts the fetcher at the first tile of the background
// or window.
func (f *fetcher) reset(window bool) {
	*f = fetcher{window: window}
}

// stepFetcher advances the fetcher by a single dot.
func (p *PPU) stepFetcher() {
	f := &p.fetcher
	if f.state == FetcherPush {
		if p.fifo.Size() > 8 {
			return
		}
		row := decodeRow(f.data[0], f.data[1])
		if !p.lcdc.BackgroundEnabled {
			row = [8]uint8{}
		}
		for _, c := range row {
			// the FIFO has room for at least 8 pixels
			_ = p.fifo.Push(Pixel{Source: SourceBackground, Colour: c})
		}
		f.x++
		f.state, f.ticks = FetcherGetTile, 0
		return
	}

	f.ticks++
	if f.ticks < 2 {
		return
	}
	f.ticks = 0

	switch f.state {
	case FetcherGetTile:
		f.tileID = p.read(p.tileMapAddress())
	case FetcherGetTileDataLow:
		f.data[0] = p.read(p.tileDataAddress())
	case FetcherGetTileDataHigh:
		f.data[1] = p.read(p.tileDataAddress() + 1)
	}
	f.state++
}

// tileMapAddress returns the address of the tile map entry for
// the tile being fetched.
func (p *PPU) tileMapAddress() uint16 {
	if p.fetcher.window {
		row := uint16(p.wly/8) * 32
		return p.lcdc.WindowTileMapAddress + row + uint16(p.fetcher.x&0x1F)
	}
	y := p.ly + p.scy
	x := (p.scx/8 + p.fetcher.x) & 0x1F
	return p.lcdc.BackgroundTileMapAddress + uint16(y/8)*32 + uint16(x)
}

// tileDataAddress returns the address of the row of tile data
// being fetched.
func (p *PPU) tileDataAddress() uint16 {
	var row uint8
	if p.fetcher.window {
		row = p.wly % 8
	} else {
		row = (p.ly + p.scy) % 8
	}
	return p.lcdc.TileDataAddress(p.fetcher.tileID) + uint16(row)*2
}

// read reads VRAM or OAM on behalf of the PPU, ignoring the bus
// locks.
func (p *PPU) read(addr uint16) uint8 {
	return p.b.Read(addr, io.PPU, false)
}
