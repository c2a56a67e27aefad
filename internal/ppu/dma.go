package ppu

import (
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// dmaLength is the number of bytes copied by an OAM DMA transfer.
const dmaLength = 160

// DMA is the OAM DMA controller. Writing a page number to the DMA
// register copies 160 bytes from that page into OAM, one byte
// per machine cycle.
type DMA struct {
	remaining uint16
	source    uint16
	value     uint8

	b *io.Bus
}

// NewDMA returns a new DMA controller attached to b.
func NewDMA(b *io.Bus) *DMA {
	d := &DMA{b: b}
	b.ReserveAddress(types.DMA, func(v byte) byte {
		d.value = v
		d.source = uint16(v) << 8
		d.remaining = dmaLength
		return v
	})
	b.ReserveLazyReader(types.DMA, func() byte {
		return d.value
	})
	return d
}

// Tick copies a single byte if a transfer is in progress.
func (d *DMA) Tick() {
	if d.remaining == 0 {
		return
	}

	offset := dmaLength - d.remaining
	source := d.source + offset
	// sources above 0xE000 read from WRAM instead of echo RAM and OAM
	if source >= 0xE000 {
		source &^= 0x2000
	}

	// write directly to OAM to avoid any locking
	d.b.Write(0xFE00+offset, d.b.Read(source, io.PPU, true), io.PPU, true)
	d.remaining--
}

// IsTransferring reports whether a transfer is in progress.
func (d *DMA) IsTransferring() bool {
	return d.remaining > 0
}
