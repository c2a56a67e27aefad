// Package io provides the memory-mapped bus shared by the CPU
// and the PPU. Devices attach to the bus by reserving the
// hardware registers they implement.
package io

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// Origin identifies the device performing a bus access.
type Origin uint8

const (
	// CPU accesses are subject to the OAM and VRAM bus locks.
	CPU Origin = iota
	// PPU accesses ignore the bus locks.
	PPU
)

func (o Origin) String() string {
	if o == PPU {
		return "PPU"
	}
	return "CPU"
}

// Region is a set of memory regions that can be locked by the
// PPU while it is using them.
type Region uint8

const (
	// OAM covers 0xFE00 - 0xFE9F.
	OAM Region = 1 << iota
	// VRAM covers 0x8000 - 0x9FFF.
	VRAM
)

// Cartridge is the part of a cartridge visible to the bus. Writes
// to 0x0000 - 0x7FFF never modify ROM, they are passed on so that
// the cartridge can switch banks.
type Cartridge interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// WriteHandler handles a write to a hardware register. It
// returns the value to be stored in the register.
type WriteHandler func(byte) byte

// LazyReader produces the value of a hardware register when it
// is read, for registers whose value is owned by a device.
type LazyReader func() byte

// Bus is the 64 KiB address space of the DMG.
//
//	0x0000 - 0x7FFF  Cartridge ROM (boot ROM overlay at 0x0000 - 0x00FF)
//	0x8000 - 0x9FFF  VRAM
//	0xA000 - 0xBFFF  Cartridge RAM
//	0xC000 - 0xDFFF  WRAM
//	0xE000 - 0xFDFF  Echo of 0xC000 - 0xDDFF
//	0xFE00 - 0xFE9F  OAM
//	0xFEA0 - 0xFEFF  Unusable
//	0xFF00 - 0xFF7F  Hardware registers
//	0xFF80 - 0xFFFE  HRAM
//	0xFFFF           IE
//
// Without a cartridge attached, the cartridge regions behave
// as plain RAM.
type Bus struct {
	data [0x10000]byte

	writeHandlers  [0x100]WriteHandler
	directHandlers [0x100]WriteHandler
	lazyReaders    [0x100]LazyReader

	cart    Cartridge
	boot    []byte
	booting bool

	locked Region
}

// NewBus returns a new Bus with every hardware register
// reading 0xFF until a device claims it.
func NewBus() *Bus {
	b := &Bus{}
	for addr := 0xFF00; addr < 0xFF80; addr++ {
		b.data[addr] = 0xFF
	}

	b.ReserveAddress(types.BDIS, func(v byte) byte {
		if v != 0 {
			b.booting = false
		}
		return 0xFF
	})

	return b
}

// AttachCartridge maps the cartridge into the ROM and external
// RAM regions.
func (b *Bus) AttachCartridge(c Cartridge) {
	b.cart = c
}

// AttachBootROM overlays rom over the start of the address
// space until a non-zero value is written to types.BDIS.
func (b *Bus) AttachBootROM(rom []byte) {
	b.boot = rom
	b.booting = len(rom) > 0
}

// IsBooting reports whether the boot ROM is mapped.
func (b *Bus) IsBooting() bool {
	return b.booting
}

// ReserveAddress reserves a hardware register on the bus. The
// handler is called on every write from the CPU, and its result
// is stored in the register.
func (b *Bus) ReserveAddress(addr uint16, handler WriteHandler) {
	b.checkHardware(addr)
	if b.writeHandlers[addr&0xFF] != nil {
		panic(fmt.Sprintf("address %04X has already been reserved", addr))
	}
	b.writeHandlers[addr&0xFF] = handler
}

// ReserveDirectAddress reserves the handler used for direct
// writes to a hardware register. Direct writes to a register
// without a direct handler are stored as is.
func (b *Bus) ReserveDirectAddress(addr uint16, handler WriteHandler) {
	b.checkHardware(addr)
	b.directHandlers[addr&0xFF] = handler
}

// ReserveLazyReader reserves a reader for a hardware register,
// called whenever the register is read.
func (b *Bus) ReserveLazyReader(addr uint16, reader LazyReader) {
	b.checkHardware(addr)
	b.lazyReaders[addr&0xFF] = reader
}

// MapUnused reserves every unclaimed hardware register, so that
// writes are ignored and reads return 0xFF.
func (b *Bus) MapUnused() {
	for addr := uint16(0xFF00); addr < 0xFF80; addr++ {
		if b.writeHandlers[addr&0xFF] == nil {
			b.data[addr] = 0xFF
			b.writeHandlers[addr&0xFF] = func(byte) byte { return 0xFF }
		}
	}
}

func (b *Bus) checkHardware(addr uint16) {
	if addr < 0xFF00 || addr >= 0xFF80 && addr != types.IE {
		panic(fmt.Sprintf("address %04X is not a hardware register", addr))
	}
}

// Lock locks the given regions for CPU accesses.
func (b *Bus) Lock(r Region) {
	b.locked |= r
}

// Unlock unlocks the given regions.
func (b *Bus) Unlock(r Region) {
	b.locked &^= r
}

// Locked reports whether any of the given regions are locked.
func (b *Bus) Locked(r Region) bool {
	return b.locked&r != 0
}

func (b *Bus) blocked(addr uint16, origin Origin, direct bool) bool {
	if origin != CPU || direct || b.locked == 0 {
		return false
	}
	switch {
	case addr >= 0x8000 && addr < 0xA000:
		return b.locked&VRAM != 0
	case addr >= 0xFE00 && addr < 0xFEA0:
		return b.locked&OAM != 0
	}
	return false
}

// Read returns the value at addr as seen by origin. direct reads
// ignore the bus locks.
func (b *Bus) Read(addr uint16, origin Origin, direct bool) uint8 {
	if b.blocked(addr, origin, direct) {
		return 0xFF
	}

	switch {
	case addr < 0x8000:
		if b.booting && int(addr) < len(b.boot) {
			return b.boot[addr]
		}
		if b.cart != nil {
			return b.cart.Read(addr)
		}
	case addr >= 0xA000 && addr < 0xC000:
		if b.cart != nil {
			return b.cart.Read(addr)
		}
	case addr >= 0xE000 && addr < 0xFE00:
		return b.data[addr-0x2000]
	case addr >= 0xFEA0 && addr < 0xFF00:
		return 0xFF
	case addr >= 0xFF00:
		if r := b.lazyReaders[addr&0xFF]; r != nil {
			return r()
		}
	}

	return b.data[addr]
}

// Write writes value to addr on behalf of origin. direct writes
// ignore the bus locks, and bypass the side effects of hardware
// registers, such as DIV resetting on write.
func (b *Bus) Write(addr uint16, value uint8, origin Origin, direct bool) {
	if b.blocked(addr, origin, direct) {
		return
	}

	switch {
	case addr < 0x8000, addr >= 0xA000 && addr < 0xC000:
		if b.cart != nil {
			b.cart.Write(addr, value)
			return
		}
	case addr >= 0xE000 && addr < 0xFE00:
		addr -= 0x2000
	case addr >= 0xFEA0 && addr < 0xFF00:
		return
	case addr >= 0xFF00:
		if direct {
			if h := b.directHandlers[addr&0xFF]; h != nil {
				value = h(value)
			}
		} else if h := b.writeHandlers[addr&0xFF]; h != nil {
			value = h(value)
		}
	}

	b.data[addr] = value
}

// Get gets the value stored at the specified memory address,
// bypassing devices, handlers and locks.
func (b *Bus) Get(addr uint16) byte {
	return b.data[addr]
}

// Set sets the value stored at the specified memory address,
// bypassing devices, handlers and locks.
func (b *Bus) Set(addr uint16, value byte) {
	b.data[addr] = value
}

// SetBit sets the bit at the specified memory address.
func (b *Bus) SetBit(addr uint16, bit byte) {
	b.data[addr] |= bit
}

// ClearBit clears the bit at the specified memory address.
func (b *Bus) ClearBit(addr uint16, bit byte) {
	b.data[addr] &= ^bit
}

// TestBit tests the bit at the specified memory address.
func (b *Bus) TestBit(addr uint16, bit byte) bool {
	return b.data[addr]&bit != 0
}
