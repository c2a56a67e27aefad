// Package cartridge provides the cartridges of the DMG. The
// cartridge holds the game ROM and any external RAM, and decides
// which banks are visible on the bus.
package cartridge

import (
	"errors"
	"fmt"
)

const (
	romBankSize = 0x4000
	ramBankSize = 0x2000
)

// ErrHeaderTooShort is returned for ROMs that end before the
// end of the cartridge header.
var ErrHeaderTooShort = errors.New("cartridge: ROM is too short to hold a header")

// UnsupportedTypeError is returned for cartridges with a memory
// bank controller that is not implemented.
type UnsupportedTypeError struct {
	Type Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("cartridge: unsupported cartridge type %s", e.Type)
}

// Cartridge represents a basic game cartridge.
type Cartridge interface {
	// Read reads from ROM (0x0000 - 0x7FFF) or external RAM
	// (0xA000 - 0xBFFF).
	Read(address uint16) uint8
	// Write writes to external RAM, or to the bank controller
	// when address is in ROM.
	Write(address uint16, value uint8)

	Header() Header
}

// New parses the header of rom and returns the matching
// Cartridge.
func New(rom []byte) (Cartridge, error) {
	header, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}

	switch header.CartridgeType {
	case ROM, ROMRAM, ROMRAMBATT:
		return NewROMCartridge(rom, header), nil
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return NewMemoryBankedCartridge1(rom, header), nil
	}

	return nil, &UnsupportedTypeError{Type: header.CartridgeType}
}

// romByte returns the byte at offset in rom, or 0xFF past its end.
func romByte(rom []byte, offset int) uint8 {
	if offset < len(rom) {
		return rom[offset]
	}
	return 0xFF
}
