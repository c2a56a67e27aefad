package cartridge

import (
	"fmt"
	"strings"
)

const (
	headerStart = 0x0100
	headerEnd   = 0x0150
)

var (
	ramMAP = map[uint8]uint{
		0x00: 0,
		0x02: 8 * 1024,
		0x03: 32 * 1024,
		0x04: 128 * 1024,
		0x05: 64 * 1024,
	}
)

// Type is the cartridge type byte of the header, naming the
// memory bank controller and any extra hardware.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MMM01             Type = 0x0B
	MMM01RAM          Type = 0x0C
	MMM01RAMBATT      Type = 0x0D
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
	POCKETCAMERA      Type = 0x1F
	BANDAITAMA5       Type = 0xFD
	HUDSONHUC3        Type = 0xFE
	HUDSONHUC1        Type = 0xFF
)

var typeNames = map[Type]string{
	ROM:         "ROM",
	MBC1:        "MBC1",
	MBC1RAM:     "MBC1+RAM",
	MBC1RAMBATT: "MBC1+RAM+BATTERY",
	MBC2:        "MBC2",
	MBC2BATT:    "MBC2+BATTERY",
	ROMRAM:      "ROM+RAM",
	ROMRAMBATT:  "ROM+RAM+BATTERY",
	MBC3:        "MBC3",
	MBC5:        "MBC5",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", uint8(t))
}

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game, without any trailing padding
	Title string

	// 0x0147 - CartridgeType of the cartridge.
	CartridgeType Type
	// 0x0148 - ROMSize in bytes, calculated by 32kB x (1 << n)
	ROMSize uint
	// 0x0149 - RAMSize in bytes
	RAMSize uint

	// 0x014D - HeaderChecksum over 0x0134-0x014C
	HeaderChecksum uint8
	// 0x014E-0x014F - GlobalChecksum (big endian), not verified by hardware
	GlobalChecksum uint16

	checksum uint8 // computed header checksum
}

// parseHeader parses the header of the given ROM.
func parseHeader(rom []byte) (Header, error) {
	if len(rom) < headerEnd {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrHeaderTooShort, len(rom))
	}
	header := rom[headerStart:headerEnd]

	h := Header{
		Title:          strings.TrimRight(string(header[0x34:0x44]), "\x00 "),
		CartridgeType:  Type(header[0x47]),
		ROMSize:        (32 * 1024) * (1 << (header[0x48] & 0x0F)),
		RAMSize:        ramMAP[header[0x49]],
		HeaderChecksum: header[0x4D],
		GlobalChecksum: uint16(header[0x4E])<<8 | uint16(header[0x4F]),
	}

	for _, b := range header[0x34:0x4D] {
		h.checksum = h.checksum - b - 1
	}

	return h, nil
}

// ValidChecksum reports whether the header checksum matches the
// header, which the boot ROM checks before starting a game.
func (h Header) ValidChecksum() bool {
	return h.checksum == h.HeaderChecksum
}

func (h Header) String() string {
	return fmt.Sprintf("%s | Type: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
