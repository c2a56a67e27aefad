package cartridge

// ROMCartridge represents a ROM cartridge. This cartridge type is the simplest
// cartridge type and has no MBC, with up to 8kB of optional external RAM.
type ROMCartridge struct {
	rom    []byte
	ram    []byte
	header Header
}

// NewROMCartridge returns a new ROM cartridge.
func NewROMCartridge(rom []byte, header Header) *ROMCartridge {
	r := &ROMCartridge{
		rom:    rom,
		header: header,
	}
	if header.CartridgeType != ROM && header.RAMSize > 0 {
		r.ram = make([]byte, ramBankSize)
	}
	return r
}

// Read returns the value at the given address.
func (r *ROMCartridge) Read(address uint16) uint8 {
	if address >= 0xA000 {
		offset := int(address - 0xA000)
		if offset < len(r.ram) {
			return r.ram[offset]
		}
		return 0xFF
	}
	return romByte(r.rom, int(address))
}

// Write writes the value to external RAM. Writes to ROM are ignored.
func (r *ROMCartridge) Write(address uint16, value uint8) {
	if address >= 0xA000 {
		if offset := int(address - 0xA000); offset < len(r.ram) {
			r.ram[offset] = value
		}
	}
}

// Header returns the parsed cartridge header.
func (r *ROMCartridge) Header() Header {
	return r.header
}
