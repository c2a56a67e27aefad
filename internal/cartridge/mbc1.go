package cartridge

// MemoryBankedCartridge1 represents a MemoryBankedCartridge1 cartridge. This cartridge
// type supports up to 2MB of ROM in 16kB banks, and up to 32kB of RAM in 8kB banks.
//
//	0x0000 - 0x1FFF  RAM enable (0x0A in the lower nibble)
//	0x2000 - 0x3FFF  ROM bank number, lower 5 bits (0 selects 1)
//	0x4000 - 0x5FFF  RAM bank number, or upper 2 bits of the ROM bank number
//	0x6000 - 0x7FFF  Banking mode select
type MemoryBankedCartridge1 struct {
	rom     []byte
	romBank uint8 // lower 5 bits of the ROM bank
	upper   uint8 // 2-bit register, upper ROM bits or RAM bank

	ram        []byte
	ramEnabled bool

	// advanced banking mode applies upper to 0x0000 - 0x3FFF and RAM
	advanced bool

	header Header
}

// NewMemoryBankedCartridge1 returns a new MemoryBankedCartridge1 cartridge.
func NewMemoryBankedCartridge1(rom []byte, header Header) *MemoryBankedCartridge1 {
	m := &MemoryBankedCartridge1{
		rom:     rom,
		romBank: 1,
		header:  header,
	}
	if header.CartridgeType != MBC1 {
		m.ram = make([]byte, header.RAMSize)
	}
	return m
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected.
func (m *MemoryBankedCartridge1) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		var bank int
		if m.advanced {
			bank = int(m.upper) << 5
		}
		return romByte(m.rom, m.romOffset(bank, address))
	case address < 0x8000:
		bank := int(m.upper)<<5 | int(m.romBank)
		return romByte(m.rom, m.romOffset(bank, address-0x4000))
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled && len(m.ram) > 0 {
			return m.ram[m.ramOffset(address)]
		}
	}

	return 0xFF
}

// Write attempts to switch the ROM or RAM bank, or writes to RAM.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.romBank = value & 0x1F
		if m.romBank == 0 {
			m.romBank = 1
		}
	case address < 0x6000:
		m.upper = value & 0x03
	case address < 0x8000:
		m.advanced = value&0x01 == 0x01
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled && len(m.ram) > 0 {
			m.ram[m.ramOffset(address)] = value
		}
	}
}

// romOffset returns the offset into the ROM of address in bank,
// wrapping banks past the end of the ROM.
func (m *MemoryBankedCartridge1) romOffset(bank int, address uint16) int {
	if banks := len(m.rom) / romBankSize; banks > 0 {
		bank %= banks
	}
	return bank*romBankSize + int(address)
}

// ramOffset returns the offset into the RAM of address.
func (m *MemoryBankedCartridge1) ramOffset(address uint16) int {
	offset := int(address - 0xA000)
	if m.advanced {
		offset += int(m.upper) * ramBankSize
	}
	return offset % len(m.ram)
}

// Header returns the parsed cartridge header.
func (m *MemoryBankedCartridge1) Header() Header {
	return m.header
}
