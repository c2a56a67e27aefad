package types

// Register represents a GB Register which is used to hold an 8-bit value.
// The CPU has 8 registers: A, B, C, D, E, H, L, and F. The F register is
// special in that it is used to hold the flags.
type Register = uint8

// RegisterPair represents a pair of GB Registers which is used to hold a 16-bit
// value. The CPU has 4 register pairs: AF, BC, DE, and HL.
type RegisterPair struct {
	High *Register
	Low  *Register

	// mask is applied to the low register on writes, so that
	// the unused bits of F always read 0.
	mask uint8
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value) & r.mask
}

// Registers represents the SM83 register file. The pair pointers
// alias the 8-bit registers, so writing BC is observable through
// B and C and vice versa.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register

	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
	AF *RegisterPair
}

// NewRegisters returns a zeroed register file with its pairs wired.
func NewRegisters() *Registers {
	r := &Registers{}
	r.wire()
	return r
}

func (r *Registers) wire() {
	r.BC = &RegisterPair{High: &r.B, Low: &r.C, mask: 0xFF}
	r.DE = &RegisterPair{High: &r.D, Low: &r.E, mask: 0xFF}
	r.HL = &RegisterPair{High: &r.H, Low: &r.L, mask: 0xFF}
	r.AF = &RegisterPair{High: &r.A, Low: &r.F, mask: 0xF0}
}

// Pair returns the register pair with the given name (AF, BC,
// DE or HL), or nil if the name is not a register pair.
func (r *Registers) Pair(name string) *RegisterPair {
	switch name {
	case "AF":
		return r.AF
	case "BC":
		return r.BC
	case "DE":
		return r.DE
	case "HL":
		return r.HL
	}
	return nil
}

// Register returns a pointer to the 8-bit register with the
// given name, or nil if there is no such register.
func (r *Registers) Register(name string) *Register {
	switch name {
	case "A":
		return &r.A
	case "B":
		return &r.B
	case "C":
		return &r.C
	case "D":
		return &r.D
	case "E":
		return &r.E
	case "F":
		return &r.F
	case "H":
		return &r.H
	case "L":
		return &r.L
	}
	return nil
}
