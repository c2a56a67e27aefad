package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/opcodes"
)

// alu executes the arithmetic and logic instructions.
func (c *CPU) alu(op *opcodes.Opcode) {
	ops := op.Operands
	switch op.Op {
	case opcodes.OpADD:
		switch {
		case ops[0].Name == "SP":
			c.SP = c.addSigned(op, c.SP, c.immediate8())
		case wide(ops[0]):
			c.addHL(op, c.read16(ops[1]))
		default:
			c.A = c.add(op, c.A, c.resolve8(ops[1]).get(), 0)
		}
	case opcodes.OpADC:
		c.A = c.add(op, c.A, c.resolve8(ops[1]).get(), c.carry())
	case opcodes.OpSUB:
		c.A = c.sub(op, c.A, c.resolve8(ops[1]).get(), 0)
	case opcodes.OpSBC:
		c.A = c.sub(op, c.A, c.resolve8(ops[1]).get(), c.carry())
	case opcodes.OpCP:
		c.sub(op, c.A, c.resolve8(ops[1]).get(), 0)
	case opcodes.OpAND:
		c.A &= c.resolve8(ops[1]).get()
		c.applyFlags(op, c.A == 0, false, true, false)
	case opcodes.OpXOR:
		c.A ^= c.resolve8(ops[1]).get()
		c.applyFlags(op, c.A == 0, false, false, false)
	case opcodes.OpOR:
		c.A |= c.resolve8(ops[1]).get()
		c.applyFlags(op, c.A == 0, false, false, false)
	case opcodes.OpINC:
		c.incDec(op, 1)
	case opcodes.OpDEC:
		c.incDec(op, 0xFF)
	case opcodes.OpDAA:
		c.daa(op)
	case opcodes.OpCPL:
		c.A = ^c.A
		c.applyFlags(op, false, true, true, false)
	case opcodes.OpSCF:
		c.applyFlags(op, false, false, false, true)
	case opcodes.OpCCF:
		c.applyFlags(op, false, false, false, !c.isFlagSet(FlagCarry))
	}
}

// add adds b and the carry-in to a.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(op *opcodes.Opcode, a, b, carry uint8) uint8 {
	sum := uint16(a) + uint16(b) + uint16(carry)
	half := a&0xF + b&0xF + carry
	c.applyFlags(op, uint8(sum) == 0, false, half > 0xF, sum > 0xFF)
	return uint8(sum)
}

// sub subtracts b and the carry-in from a. Used by SUB, SBC
// and CP.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(op *opcodes.Opcode, a, b, carry uint8) uint8 {
	diff := int16(a) - int16(b) - int16(carry)
	half := int16(a&0xF) - int16(b&0xF) - int16(carry)
	c.applyFlags(op, uint8(diff) == 0, true, half < 0, diff < 0)
	return uint8(diff)
}

// addHL adds v to HL as two 8-bit additions, taking the flags
// from the high byte.
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(op *opcodes.Opcode, v uint16) {
	low := uint16(c.L) + v&0xFF
	carry := uint16(low >> 8)
	high := uint16(c.H) + v>>8 + carry
	half := uint16(c.H&0xF) + (v>>8)&0xF + carry

	c.L = uint8(low)
	c.H = uint8(high)
	c.applyFlags(op, false, false, half > 0xF, high > 0xFF)
}

// addSigned adds the signed offset e to v, as ADD SP, e8 and
// LD HL, SP+e8 do. The carries are taken from the unsigned
// addition of the low byte of v and e.
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSigned(op *opcodes.Opcode, v uint16, e uint8) uint16 {
	result := v + uint16(int8(e))
	half := v&0xF+uint16(e&0xF) > 0xF
	carry := v&0xFF+uint16(e) > 0xFF
	c.applyFlags(op, false, false, half, carry)
	return result
}

// incDec adds delta (1 or 0xFF) to the single operand of an INC
// or DEC. 16-bit registers wrap without affecting the flags.
//
// Flags affected (8-bit):
//
//	Z - Set if result is zero.
//	N - Reset for INC, set for DEC.
//	H - Set if carry from bit 3, or borrow from bit 4.
//	C - Not affected.
func (c *CPU) incDec(op *opcodes.Opcode, delta uint8) {
	o := op.Operands[0]
	if o.Kind == opcodes.KindRegister16 {
		c.write16(o, c.read16(o)+uint16(int8(delta)))
		return
	}

	loc := c.resolve8(o)
	v := loc.get()
	r := v + delta
	loc.set(r)

	var half bool
	if delta == 1 {
		half = v&0xF == 0xF
	} else {
		half = v&0xF == 0
	}
	c.applyFlags(op, r == 0, delta != 1, half, false)
}

// daa adjusts A to a binary coded decimal after an addition or
// subtraction, using N, H and C to determine which one.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set if an adjustment of 0x60 was made.
func (c *CPU) daa(op *opcodes.Opcode) {
	var correction uint8
	carry := c.isFlagSet(FlagCarry)
	if c.isFlagSet(FlagHalfCarry) || (!c.isFlagSet(FlagSubtract) && c.A&0xF > 0x9) {
		correction |= 0x06
	}
	if carry || (!c.isFlagSet(FlagSubtract) && c.A > 0x99) {
		correction |= 0x60
		carry = true
	}

	if c.isFlagSet(FlagSubtract) {
		c.A -= correction
	} else {
		c.A += correction
	}
	c.applyFlags(op, c.A == 0, false, false, carry)
}
