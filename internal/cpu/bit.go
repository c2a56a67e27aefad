package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/opcodes"
)

// bit executes the rotate, shift and bit instructions.
func (c *CPU) bit(op *opcodes.Opcode) {
	ops := op.Operands
	switch op.Op {
	case opcodes.OpRLCA, opcodes.OpRRCA, opcodes.OpRLA, opcodes.OpRRA:
		var carry bool
		c.A, carry = c.shift(op.Op, c.A)
		c.applyFlags(op, false, false, false, carry)
	case opcodes.OpBIT:
		v := c.resolve8(ops[1]).get()
		c.applyFlags(op, v&(1<<ops[0].Value) == 0, false, true, false)
	case opcodes.OpRES:
		loc := c.resolve8(ops[1])
		loc.set(loc.get() &^ (1 << ops[0].Value))
	case opcodes.OpSET:
		loc := c.resolve8(ops[1])
		loc.set(loc.get() | 1<<ops[0].Value)
	default:
		loc := c.resolve8(ops[0])
		r, carry := c.shift(op.Op, loc.get())
		loc.set(r)
		c.applyFlags(op, r == 0, false, false, carry)
	}
}

// shift performs a rotate, shift or swap of n, returning the
// result and the bit shifted out.
//
//	RLC/RLCA - rotate left, bit 7 to carry and bit 0
//	RRC/RRCA - rotate right, bit 0 to carry and bit 7
//	RL/RLA   - rotate left through carry
//	RR/RRA   - rotate right through carry
//	SLA      - shift left into carry, bit 0 reset
//	SRA      - shift right into carry, bit 7 unchanged
//	SRL      - shift right into carry, bit 7 reset
//	SWAP     - swap nibbles, carry reset
func (c *CPU) shift(o opcodes.Op, n uint8) (uint8, bool) {
	switch o {
	case opcodes.OpRLC, opcodes.OpRLCA:
		return n<<1 | n>>7, n&0x80 != 0
	case opcodes.OpRRC, opcodes.OpRRCA:
		return n>>1 | n<<7, n&0x01 != 0
	case opcodes.OpRL, opcodes.OpRLA:
		return n<<1 | c.carry(), n&0x80 != 0
	case opcodes.OpRR, opcodes.OpRRA:
		return n>>1 | c.carry()<<7, n&0x01 != 0
	case opcodes.OpSLA:
		return n << 1, n&0x80 != 0
	case opcodes.OpSRA:
		return n>>1 | n&0x80, n&0x01 != 0
	case opcodes.OpSRL:
		return n >> 1, n&0x01 != 0
	case opcodes.OpSWAP:
		return n<<4 | n>>4, false
	}
	return n, false
}
