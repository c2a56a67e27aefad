package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/opcodes"
)

// load executes the load instructions.
//
//	LD  r, r'      LD  r, n8     LD  r, [rr]    LD  [rr], r
//	LD  [HL+], A   LD  A, [HL-]  LD  [a16], A   LD  A, [a16]
//	LDH [a8], A    LDH A, [C]    LD  rr, n16    LD  [a16], SP
//	LD  SP, HL     LD  HL, SP+e8 PUSH rr        POP rr
func (c *CPU) load(op *opcodes.Opcode) {
	ops := op.Operands
	switch op.Op {
	case opcodes.OpPUSH:
		c.push(c.read16(ops[0]))
		return
	case opcodes.OpPOP:
		c.write16(ops[0], c.pop())
		return
	}

	// LD HL, SP+e8
	if len(ops) == 3 {
		c.HL.SetUint16(c.addSigned(op, c.SP, c.immediate8()))
		return
	}

	dst, src := ops[0], ops[1]
	switch {
	case dst.Kind == opcodes.KindAddress16 && src.Name == "SP":
		addr := c.immediate16()
		c.writeByte(addr, uint8(c.SP))
		c.writeByte(addr+1, uint8(c.SP>>8))
	case wide(dst):
		c.write16(dst, c.read16(src))
	default:
		v := c.resolve8(src).get()
		c.resolve8(dst).set(v)
	}
}
