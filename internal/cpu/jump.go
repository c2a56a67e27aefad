package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/opcodes"
)

// jump executes the jump, call, return and restart instructions,
// and returns whether the branch was taken. Unconditional
// instructions are always taken.
//
//	JP   [cc,] a16   JP HL
//	JR   [cc,] e8
//	CALL [cc,] a16
//	RET  [cc]        RETI
//	RST  vec
func (c *CPU) jump(op *opcodes.Opcode) bool {
	ops := op.Operands
	if len(ops) > 0 && ops[0].Kind == opcodes.KindCondition {
		if !c.condition(opcodes.Condition(ops[0].Value)) {
			return false
		}
		ops = ops[1:]
	}

	switch op.Op {
	case opcodes.OpJP:
		c.PC = c.target(ops[0])
	case opcodes.OpJR:
		c.PC += uint16(int8(c.immediate8()))
	case opcodes.OpCALL:
		c.push(c.PC)
		c.PC = c.immediate16()
	case opcodes.OpRET:
		c.PC = c.pop()
	case opcodes.OpRETI:
		c.PC = c.pop()
		c.irq.EnableImmediate()
	case opcodes.OpRST:
		c.push(c.PC)
		c.PC = ops[0].Value
	}
	return true
}

// target resolves the destination of a JP.
func (c *CPU) target(o opcodes.Operand) uint16 {
	if o.Kind == opcodes.KindAddress16 {
		return c.immediate16()
	}
	return c.read16(o)
}
