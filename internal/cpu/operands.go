package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/opcodes"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// immediate8 returns the first operand byte of the current instruction.
func (c *CPU) immediate8() uint8 {
	return c.data[0]
}

// immediate16 returns the little endian operand word of the
// current instruction.
func (c *CPU) immediate16() uint16 {
	return utils.BytesToUint16(c.data[1], c.data[0])
}

// address resolves the memory address of an indirect operand.
// [HL+] and [HL-] adjust HL after the address is taken, so each
// indirect operand must be resolved only once per instruction.
func (c *CPU) address(o opcodes.Operand) uint16 {
	switch o.Kind {
	case opcodes.KindAddress8:
		return 0xFF00 | uint16(c.immediate8())
	case opcodes.KindAddress16:
		return c.immediate16()
	}

	switch o.Name {
	case "C":
		return 0xFF00 | uint16(c.C)
	case "HL":
		addr := c.HL.Uint16()
		if o.Increment {
			c.HL.SetUint16(addr + 1)
		} else if o.Decrement {
			c.HL.SetUint16(addr - 1)
		}
		return addr
	}
	return c.Pair(o.Name).Uint16()
}

// operand8 is an 8-bit location resolved from an operand: a
// register, a memory address or an immediate value.
type operand8 struct {
	c    *CPU
	reg  *uint8
	addr uint16
	mem  bool
	imm  uint8
}

// resolve8 resolves o into an 8-bit location.
func (c *CPU) resolve8(o opcodes.Operand) operand8 {
	switch o.Kind {
	case opcodes.KindRegister8:
		return operand8{c: c, reg: c.Register(o.Name)}
	case opcodes.KindImmediate8, opcodes.KindSigned8:
		return operand8{c: c, imm: c.immediate8()}
	}
	return operand8{c: c, addr: c.address(o), mem: true}
}

func (o operand8) get() uint8 {
	switch {
	case o.reg != nil:
		return *o.reg
	case o.mem:
		return o.c.readByte(o.addr)
	}
	return o.imm
}

func (o operand8) set(v uint8) {
	switch {
	case o.reg != nil:
		*o.reg = v
	case o.mem:
		o.c.writeByte(o.addr, v)
	}
}

// read16 reads a 16-bit register or immediate operand.
func (c *CPU) read16(o opcodes.Operand) uint16 {
	switch {
	case o.Kind == opcodes.KindImmediate16:
		return c.immediate16()
	case o.Name == "SP":
		return c.SP
	}
	return c.Pair(o.Name).Uint16()
}

// write16 writes a 16-bit register operand.
func (c *CPU) write16(o opcodes.Operand, v uint16) {
	if o.Name == "SP" {
		c.SP = v
		return
	}
	c.Pair(o.Name).SetUint16(v)
}

// wide reports whether o is a 16-bit operand.
func wide(o opcodes.Operand) bool {
	return o.Kind == opcodes.KindRegister16 || o.Kind == opcodes.KindImmediate16
}
