package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/opcodes"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// control executes the control instructions.
//
//	NOP
//	STOP
//	HALT
//	DI
//	EI
func (c *CPU) control(op *opcodes.Opcode) {
	switch op.Op {
	case opcodes.OpSTOP:
		c.mode = ModeStop
		// STOP resets the divider
		c.b.Write(types.DIV, 0, io.CPU, false)
	case opcodes.OpHALT:
		c.halt()
	case opcodes.OpDI:
		c.irq.Disable()
	case opcodes.OpEI:
		c.irq.EnableDelayed()
	}
}

// halt enters ModeHalt. When the IME is disabled and an interrupt
// is already pending, the CPU does not halt, and instead fails to
// increment PC on the next instruction fetch (the halt bug).
func (c *CPU) halt() {
	if c.irq.IME == interrupts.Disabled && c.irq.HasInterrupts() {
		c.haltBug = true
		return
	}
	c.mode = ModeHalt
}
