package cpu

import "github.com/thelolagemann/dmgcore/internal/opcodes"

type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// setFlag sets or clears a flag in the F register.
func (c *CPU) setFlag(flag Flag, set bool) {
	if set {
		c.F |= 1 << flag
	} else {
		c.F &^= 1 << flag
	}
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&(1<<flag) != 0
}

// carry returns the carry flag as 0 or 1.
func (c *CPU) carry() uint8 {
	return (c.F >> FlagCarry) & 1
}

// applyFlags updates the flags as described by the flag effects
// of op. A Computed flag takes the given value, the remaining
// effects ignore it.
func (c *CPU) applyFlags(op *opcodes.Opcode, z, n, h, cy bool) {
	c.applyFlag(FlagZero, op.Flags.Z, z)
	c.applyFlag(FlagSubtract, op.Flags.N, n)
	c.applyFlag(FlagHalfCarry, op.Flags.H, h)
	c.applyFlag(FlagCarry, op.Flags.C, cy)
}

func (c *CPU) applyFlag(flag Flag, effect opcodes.FlagEffect, computed bool) {
	switch effect {
	case opcodes.Reset:
		c.setFlag(flag, false)
	case opcodes.Set:
		c.setFlag(flag, true)
	case opcodes.Computed:
		c.setFlag(flag, computed)
	}
}

// condition tests a branch condition against the flags.
func (c *CPU) condition(cond opcodes.Condition) bool {
	switch cond {
	case opcodes.CondNZ:
		return !c.isFlagSet(FlagZero)
	case opcodes.CondZ:
		return c.isFlagSet(FlagZero)
	case opcodes.CondNC:
		return !c.isFlagSet(FlagCarry)
	case opcodes.CondC:
		return c.isFlagSet(FlagCarry)
	}
	return true
}
