// Package opcodes provides the SM83 instruction table. The table
// is built once from a static description of all 256 unprefixed
// and 256 CB-prefixed opcodes, and is read-only afterwards.
package opcodes

import (
	"fmt"
	"strings"
)

// FlagEffect describes how an instruction affects a single flag.
type FlagEffect uint8

const (
	Unaffected FlagEffect = iota // "-"
	Reset                        // "0"
	Set                          // "1"
	Computed                     // set according to the result
)

func (f FlagEffect) String() string {
	switch f {
	case Reset:
		return "0"
	case Set:
		return "1"
	case Computed:
		return "*"
	}
	return "-"
}

// Flags holds the effect an instruction has on each flag.
type Flags struct {
	Z, N, H, C FlagEffect
}

// Opcode is a decoded instruction descriptor.
type Opcode struct {
	// Value is the opcode byte, without the CB prefix.
	Value    uint8
	Prefixed bool

	Mnemonic string
	Op       Op
	Family   Family

	// Bytes is the total length of the instruction in bytes,
	// including the CB prefix for prefixed opcodes.
	Bytes int
	// Cycles holds the cost of the instruction in clock cycles
	// (T-cycles). Conditional instructions carry two costs: the
	// first when the branch is taken, the second when it isn't.
	Cycles   []int
	Operands []Operand
	Flags    Flags
}

// Cost returns the number of machine cycles charged for the
// instruction, where taken reports whether a conditional
// branch was taken.
func (o *Opcode) Cost(taken bool) int {
	if !taken && len(o.Cycles) > 1 {
		return o.Cycles[1] / 4
	}
	return o.Cycles[0] / 4
}

// Conditional reports whether the instruction carries an
// alternative cost for a branch not taken.
func (o *Opcode) Conditional() bool {
	return len(o.Cycles) > 1
}

// DataLength returns the number of operand bytes that follow
// the opcode (and prefix) in memory.
func (o *Opcode) DataLength() int {
	if o.Prefixed {
		return o.Bytes - 2
	}
	return o.Bytes - 1
}

// Code returns the opcode as it appears in memory, for example
// 0x3E or 0xCB7C.
func (o *Opcode) Code() uint16 {
	if o.Prefixed {
		return 0xCB00 | uint16(o.Value)
	}
	return uint16(o.Value)
}

// Shape returns the instruction as it is written in assembly
// with placeholder operands, for example "LD A, [HL+]" or
// "LD HL, SP+e8". Shape is the key used by Table.Find.
func (o *Opcode) Shape() string {
	if len(o.Operands) == 0 {
		return o.Mnemonic
	}
	var b strings.Builder
	b.WriteString(o.Mnemonic)
	b.WriteByte(' ')
	for i, op := range o.Operands {
		b.WriteString(op.String())
		// SP+e8 is a single operand in assembly
		if op.Increment && op.Immediate {
			continue
		}
		if i < len(o.Operands)-1 {
			b.WriteString(", ")
		}
	}
	return b.String()
}

func (o *Opcode) String() string {
	return fmt.Sprintf("0x%02X %s", o.Code(), o.Shape())
}

// parseFlag parses a single flag effect. A computed flag is
// marked with the flag's own letter.
func parseFlag(letter, v string) (FlagEffect, error) {
	switch v {
	case "-":
		return Unaffected, nil
	case "0":
		return Reset, nil
	case "1":
		return Set, nil
	case letter:
		return Computed, nil
	}
	return 0, fmt.Errorf("invalid effect %q for flag %s", v, letter)
}
