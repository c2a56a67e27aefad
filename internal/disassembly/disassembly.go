// Package disassembly converts between SM83 machine code and
// its assembly text.
package disassembly

import (
	"fmt"
	"strings"

	"github.com/thelolagemann/dmgcore/internal/opcodes"
)

// Instruction is a single decoded instruction.
type Instruction struct {
	Address uint16
	Opcode  *opcodes.Opcode
	Data    []byte
}

func (i Instruction) String() string {
	return Format(i.Opcode, i.Data)
}

// Bytes returns the encoded instruction.
func (i Instruction) Bytes() []byte {
	var b []byte
	if i.Opcode.Prefixed {
		b = append(b, 0xCB)
	}
	b = append(b, i.Opcode.Value)
	return append(b, i.Data...)
}

// Format returns the assembly text of op with its placeholder
// operands replaced by the values in data, for example
// "LD A, $42" or "JP NZ, $0150".
func Format(op *opcodes.Opcode, data []byte) string {
	if len(op.Operands) == 0 {
		return op.Mnemonic
	}

	var b strings.Builder
	b.WriteString(op.Mnemonic)
	b.WriteByte(' ')
	for i, o := range op.Operands {
		b.WriteString(formatOperand(o, data))
		if o.Increment && o.Immediate {
			continue
		}
		if i < len(op.Operands)-1 {
			b.WriteString(", ")
		}
	}
	return b.String()
}

func formatOperand(o opcodes.Operand, data []byte) string {
	var value string
	switch o.Kind {
	case opcodes.KindImmediate8, opcodes.KindSigned8, opcodes.KindAddress8:
		if len(data) < 1 {
			return o.String()
		}
		value = fmt.Sprintf("$%02X", data[0])
	case opcodes.KindImmediate16, opcodes.KindAddress16:
		if len(data) < 2 {
			return o.String()
		}
		value = fmt.Sprintf("$%04X", uint16(data[1])<<8|uint16(data[0]))
	default:
		return o.String()
	}
	return strings.Replace(o.String(), o.Name, value, 1)
}

// Disassemble decodes mem as a linear sequence of instructions,
// where mem[0] lives at address origin. Decoding stops at the
// first instruction truncated by the end of mem.
func Disassemble(table *opcodes.Table, mem []byte, origin uint16) []Instruction {
	var out []Instruction
	for i := 0; i < len(mem); {
		op := table.Lookup(mem[i], false)
		size := 1
		if op.Op == opcodes.OpPREFIX {
			if i+1 >= len(mem) {
				break
			}
			op = table.Lookup(mem[i+1], true)
			size = 2
		}
		n := op.DataLength()
		if i+size+n > len(mem) {
			break
		}
		out = append(out, Instruction{
			Address: origin + uint16(i),
			Opcode:  op,
			Data:    mem[i+size : i+size+n],
		})
		i += size + n
	}
	return out
}
