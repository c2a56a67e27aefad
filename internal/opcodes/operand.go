package opcodes

import (
	"strconv"
	"strings"
)

// OperandKind classifies an Operand by how the CPU resolves it.
type OperandKind uint8

const (
	KindUnknown     OperandKind = iota
	KindRegister8               // A, B, C, D, E, H, L
	KindRegister16              // AF, BC, DE, HL, SP
	KindIndirect                // [BC], [DE], [HL], [HL+], [HL-], [C]
	KindImmediate8              // n8
	KindImmediate16             // n16
	KindSigned8                 // e8
	KindAddress8                // a8, always indirect through 0xFF00
	KindAddress16               // a16, a jump target or [a16]
	KindCondition               // NZ, Z, NC, C
	KindBit                     // 0-7
	KindVector                  // $00-$38
)

// Condition is a branch condition tested against the flags.
type Condition uint8

const (
	CondNZ Condition = iota
	CondZ
	CondNC
	CondC
)

// Operand describes a single operand of an Opcode. Name, Bytes,
// Immediate, Increment and Decrement come straight from the
// opcode description, while Kind and Value are derived from them
// when the table is built.
type Operand struct {
	Name      string `json:"name"`
	Bytes     int    `json:"bytes,omitempty"`
	Immediate bool   `json:"immediate"`
	Increment bool   `json:"increment,omitempty"`
	Decrement bool   `json:"decrement,omitempty"`

	Kind OperandKind `json:"-"`
	// Value holds the bit number of a KindBit operand, the
	// address of a KindVector operand, or the Condition of a
	// KindCondition operand.
	Value uint16 `json:"-"`
}

var conditions = map[string]Condition{"NZ": CondNZ, "Z": CondZ, "NC": CondNC, "C": CondC}

// classify derives the Kind and Value of the operand. branch
// reports whether the operand sits in the condition slot of a
// JP, JR, CALL or RET.
func (o *Operand) classify(branch bool) {
	if branch {
		if c, ok := conditions[o.Name]; ok {
			o.Kind, o.Value = KindCondition, uint16(c)
			return
		}
	}

	switch o.Name {
	case "A", "B", "C", "D", "E", "H", "L":
		if o.Immediate {
			o.Kind = KindRegister8
		} else {
			o.Kind = KindIndirect
		}
	case "AF", "BC", "DE", "HL", "SP":
		if o.Immediate {
			o.Kind = KindRegister16
		} else {
			o.Kind = KindIndirect
		}
	case "n8":
		o.Kind = KindImmediate8
	case "n16":
		o.Kind = KindImmediate16
	case "e8":
		o.Kind = KindSigned8
	case "a8":
		o.Kind = KindAddress8
	case "a16":
		o.Kind = KindAddress16
	default:
		if strings.HasPrefix(o.Name, "$") {
			if v, err := strconv.ParseUint(o.Name[1:], 16, 16); err == nil {
				o.Kind, o.Value = KindVector, uint16(v)
			}
		} else if len(o.Name) == 1 && o.Name[0] >= '0' && o.Name[0] <= '7' {
			o.Kind, o.Value = KindBit, uint16(o.Name[0]-'0')
		}
	}
}

// String returns the operand as it is written in assembly,
// for example "A", "[HL+]" or "n16".
func (o Operand) String() string {
	s := o.Name
	if o.Increment {
		s += "+"
	} else if o.Decrement {
		s += "-"
	}
	if !o.Immediate {
		s = "[" + s + "]"
	}
	return s
}
