package opcodes

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
)

//go:embed opcodes.json
var defaultTable []byte

// ErrNotFound is returned by Table.Find when no opcode matches
// the given text.
var ErrNotFound = errors.New("opcode not found")

// Table maps opcode bytes to their decoded Opcode.
type Table struct {
	unprefixed [256]*Opcode
	prefixed   [256]*Opcode

	shapes map[string]*Opcode
}

type rawOpcode struct {
	Mnemonic string            `json:"mnemonic"`
	Bytes    int               `json:"bytes"`
	Cycles   []int             `json:"cycles"`
	Operands []Operand         `json:"operands"`
	Flags    map[string]string `json:"flags"`
}

type rawTable struct {
	Unprefixed map[string]rawOpcode `json:"unprefixed"`
	Prefixed   map[string]rawOpcode `json:"cbprefixed"`
}

// Load builds a Table from an opcode description. The description
// must populate every one of the 512 opcode slots.
func Load(data []byte) (*Table, error) {
	var raw rawTable
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("opcodes: decoding table: %w", err)
	}

	t := &Table{shapes: make(map[string]*Opcode, 512)}
	if err := t.fill(&t.unprefixed, raw.Unprefixed, false); err != nil {
		return nil, err
	}
	if err := t.fill(&t.prefixed, raw.Prefixed, true); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Table) fill(dst *[256]*Opcode, src map[string]rawOpcode, prefixed bool) error {
	for i := 0; i < 256; i++ {
		key := fmt.Sprintf("0x%02X", i)
		r, ok := src[key]
		if !ok {
			return fmt.Errorf("opcodes: missing entry %s (prefixed=%t)", key, prefixed)
		}
		o, err := newOpcode(uint8(i), prefixed, r)
		if err != nil {
			return fmt.Errorf("opcodes: entry %s (prefixed=%t): %w", key, prefixed, err)
		}
		dst[i] = o

		// the first opcode wins when two share a shape
		if _, exists := t.shapes[o.Shape()]; !exists {
			t.shapes[o.Shape()] = o
		}
	}
	return nil
}

func newOpcode(value uint8, prefixed bool, r rawOpcode) (*Opcode, error) {
	o := &Opcode{
		Value:    value,
		Prefixed: prefixed,
		Mnemonic: r.Mnemonic,
		Bytes:    r.Bytes,
		Cycles:   r.Cycles,
		Operands: r.Operands,
	}
	o.Op, o.Family = resolveOp(r.Mnemonic)

	switch {
	case o.Mnemonic == "":
		return nil, errors.New("missing mnemonic")
	case o.Bytes < 1 || o.Bytes > 3:
		return nil, fmt.Errorf("invalid length %d", o.Bytes)
	case len(o.Cycles) < 1 || len(o.Cycles) > 2:
		return nil, fmt.Errorf("invalid cycle costs %v", o.Cycles)
	case len(o.Operands) > 3:
		return nil, fmt.Errorf("too many operands (%d)", len(o.Operands))
	}

	branch := o.Op == OpJP || o.Op == OpJR || o.Op == OpCALL || o.Op == OpRET
	for i := range o.Operands {
		o.Operands[i].classify(branch && i == 0 && (len(o.Operands) == 2 || o.Op == OpRET))
	}

	var err error
	for _, f := range []struct {
		letter string
		effect *FlagEffect
	}{{"Z", &o.Flags.Z}, {"N", &o.Flags.N}, {"H", &o.Flags.H}, {"C", &o.Flags.C}} {
		if *f.effect, err = parseFlag(f.letter, r.Flags[f.letter]); err != nil {
			return nil, err
		}
	}

	return o, nil
}

var (
	defaultOnce sync.Once
	defaultTab  *Table
)

// Default returns the Table built from the embedded SM83 opcode
// description. The Table is built on first use and shared.
func Default() *Table {
	defaultOnce.Do(func() {
		var err error
		if defaultTab, err = Load(defaultTable); err != nil {
			panic(err)
		}
	})
	return defaultTab
}

// Lookup returns the Opcode for the given byte. Every byte
// decodes to an Opcode, including the illegal opcodes.
func (t *Table) Lookup(b uint8, prefixed bool) *Opcode {
	if prefixed {
		return t.prefixed[b]
	}
	return t.unprefixed[b]
}

// Find returns the Opcode whose assembly shape matches text,
// for example "LD A, [HL+]", "ld a,(hl+)" or "BIT 7, H". Numeric
// operands must be written as placeholders (n8, n16, e8, a8, a16).
func (t *Table) Find(text string) (*Opcode, error) {
	if o, ok := t.shapes[Normalize(text)]; ok {
		return o, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, text)
}

// Each calls f for every opcode, unprefixed first.
func (t *Table) Each(f func(*Opcode)) {
	for _, o := range t.unprefixed {
		f(o)
	}
	for _, o := range t.prefixed {
		f(o)
	}
}

// Normalize rewrites assembly text into the canonical shape
// format: upper case mnemonic and registers, brackets for
// indirection and a single ", " between operands.
func Normalize(text string) string {
	text = strings.TrimSpace(text)
	mnemonic, rest, _ := strings.Cut(text, " ")
	mnemonic = strings.ToUpper(mnemonic)

	rest = strings.NewReplacer("(", "[", ")", "]", " ", "", "\t", "").Replace(rest)
	if rest == "" {
		return mnemonic
	}

	parts := strings.Split(rest, ",")
	for i, p := range parts {
		parts[i] = normalizeOperand(p)
	}
	return mnemonic + " " + strings.Join(parts, ", ")
}

func normalizeOperand(p string) string {
	for _, placeholder := range []string{"n8", "n16", "e8", "a8", "a16"} {
		if i := strings.Index(strings.ToLower(p), placeholder); i >= 0 {
			return strings.ToUpper(p[:i]) + placeholder + strings.ToUpper(p[i+len(placeholder):])
		}
	}
	// aliases used by some assemblers
	switch u := strings.ToUpper(p); u {
	case "[HLI]":
		return "[HL+]"
	case "[HLD]":
		return "[HL-]"
	default:
		return u
	}
}
