package disassembly

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/thelolagemann/dmgcore/internal/opcodes"
)

var literal = regexp.MustCompile(`\$[0-9A-Fa-f]+|0[xX][0-9A-Fa-f]+|-?[0-9]+`)

// candidate is one way of reading an operand.
type candidate struct {
	text  string
	value int64
	size  int // bytes of data, 0 for none
}

// Assemble encodes a single line of assembly, for example
// "LD A, $42", "ld hl, sp+$05" or "JR -2".
func Assemble(table *opcodes.Table, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	mnemonic, rest, _ := strings.Cut(text, " ")
	rest = strings.NewReplacer(" ", "", "\t", "").Replace(rest)

	var parts [][]candidate
	if rest != "" {
		for _, p := range strings.Split(rest, ",") {
			c, err := candidates(p)
			if err != nil {
				return nil, fmt.Errorf("assemble %q: %w", text, err)
			}
			parts = append(parts, c)
		}
	}

	op, data, ok := search(table, mnemonic, parts, nil)
	if !ok {
		return nil, fmt.Errorf("assemble %q: %w", text, opcodes.ErrNotFound)
	}

	return Instruction{Opcode: op, Data: data}.Bytes(), nil
}

// search tries every combination of operand candidates until
// one matches an opcode shape.
func search(table *opcodes.Table, mnemonic string, parts [][]candidate, chosen []candidate) (*opcodes.Opcode, []byte, bool) {
	if len(chosen) == len(parts) {
		texts := make([]string, len(chosen))
		for i, c := range chosen {
			texts[i] = c.text
		}
		op, err := table.Find(strings.TrimSpace(mnemonic + " " + strings.Join(texts, ",")))
		if err != nil {
			return nil, nil, false
		}

		var data []byte
		for _, c := range chosen {
			switch c.size {
			case 1:
				data = append(data, uint8(c.value))
			case 2:
				data = append(data, uint8(c.value), uint8(c.value>>8))
			}
		}
		if len(data) != op.DataLength() {
			return nil, nil, false
		}
		return op, data, true
	}

	for _, c := range parts[len(chosen)] {
		if op, data, ok := search(table, mnemonic, parts, append(chosen, c)); ok {
			return op, data, true
		}
	}
	return nil, nil, false
}

// candidates returns the ways of reading an operand. An operand
// holding a number may be a literal (RST $38, BIT 7) or any
// placeholder wide enough for the value.
func candidates(operand string) ([]candidate, error) {
	loc := literal.FindStringIndex(operand)
	if loc == nil {
		return []candidate{{text: operand}}, nil
	}

	num := operand[loc[0]:loc[1]]
	value, digits, err := parseNumber(num)
	if err != nil {
		return nil, err
	}

	out := []candidate{{text: operand}}
	replace := func(placeholder string, size int) {
		out = append(out, candidate{
			text:  operand[:loc[0]] + placeholder + operand[loc[1]:],
			value: value,
			size:  size,
		})
	}

	if value >= -128 && value <= 0xFF && digits <= 2 {
		replace("n8", 1)
		replace("e8", 1)
		replace("a8", 1)
	}
	if value >= 0 && value <= 0xFFFF {
		replace("n16", 2)
		replace("a16", 2)
	}
	return out, nil
}

// parseNumber parses a hex ($FF, 0xFF) or decimal number. digits
// reports the width of a hex number in digits, so that $0042 is
// read as a 16-bit value.
func parseNumber(s string) (int64, int, error) {
	var (
		v   int64
		err error
	)
	digits := 0
	switch {
	case strings.HasPrefix(s, "$"):
		digits = len(s) - 1
		v, err = strconv.ParseInt(s[1:], 16, 32)
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		digits = len(s) - 2
		v, err = strconv.ParseInt(s[2:], 16, 32)
	default:
		v, err = strconv.ParseInt(s, 10, 32)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return v, digits, nil
}

// AssembleProgram assembles one instruction per line. Text
// after a ';' is a comment, and blank lines are skipped.
func AssembleProgram(table *opcodes.Table, src string) ([]byte, error) {
	var out []byte
	scanner := bufio.NewScanner(strings.NewReader(src))
	line := 0
	for scanner.Scan() {
		line++
		text, _, _ := strings.Cut(scanner.Text(), ";")
		if strings.TrimSpace(text) == "" {
			continue
		}
		b, err := Assemble(table, text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, b...)
	}
	return out, scanner.Err()
}
