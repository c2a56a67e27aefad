package disassembly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/opcodes"
)

func TestFormat(t *testing.T) {
	tab := opcodes.Default()
	tests := []struct {
		code     uint8
		prefixed bool
		data     []byte
		text     string
	}{
		{0x00, false, nil, "NOP"},
		{0x3E, false, []byte{0x42}, "LD A, $42"},
		{0x21, false, []byte{0x34, 0x12}, "LD HL, $1234"},
		{0xEA, false, []byte{0x00, 0xC0}, "LD [$C000], A"},
		{0xE0, false, []byte{0x44}, "LDH [$44], A"},
		{0xF8, false, []byte{0x05}, "LD HL, SP+$05"},
		{0x18, false, []byte{0xFE}, "JR $FE"},
		{0xC2, false, []byte{0x50, 0x01}, "JP NZ, $0150"},
		{0xFF, false, nil, "RST $38"},
		{0x7C, true, nil, "BIT 7, H"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.text, Format(tab.Lookup(tt.code, tt.prefixed), tt.data))
		})
	}
}

func TestAssemble(t *testing.T) {
	tab := opcodes.Default()
	tests := map[string][]byte{
		"NOP":            {0x00},
		"ld a, $42":      {0x3E, 0x42},
		"LD HL, $1234":   {0x21, 0x34, 0x12},
		"LD (HL+), A":    {0x22},
		"LD [$C000], A":  {0xEA, 0x00, 0xC0},
		"LDH [$44], A":   {0xE0, 0x44},
		"LDH A, [C]":     {0xF2},
		"LD HL, SP+$05":  {0xF8, 0x05},
		"ADD SP, -2":     {0xE8, 0xFE},
		"JR -2":          {0x18, 0xFE},
		"JP NZ, $0150":   {0xC2, 0x50, 0x01},
		"CALL 0x0038":    {0xCD, 0x38, 0x00},
		"RST $38":        {0xFF},
		"BIT 7, H":       {0xCB, 0x7C},
		"SET 0, [HL]":    {0xCB, 0xC6},
		"LD [$FF00], SP": {0x08, 0x00, 0xFF},
	}
	for text, want := range tests {
		t.Run(text, func(t *testing.T) {
			got, err := Assemble(tab, text)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := Assemble(tab, "LD A, Q")
	assert.ErrorIs(t, err, opcodes.ErrNotFound)
	_, err = Assemble(tab, "LD A, $FFFFFFFFFF")
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	tab := opcodes.Default()
	tab.Each(func(op *opcodes.Opcode) {
		if op.Op == opcodes.OpPREFIX {
			return
		}
		data := []byte{0x12, 0x34}[:op.DataLength()]
		text := Format(op, data)

		b, err := Assemble(tab, text)
		if !assert.NoError(t, err, "%s", op) {
			return
		}

		decoded := Disassemble(tab, b, 0)
		if assert.Len(t, decoded, 1, "%s assembled to % X", text, b) {
			assert.Same(t, op, decoded[0].Opcode, "%s", text)
			assert.Equal(t, op.Mnemonic, decoded[0].Opcode.Mnemonic)
			assert.Equal(t, op.Operands, decoded[0].Opcode.Operands)
			assert.Equal(t, data, decoded[0].Data)
		}
	})
}

func TestAssembleProgram(t *testing.T) {
	tab := opcodes.Default()
	src := `
		; load and loop
		ld a, $10   ; counter
		dec a
		jr nz, $FD
		halt
	`
	b, err := AssembleProgram(tab, src)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x3E, 0x10, 0x3D, 0x20, 0xFD, 0x76}, b)

	ins := Disassemble(tab, b, 0x0100)
	require.Len(t, ins, 4)
	assert.Equal(t, uint16(0x0102), ins[1].Address)
	assert.Equal(t, "JR NZ, $FD", ins[2].String())

	_, err = AssembleProgram(tab, "nop\nfrob a")
	assert.ErrorContains(t, err, "line 2")
}

func TestDisassemble_Truncated(t *testing.T) {
	tab := opcodes.Default()
	ins := Disassemble(tab, []byte{0x00, 0x21, 0x34}, 0)
	assert.Len(t, ins, 1)

	ins = Disassemble(tab, []byte{0xCB}, 0)
	assert.Empty(t, ins)
}
