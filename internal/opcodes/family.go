package opcodes

// Family groups instructions by the part of the CPU that
// executes them. The CPU dispatches on the Family of a decoded
// Opcode, then on its Op.
type Family uint8

const (
	// FamilyUnknown marks an opcode whose mnemonic has no
	// execution handler.
	FamilyUnknown Family = iota
	// FamilyControl covers NOP, STOP, HALT, DI, EI and the CB prefix.
	FamilyControl
	// FamilyLoad covers 8 and 16-bit loads, PUSH and POP.
	FamilyLoad
	// FamilyJump covers jumps, calls, returns and restarts.
	FamilyJump
	// FamilyALU covers 8 and 16-bit arithmetic and logic.
	FamilyALU
	// FamilyBit covers rotates, shifts, SWAP, BIT, RES and SET.
	FamilyBit
	// FamilyIllegal covers the 11 unused opcodes, which lock
	// up the CPU when executed.
	FamilyIllegal
)

var familyNames = [...]string{"unknown", "control", "load", "jump", "alu", "bit", "illegal"}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return "unknown"
}

// Op identifies the operation of an instruction, resolved from
// its mnemonic once when the table is built.
type Op uint8

const (
	OpUnknown Op = iota

	OpNOP
	OpSTOP
	OpHALT
	OpDI
	OpEI
	OpPREFIX

	OpLD
	OpLDH
	OpPUSH
	OpPOP

	OpJP
	OpJR
	OpCALL
	OpRET
	OpRETI
	OpRST

	OpADD
	OpADC
	OpSUB
	OpSBC
	OpAND
	OpXOR
	OpOR
	OpCP
	OpINC
	OpDEC
	OpDAA
	OpCPL
	OpSCF
	OpCCF

	OpRLCA
	OpRRCA
	OpRLA
	OpRRA
	OpRLC
	OpRRC
	OpRL
	OpRR
	OpSLA
	OpSRA
	OpSWAP
	OpSRL
	OpBIT
	OpRES
	OpSET

	OpILLEGAL
)

type opInfo struct {
	mnemonic string
	family   Family
}

var ops = map[Op]opInfo{
	OpNOP:    {"NOP", FamilyControl},
	OpSTOP:   {"STOP", FamilyControl},
	OpHALT:   {"HALT", FamilyControl},
	OpDI:     {"DI", FamilyControl},
	OpEI:     {"EI", FamilyControl},
	OpPREFIX: {"PREFIX", FamilyControl},

	OpLD:   {"LD", FamilyLoad},
	OpLDH:  {"LDH", FamilyLoad},
	OpPUSH: {"PUSH", FamilyLoad},
	OpPOP:  {"POP", FamilyLoad},

	OpJP:   {"JP", FamilyJump},
	OpJR:   {"JR", FamilyJump},
	OpCALL: {"CALL", FamilyJump},
	OpRET:  {"RET", FamilyJump},
	OpRETI: {"RETI", FamilyJump},
	OpRST:  {"RST", FamilyJump},

	OpADD: {"ADD", FamilyALU},
	OpADC: {"ADC", FamilyALU},
	OpSUB: {"SUB", FamilyALU},
	OpSBC: {"SBC", FamilyALU},
	OpAND: {"AND", FamilyALU},
	OpXOR: {"XOR", FamilyALU},
	OpOR:  {"OR", FamilyALU},
	OpCP:  {"CP", FamilyALU},
	OpINC: {"INC", FamilyALU},
	OpDEC: {"DEC", FamilyALU},
	OpDAA: {"DAA", FamilyALU},
	OpCPL: {"CPL", FamilyALU},
	OpSCF: {"SCF", FamilyALU},
	OpCCF: {"CCF", FamilyALU},

	OpRLCA: {"RLCA", FamilyBit},
	OpRRCA: {"RRCA", FamilyBit},
	OpRLA:  {"RLA", FamilyBit},
	OpRRA:  {"RRA", FamilyBit},
	OpRLC:  {"RLC", FamilyBit},
	OpRRC:  {"RRC", FamilyBit},
	OpRL:   {"RL", FamilyBit},
	OpRR:   {"RR", FamilyBit},
	OpSLA:  {"SLA", FamilyBit},
	OpSRA:  {"SRA", FamilyBit},
	OpSWAP: {"SWAP", FamilyBit},
	OpSRL:  {"SRL", FamilyBit},
	OpBIT:  {"BIT", FamilyBit},
	OpRES:  {"RES", FamilyBit},
	OpSET:  {"SET", FamilyBit},
}

var mnemonics = func() map[string]Op {
	m := make(map[string]Op, len(ops))
	for op, info := range ops {
		m[info.mnemonic] = op
	}
	return m
}()

// resolveOp maps a mnemonic onto its Op and Family. Mnemonics of
// the form ILLEGAL_XX resolve to OpILLEGAL.
func resolveOp(mnemonic string) (Op, Family) {
	if len(mnemonic) > 8 && mnemonic[:8] == "ILLEGAL_" {
		return OpILLEGAL, FamilyIllegal
	}
	op, ok := mnemonics[mnemonic]
	if !ok {
		return OpUnknown, FamilyUnknown
	}
	return op, ops[op].family
}

func (o Op) String() string {
	if o == OpILLEGAL {
		return "ILLEGAL"
	}
	if info, ok := ops[o]; ok {
		return info.mnemonic
	}
	return "UNKNOWN"
}
