package cpu

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/opcodes"
)

// ErrStop may be returned by an Observer to stop the run loop.
// It is not a failure.
var ErrStop = errors.New("cpu: stop requested")

// Observer is called after every executed instruction. A non-nil
// error stops the run loop and is returned by CPU.Tick.
type Observer func(Result) error

// Result describes a completed instruction.
type Result struct {
	// PC is the address the instruction was fetched from.
	PC     uint16
	Opcode *opcodes.Opcode
	// Cycles is the number of machine cycles charged.
	Cycles    int
	Registers Snapshot
}

// Snapshot is a copy of the CPU registers.
type Snapshot struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
	IME                    bool
}

func (s Snapshot) String() string {
	return fmt.Sprintf("A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X PC:%04X IME:%t",
		s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L, s.SP, s.PC, s.IME)
}

// Snapshot returns a copy of the current registers.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		A: c.A, F: c.F, B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L,
		SP: c.SP, PC: c.PC,
		IME: c.irq.Enabled(),
	}
}

// UnimplementedOpcodeError is returned when an opcode has no
// execution handler. It means the opcode table and the CPU
// disagree, and the run loop cannot continue.
type UnimplementedOpcodeError struct {
	Opcode   uint8
	Prefixed bool
	Mnemonic string
	PC       uint16
}

func (e *UnimplementedOpcodeError) Error() string {
	code := fmt.Sprintf("0x%02X", e.Opcode)
	if e.Prefixed {
		code = fmt.Sprintf("0xCB%02X", e.Opcode)
	}
	return fmt.Sprintf("cpu: no handler for opcode %s (%s) at %04X", code, e.Mnemonic, e.PC)
}
