// Package cpu provides an implementation of the SM83 CPU found in
// the DMG. The CPU is advanced one machine cycle at a time by
// Tick, and executes each instruction in full on the cycle it
// is fetched, idling for the remainder of its cost.
package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/disassembly"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/opcodes"
	"github.com/thelolagemann/dmgcore/internal/timer"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

const (
	// ClockSpeed is the clock speed of the CPU in T-cycles.
	ClockSpeed = 4194304
	// interruptCycles is the number of machine cycles taken
	// to dispatch an interrupt.
	interruptCycles = 5
)

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is entered by HALT, and exited once an interrupt
	// is both requested and enabled.
	ModeHalt
	// ModeStop is entered by STOP, and exited by a joypad interrupt.
	ModeStop
	// ModeLocked is entered by executing an illegal opcode, and
	// is never exited.
	ModeLocked
)

// CPU represents the SM83 CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	*types.Registers

	// Cycles counts the machine cycles the CPU has been ticked.
	Cycles uint64

	b     *io.Bus
	irq   *interrupts.Service
	timer *timer.Controller
	table *opcodes.Table

	mode    mode
	haltBug bool
	wait    int      // machine cycles left of the current instruction
	data    [2]uint8 // operand bytes of the current instruction

	observer Observer
	log      log.Logger
	trace    bool
}

// Opt configures a CPU.
type Opt func(c *CPU)

// WithObserver registers an Observer, called after every
// executed instruction.
func WithObserver(o Observer) Opt {
	return func(c *CPU) {
		c.observer = o
	}
}

// WithLogger sets the logger used by the CPU.
func WithLogger(l log.Logger) Opt {
	return func(c *CPU) {
		c.log = l
	}
}

// Trace logs every executed instruction at debug level.
func Trace() Opt {
	return func(c *CPU) {
		c.trace = true
	}
}

// NewCPU creates a new CPU, decoding instructions with table and
// accessing memory through b. The timer, which may be nil, is
// advanced at the start of every machine cycle.
func NewCPU(b *io.Bus, irq *interrupts.Service, t *timer.Controller, table *opcodes.Table, opts ...Opt) *CPU {
	c := &CPU{
		Registers: types.NewRegisters(),
		b:         b,
		irq:       irq,
		timer:     t,
		table:     table,
		log:       log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetObserver replaces the Observer called after every
// executed instruction.
func (c *CPU) SetObserver(o Observer) {
	c.observer = o
}

// Reset sets the registers to the state left by the DMG boot ROM.
func (c *CPU) Reset() {
	c.AF.SetUint16(0x01B0)
	c.BC.SetUint16(0x0013)
	c.DE.SetUint16(0x00D8)
	c.HL.SetUint16(0x014D)
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.mode = ModeNormal
	c.wait = 0
}

// Mode returns the current mode of the CPU.
func (c *CPU) Mode() mode {
	return c.mode
}

// Halted reports whether the CPU is halted or stopped.
func (c *CPU) Halted() bool {
	return c.mode == ModeHalt || c.mode == ModeStop
}

// Tick advances the CPU by a single machine cycle. Within the
// cycle the timer is advanced first, then pending interrupts are
// resolved, and then the next instruction is fetched and executed
// if the previous one has completed.
//
// The only errors returned are an *UnimplementedOpcodeError, or
// the error returned by the Observer.
func (c *CPU) Tick() error {
	if c.timer != nil {
		c.timer.Tick()
	}
	c.Cycles++

	if c.wait > 0 {
		c.wait--
		return nil
	}

	switch c.mode {
	case ModeLocked:
		return nil
	case ModeStop:
		if c.irq.Flag&interrupts.JoypadFlag == 0 {
			return nil
		}
		c.mode = ModeNormal
	case ModeHalt:
		// halt is exited regardless of IME
		if !c.irq.HasInterrupts() {
			return nil
		}
		c.mode = ModeNormal
	}

	if c.irq.ShouldService() {
		c.executeInterrupt()
		return nil
	}

	return c.step()
}

// executeInterrupt pushes PC onto the stack and jumps to the
// vector of the highest priority interrupt.
func (c *CPU) executeInterrupt() {
	vector := c.irq.Vector()
	c.irq.Disable()
	c.push(c.PC)
	c.PC = vector
	c.wait = interruptCycles - 1
}

// step fetches, decodes and executes a single instruction.
func (c *CPU) step() error {
	pc := c.PC
	op := c.table.Lookup(c.readInstruction(), false)
	if op.Op == opcodes.OpPREFIX {
		op = c.table.Lookup(c.readInstruction(), true)
	}
	for i := 0; i < op.DataLength(); i++ {
		c.data[i] = c.readInstruction()
	}

	if c.trace {
		c.log.Debugf("%04X  %-16s A:%02X F:%02X BC:%04X DE:%04X HL:%04X SP:%04X",
			pc, disassembly.Format(op, c.data[:op.DataLength()]), c.A, c.F, c.BC.Uint16(), c.DE.Uint16(), c.HL.Uint16(), c.SP)
	}

	taken, err := c.execute(op, pc)
	if err != nil {
		return err
	}

	cost := op.Cost(taken)
	c.wait = cost - 1
	c.irq.InstructionComplete()

	if c.observer != nil {
		return c.observer(Result{
			PC:        pc,
			Opcode:    op,
			Cycles:    cost,
			Registers: c.Snapshot(),
		})
	}
	return nil
}

// execute dispatches op by its family, returning whether a
// conditional branch was taken.
func (c *CPU) execute(op *opcodes.Opcode, pc uint16) (bool, error) {
	switch op.Family {
	case opcodes.FamilyControl:
		c.control(op)
	case opcodes.FamilyLoad:
		c.load(op)
	case opcodes.FamilyJump:
		return c.jump(op), nil
	case opcodes.FamilyALU:
		c.alu(op)
	case opcodes.FamilyBit:
		c.bit(op)
	case opcodes.FamilyIllegal:
		c.log.Infof("illegal opcode 0x%02X at %04X, CPU locked", op.Value, pc)
		c.mode = ModeLocked
	default:
		return false, &UnimplementedOpcodeError{
			Opcode:   op.Value,
			Prefixed: op.Prefixed,
			Mnemonic: op.Mnemonic,
			PC:       pc,
		}
	}
	return true, nil
}

// readInstruction reads the byte at PC and increments PC. The
// halt bug causes PC to not be incremented once.
func (c *CPU) readInstruction() uint8 {
	v := c.readByte(c.PC)
	if c.haltBug {
		c.haltBug = false
		return v
	}
	c.PC++
	return v
}

// readByte reads a byte from the bus.
func (c *CPU) readByte(addr uint16) uint8 {
	return c.b.Read(addr, io.CPU, false)
}

// writeByte writes a byte to the bus.
func (c *CPU) writeByte(addr uint16, value uint8) {
	c.b.Write(addr, value, io.CPU, false)
}

// push pushes a 16-bit value onto the stack, low byte at SP
// and high byte at SP+1. SP wraps around silently.
func (c *CPU) push(v uint16) {
	high, low := utils.Uint16ToBytes(v)
	c.SP -= 2
	c.writeByte(c.SP, low)
	c.writeByte(c.SP+1, high)
}

// pop pops a 16-bit value from the stack.
func (c *CPU) pop() uint16 {
	low := c.readByte(c.SP)
	high := c.readByte(c.SP + 1)
	c.SP += 2
	return utils.BytesToUint16(high, low)
}
