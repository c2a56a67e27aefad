// Package interrupts provides the interrupt controller of the
// DMG: the IF and IE registers, and the interrupt master enable
// (IME) flag.
package interrupts

import (
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the PPU enters
	// the vertical blanking period.
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested by the LCD STAT register (types.STAT),
	// when certain conditions are met.
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested when types.TIMA overflows.
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3),
	// which is requested when a serial transfer is
	// completed.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4),
	// which is requested when a button is pressed.
	JoypadFlag = types.Bit4
)

// IME is the state of the interrupt master enable flag.
type IME uint8

const (
	// Disabled means no interrupt will be serviced.
	Disabled IME = iota
	// ArmedToEnable is entered by EI, and becomes Enabled once
	// the instruction following EI has completed.
	ArmedToEnable
	// Enabled means requested and enabled interrupts are serviced.
	Enabled
)

func (i IME) String() string {
	switch i {
	case ArmedToEnable:
		return "armed"
	case Enabled:
		return "enabled"
	}
	return "disabled"
}

// Service is the interrupt service, used to request
// interrupts and to select the interrupt to be serviced.
//
// When an interrupt is requested, the corresponding bit
// in the Flag register is set. When an interrupt is
// enabled, the corresponding bit in the Enable register
// is set. When an interrupt is requested and enabled,
// and the IME is Enabled, the CPU will jump to the interrupt
// vector, and the corresponding bit in the Flag register
// will be cleared.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)
	IME    IME

	// armedAt is set by EI, so that the instruction that armed
	// the IME does not also promote it.
	armedAt bool
}

// NewService returns a new Service attached to b.
func NewService(b *io.Bus) *Service {
	s := &Service{}
	b.ReserveAddress(types.IF, func(v byte) byte {
		s.Flag = v & 0x1F // only the first 5 bits are used
		return s.Flag | 0xE0
	})
	b.ReserveLazyReader(types.IF, func() byte {
		return s.Flag | 0xE0 // the upper 3 bits are always set
	})
	b.ReserveAddress(types.IE, func(v byte) byte {
		s.Enable = v
		return v
	})
	b.ReserveLazyReader(types.IE, func() byte {
		return s.Enable
	})

	return s
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag & 0x1F
}

// Pending returns the interrupts that are both requested and
// enabled, regardless of the IME.
func (s *Service) Pending() uint8 {
	return s.Enable & s.Flag & 0x1F
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Pending() != 0
}

// ShouldService reports whether an interrupt should be
// dispatched, which requires the IME to be Enabled.
func (s *Service) ShouldService() bool {
	return s.IME == Enabled && s.HasInterrupts()
}

// Vector returns the vector of the highest priority interrupt
// that is requested and enabled, or 0 if there is none. The
// corresponding bit in the Flag register is cleared.
//
// Interrupts are serviced in the order of priority:
//
//   - VBlank (0x40)
//   - LCD    (0x48)
//   - Timer  (0x50)
//   - Serial (0x58)
//   - Joypad (0x60)
func (s *Service) Vector() uint16 {
	pending := s.Pending()
	for i := uint8(0); i < 5; i++ {
		flag := uint8(1 << i)
		if pending&flag != 0 {
			s.Flag &^= flag
			return uint16(0x0040 + i*8)
		}
	}

	return 0
}

// EnableDelayed arms the IME, as the EI instruction does. The
// IME becomes Enabled after the following instruction.
func (s *Service) EnableDelayed() {
	if s.IME == Disabled {
		s.IME = ArmedToEnable
		s.armedAt = true
	}
}

// EnableImmediate enables the IME without delay, as RETI does.
func (s *Service) EnableImmediate() {
	s.IME = Enabled
	s.armedAt = false
}

// Disable disables the IME, cancelling a pending enable. The
// next interrupt check, on the following tick, observes it.
func (s *Service) Disable() {
	s.IME = Disabled
	s.armedAt = false
}

// Enabled reports whether the IME is Enabled.
func (s *Service) Enabled() bool {
	return s.IME == Enabled
}

// InstructionComplete is called once an instruction has been
// executed, and promotes an IME armed by an earlier instruction.
func (s *Service) InstructionComplete() {
	if s.armedAt {
		s.armedAt = false
		return
	}
	if s.IME == ArmedToEnable {
		s.IME = Enabled
	}
}
