package interrupts

import (
	"testing"

	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

func TestService_Registers(t *testing.T) {
	b := io.NewBus()
	s := NewService(b)

	b.Write(types.IF, 0xFF, io.CPU, false)
	if s.Flag != 0x1F {
		t.Errorf("expected IF to hold 0x1F, got 0x%02X", s.Flag)
	}
	s.Flag = 0x01
	if v := b.Read(types.IF, io.CPU, false); v != 0xE1 {
		t.Errorf("expected IF to read 0xE1, got 0x%02X", v)
	}

	b.Write(types.IE, 0x15, io.CPU, false)
	if s.Enable != 0x15 {
		t.Errorf("expected IE to be 0x15, got 0x%02X", s.Enable)
	}
}

func TestService_Vector(t *testing.T) {
	tests := []struct {
		name   string
		flag   uint8
		enable uint8
		vector uint16
		remain uint8
	}{
		{"none", 0x00, 0x1F, 0x00, 0x00},
		{"disabled", 0x01, 0x00, 0x00, 0x01},
		{"vblank", VBlankFlag, 0x1F, 0x40, 0x00},
		{"lcd", LCDFlag, 0x1F, 0x48, 0x00},
		{"timer", TimerFlag, 0x1F, 0x50, 0x00},
		{"serial", SerialFlag, 0x1F, 0x58, 0x00},
		{"joypad", JoypadFlag, 0x1F, 0x60, 0x00},
		{"priority", TimerFlag | LCDFlag, 0x1F, 0x48, TimerFlag},
		{"masked priority", TimerFlag | LCDFlag, TimerFlag, 0x50, LCDFlag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService(io.NewBus())
			s.Flag, s.Enable = tt.flag, tt.enable
			if v := s.Vector(); v != tt.vector {
				t.Errorf("expected vector 0x%02X, got 0x%02X", tt.vector, v)
			}
			if s.Flag != tt.remain {
				t.Errorf("expected IF 0x%02X after vector, got 0x%02X", tt.remain, s.Flag)
			}
		})
	}
}

func TestService_DelayedEnable(t *testing.T) {
	s := NewService(io.NewBus())

	// EI
	s.EnableDelayed()
	s.InstructionComplete()
	if s.Enabled() {
		t.Fatalf("expected IME to be disabled after EI")
	}

	// the instruction following EI
	s.InstructionComplete()
	if !s.Enabled() {
		t.Fatalf("expected IME to be enabled after the instruction following EI")
	}
}

func TestService_DisableCancelsEnable(t *testing.T) {
	s := NewService(io.NewBus())
	s.EnableDelayed()
	s.InstructionComplete()
	s.Disable()
	s.InstructionComplete()
	s.InstructionComplete()
	if s.IME != Disabled {
		t.Errorf("expected IME to be disabled, got %s", s.IME)
	}
}

func TestService_ShouldService(t *testing.T) {
	s := NewService(io.NewBus())
	s.Request(TimerFlag)
	s.Enable = TimerFlag
	if s.ShouldService() {
		t.Errorf("expected no service with IME disabled")
	}
	if !s.HasInterrupts() {
		t.Errorf("expected a pending interrupt regardless of IME")
	}
	s.EnableImmediate()
	if !s.ShouldService() {
		t.Errorf("expected service with IME enabled")
	}
}
