// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"fmt"
	"strings"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

var buttonNames = [...]string{"a", "b", "select", "start", "right", "left", "up", "down"}

// ParseButton returns the Button with the given name, such as
// "start" or "up".
func ParseButton(name string) (Button, error) {
	for i, n := range buttonNames {
		if strings.EqualFold(n, name) {
			return Button(i), nil
		}
	}
	return 0, fmt.Errorf("joypad: unknown button %q", name)
}

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// pressed holds a bit per Button, set while it is held. The
	// lower 4 bits are the action buttons, and the upper 4 bits
	// are the direction buttons.
	pressed uint8
	// selected holds the select lines (bits 4 and 5) of P1.
	selected uint8

	irq *interrupts.Service
}

// New returns a new joypad state attached to b.
func New(b *io.Bus, irq *interrupts.Service) *State {
	s := &State{
		selected: types.Bit4 | types.Bit5,
		irq:      irq,
	}
	b.ReserveAddress(types.P1, func(v byte) byte {
		s.selected = v & (types.Bit4 | types.Bit5)
		return s.Read()
	})
	b.ReserveLazyReader(types.P1, s.Read)

	return s
}

// Read returns the value of the P1 register.
func (s *State) Read() uint8 {
	v := 0xC0 | s.selected | 0x0F
	if s.selected&types.Bit4 == 0 {
		v &^= s.pressed >> 4
	}
	if s.selected&types.Bit5 == 0 {
		v &^= s.pressed & 0x0F
	}
	return v
}

// Press presses a button, requesting the joypad interrupt.
func (s *State) Press(button Button) {
	if s.Pressed(button) {
		return
	}
	s.pressed = utils.SetBit(s.pressed, button)
	s.irq.Request(interrupts.JoypadFlag)
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.pressed = utils.ClearBit(s.pressed, button)
}

// Pressed reports whether button is held.
func (s *State) Pressed(button Button) bool {
	return utils.TestBit(s.pressed, button)
}
