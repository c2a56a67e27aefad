// Package timer provides an implementation of the DMG timer.
// It is used to generate interrupts at a specific frequency,
// configured using the types.TAC register.
package timer

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// dividerPeriod is the number of machine cycles between
	// each increment of types.DIV.
	dividerPeriod = 64
	// reloadDelay is the number of ticks after an overflow at
	// which types.TIMA is reloaded from types.TMA.
	reloadDelay = 5
)

// periods holds the number of machine cycles between each
// increment of types.TIMA, indexed by the TAC clock select.
var periods = [4]int{256, 4, 16, 64}

// Controller is the controller for the timer. It has four registers:
//
//   - types.DIV: The divider register, incremented every 64 machine cycles.
//   - types.TIMA: The counter register, incremented at the rate selected by types.TAC.
//   - types.TMA: The modulo register, loaded into TIMA after it overflows.
//   - types.TAC: The control register, selecting the rate and enabling TIMA.
type Controller struct {
	divider uint16 // machine cycles, DIV is the upper bits

	counter uint8 // TIMA
	modulo  uint8 // TMA
	control uint8 // TAC

	subCounter int // machine cycles until the next TIMA increment
	reloadIn   int // ticks until TIMA is reloaded, 0 when idle

	irq *interrupts.Service
}

// NewController returns a new Controller attached to b.
func NewController(b *io.Bus, irq *interrupts.Service) *Controller {
	c := &Controller{
		irq:        irq,
		subCounter: periods[0],
	}

	b.ReserveAddress(types.DIV, func(byte) byte {
		c.divider = 0
		return 0
	})
	b.ReserveDirectAddress(types.DIV, func(v byte) byte {
		c.divider = uint16(v) * dividerPeriod
		return v
	})
	b.ReserveLazyReader(types.DIV, func() byte {
		return uint8(c.divider / dividerPeriod)
	})
	b.ReserveAddress(types.TIMA, func(v byte) byte {
		// writing TIMA while a reload is pending cancels the reload
		c.reloadIn = 0
		c.counter = v
		return v
	})
	b.ReserveLazyReader(types.TIMA, func() byte {
		return c.counter
	})
	b.ReserveAddress(types.TMA, func(v byte) byte {
		c.modulo = v
		return v
	})
	b.ReserveLazyReader(types.TMA, func() byte {
		return c.modulo
	})
	b.ReserveAddress(types.TAC, func(v byte) byte {
		if v&0x3 != c.control&0x3 {
			c.subCounter = periods[v&0x3]
		}
		c.control = v & 0x7
		return v | 0xF8
	})
	b.ReserveLazyReader(types.TAC, func() byte {
		return c.control | 0xF8 // bits 3-7 are unused
	})

	return c
}

// Tick advances the timer by one machine cycle.
func (c *Controller) Tick() {
	c.divider++

	// TIMA holds 0 for 4 ticks after overflowing, and is
	// reloaded on the 5th
	if c.reloadIn > 0 {
		c.reloadIn--
		if c.reloadIn == 0 {
			c.counter = c.modulo
			c.irq.Request(interrupts.TimerFlag)
		}
		return
	}

	if !c.isEnabled() {
		return
	}

	c.subCounter--
	if c.subCounter > 0 {
		return
	}
	c.subCounter = periods[c.control&0x3]

	c.counter++
	if c.counter == 0 {
		c.reloadIn = reloadDelay
	}
}

// isEnabled returns true if the timer is enabled.
func (c *Controller) isEnabled() bool {
	return c.control&types.Bit2 != 0
}

// Divider returns the current value of types.DIV.
func (c *Controller) Divider() uint8 {
	return uint8(c.divider / dividerPeriod)
}

// Counter returns the current value of types.TIMA.
func (c *Controller) Counter() uint8 {
	return c.counter
}

// Reloading reports whether TIMA has overflowed and is waiting
// to be reloaded from TMA.
func (c *Controller) Reloading() bool {
	return c.reloadIn > 0
}
