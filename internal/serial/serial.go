// Package serial provides the serial port of the DMG. Only the
// master side of a transfer is driven, using the internal clock.
package serial

import (
	"io"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	busio "github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// cyclesPerBit is the number of machine cycles taken to shift a
// single bit with the internal clock (8192 Hz).
const cyclesPerBit = 128

// Controller is the serial controller. It is responsible for sending and
// receiving data to and from devices.
// Before a transfer, data holds the next byte to be sent. AKA types.SB
// During a transfer, it has a mix of the incoming data and the outgoing data.
// each cycle, the leftmost bit of data is sent to the attached device, and
// shifted out of data, and the incoming bit is shifted into data.
//
// example:
//
//	Before : data = o7 o6 o5 o4 o3 o2 o1 o0
//	Cycle 1: data = o6 o5 o4 o3 o2 o1 o0 i0
//	Cycle 2: data = o5 o4 o3 o2 o1 o0 i0 i1
//	...
//	Cycle 8: data = i0 i1 i2 i3 i4 i5 i6 i7
//
// Where o0-o7 are the outgoing bits, and i0-i7 are the incoming bits.
type Controller struct {
	data          uint8 // SB
	sent          uint8 // the byte being transferred
	count         uint8 // the number of bits that have been transferred.
	cycles        uint8 // cycles until the next bit is shifted
	InternalClock bool  // if true, this controller is the master.
	Transferring  bool  // if true, a transfer is in progress.

	irq            *interrupts.Service
	AttachedDevice Device    // the device that is attached to this controller.
	out            io.Writer // receives every byte sent
}

// NewController creates a new Controller attached to b.
//
// By default, the Controller is attached to a nullDevice, which acts as if
// there is no device attached, so that every received bit is 1. Bytes
// sent are copied to w, if not nil.
func NewController(b *busio.Bus, irq *interrupts.Service, w io.Writer) *Controller {
	c := &Controller{
		irq:            irq,
		AttachedDevice: nullDevice{},
		out:            w,
	}
	b.ReserveAddress(types.SB, func(v byte) byte {
		c.data = v
		return v
	})
	b.ReserveLazyReader(types.SB, func() byte {
		return c.data
	})
	b.ReserveAddress(types.SC, func(v byte) byte {
		c.InternalClock = v&types.Bit0 != 0
		if v&types.Bit7 != 0 && !c.Transferring {
			c.start()
		} else if v&types.Bit7 == 0 {
			c.Transferring = false
		}
		return c.control()
	})
	b.ReserveLazyReader(types.SC, c.control)

	return c
}

// Attach attaches a Device to the Controller.
func (c *Controller) Attach(d Device) {
	c.AttachedDevice = d
}

// control returns the value of the SC register.
func (c *Controller) control() uint8 {
	v := uint8(0x7E) // bits 1-6 are unused
	if c.Transferring {
		v |= types.Bit7
	}
	if c.InternalClock {
		v |= types.Bit0
	}
	return v
}

func (c *Controller) start() {
	c.Transferring = true
	c.sent = c.data
	c.count = 0
	c.cycles = cyclesPerBit
}

// Tick advances the Controller by a single machine cycle. With an
// external clock a transfer never progresses, as there is no
// partner driving the clock.
func (c *Controller) Tick() {
	if !c.Transferring || !c.InternalClock {
		return
	}
	if c.cycles--; c.cycles > 0 {
		return
	}
	c.cycles = cyclesPerBit

	c.AttachedDevice.Receive(c.data&types.Bit7 != 0)
	c.data <<= 1
	if c.AttachedDevice.Send() {
		c.data |= 1
	}

	if c.count++; c.count == 8 {
		c.complete()
	}
}

// complete finishes a transfer, requesting the serial interrupt.
func (c *Controller) complete() {
	c.Transferring = false
	c.count = 0
	c.irq.Request(interrupts.SerialFlag)
	if c.out != nil {
		_, _ = c.out.Write([]byte{c.sent})
	}
}
