package display

import (
	"image"
	"sync/atomic"

	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"golang.org/x/image/draw"
)

// Renderer receives the finished pixels of the emulator.
type Renderer = ppu.Renderer

// FrameSink is a Renderer passing a copy of every completed frame
// to a channel, for a Driver to consume. Frames are dropped while
// the channel is full, so the emulator never waits on a driver.
type FrameSink struct {
	*ppu.FrameBuffer
	frames  chan *ppu.Frame
	dropped atomic.Uint64
}

// NewFrameSink returns a FrameSink buffering up to size frames.
func NewFrameSink(size int) *FrameSink {
	s := &FrameSink{frames: make(chan *ppu.Frame, size)}
	s.FrameBuffer = ppu.NewFrameBuffer(s.send)
	return s
}

func (s *FrameSink) send(f *ppu.Frame) {
	frame := *f
	select {
	case s.frames <- &frame:
	default:
		s.dropped.Add(1)
	}
}

// Frames returns the channel receiving completed frames.
func (s *FrameSink) Frames() <-chan *ppu.Frame {
	return s.frames
}

// Dropped returns the number of frames dropped.
func (s *FrameSink) Dropped() uint64 {
	return s.dropped.Load()
}

// Close closes the channel of frames, stopping the driver.
func (s *FrameSink) Close() {
	close(s.frames)
}

// Image converts f to an image, colouring each shade with p.
func Image(f *ppu.Frame, p palette.Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for y := range f {
		for x, shade := range f[y] {
			img.SetRGBA(x, y, p.RGBA(shade))
		}
	}
	return img
}

// Scale scales img by an integer factor, keeping pixels sharp.
func Scale(img image.Image, factor int) *image.RGBA {
	if factor <= 1 {
		if rgba, ok := img.(*image.RGBA); ok {
			return rgba
		}
		factor = 1
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
