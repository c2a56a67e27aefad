package ppu

// Renderer receives the finished pixels of the PPU.
type Renderer interface {
	// PushPixel is called once for every visible pixel, in raster
	// order, with its shade (0 lightest, 3 darkest).
	PushPixel(shade uint8)
	// FrameComplete is called once the final line of a frame
	// has been drawn and the vertical blanking period has ended.
	FrameComplete()
}

// Frame holds the shades of a complete frame.
type Frame [ScreenHeight][ScreenWidth]uint8

// FrameBuffer is a Renderer collecting pixels into frames. The
// frame being drawn is kept separate from the last completed
// frame, so that a frame is never observed half drawn.
type FrameBuffer struct {
	drawing  Frame
	complete Frame
	pos      int
	frames   uint64

	onFrame func(*Frame)
}

// NewFrameBuffer returns a FrameBuffer. onFrame, if not nil, is
// called with every completed frame.
func NewFrameBuffer(onFrame func(*Frame)) *FrameBuffer {
	return &FrameBuffer{onFrame: onFrame}
}

// PushPixel implements Renderer.
func (f *FrameBuffer) PushPixel(shade uint8) {
	if f.pos >= ScreenWidth*ScreenHeight {
		return
	}
	f.drawing[f.pos/ScreenWidth][f.pos%ScreenWidth] = shade
	f.pos++
}

// FrameComplete implements Renderer.
func (f *FrameBuffer) FrameComplete() {
	f.complete = f.drawing
	f.pos = 0
	f.frames++
	if f.onFrame != nil {
		f.onFrame(&f.complete)
	}
}

// Frame returns the last completed frame.
func (f *FrameBuffer) Frame() *Frame {
	return &f.complete
}

// Frames returns the number of completed frames.
func (f *FrameBuffer) Frames() uint64 {
	return f.frames
}

// Pushed returns the number of pixels pushed to the frame
// currently being drawn.
func (f *FrameBuffer) Pushed() int {
	return f.pos
}
