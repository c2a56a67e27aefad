package web

// Type is the first byte of a message sent to a client.
type Type = uint8

const (
	// Frame carries a cache index (2 bytes, little endian) and
	// the RGBA pixels of a frame, brotli compressed if enabled.
	Frame Type = iota
	// FrameCache carries the cache index of a frame the client
	// has already received.
	FrameCache
	// FrameSkip carries the number of frames (2 bytes, little
	// endian) that were identical to the last frame sent.
	FrameSkip
	// ClientInfo carries the info byte of the hub and the
	// compression level.
	ClientInfo
)

// Event is the first byte of a message received from a client.
type Event = uint8

const (
	// ButtonPressed is followed by the joypad.Button pressed.
	ButtonPressed Event = iota + 1
	// ButtonReleased is followed by the joypad.Button released.
	ButtonReleased
	// Closing is sent by a client before it closes the
	// connection.
	Closing = 255
)
