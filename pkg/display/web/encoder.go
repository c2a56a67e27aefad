package web

import (
	"bytes"
	"encoding/binary"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/pkg/display"
)

const cacheSize = 64

// encoder turns frames into the messages broadcast to clients.
type encoder struct {
	palette palette.Palette
	level   int // brotli quality, 0 disables compression

	cache   *cache
	last    uint64
	started bool
	skipped uint16
}

func newEncoder(p palette.Palette, level int) *encoder {
	return &encoder{
		palette: p,
		level:   level,
		cache:   newCache(cacheSize),
	}
}

// encode returns the messages describing f. A frame identical to
// the last one produces no message; the count of those is sent
// ahead of the next differing frame.
func (e *encoder) encode(f *ppu.Frame) ([][]byte, error) {
	pixels := display.Image(f, e.palette).Pix
	hash := xxhash.Sum64(pixels)

	if e.started && hash == e.last {
		e.skipped++
		return nil, nil
	}
	e.started = true
	e.last = hash

	var msgs [][]byte
	if e.skipped > 0 {
		msgs = append(msgs, binary.LittleEndian.AppendUint16([]byte{FrameSkip}, e.skipped))
		e.skipped = 0
	}

	if idx := e.cache.index(hash); idx >= 0 {
		return append(msgs, binary.LittleEndian.AppendUint16([]byte{FrameCache}, uint16(idx))), nil
	}

	data, err := e.compress(pixels)
	if err != nil {
		return nil, err
	}
	msg := binary.LittleEndian.AppendUint16([]byte{Frame}, uint16(e.cache.add(hash)))
	return append(msgs, append(msg, data...)), nil
}

// reset forgets the cache and the last frame, so the next frame is
// sent in full.
func (e *encoder) reset() {
	e.cache.reset()
	e.started = false
	e.skipped = 0
}

func (e *encoder) compress(pixels []byte) ([]byte, error) {
	if e.level == 0 {
		return pixels, nil
	}

	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, e.level)
	if _, err := w.Write(pixels); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
