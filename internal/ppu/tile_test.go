package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeRow(t *testing.T) {
	assert.Equal(t, [8]uint8{0, 1, 3, 3, 3, 3, 1, 0}, decodeRow(0x3C, 0x7E))
	assert.Equal(t, [8]uint8{2, 0, 0, 0, 0, 0, 0, 1}, decodeRow(0x80, 0x01))
	assert.Equal(t, uint8(2), decodeRow(0x80, 0x00)[0], "high bit from the first byte")
	assert.Equal(t, uint8(1), decodeRow(0x00, 0x80)[0], "low bit from the second byte")
	assert.Equal(t, [8]uint8{0, 1, 3, 3, 3, 3, 1, 0}, reverse(decodeRow(0x3C, 0x7E)))
	assert.Equal(t, [8]uint8{1, 0, 0, 0, 0, 0, 0, 2}, reverse(decodeRow(0x80, 0x01)))
}

func TestPixel_Mix(t *testing.T) {
	bg := func(c uint8) Pixel { return Pixel{Source: SourceBackground, Colour: c} }
	obj := func(c uint8, priority bool) Pixel {
		return Pixel{Source: SourceSprite, Colour: c, Priority: priority}
	}

	tests := []struct {
		name   string
		fifo   Pixel
		sprite Pixel
		want   Pixel
	}{
		{"transparent", bg(2), obj(0, false), bg(2)},
		{"above background", bg(2), obj(1, false), obj(1, false)},
		{"behind background", bg(2), obj(1, true), bg(2)},
		{"behind background colour 0", bg(0), obj(1, true), obj(1, true)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fifo.mix(tt.sprite))
		})
	}
}

func TestSprite(t *testing.T) {
	s := newSprite(16, 8, 0x03, 0xF0)
	assert.True(t, s.priority)
	assert.True(t, s.flipY)
	assert.True(t, s.flipX)
	assert.Equal(t, uint8(1), s.palette)

	assert.True(t, s.onLine(0, 8))
	assert.True(t, s.onLine(7, 8))
	assert.False(t, s.onLine(8, 8))
	assert.True(t, s.onLine(15, 16))

	// flipped vertically, line 0 reads the last row
	assert.Equal(t, uint16(0x8030+7*2), s.tileAddress(0, 8))
	assert.Equal(t, uint16(0x8030+7*2), s.tileAddress(0, 16))
	assert.Equal(t, uint16(0x8020), s.tileAddress(15, 16))

	hidden := newSprite(0, 8, 0, 0)
	for ly := uint8(0); ly < ScreenHeight; ly++ {
		assert.False(t, hidden.onLine(ly, 16))
	}

	top := newSprite(4, 8, 0, 0)
	assert.True(t, top.onLine(3, 16))
	assert.False(t, top.onLine(4, 16))
	assert.Equal(t, uint16(0x8000+15*2), top.tileAddress(3, 16))
}

func TestFetcherState_String(t *testing.T) {
	assert.Equal(t, "GetTile", FetcherGetTile.String())
	assert.Equal(t, "Push", FetcherPush.String())
	assert.Equal(t, "DrawingPixels", DrawingPixels.String())
	assert.Equal(t, "Unknown", State(9).String())
}
