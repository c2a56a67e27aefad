package lcd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestController(t *testing.T) {
	var c Controller
	c.Write(0x91)

	assert.True(t, c.Enabled)
	assert.True(t, c.UnsignedTileData)
	assert.True(t, c.BackgroundEnabled)
	assert.False(t, c.WindowEnabled)
	assert.False(t, c.SpriteEnabled)
	assert.Equal(t, uint16(0x9800), c.BackgroundTileMapAddress)
	assert.Equal(t, uint8(8), c.SpriteSize)
	assert.Equal(t, uint8(0x91), c.Read())

	for v := 0; v < 256; v++ {
		c.Write(uint8(v))
		assert.Equal(t, uint8(v), c.Read())
	}
}

func TestController_TileDataAddress(t *testing.T) {
	c := Controller{UnsignedTileData: true}
	assert.Equal(t, uint16(0x8000), c.TileDataAddress(0))
	assert.Equal(t, uint16(0x8FF0), c.TileDataAddress(0xFF))

	c.UnsignedTileData = false
	assert.Equal(t, uint16(0x9000), c.TileDataAddress(0))
	assert.Equal(t, uint16(0x97F0), c.TileDataAddress(0x7F))
	assert.Equal(t, uint16(0x8800), c.TileDataAddress(0x80))
}

func TestStatus(t *testing.T) {
	var s Status
	s.Write(0xFF)
	s.Mode = VRAM
	assert.Equal(t, uint8(0xFB), s.Read(), "coincidence is read only")

	s.Coincidence = true
	assert.Equal(t, uint8(0xFF), s.Read())

	assert.True(t, s.InterruptEnabled(HBlank))
	assert.False(t, s.InterruptEnabled(VRAM))

	s.Write(0x00)
	assert.Equal(t, uint8(0x87), s.Read())
}
