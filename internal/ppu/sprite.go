package ppu

import "github.com/thelolagemann/dmgcore/internal/types"

// maxSpritesPerLine is the number of sprites selected by an OAM
// scan. Any further sprites on the line are not drawn.
const maxSpritesPerLine = 10

// Sprite is an entry in OAM, selected during OAM scan.
type Sprite struct {
	Y      uint8
	X      uint8
	TileID uint8
	spriteAttributes

	// mixed is set once the sprite has been mixed into the FIFO.
	mixed bool
}

// spriteAttributes represents the attributes of a sprite.
type spriteAttributes struct {
	// Bit 7 - OBJ-to-BG priority (0=OBJ Above BG, 1=OBJ Behind BG color 1-3)
	// (Used for both BG and Window. BG color 0 is always behind OBJ)
	priority bool
	// Bit 6 - Y flip          (0=Normal, 1=Vertically mirrored)
	flipY bool
	// Bit 5 - X flip          (0=Normal, 1=Horizontally mirrored)
	flipX bool
	// Bit 4 - Palette number  (0=OBP0, 1=OBP1)
	palette uint8
}

func newSprite(y, x, id, attr uint8) Sprite {
	return Sprite{
		Y:      y,
		X:      x,
		TileID: id,
		spriteAttributes: spriteAttributes{
			priority: attr&types.Bit7 != 0,
			flipY:    attr&types.Bit6 != 0,
			flipX:    attr&types.Bit5 != 0,
			palette:  attr & types.Bit4 >> 4,
		},
	}
}

// onLine reports whether the sprite covers line ly. Sprite Y
// positions are offset by 16, so that a sprite can be partially
// hidden above the screen.
func (s Sprite) onLine(ly uint8, height uint8) bool {
	top := int(s.Y) - 16
	return int(ly) >= top && int(ly) < top+int(height)
}

// tileAddress returns the address of the row of sprite tile data
// for line ly.
func (s Sprite) tileAddress(ly uint8, height uint8) uint16 {
	row := uint8(int(ly) - (int(s.Y) - 16))
	if s.flipY {
		row = height - 1 - row
	}
	id := s.TileID
	if height == 16 {
		id &^= 1
	}
	return 0x8000 + uint16(id)*16 + uint16(row)*2
}
