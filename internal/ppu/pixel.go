package ppu

// Source identifies the layer a Pixel was fetched from.
type Source uint8

const (
	// SourceBackground pixels are fetched from the background or window.
	SourceBackground Source = iota
	// SourceSprite pixels are mixed in from a sprite.
	SourceSprite
)

// Pixel is a single entry in the pixel FIFO. Background pixels
// only carry a Colour, sprite pixels also carry their priority
// and palette.
type Pixel struct {
	Source Source
	// Colour is the 2-bit colour index of the pixel.
	Colour uint8
	// Priority is the OBJ-to-BG priority attribute of a sprite
	// pixel. When set, the sprite is hidden behind background
	// colours 1-3.
	Priority bool
	// Palette selects OBP0 or OBP1 for a sprite pixel.
	Palette uint8
}

// mix mixes a sprite pixel over the background pixel p,
// returning the pixel that is drawn. Transparent sprite pixels
// never replace a pixel.
func (p Pixel) mix(sprite Pixel) Pixel {
	if sprite.Colour == 0 {
		return p
	}
	if !sprite.Priority || p.Colour == 0 {
		return sprite
	}
	return p
}
