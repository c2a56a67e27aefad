// Package palette maps DMG colour indices to shades, and shades
// to RGB colours.
package palette

import (
	"fmt"
	"image/color"
	"strings"
)

const (
	// Greyscale is the default greyscale palette.
	Greyscale = iota
	// Green is the green palette which attempts to emulate
	// the original colour palette as it would have appeared
	// on the original Game Boy.
	Green
	// Red is a red palette.
	Red
	// Yellow is a yellow palette.
	Yellow
)

// Palette represents a palette. A palette is an array of 4 RGB
// values, one for each shade from lightest to darkest.
type Palette struct {
	Colors [4][3]uint8
}

// Palettes is a list of all available palettes.
var Palettes = []Palette{
	// Greyscale
	{
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0xFF},
			{0xCC, 0xCC, 0xCC},
			{0x77, 0x77, 0x77},
			{0x00, 0x00, 0x00},
		},
	},
	// Green
	{
		Colors: [4][3]uint8{
			{0x9B, 0xBC, 0x0F},
			{0x8B, 0xAC, 0x0F},
			{0x30, 0x62, 0x30},
			{0x0F, 0x38, 0x0F},
		},
	},
	// Red
	{
		Colors: [4][3]uint8{
			{0xFF, 0x00, 0x00},
			{0xCC, 0x00, 0x00},
			{0x77, 0x00, 0x00},
			{0x00, 0x00, 0x00},
		},
	},
	// Yellow
	{
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0x00},
			{0xCC, 0xCC, 0x00},
			{0x77, 0x77, 0x00},
			{0x00, 0x00, 0x00},
		},
	},
}

var names = map[string]int{
	"greyscale": Greyscale,
	"grayscale": Greyscale,
	"green":     Green,
	"red":       Red,
	"yellow":    Yellow,
}

// ByName returns the palette with the given name.
func ByName(name string) (Palette, error) {
	i, ok := names[strings.ToLower(name)]
	if !ok {
		return Palette{}, fmt.Errorf("palette: unknown palette %q", name)
	}
	return Palettes[i], nil
}

// Shade maps a 2-bit colour index through a palette register
// (BGP, OBP0 or OBP1). The shade of index i is held in bits
// 2i and 2i+1 of the register.
func Shade(register, index uint8) uint8 {
	return (register >> (index * 2)) & 0x03
}

// RGBA returns the colour of the given shade.
func (p Palette) RGBA(shade uint8) color.RGBA {
	c := p.Colors[shade&0x03]
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xFF}
}
