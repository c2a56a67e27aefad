package utils

import (
	"image"
	"image/png"
	"os"
	"strings"
)

// SaveImage encodes img as a PNG to filename, adding the .png
// extension when it is missing.
func SaveImage(img image.Image, filename string) error {
	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		filename += ".png"
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
