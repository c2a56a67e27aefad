// Package png provides a display driver writing frames to PNG
// files, for headless runs and regression screenshots.
package png

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/pkg/display"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

var defaultDriver = &Driver{}

func init() {
	display.Install("png", defaultDriver, []display.DriverOption{
		{
			Name:        "output",
			Default:     ".",
			Value:       &defaultDriver.Output,
			Description: "The directory to write frames to",
			Type:        "string",
		},
		{
			Name:        "every",
			Default:     0,
			Value:       &defaultDriver.Every,
			Description: "Write every nth frame (0 writes the last frame only)",
			Type:        "int",
		},
		{
			Name:        "scale",
			Default:     1,
			Value:       &defaultDriver.Scale,
			Description: "The integer scale factor of written frames",
			Type:        "int",
		},
		{
			Name:        "palette",
			Default:     "greyscale",
			Value:       &defaultDriver.Palette,
			Description: "The palette to colour frames with",
			Type:        "string",
		},
	})
}

// Driver writes frames to PNG files named frame_NNNNN.png, and
// the final frame to frame_last.png.
type Driver struct {
	Output  string
	Every   int
	Scale   int
	Palette string

	written int
}

// Start implements display.Driver. It returns once frames is
// closed, after writing the last frame.
func (d *Driver) Start(frames <-chan *ppu.Frame, _, _ chan<- joypad.Button) error {
	pal, err := palette.ByName(d.Palette)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.Output, 0o755); err != nil {
		return fmt.Errorf("png: %w", err)
	}

	var (
		last *ppu.Frame
		n    int
	)
	for f := range frames {
		n++
		last = f
		if d.Every > 0 && n%d.Every == 0 {
			if err := d.write(f, pal, fmt.Sprintf("frame_%05d", n)); err != nil {
				return err
			}
		}
	}

	if last == nil {
		return nil
	}
	return d.write(last, pal, "frame_last")
}

func (d *Driver) write(f *ppu.Frame, pal palette.Palette, name string) error {
	img := display.Scale(display.Image(f, pal), d.Scale)
	if err := utils.SaveImage(img, filepath.Join(d.Output, name)); err != nil {
		return fmt.Errorf("png: writing %s: %w", name, err)
	}
	d.written++
	return nil
}

// Written returns the number of frames written.
func (d *Driver) Written() int {
	return d.written
}

// Stop implements display.Driver. The driver stops on its own
// once its frames are closed.
func (d *Driver) Stop() error {
	return nil
}
