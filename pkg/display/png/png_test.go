package png

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/pkg/display"
)

func TestDriver(t *testing.T) {
	d := &Driver{Output: t.TempDir(), Every: 2, Scale: 2, Palette: "greyscale"}

	frames := make(chan *ppu.Frame, 5)
	for i := 0; i < 5; i++ {
		f := &ppu.Frame{}
		f[0][0] = uint8(i % 4)
		frames <- f
	}
	close(frames)

	require.NoError(t, d.Start(frames, nil, nil))
	assert.Equal(t, 3, d.Written())

	for _, name := range []string{"frame_00002.png", "frame_00004.png"} {
		assert.FileExists(t, filepath.Join(d.Output, name))
	}

	file, err := os.Open(filepath.Join(d.Output, "frame_last.png"))
	require.NoError(t, err)
	defer file.Close()
	img, err := png.Decode(file)
	require.NoError(t, err)

	assert.Equal(t, 2*ppu.ScreenWidth, img.Bounds().Dx())
	assert.Equal(t, 2*ppu.ScreenHeight, img.Bounds().Dy())
	// the last frame has shade 0 at the origin
	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, []uint32{0xFFFF, 0xFFFF, 0xFFFF}, []uint32{r, g, b})
	r, _, _, _ = img.At(2, 0).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
}

func TestDriver_Palette(t *testing.T) {
	d := &Driver{Output: t.TempDir(), Palette: "sepia"}
	frames := make(chan *ppu.Frame)
	close(frames)
	assert.Error(t, d.Start(frames, nil, nil))
}

func TestInstalled(t *testing.T) {
	assert.Equal(t, defaultDriver, display.GetDriver("png"))
}
