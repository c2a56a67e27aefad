package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	return filename
}

func TestApplyConfig(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	rom := fs.String("rom", "", "")
	frames := fs.Int("frames", 0, "")
	trace := fs.Bool("trace", false, "")
	driver := fs.String("driver", "auto", "")

	require.NoError(t, fs.Parse([]string{"-driver", "web"}))
	require.NoError(t, applyConfig(fs, writeConfig(t, "rom: game.gb\nframes: 60\ntrace: true\ndriver: png\n")))

	assert.Equal(t, "game.gb", *rom)
	assert.Equal(t, 60, *frames)
	assert.True(t, *trace)
	assert.Equal(t, "web", *driver, "flags on the command line take precedence")
}

func TestApplyConfig_Errors(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Int("frames", 0, "")

	assert.Error(t, applyConfig(fs, filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, applyConfig(fs, writeConfig(t, "speed: 2\n")), "unknown option")
	assert.Error(t, applyConfig(fs, writeConfig(t, "frames: lots\n")), "invalid value")
	assert.Error(t, applyConfig(fs, writeConfig(t, "- frames\n")), "not a mapping")
}
