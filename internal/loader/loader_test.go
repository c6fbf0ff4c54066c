package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

//nolint:funlen // test functions can be long
func TestLoad(t *testing.T) {
	t.Run("load CHIP8 file", func(t *testing.T) {
		tmpFile := createTempFile(t, "test.ch8", []byte{0x12, 0x34, 0x56, 0x78})

		loader := New(log.NewTestLogger(t))
		opts := options.Program{}
		opts.Input = tmpFile

		data, err := loader.Load(opts)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78}, data)
	})

	t.Run("extension is case insensitive", func(t *testing.T) {
		tmpFile := createTempFile(t, "TEST.CH8", []byte{0x00, 0xE0})

		loader := New(log.NewTestLogger(t))
		opts := options.Program{}
		opts.Input = tmpFile

		data, err := loader.Load(opts)
		assert.NoError(t, err)
		assert.Len(t, data, 2)
	})

	t.Run("error on unsupported extension", func(t *testing.T) {
		tmpFile := createTempFile(t, "test.bin", []byte{0x00, 0xE0})

		loader := New(log.NewTestLogger(t))
		opts := options.Program{}
		opts.Input = tmpFile

		_, err := loader.Load(opts)
		assert.ErrorContains(t, err, ".ch8 extension")
		assert.True(t, errors.Is(err, ErrUnsupportedFile))
	})

	t.Run("load binary file", func(t *testing.T) {
		tmpFile := createTempFile(t, "test.bin", []byte{0x01, 0x02, 0x03})

		loader := New(log.NewTestLogger(t))
		opts := options.Program{}
		opts.Input = tmpFile
		opts.Binary = true

		data, err := loader.Load(opts)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02, 0x03}, data)
	})

	t.Run("load empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, "empty.ch8", nil)

		loader := New(log.NewTestLogger(t))
		opts := options.Program{}
		opts.Input = tmpFile

		data, err := loader.Load(opts)
		assert.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		loader := New(log.NewTestLogger(t))
		opts := options.Program{}
		opts.Input = "/nonexistent/file.ch8"

		_, err := loader.Load(opts)
		assert.Error(t, err)
	})
}

func TestLoadFromReader(t *testing.T) {
	loader := New(log.NewTestLogger(t))

	data, err := loader.LoadFromReader(bytes.NewReader(make([]byte, maxImageSize)))
	assert.NoError(t, err)
	assert.Len(t, data, maxImageSize)

	_, err = loader.LoadFromReader(bytes.NewReader(make([]byte, maxImageSize+1)))
	assert.True(t, errors.Is(err, vm.ErrRomTooLarge))
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected arch.System
	}{
		{"ch8 extension", "pong.ch8", arch.CHIP8System},
		{"upper case extension", "PONG.CH8", arch.CHIP8System},
		{"nested path", "/roms/games/pong.ch8", arch.CHIP8System},
		{"nes extension", "game.nes", ""},
		{"no extension", "pong", ""},
		{"extension only as name", "ch8", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Detect(tt.filename))
		})
	}
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
