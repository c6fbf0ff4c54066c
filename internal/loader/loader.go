// Package loader handles CHIP-8 program image loading.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnsupportedFile is returned for input files that are not detected as
// CHIP-8 program images and binary mode is not enabled.
var ErrUnsupportedFile = errors.New("unsupported file")

// maxImageSize is the size of the program space above the default origin.
const maxImageSize = vm.MemorySize - vm.ProgramStart

// Loader handles loading program images from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new program image loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads the program image named in the options. Unless binary mode is
// enabled, the file extension has to identify a CHIP-8 program.
// Images that can not fit into the program space return vm.ErrRomTooLarge.
func (l *Loader) Load(opts options.Program) ([]byte, error) {
	if !opts.Binary {
		system := Detect(opts.Input)
		l.logger.Debug("Detected system",
			log.Stringer("system", system),
			log.String("file", opts.Input))

		if system != arch.CHIP8System {
			return nil, fmt.Errorf("%w: %s: ROM file must have a .ch8 extension, use -binary to load it anyway",
				ErrUnsupportedFile, opts.Input)
		}
	}

	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	return l.LoadFromReader(file)
}

// LoadFromReader reads a program image from a reader. At most one byte more
// than the program space is read, so oversized inputs are rejected without
// reading them completely.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program image: %w", err)
	}
	if len(data) > maxImageSize {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", vm.ErrRomTooLarge, maxImageSize)
	}

	l.logger.Debug("Loaded program image", log.Int("size", len(data)))
	return data, nil
}

// Detect determines the system of a file from its extension. Files that
// are not CHIP-8 programs return an empty system.
func Detect(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".ch8" {
		return arch.CHIP8System
	}
	return ""
}
