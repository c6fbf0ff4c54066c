package window

import "github.com/retroenv/retrochip8/internal/vm"

// Display colors as RGBA.
var (
	colorOn  = [4]byte{0xE8, 0xE8, 0xD0, 0xFF}
	colorOff = [4]byte{0x10, 0x18, 0x10, 0xFF}
)

// fillPixels converts the display of a snapshot to RGBA pixel data.
// The buffer has to hold 4 bytes per display pixel.
func fillPixels(buf []byte, s *vm.Snapshot) {
	for i, on := range s.Display {
		c := colorOff
		if on {
			c = colorOn
		}
		copy(buf[i*4:i*4+4], c[:])
	}
}
