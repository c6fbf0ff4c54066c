package terminal

import (
	"strings"

	"github.com/retroenv/retrochip8/internal/vm"
)

// Render writes the display as text to b. Every character covers two pixel
// rows using half block characters. The output starts with a cursor home
// sequence and terminates lines with CR LF, as required in raw mode.
func Render(b *strings.Builder, s *vm.Snapshot) {
	b.WriteString("\x1b[H")

	for y := 0; y < vm.DisplayHeight; y += 2 {
		for x := range vm.DisplayWidth {
			top := s.Pixel(x, y)
			bottom := s.Pixel(x, y+1)

			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteString("\r\n")
	}
}

// renderStatus writes the status line below the display.
func renderStatus(b *strings.Builder, sound bool) {
	if sound {
		b.WriteString("\x1b[7m BEEP \x1b[0m  Esc quits\x1b[K")
		return
	}
	b.WriteString("       Esc quits\x1b[K")
}
