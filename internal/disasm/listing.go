package disasm

import (
	"fmt"
	"io"
)

// WriteListing writes one line per instruction word of the program image,
// prefixed with the address relative to origin and the raw word. A trailing
// odd byte is written as a byte directive.
func WriteListing(w io.Writer, program []byte, origin uint16) error {
	for offset := 0; offset < len(program); offset += 2 {
		address := int(origin) + offset

		if offset+1 >= len(program) {
			if _, err := fmt.Fprintf(w, "$%03X: %02X    .byte $%02X\n", address, program[offset], program[offset]); err != nil {
				return fmt.Errorf("writing listing: %w", err)
			}
			break
		}

		word := uint16(program[offset])<<8 | uint16(program[offset+1])
		if _, err := fmt.Fprintf(w, "$%03X: %04X  %s\n", address, word, Format(word)); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}
	return nil
}
