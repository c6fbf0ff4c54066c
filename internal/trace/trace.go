// Package trace writes a human readable dump of the machine state after
// every executed instruction.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/vm"
)

// Record describes one executed instruction and the machine state after it.
type Record struct {
	Cycle   uint64 // 1 based instruction counter
	Address uint16 // address the instruction was fetched from
	Word    uint16
	State   vm.Snapshot
}

// Writer writes trace records to an underlying writer. Output is buffered,
// Close flushes it and closes the underlying writer if it is an io.Closer.
type Writer struct {
	out    io.Writer
	buffer *bufio.Writer
	line   strings.Builder
}

// New returns a trace writer writing to out.
func New(out io.Writer) *Writer {
	return &Writer{
		out:    out,
		buffer: bufio.NewWriter(out),
	}
}

// Observe writes the dump of a single record.
func (w *Writer) Observe(rec Record) error {
	s := &rec.State
	b := &w.line
	b.Reset()

	fmt.Fprintf(b, "cycle %d\n", rec.Cycle)
	fmt.Fprintf(b, "PC: $%03X  instruction: $%03X: %04X  %s\n", s.PC, rec.Address, rec.Word, disasm.Format(rec.Word))
	fmt.Fprintf(b, "I: $%03X  SP: %d  DT: %d  ST: %d  key wait: %s\n",
		s.Index, s.StackPointer, s.DelayTimer, s.SoundTimer, s.KeyWait.State)

	b.WriteString("V:")
	for _, v := range s.Registers {
		fmt.Fprintf(b, " %02X", v)
	}
	b.WriteString("\nS:")
	for _, addr := range s.Stack {
		fmt.Fprintf(b, " %03X", addr)
	}
	b.WriteString("\nK: ")
	for _, pressed := range s.Keypad {
		if pressed {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	b.WriteString("\n\n")

	if _, err := w.buffer.WriteString(b.String()); err != nil {
		return fmt.Errorf("writing trace record: %w", err)
	}
	return nil
}

// Close flushes buffered records.
func (w *Writer) Close() error {
	if err := w.buffer.Flush(); err != nil {
		return fmt.Errorf("flushing trace: %w", err)
	}
	if closer, ok := w.out.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("closing trace: %w", err)
		}
	}
	return nil
}
