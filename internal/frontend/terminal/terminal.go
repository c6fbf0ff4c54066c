// Package terminal implements a frontend that renders the display with
// block characters to a terminal and reads the keypad from raw stdin.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const (
	frameDuration = time.Second / 60

	// terminals report key presses and auto repeat but no releases, a key
	// is released once no byte for it arrived within this duration.
	keyHold = 250 * time.Millisecond

	pollInterval = 5 * time.Millisecond

	keyEscape = 0x1b
	keyCtrlC  = 0x03
)

// ErrNotTerminal is returned when stdin is not a terminal.
var ErrNotTerminal = errors.New("stdin is not a terminal")

var _ frontend.Frontend = (*Terminal)(nil)

// Terminal is a frontend using the controlling terminal.
type Terminal struct {
	logger *log.Logger
	in     *os.File
	out    io.Writer
	hold   *keypad.HoldTracker
}

// New returns a terminal frontend reading from in and rendering to out.
func New(logger *log.Logger, in *os.File, out io.Writer) *Terminal {
	return &Terminal{
		logger: logger,
		in:     in,
		out:    out,
		hold:   keypad.NewHoldTracker(keyHold),
	}
}

// Run implements the frontend.Frontend interface. Esc or Ctrl+C quit.
func (t *Terminal) Run(ctx context.Context, m frontend.Machine) error {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}
	if width, height, err := term.GetSize(fd); err == nil && (width < vm.DisplayWidth || height < vm.DisplayHeight/2+1) {
		t.logger.Warn("Terminal is smaller than the display",
			log.Int("width", width), log.Int("height", height))
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	if err := unix.SetNonblock(fd, true); err != nil {
		return fmt.Errorf("setting nonblocking stdin: %w", err)
	}
	defer func() { _ = unix.SetNonblock(fd, false) }()

	input := make(chan []byte, 64)
	stop := make(chan struct{})
	done := make(chan struct{})
	go readInput(fd, input, stop, done)
	defer func() {
		close(stop)
		<-done
	}()

	_, _ = io.WriteString(t.out, "\x1b[2J\x1b[?25l")
	defer func() { _, _ = io.WriteString(t.out, "\x1b[?25h\r\n") }()

	return t.loop(ctx, m, input)
}

// loop runs one frame per tick until the program ends.
func (t *Terminal) loop(ctx context.Context, m frontend.Machine, input <-chan []byte) error {
	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	var screen strings.Builder
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("terminal frontend: %w", ctx.Err())

		case data := <-input:
			if t.handleInput(data, time.Now()) {
				t.logger.Debug("Quit requested")
				return nil
			}

		case now := <-ticker.C:
			t.hold.Update(now, m.SetKey)

			err := m.RunFrame()
			snap := m.Snapshot()
			screen.Reset()
			Render(&screen, &snap)
			renderStatus(&screen, m.SoundActive())
			if _, werr := io.WriteString(t.out, screen.String()); werr != nil {
				return fmt.Errorf("rendering display: %w", werr)
			}

			if errors.Is(err, vm.ErrHalted) {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}

// handleInput processes a batch of raw input bytes and returns whether the
// user asked to quit. Escape sequences of special keys are skipped.
func (t *Terminal) handleInput(data []byte, now time.Time) bool {
	for i := 0; i < len(data); i++ {
		switch b := data[i]; b {
		case keyCtrlC:
			return true

		case keyEscape:
			if i+1 < len(data) && (data[i+1] == '[' || data[i+1] == 'O') {
				i = skipEscapeSequence(data, i+2)
				continue
			}
			return true

		default:
			if key, ok := keypad.Lookup(rune(b)); ok {
				t.hold.Press(key, now)
			}
		}
	}
	return false
}

// skipEscapeSequence returns the index of the final byte of a CSI or SS3
// sequence whose parameters start at i.
func skipEscapeSequence(data []byte, i int) int {
	for ; i < len(data); i++ {
		if data[i] >= 0x40 && data[i] <= 0x7e {
			return i
		}
	}
	return len(data) - 1
}

// readInput forwards raw stdin data until stop is closed.
func readInput(fd int, input chan<- []byte, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	buf := make([]byte, 64)

	for {
		select {
		case <-stop:
			return
		default:
		}

		n, err := unix.Read(fd, buf)
		if n > 0 {
			data := append([]byte(nil), buf[:n]...)
			select {
			case input <- data:
			case <-stop:
				return
			}
			continue
		}
		if err != nil && !errors.Is(err, unix.EAGAIN) && !errors.Is(err, unix.EWOULDBLOCK) {
			return
		}
		time.Sleep(pollInterval)
	}
}
