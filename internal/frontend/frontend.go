// Package frontend defines how a user interface drives a running machine
// and contains the headless frontend.
package frontend

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// Machine is the interface a frontend drives. A frame executes a batch of
// instructions and ticks the timers once, frontends call RunFrame at 60 Hz.
type Machine interface {
	// RunFrame runs one frame. It returns vm.ErrHalted once the program
	// ended normally, any other error is fatal.
	RunFrame() error
	// Snapshot returns a copy of the machine state for rendering.
	Snapshot() vm.Snapshot
	// SetKey sets the state of a keypad key.
	SetKey(key uint8, pressed bool)
	// SoundActive returns whether the tone should currently be audible.
	SoundActive() bool
}

// Frontend runs a machine until it halts, fails, the user quits or the
// context is cancelled. A normal halt or quit returns nil.
type Frontend interface {
	Run(ctx context.Context, m Machine) error
}

// Headless runs frames back to back without any rendering or input.
type Headless struct {
	logger    *log.Logger
	maxFrames int
}

// NewHeadless returns a headless frontend. A maxFrames value of 0 runs the
// machine until it halts.
func NewHeadless(logger *log.Logger, maxFrames int) *Headless {
	return &Headless{
		logger:    logger,
		maxFrames: maxFrames,
	}
}

// Run implements the Frontend interface.
func (h *Headless) Run(ctx context.Context, m Machine) error {
	for frame := 0; h.maxFrames == 0 || frame < h.maxFrames; frame++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running frame %d: %w", frame, err)
		}

		err := m.RunFrame()
		if errors.Is(err, vm.ErrHalted) {
			h.logger.Debug("Program halted", log.Int("frames", frame+1))
			return nil
		}
		if err != nil {
			return fmt.Errorf("running frame %d: %w", frame, err)
		}
	}

	h.logger.Debug("Frame limit reached", log.Int("frames", h.maxFrames))
	return nil
}
