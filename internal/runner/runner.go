// Package runner orchestrates a CHIP-8 run: loading the program, setting up
// the machine, its outputs and the frontend, and running it to completion.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/trace"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// Beeper is a live sound output.
type Beeper interface {
	Sound
	Close() error
}

// Host provides the parts of a run that depend on the host environment.
type Host struct {
	// Stdout receives the disassembly listing.
	Stdout io.Writer
	// NewFrontend creates the frontend of the given name.
	NewFrontend func(name string) (frontend.Frontend, error)
	// NewBeeper opens the live sound output, it is not called when muted.
	NewBeeper func() (Beeper, error)
	// Now returns the current time, used to derive an unset random seed.
	Now func() time.Time
}

// Runner orchestrates a complete run.
type Runner struct {
	logger *log.Logger
	loader *loader.Loader
	host   Host
}

// New creates a new runner.
func New(logger *log.Logger, host Host) *Runner {
	if host.Stdout == nil {
		host.Stdout = os.Stdout
	}
	if host.Now == nil {
		host.Now = time.Now
	}
	return &Runner{
		logger: logger,
		loader: loader.New(logger),
		host:   host,
	}
}

// Run loads the program and runs it with the configured frontend.
// A program that halts or is quit by the user returns nil unless closing
// one of the outputs fails.
func (r *Runner) Run(ctx context.Context, opts options.Program) (err error) {
	program, err := r.loader.Load(opts)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	if opts.List {
		if err := disasm.WriteListing(r.host.Stdout, program, vm.ProgramStart); err != nil {
			return fmt.Errorf("listing program: %w", err)
		}
		return nil
	}

	seed := config.Seed(opts, r.host.Now())
	machine := vm.New(vm.NewRandomSource(seed))
	if err := machine.Load(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	session := NewSession(r.logger, machine, opts.CyclesPerFrame)
	for _, address := range opts.BreakpointAddresses {
		session.AddBreakpoint(address)
	}

	closers, err := r.setupOutputs(opts, session)
	defer func() {
		if closeErr := closeAll(r.logger, closers); closeErr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", closeErr)
		}
	}()
	if err != nil {
		return err
	}

	fe, err := r.host.NewFrontend(opts.Frontend)
	if err != nil {
		return fmt.Errorf("creating frontend: %w", err)
	}

	r.printInfo(opts, len(program), seed)

	err = fe.Run(ctx, session)
	r.logger.Debug("Run finished",
		log.Int("frames", int(session.Frames())),
		log.Int("cycles", int(session.Cycles())))

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrBreakpoint) && opts.Frontend != options.FrontendHeadless:
		return nil
	default:
		return fmt.Errorf("running program: %w", err)
	}
}

// setupOutputs attaches the trace writer, the WAV recorder and the live
// sound output to the session. The returned closers have to be closed
// even when an error is returned.
func (r *Runner) setupOutputs(opts options.Program, session *Session) ([]io.Closer, error) {
	var closers []io.Closer

	if opts.Trace != "" {
		f, err := os.Create(opts.Trace)
		if err != nil {
			return closers, fmt.Errorf("creating trace file: %w", err)
		}
		writer := trace.New(f)
		session.SetObserver(writer)
		closers = append(closers, writer)
	}

	if opts.Wav != "" {
		recorder := audio.NewRecorder(opts.Wav)
		session.SetRecorder(recorder)
		closers = append(closers, recorder)
	}

	if !opts.Mute && r.host.NewBeeper != nil {
		beeper, err := r.host.NewBeeper()
		if err != nil {
			r.logger.Warn("Sound output not available", log.Err(err))
		} else {
			session.SetSound(beeper)
			closers = append(closers, beeper)
		}
	}

	return closers, nil
}

// printInfo prints information about the program being run.
func (r *Runner) printInfo(opts options.Program, size int, seed uint64) {
	if opts.Quiet {
		return
	}

	r.logger.Info("Running CHIP-8 program",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.String("frontend", opts.Frontend),
		log.Int("cpf", opts.CyclesPerFrame),
		log.String("seed", fmt.Sprintf("%d", seed)),
	)
}

// closeAll closes all closers in reverse order, logs failures and returns
// the first error.
func closeAll(logger *log.Logger, closers []io.Closer) error {
	var first error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			logger.Error("Closing output failed", log.Err(err))
			if first == nil {
				first = err
			}
		}
	}
	return first
}
