package runner

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/trace"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// ErrBreakpoint is returned when execution reaches a breakpoint address.
var ErrBreakpoint = errors.New("breakpoint reached")

// Observer receives a record after every executed instruction.
type Observer interface {
	Observe(rec trace.Record) error
}

// Sound follows the sound timer once per frame.
type Sound interface {
	SetActive(active bool)
}

// FrameRecorder captures the sound state of every frame.
type FrameRecorder interface {
	AddFrame(active bool)
}

var _ frontend.Machine = (*Session)(nil)

// Session drives a machine in frames of a fixed number of instructions
// followed by one timer tick. It implements frontend.Machine.
type Session struct {
	logger         *log.Logger
	machine        *vm.Machine
	cyclesPerFrame int
	breakpoints    set.Set[uint16]

	observer Observer
	sound    Sound
	recorder FrameRecorder

	cycles uint64
	frames uint64
	ended  error // sticky result once execution stopped
}

// NewSession returns a session for a machine with a loaded program.
func NewSession(logger *log.Logger, machine *vm.Machine, cyclesPerFrame int) *Session {
	return &Session{
		logger:         logger,
		machine:        machine,
		cyclesPerFrame: cyclesPerFrame,
		breakpoints:    set.New[uint16](),
	}
}

// AddBreakpoint stops execution before the instruction at the address is
// executed.
func (s *Session) AddBreakpoint(address uint16) {
	s.breakpoints.Add(address)
}

// SetObserver sets an observer that is called after every instruction.
func (s *Session) SetObserver(observer Observer) {
	s.observer = observer
}

// SetSound sets the live sound output.
func (s *Session) SetSound(sound Sound) {
	s.sound = sound
}

// SetRecorder sets the sound recorder.
func (s *Session) SetRecorder(recorder FrameRecorder) {
	s.recorder = recorder
}

// RunFrame implements frontend.Machine. It executes up to the configured
// number of instructions, stopping early when execution ends, and then
// ticks the timers once. After execution ended every call returns the
// same error without running the machine.
func (s *Session) RunFrame() error {
	if s.ended != nil {
		return s.ended
	}

	for range s.cyclesPerFrame {
		if err := s.step(); err != nil {
			s.ended = err
			break
		}
	}

	s.machine.TickTimers()
	s.frames++
	s.updateSound()
	return s.ended
}

// step executes a single instruction.
func (s *Session) step() error {
	pc := s.machine.ProgramCounter()
	if s.breakpoints.Contains(pc) {
		s.logBreakpoint(pc)
		return fmt.Errorf("%w at $%03X", ErrBreakpoint, pc)
	}

	var word uint16
	if s.observer != nil {
		word, _ = s.machine.Fetch()
	}

	outcome, err := s.machine.Step()
	switch outcome {
	case vm.Halted:
		s.logger.Debug("Program halted", log.Hex("pc", pc), log.Int("cycles", int(s.cycles)))
		return vm.ErrHalted
	case vm.Failed:
		return fmt.Errorf("executing instruction at $%03X: %w", pc, err)
	}

	s.cycles++
	if s.observer != nil {
		rec := trace.Record{
			Cycle:   s.cycles,
			Address: pc,
			Word:    word,
			State:   s.machine.Snapshot(),
		}
		if err := s.observer.Observe(rec); err != nil {
			return fmt.Errorf("observing cycle %d: %w", s.cycles, err)
		}
	}
	return nil
}

// updateSound passes the sound timer state to the outputs. Sound is
// switched off once execution ended.
func (s *Session) updateSound() {
	active := s.ended == nil && s.machine.SoundActive()
	if s.sound != nil {
		s.sound.SetActive(active)
	}
	if s.recorder != nil {
		s.recorder.AddFrame(active)
	}
}

func (s *Session) logBreakpoint(pc uint16) {
	snap := s.machine.Snapshot()
	word, _ := s.machine.Fetch()
	s.logger.Info("Breakpoint reached",
		log.Hex("pc", pc),
		log.String("instruction", disasm.Format(word)),
		log.Hex("i", snap.Index),
		log.Uint8("sp", snap.StackPointer),
		log.String("v", fmt.Sprintf("% 02X", snap.Registers[:])),
	)
}

// Snapshot implements frontend.Machine.
func (s *Session) Snapshot() vm.Snapshot {
	return s.machine.Snapshot()
}

// SetKey implements frontend.Machine.
func (s *Session) SetKey(key uint8, pressed bool) {
	s.machine.SetKey(key, pressed)
}

// SoundActive implements frontend.Machine.
func (s *Session) SoundActive() bool {
	return s.ended == nil && s.machine.SoundActive()
}

// Cycles returns the number of executed instructions.
func (s *Session) Cycles() uint64 {
	return s.cycles
}

// Frames returns the number of completed frames.
func (s *Session) Frames() uint64 {
	return s.frames
}
