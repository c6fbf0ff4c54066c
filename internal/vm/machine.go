package vm

import (
	"fmt"
	"time"
)

// Outcome is the result of a single Step.
type Outcome uint8

const (
	// Continue signals that the machine can be stepped again. A key-wait
	// instruction that is still polling also reports Continue.
	Continue Outcome = iota
	// Halted signals a normal end of execution, either by the halt word or
	// by the program counter leaving the loaded program.
	Halted
	// Failed signals a fatal error, the accompanying error describes it.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Halted:
		return "halted"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// Machine is a CHIP-8 virtual machine. It is not safe for concurrent use,
// the owner drives Step, TickTimers and SetKey from one goroutine.
type Machine struct {
	memory  [MemorySize]byte
	v       [RegisterCount]uint8
	i       uint16
	pc      uint16
	stack   [StackSize]uint16
	sp      uint8
	display [DisplayWidth * DisplayHeight]bool

	delayTimer uint8
	soundTimer uint8

	keys    [KeyCount]bool
	keyWait KeyWait

	// loaded program extent [programStart, programEnd)
	programStart int
	programEnd   int

	rng RandomSource
}

// New returns a machine without a loaded program. The random source is used
// by the RND instruction, a nil source is replaced by a clock seeded one.
func New(rng RandomSource) *Machine {
	if rng == nil {
		rng = NewRandomSource(uint64(time.Now().UnixNano()))
	}
	m := &Machine{rng: rng}
	m.Reset()
	return m
}

// Reset clears all machine state, unloads the program and installs the
// digit glyphs at FontStart.
func (m *Machine) Reset() {
	*m = Machine{rng: m.rng}
	copy(m.memory[FontStart:], glyphs[:])
	m.pc = ProgramStart
}

// Load resets the machine and loads the program image at ProgramStart.
func (m *Machine) Load(program []byte) error {
	return m.LoadAt(program, ProgramStart)
}

// LoadAt resets the machine and loads the program image at the given origin.
// The program counter is set to the origin and execution halts once it
// leaves the loaded extent.
func (m *Machine) LoadAt(program []byte, origin uint16) error {
	available := MemorySize - int(origin)
	if available < 0 || len(program) > available {
		return fmt.Errorf("%w: %d bytes at $%03X, %d bytes available",
			ErrRomTooLarge, len(program), origin, max(available, 0))
	}

	m.Reset()
	copy(m.memory[origin:], program)
	m.pc = origin
	m.programStart = int(origin)
	m.programEnd = int(origin) + len(program)
	return nil
}

// TickTimers decrements the delay and sound timers, stopping at zero.
// It is called at 60 Hz independent of the instruction rate.
func (m *Machine) TickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// SetKey sets the state of a keypad key. Keys outside 0-F are ignored.
func (m *Machine) SetKey(key uint8, pressed bool) {
	if int(key) >= KeyCount {
		return
	}
	m.keys[key] = pressed
}

// SoundActive returns whether the sound timer is running.
func (m *Machine) SoundActive() bool {
	return m.soundTimer > 0
}

// ProgramCounter returns the address of the next instruction.
func (m *Machine) ProgramCounter() uint16 {
	return m.pc
}

// Fetch returns the instruction word at the program counter without
// executing it.
func (m *Machine) Fetch() (uint16, error) {
	b, err := m.memoryRange(m.pc, instructionSize)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// Step executes one instruction. It never blocks, a key wait is reported as
// Continue without advancing the program counter.
func (m *Machine) Step() (Outcome, error) {
	pc := int(m.pc)
	if pc < m.programStart || pc >= m.programEnd {
		return Halted, nil
	}

	word, err := m.Fetch()
	if err != nil {
		return Failed, err
	}
	return m.Execute(Decode(word))
}

// memoryRange returns the memory slice [addr, addr+length) or an error if
// it does not fit into the address space.
func (m *Machine) memoryRange(addr uint16, length int) ([]byte, error) {
	start := int(addr)
	if start+length > MemorySize {
		return nil, &MemoryAccessError{Address: start, Length: length}
	}
	return m.memory[start : start+length], nil
}
