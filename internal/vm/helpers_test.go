package vm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// fixedSource returns the same value for every call.
type fixedSource uint32

func (f fixedSource) Uint32() uint32 { return uint32(f) }

// newTestMachine returns a machine with the given instruction words loaded
// at ProgramStart.
func newTestMachine(t *testing.T, words ...uint16) *Machine {
	t.Helper()

	program := make([]byte, 0, len(words)*2)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}

	m := New(fixedSource(0xA5))
	assert.NoError(t, m.Load(program))
	return m
}

// step executes one instruction and fails the test on an error.
func step(t *testing.T, m *Machine) Outcome {
	t.Helper()
	outcome, err := m.Step()
	assert.NoError(t, err)
	return outcome
}
