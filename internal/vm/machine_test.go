package vm

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("program is copied to origin", func(t *testing.T) {
		m := New(fixedSource(0))
		assert.NoError(t, m.Load([]byte{0x12, 0x34, 0x56}))

		mem, err := m.Memory(ProgramStart, 4)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x00}, mem)
		assert.Equal(t, uint16(ProgramStart), m.ProgramCounter())
	})

	t.Run("largest image fits", func(t *testing.T) {
		m := New(fixedSource(0))
		assert.NoError(t, m.Load(make([]byte, MemorySize-ProgramStart)))
	})

	t.Run("oversized image is rejected", func(t *testing.T) {
		m := New(fixedSource(0))
		err := m.Load(make([]byte, MemorySize-ProgramStart+1))
		assert.True(t, errors.Is(err, ErrRomTooLarge))
	})

	t.Run("custom origin", func(t *testing.T) {
		m := New(fixedSource(0))
		assert.NoError(t, m.LoadAt([]byte{0x00, 0xE0}, 0x600))
		assert.Equal(t, uint16(0x600), m.ProgramCounter())

		err := m.LoadAt(make([]byte, 0x201), 0xE00)
		assert.True(t, errors.Is(err, ErrRomTooLarge))
	})

	t.Run("reload resets state", func(t *testing.T) {
		m := newTestMachine(t, 0x6A42, 0xF215)
		step(t, m)
		assert.NoError(t, m.Load([]byte{0x00, 0xE0}))
		snap := m.Snapshot()
		assert.Equal(t, uint8(0), snap.Registers[0xA])
		assert.Equal(t, uint16(ProgramStart), snap.PC)
	})
}

func TestGlyphTable(t *testing.T) {
	m := New(fixedSource(0))
	assert.NoError(t, m.Load([]byte{0x00, 0xE0}))

	mem, err := m.Memory(FontStart, len(glyphs))
	assert.NoError(t, err)
	assert.Equal(t, glyphs[:], mem)

	zero, err := m.Memory(GlyphAddress(0x0), GlyphSize)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xF0, 0x90, 0x90, 0x90, 0xF0}, zero)

	f, err := m.Memory(GlyphAddress(0xF), GlyphSize)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xF0, 0x80, 0xF0, 0x80, 0x80}, f)
	assert.True(t, GlyphAddress(0xF)+GlyphSize <= ProgramStart)
}

func TestStepHaltsOutsideProgram(t *testing.T) {
	m := newTestMachine(t, 0x6001, 0x6102)

	assert.Equal(t, Continue, step(t, m))
	assert.Equal(t, Continue, step(t, m))
	assert.Equal(t, Halted, step(t, m))
	assert.Equal(t, Halted, step(t, m))
	assert.Equal(t, uint16(ProgramStart+4), m.ProgramCounter())

	// jumping below the program also ends execution
	m = newTestMachine(t, 0x1100)
	assert.Equal(t, Continue, step(t, m))
	assert.Equal(t, Halted, step(t, m))

	// nothing loaded
	m = New(fixedSource(0))
	assert.Equal(t, Halted, step(t, m))
}

func TestStepFetchPastMemoryEnd(t *testing.T) {
	m := New(fixedSource(0))
	program := make([]byte, MemorySize-ProgramStart)
	// jump to the last byte of memory
	program[0], program[1] = 0x1F, 0xFF
	assert.NoError(t, m.Load(program))

	assert.Equal(t, Continue, step(t, m))
	outcome, err := m.Step()
	assert.Equal(t, Failed, outcome)
	assert.True(t, errors.Is(err, ErrMemoryAccessOutOfBounds))
}

func TestHaltSentinel(t *testing.T) {
	m := newTestMachine(t, 0x6A05, 0xA300, 0xFFFF, 0x6A06)
	step(t, m)
	step(t, m)
	m.SetKey(3, true)
	m.delayTimer = 9

	before := m.Snapshot()
	outcome, err := m.Step()
	assert.NoError(t, err)
	assert.Equal(t, Halted, outcome)
	assert.Equal(t, before, m.Snapshot())

	outcome, err = m.Step()
	assert.NoError(t, err)
	assert.Equal(t, Halted, outcome)
}

func TestSetKeyOutOfRange(t *testing.T) {
	m := New(fixedSource(0))
	before := m.Snapshot()
	m.SetKey(KeyCount, true)
	m.SetKey(0xFF, true)
	assert.Equal(t, before, m.Snapshot())

	m.SetKey(0xF, true)
	assert.True(t, m.Snapshot().Keypad[0xF])
}

func TestDraw(t *testing.T) {
	m := New(fixedSource(0))
	m.i = 0x300
	copy(m.memory[0x300:], []byte{0xC0, 0x81})
	m.v[1] = 10
	m.v[2] = 4

	_, err := m.Execute(Decode(0xD122))
	assert.NoError(t, err)

	snap := m.Snapshot()
	assert.True(t, snap.Pixel(10, 4))
	assert.True(t, snap.Pixel(11, 4))
	assert.False(t, snap.Pixel(12, 4))
	assert.True(t, snap.Pixel(10, 5))
	assert.True(t, snap.Pixel(17, 5))
	assert.False(t, snap.Pixel(11, 5))
	assert.Equal(t, uint8(0), snap.Registers[FlagRegister])
	assert.Equal(t, uint16(0x300), snap.Index)
}

func TestDrawIdempotence(t *testing.T) {
	m := New(fixedSource(0))
	m.i = FontStart + 8*GlyphSize
	m.v[3] = 60
	m.v[4] = 30
	m.display[5] = true

	before := m.Snapshot().Display

	_, err := m.Execute(Decode(0xD345))
	assert.NoError(t, err)
	assert.Equal(t, uint8(0), m.v[FlagRegister])
	assert.False(t, before == m.Snapshot().Display)

	_, err = m.Execute(Decode(0xD345))
	assert.NoError(t, err)
	assert.Equal(t, uint8(1), m.v[FlagRegister])
	assert.Equal(t, before, m.Snapshot().Display)
}

func TestDrawWrapsAround(t *testing.T) {
	m := New(fixedSource(0))
	m.i = 0x300
	copy(m.memory[0x300:], []byte{0xFF, 0xFF})
	m.v[1] = 60 + DisplayWidth // coordinates are taken modulo the display size
	m.v[2] = 31

	_, err := m.Execute(Decode(0xD122))
	assert.NoError(t, err)

	snap := m.Snapshot()
	for _, x := range []int{60, 61, 62, 63, 0, 1, 2, 3} {
		assert.True(t, snap.Pixel(x, 31))
		assert.True(t, snap.Pixel(x, 0))
	}
	assert.False(t, snap.Pixel(4, 0))
	assert.False(t, snap.Pixel(59, 31))
}

func TestDrawCollisionClearsFlag(t *testing.T) {
	m := New(fixedSource(0))
	m.i = 0x300
	m.memory[0x300] = 0x80
	m.v[FlagRegister] = 1

	// no overlap, flag is reset
	_, err := m.Execute(Decode(0xD011))
	assert.NoError(t, err)
	assert.Equal(t, uint8(0), m.v[FlagRegister])

	// zero rows draw nothing
	_, err = m.Execute(Decode(0xD010))
	assert.NoError(t, err)
	assert.Equal(t, uint8(0), m.v[FlagRegister])
}

func TestMemoryAccessOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		i    uint16
	}{
		{"sprite rows past end", 0xD015, 0xFFC},
		{"sprite index far past end", 0xD011, 0x2000},
		{"BCD past end", 0xF033, 0xFFE},
		{"store past end", 0xF355, 0xFFD},
		{"load past end", 0xF365, 0xFFD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(fixedSource(0))
			m.i = tt.i
			before := m.Snapshot()

			outcome, err := m.Execute(Decode(tt.word))
			assert.Equal(t, Failed, outcome)
			assert.True(t, errors.Is(err, ErrMemoryAccessOutOfBounds))

			var memErr *MemoryAccessError
			assert.True(t, errors.As(err, &memErr))
			assert.Equal(t, int(tt.i), memErr.Address)
			assert.Equal(t, before, m.Snapshot())
		})
	}

	t.Run("accesses ending at last byte succeed", func(t *testing.T) {
		m := New(fixedSource(0))
		m.i = 0xFFD
		_, err := m.Execute(Decode(0xF033))
		assert.NoError(t, err)
		_, err = m.Execute(Decode(0xF265))
		assert.NoError(t, err)
	})
}
