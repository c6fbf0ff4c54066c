package vm

// Snapshot is a read-only copy of the observable machine state.
type Snapshot struct {
	PC           uint16
	Index        uint16
	StackPointer uint8
	Registers    [RegisterCount]uint8
	Stack        [StackSize]uint16
	DelayTimer   uint8
	SoundTimer   uint8
	Display      [DisplayWidth * DisplayHeight]bool
	Keypad       [KeyCount]bool
	KeyWait      KeyWait
}

// Snapshot returns a copy of the current machine state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		PC:           m.pc,
		Index:        m.i,
		StackPointer: m.sp,
		Registers:    m.v,
		Stack:        m.stack,
		DelayTimer:   m.delayTimer,
		SoundTimer:   m.soundTimer,
		Display:      m.display,
		Keypad:       m.keys,
		KeyWait:      m.keyWait,
	}
}

// Pixel returns whether the pixel at x, y is set. Coordinates wrap.
func (s *Snapshot) Pixel(x, y int) bool {
	x %= DisplayWidth
	y %= DisplayHeight
	if x < 0 {
		x += DisplayWidth
	}
	if y < 0 {
		y += DisplayHeight
	}
	return s.Display[y*DisplayWidth+x]
}

// Memory returns a copy of length bytes of memory starting at addr.
func (m *Machine) Memory(addr uint16, length int) ([]byte, error) {
	b, err := m.memoryRange(addr, length)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}
