package vm

// Execute applies a decoded instruction to the machine. The program counter
// advances by one instruction unless the operation sets it explicitly.
//
//nolint:cyclop,funlen // exhaustive operation dispatch
func (m *Machine) Execute(ins Instruction) (Outcome, error) {
	x, y := ins.X, ins.Y

	switch ins.Op {
	case OpSys:
		// machine code routines are not supported, ignored like most interpreters

	case OpCls:
		m.display = [DisplayWidth * DisplayHeight]bool{}

	case OpRet:
		if m.sp == 0 {
			return Failed, ErrStackUnderflow
		}
		m.sp--
		m.pc = m.stack[m.sp]
		m.stack[m.sp] = 0
		return Continue, nil

	case OpJp:
		m.pc = ins.NNN
		return Continue, nil

	case OpCall:
		if int(m.sp) >= StackSize {
			return Failed, ErrStackOverflow
		}
		m.stack[m.sp] = m.pc + instructionSize
		m.sp++
		m.pc = ins.NNN
		return Continue, nil

	case OpSeByte:
		m.skipIf(m.v[x] == ins.NN)
		return Continue, nil

	case OpSneByte:
		m.skipIf(m.v[x] != ins.NN)
		return Continue, nil

	case OpSeReg:
		m.skipIf(m.v[x] == m.v[y])
		return Continue, nil

	case OpLdByte:
		m.v[x] = ins.NN

	case OpAddByte:
		m.v[x] += ins.NN

	case OpLdReg:
		m.v[x] = m.v[y]

	case OpOr:
		m.v[x] |= m.v[y]

	case OpAnd:
		m.v[x] &= m.v[y]

	case OpXor:
		m.v[x] ^= m.v[y]

	case OpAddReg:
		sum := uint16(m.v[x]) + uint16(m.v[y])
		m.setWithFlag(x, uint8(sum), sum > 0xFF)

	case OpSub:
		vx, vy := m.v[x], m.v[y]
		m.setWithFlag(x, vx-vy, vx >= vy)

	case OpShr:
		vy := m.v[y]
		m.setWithFlag(x, vy>>1, vy&0x01 != 0)

	case OpSubn:
		vx, vy := m.v[x], m.v[y]
		m.setWithFlag(x, vy-vx, vy >= vx)

	case OpShl:
		vy := m.v[y]
		m.setWithFlag(x, vy<<1, vy&0x80 != 0)

	case OpSneReg:
		m.skipIf(m.v[x] != m.v[y])
		return Continue, nil

	case OpLdI:
		m.i = ins.NNN

	case OpJpV0:
		m.pc = ins.NNN + uint16(m.v[0])
		return Continue, nil

	case OpRnd:
		m.v[x] = uint8(m.rng.Uint32()) & ins.NN

	case OpDrw:
		if err := m.draw(m.v[x], m.v[y], ins.N); err != nil {
			return Failed, err
		}

	case OpSkp:
		m.skipIf(m.keys[m.v[x]&0x0F])
		return Continue, nil

	case OpSknp:
		m.skipIf(!m.keys[m.v[x]&0x0F])
		return Continue, nil

	case OpLdVxDT:
		m.v[x] = m.delayTimer

	case OpLdVxK:
		if !m.waitForKey(x) {
			return Continue, nil
		}

	case OpLdDTVx:
		m.delayTimer = m.v[x]

	case OpLdSTVx:
		m.soundTimer = m.v[x]

	case OpAddI:
		m.i += uint16(m.v[x])

	case OpLdF:
		m.i = GlyphAddress(m.v[x])

	case OpLdB:
		mem, err := m.memoryRange(m.i, 3)
		if err != nil {
			return Failed, err
		}
		value := m.v[x]
		mem[0] = value / 100
		mem[1] = value / 10 % 10
		mem[2] = value % 10

	case OpLdIVx:
		mem, err := m.memoryRange(m.i, int(x)+1)
		if err != nil {
			return Failed, err
		}
		copy(mem, m.v[:x+1])
		m.i += uint16(x) + 1

	case OpLdVxI:
		mem, err := m.memoryRange(m.i, int(x)+1)
		if err != nil {
			return Failed, err
		}
		copy(m.v[:x+1], mem)
		m.i += uint16(x) + 1

	case OpHalt:
		return Halted, nil

	default:
		return Failed, &UnimplementedOpcodeError{Word: ins.Word, Address: m.pc}
	}

	m.pc += instructionSize
	return Continue, nil
}

// skipIf advances the program counter past the next instruction if the
// condition is true, otherwise to the next instruction.
func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += 2 * instructionSize
		return
	}
	m.pc += instructionSize
}

// setWithFlag writes the result to VX and then the flag to VF. When X is
// the flag register the flag write wins.
func (m *Machine) setWithFlag(x, result uint8, flag bool) {
	m.v[x] = result
	m.v[FlagRegister] = boolToFlag(flag)
}

// draw XORs an 8 pixel wide sprite of the given height, read from memory at
// I, onto the display at x, y. Pixels wrap around the display edges.
// VF is set to 1 if any set pixel was cleared.
func (m *Machine) draw(x, y, height uint8) error {
	rows, err := m.memoryRange(m.i, int(height))
	if err != nil {
		return err
	}

	collision := false
	for row, bits := range rows {
		py := (int(y) + row) % DisplayHeight
		for col := range spriteWidth {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := (int(x) + col) % DisplayWidth
			index := py*DisplayWidth + px
			if m.display[index] {
				collision = true
			}
			m.display[index] = !m.display[index]
		}
	}

	m.v[FlagRegister] = boolToFlag(collision)
	return nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
