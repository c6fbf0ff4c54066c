// Package vm implements the CHIP-8 virtual machine core.
//
// # Machine Model
//
// The machine owns all mutable state of one loaded program:
//   - 4KB of memory, programs are loaded at ProgramStart (0x200)
//   - 16 general-purpose 8-bit registers V0-VF, VF doubles as flag register
//   - a 16-bit index register I and program counter PC
//   - a call stack of StackSize return addresses
//   - a 64x32 monochrome bitmap
//   - delay and sound timers, decremented by TickTimers
//   - a 16 key hex keypad, set by SetKey
//
// The hexadecimal digit glyphs are resident at FontStart (0x050), 5 bytes
// per digit, installed by Reset and Load.
//
// # Execution
//
// Step performs exactly one fetch-decode-execute cycle and never blocks.
// The key-wait instruction (FX0A) is modelled as a re-polled state machine,
// the program counter does not advance until the pressed key is released.
//
// Decode is a pure function mapping every 16-bit word to an Instruction,
// unrecognized words decode to OpUnknown and fail in Step with an
// *UnimplementedOpcodeError.
//
// # Usage Example
//
//	m := vm.New(vm.NewRandomSource(1))
//	if err := m.Load(rom); err != nil {
//		return fmt.Errorf("loading rom: %w", err)
//	}
//	for {
//		outcome, err := m.Step()
//		if err != nil {
//			return err
//		}
//		if outcome == vm.Halted {
//			break
//		}
//	}
package vm
