package vm

import (
	"errors"
	"fmt"
)

var (
	// ErrHalted is returned by drivers of the machine once execution ended
	// normally. Step itself reports this as the Halted outcome.
	ErrHalted = errors.New("halted")
	// ErrRomTooLarge is returned by Load when the image does not fit above the origin.
	ErrRomTooLarge = errors.New("rom too large")
	// ErrStackOverflow is returned when a call is executed with a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a return is executed with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrUnimplementedOpcode is matched by every *UnimplementedOpcodeError.
	ErrUnimplementedOpcode = errors.New("unimplemented opcode")
	// ErrMemoryAccessOutOfBounds is matched by every *MemoryAccessError.
	ErrMemoryAccessOutOfBounds = errors.New("memory access out of bounds")
)

// UnimplementedOpcodeError reports an instruction word that does not decode
// to any known operation.
type UnimplementedOpcodeError struct {
	Word    uint16
	Address uint16
}

func (e *UnimplementedOpcodeError) Error() string {
	return fmt.Sprintf("unimplemented opcode $%04X at $%03X", e.Word, e.Address)
}

// Is reports whether target is ErrUnimplementedOpcode.
func (e *UnimplementedOpcodeError) Is(target error) bool {
	return target == ErrUnimplementedOpcode
}

// MemoryAccessError reports an access of Length bytes starting at Address
// that does not fit into the address space.
type MemoryAccessError struct {
	Address int
	Length  int
}

func (e *MemoryAccessError) Error() string {
	return fmt.Sprintf("memory access out of bounds: $%04X+%d exceeds $%04X", e.Address, e.Length, MemorySize)
}

// Is reports whether target is ErrMemoryAccessOutOfBounds.
func (e *MemoryAccessError) Is(target error) bool {
	return target == ErrMemoryAccessOutOfBounds
}
