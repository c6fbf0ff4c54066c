// Package disasm renders CHIP-8 instruction words as assembly text.
// Mnemonics are taken from the retrogolib CHIP-8 opcode table, operands are
// formatted from the decoded instruction fields.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Format returns the assembly text of an instruction word, for example
// "ld I, $234" or "drw V2, V3, $5". Words that do not decode are rendered
// as a data directive.
func Format(word uint16) string {
	ins := vm.Decode(word)
	switch ins.Op {
	case vm.OpUnknown:
		return fmt.Sprintf(".word $%04X", word)
	case vm.OpHalt:
		return ins.Op.String()
	}

	name := mnemonic(ins)
	if params := formatOperands(ins); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// mnemonic looks up the instruction name in the opcode table of the first
// nibble and falls back to the decoder's name for words without an entry.
func mnemonic(ins vm.Instruction) string {
	for _, op := range chip8.Opcodes[int(ins.Word>>12)] {
		if op.Info.Mask&ins.Word == op.Info.Value && op.Instruction != nil {
			return op.Instruction.Name
		}
	}
	return ins.Op.String()
}

// formatOperands formats the operand list of a decoded instruction.
//
//nolint:cyclop // one case per operand form
func formatOperands(ins vm.Instruction) string {
	x, y := ins.X, ins.Y

	switch ins.Op {
	case vm.OpCls, vm.OpRet:
		return ""
	case vm.OpSys, vm.OpJp, vm.OpCall:
		return fmt.Sprintf("$%03X", ins.NNN)
	case vm.OpJpV0:
		return fmt.Sprintf("V0, $%03X", ins.NNN)
	case vm.OpSeByte, vm.OpSneByte, vm.OpLdByte, vm.OpAddByte, vm.OpRnd:
		return fmt.Sprintf("V%X, $%02X", x, ins.NN)
	case vm.OpSeReg, vm.OpSneReg, vm.OpLdReg, vm.OpOr, vm.OpAnd, vm.OpXor,
		vm.OpAddReg, vm.OpSub, vm.OpSubn:
		return fmt.Sprintf("V%X, V%X", x, y)
	case vm.OpShr, vm.OpShl, vm.OpSkp, vm.OpSknp:
		return fmt.Sprintf("V%X", x)
	case vm.OpLdI:
		return fmt.Sprintf("I, $%03X", ins.NNN)
	case vm.OpDrw:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, ins.N)
	case vm.OpLdVxDT:
		return fmt.Sprintf("V%X, DT", x)
	case vm.OpLdVxK:
		return fmt.Sprintf("V%X, K", x)
	case vm.OpLdDTVx:
		return fmt.Sprintf("DT, V%X", x)
	case vm.OpLdSTVx:
		return fmt.Sprintf("ST, V%X", x)
	case vm.OpAddI:
		return fmt.Sprintf("I, V%X", x)
	case vm.OpLdF:
		return fmt.Sprintf("F, V%X", x)
	case vm.OpLdB:
		return fmt.Sprintf("B, V%X", x)
	case vm.OpLdIVx:
		return fmt.Sprintf("[I], V%X", x)
	case vm.OpLdVxI:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}
