package vm

// CHIP-8 memory layout constants.
//
//	0x000-0x04F: reserved
//	0x050-0x09F: hexadecimal digit glyphs
//	0x0A0-0x1FF: reserved
//	0x200-0xFFF: program space
const (
	// MemorySize is the size of the flat address space in bytes.
	MemorySize = 0x1000

	// ProgramStart is the default origin that program images are loaded at.
	ProgramStart = 0x200

	// FontStart is the address of the glyph for digit 0.
	FontStart = 0x050

	// GlyphSize is the number of bytes (rows) per digit glyph.
	GlyphSize = 5
)

// Register, stack and keypad dimensions.
const (
	RegisterCount = 16
	StackSize     = 16
	KeyCount      = 16

	// FlagRegister is the index of VF.
	FlagRegister = 0xF
)

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

const (
	instructionSize = 2
	spriteWidth     = 8

	// HaltWord is the non-standard instruction word that stops execution.
	HaltWord = 0xFFFF
)
