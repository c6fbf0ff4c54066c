// Package options contains the program options.
package options

// Frontend names.
const (
	FrontendHeadless = "headless"
	FrontendTerminal = "terminal"
	FrontendWindow   = "window"
)

// Defaults and limits of the execution options.
const (
	DefaultCyclesPerFrame = 10
	MinCyclesPerFrame     = 1
	MaxCyclesPerFrame     = 1000
)

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file"`
	Trace string `flag:"trace" usage:"write a state dump after every instruction to this file"`
	Wav   string `flag:"wav" usage:"record the sound output to this .wav file"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend    string `flag:"f" usage:"frontend: headless, terminal, window" default:"window"`
	Breakpoints string `flag:"break" usage:"comma separated hex addresses to stop execution at"`
	Binary      bool   `flag:"binary" usage:"load the input file without checking the .ch8 extension"`
	List        bool   `flag:"l" usage:"print a disassembly listing of the ROM and exit"`
	Mute        bool   `flag:"mute" usage:"disable sound output"`
	Debug       bool   `flag:"debug" usage:"enable debug logging"`
	Quiet       bool   `flag:"q" usage:"quiet mode"`
}

// Execution contains options controlling the interpreter.
type Execution struct {
	CyclesPerFrame int    `flag:"cpf" usage:"instructions executed per 60 Hz frame" default:"10"`
	Seed           uint64 `flag:"seed" usage:"random number seed, 0 derives it from the clock"`
	Frames         int    `flag:"frames" usage:"stop the headless frontend after this many frames, 0 runs until halt"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	Execution

	// BreakpointAddresses is parsed from Breakpoints.
	BreakpointAddresses []uint16
}
