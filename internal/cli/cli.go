// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
)

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	if len(args) == 0 && opts.Input == "" {
		return opts, &UsageError{flags: flags, msg: "no ROM file given"}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage information and all flag defaults to stdout.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <file to run>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after file to run, please pass the file to run as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(strings.TrimSpace(opts.Frontend))

	validFrontends := []string{options.FrontendHeadless, options.FrontendTerminal, options.FrontendWindow}
	valid := false
	for _, name := range validFrontends {
		if opts.Frontend == name {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(validFrontends, ", "))
	}

	if opts.CyclesPerFrame < options.MinCyclesPerFrame || opts.CyclesPerFrame > options.MaxCyclesPerFrame {
		return fmt.Errorf("instructions per frame %d out of range %d-%d",
			opts.CyclesPerFrame, options.MinCyclesPerFrame, options.MaxCyclesPerFrame)
	}

	if opts.Frames < 0 {
		return fmt.Errorf("invalid frame limit %d", opts.Frames)
	}

	addresses, err := parseBreakpoints(opts.Breakpoints)
	if err != nil {
		return err
	}
	opts.BreakpointAddresses = addresses
	return nil
}

// parseBreakpoints parses a comma separated list of hex addresses. Each
// address can be prefixed with $ or 0x.
func parseBreakpoints(list string) ([]uint16, error) {
	var addresses []uint16

	for field := range strings.SplitSeq(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		s := strings.TrimPrefix(field, "$")
		s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		address, err := strconv.ParseUint(s, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid breakpoint address '%s': %w", field, err)
		}
		if address >= vm.MemorySize {
			return nil, fmt.Errorf("breakpoint address '%s' outside of memory", field)
		}
		addresses = append(addresses, uint16(address))
	}

	return addresses, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Trace, "trace", "", "write a state dump after every instruction to this file")
	flags.StringVar(&opts.Wav, "wav", "", "record the sound output to this .wav file")
	flags.StringVar(&opts.Frontend, "f", options.FrontendWindow, "frontend to use (headless/terminal/window)")
	flags.StringVar(&opts.Breakpoints, "break", "", "comma separated hex addresses to stop execution at, for example 200,2A4")
	flags.BoolVar(&opts.Binary, "binary", false, "load the input file without checking for a .ch8 extension")
	flags.BoolVar(&opts.List, "l", false, "print a disassembly listing of the ROM and exit")
	flags.BoolVar(&opts.Mute, "mute", false, "disable sound output")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.IntVar(&opts.CyclesPerFrame, "cpf", options.DefaultCyclesPerFrame, "instructions executed per 60 Hz frame")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random number seed, 0 derives it from the clock")
	flags.IntVar(&opts.Frames, "frames", 0, "stop the headless frontend after this many frames, 0 runs until halt")
}
