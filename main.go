// Package main implements the main entry point for a CHIP-8 interpreter
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/frontend/window"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			if msg := usageErr.Error(); msg != "" {
				fmt.Printf("%s\n\n", msg)
			}
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(logger, opts)

	if frontendName := config.Frontend(opts, window.Supported); frontendName != opts.Frontend {
		logger.Warn("Window frontend not supported by this build, using terminal frontend")
		opts.Frontend = frontendName
	}

	r := runner.New(logger, runner.Host{
		Stdout:      os.Stdout,
		NewFrontend: newFrontendFactory(logger, opts),
		NewBeeper: func() (runner.Beeper, error) {
			return audio.NewBeeper()
		},
	})

	if err := r.Run(ctx, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Running program failed", log.Err(err))
		os.Exit(1)
	}
}

// newFrontendFactory returns a constructor for the frontends of this build.
func newFrontendFactory(logger *log.Logger, opts options.Program) func(name string) (frontend.Frontend, error) {
	return func(name string) (frontend.Frontend, error) {
		switch name {
		case options.FrontendHeadless:
			return frontend.NewHeadless(logger, opts.Frames), nil
		case options.FrontendTerminal:
			return terminal.New(logger, os.Stdin, os.Stdout), nil
		case options.FrontendWindow:
			return window.New(logger)
		default:
			return nil, fmt.Errorf("unsupported frontend '%s'", name)
		}
	}
}

// printBanner prints the program name and version unless quiet mode is set.
func printBanner(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
