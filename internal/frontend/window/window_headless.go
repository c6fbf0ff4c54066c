//go:build headless

// Package window implements a frontend that shows the display in a desktop
// window. Builds with the headless tag contain no window support.
package window

import (
	"context"
	"errors"

	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrogolib/log"
)

// Supported reports whether the binary was built with window support.
const Supported = false

// ErrUnsupported is returned by New in builds without window support.
var ErrUnsupported = errors.New("window frontend not supported in headless builds")

// Window is a placeholder for builds without window support.
type Window struct{}

// New returns ErrUnsupported.
func New(_ *log.Logger) (*Window, error) {
	return nil, ErrUnsupported
}

// Run returns ErrUnsupported.
func (w *Window) Run(_ context.Context, _ frontend.Machine) error {
	return ErrUnsupported
}
