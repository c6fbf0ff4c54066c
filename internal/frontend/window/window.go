//go:build !headless

// Package window implements a frontend that shows the display in a desktop
// window and reads the keypad from the keyboard.
package window

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// Supported reports whether the binary was built with window support.
const Supported = true

const (
	scale = 12
	title = "retrochip8"
)

var _ frontend.Frontend = (*Window)(nil)

// hostKeys maps the keypad bindings to ebiten keys.
var hostKeys = map[rune]ebiten.Key{
	'1': ebiten.KeyDigit1, '2': ebiten.KeyDigit2, '3': ebiten.KeyDigit3, '4': ebiten.KeyDigit4,
	'q': ebiten.KeyQ, 'w': ebiten.KeyW, 'e': ebiten.KeyE, 'r': ebiten.KeyR,
	'a': ebiten.KeyA, 's': ebiten.KeyS, 'd': ebiten.KeyD, 'f': ebiten.KeyF,
	'z': ebiten.KeyZ, 'x': ebiten.KeyX, 'c': ebiten.KeyC, 'v': ebiten.KeyV,
}

// Window is a frontend using an ebiten game window.
type Window struct {
	logger *log.Logger
}

// New returns a window frontend.
func New(logger *log.Logger) (*Window, error) {
	return &Window{logger: logger}, nil
}

// Run implements the frontend.Frontend interface. It blocks until the
// window is closed, Esc is pressed, the program ends or ctx is cancelled.
func (w *Window) Run(ctx context.Context, m frontend.Machine) error {
	g := &game{
		ctx:     ctx,
		machine: m,
		pixels:  make([]byte, vm.DisplayWidth*vm.DisplayHeight*4),
	}

	ebiten.SetWindowSize(vm.DisplayWidth*scale, vm.DisplayHeight*scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running window: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil && !errors.Is(g.err, vm.ErrHalted) {
		return g.err
	}
	if g.err == nil {
		w.logger.Debug("Window closed")
	}
	return nil
}

// game implements ebiten.Game.
type game struct {
	ctx     context.Context
	machine frontend.Machine
	image   *ebiten.Image
	pixels  []byte

	mu     sync.Mutex
	err    error
	halted bool
}

// Update runs one frame per tick.
func (g *game) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if err := g.ctx.Err(); err != nil {
		g.setErr(fmt.Errorf("window frontend: %w", err))
		return ebiten.Termination
	}
	if g.halted {
		// keep showing the final display until the window is closed
		return nil
	}

	for _, b := range keypad.Bindings {
		g.machine.SetKey(b.Key, ebiten.IsKeyPressed(hostKeys[b.Host]))
	}

	err := g.machine.RunFrame()
	snap := g.machine.Snapshot()
	fillPixels(g.pixels, &snap)

	switch {
	case errors.Is(err, vm.ErrHalted):
		g.halted = true
		g.setErr(err)
	case err != nil:
		g.setErr(err)
		return ebiten.Termination
	}
	return nil
}

// Draw copies the display to the screen.
func (g *game) Draw(screen *ebiten.Image) {
	if g.image == nil {
		g.image = ebiten.NewImage(vm.DisplayWidth, vm.DisplayHeight)
	}
	g.image.WritePixels(g.pixels)
	screen.DrawImage(g.image, nil)
}

// Layout returns the logical screen size, ebiten scales it to the window.
func (g *game) Layout(_, _ int) (int, int) {
	return vm.DisplayWidth, vm.DisplayHeight
}

func (g *game) setErr(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}
