package frontend

import (
	"context"
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type fakeMachine struct {
	frames   int
	haltAt   int   // frame number that returns ErrHalted, 0 never halts
	failAt   int   // frame number that returns failure, 0 never fails
	failure  error
	keys     [vm.KeyCount]bool
	snapshot vm.Snapshot
}

func (m *fakeMachine) RunFrame() error {
	m.frames++
	if m.frames == m.haltAt {
		return vm.ErrHalted
	}
	if m.frames == m.failAt {
		return m.failure
	}
	return nil
}

func (m *fakeMachine) Snapshot() vm.Snapshot { return m.snapshot }

func (m *fakeMachine) SetKey(key uint8, pressed bool) { m.keys[key] = pressed }

func (m *fakeMachine) SoundActive() bool { return false }

func TestHeadless(t *testing.T) {
	tests := []struct {
		name      string
		maxFrames int
		machine   *fakeMachine
		frames    int
		wantErr   error
	}{
		{
			name:    "runs until halt",
			machine: &fakeMachine{haltAt: 25},
			frames:  25,
		},
		{
			name:      "frame limit",
			maxFrames: 10,
			machine:   &fakeMachine{haltAt: 25},
			frames:    10,
		},
		{
			name:      "halt before limit",
			maxFrames: 10,
			machine:   &fakeMachine{haltAt: 3},
			frames:    3,
		},
		{
			name:    "failure",
			machine: &fakeMachine{failAt: 2, failure: vm.ErrStackOverflow},
			frames:  2,
			wantErr: vm.ErrStackOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeadless(log.NewTestLogger(t), tt.maxFrames)
			err := h.Run(context.Background(), tt.machine)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.frames, tt.machine.frames)
		})
	}
}

func TestHeadlessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := &fakeMachine{}
	h := NewHeadless(log.NewTestLogger(t), 0)
	err := h.Run(ctx, m)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, m.frames)
}
