package config

import (
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}

func TestSeed(t *testing.T) {
	now := time.Unix(0, 12345)

	opts := options.Program{}
	assert.Equal(t, uint64(12345), Seed(opts, now))

	opts.Seed = 99
	assert.Equal(t, uint64(99), Seed(opts, now))

	opts.Seed = 0
	assert.Equal(t, uint64(1), Seed(opts, time.Unix(0, 0)))
}

func TestFrontend(t *testing.T) {
	tests := []struct {
		name            string
		frontend        string
		windowSupported bool
		expected        string
	}{
		{"window supported", options.FrontendWindow, true, options.FrontendWindow},
		{"window fallback", options.FrontendWindow, false, options.FrontendTerminal},
		{"terminal unchanged", options.FrontendTerminal, false, options.FrontendTerminal},
		{"headless unchanged", options.FrontendHeadless, true, options.FrontendHeadless},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{}
			opts.Frontend = tt.frontend
			assert.Equal(t, tt.expected, Frontend(opts, tt.windowSupported))
		})
	}
}
