package keypad

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		host     rune
		key      uint8
		expected bool
	}{
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'q', 0x4, true},
		{'Q', 0x4, true},
		{'x', 0x0, true},
		{'V', 0xF, true},
		{'5', 0, false},
		{' ', 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.host), func(t *testing.T) {
			key, ok := Lookup(tt.host)
			assert.Equal(t, tt.expected, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestBindingsCoverAllKeys(t *testing.T) {
	var seen [16]bool
	for _, b := range Bindings {
		assert.False(t, seen[b.Key])
		seen[b.Key] = true
	}
	for key := range seen {
		assert.True(t, seen[key])
	}
}

func TestHoldTracker(t *testing.T) {
	start := time.Unix(100, 0)
	h := NewHoldTracker(100 * time.Millisecond)

	var state [16]bool
	changes := 0
	set := func(key uint8, pressed bool) {
		state[key] = pressed
		changes++
	}

	h.Update(start, set)
	assert.Equal(t, 0, changes)

	h.Press(0x5, start)
	h.Update(start.Add(10*time.Millisecond), set)
	assert.True(t, state[0x5])
	assert.Equal(t, 1, changes)

	// auto repeat keeps the key pressed
	h.Press(0x5, start.Add(80*time.Millisecond))
	h.Update(start.Add(150*time.Millisecond), set)
	assert.True(t, state[0x5])
	assert.Equal(t, 1, changes)

	h.Update(start.Add(200*time.Millisecond), set)
	assert.False(t, state[0x5])
	assert.Equal(t, 2, changes)

	h.Press(0x20, start)
	h.Update(start.Add(200*time.Millisecond), set)
	assert.Equal(t, 2, changes)
}

func TestHoldTrackerClockBehindPress(t *testing.T) {
	h := NewHoldTracker(100 * time.Millisecond)
	start := time.Unix(1000, 0)

	changes := 0
	set := func(_ uint8, _ bool) {
		changes++
	}

	h.Press(0x5, start.Add(80*time.Millisecond))
	h.Update(start, set)
	assert.Equal(t, 0, changes)
}
