// Package keypad maps host keyboard keys to the 16 key hexadecimal keypad.
//
// The keypad layout is mapped onto the left side of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
package keypad

import (
	"time"
	"unicode"
)

// Binding maps a host key to a keypad key.
type Binding struct {
	Host rune
	Key  uint8
}

// Bindings contains the mapping of all 16 keypad keys, row by row.
var Bindings = [...]Binding{
	{'1', 0x1}, {'2', 0x2}, {'3', 0x3}, {'4', 0xC},
	{'q', 0x4}, {'w', 0x5}, {'e', 0x6}, {'r', 0xD},
	{'a', 0x7}, {'s', 0x8}, {'d', 0x9}, {'f', 0xE},
	{'z', 0xA}, {'x', 0x0}, {'c', 0xB}, {'v', 0xF},
}

// Lookup returns the keypad key that a host key is mapped to. Letters
// match case insensitively.
func Lookup(r rune) (uint8, bool) {
	r = unicode.ToLower(r)
	for _, b := range Bindings {
		if b.Host == r {
			return b.Key, true
		}
	}
	return 0, false
}

// HoldTracker derives key releases for input sources that only report key
// presses, like a terminal in raw mode. A key counts as pressed for the hold
// duration after its last press was seen.
type HoldTracker struct {
	hold     time.Duration
	lastSeen [16]time.Time
	pressed  [16]bool
}

// NewHoldTracker returns a tracker using the given hold duration.
func NewHoldTracker(hold time.Duration) *HoldTracker {
	return &HoldTracker{hold: hold}
}

// Press records a press of a keypad key.
func (h *HoldTracker) Press(key uint8, now time.Time) {
	if int(key) >= len(h.lastSeen) {
		return
	}
	h.lastSeen[key] = now
}

// Update calls set for every key whose state changed since the last update.
func (h *HoldTracker) Update(now time.Time, set func(key uint8, pressed bool)) {
	for key := range uint8(len(h.lastSeen)) {
		last := h.lastSeen[key]
		elapsed := now.Sub(last)
		pressed := !last.IsZero() && elapsed >= 0 && elapsed < h.hold
		if pressed == h.pressed[key] {
			continue
		}
		h.pressed[key] = pressed
		set(key, pressed)
	}
}
