package vm

import "fmt"

// KeyWaitState is the state of the key-wait instruction FX0A.
type KeyWaitState uint8

const (
	// KeyWaitIdle means no key wait is in progress.
	KeyWaitIdle KeyWaitState = iota
	// KeyWaitAwaitingPress means the instruction polls for any key press.
	KeyWaitAwaitingPress
	// KeyWaitAwaitingRelease means the key in KeyWait.Key was pressed and the
	// instruction completes once it is released.
	KeyWaitAwaitingRelease
)

func (s KeyWaitState) String() string {
	switch s {
	case KeyWaitIdle:
		return "idle"
	case KeyWaitAwaitingPress:
		return "awaiting press"
	case KeyWaitAwaitingRelease:
		return "awaiting release"
	default:
		return fmt.Sprintf("keywait(%d)", uint8(s))
	}
}

// KeyWait is the latch of the key-wait instruction. Key is only valid in
// the KeyWaitAwaitingRelease state.
type KeyWait struct {
	State KeyWaitState
	Key   uint8
}

// waitForKey executes one poll of FX0A and returns whether the instruction
// completed.
func (m *Machine) waitForKey(x uint8) bool {
	if m.keyWait.State == KeyWaitAwaitingRelease {
		if m.keys[m.keyWait.Key] {
			return false
		}
		m.keyWait = KeyWait{}
		return true
	}

	for key := range uint8(KeyCount) {
		if m.keys[key] {
			m.v[x] = key
			m.keyWait = KeyWait{State: KeyWaitAwaitingRelease, Key: key}
			return false
		}
	}

	m.keyWait.State = KeyWaitAwaitingPress
	return false
}
