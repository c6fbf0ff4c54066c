//go:build headless

package audio

// Beeper is a silent beeper for builds without audio device support.
type Beeper struct {
	tone *Tone
}

// NewBeeper returns a silent beeper.
func NewBeeper() (*Beeper, error) {
	return &Beeper{tone: NewTone()}, nil
}

// SetActive records the tone state.
func (b *Beeper) SetActive(active bool) {
	b.tone.SetActive(active)
}

// Close does nothing.
func (b *Beeper) Close() error {
	return nil
}
