// Package audio produces the single tone of the CHIP-8 sound timer. It
// contains a live beeper and a recorder that writes the tone to a WAV file.
package audio

import (
	"encoding/binary"
	"sync/atomic"
)

// Tone parameters.
const (
	SampleRate = 44100
	Frequency  = 440
	Amplitude  = 8000

	// FrameRate is the rate the sound timer is updated with.
	FrameRate = 60
)

// squareWave generates a signed square wave of the configured frequency.
type squareWave struct {
	position int // sample position inside the current period
	period   int
}

func newSquareWave(sampleRate, frequency int) squareWave {
	return squareWave{period: sampleRate / frequency}
}

// next returns the next sample of the wave.
func (w *squareWave) next() int16 {
	sample := int16(Amplitude)
	if w.position >= w.period/2 {
		sample = -Amplitude
	}
	w.position++
	if w.position >= w.period {
		w.position = 0
	}
	return sample
}

// Tone is an io.Reader producing signed 16 bit little endian mono samples.
// It produces a square wave while it is active and silence otherwise.
// SetActive can be called concurrently with Read.
type Tone struct {
	active atomic.Bool
	wave   squareWave
}

// NewTone returns a new inactive tone.
func NewTone() *Tone {
	return &Tone{
		wave: newSquareWave(SampleRate, Frequency),
	}
}

// SetActive switches the tone on or off.
func (t *Tone) SetActive(active bool) {
	t.active.Store(active)
}

// Active returns whether the tone is switched on.
func (t *Tone) Active() bool {
	return t.active.Load()
}

// Read fills p with as many complete samples as fit.
func (t *Tone) Read(p []byte) (int, error) {
	n := len(p) &^ 1
	active := t.active.Load()

	for i := 0; i < n; i += 2 {
		var sample int16
		if active {
			sample = t.wave.next()
		}
		binary.LittleEndian.PutUint16(p[i:], uint16(sample))
	}
	return n, nil
}
