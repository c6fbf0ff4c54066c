//go:build !headless

package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Beeper plays the tone on the default audio device.
type Beeper struct {
	tone   *Tone
	ctx    *oto.Context
	player *oto.Player

	mu      sync.Mutex
	playing bool
}

// NewBeeper opens the audio device. It blocks until the device is ready.
func NewBeeper() (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	tone := NewTone()
	return &Beeper{
		tone:   tone,
		ctx:    ctx,
		player: ctx.NewPlayer(tone),
	}, nil
}

// SetActive switches the tone on or off. The player is started on the first
// activation and keeps running, producing silence while the tone is off.
func (b *Beeper) SetActive(active bool) {
	b.tone.SetActive(active)
	if !active {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.playing {
		b.player.Play()
		b.playing = true
	}
}

// Close stops the playback.
func (b *Beeper) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tone.SetActive(false)
	if b.playing {
		b.player.Pause()
		b.playing = false
	}
	if err := b.player.Err(); err != nil {
		return fmt.Errorf("audio playback: %w", err)
	}
	return nil
}
