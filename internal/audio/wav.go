package audio

import (
	"fmt"
	"os"

	"github.com/youpy/go-wav"
)

const (
	samplesPerFrame = SampleRate / FrameRate
	bitsPerSample   = 16
)

// Recorder buffers the tone of every frame and writes it as a mono WAV file
// on Close. The audio data is kept in memory until then.
type Recorder struct {
	filename string
	wave     squareWave
	buffer   []wav.Sample
}

// NewRecorder returns a recorder that writes to the given file.
func NewRecorder(filename string) *Recorder {
	return &Recorder{
		filename: filename,
		wave:     newSquareWave(SampleRate, Frequency),
	}
}

// AddFrame appends the samples of one frame, the tone is audible when
// active is set.
func (r *Recorder) AddFrame(active bool) {
	for range samplesPerFrame {
		var s wav.Sample
		if active {
			s.Values[0] = int(r.wave.next())
		}
		r.buffer = append(r.buffer, s)
	}
}

// Samples returns the number of buffered samples.
func (r *Recorder) Samples() int {
	return len(r.buffer)
}

// Close writes the buffered samples to the file.
func (r *Recorder) Close() (rerr error) {
	f, err := os.Create(r.filename)
	if err != nil {
		return fmt.Errorf("creating wav file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("closing wav file: %w", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(r.buffer)), 1, SampleRate, bitsPerSample)
	if err := enc.WriteSamples(r.buffer); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}
	return nil
}
