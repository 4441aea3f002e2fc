package device

import (
	"math"
	"sync/atomic"
)

const (
	sampleRate = 44100
	// DefaultFrequency is the usual CW sidetone pitch.
	DefaultFrequency = 700.0
	DefaultVolume    = 0.5
	rampSamples      = sampleRate / 200 // 5ms
)

// toneStreamer produces an endless sine that is gated on and off. The
// amplitude ramps over a few milliseconds on every transition to avoid
// clicks. It satisfies beep.Streamer.
type toneStreamer struct {
	frequency float64
	volume    float64
	position  int
	gain      float64
	gate      atomic.Bool
	closed    atomic.Bool
}

func newToneStreamer(frequency, volume float64) *toneStreamer {
	if frequency <= 0 {
		frequency = DefaultFrequency
	}
	if volume <= 0 || volume > 1 {
		volume = DefaultVolume
	}
	return &toneStreamer{frequency: frequency, volume: volume}
}

func (t *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if t.closed.Load() {
		return 0, false
	}
	target := 0.0
	if t.gate.Load() {
		target = t.volume
	}
	step := t.volume / rampSamples
	for i := range samples {
		switch {
		case t.gain < target:
			t.gain = math.Min(target, t.gain+step)
		case t.gain > target:
			t.gain = math.Max(target, t.gain-step)
		}

		value := 0.0
		if t.gain > 0 {
			phase := 2 * math.Pi * t.frequency * float64(t.position) / float64(sampleRate)
			value = math.Sin(phase) * t.gain
		}
		samples[i][0] = value
		samples[i][1] = value
		t.position = (t.position + 1) % sampleRate
	}
	return len(samples), true
}

func (t *toneStreamer) Err() error {
	return nil
}
