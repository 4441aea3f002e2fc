//go:build (linux && cgo) || windows || darwin

package device

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// AudioAvailable reports whether this build can produce a real tone.
const AudioAvailable = true

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		sr := beep.SampleRate(sampleRate)
		// A short buffer keeps the tone within a few ms of the schedule.
		speakerErr = speaker.Init(sr, sr.N(10*time.Millisecond))
	})
	return speakerErr
}

// ToneBeeper plays a continuous sine through the default audio device and
// gates it with SetActive.
type ToneBeeper struct {
	mu      sync.Mutex
	tone    *toneStreamer
	playing bool
}

func NewToneBeeper(frequency, volume float64) *ToneBeeper {
	return &ToneBeeper{tone: newToneStreamer(frequency, volume)}
}

// Probe opens the audio device. It reports Unavailable when there is none.
func (b *ToneBeeper) Probe() Capability {
	if err := initSpeaker(); err != nil {
		return Unavailable
	}
	return Available
}

func (b *ToneBeeper) SetActive(on bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.playing {
		if !on {
			return nil
		}
		if b.tone.closed.Load() {
			b.tone = newToneStreamer(b.tone.frequency, b.tone.volume)
		}
		if err := initSpeaker(); err != nil {
			return err
		}
		speaker.Play(b.tone)
		b.playing = true
	}
	b.tone.gate.Store(on)
	return nil
}

// Close ends the tone stream. The next activation starts a new one.
func (b *ToneBeeper) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.playing {
		b.tone.gate.Store(false)
		b.tone.closed.Store(true)
		b.playing = false
	}
	return nil
}
