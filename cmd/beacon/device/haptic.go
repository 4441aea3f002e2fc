package device

import (
	"log/slog"
	"time"

	"github.com/gen2brain/beeep"
)

// SpeakerTick stands in for a vibration motor with a short system-speaker
// beep. Pulse returns immediately.
type SpeakerTick struct {
	Frequency float64
}

func (s SpeakerTick) Pulse(d time.Duration) {
	freq := s.Frequency
	if freq <= 0 {
		freq = beeep.DefaultFreq
	}
	ms := int(d / time.Millisecond)
	if ms <= 0 {
		return
	}
	go func() {
		if err := beeep.Beep(freq, ms); err != nil {
			slog.Debug("haptic tick failed", "error", err)
		}
	}()
}

// DesktopNotifier shows OS notifications.
type DesktopNotifier struct{}

func (DesktopNotifier) Notify(title, body string) error {
	return beeep.Notify(title, body, "")
}
