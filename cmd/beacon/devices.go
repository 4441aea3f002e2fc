package beacon

import (
	"io"
	"log/slog"
	"os"

	"github.com/gigurra/morselight/cmd/beacon/config"
	"github.com/gigurra/morselight/cmd/beacon/device"
	"github.com/gigurra/morselight/cmd/beacon/session"
)

// wiring describes where a command's terminal-bound devices go.
type wiring struct {
	// flashTerminal drives a TerminalFlasher on stdout.
	flashTerminal bool
	// screen overrides the screen flasher, used by the panel.
	screen device.ScreenFlasher
	// console receives session messages when non-nil.
	console io.Writer
	// log overrides the session message sink.
	log device.Logger
}

// buildDevices creates the devices for the resolved settings. The returned
// func releases whatever was opened and must run after the session ends.
func buildDevices(cfg *config.Config, s settings, w wiring) (session.Devices, func()) {
	var closers []func()
	devices := session.Devices{
		Haptic: device.SpeakerTick{},
		Log:    w.log,
	}

	torch, err := device.DetectTorch(cfg.Torch.Backend, cfg.Torch.LEDRoot)
	if err != nil {
		slog.Warn("torch disabled", "error", err)
		torch = device.NoTorch{}
	}
	devices.Torch = torch

	switch {
	case w.screen != nil:
		devices.Screen = w.screen
	case w.flashTerminal:
		flasher := device.NewTerminalFlasher(os.Stdout)
		flasher.Open()
		closers = append(closers, func() { flasher.Close() })
		devices.Screen = flasher
	}

	if s.Options.Beep {
		beeper := device.NewToneBeeper(cfg.Tone.FrequencyHz, cfg.Tone.Volume)
		closers = append(closers, func() { beeper.Close() })
		devices.Beeper = beeper
	}

	if s.WakeLock {
		devices.WakeLock = &device.ScreenSaverInhibitor{AppName: "morselight", Reason: "Signaling Morse"}
	} else {
		devices.WakeLock = device.NopWakeLock{}
	}

	if s.Notify {
		devices.Notifier = device.DesktopNotifier{}
	}

	if devices.Log == nil && w.console != nil {
		devices.Log = device.PrintLogger{Out: w.console}
	}

	return devices, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
}
