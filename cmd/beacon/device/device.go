// Package device defines the signaling capabilities the player drives and
// the adapters that implement them on real hardware.
package device

import (
	"errors"
	"time"
)

var (
	// ErrUnavailable means a requested channel cannot be used this session.
	ErrUnavailable = errors.New("device unavailable")

	// ErrTransientFailure wraps a single failed toggle during playback.
	ErrTransientFailure = errors.New("device toggle failed")
)

// Capability is the result of probing a torch.
type Capability int

const (
	Available Capability = iota
	Unavailable
	Unsupported
	Denied
)

func (c Capability) String() string {
	switch c {
	case Available:
		return "available"
	case Unavailable:
		return "unavailable"
	case Unsupported:
		return "unsupported"
	case Denied:
		return "denied"
	default:
		return "unknown"
	}
}

type Torch interface {
	Probe() Capability
	SetActive(on bool) error
}

// Prober is implemented by outputs that must acquire a device before use.
// Anything other than Available disables the output for a session.
type Prober interface {
	Probe() Capability
}

type ScreenFlasher interface {
	SetActive(on bool) error
}

type Beeper interface {
	SetActive(on bool) error
}

// HapticPulse fires a short tick. Implementations must not block.
type HapticPulse interface {
	Pulse(d time.Duration)
}

// Handle identifies an acquired wake lock.
type Handle uint64

type WakeLock interface {
	Acquire() (Handle, error)
	Release(h Handle) error
}

type Logger interface {
	Append(message string)
}

type Notifier interface {
	Notify(title, body string) error
}

// Output is a single channel the player switches on and off.
type Output interface {
	Name() string
	SetActive(on bool) error
}

type setter interface {
	SetActive(on bool) error
}

type namedOutput struct {
	name string
	s    setter
}

func (n namedOutput) Name() string {
	return n.name
}

func (n namedOutput) SetActive(on bool) error {
	return n.s.SetActive(on)
}

// Named turns a torch, flasher or beeper into a player output.
func Named(name string, s setter) Output {
	return namedOutput{name: name, s: s}
}

// FlasherFunc adapts a function to ScreenFlasher.
type FlasherFunc func(on bool) error

func (f FlasherFunc) SetActive(on bool) error {
	return f(on)
}

// NopWakeLock hands out handles without holding anything.
type NopWakeLock struct{}

func (NopWakeLock) Acquire() (Handle, error) {
	return 1, nil
}

func (NopWakeLock) Release(Handle) error {
	return nil
}
