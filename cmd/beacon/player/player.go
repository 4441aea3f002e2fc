// Package player walks a schedule across a set of outputs, one step at a
// time, with cancellation observed only between steps.
package player

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gigurra/morselight/cmd/beacon/device"
	"github.com/gigurra/morselight/cmd/morse/code"
)

// Outcome is how a single pass over a schedule ended.
type Outcome int

const (
	Completed Outcome = iota
	Cancelled
)

func (o Outcome) String() string {
	if o == Cancelled {
		return "cancelled"
	}
	return "completed"
}

// State of the player.
type State int32

const (
	Idle State = iota
	Running
)

// CancelSignal is polled at every step boundary.
type CancelSignal interface {
	Cancelled() bool
}

// Flag is a CancelSignal safe to set from another goroutine.
type Flag struct {
	v atomic.Bool
}

func (f *Flag) Cancel() {
	f.v.Store(true)
}

func (f *Flag) Cancelled() bool {
	return f.v.Load()
}

// Sleeper suspends playback for the length of a step.
type Sleeper interface {
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// hapticMax caps the haptic tick fired on each mark.
const hapticMax = 50 * time.Millisecond

type Player struct {
	sleeper Sleeper
	haptic  device.HapticPulse
	onStep  func(i int, step code.Step)
	log     *slog.Logger
	state   atomic.Int32
}

type Option func(*Player)

func WithSleeper(s Sleeper) Option {
	return func(p *Player) { p.sleeper = s }
}

// WithHaptic fires a short pulse at the start of every mark.
func WithHaptic(h device.HapticPulse) Option {
	return func(p *Player) { p.haptic = h }
}

// WithStepObserver is called before each step is waited on.
func WithStepObserver(fn func(i int, step code.Step)) Option {
	return func(p *Player) { p.onStep = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Player) { p.log = l }
}

func New(opts ...Option) *Player {
	p := &Player{
		sleeper: realClock{},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Player) State() State {
	return State(p.state.Load())
}

// Play sets every output to each step's state and waits out its duration.
// Cancellation is checked before each step. All outputs are switched off
// exactly once when Play returns, however it returns.
func (p *Player) Play(schedule code.Schedule, outputs []device.Output, cancel CancelSignal) Outcome {
	p.state.Store(int32(Running))
	defer p.state.Store(int32(Idle))
	defer p.setAll(outputs, false)

	for i, step := range schedule {
		if cancel != nil && cancel.Cancelled() {
			return Cancelled
		}
		p.setAll(outputs, step.Active)
		if step.Active && p.haptic != nil {
			p.haptic.Pulse(min(step.Duration, hapticMax))
		}
		if p.onStep != nil {
			p.onStep(i, step)
		}
		p.sleeper.Sleep(step.Duration)
	}
	return Completed
}

func (p *Player) setAll(outputs []device.Output, on bool) {
	for _, out := range outputs {
		if err := out.SetActive(on); err != nil {
			err = fmt.Errorf("%w: %s: %v", device.ErrTransientFailure, out.Name(), err)
			p.log.Warn("output toggle failed", "output", out.Name(), "active", on, "error", err)
		}
	}
}
