// Package session owns the single playback that may run at a time: it
// validates a request, acquires devices, loops the schedule and releases
// everything when playback ends.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gigurra/morselight/cmd/beacon/device"
	"github.com/gigurra/morselight/cmd/beacon/player"
	"github.com/gigurra/morselight/cmd/morse/code"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var (
	ErrEmptyInput     = errors.New("nothing to signal")
	ErrAlreadyRunning = errors.New("a session is already running")
)

// Options selects outputs and looping for one session.
type Options struct {
	Torch  bool
	Screen bool
	Beep   bool
	Haptic bool
	Loop   bool
}

// Devices are the collaborators a session may use. Nil members are
// treated as absent.
type Devices struct {
	Torch    device.Torch
	Screen   device.ScreenFlasher
	Beeper   device.Beeper
	Haptic   device.HapticPulse
	WakeLock device.WakeLock
	Notifier device.Notifier
	Log      device.Logger
}

// Result summarizes a finished session.
type Result struct {
	ID      string
	Outcome player.Outcome
	Cycles  int
	Elapsed time.Duration
}

// Context is the state of one session, from Start until its goroutine
// returns.
type Context struct {
	ID       string
	Text     string
	WPM      int
	Options  Options
	Schedule code.Schedule

	cancel  player.Flag
	mu      sync.Mutex
	outputs []device.Output
	wake    device.Handle
	hasWake bool
	done    chan struct{}
	result  Result
}

type Controller struct {
	devices  Devices
	log      *slog.Logger
	newPlay  func(opts ...player.Option) *player.Player
	playOpts []player.Option

	// mu orders Start against Stop so a stop never lands on a stale session.
	mu      sync.Mutex
	running atomic.Bool
	current atomic.Pointer[Context]
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithPlayerOptions is appended to the options of every session's player.
func WithPlayerOptions(opts ...player.Option) Option {
	return func(c *Controller) { c.playOpts = append(c.playOpts, opts...) }
}

func New(devices Devices, opts ...Option) *Controller {
	c := &Controller{
		devices: devices,
		log:     slog.Default(),
		newPlay: player.New,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Running reports whether a session is in progress.
func (c *Controller) Running() bool {
	return c.running.Load()
}

// Start validates the request and begins playback in the background. It
// returns ErrAlreadyRunning without touching the running session if one is
// in progress, and reports invalid rate or empty input before anything
// starts.
func (c *Controller) Start(text string, wpm int, opts Options) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	sched, err := prepare(text, wpm)
	if err != nil {
		c.running.Store(false)
		return err
	}

	s := &Context{
		ID:       uuid.NewString(),
		Text:     text,
		WPM:      wpm,
		Options:  opts,
		Schedule: sched,
		done:     make(chan struct{}),
	}
	c.current.Store(s)

	go c.run(s)
	return nil
}

func prepare(text string, wpm int) (code.Schedule, error) {
	unit, err := code.UnitFor(wpm)
	if err != nil {
		return nil, err
	}
	tokens := code.Encode(text)
	if code.MarkCount(tokens) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyInput, text)
	}
	return code.BuildSchedule(tokens, unit)
}

// Stop asks the running session to end at the next step boundary. It does
// nothing when idle.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running.Load() {
		return
	}
	if s := c.current.Load(); s != nil {
		s.cancel.Cancel()
	}
}

// Current returns the running or most recent session, or nil before the
// first Start.
func (c *Controller) Current() *Context {
	return c.current.Load()
}

// Done is closed when the current or most recent session ends. It is nil
// before the first Start.
func (c *Controller) Done() <-chan struct{} {
	if s := c.current.Load(); s != nil {
		return s.done
	}
	return nil
}

// Wait blocks until the current or most recent session ends.
func (c *Controller) Wait() Result {
	s := c.current.Load()
	if s == nil {
		return Result{}
	}
	return s.Result()
}

func (c *Controller) run(s *Context) {
	log := c.log.With("session", s.ID[:8])
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error("playback aborted", "panic", r)
			s.result.Outcome = player.Cancelled
		}
		c.release(s, log)
		s.result.ID = s.ID
		s.result.Elapsed = time.Since(started)
		c.announce(log, fmt.Sprintf("Done (%s after %d cycle(s)).", s.result.Outcome, s.result.Cycles))
		c.notify(log, "Signal stopped", fmt.Sprintf("%q %s", s.Text, s.result.Outcome))
		c.running.Store(false)
		close(s.done)
	}()

	c.acquire(s, log)

	c.announce(log, fmt.Sprintf("Flashing %q @ %d WPM (%d steps, %s per pass)",
		s.Text, s.WPM, len(s.Schedule), s.Schedule.Total()))
	c.notify(log, "Signaling", s.Text)

	opts := append([]player.Option{player.WithLogger(log)}, c.playOpts...)
	if s.Options.Haptic && c.devices.Haptic != nil {
		opts = append(opts, player.WithHaptic(c.devices.Haptic))
	}
	p := c.newPlay(opts...)

	s.result.Outcome = player.Completed
	for {
		if s.cancel.Cancelled() {
			s.result.Outcome = player.Cancelled
			break
		}
		outcome := p.Play(s.Schedule, s.snapshot(), &s.cancel)
		s.result.Cycles++
		if outcome == player.Cancelled {
			s.result.Outcome = player.Cancelled
			break
		}
		if !s.Options.Loop {
			break
		}
	}
}

// acquire takes the wake lock and resolves which outputs this session
// drives. Failures only disable the affected channel.
func (c *Controller) acquire(s *Context, log *slog.Logger) {
	if c.devices.WakeLock != nil {
		h, err := c.devices.WakeLock.Acquire()
		if err != nil {
			log.Warn("wake lock unavailable", "error", err)
		} else {
			s.wake, s.hasWake = h, true
		}
	}

	if s.Options.Torch {
		if c.devices.Torch == nil {
			c.unavailable(log, "torch", "no torch device")
		} else if capability := c.devices.Torch.Probe(); capability != device.Available {
			c.announce(log, fmt.Sprintf("Torch capability: %s", capability))
			c.unavailable(log, "torch", capability.String())
		} else {
			s.add(device.Named("torch", c.devices.Torch))
		}
	}
	if s.Options.Screen {
		c.acquireOutput(s, log, "screen", c.devices.Screen)
	}
	if s.Options.Beep {
		c.acquireOutput(s, log, "beep", c.devices.Beeper)
	}

	if len(s.snapshot()) == 0 && !(s.Options.Haptic && c.devices.Haptic != nil) {
		c.announce(log, "No output channel available, playing silently.")
	}
}

// acquireOutput adds out to the session unless it is missing or its probe
// fails.
func (c *Controller) acquireOutput(s *Context, log *slog.Logger, name string, out interface{ SetActive(bool) error }) {
	if out == nil {
		c.unavailable(log, name, "not present")
		return
	}
	if p, ok := out.(device.Prober); ok {
		if capability := p.Probe(); capability != device.Available {
			c.unavailable(log, name, capability.String())
			return
		}
	}
	s.add(device.Named(name, out))
}

func (c *Controller) unavailable(log *slog.Logger, channel, reason string) {
	err := fmt.Errorf("%w: %s: %s", device.ErrUnavailable, channel, reason)
	log.Warn("output disabled for this session", "output", channel, "error", err)
}

// release runs once per session on every exit path.
func (c *Controller) release(s *Context, log *slog.Logger) {
	for _, out := range s.snapshot() {
		if err := out.SetActive(false); err != nil {
			log.Warn("failed to switch output off", "output", out.Name(), "error", err)
		}
	}
	if s.hasWake {
		if err := c.devices.WakeLock.Release(s.wake); err != nil {
			log.Warn("wake lock release failed", "error", err)
		}
		s.hasWake = false
	}
}

func (c *Controller) announce(log *slog.Logger, msg string) {
	log.Info(msg)
	if c.devices.Log != nil {
		c.devices.Log.Append(msg)
	}
}

func (c *Controller) notify(log *slog.Logger, title, body string) {
	if c.devices.Notifier == nil {
		return
	}
	if err := c.devices.Notifier.Notify(title, body); err != nil {
		log.Debug("notification failed", "error", err)
	}
}

func (s *Context) add(out device.Output) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs = append(s.outputs, out)
}

func (s *Context) snapshot() []device.Output {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]device.Output(nil), s.outputs...)
}

// Outputs lists the channel names a session drives. Before the session has
// acquired its devices the list may be incomplete.
func (s *Context) Outputs() []string {
	return lo.Map(s.snapshot(), func(o device.Output, _ int) string { return o.Name() })
}

// Done is closed when this session ends.
func (s *Context) Done() <-chan struct{} {
	return s.done
}

// Result waits for this session to end and returns its summary.
func (s *Context) Result() Result {
	<-s.done
	return s.result
}
