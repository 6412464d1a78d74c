package epochtick

import (
	"time"

	"github.com/RealZimboGuy/epochtick/internal/engine"
	"github.com/RealZimboGuy/epochtick/pkg/epochtick/core"
)

var (
	ErrNoHandles       = engine.ErrNoHandles
	ErrNilHandle       = engine.ErrNilHandle
	ErrInvalidInterval = engine.ErrInvalidInterval
	ErrAlreadyRunning  = engine.ErrAlreadyRunning
)

// Status is a point-in-time view of a Ticker.
type Status = engine.Status

// Ticker advances the epoch of a fixed set of engines from one background
// goroutine. The zero value is not usable; create one with New.
//
// A Ticker is started with a non-empty set of handles and stopped with Stop,
// which blocks until the worker has exited. It can be started again after
// Stop. Engines must not be destroyed while they are registered with a
// running Ticker: Stop it, or Remove the handle, first.
type Ticker struct {
	m *engine.TickerManager
}

type Option func(*settings)

type settings struct {
	clock     core.Clock
	repo      engine.RunRepo
	heartbeat time.Duration
	label     string
}

// WithClock replaces the real clock, mostly for tests.
func WithClock(clock core.Clock) Option {
	return func(s *settings) { s.clock = clock }
}

// WithHeartbeat sets how often run history is refreshed while running.
func WithHeartbeat(every time.Duration) Option {
	return func(s *settings) { s.heartbeat = every }
}

// WithLabel prefixes run names, e.g. with the host name.
func WithLabel(label string) Option {
	return func(s *settings) { s.label = label }
}

func withRunRepo(repo engine.RunRepo) Option {
	return func(s *settings) { s.repo = repo }
}

func New(opts ...Option) *Ticker {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	m := engine.NewTickerManager(s.repo, s.clock)
	m.Label = s.label
	if s.heartbeat > 0 {
		m.Heartbeat = s.heartbeat
	}
	return &Ticker{m: m}
}

// Start ticks every handle once per interval until Stop. It returns
// ErrNoHandles for an empty set and ErrAlreadyRunning if a worker is active.
// Intervals below core.MinInterval are raised to it.
func (t *Ticker) Start(interval time.Duration, handles ...core.EngineHandle) error {
	return t.m.Start(handles, interval)
}

func (t *Ticker) StartSingle(interval time.Duration, handle core.EngineHandle) error {
	return t.m.StartSingle(handle, interval)
}

// Stop blocks until the worker has exited; no tick happens after it returns.
// It is a no-op when the Ticker is not running.
func (t *Ticker) Stop() { t.m.Stop() }

// Restart starts again with the handles and interval of the last run.
func (t *Ticker) Restart() error { return t.m.Restart() }

// Remove detaches handle, restarting the worker with the remaining handles.
func (t *Ticker) Remove(handle core.EngineHandle) { t.m.Remove(handle) }

func (t *Ticker) Running() bool { return t.m.Running() }

func (t *Ticker) Interval() time.Duration { return t.m.Interval() }

func (t *Ticker) Status() Status { return t.m.Status() }

var defaultTicker = New()

// Default returns the process-wide Ticker used by the package functions.
func Default() *Ticker { return defaultTicker }

// StartEpochThread starts the process-wide ticker for a single engine.
func StartEpochThread(interval time.Duration, handle core.EngineHandle) error {
	return defaultTicker.StartSingle(interval, handle)
}

// StartEpochThreadMultiple starts the process-wide ticker for several engines.
func StartEpochThreadMultiple(interval time.Duration, handles ...core.EngineHandle) error {
	return defaultTicker.Start(interval, handles...)
}

// StopEpochThread stops the process-wide ticker if it is running.
func StopEpochThread() { defaultTicker.Stop() }

func IsEpochThreadRunning() bool { return defaultTicker.Running() }

// EpochInterval returns the interval of the process-wide ticker, or
// core.DefaultInterval if it was never started.
func EpochInterval() time.Duration {
	if d := defaultTicker.Interval(); d > 0 {
		return d
	}
	return core.DefaultInterval
}
