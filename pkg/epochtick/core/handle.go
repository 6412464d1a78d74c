package core

import "sync/atomic"

// EngineHandle is an opaque reference to a sandboxed execution engine.
//
// IncrementEpoch must be non-blocking, safe to call from any goroutine and
// must never fail. The ticker only ever calls IncrementEpoch; creating and
// destroying the engine stays with the caller, who must stop (or Remove the
// handle from) the ticker before destroying it.
type EngineHandle interface {
	IncrementEpoch()
}

// CounterEngine is an in-process EngineHandle backed by an atomic counter.
// Runtimes that only need an epoch source can consult Epoch at their safe
// points.
type CounterEngine struct {
	Name  string
	epoch atomic.Uint64
}

func NewCounterEngine(name string) *CounterEngine {
	return &CounterEngine{Name: name}
}

func (e *CounterEngine) IncrementEpoch() { e.epoch.Add(1) }

// Epoch returns the number of ticks received so far.
func (e *CounterEngine) Epoch() uint64 { return e.epoch.Load() }

// Exceeded reports whether the engine epoch has reached deadline.
// A zero deadline never expires.
func (e *CounterEngine) Exceeded(deadline uint64) bool {
	return deadline != 0 && e.epoch.Load() >= deadline
}
