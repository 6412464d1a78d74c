package engine

import (
	"sync/atomic"
	"time"

	"github.com/RealZimboGuy/epochtick/pkg/epochtick/core"
)

// Run is a single worker lifetime. It owns a private copy of the handles and
// is the join handle for its worker goroutine.
type Run struct {
	ID       int64
	Name     string
	Started  time.Time
	handles  []core.EngineHandle
	interval time.Duration
	clock    core.Clock

	stopping atomic.Bool
	ticks    atomic.Uint64
	done     chan struct{}
}

func newRun(name string, handles []core.EngineHandle, interval time.Duration, clock core.Clock) *Run {
	owned := make([]core.EngineHandle, len(handles))
	copy(owned, handles)
	return &Run{
		Name:     name,
		Started:  clock.Now(),
		handles:  owned,
		interval: interval,
		clock:    clock,
		done:     make(chan struct{}),
	}
}

// spawn starts the worker and returns without waiting for a tick.
func (r *Run) spawn() {
	go Worker(r)
}

// Worker sleeps for the interval, then advances every handle in order, until
// the stop flag is seen. A stop observed after waking wins over the tick.
func Worker(r *Run) {
	defer close(r.done)
	for {
		r.clock.Sleep(r.interval)
		if r.stopping.Load() {
			return
		}
		for _, h := range r.handles {
			h.IncrementEpoch()
		}
		r.ticks.Add(1)
	}
}

// stop requests the worker to exit and waits for it. Safe to call more than once.
func (r *Run) stop() {
	r.stopping.Store(true)
	<-r.done
}

// Done is closed once the worker has exited.
func (r *Run) Done() <-chan struct{} { return r.done }

// Ticks returns the number of completed tick rounds.
func (r *Run) Ticks() uint64 { return r.ticks.Load() }

func (r *Run) Interval() time.Duration { return r.interval }

func (r *Run) EngineCount() int { return len(r.handles) }
