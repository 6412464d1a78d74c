package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RealZimboGuy/epochtick/internal/domain"
	"github.com/RealZimboGuy/epochtick/pkg/epochtick/core"
)

const defaultHeartbeat = 5 * time.Second

// Status is a point-in-time view of the ticker.
type Status struct {
	Running      bool       `json:"running"`
	RunID        int64      `json:"run_id,omitempty"`
	RunName      string     `json:"run_name,omitempty"`
	EngineCount  int        `json:"engine_count"`
	Interval     string     `json:"interval"`
	IntervalNano int64      `json:"interval_nanos"`
	Ticks        uint64     `json:"ticks"`
	Started      *time.Time `json:"started,omitempty"`
}

// TickerManager owns the epoch worker. At most one Run is active at a time;
// Start and Stop are serialised by mu.
type TickerManager struct {
	// Label prefixes generated run names, e.g. the host name.
	Label string
	// Heartbeat is how often last_active is persisted while running.
	Heartbeat time.Duration

	mu       sync.Mutex
	current  *Run
	handles  []core.EngineHandle
	interval time.Duration
	runRepo  RunRepo
	clock    core.Clock

	hbStop chan struct{}
	hbDone chan struct{}
}

// NewTickerManager creates an idle ticker. runRepo may be nil to disable run
// history; clock may be nil for the real clock.
func NewTickerManager(runRepo RunRepo, clock core.Clock) *TickerManager {
	if clock == nil {
		clock = core.NewRealClock()
	}
	return &TickerManager{
		runRepo:   runRepo,
		clock:     clock,
		Heartbeat: defaultHeartbeat,
	}
}

// Start spawns the worker for handles, ticking every interval. The slice is
// copied; the caller may reuse it once Start returns.
func (m *TickerManager) Start(handles []core.EngineHandle, interval time.Duration) error {
	if len(handles) == 0 {
		return ErrNoHandles
	}
	for _, h := range handles {
		if h == nil {
			return ErrNilHandle
		}
	}
	normalized, ok := core.NormalizeInterval(interval)
	if !ok {
		return ErrInvalidInterval
	}
	if normalized != interval {
		slog.Debug("Epoch interval raised to minimum", "requested", interval.String(), "interval", normalized.String())
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		return ErrAlreadyRunning
	}
	m.startLocked(handles, normalized)
	return nil
}

// StartSingle is Start for the common single engine case.
func (m *TickerManager) StartSingle(handle core.EngineHandle, interval time.Duration) error {
	return m.Start([]core.EngineHandle{handle}, interval)
}

// Restart starts a new run with the handles and interval of the previous run.
func (m *TickerManager) Restart() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		return ErrAlreadyRunning
	}
	if len(m.handles) == 0 {
		return ErrNoHandles
	}
	m.startLocked(m.handles, m.interval)
	return nil
}

// Stop signals the worker and blocks until it has exited. No tick happens
// after Stop returns. Stop on an idle ticker is a no-op.
func (m *TickerManager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

// Remove detaches handle. A running ticker is stopped and, if any handles
// remain, restarted with them; the handle is not ticked after Remove returns.
// Handles must be comparable.
func (m *TickerManager) Remove(handle core.EngineHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	remaining := make([]core.EngineHandle, 0, len(m.handles))
	for _, h := range m.handles {
		if h != handle {
			remaining = append(remaining, h)
		}
	}
	if len(remaining) == len(m.handles) {
		return
	}

	wasRunning := m.current != nil
	m.stopLocked()
	m.handles = remaining
	if wasRunning && len(remaining) > 0 {
		m.startLocked(remaining, m.interval)
	}
}

func (m *TickerManager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil
}

// Interval returns the interval of the current or most recent run.
func (m *TickerManager) Interval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interval
}

func (m *TickerManager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := Status{
		EngineCount:  len(m.handles),
		Interval:     m.interval.String(),
		IntervalNano: int64(m.interval),
	}
	if run := m.current; run != nil {
		started := run.Started
		st.Running = true
		st.RunID = run.ID
		st.RunName = run.Name
		st.Ticks = run.Ticks()
		st.Started = &started
	}
	return st
}

// ListRuns returns the most recent runs from the run history.
func (m *TickerManager) ListRuns(limit int) ([]*domain.EpochRun, error) {
	if m.runRepo == nil {
		return nil, nil
	}
	return m.runRepo.GetRunsByLastActive(limit)
}

// currentRun is for tests that need the join handle.
func (m *TickerManager) currentRun() *Run {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *TickerManager) startLocked(handles []core.EngineHandle, interval time.Duration) {
	run := newRun(m.runName(), handles, interval, m.clock)
	m.handles = run.handles
	m.interval = interval
	m.recordStart(run)

	run.spawn()
	m.current = run
	m.startHeartbeat(run)

	slog.Info("Epoch ticker started", "run", run.Name, "engines", len(run.handles), "interval", interval.String())
}

func (m *TickerManager) stopLocked() {
	run := m.current
	if run == nil {
		return
	}
	run.stop()
	m.stopHeartbeat()
	m.current = nil
	m.recordStop(run)

	slog.Info("Epoch ticker stopped", "run", run.Name, "ticks", run.Ticks())
}

func (m *TickerManager) runName() string {
	if m.Label == "" {
		return uuid.NewString()
	}
	return m.Label + "/" + uuid.NewString()
}

func (m *TickerManager) recordStart(run *Run) {
	if m.runRepo == nil {
		return
	}
	rec := &domain.EpochRun{
		Name:          run.Name,
		EngineCount:   len(run.handles),
		IntervalNanos: int64(run.interval),
		Started:       run.Started,
		LastActive:    run.Started,
	}
	id, err := m.runRepo.Save(rec)
	if err != nil {
		slog.Error("Failed to record epoch run", "run", run.Name, "error", err)
		return
	}
	run.ID = id
}

func (m *TickerManager) recordStop(run *Run) {
	if m.runRepo == nil || run.ID == 0 {
		return
	}
	now := m.clock.Now()
	if err := m.runRepo.MarkStopped(run.ID, now, int64(run.Ticks())); err != nil {
		slog.Error("Failed to record epoch run stop", "run", run.Name, "error", err)
	}
}

// startHeartbeat persists last_active and the tick count while the run is
// alive. It never touches the engine handles.
func (m *TickerManager) startHeartbeat(run *Run) {
	if m.runRepo == nil || run.ID == 0 {
		return
	}
	every := m.Heartbeat
	if every <= 0 {
		every = defaultHeartbeat
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	m.hbStop, m.hbDone = stop, done

	go func() {
		defer close(done)
		hb := time.NewTicker(every)
		defer hb.Stop()
		for {
			select {
			case <-stop:
				return
			case <-run.Done():
				return
			case <-hb.C:
				if err := m.runRepo.UpdateLastActive(run.ID, m.clock.Now(), int64(run.Ticks())); err != nil {
					slog.Error("Failed to update epoch run last_active", "run", run.Name, "error", err)
				} else {
					slog.Debug("Updated epoch run last_active", "run", run.Name, "ticks", run.Ticks())
				}
			}
		}
	}()
}

func (m *TickerManager) stopHeartbeat() {
	if m.hbStop == nil {
		return
	}
	close(m.hbStop)
	<-m.hbDone
	m.hbStop, m.hbDone = nil, nil
}
