package core

import "time"

// MinInterval is the shortest tick interval the worker will sleep for.
// Shorter positive intervals are raised to it.
const MinInterval = 50 * time.Microsecond

// DefaultInterval is used by the daemon when no interval is configured.
const DefaultInterval = time.Millisecond

// NormalizeInterval raises positive intervals below MinInterval.
// It returns false for non-positive intervals.
func NormalizeInterval(interval time.Duration) (time.Duration, bool) {
	if interval <= 0 {
		return 0, false
	}
	if interval < MinInterval {
		return MinInterval, true
	}
	return interval, true
}

// NewEpochDeadline converts a wall-clock budget into a number of epochs for
// an engine ticked every interval. A non-positive duration yields 0 (no
// deadline); a budget shorter than one interval yields 1.
func NewEpochDeadline(duration, interval time.Duration) uint64 {
	if duration <= 0 {
		return 0
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	if duration < interval {
		return 1
	}
	return uint64(duration / interval)
}
