package domain

import (
	"database/sql"
	"time"
)

// EpochRun is one start→stop cycle of the epoch ticker.
type EpochRun struct {
	ID            int64        // BIGSERIAL
	Name          string       // TEXT, uuid
	EngineCount   int          // INTEGER
	IntervalNanos int64        // BIGINT
	Ticks         int64        // BIGINT
	Started       time.Time    // TIMESTAMP
	LastActive    time.Time    // TIMESTAMP
	Stopped       sql.NullTime // TIMESTAMP, null while running
}

func (r *EpochRun) Interval() time.Duration {
	return time.Duration(r.IntervalNanos)
}
