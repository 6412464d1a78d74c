package engine

import (
	"time"

	"github.com/RealZimboGuy/epochtick/internal/domain"
)

// RunRepo defines the interface for epoch run persistence, matching repository.EpochRunRepository.
type RunRepo interface {
	Save(run *domain.EpochRun) (int64, error)
	UpdateLastActive(id int64, ts time.Time, ticks int64) error
	MarkStopped(id int64, ts time.Time, ticks int64) error
	GetRunsByLastActive(limit int) ([]*domain.EpochRun, error)
}

// TickerControl is the admin surface of the ticker, implemented by TickerManager.
type TickerControl interface {
	Status() Status
	Stop()
	Restart() error
	ListRuns(limit int) ([]*domain.EpochRun, error)
}
