package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/RealZimboGuy/epochtick/internal/domain"
)

// EpochRunRepository provides persistence for the epoch_runs table.
type EpochRunRepository struct {
	db *sql.DB
}

func NewEpochRunRepository(db *sql.DB) *EpochRunRepository {
	return &EpochRunRepository{db: db}
}

// Save inserts a new run row and returns its ID.
func (r *EpochRunRepository) Save(run *domain.EpochRun) (int64, error) {
	started := run.Started
	if started.IsZero() {
		started = time.Now()
	}
	lastActive := run.LastActive
	if lastActive.IsZero() {
		lastActive = started
	}
	vals := []interface{}{run.Name, run.EngineCount, run.IntervalNanos, run.Ticks,
		formatDateInDatabase(started), formatDateInDatabase(lastActive), formatDateInDatabaseNull(run.Stopped)}
	pps := make([]string, len(vals))
	for i := range vals {
		pps[i] = placeholder(i + 1)
	}
	base := `INSERT INTO epoch_runs (name, engine_count, interval_nanos, ticks, started, last_active, stopped) VALUES (` + strings.Join(pps, ", ") + `)`
	if supportsReturning() {
		if err := r.db.QueryRow(base+" RETURNING id", vals...).Scan(&run.ID); err != nil {
			return 0, err
		}
	} else {
		res, err := r.db.Exec(base, vals...)
		if err != nil {
			return 0, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, err
		}
		run.ID = id
	}
	run.Started = started
	run.LastActive = lastActive
	return run.ID, nil
}

// UpdateLastActive records a heartbeat for a running run.
func (r *EpochRunRepository) UpdateLastActive(id int64, ts time.Time, ticks int64) error {
	query := `UPDATE epoch_runs SET last_active = ` + placeholder(1) + `, ticks = ` + placeholder(2) + ` WHERE id = ` + placeholder(3)
	_, err := r.db.Exec(query, formatDateInDatabase(ts), ticks, id)
	return err
}

// MarkStopped closes the run with its final tick count.
func (r *EpochRunRepository) MarkStopped(id int64, ts time.Time, ticks int64) error {
	query := `UPDATE epoch_runs SET last_active = ` + placeholder(1) + `, stopped = ` + placeholder(2) +
		`, ticks = ` + placeholder(3) + ` WHERE id = ` + placeholder(4)
	stamp := formatDateInDatabase(ts)
	_, err := r.db.Exec(query, stamp, stamp, ticks, id)
	return err
}

func (r *EpochRunRepository) GetRunsByLastActive(limit int) ([]*domain.EpochRun, error) {
	query := `
		SELECT id, name, engine_count, interval_nanos, ticks, started, last_active, stopped
		FROM epoch_runs
		ORDER BY last_active DESC, id DESC
		LIMIT ` + placeholder(1) + `
	`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*domain.EpochRun
	for rows.Next() {
		var run domain.EpochRun
		if err := rows.Scan(&run.ID, &run.Name, &run.EngineCount, &run.IntervalNanos, &run.Ticks,
			&run.Started, &run.LastActive, &run.Stopped); err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}
