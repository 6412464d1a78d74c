package repository

import (
	"database/sql"
	"time"

	"github.com/RealZimboGuy/epochtick/internal/config"
)

// ConfigurePool applies pool limits suited to the run history workload: one
// insert per run and a heartbeat update every few seconds.
func ConfigurePool(db *sql.DB, databaseType string) {
	if databaseType == config.DATABASE_TYPE_SQLLITE {
		// a single writer avoids "database is locked" between heartbeat and stop
		db.SetMaxOpenConns(1)
		return
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)
}
