package epochtick

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/RealZimboGuy/epochtick/internal/config"
	"github.com/RealZimboGuy/epochtick/internal/controllers"
	"github.com/RealZimboGuy/epochtick/internal/migrations"
	"github.com/RealZimboGuy/epochtick/internal/repository"
	"github.com/RealZimboGuy/epochtick/pkg/epochtick/core"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lmittmann/tint"

	_ "github.com/go-sql-driver/mysql"
	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Daemon is a running epoch ticker with its in-process engines, run history
// and admin routes.
type Daemon struct {
	Ticker  *Ticker
	Engines []*core.CounterEngine
	db      *sql.DB
}

// Boot opens the optional run history database, starts the ticker for
// EPOCH_ENGINE_COUNT in-process engines and registers the admin routes on mux.
func Boot(mux *http.ServeMux) (*Daemon, error) {
	databaseType := config.GetSystemSettingString(config.DATABASE_TYPE)
	if databaseType != "" && !config.ValidDatabaseType(databaseType) {
		return nil, fmt.Errorf("%s must be one of POSTGRES, MYSQL, SQLLITE or empty, got %q", config.DATABASE_TYPE, databaseType)
	}

	d := &Daemon{}
	opts := []Option{
		WithLabel(runLabel()),
		WithHeartbeat(config.GetSystemSettingDuration(config.HEARTBEAT_INTERVAL)),
	}
	if databaseType != "" {
		db, err := setupDatabase(databaseType)
		if err != nil {
			return nil, err
		}
		repository.ConfigurePool(db, databaseType)
		d.db = db
		opts = append(opts, withRunRepo(repository.NewEpochRunRepository(db)))
	} else {
		slog.Info("No database configured, run history disabled")
	}
	d.Ticker = New(opts...)

	count := config.GetSystemSettingInteger(config.ENGINE_COUNT)
	if count <= 0 {
		count = 1
	}
	handles := make([]core.EngineHandle, count)
	for i := range handles {
		e := core.NewCounterEngine(fmt.Sprintf("engine-%d", i))
		d.Engines = append(d.Engines, e)
		handles[i] = e
	}

	interval := config.GetSystemSettingDuration(config.TICK_INTERVAL)
	if interval <= 0 {
		interval = core.DefaultInterval
	}
	if err := d.Ticker.Start(interval, handles...); err != nil {
		d.Close()
		return nil, fmt.Errorf("start epoch ticker: %w", err)
	}

	if mux != nil {
		tickerController := controllers.NewTickerController(d.Ticker.m, config.GetSystemSettingString(config.ADMIN_API_KEY_HASH))
		tickerController.RegisterRoutes(mux)
	}
	return d, nil
}

// Close stops the ticker and releases the database.
func (d *Daemon) Close() error {
	if d.Ticker != nil {
		d.Ticker.Stop()
	}
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Serve boots the daemon and serves the admin API until ctx is cancelled.
// The ticker is stopped before Serve returns.
func Serve(ctx context.Context, mux *http.ServeMux) error {
	if mux == nil {
		mux = http.NewServeMux()
	}
	d, err := Boot(mux)
	if err != nil {
		return err
	}
	defer d.Close()

	addr := ":" + config.GetSystemSettingString(config.SERVER_WEB_PORT)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "Shutting down epoch ticker daemon")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		slog.Error("HTTP server failed", "error", err)
		return err
	}
}

func runLabel() string {
	if name := config.GetSystemSettingString(config.RUN_NAME); name != "" {
		return name
	}
	hostname, err := os.Hostname()
	if err != nil {
		return "epochtick"
	}
	return hostname
}

func setupDatabase(databaseType string) (*sql.DB, error) {
	switch databaseType {
	case config.DATABASE_TYPE_POSTGRES:
		return setupPostgresDatabase()
	case config.DATABASE_TYPE_MYSQL:
		return setupMysqlDatabase()
	default:
		return setupSqlLiteDatabase()
	}
}

func setupPostgresDatabase() (*sql.DB, error) {
	dbURL := config.GetSystemSettingString(config.DATABASE_URL)
	if dbURL == "" {
		return nil, fmt.Errorf("%s must be set when using the POSTGRES database type", config.DATABASE_URL)
	}
	slog.Info("Running migrations", "database", "postgres")
	if err := runMigrationsFromEmbed("postgres", dbURL); err != nil {
		return nil, fmt.Errorf("postgres migration: %w", err)
	}
	slog.Info("Opening Postgres database")
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

func setupSqlLiteDatabase() (*sql.DB, error) {
	fileName := config.GetSystemSettingString(config.DATABASE_SQLLITE_FILE_NAME)
	slog.Info("Using SQLite database", "file", fileName)
	if err := runMigrationsFromEmbed("sqllite3", "sqlite3://"+fileName); err != nil {
		return nil, fmt.Errorf("sqlite migration: %w", err)
	}
	db, err := sql.Open("sqlite3", fileName)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

func setupMysqlDatabase() (*sql.DB, error) {
	dbURL := config.GetSystemSettingString(config.DATABASE_URL)
	if !strings.HasPrefix(dbURL, "mysql://") {
		return nil, fmt.Errorf("%s must start with 'mysql://' for MySQL", config.DATABASE_URL)
	}
	// DATETIME columns are scanned into time.Time
	if !strings.Contains(dbURL, "parseTime=true") {
		return nil, fmt.Errorf("%s must contain 'parseTime=true' for MySQL", config.DATABASE_URL)
	}
	slog.Info("Running migrations", "database", "mysql")
	if err := runMigrationsFromEmbed("mysql", dbURL); err != nil {
		return nil, fmt.Errorf("mysql migration: %w", err)
	}
	db, err := sql.Open("mysql", strings.TrimPrefix(dbURL, "mysql://"))
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return db, nil
}

func runMigrationsFromEmbed(migrationsPath string, dbURL string) error {
	sub, err := fs.Sub(migrations.FS, migrationsPath)
	if err != nil {
		return err
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, dbURL)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// SetupLogger installs a colourised slog handler on stderr.
func SetupLogger() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}
