// Package sqlite stores climate runs in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/chrissnell/climate/internal/climate"
	"github.com/chrissnell/climate/pkg/migrate"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Storage holds the connection to a SQLite database
type Storage struct {
	db     *sql.DB
	dbPath string
	logger *zap.SugaredLogger
}

// New opens (creating if needed) the database at dbPath and its tables
func New(ctx context.Context, dbPath string, logger *zap.SugaredLogger) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	migrator := migrate.NewMigrator(db, migrate.NewStaticProvider(migrations, ""), logger)
	if err := migrator.MigrateUp(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate SQLite schema: %w", err)
	}

	logger.Debugw("SQLite storage ready", "path", dbPath)

	return &Storage{
		db:     db,
		dbPath: dbPath,
		logger: logger,
	}, nil
}

// Name identifies the sink in logs
func (s *Storage) Name() string {
	return "sqlite"
}

// StoreClimate writes a run, its days and its years in one transaction
func (s *Storage) StoreClimate(ctx context.Context, c *climate.Climate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, insertRunSQL,
		c.RunID, c.LastDate, c.Rows, c.Skipped, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	dayStmt, err := tx.PrepareContext(ctx, insertDaySQL)
	if err != nil {
		return fmt.Errorf("failed to prepare day insert: %w", err)
	}
	defer dayStmt.Close()

	for _, d := range c.Days {
		if _, err := dayStmt.ExecContext(ctx, c.RunID, d.MonthDay, d.DayOfYear, d.Count,
			d.AvgPrecip, d.AvgLow, d.AvgHigh, d.MinLow, d.MaxHigh, d.MinLowYear, d.MaxHighYear); err != nil {
			return fmt.Errorf("failed to insert day %s: %w", d.MonthDay, err)
		}
	}

	yearStmt, err := tx.PrepareContext(ctx, insertYearSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare year insert: %w", err)
	}
	defer yearStmt.Close()

	for _, y := range c.Years {
		if _, err := yearStmt.ExecContext(ctx, c.RunID, y.Year, y.MinLow, y.MaxHigh); err != nil {
			return fmt.Errorf("failed to insert year %d: %w", y.Year, err)
		}
	}

	return tx.Commit()
}

// LoadDays returns the stored days of a run ordered by calendar key
func (s *Storage) LoadDays(ctx context.Context, runID string) ([]climate.DayClimate, error) {
	rows, err := s.db.QueryContext(ctx, selectDaysSQL, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query days: %w", err)
	}
	defer rows.Close()

	var days []climate.DayClimate
	for rows.Next() {
		var d climate.DayClimate
		if err := rows.Scan(&d.MonthDay, &d.DayOfYear, &d.Count, &d.AvgPrecip, &d.AvgLow, &d.AvgHigh,
			&d.MinLow, &d.MaxHigh, &d.MinLowYear, &d.MaxHighYear); err != nil {
			return nil, fmt.Errorf("failed to scan day: %w", err)
		}
		days = append(days, d)
	}

	return days, rows.Err()
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}
