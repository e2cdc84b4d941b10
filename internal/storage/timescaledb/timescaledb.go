// Package timescaledb stores climate runs in PostgreSQL/TimescaleDB through GORM.
package timescaledb

import (
	"context"
	"fmt"
	"time"

	"github.com/chrissnell/climate/internal/climate"
	"github.com/chrissnell/climate/internal/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Days and years are inserted in batches of this size
const insertBatchSize = 100

// Storage holds the configuration for a TimescaleDB storage sink
type Storage struct {
	TimescaleDBConn *gorm.DB
	logger          *zap.SugaredLogger
}

// New connects to the database and creates the climate tables
func New(ctx context.Context, connectionString string, logger *zap.SugaredLogger) (*Storage, error) {
	conn, err := database.CreateConnection(connectionString)
	if err != nil {
		return nil, err
	}

	t := &Storage{
		TimescaleDBConn: conn,
		logger:          logger,
	}

	logger.Info("creating climate tables...")
	for _, stmt := range createTablesSQL {
		if err := conn.WithContext(ctx).Exec(stmt).Error; err != nil {
			t.Close()
			return nil, fmt.Errorf("could not create climate tables: %w", err)
		}
	}

	return t, nil
}

// Name identifies the sink in logs
func (t *Storage) Name() string {
	return "timescaledb"
}

// StoreClimate writes a run, its days and its years in one transaction
func (t *Storage) StoreClimate(ctx context.Context, c *climate.Climate) error {
	run, days, years := database.ModelsFromClimate(c, time.Now().UTC())

	return t.TimescaleDBConn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return storeModels(tx, run, days, years)
	})
}

func storeModels(tx *gorm.DB, run database.ClimateRun, days []database.ClimateDay, years []database.ClimateYear) error {
	if err := tx.Create(&run).Error; err != nil {
		return fmt.Errorf("could not store run: %w", err)
	}
	if len(days) > 0 {
		if err := tx.CreateInBatches(days, insertBatchSize).Error; err != nil {
			return fmt.Errorf("could not store days: %w", err)
		}
	}
	if len(years) > 0 {
		if err := tx.CreateInBatches(years, insertBatchSize).Error; err != nil {
			return fmt.Errorf("could not store years: %w", err)
		}
	}
	return nil
}

// Close releases the underlying connection pool
func (t *Storage) Close() error {
	sqlDB, err := t.TimescaleDBConn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
