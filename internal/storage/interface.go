// Package storage fans a reduced climate out to the configured storage sinks.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/chrissnell/climate/internal/climate"
	"github.com/chrissnell/climate/internal/storage/sqlite"
	"github.com/chrissnell/climate/internal/storage/timescaledb"
	"github.com/chrissnell/climate/pkg/config"
	"go.uber.org/zap"
)

// Sink is a backend that persists a reduced climate
type Sink interface {
	Name() string
	StoreClimate(ctx context.Context, c *climate.Climate) error
	Close() error
}

// Manager holds our active storage sinks
type Manager struct {
	sinks  []Sink
	logger *zap.SugaredLogger
}

// NewManager opens every sink present in the storage configuration
func NewManager(ctx context.Context, c config.StorageData, logger *zap.SugaredLogger) (*Manager, error) {
	m := &Manager{logger: logger}

	if c.SQLite != nil {
		s, err := sqlite.New(ctx, c.SQLite.Path, logger)
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("could not add SQLite storage sink: %w", err)
		}
		m.Add(s)
	}

	if c.TimescaleDB != nil {
		s, err := timescaledb.New(ctx, c.TimescaleDB.ConnectionString, logger)
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("could not add TimescaleDB storage sink: %w", err)
		}
		m.Add(s)
	}

	return m, nil
}

// Add registers an already opened sink
func (m *Manager) Add(s Sink) {
	m.sinks = append(m.sinks, s)
}

// Len returns the number of active sinks
func (m *Manager) Len() int {
	return len(m.sinks)
}

// StoreClimate sends c to every sink. A failing sink does not stop the
// others; all failures are returned together.
func (m *Manager) StoreClimate(ctx context.Context, c *climate.Climate) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.StoreClimate(ctx, c); err != nil {
			m.logger.Errorw("could not store climate", "sink", s.Name(), "run_id", c.RunID, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		m.logger.Infow("stored climate", "sink", s.Name(), "run_id", c.RunID, "days", len(c.Days))
	}
	return errors.Join(errs...)
}

// Close closes every sink
func (m *Manager) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	m.sinks = nil
	return errors.Join(errs...)
}
