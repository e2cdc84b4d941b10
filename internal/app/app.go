// Package app wires input, aggregation, output and storage together.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/chrissnell/climate/internal/climate"
	"github.com/chrissnell/climate/internal/controllers/restserver"
	"github.com/chrissnell/climate/internal/output"
	"github.com/chrissnell/climate/internal/storage"
	"github.com/chrissnell/climate/pkg/config"
	"go.uber.org/zap"
)

// App represents the main application
type App struct {
	cfg    *config.ConfigData
	logger *zap.SugaredLogger
}

// New creates a new application instance
func New(cfg *config.ConfigData, logger *zap.SugaredLogger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

// Compute reads the weather history at inputPath and reduces it to a climate
func (a *App) Compute(inputPath string) (*climate.Climate, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("error opening input: %w", err)
	}
	defer f.Close()

	acc, err := climate.Aggregate(f, climate.Options{
		Century:               a.cfg.Century,
		IncludeLeapDayInYears: a.cfg.LeapDayInYears,
	})
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", inputPath, err)
	}

	c, err := acc.Reduce()
	if err != nil {
		return nil, fmt.Errorf("error reducing %s: %w", inputPath, err)
	}

	a.logger.Infow("computed climate",
		"input", inputPath,
		"run_id", c.RunID,
		"rows", c.Rows,
		"skipped", c.Skipped,
		"days", len(c.Days),
		"years", len(c.Years),
	)

	return c, nil
}

// Run computes the climate, writes it to outputPath and hands it to every
// configured storage sink. Nothing is written if the computation fails.
func (a *App) Run(ctx context.Context, inputPath, outputPath string) error {
	format, err := output.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		return err
	}

	c, err := a.Compute(inputPath)
	if err != nil {
		return err
	}

	data, err := output.Render(c, format)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}

	// Open sinks before touching the output file so a bad storage config
	// fails the run without side effects.
	sinks, err := storage.NewManager(ctx, a.cfg.Storage, a.logger)
	if err != nil {
		return err
	}
	defer sinks.Close()

	if err := output.WriteFileAtomic(outputPath, data); err != nil {
		return err
	}
	a.logger.Infow("wrote climate", "output", outputPath, "format", format, "bytes", len(data))

	if sinks.Len() > 0 {
		if err := sinks.StoreClimate(ctx, c); err != nil {
			return fmt.Errorf("error storing climate: %w", err)
		}
	}

	return nil
}

// Serve computes the climate and serves it over HTTP until a shutdown
// signal arrives or ctx is cancelled.
func (a *App) Serve(ctx context.Context, inputPath string) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c, err := a.Compute(inputPath)
	if err != nil {
		return err
	}

	ctrl, err := restserver.NewController(c, a.cfg.RESTServer, a.logger)
	if err != nil {
		return err
	}
	if err := ctrl.StartController(ctx, &wg); err != nil {
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case <-sigs:
		a.logger.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		a.logger.Info("context cancelled, shutting down...")
	}

	cancel()
	wg.Wait()
	a.logger.Info("shutdown complete")

	return nil
}
